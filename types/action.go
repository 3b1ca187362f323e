package types

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Action is the sealed NormalizedAction sum type. Every concrete variant
// embeds its TraceIndex so a node's classification can always be traced back
// to the call frame it came from. This mirrors the same "interface + fixed
// set of concrete structs" idiom go-ethereum uses for types.TxData: a closed
// set of variants without reflection or a tag byte the caller has to
// interpret by hand.
type Action interface {
	// TraceIdx is the back-reference to the TraceEntry this action was
	// classified from.
	TraceIdx() int

	// actionSeal prevents Action from being implemented outside this
	// package, keeping the sum type closed.
	actionSeal()
}

type base struct {
	TraceIndex int
}

func (b base) TraceIdx() int { return b.TraceIndex }
func (base) actionSeal()     {}

// Swap is a single AMM leg: tokens in for tokens out through a pool.
type Swap struct {
	base
	Pool      common.Address
	From      common.Address
	Recipient common.Address
	TokenIn   common.Address
	TokenOut  common.Address
	AmountIn  *big.Int
	AmountOut *big.Int
}

func NewSwap(traceIdx int, pool, from, recipient, tokenIn, tokenOut common.Address, amountIn, amountOut *big.Int) *Swap {
	return &Swap{base: base{traceIdx}, Pool: pool, From: from, Recipient: recipient, TokenIn: tokenIn, TokenOut: tokenOut, AmountIn: amountIn, AmountOut: amountOut}
}

// Transfer is an ERC-20 token movement.
type Transfer struct {
	base
	Token common.Address
	From  common.Address
	To    common.Address
	Amount *big.Int
}

func NewTransfer(traceIdx int, token, from, to common.Address, amount *big.Int) *Transfer {
	return &Transfer{base: base{traceIdx}, Token: token, From: from, To: to, Amount: amount}
}

// Mint is liquidity added to a pool.
type Mint struct {
	base
	Pool      common.Address
	Recipient common.Address
	Tokens    [2]common.Address
	Amounts   [2]*big.Int
}

func NewMint(traceIdx int, pool, recipient common.Address, tokens [2]common.Address, amounts [2]*big.Int) *Mint {
	return &Mint{base: base{traceIdx}, Pool: pool, Recipient: recipient, Tokens: tokens, Amounts: amounts}
}

// Burn is liquidity removed from a pool.
type Burn struct {
	base
	Pool      common.Address
	Recipient common.Address
	Tokens    [2]common.Address
	Amounts   [2]*big.Int
}

func NewBurn(traceIdx int, pool, recipient common.Address, tokens [2]common.Address, amounts [2]*big.Int) *Burn {
	return &Burn{base: base{traceIdx}, Pool: pool, Recipient: recipient, Tokens: tokens, Amounts: amounts}
}

// Collect is a concentrated-liquidity fee collection (e.g. Uniswap V3
// collect()), kept distinct from Burn because JIT detection needs to tell a
// principal withdrawal from a fee sweep.
type Collect struct {
	base
	Pool      common.Address
	Recipient common.Address
	Amount0   *big.Int
	Amount1   *big.Int
}

func NewCollect(traceIdx int, pool, recipient common.Address, amount0, amount1 *big.Int) *Collect {
	return &Collect{base: base{traceIdx}, Pool: pool, Recipient: recipient, Amount0: amount0, Amount1: amount1}
}

// Liquidation is a lending-protocol liquidation call. LiquidatedCollateral is
// left nil by the classifier dispatch and filled in by the finalization
// walk once the collateral-asset transfer in the subtree is found.
type Liquidation struct {
	base
	Liquidator           common.Address
	Liquidatee           common.Address
	DebtAsset            common.Address
	CollateralAsset      common.Address
	DebtRepaid           *big.Int
	LiquidatedCollateral *big.Int
}

func NewLiquidation(traceIdx int, liquidator, liquidatee, debtAsset, collateralAsset common.Address, debtRepaid *big.Int) *Liquidation {
	return &Liquidation{base: base{traceIdx}, Liquidator: liquidator, Liquidatee: liquidatee, DebtAsset: debtAsset, CollateralAsset: collateralAsset, DebtRepaid: debtRepaid}
}

// FlashLoan is a borrow that must be repaid within the same transaction.
// ChildActions is left empty by the classifier dispatch and populated by the
// finalization walk with every descendant action between borrow and repay.
type FlashLoan struct {
	base
	Receiver     common.Address
	Asset        common.Address
	Amount       *big.Int
	ChildActions []Action
}

func NewFlashLoan(traceIdx int, receiver, asset common.Address, amount *big.Int) *FlashLoan {
	return &FlashLoan{base: base{traceIdx}, Receiver: receiver, Asset: asset, Amount: amount}
}

// NewPoolAction records a pool/pair creation event (e.g. a factory's
// PairCreated log), seeding the DEX pricer's pool graph.
type NewPoolAction struct {
	base
	Pool     common.Address
	Protocol Protocol
	Tokens   [2]common.Address
}

func NewNewPoolAction(traceIdx int, pool common.Address, protocol Protocol, tokens [2]common.Address) *NewPoolAction {
	return &NewPoolAction{base: base{traceIdx}, Pool: pool, Protocol: protocol, Tokens: tokens}
}

// PoolSync carries a V2-shaped pool's post-trade reserves, emitted alongside
// every Swap/Mint/Burn. It exists purely to feed the DEX pricer's pool
// graph; inspectors never read it directly.
type PoolSync struct {
	base
	Pool     common.Address
	Reserve0 *big.Int
	Reserve1 *big.Int
}

func NewPoolSync(traceIdx int, pool common.Address, reserve0, reserve1 *big.Int) *PoolSync {
	return &PoolSync{base: base{traceIdx}, Pool: pool, Reserve0: reserve0, Reserve1: reserve1}
}

// EthTransfer is a native-value transfer carried by a call (msg.value) that
// does not otherwise decode into a recognized action.
type EthTransfer struct {
	base
	From   common.Address
	To     common.Address
	Amount *big.Int
}

func NewEthTransfer(traceIdx int, from, to common.Address, amount *big.Int) *EthTransfer {
	return &EthTransfer{base: base{traceIdx}, From: from, To: to, Amount: amount}
}

// Revert marks a call frame that reverted; the rest of its subtree is
// effect-nullified for inspection purposes (Node.Nullified, set by the
// classifier's finalization pass).
type Revert struct {
	base
	Reason string
}

func NewRevert(traceIdx int, reason string) *Revert {
	return &Revert{base: base{traceIdx}, Reason: reason}
}

// Unclassified is the default variant: no dispatch entry matched the call's
// (protocol, selector)/(event signature).
type Unclassified struct {
	base
}

func NewUnclassified(traceIdx int) *Unclassified {
	return &Unclassified{base: base{traceIdx}}
}

package types

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// MevType tags the kind of MEV a Bundle represents.
type MevType int

const (
	MevTypeUnknown MevType = iota
	MevTypeSandwich
	MevTypeJit
	MevTypeJitSandwich
	MevTypeCexDex
	MevTypeCexDexMarkout
	MevTypeBackrun // atomic arbitrage
	MevTypeLiquidation
)

var mevTypeNames = [...]string{
	MevTypeUnknown:       "Unknown",
	MevTypeSandwich:      "Sandwich",
	MevTypeJit:           "Jit",
	MevTypeJitSandwich:   "JitSandwich",
	MevTypeCexDex:        "CexDex",
	MevTypeCexDexMarkout: "CexDexMarkout",
	MevTypeBackrun:       "Backrun",
	MevTypeLiquidation:   "Liquidation",
}

func (t MevType) String() string {
	if int(t) < len(mevTypeNames) {
		return mevTypeNames[t]
	}
	return "Unknown"
}

// BundleData is the sealed sum type for a bundle's type-specific payload.
type BundleData interface {
	MevType() MevType
	TxHashes() []common.Hash
	bundleSeal()
}

type bundleBase struct {
	mevType MevType
	hashes  []common.Hash
}

func (b bundleBase) MevType() MevType          { return b.mevType }
func (b bundleBase) TxHashes() []common.Hash   { return b.hashes }
func (bundleBase) bundleSeal()                 {}

// SandwichData is a frontrun/victim(s)/backrun triple sharing a pool and
// attacker address.
type SandwichData struct {
	bundleBase
	Frontrun common.Hash
	Victims  []common.Hash
	Backrun  common.Hash
	Pool     common.Address
	Attacker common.Address
}

func NewSandwichData(frontrun common.Hash, victims []common.Hash, backrun common.Hash, pool, attacker common.Address) *SandwichData {
	hashes := append([]common.Hash{frontrun}, victims...)
	hashes = append(hashes, backrun)
	return &SandwichData{bundleBase: bundleBase{MevTypeSandwich, hashes}, Frontrun: frontrun, Victims: victims, Backrun: backrun, Pool: pool, Attacker: attacker}
}

// JitData is a same-block mint-swap-burn by a single actor on a
// concentrated-liquidity pool.
type JitData struct {
	bundleBase
	MintTx        common.Hash
	SwapTx        common.Hash
	BurnTx        common.Hash
	MintTraceIdx  int
	BurnTraceIdx  int
	Pool          common.Address
	Actor         common.Address
}

func NewJitData(mintTx, swapTx, burnTx common.Hash, mintTraceIdx, burnTraceIdx int, pool, actor common.Address) *JitData {
	return &JitData{bundleBase: bundleBase{MevTypeJit, []common.Hash{mintTx, swapTx, burnTx}}, MintTx: mintTx, SwapTx: swapTx, BurnTx: burnTx, MintTraceIdx: mintTraceIdx, BurnTraceIdx: burnTraceIdx, Pool: pool, Actor: actor}
}

// JitSandwichData is the composition of a Sandwich and a Jit bundle over an
// identical tx-hash set.
type JitSandwichData struct {
	bundleBase
	Sandwich *SandwichData
	Jit      *JitData
}

func NewJitSandwichData(s *SandwichData, j *JitData) *JitSandwichData {
	return &JitSandwichData{bundleBase: bundleBase{MevTypeJitSandwich, s.hashes}, Sandwich: s, Jit: j}
}

// CexDexData is a swap whose on-DEX price differs from the block's CEX
// quote by at least the CexDex inspector's raw spread threshold; exchange
// fees are not subtracted, and MakerPrice and TakerPrice hold the same quote.
type CexDexData struct {
	bundleBase
	SwapTx      common.Hash
	Pair        Pair
	DexPrice    *Rat
	MakerPrice  *Rat
	TakerPrice  *Rat
}

func NewCexDexData(swapTx common.Hash, pair Pair, dexPrice, makerPrice, takerPrice *Rat) *CexDexData {
	return &CexDexData{bundleBase: bundleBase{MevTypeCexDex, []common.Hash{swapTx}}, SwapTx: swapTx, Pair: pair, DexPrice: dexPrice, MakerPrice: makerPrice, TakerPrice: takerPrice}
}

// CexDexMarkoutData is the CexDexMarkout inspector's result: CexDexData's
// comparison made against a single exchange's quote from the same block-time
// snapshot. No later markout window is applied.
type CexDexMarkoutData struct {
	bundleBase
	SwapTx        common.Hash
	Pair          Pair
	DexPrice      *Rat
	MarkoutMaker  *Rat
	MarkoutTaker  *Rat
}

func NewCexDexMarkoutData(swapTx common.Hash, pair Pair, dexPrice, markoutMaker, markoutTaker *Rat) *CexDexMarkoutData {
	return &CexDexMarkoutData{bundleBase: bundleBase{MevTypeCexDexMarkout, []common.Hash{swapTx}}, SwapTx: swapTx, Pair: pair, DexPrice: dexPrice, MarkoutMaker: markoutMaker, MarkoutTaker: markoutTaker}
}

// BackrunData is a closed-cycle swap chain within a single tx (atomic
// arbitrage).
type BackrunData struct {
	bundleBase
	Tx          common.Hash
	SwapPath    []common.Address
	ProfitToken common.Address
	ProfitAmount *big.Int
}

func NewBackrunData(tx common.Hash, swapPath []common.Address, profitToken common.Address, profitAmount *big.Int) *BackrunData {
	return &BackrunData{bundleBase: bundleBase{MevTypeBackrun, []common.Hash{tx}}, Tx: tx, SwapPath: swapPath, ProfitToken: profitToken, ProfitAmount: profitAmount}
}

// LiquidationData is a liquidator profit projection for a liquidation
// action.
type LiquidationData struct {
	bundleBase
	Tx              common.Hash
	Liquidator      common.Address
	CollateralAsset common.Address
	CollateralSeized *big.Int
}

func NewLiquidationData(tx common.Hash, liquidator, collateralAsset common.Address, collateralSeized *big.Int) *LiquidationData {
	return &LiquidationData{bundleBase: bundleBase{MevTypeLiquidation, []common.Hash{tx}}, Tx: tx, Liquidator: liquidator, CollateralAsset: collateralAsset, CollateralSeized: collateralSeized}
}

// BundleHeader is the type-agnostic economics every bundle carries.
type BundleHeader struct {
	MevType         MevType
	ProfitUSD       float64
	Bribe           *big.Int
	PriorityFeePaid *big.Int
	TxHashes        []common.Hash
}

// Bundle pairs a BundleHeader with its typed payload.
type Bundle struct {
	Header BundleHeader
	Data   BundleData
}

// NewBundle builds a Bundle from a header and typed payload, taking the
// tx-hash set from the payload so the two never drift apart.
func NewBundle(mevType MevType, profitUSD float64, bribe, priorityFeePaid *big.Int, data BundleData) Bundle {
	return Bundle{
		Header: BundleHeader{
			MevType:         mevType,
			ProfitUSD:       profitUSD,
			Bribe:           bribe,
			PriorityFeePaid: priorityFeePaid,
			TxHashes:        data.TxHashes(),
		},
		Data: data,
	}
}

// MevCount holds per-type bundle counts for a block's MevBlock header. A nil
// pointer field distinguishes "zero seen" from "inspector not run" per the
// spec's "counts all None" zero-tx-block scenario.
type MevCount struct {
	Total             uint64
	Sandwich          *uint64
	Jit               *uint64
	JitSandwich       *uint64
	CexDex            *uint64
	CexDexMarkout     *uint64
	Backrun           *uint64
	Liquidation       *uint64
}

// MevBlock is the composer's final, per-block aggregate result.
type MevBlock struct {
	BlockHash                    common.Hash
	BlockNumber                  uint64
	MevCount                     MevCount
	EthPrice                     float64
	CumulativeGasUsed            uint64
	CumulativePriorityFee        *big.Int
	TotalBribe                   *big.Int
	CumulativeMevPriorityFeePaid *big.Int
	BuilderAddress               common.Address
	BuilderEthProfit             float64
	BuilderProfitUSD             float64
	ProposerFeeRecipient         common.Address
	ProposerMevRewardWei         *big.Int
	ProposerProfitUSD            *float64
	CumulativeMevProfitUSD       float64
	Bundles                      []Bundle
}

package types

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// CallKind enumerates the EVM call variants a TraceEntry can represent.
type CallKind uint8

const (
	CallKindCall CallKind = iota
	CallKindDelegateCall
	CallKindStaticCall
	CallKindCallCode
	CallKindCreate
	CallKindCreate2
	CallKindSelfDestruct
)

func (k CallKind) String() string {
	switch k {
	case CallKindCall:
		return "call"
	case CallKindDelegateCall:
		return "delegatecall"
	case CallKindStaticCall:
		return "staticcall"
	case CallKindCallCode:
		return "callcode"
	case CallKindCreate:
		return "create"
	case CallKindCreate2:
		return "create2"
	case CallKindSelfDestruct:
		return "selfdestruct"
	default:
		return "unknown"
	}
}

// Log is a decoded EVM log emitted by a call.
type Log struct {
	Address common.Address
	Topics  []common.Hash
	Data    []byte
}

// TraceEntry is one call-frame in a transaction's execution trace. Entries
// are ordered by call ordinal (TraceIndex), which also serves as a
// depth-first preorder index: a node's ParentIndex always refers to an entry
// earlier in the slice.
type TraceEntry struct {
	TraceIndex  int
	ParentIndex int // -1 for the top-level call
	CallKind    CallKind
	From        common.Address
	To          common.Address
	Value       *big.Int
	Input       []byte
	Output      []byte
	GasUsed     uint64
	Reverted    bool
	Logs        []Log
}

// TxTrace is the tracer's per-transaction output: a dense, ordered sequence
// of call frames plus the receipt-derived gas/price facts the rest of the
// pipeline needs.
type TxTrace struct {
	TxHash            common.Hash
	TxIndex           int
	GasUsed           uint64
	EffectiveGasPrice *big.Int
	Entries           []TraceEntry
}

// PriorityFee returns the fraction of the effective gas price that is not the
// block's base fee — i.e. what went to the block builder, not what was
// burned. Returns zero if baseFee is nil (pre-EIP-1559 chains).
func (t *TxTrace) PriorityFee(baseFee *big.Int) *big.Int {
	if baseFee == nil || t.EffectiveGasPrice == nil {
		return new(big.Int)
	}
	fee := new(big.Int).Sub(t.EffectiveGasPrice, baseFee)
	if fee.Sign() < 0 {
		return new(big.Int)
	}
	return fee
}

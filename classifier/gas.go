package classifier

import (
	"math/big"

	"github.com/mevtrace/engine/types"
)

// AccumulateGas walks a block's TxRoots in order and folds each one's
// GasDetails into running totals, the same single-pass sequential
// accumulation coreth's miner worker uses to track a block's gas pool while
// packing transactions — here run read-only, after the fact, over an
// already-built CallTree instead of live against core.GasPool.
type GasTotals struct {
	CumulativeGasUsed     uint64
	CumulativePriorityFee *big.Int
	TotalBaseFeeBurned    *big.Int
}

// AccumulateGas computes a block's cumulative gas totals from its CallTree.
// PriorityFee on a TxRoot already excludes the base fee (see
// TxTrace.PriorityFee), so CumulativePriorityFee here is exactly the
// builder-facing figure the composer's header aggregation needs.
func AccumulateGas(tree *types.CallTree) GasTotals {
	totals := GasTotals{CumulativePriorityFee: new(big.Int), TotalBaseFeeBurned: new(big.Int)}
	baseFee := tree.Header.BaseFee

	for i := range tree.TxRoots {
		gd := tree.TxRoots[i].GasDetails
		totals.CumulativeGasUsed += gd.GasUsed
		if gd.PriorityFee != nil {
			totals.CumulativePriorityFee.Add(totals.CumulativePriorityFee, gd.PriorityFee)
		}
		if baseFee != nil {
			burned := new(big.Int).Mul(baseFee, new(big.Int).SetUint64(gd.GasUsed))
			totals.TotalBaseFeeBurned.Add(totals.TotalBaseFeeBurned, burned)
		}
	}
	return totals
}

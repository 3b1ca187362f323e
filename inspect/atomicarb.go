package inspect

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mevtrace/engine/metadata"
	"github.com/mevtrace/engine/types"
)

// AtomicArbInspector finds a closed swap cycle within a single
// transaction: token A swapped for B, ... eventually back to A, with a net
// positive A balance at the end. Unlike Sandwich/Jit this never needs
// cross-tx context, since the whole cycle executes atomically.
type AtomicArbInspector struct{}

// NewAtomicArbInspector constructs an AtomicArbInspector.
func NewAtomicArbInspector() *AtomicArbInspector { return &AtomicArbInspector{} }

func (a *AtomicArbInspector) MevType() types.MevType { return types.MevTypeBackrun }

func (a *AtomicArbInspector) Inspect(tree *types.CallTree, meta metadata.Metadata) ([]types.Bundle, error) {
	var bundles []types.Bundle

	for i := range tree.TxRoots {
		root := &tree.TxRoots[i]
		var swaps []*types.Swap
		for _, action := range txActions(root) {
			if swap, ok := action.(*types.Swap); ok {
				swaps = append(swaps, swap)
			}
		}
		if len(swaps) < 2 {
			continue
		}

		path, profitToken, profitAmount := closedCycle(swaps)
		if path == nil {
			continue
		}

		profit := types.RoundToFloat(estimateArbProfitUSD(profitToken, profitAmount, meta))
		data := types.NewBackrunData(root.TxHash, path, profitToken, profitAmount)
		bundles = append(bundles, types.NewBundle(types.MevTypeBackrun, profit, nil, nil, data))
	}
	return bundles, nil
}

// closedCycle walks a tx's swap chain in order and reports whether it
// starts and ends on the same token with a net positive balance, returning
// the token path, the profit token, and the net amount earned.
func closedCycle(swaps []*types.Swap) ([]common.Address, common.Address, *big.Int) {
	start := swaps[0].TokenIn
	end := swaps[len(swaps)-1].TokenOut
	if start != end {
		return nil, common.Address{}, nil
	}

	spent := new(big.Int)
	received := new(big.Int)
	path := make([]common.Address, 0, len(swaps)+1)
	path = append(path, swaps[0].TokenIn)
	for _, s := range swaps {
		path = append(path, s.TokenOut)
		if s.TokenIn == start {
			spent.Add(spent, s.AmountIn)
		}
		if s.TokenOut == start {
			received.Add(received, s.AmountOut)
		}
	}

	profit := new(big.Int).Sub(received, spent)
	if profit.Sign() <= 0 {
		return nil, common.Address{}, nil
	}
	return path, start, profit
}

func estimateArbProfitUSD(token common.Address, amount *big.Int, meta metadata.Metadata) *types.Rat {
	if amount == nil || meta.EthPriceUSD == nil {
		return new(types.Rat)
	}
	qty := types.ScaledRational(amount, 18)
	return new(types.Rat).Mul(qty, meta.EthPriceUSD)
}

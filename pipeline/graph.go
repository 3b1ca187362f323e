package pipeline

import (
	"github.com/mevtrace/engine/pricing/dex"
	"github.com/mevtrace/engine/types"
)

// buildPoolGraph walks a block's classified actions in trace order and
// replays them into a fresh dex.Graph: NewPoolAction seeds a pool, PoolSync
// carries its reserves forward at the tx index it was observed in. This is
// the pipeline's only consumer of the PoolSync pseudo-action; no inspector
// reads it directly.
func buildPoolGraph(tree *types.CallTree) *dex.Graph {
	graph := dex.NewGraph()
	for i := range tree.TxRoots {
		root := &tree.TxRoots[i]
		for _, action := range root.Actions(0) {
			switch a := action.(type) {
			case *types.NewPoolAction:
				graph.RegisterPool(a.Pool, types.NewPair(a.Tokens[0], a.Tokens[1]))
			case *types.PoolSync:
				// A sync for a pool the config/classifier never registered
				// (no AddressToTokens entry) can't be priced; skip it rather
				// than fail the block.
				_ = graph.UpdateReserves(a.Pool, root.TxIndex, a.Reserve0, a.Reserve1)
			}
		}
	}
	return graph
}

// pairsTraded collects the distinct (tokenIn, tokenOut) pairs swapped in the
// block, the set the pipeline needs to price against both the DEX router
// and the CEX VWAP snapshot.
func pairsTraded(tree *types.CallTree) []types.Pair {
	seen := make(map[types.Pair]bool)
	var out []types.Pair
	for i := range tree.TxRoots {
		root := &tree.TxRoots[i]
		for _, action := range root.Actions(0) {
			swap, ok := action.(*types.Swap)
			if !ok {
				continue
			}
			pair := types.NewPair(swap.TokenIn, swap.TokenOut)
			if !seen[pair] {
				seen[pair] = true
				out = append(out, pair)
			}
			if flip := pair.Flip(); !seen[flip] {
				seen[flip] = true
				out = append(out, flip)
			}
		}
	}
	return out
}

package inspect

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/mevtrace/engine/types"
)

// poolSwap is a single Swap action located within its transaction, with
// enough context (pool, sender, position) for the sandwich/jit/arb
// inspectors to reason about ordering without re-walking the tree.
type poolSwap struct {
	txHash common.Hash
	txIdx  int
	sender common.Address
	swap   *types.Swap
}

// collectPoolSwaps walks every tx root in a block and groups every Swap
// action by pool, in block order, the shared scan every swap-based
// inspector (Sandwich, Jit, CexDex, CexDexMarkout) starts from.
func collectPoolSwaps(tree *types.CallTree) map[common.Address][]poolSwap {
	out := make(map[common.Address][]poolSwap)
	for i := range tree.TxRoots {
		root := &tree.TxRoots[i]
		if len(root.Nodes) == 0 {
			continue
		}
		for _, action := range root.Actions(0) {
			swap, ok := action.(*types.Swap)
			if !ok {
				continue
			}
			out[swap.Pool] = append(out[swap.Pool], poolSwap{
				txHash: root.TxHash,
				txIdx:  root.TxIndex,
				sender: swap.From,
				swap:   swap,
			})
		}
	}
	return out
}

// txActions returns every non-nullified action in a tx root, in preorder.
func txActions(root *types.TxRoot) []types.Action {
	if len(root.Nodes) == 0 {
		return nil
	}
	return root.Actions(0)
}

package inspect

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/mevtrace/engine/metadata"
	"github.com/mevtrace/engine/types"
)

// JitInspector finds mint/swap/burn triples by a single actor on the same
// pool within a block: liquidity added immediately before a swap and
// withdrawn immediately after, capturing the swap's fee without bearing
// impermanent-loss risk for longer than one block.
type JitInspector struct{}

// NewJitInspector constructs a JitInspector.
func NewJitInspector() *JitInspector { return &JitInspector{} }

func (j *JitInspector) MevType() types.MevType { return types.MevTypeJit }

func (j *JitInspector) Inspect(tree *types.CallTree, _ metadata.Metadata) ([]types.Bundle, error) {
	var bundles []types.Bundle

	swapsByPool := collectPoolSwaps(tree)
	mintsByPool := poolMints(tree)
	burnsByPool := poolBurns(tree)

	for pool, mints := range mintsByPool {
		burns := burnsByPool[pool]
		swaps := swapsByPool[pool]

		for _, mint := range mints {
			for _, burn := range burns {
				if burn.txIdx <= mint.txIdx || burn.recipient != mint.recipient {
					continue
				}
				var bracketed *poolSwap
				count := 0
				for i := range swaps {
					if swaps[i].txIdx > mint.txIdx && swaps[i].txIdx < burn.txIdx {
						bracketed = &swaps[i]
						count++
					}
				}
				if count != 1 {
					continue
				}
				data := types.NewJitData(mint.txHash, bracketed.txHash, burn.txHash, mint.traceIdx, burn.traceIdx, pool, mint.recipient)
				bundles = append(bundles, types.NewBundle(types.MevTypeJit, 0, nil, nil, data))
			}
		}
	}
	return bundles, nil
}

type poolMint struct {
	txHash    common.Hash
	txIdx     int
	traceIdx  int
	recipient common.Address
}

type poolBurn struct {
	txHash    common.Hash
	txIdx     int
	traceIdx  int
	recipient common.Address
}

func poolMints(tree *types.CallTree) map[common.Address][]poolMint {
	out := make(map[common.Address][]poolMint)
	for i := range tree.TxRoots {
		root := &tree.TxRoots[i]
		for _, action := range txActions(root) {
			mint, ok := action.(*types.Mint)
			if !ok {
				continue
			}
			out[mint.Pool] = append(out[mint.Pool], poolMint{txHash: root.TxHash, txIdx: root.TxIndex, traceIdx: mint.TraceIdx(), recipient: mint.Recipient})
		}
	}
	return out
}

func poolBurns(tree *types.CallTree) map[common.Address][]poolBurn {
	out := make(map[common.Address][]poolBurn)
	for i := range tree.TxRoots {
		root := &tree.TxRoots[i]
		for _, action := range txActions(root) {
			burn, ok := action.(*types.Burn)
			if !ok {
				continue
			}
			out[burn.Pool] = append(out[burn.Pool], poolBurn{txHash: root.TxHash, txIdx: root.TxIndex, traceIdx: burn.TraceIdx(), recipient: burn.Recipient})
		}
	}
	return out
}

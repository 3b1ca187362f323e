package inspect

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/mevtrace/engine/metadata"
	"github.com/mevtrace/engine/types"
)

// SandwichInspector finds (frontrun, victim(s), backrun) triples on the
// same pool by the same attacker address, the classic pattern: one actor
// swaps both immediately before and immediately after one or more victim
// swaps through the identical pool within the same block.
type SandwichInspector struct{}

// NewSandwichInspector constructs a SandwichInspector.
func NewSandwichInspector() *SandwichInspector { return &SandwichInspector{} }

func (s *SandwichInspector) MevType() types.MevType { return types.MevTypeSandwich }

func (s *SandwichInspector) Inspect(tree *types.CallTree, meta metadata.Metadata) ([]types.Bundle, error) {
	swaps := collectPoolSwaps(tree)

	var bundles []types.Bundle
	for pool, entries := range swaps {
		if len(entries) < 3 {
			continue
		}
		for i := 0; i < len(entries)-1; i++ {
			front := entries[i]
			for j := i + 1; j < len(entries); j++ {
				back := entries[j]
				if back.sender != front.sender || back.txHash == front.txHash {
					continue
				}
				victims := entries[i+1 : j]
				if len(victims) == 0 {
					continue
				}
				victimHashes := make([]common.Hash, 0, len(victims))
				for _, v := range victims {
					if v.sender == front.sender {
						victimHashes = nil
						break
					}
					victimHashes = append(victimHashes, v.txHash)
				}
				if len(victimHashes) == 0 {
					continue
				}

				profit := sandwichProfitUSD(front, back, meta)
				data := types.NewSandwichData(front.txHash, victimHashes, back.txHash, pool, front.sender)
				bundles = append(bundles, types.NewBundle(types.MevTypeSandwich, profit, nil, nil, data))
				break
			}
		}
	}
	return bundles, nil
}

// sandwichProfitUSD prices the attacker's net token delta across the
// frontrun and backrun legs using the pair's DEX post-state price; a nil
// price (pair not quoted) yields zero rather than a spurious bundle being
// dropped outright, since the composer's profit filter (stage 3) discards
// non-positive sandwiches anyway.
func sandwichProfitUSD(front, back poolSwap, meta metadata.Metadata) float64 {
	if front.swap.AmountIn == nil || back.swap.AmountOut == nil {
		return 0
	}
	pair := types.NewPair(front.swap.TokenIn, front.swap.TokenOut)
	quote, ok := meta.DexQuoteAt(pair, front.txIdx)
	if !ok || quote.PostState == nil || meta.EthPriceUSD == nil {
		return 0
	}
	spent := types.ScaledRational(front.swap.AmountIn, 18)
	received := types.ScaledRational(back.swap.AmountOut, 18)
	netToken := new(types.Rat).Sub(received, spent)
	usd := new(types.Rat).Mul(netToken, quote.PostState)
	return types.RoundToFloat(usd)
}

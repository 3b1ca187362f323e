package inspect

import (
	"github.com/mevtrace/engine/metadata"
	"github.com/mevtrace/engine/types"
)

// CexDexMarkoutInspector is CexDexInspector's single-venue variant: it
// compares each swap's DEX price against MarkoutExchange's quote in the
// block's CexPrices, the same block-time snapshot CexDexInspector reads.
// No later markout window is applied.
type CexDexMarkoutInspector struct {
	MinSpreadBps int64
	// MarkoutExchange is the venue whose block-time quote is compared
	// against the DEX price; Metadata carries only the one CEX snapshot
	// taken per block.
	MarkoutExchange types.CexExchange
}

// NewCexDexMarkoutInspector constructs a CexDexMarkoutInspector.
func NewCexDexMarkoutInspector(minSpreadBps int64, exchange types.CexExchange) *CexDexMarkoutInspector {
	return &CexDexMarkoutInspector{MinSpreadBps: minSpreadBps, MarkoutExchange: exchange}
}

func (c *CexDexMarkoutInspector) MevType() types.MevType { return types.MevTypeCexDexMarkout }

func (c *CexDexMarkoutInspector) Inspect(tree *types.CallTree, meta metadata.Metadata) ([]types.Bundle, error) {
	var bundles []types.Bundle

	for _, swaps := range collectPoolSwaps(tree) {
		for _, ps := range swaps {
			pair := types.NewPair(ps.swap.TokenIn, ps.swap.TokenOut)
			dexQuote, ok := meta.DexQuoteAt(pair, ps.txIdx)
			if !ok || dexQuote.PostState == nil {
				continue
			}
			markout, ok := meta.CexPrices.Get(c.MarkoutExchange, pair)
			if !ok || markout.Price == nil {
				continue
			}

			spreadBps := spreadBasisPoints(dexQuote.PostState, markout.Price)
			if spreadBps < c.MinSpreadBps {
				continue
			}

			profit := cexDexProfitUSD(ps, dexQuote.PostState, markout.Price, meta)
			data := types.NewCexDexMarkoutData(ps.txHash, pair, dexQuote.PostState, markout.Price, markout.Price)
			bundles = append(bundles, types.NewBundle(types.MevTypeCexDexMarkout, profit, nil, nil, data))
		}
	}
	return bundles, nil
}

package inspect

import (
	"github.com/mevtrace/engine/metadata"
	"github.com/mevtrace/engine/types"
)

// CexDexInspector flags swaps whose DEX post-state price diverges from the
// pair's Binance quote in the block's CEX price snapshot by at least
// MinSpreadBps — the arbitrage a CEX-DEX bot captures by hedging a DEX fill
// against a CEX position in the same block. The spread is the raw price
// difference: venue maker/taker fees are not subtracted, and the one
// Binance quote is recorded as both the maker and the taker price.
type CexDexInspector struct {
	// MinSpreadBps is the minimum spread, in basis points, required before
	// a swap is reported as CexDex MEV.
	MinSpreadBps int64
}

// NewCexDexInspector constructs a CexDexInspector with the given minimum
// reportable spread.
func NewCexDexInspector(minSpreadBps int64) *CexDexInspector {
	return &CexDexInspector{MinSpreadBps: minSpreadBps}
}

func (c *CexDexInspector) MevType() types.MevType { return types.MevTypeCexDex }

func (c *CexDexInspector) Inspect(tree *types.CallTree, meta metadata.Metadata) ([]types.Bundle, error) {
	var bundles []types.Bundle

	for _, swaps := range collectPoolSwaps(tree) {
		for _, ps := range swaps {
			pair := types.NewPair(ps.swap.TokenIn, ps.swap.TokenOut)
			dexQuote, ok := meta.DexQuoteAt(pair, ps.txIdx)
			if !ok || dexQuote.PostState == nil {
				continue
			}
			makerQuote, makerOK := meta.CexPrices.Get(types.Binance, pair)
			if !makerOK || makerQuote.Price == nil {
				continue
			}

			spreadBps := spreadBasisPoints(dexQuote.PostState, makerQuote.Price)
			if spreadBps < c.MinSpreadBps {
				continue
			}

			profit := cexDexProfitUSD(ps, dexQuote.PostState, makerQuote.Price, meta)
			data := types.NewCexDexData(ps.txHash, pair, dexQuote.PostState, makerQuote.Price, makerQuote.Price)
			bundles = append(bundles, types.NewBundle(types.MevTypeCexDex, profit, nil, nil, data))
		}
	}
	return bundles, nil
}

// spreadBasisPoints returns |a-b|/((a+b)/2) expressed in basis points.
func spreadBasisPoints(a, b *types.Rat) int64 {
	diff := new(types.Rat).Sub(a, b)
	if diff.Sign() < 0 {
		diff.Neg(diff)
	}
	mid := new(types.Rat).Quo(new(types.Rat).Add(a, b), types.NewRat(2, 1))
	if mid.Sign() == 0 {
		return 0
	}
	bps := new(types.Rat).Quo(diff, mid)
	bps.Mul(bps, types.NewRat(10_000, 1))
	f, _ := bps.Float64()
	return int64(f)
}

func cexDexProfitUSD(ps poolSwap, dexPrice, cexPrice *types.Rat, meta metadata.Metadata) float64 {
	if ps.swap.AmountOut == nil || meta.EthPriceUSD == nil {
		return 0
	}
	qty := types.ScaledRational(ps.swap.AmountOut, 18)
	diff := new(types.Rat).Sub(cexPrice, dexPrice)
	usd := new(types.Rat).Mul(qty, diff)
	return types.RoundToFloat(usd)
}

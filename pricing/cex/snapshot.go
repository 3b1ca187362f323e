package cex

import "github.com/mevtrace/engine/types"

// QuoteAt computes a single time-decay-weighted VWAP over trades, with no
// fee adjustment, quality filtering, or volume targeting. It's a cheap
// per-block reference snapshot (one quote per exchange/pair, the shape
// CexPriceMap stores), not the fill-assigned, fee-tiered price
// GetOptimisticPrice builds for a specific swap volume.
func QuoteAt(trades []types.CexTrade, targetMicros int64) *types.Rat {
	num := new(types.Rat)
	den := new(types.Rat)
	for _, tr := range trades {
		if tr.Price == nil || tr.Amount == nil {
			continue
		}
		weight := types.RatFromFloat(calculateWeight(int64(tr.Timestamp) - targetMicros))
		weightedAmount := new(types.Rat).Mul(tr.Amount, weight)
		num.Add(num, new(types.Rat).Mul(tr.Price, weightedAmount))
		den.Add(den, weightedAmount)
	}
	if den.Sign() == 0 {
		return nil
	}
	return new(types.Rat).Quo(num, den)
}

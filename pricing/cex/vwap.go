package cex

import "github.com/mevtrace/engine/types"

// computeMakerTakerVWAP prices a set of already fill-assigned trades at two
// fee tiers: maker and taker. Both run over the same trade set and the same
// bi-exponential time-decay weight; only the fee deducted from each trade's
// price differs. tradeVolume is the unweighted sum of trade amounts, used by
// the caller for the volume-sufficiency check.
func computeMakerTakerVWAP(trades []types.CexTrade, targetMicros int64) (maker, taker, tradeVolume *types.Rat) {
	vxpMaker := new(types.Rat)
	vxpTaker := new(types.Rat)
	weightedVolume := new(types.Rat)
	tradeVolume = new(types.Rat)
	one := types.NewRat(1, 1)

	for _, tr := range trades {
		if tr.Price == nil || tr.Amount == nil {
			continue
		}
		weight := types.RatFromFloat(calculateWeight(int64(tr.Timestamp) - targetMicros))
		weightedAmount := new(types.Rat).Mul(tr.Amount, weight)

		makerFee, takerFee := tr.Exchange.Fees()
		makerNet := new(types.Rat).Sub(one, makerFee)
		takerNet := new(types.Rat).Sub(one, takerFee)

		vxpMaker.Add(vxpMaker, new(types.Rat).Mul(new(types.Rat).Mul(tr.Price, makerNet), weightedAmount))
		vxpTaker.Add(vxpTaker, new(types.Rat).Mul(new(types.Rat).Mul(tr.Price, takerNet), weightedAmount))

		weightedVolume.Add(weightedVolume, weightedAmount)
		tradeVolume.Add(tradeVolume, tr.Amount)
	}

	if weightedVolume.Sign() == 0 {
		return nil, nil, tradeVolume
	}
	maker = new(types.Rat).Quo(vxpMaker, weightedVolume)
	taker = new(types.Rat).Quo(vxpTaker, weightedVolume)
	return maker, taker, tradeVolume
}

// Package cex reconstructs an "optimistic" CEX reference price for a token
// pair at a given microsecond timestamp from raw centralized-exchange
// trades, by building an expanding time basket around the target instant,
// filtering out low-quality fills, assigning basket volume against a target
// fill size, and weighting what remains with a bi-exponential time-decay
// kernel.
package cex

import (
	"sort"

	"github.com/mevtrace/engine/types"
)

const (
	// preScalingDiffMicros is the max-delta-from-target threshold past which
	// the expansion loop grows both sides together instead of favoring the
	// far side.
	preScalingDiffMicros int64 = 200_000
	// timeStepMicros is how far a boundary grows per expansion iteration.
	timeStepMicros int64 = 100_000
	// baseExecutionQuality is the default fill-quality percentile (0-100)
	// kept per exchange when the caller's config has no override.
	baseExecutionQuality = 70
)

// basketRing is one ring of the expanding time-basket queue: the trades
// newly admitted when the window grew to its current bounds, and their
// combined volume.
type basketRing struct {
	trades []types.CexTrade
	volume *types.Rat
}

// buildBasketQueue expands a window around targetMicros, nearer side first,
// until the queue's cumulative volume reaches volume or both boundaries hit
// their optimistic ceiling. Rings are returned in nearest-to-target order,
// which fill assignment relies on. optimisticBeforeMicros/optimisticAfterMicros
// of 0 means unbounded on that side.
func buildBasketQueue(trades []types.CexTrade, targetMicros int64, volume *types.Rat, optimisticBeforeMicros, optimisticAfterMicros int64) ([]basketRing, *types.Rat) {
	deltaBefore := clampDelta(timeStepMicros, optimisticBeforeMicros)
	deltaAfter := clampDelta(timeStepMicros, optimisticAfterMicros)

	claimed := make([]bool, len(trades))
	claimedCount := 0
	total := new(types.Rat)
	var rings []basketRing

	admit := func(lo, hi int64) {
		var ring []types.CexTrade
		ringVolume := new(types.Rat)
		for i, tr := range trades {
			if claimed[i] {
				continue
			}
			delta := int64(tr.Timestamp) - targetMicros
			if delta < -lo || delta > hi {
				continue
			}
			claimed[i] = true
			claimedCount++
			ring = append(ring, tr)
			if tr.Amount != nil {
				ringVolume.Add(ringVolume, tr.Amount)
			}
		}
		if len(ring) == 0 {
			return
		}
		rings = append(rings, basketRing{trades: ring, volume: ringVolume})
		total.Add(total, ringVolume)
	}

	admit(deltaBefore, deltaAfter)

	const maxExpansions = 4096 // safety valve against a misconfigured (zero-bound) loop
	for i := 0; i < maxExpansions && claimedCount < len(trades) && (volume == nil || total.Cmp(volume) < 0); i++ {
		beforeCapped := optimisticBeforeMicros > 0 && deltaBefore >= optimisticBeforeMicros
		afterCapped := optimisticAfterMicros > 0 && deltaAfter >= optimisticAfterMicros
		if beforeCapped && afterCapped {
			break
		}

		maxDelta := deltaBefore
		if deltaAfter > maxDelta {
			maxDelta = deltaAfter
		}

		prevBefore, prevAfter := deltaBefore, deltaAfter
		switch {
		case beforeCapped:
			deltaAfter = clampDelta(deltaAfter+timeStepMicros, optimisticAfterMicros)
		case afterCapped:
			deltaBefore = clampDelta(deltaBefore+timeStepMicros, optimisticBeforeMicros)
		case maxDelta >= preScalingDiffMicros:
			deltaBefore = clampDelta(deltaBefore+timeStepMicros, optimisticBeforeMicros)
			deltaAfter = clampDelta(deltaAfter+timeStepMicros, optimisticAfterMicros)
		case deltaBefore < deltaAfter:
			deltaBefore = clampDelta(deltaBefore+timeStepMicros, optimisticBeforeMicros)
		case deltaAfter < deltaBefore:
			deltaAfter = clampDelta(deltaAfter+timeStepMicros, optimisticAfterMicros)
		default:
			deltaBefore = clampDelta(deltaBefore+timeStepMicros, optimisticBeforeMicros)
			deltaAfter = clampDelta(deltaAfter+timeStepMicros, optimisticAfterMicros)
		}

		if deltaBefore == prevBefore && deltaAfter == prevAfter {
			break
		}
		admit(deltaBefore, deltaAfter)
	}

	return rings, total
}

// clampDelta caps d at ceiling, unless ceiling is <= 0 (unbounded).
func clampDelta(d, ceiling int64) int64 {
	if ceiling > 0 && d > ceiling {
		return ceiling
	}
	return d
}

// assignFills walks the basket queue nearest-to-target first, allocating
// each basket a share of volume proportional to its own volume plus any
// remainder carried from the previous basket, and drawing trades from it in
// price-favorable order until that share is met.
func assignFills(rings []basketRing, totalVolume, volume *types.Rat, direction types.Direction) []types.CexTrade {
	if totalVolume.Sign() == 0 {
		return nil
	}

	var used []types.CexTrade
	carry := new(types.Rat)
	for _, ring := range rings {
		share := new(types.Rat).Quo(ring.volume, totalVolume)
		toFill := new(types.Rat).Mul(share, volume)
		toFill.Add(toFill, carry)

		drawn, remaining := drawFavorable(ring.trades, toFill, direction)
		used = append(used, drawn...)
		carry = remaining
	}
	return used
}

// drawFavorable sorts trades in price-favorable order for direction (lowest
// price first for a Buy, highest first for a Sell) and draws from the front
// until toFill amount has been covered, returning the drawn trades and
// whatever of toFill remains unmet.
func drawFavorable(trades []types.CexTrade, toFill *types.Rat, direction types.Direction) ([]types.CexTrade, *types.Rat) {
	sorted := append([]types.CexTrade(nil), trades...)
	sort.SliceStable(sorted, func(i, j int) bool {
		cmp := sorted[i].Price.Cmp(sorted[j].Price)
		if direction == types.Buy {
			return cmp < 0
		}
		return cmp > 0
	})

	remaining := new(types.Rat).Set(toFill)
	var used []types.CexTrade
	for _, tr := range sorted {
		if remaining.Sign() <= 0 {
			break
		}
		used = append(used, tr)
		if tr.Amount != nil {
			remaining.Sub(remaining, tr.Amount)
		}
	}
	return used, remaining
}

package cex

import "math"

// preDecay and postDecay are the bi-exponential kernel's rate constants:
// trades before the target instant decay faster than trades after it,
// since a fill that happened slightly after the block still reflects
// information available at execution time while a fill long before it is
// stale.
const (
	preDecay  = -3e-7
	postDecay = -1.2e-7
)

// calculateWeight returns the time-decay weight for a trade deltaMicros
// away from the target timestamp (negative meaning before, positive
// meaning after). Weight decays exponentially in |delta|, with a shallower
// decay applied to trades after the target than before it.
func calculateWeight(deltaMicros int64) float64 {
	delta := float64(deltaMicros)
	if delta <= 0 {
		return math.Exp(preDecay * -delta)
	}
	return math.Exp(postDecay * delta)
}

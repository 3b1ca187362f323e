package cex

import "github.com/mevtrace/engine/types"

// Exported aliases of unexported internals, so package-external tests can
// exercise the basket/quality/weight machinery directly without
// duplicating it.

var CalculateWeight = calculateWeight

const (
	PreScalingDiffMicros = preScalingDiffMicros
	TimeStepMicros       = timeStepMicros
	BaseExecutionQuality = baseExecutionQuality
)

func FilterByQuality(trades []types.CexTrade, targetMicros int64, pct int) []types.CexTrade {
	return filterByQuality(trades, targetMicros, func(types.CexExchange) int { return pct })
}

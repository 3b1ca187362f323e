package compose

import "github.com/mevtrace/engine/types"

// unprofitableTypes names the bundle kinds whose economics are a genuine
// profit projection rather than an informational flag; Liquidation and
// CexDex/CexDexMarkout bundles are kept regardless of sign since a negative
// projection there still documents the spread observed, not a failed
// extraction attempt.
var unprofitableTypes = map[types.MevType]bool{
	types.MevTypeSandwich:    true,
	types.MevTypeJit:         true,
	types.MevTypeJitSandwich: true,
	types.MevTypeBackrun:     true,
}

// Filter drops bundles from the types in unprofitableTypes whose projected
// profit is zero or negative.
func Filter(bundles []types.Bundle) []types.Bundle {
	out := make([]types.Bundle, 0, len(bundles))
	for _, b := range bundles {
		if unprofitableTypes[b.Header.MevType] && b.Header.ProfitUSD <= 0 {
			continue
		}
		out = append(out, b)
	}
	return out
}

package cex

import (
	"sort"

	"github.com/mevtrace/engine/types"
)

// qualityLookup resolves the execution-quality percentile (0-100) a basket's
// trades on a given exchange must clear, defaulting to baseExecutionQuality
// when the caller's config has no entry for that exchange/pair.
type qualityLookup func(types.CexExchange) int

// filterByQuality keeps, per exchange, only the top qualityPct(exchange)% of
// that exchange's trades by proximity to targetMicros. This models that an
// arbitrageur does not capture every good fill: the closer a print sits to
// the block instant, the more likely a real participant actually traded
// against it.
func filterByQuality(trades []types.CexTrade, targetMicros int64, qualityPct qualityLookup) []types.CexTrade {
	if len(trades) == 0 {
		return trades
	}

	byExchange := make(map[types.CexExchange][]types.CexTrade)
	var order []types.CexExchange
	for _, tr := range trades {
		if _, ok := byExchange[tr.Exchange]; !ok {
			order = append(order, tr.Exchange)
		}
		byExchange[tr.Exchange] = append(byExchange[tr.Exchange], tr)
	}

	out := make([]types.CexTrade, 0, len(trades))
	for _, exchange := range order {
		group := byExchange[exchange]
		sort.SliceStable(group, func(i, j int) bool {
			return proximityMicros(group[i].Timestamp, targetMicros) < proximityMicros(group[j].Timestamp, targetMicros)
		})

		pct := qualityPct(exchange)
		if pct <= 0 {
			continue
		}
		if pct > 100 {
			pct = 100
		}
		keep := (len(group)*pct + 99) / 100
		if keep > len(group) {
			keep = len(group)
		}
		out = append(out, group[:keep]...)
	}
	return out
}

// proximityMicros is a trade's absolute distance from the target instant.
func proximityMicros(ts uint64, targetMicros int64) int64 {
	delta := int64(ts) - targetMicros
	if delta < 0 {
		return -delta
	}
	return delta
}

package cex

import (
	"testing"

	"github.com/mevtrace/engine/types"
	"github.com/stretchr/testify/require"
)

func TestFilterByQualityKeepsTopProximityPercentPerExchange(t *testing.T) {
	const target = int64(1_000_000)
	trades := []types.CexTrade{
		trade(target, 100, 1, types.Buy),           // delta 0, closest
		trade(target+10_000, 100, 1, types.Buy),    // delta 10_000
		trade(target+1_000_000, 100, 1, types.Buy), // delta 1_000_000, farthest
	}
	filtered := filterByQuality(trades, target, func(types.CexExchange) int { return 70 })
	// ceil(3 * 70 / 100) = 3 -> all three trades pass at 70% with only 3
	// candidates; tighten to a threshold that actually excludes the tail.
	require.Len(t, filtered, 3)

	tight := filterByQuality(trades, target, func(types.CexExchange) int { return 34 })
	require.Len(t, tight, 2)
	require.Equal(t, uint64(target), tight[0].Timestamp)
}

func TestFilterByQualityAppliesPerExchangeIndependently(t *testing.T) {
	const target = int64(1_000_000)
	binance := trade(target, 100, 1, types.Buy)
	binance.Exchange = types.Binance
	coinbase := trade(target+500_000, 100, 1, types.Buy)
	coinbase.Exchange = types.Coinbase

	byExchange := map[types.CexExchange]int{types.Binance: 100, types.Coinbase: 0}
	filtered := filterByQuality([]types.CexTrade{binance, coinbase}, target, func(e types.CexExchange) int { return byExchange[e] })
	require.Len(t, filtered, 1)
	require.Equal(t, types.Binance, filtered[0].Exchange)
}

func TestFilterByQualityEmptyInput(t *testing.T) {
	require.Empty(t, filterByQuality(nil, 0, func(types.CexExchange) int { return 70 }))
}

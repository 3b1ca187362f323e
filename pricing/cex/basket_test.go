package cex

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mevtrace/engine/types"
	"github.com/stretchr/testify/require"
)

func trade(ts int64, price, amount int64, dir types.Direction) types.CexTrade {
	pair := types.NewPair(common.HexToAddress("0xA"), common.HexToAddress("0xB"))
	return types.CexTrade{
		Exchange:  types.Binance,
		Pair:      pair,
		Timestamp: uint64(ts),
		Price:     big.NewRat(price, 1),
		Amount:    big.NewRat(amount, 1),
		Direction: dir,
	}
}

func TestBuildBasketQueueCollectsNearRingFirst(t *testing.T) {
	trades := []types.CexTrade{
		trade(1_000_000, 3000, 1, types.Buy),
		trade(1_000_050, 3001, 1, types.Sell),
	}
	rings, total := buildBasketQueue(trades, 1_000_000, big.NewRat(1, 1), 0, 0)
	require.Len(t, rings, 1)
	require.Len(t, rings[0].trades, 2)
	require.Equal(t, 0, total.Cmp(big.NewRat(2, 1)))
}

func TestBuildBasketQueueExpandsToMeetVolume(t *testing.T) {
	trades := []types.CexTrade{
		trade(1_000_000, 3000, 1, types.Buy),
		trade(1_000_000+timeStepMicros+1, 3000, 100, types.Sell),
	}
	rings, total := buildBasketQueue(trades, 1_000_000, big.NewRat(50, 1), 0, 0)
	require.GreaterOrEqual(t, len(rings), 2)
	require.Equal(t, 0, total.Cmp(big.NewRat(101, 1)))
}

func TestBuildBasketQueueStopsAtOptimisticCeiling(t *testing.T) {
	trades := []types.CexTrade{
		trade(1_000_000, 3000, 1, types.Buy),
		// far outside any reachable ceiling
		trade(1_000_000+10_000_000, 3000, 100, types.Sell),
	}
	rings, total := buildBasketQueue(trades, 1_000_000, big.NewRat(50, 1), timeStepMicros, timeStepMicros)
	require.Len(t, rings, 1)
	require.Equal(t, 0, total.Cmp(big.NewRat(1, 1)))
}

func TestAssignFillsDrawsPriceFavorableOrder(t *testing.T) {
	rings := []basketRing{
		{
			trades: []types.CexTrade{
				trade(1_000_000, 110, 1, types.Buy),
				trade(1_000_000, 100, 1, types.Buy),
			},
			volume: big.NewRat(2, 1),
		},
	}
	used := assignFills(rings, big.NewRat(2, 1), big.NewRat(1, 1), types.Buy)
	require.Len(t, used, 1)
	require.Equal(t, 0, used[0].Price.Cmp(big.NewRat(100, 1)))
}

func TestAssignFillsDrawsFullVolumeAcrossRings(t *testing.T) {
	rings := []basketRing{
		{trades: []types.CexTrade{trade(1_000_000, 100, 1, types.Buy)}, volume: big.NewRat(1, 1)},
		{trades: []types.CexTrade{trade(1_100_000, 101, 5, types.Buy)}, volume: big.NewRat(5, 1)},
	}
	used := assignFills(rings, big.NewRat(6, 1), big.NewRat(6, 1), types.Buy)
	var drawn *big.Rat = new(big.Rat)
	for _, tr := range used {
		drawn.Add(drawn, tr.Amount)
	}
	require.Equal(t, 0, drawn.Cmp(big.NewRat(6, 1)))
}

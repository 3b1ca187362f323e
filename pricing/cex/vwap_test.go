package cex

import (
	"math"
	"math/big"
	"testing"

	"github.com/mevtrace/engine/types"
	"github.com/stretchr/testify/require"
)

// TestComputeMakerTakerVWAPAppliesDistinctFeeTiers: a pre-target and a
// post-target print, each weighted by the bi-exponential decay kernel,
// priced at Binance's maker/taker fee tiers.
func TestComputeMakerTakerVWAPAppliesDistinctFeeTiers(t *testing.T) {
	const target = int64(1_700_000_000_000_000)
	trades := []types.CexTrade{
		trade(target-300_000, 100, 1, types.Sell),
		trade(target+400_000, 101, 1, types.Sell),
	}

	maker, taker, volume := computeMakerTakerVWAP(trades, target)
	require.NotNil(t, maker)
	require.NotNil(t, taker)
	require.Equal(t, 0, volume.Cmp(big.NewRat(2, 1)))

	makerFee, takerFee := types.Binance.Fees()
	lo := new(big.Rat).Mul(big.NewRat(100, 1), new(big.Rat).Sub(big.NewRat(1, 1), makerFee))
	hi := new(big.Rat).Mul(big.NewRat(101, 1), new(big.Rat).Sub(big.NewRat(1, 1), makerFee))
	require.True(t, maker.Cmp(lo) > 0 && maker.Cmp(hi) < 0, "maker price %s must sit strictly between %s and %s", maker, lo, hi)

	// Binance's taker fee is never better than its maker fee, so the taker
	// VWAP can never price above the maker VWAP over the same trade set.
	require.True(t, takerFee.Cmp(makerFee) >= 0)
	require.True(t, taker.Cmp(maker) <= 0)

	wPre := math.Exp(-3e-7 * 300_000)
	wPost := math.Exp(-1.2e-7 * 400_000)
	require.InDelta(t, 0.9139, wPre, 1e-4)
	require.InDelta(t, 0.9531, wPost, 1e-4)
}

func TestComputeMakerTakerVWAPEmptyTradesReturnsNil(t *testing.T) {
	maker, taker, volume := computeMakerTakerVWAP(nil, 0)
	require.Nil(t, maker)
	require.Nil(t, taker)
	require.Equal(t, 0, volume.Sign())
}

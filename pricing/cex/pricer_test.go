package cex

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mevtrace/engine/types"
	"github.com/stretchr/testify/require"
)

// TestGetOptimisticPriceIdentityReturnsOne: a pair priced against itself is
// exactly (1, 1) with no supporting trades.
func TestGetOptimisticPriceIdentityReturnsOne(t *testing.T) {
	a := common.HexToAddress("0xA")
	pair := types.NewPair(a, a)

	result, err := GetOptimisticPrice(TradeSource{}, pair, big.NewRat(1, 1), 1_700_000_000_000_000, false, nil, Config{})
	require.NoError(t, err)
	require.Equal(t, 0, result.Maker.Price.Cmp(big.NewRat(1, 1)))
	require.Equal(t, 0, result.Taker.Price.Cmp(big.NewRat(1, 1)))
	require.Empty(t, result.Maker.Trades)
	require.Equal(t, []types.Pair{pair}, result.Maker.Pairs)
}

func TestGetOptimisticPriceDirect(t *testing.T) {
	tokenA := common.HexToAddress("0xA")
	tokenB := common.HexToAddress("0xB")
	pair := types.NewPair(tokenA, tokenB)

	source := TradeSource{
		types.Binance: {
			pair: []types.CexTrade{
				trade(1_000_000, 100, 10, types.Buy),
				trade(1_000_010, 100, 10, types.Sell),
			},
		},
	}

	price, err := GetOptimisticPrice(source, pair, big.NewRat(5, 1), 1_000_000, false, nil, Config{})
	require.NoError(t, err)
	require.NotNil(t, price.Maker.Price)

	makerFee, _ := types.Binance.Fees()
	expected := new(big.Rat).Mul(big.NewRat(100, 1), new(big.Rat).Sub(big.NewRat(1, 1), makerFee))
	require.Equal(t, 0, price.Maker.Price.Cmp(expected))
}

// TestGetOptimisticPriceFallsBackToFlip: when P has no direct trades,
// flip(P) is used with direction Buy and an inverted price.
func TestGetOptimisticPriceFallsBackToFlip(t *testing.T) {
	tokenA := common.HexToAddress("0xA")
	tokenB := common.HexToAddress("0xB")
	pair := types.NewPair(tokenA, tokenB)
	flip := pair.Flip()

	source := TradeSource{
		types.Binance: {
			flip: []types.CexTrade{
				trade(1_000_000, 2, 10, types.Sell), // priced as B/A = 2 -> A/B = 1/2
			},
		},
	}

	price, err := GetOptimisticPrice(source, pair, big.NewRat(1, 1), 1_000_000, true, nil, Config{})
	require.NoError(t, err)

	makerFee, _ := types.Binance.Fees()
	expected := new(big.Rat).Mul(big.NewRat(1, 2), new(big.Rat).Sub(big.NewRat(1, 1), makerFee))
	require.Equal(t, 0, price.Maker.Price.Cmp(expected))
}

func TestGetOptimisticPriceViaIntermediary(t *testing.T) {
	tokenA := common.HexToAddress("0xA")
	tokenB := common.HexToAddress("0xB")
	weth := common.HexToAddress("0xWETH")
	pair := types.NewPair(tokenA, tokenB)

	source := TradeSource{
		types.Binance: {
			types.NewPair(tokenA, weth): {
				trade(1_000_000, 2, 10, types.Buy),
				trade(1_000_010, 2, 10, types.Sell),
			},
			types.NewPair(weth, tokenB): {
				trade(1_000_000, 3000, 10, types.Buy),
				trade(1_000_010, 3000, 10, types.Sell),
			},
		},
	}

	price, err := GetOptimisticPrice(source, pair, big.NewRat(5, 1), 1_000_000, false, []common.Address{weth}, Config{})
	require.NoError(t, err)

	makerFee, _ := types.Binance.Fees()
	net := new(big.Rat).Sub(big.NewRat(1, 1), makerFee)
	leg1 := new(big.Rat).Mul(big.NewRat(2, 1), net)
	leg2 := new(big.Rat).Mul(big.NewRat(3000, 1), net)
	expected := new(big.Rat).Mul(leg1, leg2)
	require.Equal(t, 0, price.Maker.Price.Cmp(expected))
}

func TestGetOptimisticPriceNoRoute(t *testing.T) {
	pair := types.NewPair(common.HexToAddress("0x1"), common.HexToAddress("0x2"))
	_, err := GetOptimisticPrice(TradeSource{}, pair, big.NewRat(1, 1), 0, false, nil, Config{})
	require.ErrorIs(t, err, ErrMissingTradeData)
}

// TestGetOptimisticPriceInsufficientVolumeFails: a direct basket that can't
// fill the requested volume fails unless bypass_vol is set.
func TestGetOptimisticPriceInsufficientVolumeFails(t *testing.T) {
	tokenA := common.HexToAddress("0xA")
	tokenB := common.HexToAddress("0xB")
	pair := types.NewPair(tokenA, tokenB)

	source := TradeSource{
		types.Binance: {
			pair: []types.CexTrade{trade(1_000_000, 100, 1, types.Buy)},
		},
	}

	_, err := GetOptimisticPrice(source, pair, big.NewRat(1_000, 1), 1_000_000, false, nil, Config{})
	require.ErrorIs(t, err, ErrInsufficientVolume)
}

// TestGetOptimisticPriceStableBridgeBypassesVolume: USDC/USDT always
// bypasses the volume floor even when the available trade volume falls far
// short of the requested size.
func TestGetOptimisticPriceStableBridgeBypassesVolume(t *testing.T) {
	pair := types.NewPair(usdcAddress, usdtAddress)
	source := TradeSource{
		types.Binance: {
			pair: []types.CexTrade{trade(1_000_000, 1, 1, types.Buy)},
		},
	}

	price, err := GetOptimisticPrice(source, pair, big.NewRat(1_000_000, 1), 1_000_000, false, nil, Config{})
	require.NoError(t, err)
	require.NotNil(t, price.Maker.Price)
}

package dex

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mevtrace/engine/types"
	"github.com/stretchr/testify/require"
)

func TestRouterDirectQuote(t *testing.T) {
	pool := common.HexToAddress("0xPOOL")
	weth := common.HexToAddress("0xWETH")
	usdc := common.HexToAddress("0xUSDC")

	g := NewGraph()
	g.RegisterPool(pool, types.NewPair(weth, usdc))
	require.NoError(t, g.UpdateReserves(pool, 0, big.NewInt(10), big.NewInt(30000)))

	router := NewRouter(g, nil, false, false)
	quote, err := router.Quote(types.NewPair(weth, usdc), 0)
	require.NoError(t, err)
	require.Nil(t, quote.GoesThrough)
	require.Equal(t, 0, quote.PostState.Cmp(big.NewRat(3000, 1)))
}

func TestRouterIntermediaryRoute(t *testing.T) {
	tokenA := common.HexToAddress("0xA")
	tokenB := common.HexToAddress("0xB")
	weth := common.HexToAddress("0xEE")

	poolAW := common.HexToAddress("0xA0EE")
	poolWB := common.HexToAddress("0xEE0B")

	g := NewGraph()
	g.RegisterPool(poolAW, types.NewPair(tokenA, weth))
	g.RegisterPool(poolWB, types.NewPair(weth, tokenB))
	require.NoError(t, g.UpdateReserves(poolAW, 0, big.NewInt(1000), big.NewInt(10)))
	require.NoError(t, g.UpdateReserves(poolWB, 0, big.NewInt(10), big.NewInt(20000)))

	router := NewRouter(g, []common.Address{weth}, false, false)
	quote, err := router.Quote(types.NewPair(tokenA, tokenB), 0)
	require.NoError(t, err)
	require.NotNil(t, quote.GoesThrough)
	require.Equal(t, weth, *quote.GoesThrough)
}

func TestRouterForceNoDirectSkipsDirectPool(t *testing.T) {
	pool := common.HexToAddress("0xPOOL")
	weth := common.HexToAddress("0xWETH")
	usdc := common.HexToAddress("0xUSDC")

	g := NewGraph()
	g.RegisterPool(pool, types.NewPair(weth, usdc))
	require.NoError(t, g.UpdateReserves(pool, 0, big.NewInt(10), big.NewInt(30000)))

	router := NewRouter(g, nil, false, true)
	_, err := router.Quote(types.NewPair(weth, usdc), 0)
	require.Error(t, err)
}

func TestCachedRouterServesFromCache(t *testing.T) {
	pool := common.HexToAddress("0xPOOL")
	weth := common.HexToAddress("0xWETH")
	usdc := common.HexToAddress("0xUSDC")

	g := NewGraph()
	g.RegisterPool(pool, types.NewPair(weth, usdc))
	require.NoError(t, g.UpdateReserves(pool, 0, big.NewInt(10), big.NewInt(30000)))

	router := NewRouter(g, nil, false, false)
	cached, err := NewCachedRouter(router, 16)
	require.NoError(t, err)

	q1, err := cached.Quote(types.NewPair(weth, usdc), 0)
	require.NoError(t, err)
	q2, err := cached.Quote(types.NewPair(weth, usdc), 0)
	require.NoError(t, err)
	require.Same(t, q1, q2)
}

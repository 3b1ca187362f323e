package dex

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mevtrace/engine/types"
	"github.com/stretchr/testify/require"
)

func TestPoolStatePrice(t *testing.T) {
	state := PoolState{Reserve0: big.NewInt(100), Reserve1: big.NewInt(300)}
	require.Equal(t, 0, state.Price().Cmp(big.NewRat(3, 1)))

	zero := PoolState{Reserve0: big.NewInt(0), Reserve1: big.NewInt(300)}
	require.Nil(t, zero.Price())
}

func TestGraphUpdateReservesCarriesPreState(t *testing.T) {
	pool := common.HexToAddress("0xPOOL")
	token0 := common.HexToAddress("0xA")
	token1 := common.HexToAddress("0xB")
	g := NewGraph()
	g.RegisterPool(pool, types.NewPair(token0, token1))

	require.NoError(t, g.UpdateReserves(pool, 0, big.NewInt(100), big.NewInt(200)))
	require.NoError(t, g.UpdateReserves(pool, 5, big.NewInt(110), big.NewInt(190)))

	pre, post, ok := g.StateAt(pool, 5)
	require.True(t, ok)
	require.Equal(t, big.NewInt(100), pre.Reserve0)
	require.Equal(t, big.NewInt(110), post.Reserve0)
}

func TestGraphUpdateReservesUnregisteredPool(t *testing.T) {
	g := NewGraph()
	err := g.UpdateReserves(common.HexToAddress("0xDEAD"), 0, big.NewInt(1), big.NewInt(1))
	require.Error(t, err)
}

package metadata

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mevtrace/engine/types"
	"github.com/stretchr/testify/require"
)

func TestBuilderAssemblesMetadata(t *testing.T) {
	header := types.BlockHeader{Number: 100}
	pair := types.NewPair(common.HexToAddress("0xA"), common.HexToAddress("0xB"))
	quote := types.DexQuote{Pair: pair, PostState: big.NewRat(3000, 1)}

	meta := NewBuilder(header).
		WithEthPrice(big.NewRat(3000, 1)).
		WithProposer(common.HexToAddress("0xPROP"), big.NewInt(1e9)).
		WithDexQuote(5, quote).
		Build()

	require.Equal(t, uint64(100), meta.Header.Number)
	got, ok := meta.DexQuoteAt(pair, 5)
	require.True(t, ok)
	require.Equal(t, 0, got.PostState.Cmp(big.NewRat(3000, 1)))
}

func TestDexQuoteAtFallsBackToEarlierTxIdx(t *testing.T) {
	pair := types.NewPair(common.HexToAddress("0xA"), common.HexToAddress("0xB"))
	quote := types.DexQuote{Pair: pair, PostState: big.NewRat(42, 1)}

	meta := NewBuilder(types.BlockHeader{}).WithDexQuote(2, quote).Build()

	got, ok := meta.DexQuoteAt(pair, 9)
	require.True(t, ok)
	require.Equal(t, 0, got.PostState.Cmp(big.NewRat(42, 1)))

	_, ok = meta.DexQuoteAt(pair, 0)
	require.False(t, ok)
}

package compose

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mevtrace/engine/types"
	"github.com/stretchr/testify/require"
)

func txHashes(n int) []common.Hash {
	out := make([]common.Hash, n)
	for i := range out {
		out[i] = common.BigToHash(big.NewInt(int64(i) + 1))
	}
	return out
}

func TestReduceMergesSandwichAndJitOnSameTxSet(t *testing.T) {
	hashes := txHashes(3)
	sData := types.NewSandwichData(hashes[0], hashes[1:2], hashes[2], common.Address{}, common.Address{})
	jData := types.NewJitData(hashes[0], hashes[1], hashes[2], 0, 0, common.Address{}, common.Address{})

	sandwich := types.NewBundle(types.MevTypeSandwich, 10, big.NewInt(1), big.NewInt(2), sData)
	jit := types.NewBundle(types.MevTypeJit, 5, big.NewInt(1), big.NewInt(2), jData)

	grouped := groupByType([]types.Bundle{sandwich, jit})
	out := Reduce(grouped)

	require.Len(t, out, 1)
	require.Equal(t, types.MevTypeJitSandwich, out[0].Header.MevType)
	require.InDelta(t, 15, out[0].Header.ProfitUSD, 0.0001)
}

func TestReduceDropsBackrunSubsumedBySandwich(t *testing.T) {
	hashes := txHashes(3)
	sData := types.NewSandwichData(hashes[0], hashes[1:2], hashes[2], common.Address{}, common.Address{})
	sandwich := types.NewBundle(types.MevTypeSandwich, 10, big.NewInt(0), big.NewInt(0), sData)

	bData := types.NewBackrunData(hashes[1], nil, common.Address{}, big.NewInt(1))
	backrun := types.NewBundle(types.MevTypeBackrun, 3, big.NewInt(0), big.NewInt(0), bData)

	grouped := groupByType([]types.Bundle{sandwich, backrun})
	out := Reduce(grouped)

	require.Len(t, out, 1)
	require.Equal(t, types.MevTypeSandwich, out[0].Header.MevType)
}

func TestReduceKeepsUnrelatedBundles(t *testing.T) {
	hashes := txHashes(2)
	lData := types.NewLiquidationData(hashes[0], common.Address{}, common.Address{}, big.NewInt(1))
	liq := types.NewBundle(types.MevTypeLiquidation, 1, big.NewInt(0), big.NewInt(0), lData)

	bData := types.NewBackrunData(hashes[1], nil, common.Address{}, big.NewInt(1))
	backrun := types.NewBundle(types.MevTypeBackrun, 2, big.NewInt(0), big.NewInt(0), bData)

	grouped := groupByType([]types.Bundle{liq, backrun})
	out := Reduce(grouped)

	require.Len(t, out, 2)
}

package compose

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mevtrace/engine/types"
	"github.com/stretchr/testify/require"
)

func TestFilterDropsNonPositiveProfitBundles(t *testing.T) {
	hashes := txHashes(3)
	unprofitable := types.NewBundle(types.MevTypeBackrun, 0, big.NewInt(0), big.NewInt(0),
		types.NewBackrunData(hashes[0], nil, common.Address{}, big.NewInt(1)))
	profitable := types.NewBundle(types.MevTypeBackrun, 5, big.NewInt(0), big.NewInt(0),
		types.NewBackrunData(hashes[1], nil, common.Address{}, big.NewInt(1)))

	out := Filter([]types.Bundle{unprofitable, profitable})
	require.Len(t, out, 1)
	require.InDelta(t, 5, out[0].Header.ProfitUSD, 0.0001)
}

func TestFilterKeepsNonProfitGatedTypesRegardlessOfSign(t *testing.T) {
	hashes := txHashes(1)
	liq := types.NewBundle(types.MevTypeLiquidation, -2, big.NewInt(0), big.NewInt(0),
		types.NewLiquidationData(hashes[0], common.Address{}, common.Address{}, big.NewInt(1)))

	out := Filter([]types.Bundle{liq})
	require.Len(t, out, 1)
}

package compose

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mevtrace/engine/metadata"
	"github.com/mevtrace/engine/types"
	"github.com/stretchr/testify/require"
)

func TestAggregateSumsGasAndBribes(t *testing.T) {
	tree := &types.CallTree{
		Header: types.BlockHeader{
			Number:      100,
			Hash:        common.HexToHash("0xblock"),
			Beneficiary: common.HexToAddress("0xBUILDER"),
			BaseFee:     big.NewInt(10),
		},
		TxRoots: []types.TxRoot{
			{GasDetails: types.GasDetails{GasUsed: 21000, PriorityFee: big.NewInt(100)}},
			{GasDetails: types.GasDetails{GasUsed: 50000, PriorityFee: big.NewInt(200)}},
		},
	}

	meta := metadata.NewBuilder(tree.Header).
		WithEthPrice(big.NewRat(3000, 1)).
		WithProposer(common.HexToAddress("0xPROPOSER"), big.NewInt(1_000_000_000_000_000_000)).
		Build()

	hashes := txHashes(1)
	bundle := types.NewBundle(types.MevTypeBackrun, 42, big.NewInt(7), big.NewInt(3),
		types.NewBackrunData(hashes[0], nil, common.Address{}, big.NewInt(1)))

	block := Aggregate(tree, meta, []types.Bundle{bundle})

	require.Equal(t, uint64(71000), block.CumulativeGasUsed)
	require.Equal(t, big.NewInt(300), block.CumulativePriorityFee)
	require.Equal(t, big.NewInt(7), block.TotalBribe)
	require.Equal(t, big.NewInt(3), block.CumulativeMevPriorityFeePaid)
	require.InDelta(t, 42, block.CumulativeMevProfitUSD, 0.0001)
	require.Equal(t, uint64(1), block.MevCount.Total)
	require.NotNil(t, block.MevCount.Backrun)
	require.Equal(t, uint64(1), *block.MevCount.Backrun)
	require.NotNil(t, block.ProposerProfitUSD)
	require.InDelta(t, 3000, *block.ProposerProfitUSD, 0.0001)
}

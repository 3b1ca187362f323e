package classifier

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mevtrace/engine/types"
	"github.com/stretchr/testify/require"
)

func v2SwapLog(pool, from, to common.Address, amount0In, amount1Out *big.Int) types.Log {
	data := make([]byte, 128)
	copy(data[32-len(amount0In.Bytes()):32], amount0In.Bytes())
	copy(data[128-len(amount1Out.Bytes()):128], amount1Out.Bytes())
	return types.Log{
		Address: pool,
		Topics: []common.Hash{
			topicFromSignature("Swap(address,uint256,uint256,uint256,uint256,address)"),
			common.BytesToHash(from.Bytes()),
			common.BytesToHash(to.Bytes()),
		},
		Data: data,
	}
}

func TestBuildCallTreeClassifiesSwap(t *testing.T) {
	pool := common.HexToAddress("0xP001")
	token0 := common.HexToAddress("0xA")
	token1 := common.HexToAddress("0xB")
	trader := common.HexToAddress("0xC")

	reader := NewMapReader()
	reader.AddPool(pool, types.ProtocolUniswapV2, token0, token1)

	dispatch := NewDispatcher()
	RegisterUniswapV2(dispatch, types.ProtocolUniswapV2)

	trace := types.TxTrace{
		TxHash:            common.HexToHash("0xtx1"),
		TxIndex:           0,
		GasUsed:           90000,
		EffectiveGasPrice: big.NewInt(30_000_000_000),
		Entries: []types.TraceEntry{
			{
				TraceIndex:  0,
				ParentIndex: -1,
				From:        trader,
				To:          pool,
				Value:       big.NewInt(0),
				Input:       []byte{},
				Logs:        []types.Log{v2SwapLog(pool, trader, trader, big.NewInt(1000), big.NewInt(990))},
			},
		},
	}

	builder := NewBuilder(dispatch, reader)
	tree, stats, err := builder.BuildCallTree([]types.TxTrace{trace}, types.BlockHeader{Number: 1})
	require.NoError(t, err)
	require.Equal(t, 1, stats.Txs[0].ClassifiedCount)

	swap, ok := tree.TxRoots[0].Nodes[0].Action.(*types.Swap)
	require.True(t, ok)
	require.Equal(t, token0, swap.TokenIn)
	require.Equal(t, token1, swap.TokenOut)
	require.Equal(t, big.NewInt(1000), swap.AmountIn)
	require.Equal(t, big.NewInt(990), swap.AmountOut)
}

func TestBuildCallTreeUnclassifiedFallback(t *testing.T) {
	reader := NewMapReader()
	dispatch := NewDispatcher()
	trace := types.TxTrace{
		TxHash:  common.HexToHash("0xtx2"),
		TxIndex: 0,
		Entries: []types.TraceEntry{
			{TraceIndex: 0, ParentIndex: -1, From: common.HexToAddress("0x1"), To: common.HexToAddress("0x2")},
		},
	}
	builder := NewBuilder(dispatch, reader)
	tree, stats, err := builder.BuildCallTree([]types.TxTrace{trace}, types.BlockHeader{Number: 1})
	require.NoError(t, err)
	require.Equal(t, 1, stats.Txs[0].UnclassifiedCount)
	_, ok := tree.TxRoots[0].Nodes[0].Action.(*types.Unclassified)
	require.True(t, ok)
}

func TestBuildCallTreeRevertNullifiesSubtree(t *testing.T) {
	reader := NewMapReader()
	dispatch := NewDispatcher()
	trace := types.TxTrace{
		TxHash:  common.HexToHash("0xtx3"),
		TxIndex: 0,
		Entries: []types.TraceEntry{
			{TraceIndex: 0, ParentIndex: -1, Reverted: true},
			{TraceIndex: 1, ParentIndex: 0},
		},
	}
	builder := NewBuilder(dispatch, reader)
	tree, _, err := builder.BuildCallTree([]types.TxTrace{trace}, types.BlockHeader{Number: 1})
	require.NoError(t, err)
	require.True(t, tree.TxRoots[0].Nodes[0].Nullified)
	require.True(t, tree.TxRoots[0].Nodes[1].Nullified)
}

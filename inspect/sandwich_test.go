package inspect

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mevtrace/engine/metadata"
	"github.com/mevtrace/engine/types"
	"github.com/stretchr/testify/require"
)

func swapRoot(txHash common.Hash, txIdx int, pool, trader, tokenIn, tokenOut common.Address, in, out *big.Int) types.TxRoot {
	swap := types.NewSwap(0, pool, trader, trader, tokenIn, tokenOut, in, out)
	return types.TxRoot{
		TxHash:  txHash,
		TxIndex: txIdx,
		Nodes:   []types.Node{{ID: 0, ParentID: -1, Trace: types.TraceEntry{TraceIndex: 0}, Action: swap}},
	}
}

func TestSandwichInspectorDetectsTriple(t *testing.T) {
	pool := common.HexToAddress("0xPOOL")
	attacker := common.HexToAddress("0xA77AC4E2")
	victim := common.HexToAddress("0x71C7")
	weth := common.HexToAddress("0xWETH")
	usdc := common.HexToAddress("0xUSDC")

	tree := &types.CallTree{TxRoots: []types.TxRoot{
		swapRoot(common.HexToHash("0x1"), 0, pool, attacker, weth, usdc, big.NewInt(1_000_000_000_000_000_000), big.NewInt(3_000_000_000)),
		swapRoot(common.HexToHash("0x2"), 1, pool, victim, weth, usdc, big.NewInt(100_000_000_000_000_000), big.NewInt(290_000_000)),
		swapRoot(common.HexToHash("0x3"), 2, pool, attacker, usdc, weth, big.NewInt(3_000_000_000), big.NewInt(1_010_000_000_000_000_000)),
	}}

	insp := NewSandwichInspector()
	bundles, err := insp.Inspect(tree, metadata.Metadata{})
	require.NoError(t, err)
	require.Len(t, bundles, 1)

	data, ok := bundles[0].Data.(*types.SandwichData)
	require.True(t, ok)
	require.Equal(t, attacker, data.Attacker)
	require.Len(t, data.Victims, 1)
}

func TestSandwichInspectorRequiresDifferentSenders(t *testing.T) {
	pool := common.HexToAddress("0xPOOL")
	trader := common.HexToAddress("0xTRADER")
	weth := common.HexToAddress("0xWETH")
	usdc := common.HexToAddress("0xUSDC")

	tree := &types.CallTree{TxRoots: []types.TxRoot{
		swapRoot(common.HexToHash("0x1"), 0, pool, trader, weth, usdc, big.NewInt(1), big.NewInt(1)),
		swapRoot(common.HexToHash("0x2"), 1, pool, trader, weth, usdc, big.NewInt(1), big.NewInt(1)),
		swapRoot(common.HexToHash("0x3"), 2, pool, trader, usdc, weth, big.NewInt(1), big.NewInt(1)),
	}}

	insp := NewSandwichInspector()
	bundles, err := insp.Inspect(tree, metadata.Metadata{})
	require.NoError(t, err)
	require.Empty(t, bundles)
}

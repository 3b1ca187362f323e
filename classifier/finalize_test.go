package classifier

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mevtrace/engine/types"
	"github.com/stretchr/testify/require"
)

func TestFillFlashLoanCollectsDescendants(t *testing.T) {
	token := common.HexToAddress("0xT")
	receiver := common.HexToAddress("0xR")
	root := &types.TxRoot{
		Nodes: []types.Node{
			{ID: 0, ParentID: -1, Children: []int{1}, Action: types.NewFlashLoan(0, receiver, token, big.NewInt(1000))},
			{ID: 1, ParentID: 0, Children: []int{2}, Action: types.NewSwap(1, common.Address{}, receiver, receiver, token, token, big.NewInt(1), big.NewInt(1))},
			{ID: 2, ParentID: 1, Action: types.NewTransfer(2, token, receiver, receiver, big.NewInt(1000))},
		},
	}
	fillFlashLoans(root)
	fl := root.Nodes[0].Action.(*types.FlashLoan)
	require.Len(t, fl.ChildActions, 2)
}

func TestFillLiquidationFindsCollateralTransfer(t *testing.T) {
	collateral := common.HexToAddress("0xCOL")
	debt := common.HexToAddress("0xDEBT")
	liquidator := common.HexToAddress("0xLIQ")
	root := &types.TxRoot{
		Nodes: []types.Node{
			{ID: 0, ParentID: -1, Children: []int{1}, Action: types.NewLiquidation(0, liquidator, common.HexToAddress("0xVICTIM"), debt, collateral, big.NewInt(500))},
			{ID: 1, ParentID: 0, Action: types.NewTransfer(1, collateral, common.HexToAddress("0xPOOL"), liquidator, big.NewInt(550))},
		},
	}
	fillLiquidations(root)
	liq := root.Nodes[0].Action.(*types.Liquidation)
	require.Equal(t, big.NewInt(550), liq.LiquidatedCollateral)
}

func TestNullifyRevertedPropagatesToDescendants(t *testing.T) {
	root := &types.TxRoot{
		Nodes: []types.Node{
			{ID: 0, ParentID: -1, Children: []int{1}},
			{ID: 1, ParentID: 0, Trace: types.TraceEntry{Reverted: true}, Children: []int{2}},
			{ID: 2, ParentID: 1},
		},
	}
	nullifyReverted(root, 0, false)
	require.False(t, root.Nodes[0].Nullified)
	require.True(t, root.Nodes[1].Nullified)
	require.True(t, root.Nodes[2].Nullified)
}

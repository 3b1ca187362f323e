package types

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func buildSimpleRoot(txIdx int, dup bool) TxRoot {
	idxB := 1
	if dup {
		idxB = 0
	}
	return TxRoot{
		TxHash:  common.HexToHash("0xaa"),
		TxIndex: txIdx,
		Nodes: []Node{
			{ID: 0, ParentID: -1, Children: []int{1}, Trace: TraceEntry{TraceIndex: 0}, Action: NewUnclassified(0)},
			{ID: 1, ParentID: 0, Trace: TraceEntry{TraceIndex: idxB}, Action: NewUnclassified(idxB)},
		},
	}
}

func TestCallTreeValidateOrdering(t *testing.T) {
	tree := &CallTree{TxRoots: []TxRoot{buildSimpleRoot(1, false), buildSimpleRoot(0, false)}}
	require.Error(t, tree.Validate())
}

func TestCallTreeValidateDuplicateTraceIndex(t *testing.T) {
	tree := &CallTree{TxRoots: []TxRoot{buildSimpleRoot(0, true)}}
	require.Error(t, tree.Validate())
}

func TestCallTreeValidateOK(t *testing.T) {
	tree := &CallTree{TxRoots: []TxRoot{buildSimpleRoot(0, false), buildSimpleRoot(1, false)}}
	require.NoError(t, tree.Validate())
}

func TestCumulativeGasUsed(t *testing.T) {
	tree := &CallTree{TxRoots: []TxRoot{
		{GasDetails: GasDetails{GasUsed: 21000}},
		{GasDetails: GasDetails{GasUsed: 50000}},
	}}
	require.Equal(t, uint64(71000), tree.CumulativeGasUsed())
}

func TestTxRootWalkSkipsNullified(t *testing.T) {
	root := TxRoot{Nodes: []Node{
		{ID: 0, ParentID: -1, Children: []int{1, 2}, Action: NewUnclassified(0)},
		{ID: 1, ParentID: 0, Action: NewUnclassified(1), Nullified: true},
		{ID: 2, ParentID: 0, Action: NewUnclassified(2)},
	}}
	actions := root.Actions(0)
	require.Len(t, actions, 2)
}

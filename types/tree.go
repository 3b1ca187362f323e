package types

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Node is one arena slot in a TxRoot. Parent/child references are indices
// into TxRoot.Nodes rather than pointers (see DESIGN NOTES: cyclic object
// graphs in the source become an arena + index here), which lets a CallTree
// be handed out as a read-only value to every inspector goroutine without
// any synchronization: the backing slice is never mutated once classification
// and the finalization pass complete.
type Node struct {
	ID         int
	ParentID   int // -1 for the transaction's top-level call
	Children   []int
	Trace      TraceEntry
	Action     Action
	Nullified  bool // subtree effect nullified because an ancestor reverted
}

// GasDetails carries the receipt-level facts the composer aggregates across
// a block.
type GasDetails struct {
	GasUsed           uint64
	EffectiveGasPrice *big.Int
	PriorityFee       *big.Int
}

// TxRoot is the call tree for a single transaction: gas_details plus an
// arena of classified nodes, index 0 always being the top-level call.
type TxRoot struct {
	TxHash     common.Hash
	TxIndex    int
	GasDetails GasDetails
	Nodes      []Node
}

// Root returns the transaction's top-level call frame.
func (t *TxRoot) Root() *Node {
	if len(t.Nodes) == 0 {
		return nil
	}
	return &t.Nodes[0]
}

// Node looks up an arena slot by ID. Panics on an out-of-range ID since a
// well-formed tree never produces one; callers that walk Children never hit
// this.
func (t *TxRoot) Node(id int) *Node {
	return &t.Nodes[id]
}

// Walk visits every node in the subtree rooted at id in preorder.
func (t *TxRoot) Walk(id int, visit func(*Node)) {
	n := t.Node(id)
	visit(n)
	for _, child := range n.Children {
		t.Walk(child, visit)
	}
}

// Actions collects every node's Action in the subtree rooted at id, in
// preorder, skipping nullified nodes.
func (t *TxRoot) Actions(id int) []Action {
	var out []Action
	t.Walk(id, func(n *Node) {
		if n.Nullified {
			return
		}
		out = append(out, n.Action)
	})
	return out
}

// CallTree is the per-block result of classification: a header plus one
// TxRoot per transaction, ordered by TxIndex.
type CallTree struct {
	Header  BlockHeader
	TxRoots []TxRoot
}

// CumulativeGasUsed sums gas_used across every tx root, which must equal the
// block's cumulative gas used (spec invariant).
func (c *CallTree) CumulativeGasUsed() uint64 {
	var total uint64
	for i := range c.TxRoots {
		total += c.TxRoots[i].GasDetails.GasUsed
	}
	return total
}

// Validate checks the structural invariants a CallTree must hold: tx roots
// ordered by TxIndex, and every node's TraceIndex unique within its tree. A
// violation here is a fatal-for-block error (orphan subtraces, duplicated
// trace_index), never a process-fatal one.
func (c *CallTree) Validate() error {
	for i := range c.TxRoots {
		root := &c.TxRoots[i]
		if i > 0 && root.TxIndex <= c.TxRoots[i-1].TxIndex {
			return fmt.Errorf("tx roots out of order at index %d (tx_idx=%d)", i, root.TxIndex)
		}
		seen := make(map[int]bool, len(root.Nodes))
		for _, n := range root.Nodes {
			if seen[n.Trace.TraceIndex] {
				return fmt.Errorf("tx %s: duplicate trace_index %d", root.TxHash, n.Trace.TraceIndex)
			}
			seen[n.Trace.TraceIndex] = true
		}
	}
	return nil
}

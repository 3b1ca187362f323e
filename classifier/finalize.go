package classifier

import "github.com/mevtrace/engine/types"

// finalize runs the post-classification passes that need the whole tree
// rather than a single call frame: nullifying reverted subtrees, and
// back-filling the two actions whose full shape only exists once their
// descendants are known (FlashLoan.ChildActions, Liquidation's collateral
// leg).
func finalize(tree *types.CallTree) {
	for i := range tree.TxRoots {
		root := &tree.TxRoots[i]
		if len(root.Nodes) == 0 {
			continue
		}
		nullifyReverted(root, 0, false)
		fillFlashLoans(root)
		fillLiquidations(root)
	}
}

// nullifyReverted marks every node in a reverted call's subtree as
// effect-nullified: a revert unwinds its own state changes and everything
// beneath it, but the call frames themselves stay in the tree for
// diagnostics.
func nullifyReverted(root *types.TxRoot, id int, parentReverted bool) {
	node := root.Node(id)
	reverted := parentReverted || node.Trace.Reverted
	node.Nullified = reverted
	for _, child := range node.Children {
		nullifyReverted(root, child, reverted)
	}
}

// fillFlashLoans populates each FlashLoan node's ChildActions with every
// non-nullified action in its subtree except its own.
func fillFlashLoans(root *types.TxRoot) {
	for i := range root.Nodes {
		fl, ok := root.Nodes[i].Action.(*types.FlashLoan)
		if !ok || root.Nodes[i].Nullified {
			continue
		}
		children := root.Actions(root.Nodes[i].ID)
		filtered := children[:0:0]
		for _, a := range children {
			if a.TraceIdx() == fl.TraceIdx() {
				continue
			}
			filtered = append(filtered, a)
		}
		fl.ChildActions = filtered
	}
}

// fillLiquidations finds the collateral-asset Transfer within a Liquidation's
// subtree moving collateral back to the liquidator and records its amount,
// pairing the LiquidationCall event with its matching collateral transfer.
func fillLiquidations(root *types.TxRoot) {
	for i := range root.Nodes {
		liq, ok := root.Nodes[i].Action.(*types.Liquidation)
		if !ok || root.Nodes[i].Nullified {
			continue
		}
		for _, a := range root.Actions(root.Nodes[i].ID) {
			xfer, ok := a.(*types.Transfer)
			if !ok || a.TraceIdx() == liq.TraceIdx() {
				continue
			}
			if xfer.Token == liq.CollateralAsset && xfer.To == liq.Liquidator {
				liq.LiquidatedCollateral = xfer.Amount
				break
			}
		}
	}
}

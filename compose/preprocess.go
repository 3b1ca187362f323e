package compose

import (
	"github.com/mevtrace/engine/classifier"
	"github.com/mevtrace/engine/types"
)

// Preprocess validates a freshly classified CallTree and reports its gas
// totals before inspection runs, the equivalent of coreth's worker checking
// its gas pool invariants before sealing a block — here read-only, over an
// already-built tree rather than against a live core.GasPool.
func Preprocess(tree *types.CallTree) (classifier.GasTotals, error) {
	if err := tree.Validate(); err != nil {
		return classifier.GasTotals{}, err
	}
	return classifier.AccumulateGas(tree), nil
}

package compose

import (
	"context"

	"github.com/mevtrace/engine/inspect"
	"github.com/mevtrace/engine/metadata"
	"github.com/mevtrace/engine/types"
)

// Run is the composer's full pipeline: preprocess, fan out to every
// inspector, reduce overlapping bundles, filter unprofitable ones, and
// aggregate the survivors into a MevBlock. A Preprocess failure is returned
// as an error; the rest of the stages never fail outright, matching
// inspect.RunAll's isolate-and-continue contract.
func Run(ctx context.Context, inspectors []inspect.Inspector, tree *types.CallTree, meta metadata.Metadata) (types.MevBlock, error) {
	if _, err := Preprocess(tree); err != nil {
		return types.MevBlock{}, err
	}

	raw := inspect.RunAll(ctx, inspectors, tree, meta)
	reduced := Reduce(groupByType(raw))
	filtered := Filter(reduced)

	return Aggregate(tree, meta, filtered), nil
}

package inspect

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/log"
	"github.com/mevtrace/engine/metadata"
	"github.com/mevtrace/engine/types"
	"golang.org/x/sync/errgroup"
)

// RunAll runs every inspector against the same (tree, meta) concurrently,
// one errgroup goroutine per inspector with no concurrency limit, and isolates a
// single inspector's failure from the rest of the block: a panic or error
// in one inspector is logged and its bundles are simply omitted rather than
// failing every other inspector's results too.
func RunAll(ctx context.Context, inspectors []Inspector, tree *types.CallTree, meta metadata.Metadata) []types.Bundle {
	var (
		mu      sync.Mutex
		bundles []types.Bundle
	)

	g, _ := errgroup.WithContext(ctx)
	for _, insp := range inspectors {
		insp := insp
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					log.Error("inspector panicked", "mevType", insp.MevType(), "panic", r)
				}
			}()
			found, err := insp.Inspect(tree, meta)
			if err != nil {
				log.Warn("inspector failed", "mevType", insp.MevType(), "err", err)
				return nil
			}
			mu.Lock()
			bundles = append(bundles, found...)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return bundles
}

// Package inspect runs the engine's independent MEV analyses over a
// block's classified CallTree and joined Metadata, each emitting zero or
// more candidate Bundles for the composer to dedupe and score.
package inspect

import (
	"github.com/mevtrace/engine/metadata"
	"github.com/mevtrace/engine/types"
)

// Inspector is one independent MEV analysis. Implementations must not
// mutate the CallTree or Metadata they're handed — both are shared
// read-only across every inspector running concurrently for a block.
type Inspector interface {
	MevType() types.MevType
	Inspect(tree *types.CallTree, meta metadata.Metadata) ([]types.Bundle, error)
}

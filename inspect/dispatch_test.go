package inspect

import (
	"context"
	"errors"
	"testing"

	"github.com/mevtrace/engine/metadata"
	"github.com/mevtrace/engine/types"
	"github.com/stretchr/testify/require"
)

type fakeInspector struct {
	mevType types.MevType
	bundles []types.Bundle
	err     error
	panics  bool
}

func (f *fakeInspector) MevType() types.MevType { return f.mevType }

func (f *fakeInspector) Inspect(*types.CallTree, metadata.Metadata) ([]types.Bundle, error) {
	if f.panics {
		panic("boom")
	}
	return f.bundles, f.err
}

func TestRunAllCollectsAcrossInspectors(t *testing.T) {
	ok1 := &fakeInspector{mevType: types.MevTypeSandwich, bundles: []types.Bundle{{Header: types.BundleHeader{MevType: types.MevTypeSandwich}}}}
	ok2 := &fakeInspector{mevType: types.MevTypeJit, bundles: []types.Bundle{{Header: types.BundleHeader{MevType: types.MevTypeJit}}}}

	bundles := RunAll(context.Background(), []Inspector{ok1, ok2}, &types.CallTree{}, metadata.Metadata{})
	require.Len(t, bundles, 2)
}

func TestRunAllIsolatesFailingInspector(t *testing.T) {
	good := &fakeInspector{mevType: types.MevTypeSandwich, bundles: []types.Bundle{{Header: types.BundleHeader{MevType: types.MevTypeSandwich}}}}
	bad := &fakeInspector{mevType: types.MevTypeJit, err: errors.New("boom")}
	crashing := &fakeInspector{mevType: types.MevTypeCexDex, panics: true}

	bundles := RunAll(context.Background(), []Inspector{good, bad, crashing}, &types.CallTree{}, metadata.Metadata{})
	require.Len(t, bundles, 1)
}

package store

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/mevtrace/engine/types"
)

// BlockProvider is the narrow read surface for stored block headers.
type BlockProvider interface {
	GetBlockHeader(number uint64) (types.BlockHeader, bool, error)
}

// TraceProvider is the narrow read surface the classifier needs.
type TraceProvider interface {
	GetTxTraces(blockNumber uint64) ([]types.TxTrace, bool, error)
}

// AddressProvider is the narrow read surface classifier.Reader is
// implemented against in production (classifier.MapReader plays this role
// in tests).
type AddressProvider interface {
	GetAddressProtocol(addr common.Address) (types.Protocol, bool, error)
	GetAddressTokens(pool common.Address) (common.Address, common.Address, bool, error)
}

// BundleProvider is the narrow read surface the `db inspect` CLI
// maintenance subcommand needs.
type BundleProvider interface {
	GetBundles(blockNumber uint64) ([]types.Bundle, bool, error)
	GetMevBlock(blockNumber uint64) (types.MevBlock, bool, error)
}

// DataProvider is the union every read-only consumer of a Store is actually
// offered; *Store satisfies it trivially.
type DataProvider interface {
	BlockProvider
	TraceProvider
	AddressProvider
	BundleProvider
}

var _ DataProvider = (*Store)(nil)

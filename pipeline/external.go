package pipeline

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mevtrace/engine/metadata"
	"github.com/mevtrace/engine/types"
)

// NoopTrades is the TradeWindowSource used when no CEX market-data feed is
// configured. CEX ingestion is an external collaborator (the Go analog of
// the original's Clickhouse download step) outside this module's scope;
// blocks still process, just without CEX-denominated pricing or any
// CexDex*/sandwich-vs-cex profit figures.
type NoopTrades struct{}

// TradesForBlock implements TradeWindowSource.
func (NoopTrades) TradesForBlock(ctx context.Context, header types.BlockHeader, before, after time.Duration) (types.CexTradeMap, error) {
	return make(types.CexTradeMap), nil
}

// NoopRelay is the RelayInfoSource used when no relay/builder API is
// configured, another external collaborator (TLS/HTTP glue to a relay) out
// of this module's scope. Blocks still process without proposer-reward
// metadata.
type NoopRelay struct{}

// RelayInfo implements RelayInfoSource.
func (NoopRelay) RelayInfo(ctx context.Context, header types.BlockHeader) (common.Address, *big.Int, *metadata.RelayBid, error) {
	return common.Address{}, nil, nil, nil
}

// StaticChainHead is a ChainHead that never moves, for historical or
// single-shot runs that have no live tip to follow.
type StaticChainHead struct {
	Number uint64
}

// HeadNumber implements ChainHead.
func (h StaticChainHead) HeadNumber(ctx context.Context) (uint64, error) {
	return h.Number, nil
}

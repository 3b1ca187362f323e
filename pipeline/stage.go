// Package pipeline drives the per-block DAG — trace, classify, price,
// inspect, compose, persist — across a bounded worker pool, with
// tip-follower, historical and open-ended-historical run modes and an
// optional heartbeat-based failover writer (spec.md §4.6/§5).
package pipeline

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/mevtrace/engine/classifier"
	"github.com/mevtrace/engine/compose"
	"github.com/mevtrace/engine/inspect"
	"github.com/mevtrace/engine/metadata"
	"github.com/mevtrace/engine/metrics"
	"github.com/mevtrace/engine/pricing/cex"
	"github.com/mevtrace/engine/pricing/dex"
	"github.com/mevtrace/engine/store"
	"github.com/mevtrace/engine/tracer"
	"github.com/mevtrace/engine/types"
)

// TradeWindowSource fetches the CEX trade tape the pricer needs for a
// block's time window, the collaborator spec.md calls the CEX ingestion
// side of the metadata join.
type TradeWindowSource interface {
	TradesForBlock(ctx context.Context, header types.BlockHeader, before, after time.Duration) (types.CexTradeMap, error)
}

// RelayInfoSource fetches the proposer/relay facts a block's metadata needs
// beyond its own header: fee recipient, realized MEV reward, and the
// relay's bid-acceptance timestamp, if any.
type RelayInfoSource interface {
	RelayInfo(ctx context.Context, header types.BlockHeader) (feeRecipient common.Address, mevReward *big.Int, bid *metadata.RelayBid, err error)
}

// Deps bundles every collaborator a single block's processing needs. One
// Deps is shared read-only across every worker in the scheduler's pool.
type Deps struct {
	Tracer   tracer.Tracer
	Store    *store.Store
	Dispatch *classifier.Dispatcher
	Factory  *inspect.Factory
	Metrics  *metrics.Registry

	QuoteAsset     common.Address
	WETH           common.Address
	Intermediaries []common.Address

	Trades TradeWindowSource
	Relay  RelayInfoSource

	CexConfig     cex.Config
	DexCacheSize  int
	ForceDirect   bool
	ForceNoDirect bool

	TimeWindowBefore time.Duration
	TimeWindowAfter  time.Duration
}

// ProcessBlock runs every stage for a single block sequentially (trace ->
// classify -> price -> metadata join -> inspect+compose -> persist),
// recording each stage's latency. Blocks themselves overlap via the
// Scheduler; only the stages within one block are ordered.
func ProcessBlock(ctx context.Context, d Deps, blockNumber uint64) error {
	header, traces, err := timedTrace(ctx, d, blockNumber)
	if err != nil {
		return fmt.Errorf("trace: %w", err)
	}

	tree, stats, err := timedClassify(d, traces, header)
	if err != nil {
		return fmt.Errorf("classify: %w", err)
	}
	if d.Metrics != nil {
		d.Metrics.TracesPerBlock.Observe(float64(len(traces)))
		d.Metrics.ClassifierUnknown.Add(float64(stats.TotalUnclassified()))
	}

	meta, err := timedPrice(ctx, d, tree, header)
	if err != nil {
		return fmt.Errorf("price: %w", err)
	}

	block, err := timedInspectAndCompose(ctx, d, tree, meta)
	if err != nil {
		return fmt.Errorf("compose: %w", err)
	}
	if d.Metrics != nil {
		for _, b := range block.Bundles {
			d.Metrics.BundlesByType.WithLabelValues(b.Header.MevType.String()).Inc()
		}
	}

	return timedStore(d, header, traces, meta, block.Bundles, block)
}

func timedTrace(ctx context.Context, d Deps, blockNumber uint64) (types.BlockHeader, []types.TxTrace, error) {
	start := time.Now()
	header, traces, err := d.Tracer.Trace(ctx, blockNumber)
	observeStage(d.Metrics, metrics.StageTrace, start)
	return header, traces, err
}

func timedClassify(d Deps, traces []types.TxTrace, header types.BlockHeader) (*types.CallTree, *types.BlockStats, error) {
	start := time.Now()
	builder := classifier.NewBuilder(d.Dispatch, store.ClassifierReader{Store: d.Store})
	tree, stats, err := builder.BuildCallTree(traces, header)
	observeStage(d.Metrics, metrics.StageClassify, start)
	return tree, stats, err
}

func timedPrice(ctx context.Context, d Deps, tree *types.CallTree, header types.BlockHeader) (metadata.Metadata, error) {
	start := time.Now()
	defer func() { observeStage(d.Metrics, metrics.StagePrice, start) }()

	builder := metadata.NewBuilder(header)

	graph := buildPoolGraph(tree)
	router := dex.NewRouter(graph, d.Intermediaries, d.ForceDirect, d.ForceNoDirect)
	cachedRouter, err := dex.NewCachedRouter(router, d.DexCacheSize)
	if err != nil {
		return metadata.Metadata{}, err
	}
	if d.Metrics != nil {
		cachedRouter.OnHitMiss(func() { d.Metrics.PricerCacheHits.Inc() }, func() { d.Metrics.PricerCacheMisses.Inc() })
	}

	pairs := pairsTraded(tree)
	for i := range tree.TxRoots {
		txIdx := tree.TxRoots[i].TxIndex
		for _, pair := range pairs {
			quote, err := cachedRouter.Quote(pair, txIdx)
			if err != nil {
				continue
			}
			builder.WithDexQuote(txIdx, *quote)
		}
	}

	trades, err := d.Trades.TradesForBlock(ctx, header, d.TimeWindowBefore, d.TimeWindowAfter)
	if err != nil {
		log.Warn("cex trade fetch failed, continuing without cex prices", "block", header.Number, "err", err)
		trades = make(types.CexTradeMap)
	}
	targetMicros := int64(header.TimestampMicros())
	for _, byPair := range snapshotCexPrices(trades, targetMicros) {
		for _, q := range byPair {
			builder.WithCexPrice(q)
		}
	}
	if price, err := ethPriceUSD(trades, d.WETH, d.QuoteAsset, targetMicros, d.Intermediaries, d.CexConfig); err == nil {
		builder.WithEthPrice(price)
	}

	if d.Relay != nil {
		recipient, reward, bid, err := d.Relay.RelayInfo(ctx, header)
		if err != nil {
			log.Warn("relay info fetch failed", "block", header.Number, "err", err)
		} else {
			builder.WithProposer(recipient, reward)
			builder.WithRelayBid(bid)
		}
	}

	return builder.Build(), nil
}

func timedInspectAndCompose(ctx context.Context, d Deps, tree *types.CallTree, meta metadata.Metadata) (types.MevBlock, error) {
	start := time.Now()
	defer func() { observeStage(d.Metrics, metrics.StageCompose, start) }()

	inspectors := d.Factory.Build()
	return compose.Run(ctx, inspectors, tree, meta)
}

func timedStore(d Deps, header types.BlockHeader, traces []types.TxTrace, meta metadata.Metadata, bundles []types.Bundle, block types.MevBlock) error {
	start := time.Now()
	defer func() { observeStage(d.Metrics, metrics.StageStore, start) }()

	if err := d.Store.PutBlockHeader(header); err != nil {
		return err
	}
	if err := d.Store.PutTxTraces(header.Number, traces); err != nil {
		return err
	}
	if err := d.Store.PutCexPrices(header.Number, meta.CexPrices); err != nil {
		return err
	}
	byTxIdx := make(map[uint16][]types.DexQuote)
	for key, quote := range meta.DexQuotes {
		byTxIdx[uint16(key.TxIdx)] = append(byTxIdx[uint16(key.TxIdx)], quote)
	}
	for txIdx, quotes := range byTxIdx {
		if err := d.Store.PutDexQuotes(header.Number, txIdx, quotes); err != nil {
			return err
		}
	}
	if err := d.Store.PutBundles(header.Number, bundles); err != nil {
		return err
	}
	return d.Store.PutMevBlock(block)
}

func observeStage(m *metrics.Registry, stage metrics.Stage, start time.Time) {
	if m == nil {
		return
	}
	m.StageLatency.WithLabelValues(string(stage)).Observe(time.Since(start).Seconds())
}

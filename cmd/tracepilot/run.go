package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/mevtrace/engine/classifier"
	"github.com/mevtrace/engine/config"
	"github.com/mevtrace/engine/inspect"
	"github.com/mevtrace/engine/metrics"
	"github.com/mevtrace/engine/pipeline"
	"github.com/mevtrace/engine/pricing/cex"
	"github.com/mevtrace/engine/store"
	"github.com/mevtrace/engine/tracer"
	"github.com/mevtrace/engine/types"
	"github.com/urfave/cli/v2"
)

// defaultQuoteAsset is mainnet USDT, spec.md's stated --quote-asset default.
const defaultQuoteAsset = "0xdAC17F958D2ee523a2206206994597C13D831ec7"

// defaultWETH is mainnet WETH, the asset ethPriceUSD prices against the
// quote asset.
const defaultWETH = "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"

var runCommand = &cli.Command{
	Name:  "run",
	Usage: "Run the block pipeline",
	Flags: []cli.Flag{
		&cli.Uint64Flag{Name: "start-block", Usage: "First block to process"},
		&cli.Uint64Flag{Name: "end-block", Usage: "Last block to process (0 = open-ended / tip-follower)"},
		&cli.IntFlag{Name: "max-tasks", Usage: "Max blocks processed concurrently (default: 80% of physical cores)"},
		&cli.IntFlag{Name: "min-batch-size", Usage: "Minimum blocks per historical batch submission (validated; the scheduler does not read it)"},
		&cli.StringFlag{Name: "quote-asset", Value: defaultQuoteAsset, Usage: "USD-reference quote asset address"},
		&cli.StringFlag{Name: "inspectors", Usage: "Comma-separated inspector subset (default: all)"},
		&cli.StringFlag{Name: "cex-exchanges", Value: "binance,coinbase,okex,bybitspot,kucoin", Usage: "Comma-separated CEX exchange set"},
		&cli.BoolFlag{Name: "force-dex-pricing", Usage: "Price DEX pairs through direct pools only (DEX quotes are always recomputed, never read back from the store)"},
		&cli.BoolFlag{Name: "force-no-dex-pricing", Usage: "Skip direct pools and price DEX pairs only through an intermediary hop (DEX pricing stays on)"},
		&cli.Uint64Flag{Name: "behind-tip", Value: 10, Usage: "Blocks to stay behind chain head in tip-follower mode"},
		&cli.BoolFlag{Name: "open-ended", Usage: "With no --end-block, run start..∞ until SIGINT instead of following chain head"},
		&cli.BoolFlag{Name: "cli-only", Usage: "Render live per-stage counters to the terminal instead of a TUI"},
		&cli.BoolFlag{Name: "with-metrics", Usage: "Serve the Prometheus scrape endpoint on --metrics-port"},
		&cli.BoolFlag{Name: "enable-fallback", Usage: "Run the heartbeat-based failover writer"},
		&cli.StringFlag{Name: "fallback-server", Usage: "Heartbeat monitor websocket URL (required with --enable-fallback)"},
		&cli.DurationFlag{Name: "tw-before", Value: 3 * time.Second, Usage: "CEX trade window before block timestamp"},
		&cli.DurationFlag{Name: "tw-after", Value: 6 * time.Second, Usage: "CEX trade window after block timestamp"},
		&cli.DurationFlag{Name: "op-tw-before", Value: 2 * time.Second, Usage: "Optimistic ETH price window before block timestamp"},
		&cli.DurationFlag{Name: "op-tw-after", Value: 5 * time.Second, Usage: "Optimistic ETH price window after block timestamp"},
		&cli.DurationFlag{Name: "mk-time", Usage: "CexDexMarkout lookback/lookahead offset (parsed; no inspector reads it)"},
	},
	Action: runAction,
}

func runAction(c *cli.Context) error {
	cfg := config.DefaultRunConfig()
	cfg.DBPath = c.String(dbPathFlag.Name)
	cfg.StartBlock = c.Uint64("start-block")
	cfg.EndBlock = c.Uint64("end-block")
	if c.IsSet("max-tasks") {
		cfg.MaxTasks = c.Int("max-tasks")
	}
	cfg.MinBatchSize = c.Int("min-batch-size")
	cfg.BehindTip = c.Uint64("behind-tip")
	cfg.QuoteAsset = c.String("quote-asset")
	cfg.Inspectors = splitNonEmpty(c.String("inspectors"))
	cfg.ForceDexPricing = c.Bool("force-dex-pricing")
	cfg.ForceNoDexPricing = c.Bool("force-no-dex-pricing")
	cfg.CLIOnly = c.Bool("cli-only")
	cfg.WithMetrics = c.Bool("with-metrics")
	cfg.MetricsPort = c.Int(metricsPortFlag.Name)
	cfg.EnableFallback = c.Bool("enable-fallback")
	cfg.FallbackServer = c.String("fallback-server")
	cfg.TimeWindowBefore = c.Duration("tw-before")
	cfg.TimeWindowAfter = c.Duration("tw-after")
	cfg.OptimisticWindowBefore = c.Duration("op-tw-before")
	cfg.OptimisticWindowAfter = c.Duration("op-tw-after")
	cfg.MarkoutTime = c.Duration("mk-time")
	cfg.Verbosity = c.Int(verbosityFlag.Name)

	for _, name := range splitNonEmpty(c.String("cex-exchanges")) {
		ex, ok := types.ParseCexExchange(name)
		if !ok {
			return fmt.Errorf("run: unknown cex exchange %q", name)
		}
		cfg.CexExchanges = append(cfg.CexExchanges, ex)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("run: open store: %w", err)
	}
	defer st.Close()

	inspectCfg, err := inspect.ConfigFromNames(cfg.Inspectors)
	if err != nil {
		return err
	}

	reg := metrics.New()
	var metricsSrv *http.Server
	if cfg.WithMetrics {
		mux := http.NewServeMux()
		mux.Handle("/metrics", reg.Handler())
		metricsSrv = &http.Server{Addr: fmt.Sprintf(":%d", cfg.MetricsPort), Handler: mux}
		go func() {
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics server stopped", "err", err)
			}
		}()
		defer metricsSrv.Close()
	}

	deps := pipeline.Deps{
		Tracer:         tracer.NewRetryingTracer(tracer.NotConfiguredTracer{}, tracer.DefaultRetryConfig()),
		Store:          st,
		Dispatch:       classifier.NewDefaultDispatcher(),
		Factory:        inspect.NewFactory(inspectCfg),
		Metrics:        reg,
		QuoteAsset:     common.HexToAddress(cfg.QuoteAsset),
		WETH:           common.HexToAddress(defaultWETH),
		Intermediaries: nil,
		Trades:         pipeline.NoopTrades{},
		Relay:          pipeline.NoopRelay{},
		CexConfig: cex.Config{
			OptimisticBeforeMicros: cfg.OptimisticWindowBefore.Microseconds(),
			OptimisticAfterMicros:  cfg.OptimisticWindowAfter.Microseconds(),
		},
		DexCacheSize:   4096,
		ForceDirect:    cfg.ForceDexPricing,
		ForceNoDirect:  cfg.ForceNoDexPricing,
		TimeWindowBefore: cfg.TimeWindowBefore,
		TimeWindowAfter:  cfg.TimeWindowAfter,
	}

	runner := &pipeline.Runner{
		Scheduler:  pipeline.NewScheduler(int64(cfg.MaxTasks)),
		Deps:       deps,
		StartBlock: cfg.StartBlock,
		EndBlock:   cfg.EndBlock,
		BehindTip:  cfg.BehindTip,
		PollInterval: func(ctx context.Context) error {
			select {
			case <-time.After(12 * time.Second):
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	}
	switch {
	case cfg.EndBlock != 0:
		runner.Mode = pipeline.ModeHistorical
	case c.Bool("open-ended"):
		runner.Mode = pipeline.ModeOpenEndedHistorical
	default:
		runner.Mode = pipeline.ModeTipFollower
		log.Warn("no live chain-head source configured, tip-follower will process one fixed window and idle")
		runner.Head = pipeline.StaticChainHead{Number: cfg.StartBlock + cfg.BehindTip}
	}

	if cfg.EnableFallback {
		if err := runFallback(c.Context, cfg, reg); err != nil {
			return err
		}
	}

	ctx, cancel := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if cfg.CLIOnly && isTerminal(os.Stdout) {
		stop := startLiveCounters(ctx, reg)
		defer stop()
	}

	log.Info("tracepilot starting", "mode", runner.Mode, "start", cfg.StartBlock, "end", cfg.EndBlock)
	return runner.Run(ctx)
}

func runFallback(ctx context.Context, cfg config.RunConfig, reg *metrics.Registry) error {
	if cfg.FallbackServer == "" {
		return fmt.Errorf("run: enable-fallback requires fallback-server")
	}
	client := &pipeline.HeartbeatClient{URL: cfg.FallbackServer, Metrics: reg}
	go func() {
		if err := client.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Warn("heartbeat client stopped", "err", err)
		}
	}()
	return nil
}

func splitNonEmpty(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

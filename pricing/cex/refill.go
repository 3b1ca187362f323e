package cex

import (
	"context"
	"fmt"
	"sync"

	"github.com/mevtrace/engine/types"
	"golang.org/x/sync/singleflight"
)

// Fetcher loads a trade tape window from the external trade-data
// collaborator, the tracer-adjacent external dependency for CEX data.
// WindowMicros brackets [from, to).
type Fetcher interface {
	FetchTrades(ctx context.Context, exchange types.CexExchange, pair types.Pair, fromMicros, toMicros int64) ([]types.CexTrade, error)
}

// RefillConfig bounds how a RefillCache windows its fetches: a fixed window
// width around the requested instant, plus the same quality/optimistic-bound
// config the pricer itself uses.
type RefillConfig struct {
	WindowMicros int64
	Config
}

// RefillCache loads and caches (exchange, pair, window) trade tapes on
// demand, deduplicating concurrent requests for the same window across the
// inspector pool with a singleflight group rather than refetching per
// goroutine.
type RefillCache struct {
	fetcher Fetcher
	cfg     RefillConfig
	group   singleflight.Group
	mu      sync.Mutex
	cache   map[refillKey][]types.CexTrade
}

type refillKey struct {
	exchange    types.CexExchange
	pair        types.Pair
	windowStart int64
}

// NewRefillCache wires a Fetcher and window config into an empty cache.
func NewRefillCache(fetcher Fetcher, cfg RefillConfig) *RefillCache {
	return &RefillCache{fetcher: fetcher, cfg: cfg, cache: make(map[refillKey][]types.CexTrade)}
}

// Trades returns the cached (or newly fetched) trade tape covering
// targetMicros for (exchange, pair), aligning the request to the cache's
// fixed window so repeated nearby lookups within a block hit the same
// entry.
func (c *RefillCache) Trades(ctx context.Context, exchange types.CexExchange, pair types.Pair, targetMicros int64) ([]types.CexTrade, error) {
	windowStart := alignWindow(targetMicros, c.cfg.WindowMicros)
	key := refillKey{exchange: exchange, pair: pair, windowStart: windowStart}

	c.mu.Lock()
	trades, ok := c.cache[key]
	c.mu.Unlock()
	if ok {
		return trades, nil
	}

	groupKey := fmt.Sprintf("%d|%s|%d", exchange, pair, windowStart)
	v, err, _ := c.group.Do(groupKey, func() (interface{}, error) {
		trades, err := c.fetcher.FetchTrades(ctx, exchange, pair, windowStart, windowStart+c.cfg.WindowMicros)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.cache[key] = trades
		c.mu.Unlock()
		return trades, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]types.CexTrade), nil
}

func alignWindow(targetMicros, windowMicros int64) int64 {
	if windowMicros <= 0 {
		return targetMicros
	}
	return (targetMicros / windowMicros) * windowMicros
}

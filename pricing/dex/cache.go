package dex

import (
	lru "github.com/hashicorp/golang-lru"
	"github.com/mevtrace/engine/types"
)

// cacheKey identifies a single quote request within a block.
type cacheKey struct {
	pair  types.Pair
	txIdx int
}

// CachedRouter wraps a Router with an LRU quote cache keyed by (pair, tx
// index), so a repeated request for the same key is answered without
// walking the graph again.
type CachedRouter struct {
	router *Router
	cache  *lru.Cache

	onHit  func()
	onMiss func()
}

// NewCachedRouter wraps router with an LRU cache holding up to size entries.
func NewCachedRouter(router *Router, size int) (*CachedRouter, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &CachedRouter{router: router, cache: cache}, nil
}

// OnHitMiss registers callbacks invoked on every cache hit/miss, the hook
// the pipeline stage uses to feed the pricer cache hit-rate gauge.
func (c *CachedRouter) OnHitMiss(onHit, onMiss func()) {
	c.onHit, c.onMiss = onHit, onMiss
}

// Quote serves a cached result when available, otherwise delegates to the
// wrapped Router and caches the outcome.
func (c *CachedRouter) Quote(pair types.Pair, txIdx int) (*types.DexQuote, error) {
	key := cacheKey{pair: pair, txIdx: txIdx}
	if v, ok := c.cache.Get(key); ok {
		if c.onHit != nil {
			c.onHit()
		}
		return v.(*types.DexQuote), nil
	}
	if c.onMiss != nil {
		c.onMiss()
	}
	quote, err := c.router.Quote(pair, txIdx)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, quote)
	return quote, nil
}

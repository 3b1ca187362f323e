// Package dex reconstructs on-chain spot prices from the pool reserves
// observed in a block's classified actions: a token graph where edges are
// pools, walked directly or through a single intermediary hop, snapshotted
// before and after every transaction so the pricer can answer "what was
// this pool worth right before tx N."
package dex

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mevtrace/engine/types"
)

// PoolState is a constant-product pool's reserves at a point in time.
type PoolState struct {
	Pool     common.Address
	Pair     types.Pair
	Reserve0 *big.Int
	Reserve1 *big.Int
}

// Price returns token1 per token0 as an exact rational, or nil if either
// reserve is zero (an uninitialized or fully drained pool has no price).
func (p PoolState) Price() *types.Rat {
	if p.Reserve0 == nil || p.Reserve1 == nil || p.Reserve0.Sign() == 0 || p.Reserve1.Sign() == 0 {
		return nil
	}
	return new(types.Rat).SetFrac(p.Reserve1, p.Reserve0)
}

// snapshot is one pool's reserves immediately before and after a given
// transaction index within the block.
type snapshot struct {
	pre  PoolState
	post PoolState
}

// Graph is the per-block pool-reserve graph: nodes are tokens, edges are
// pools, and every pool carries a pre/post snapshot per tx index at which
// its reserves changed.
type Graph struct {
	pools map[common.Address]types.Pair
	byTx  map[common.Address]map[int]*snapshot
	edges map[common.Address][]common.Address // token -> pools quoting it
}

// NewGraph returns an empty pool graph.
func NewGraph() *Graph {
	return &Graph{
		pools: make(map[common.Address]types.Pair),
		byTx:  make(map[common.Address]map[int]*snapshot),
		edges: make(map[common.Address][]common.Address),
	}
}

// RegisterPool seeds the graph with a pool discovered via a NewPoolAction.
func (g *Graph) RegisterPool(pool common.Address, pair types.Pair) {
	if _, exists := g.pools[pool]; exists {
		return
	}
	g.pools[pool] = pair
	g.edges[pair.Token0] = append(g.edges[pair.Token0], pool)
	g.edges[pair.Token1] = append(g.edges[pair.Token1], pool)
}

// UpdateReserves records a pool's reserves immediately after txIdx,
// carrying them forward as the pre-state of the next update and closing
// out the prior entry's post-state.
func (g *Graph) UpdateReserves(pool common.Address, txIdx int, reserve0, reserve1 *big.Int) error {
	pair, known := g.pools[pool]
	if !known {
		return fmt.Errorf("dex: unregistered pool %s", pool)
	}
	state := PoolState{Pool: pool, Pair: pair, Reserve0: reserve0, Reserve1: reserve1}

	byTx, ok := g.byTx[pool]
	if !ok {
		byTx = make(map[int]*snapshot)
		g.byTx[pool] = byTx
	}
	pre := g.latestBefore(pool, txIdx)
	byTx[txIdx] = &snapshot{pre: pre, post: state}
	return nil
}

// latestBefore returns the most recent post-state recorded for pool strictly
// before txIdx, or the zero PoolState if none exists yet.
func (g *Graph) latestBefore(pool common.Address, txIdx int) PoolState {
	byTx := g.byTx[pool]
	best := -1
	var bestState PoolState
	for idx, snap := range byTx {
		if idx < txIdx && idx > best {
			best = idx
			bestState = snap.post
		}
	}
	return bestState
}

// StateAt returns a pool's pre/post reserve snapshot for the given tx
// index. ok is false if the pool never updated at that index.
func (g *Graph) StateAt(pool common.Address, txIdx int) (pre, post PoolState, ok bool) {
	byTx, exists := g.byTx[pool]
	if !exists {
		return PoolState{}, PoolState{}, false
	}
	snap, exists := byTx[txIdx]
	if !exists {
		return PoolState{}, PoolState{}, false
	}
	return snap.pre, snap.post, true
}

// PoolsFor returns every pool registered for a token, used by the router to
// enumerate direct and one-hop candidates.
func (g *Graph) PoolsFor(token common.Address) []common.Address {
	return g.edges[token]
}

// PairOf returns a registered pool's token pair.
func (g *Graph) PairOf(pool common.Address) (types.Pair, bool) {
	p, ok := g.pools[pool]
	return p, ok
}

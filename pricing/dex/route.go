package dex

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mevtrace/engine/types"
)

// Router answers price quotes against a Graph, trying a direct pool first
// and falling back to a single intermediary hop. ForceDirect and
// ForceNoDirect mirror the pipeline's force_dex_pricing/force_no_dex_pricing
// flags and are mutually exclusive by construction (config.RunConfig.Validate rejects
// both set at startup).
type Router struct {
	graph         *Graph
	intermediaries []common.Address
	forceDirect   bool
	forceNoDirect bool
}

// NewRouter builds a router over graph. intermediaries is the ordered list
// of tokens tried as a one-hop bridge (typically WETH/stablecoins).
func NewRouter(graph *Graph, intermediaries []common.Address, forceDirect, forceNoDirect bool) *Router {
	return &Router{graph: graph, intermediaries: intermediaries, forceDirect: forceDirect, forceNoDirect: forceNoDirect}
}

// Quote prices pair at txIdx, trying direct first unless forceNoDirect is
// set, then every registered intermediary hop unless forceDirect is set,
// and returns the candidate route with the greatest pool liquidity (for a
// two-hop route, the smaller of its two legs' liquidity).
func (r *Router) Quote(pair types.Pair, txIdx int) (*types.DexQuote, error) {
	var candidates []*types.DexQuote

	if !r.forceNoDirect {
		if q := r.direct(pair, txIdx); q != nil {
			candidates = append(candidates, q)
		}
	}
	if !r.forceDirect {
		candidates = append(candidates, r.viaIntermediaries(pair, txIdx)...)
	}

	if len(candidates) == 0 {
		return nil, fmt.Errorf("dex: no route found for pair %s at tx %d", pair, txIdx)
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.PoolLiquidity != nil && (best.PoolLiquidity == nil || c.PoolLiquidity.Cmp(best.PoolLiquidity) > 0) {
			best = c
		}
	}
	best.FirstHopConnections = len(candidates)
	return best, nil
}

// direct finds a pool directly quoting pair, if one is registered.
func (r *Router) direct(pair types.Pair, txIdx int) *types.DexQuote {
	for _, pool := range r.graph.PoolsFor(pair.Token0) {
		poolPair, _ := r.graph.PairOf(pool)
		if poolPair == pair || poolPair.Flip() == pair {
			pre, post, ok := r.graph.StateAt(pool, txIdx)
			if !ok {
				continue
			}
			return quoteFromStates(pair, pre, post, nil)
		}
	}
	return nil
}

// viaIntermediaries tries every configured bridge token as a single
// intermediary hop: pair.Token0 -> bridge -> pair.Token1, composing the two
// legs' prices via ExchangePrice-style multiplication.
func (r *Router) viaIntermediaries(pair types.Pair, txIdx int) []*types.DexQuote {
	var out []*types.DexQuote
	for _, bridge := range r.intermediaries {
		if bridge == pair.Token0 || bridge == pair.Token1 {
			continue
		}
		leg1 := r.direct(types.NewPair(pair.Token0, bridge), txIdx)
		leg2 := r.direct(types.NewPair(bridge, pair.Token1), txIdx)
		if leg1 == nil || leg2 == nil {
			continue
		}
		composed := composeQuotes(pair, leg1, leg2, bridge)
		out = append(out, composed)
	}
	return out
}

func quoteFromStates(pair types.Pair, pre, post PoolState, goesThrough *common.Address) *types.DexQuote {
	prePrice, postPrice := pre.Price(), post.Price()
	if postPrice == nil {
		return nil
	}
	liquidity := post.Reserve1
	var liq *types.Rat
	if liquidity != nil {
		liq = types.ScaledRational(liquidity, 0)
	}
	return &types.DexQuote{
		Pair:          pair,
		PreState:      prePrice,
		PostState:     postPrice,
		PoolLiquidity: liq,
		GoesThrough:   goesThrough,
	}
}

// composeQuotes multiplies two single-hop quotes' prices, the Go analog of
// ExchangePrice.Compose in the CEX pricer: final price is leg1 * leg2,
// liquidity is the bottleneck (minimum) of the two legs.
func composeQuotes(pair types.Pair, leg1, leg2 *types.DexQuote, bridge common.Address) *types.DexQuote {
	var pre, post *types.Rat
	if leg1.PreState != nil && leg2.PreState != nil {
		pre = new(types.Rat).Mul(leg1.PreState, leg2.PreState)
	}
	if leg1.PostState != nil && leg2.PostState != nil {
		post = new(types.Rat).Mul(leg1.PostState, leg2.PostState)
	}
	liquidity := leg1.PoolLiquidity
	if leg2.PoolLiquidity != nil && (liquidity == nil || leg2.PoolLiquidity.Cmp(liquidity) < 0) {
		liquidity = leg2.PoolLiquidity
	}
	b := bridge
	return &types.DexQuote{
		Pair:          pair,
		PreState:      pre,
		PostState:     post,
		PoolLiquidity: liquidity,
		GoesThrough:   &b,
	}
}

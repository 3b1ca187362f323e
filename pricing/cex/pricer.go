package cex

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/mevtrace/engine/types"
)

// Config controls how the pricer builds and grades baskets: per-exchange
// execution-quality percentiles, and how far the expanding window is
// allowed to grow on each side before the pricer gives up.
type Config struct {
	// Quality maps exchange -> pair -> execution-quality percentile (0-100)
	// to keep. A pair with no entry, or an exchange/pair pair missing
	// entirely, falls back to baseExecutionQuality.
	Quality map[types.CexExchange]map[types.Pair]int

	// OptimisticBeforeMicros/OptimisticAfterMicros cap how far the basket
	// queue's expansion loop may widen each boundary, in microseconds. 0
	// means unbounded on that side.
	OptimisticBeforeMicros int64
	OptimisticAfterMicros  int64
}

func (c Config) qualityPct(pair types.Pair) qualityLookup {
	return func(exchange types.CexExchange) int {
		if byExchange, ok := c.Quality[exchange]; ok {
			if pct, ok := byExchange[pair]; ok {
				return pct
			}
		}
		return baseExecutionQuality
	}
}

// TradeSource is exchange -> pair -> that exchange's trade tape for pair,
// the shape the store hands the pricer after loading a block's CEX trade
// window.
type TradeSource map[types.CexExchange]map[types.Pair][]types.CexTrade

// unlimitedVolume is a draw target large enough that the expansion loop
// never satisfies it, so baskets keep growing until they hit their
// optimistic ceiling. Used by callers (e.g. a reference price lookup) that
// have no specific swap volume to hedge and just want the best available
// price from whatever the optimistic window covers.
var unlimitedVolume = types.NewRat(1<<62, 1)

// UnlimitedVolume returns a volume target that never triggers
// InsufficientVolume and draws every basket the optimistic window admits.
func UnlimitedVolume() *types.Rat {
	return new(types.Rat).Set(unlimitedVolume)
}

// GetOptimisticPrice prices pair for a dex swap of size volume at
// targetMicros: what maker and taker prices would a rational arbitrageur
// have obtained on CEX. It tries a direct quote first, falling back to a
// one-hop composition through each candidate intermediary if direct routing
// fails (no trade data, or insufficient volume and bypassVol is false).
func GetOptimisticPrice(source TradeSource, pair types.Pair, volume *types.Rat, targetMicros int64, bypassVol bool, intermediaries []common.Address, cfg Config) (*MakerTaker, error) {
	if pair.Identity() {
		one := types.NewRat(1, 1)
		return &MakerTaker{
			Maker: ExchangePrice{Pair: pair, Price: new(types.Rat).Set(one), Pairs: []types.Pair{pair}},
			Taker: ExchangePrice{Pair: pair, Price: new(types.Rat).Set(one), Pairs: []types.Pair{pair}},
		}, nil
	}

	direct, directErr := getOptimisticDirect(source, pair, volume, targetMicros, bypassVol, cfg)
	if directErr == nil {
		return direct, nil
	}

	via, viaErr := getOptimisticViaIntermediaries(source, pair, volume, targetMicros, bypassVol, intermediaries, cfg)
	if viaErr == nil {
		return via, nil
	}
	return nil, directErr
}

// getOptimisticDirect resolves pair's trade stream (flipping to the inverse
// pair if P has no trades of its own), quality-filters it per exchange,
// assigns basket fills against volume, and prices the result at both fee
// tiers.
func getOptimisticDirect(source TradeSource, pair types.Pair, volume *types.Rat, targetMicros int64, bypassVol bool, cfg Config) (*MakerTaker, error) {
	bypassVol = bypassVol || isStableBridgePair(pair)

	trades, direction, ok := resolveTradeStream(source, pair)
	if !ok {
		return nil, ErrMissingTradeData
	}

	filtered := filterByQuality(trades, targetMicros, cfg.qualityPct(pair))
	if len(filtered) == 0 {
		return nil, ErrMissingTradeData
	}

	unbounded := volume == nil
	drawVolume := volume
	if unbounded {
		drawVolume = UnlimitedVolume()
	}

	rings, totalVolume := buildBasketQueue(filtered, targetMicros, drawVolume, cfg.OptimisticBeforeMicros, cfg.OptimisticAfterMicros)
	if totalVolume.Sign() == 0 {
		return nil, ErrMissingTradeData
	}

	var used []types.CexTrade
	if unbounded {
		for _, ring := range rings {
			used = append(used, ring.trades...)
		}
	} else {
		used = assignFills(rings, totalVolume, drawVolume, direction)
	}
	if len(used) == 0 {
		return nil, ErrMissingTradeData
	}

	maker, taker, tradeVolume := computeMakerTakerVWAP(used, targetMicros)
	if maker == nil || taker == nil {
		return nil, ErrMissingTradeData
	}
	if !unbounded && !bypassVol && tradeVolume.Cmp(volume) < 0 {
		return nil, ErrInsufficientVolume
	}

	optimisticTrades := toOptimisticTrades(pair, used)
	return &MakerTaker{
		Maker: ExchangePrice{Pair: pair, Price: maker, Trades: optimisticTrades, Pairs: []types.Pair{pair}},
		Taker: ExchangePrice{Pair: pair, Price: taker, Trades: optimisticTrades, Pairs: []types.Pair{pair}},
	}, nil
}

// resolveTradeStream implements step 1's pair resolution: direct trades for
// pair are used with direction Sell; failing that, pair's flip is tried
// with direction Buy, its trades and prices inverted into pair's frame.
func resolveTradeStream(source TradeSource, pair types.Pair) ([]types.CexTrade, types.Direction, bool) {
	var direct []types.CexTrade
	for _, byPair := range source {
		if trades, ok := byPair[pair]; ok {
			direct = append(direct, trades...)
		}
	}
	if len(direct) > 0 {
		return direct, types.Sell, true
	}

	flip := pair.Flip()
	var flipped []types.CexTrade
	for _, byPair := range source {
		if trades, ok := byPair[flip]; ok {
			for _, tr := range trades {
				flipped = append(flipped, tr.Flip())
			}
		}
	}
	if len(flipped) > 0 {
		return flipped, types.Buy, true
	}
	return nil, types.Sell, false
}

// getOptimisticViaIntermediaries recursively prices pair.Token0 -> I ->
// pair.Token1 for every candidate bridge I, sizing the second leg's volume
// by the first leg's maker price, and keeps the route with the greatest
// maker final price.
func getOptimisticViaIntermediaries(source TradeSource, pair types.Pair, volume *types.Rat, targetMicros int64, bypassVol bool, intermediaries []common.Address, cfg Config) (*MakerTaker, error) {
	var best *MakerTaker
	lastErr := ErrMissingTradeData

	for _, bridge := range intermediaries {
		if bridge == pair.Token0 || bridge == pair.Token1 {
			continue
		}

		pair0 := types.NewPair(pair.Token0, bridge)
		firstLeg, err := getOptimisticDirect(source, pair0, volume, targetMicros, bypassVol, cfg)
		if err != nil {
			lastErr = err
			continue
		}

		var secondVolume *types.Rat
		if volume != nil && firstLeg.Maker.Price != nil {
			secondVolume = new(types.Rat).Mul(volume, firstLeg.Maker.Price)
		}

		pair1 := types.NewPair(bridge, pair.Token1)
		secondLeg, err := getOptimisticDirect(source, pair1, secondVolume, targetMicros, bypassVol, cfg)
		if err != nil {
			lastErr = err
			continue
		}

		candidate := firstLeg.compose(*secondLeg)
		if best == nil || (candidate.Maker.Price != nil && best.Maker.Price != nil && candidate.Maker.Price.Cmp(best.Maker.Price) > 0) {
			best = &candidate
		}
	}

	if best == nil {
		return nil, lastErr
	}
	return best, nil
}

func toOptimisticTrades(pair types.Pair, trades []types.CexTrade) []types.OptimisticTrade {
	out := make([]types.OptimisticTrade, 0, len(trades))
	for _, tr := range trades {
		out = append(out, types.OptimisticTrade{Exchange: tr.Exchange, Pair: pair, Timestamp: tr.Timestamp, Price: tr.Price, Volume: tr.Amount})
	}
	return out
}

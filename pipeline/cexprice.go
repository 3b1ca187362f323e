package pipeline

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/mevtrace/engine/pricing/cex"
	"github.com/mevtrace/engine/types"
)

// snapshotCexPrices computes each exchange's own time-decay-weighted quote
// for every pair it has trades for, at targetMicros. Unlike
// cex.GetOptimisticPrice (which hedges one specific dex swap volume across
// exchanges), CexDexMarkout needs one specific exchange's quote, so every
// exchange gets its own entry.
func snapshotCexPrices(trades types.CexTradeMap, targetMicros int64) types.CexPriceMap {
	out := make(types.CexPriceMap)
	for exchange, byPair := range trades {
		for pair, tape := range byPair {
			price := cex.QuoteAt(tape, targetMicros)
			if price == nil {
				continue
			}
			out.Put(types.CexQuote{Exchange: exchange, Pair: pair, Price: price})
		}
	}
	return out
}

// ethPriceUSD prices the chain's native asset against quoteAsset using the
// full optimistic (direct + one-hop) routing, with no specific swap volume
// to hedge: it draws on every trade the optimistic window admits and never
// fails on insufficient volume.
func ethPriceUSD(trades types.CexTradeMap, weth, quoteAsset common.Address, targetMicros int64, intermediaries []common.Address, cfg cex.Config) (*types.Rat, error) {
	source := cex.TradeSource(trades)
	pair := types.NewPair(weth, quoteAsset)
	price, err := cex.GetOptimisticPrice(source, pair, nil, targetMicros, true, intermediaries, cfg)
	if err != nil {
		return nil, err
	}
	return price.Maker.Price, nil
}

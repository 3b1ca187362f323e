package cex

import "github.com/mevtrace/engine/types"

// ExchangePrice is a priced route for a pair: either a single exchange's
// direct VWAP, or a composition of two direct legs bridged through an
// intermediary token.
type ExchangePrice struct {
	Pair   types.Pair
	Price  *types.Rat
	Trades []types.OptimisticTrade
	Pairs  []types.Pair
}

// Compose multiplies two single-hop ExchangePrices into one route spanning
// p.Pair.Token0 -> ... -> other.Pair.Token1, concatenating both legs'
// supporting trades and pair list for audit purposes.
func (p ExchangePrice) Compose(other ExchangePrice) ExchangePrice {
	var price *types.Rat
	if p.Price != nil && other.Price != nil {
		price = new(types.Rat).Mul(p.Price, other.Price)
	}
	return ExchangePrice{
		Pair:   types.NewPair(p.Pair.Token0, other.Pair.Token1),
		Price:  price,
		Trades: append(append([]types.OptimisticTrade{}, p.Trades...), other.Trades...),
		Pairs:  append(append([]types.Pair{}, p.Pairs...), other.Pairs...),
	}
}

// MakerTaker is a priced route's two fee tiers: the price a maker (resting
// liquidity, lower fee) and a taker (crossing the spread, higher fee) would
// have realized on the same chosen trades.
type MakerTaker struct {
	Maker ExchangePrice
	Taker ExchangePrice
}

// compose combines two one-hop MakerTaker legs into a single route,
// multiplying each side's price independently.
func (m MakerTaker) compose(other MakerTaker) MakerTaker {
	return MakerTaker{
		Maker: m.Maker.Compose(other.Maker),
		Taker: m.Taker.Compose(other.Taker),
	}
}

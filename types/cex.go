package types

import (
	"math/big"
	"strings"
)

// CexExchange identifies a centralized exchange trade/quote feed.
type CexExchange uint8

const (
	Binance CexExchange = iota
	Coinbase
	Okex
	BybitSpot
	Kucoin
)

var cexExchangeNames = [...]string{"Binance", "Coinbase", "Okex", "BybitSpot", "Kucoin"}

func (e CexExchange) String() string {
	if int(e) < len(cexExchangeNames) {
		return cexExchangeNames[e]
	}
	return "Unknown"
}

// Fees returns the (maker, taker) fee fraction charged by the exchange.
// Values are illustrative of real spot-market tiers and are exact rationals
// so they compose without floating point drift into the VWAP formula.
func (e CexExchange) Fees() (maker, taker *Rat) {
	switch e {
	case Binance:
		return NewRat(1, 1000), NewRat(1, 1000)
	case Coinbase:
		return NewRat(4, 1000), NewRat(6, 1000)
	case Okex:
		return NewRat(8, 10000), NewRat(1, 1000)
	case BybitSpot:
		return NewRat(1, 1000), NewRat(1, 1000)
	case Kucoin:
		return NewRat(1, 1000), NewRat(1, 1000)
	default:
		return NewRat(1, 1000), NewRat(1, 1000)
	}
}

// ParseCexExchange parses a --cex-exchanges flag element, ignoring case.
func ParseCexExchange(s string) (CexExchange, bool) {
	for i, name := range cexExchangeNames {
		if strings.EqualFold(name, s) {
			return CexExchange(i), true
		}
	}
	return 0, false
}

// Direction is which side of the order book a trade (as adjusted for the
// pair's query direction) represents.
type Direction uint8

const (
	Sell Direction = iota
	Buy
)

// CexTrade is one executed trade on an exchange's tape for a given pair.
// Within a (exchange, pair) stream, Timestamp is monotonically
// non-decreasing.
type CexTrade struct {
	Exchange  CexExchange
	Pair      Pair
	Timestamp uint64 // microseconds since epoch
	Price     *Rat
	Amount    *Rat
	Direction Direction
}

// Flip returns the trade as seen from the inverse pair: price inverts,
// amount is expressed in the other leg, direction flips.
func (t CexTrade) Flip() CexTrade {
	out := t
	out.Pair = t.Pair.Flip()
	if t.Price.Sign() != 0 {
		out.Price = new(big.Rat).Inv(t.Price)
	} else {
		out.Price = new(big.Rat)
	}
	out.Amount = new(big.Rat).Mul(t.Amount, t.Price)
	if t.Direction == Buy {
		out.Direction = Sell
	} else {
		out.Direction = Buy
	}
	return out
}

// CexQuote is the latest known price for a pair on an exchange as of a
// block.
type CexQuote struct {
	Exchange CexExchange
	Pair     Pair
	Price    *Rat
}

// CexPriceMap is the per-block snapshot: exchange -> pair -> latest quote.
type CexPriceMap map[CexExchange]map[Pair]CexQuote

// Get looks up the latest quote for a pair on an exchange.
func (m CexPriceMap) Get(exchange CexExchange, pair Pair) (CexQuote, bool) {
	byPair, ok := m[exchange]
	if !ok {
		return CexQuote{}, false
	}
	q, ok := byPair[pair]
	return q, ok
}

// Put inserts or overwrites a quote.
func (m CexPriceMap) Put(q CexQuote) {
	byPair, ok := m[q.Exchange]
	if !ok {
		byPair = make(map[Pair]CexQuote)
		m[q.Exchange] = byPair
	}
	byPair[q.Pair] = q
}

// CexTradeMap is the per-block trade-stream snapshot the pricer's baskets
// are built from: exchange -> pair -> time-sorted trades.
type CexTradeMap map[CexExchange]map[Pair][]CexTrade

// Append adds a trade to its exchange/pair stream, preserving the
// time-sorted invariant CexTrade documents (callers append in arrival
// order; this does not re-sort).
func (m CexTradeMap) Append(t CexTrade) {
	byPair, ok := m[t.Exchange]
	if !ok {
		byPair = make(map[Pair][]CexTrade)
		m[t.Exchange] = byPair
	}
	byPair[t.Pair] = append(byPair[t.Pair], t)
}

// OptimisticTrade is a single trade that was selected into a VWAP fill,
// carried alongside the resulting price so callers can audit/export which
// real trades backed a given maker/taker price.
type OptimisticTrade struct {
	Exchange  CexExchange
	Pair      Pair
	Timestamp uint64
	Price     *Rat
	Volume    *Rat
}

// Package metadata joins a block's header, pricing slices and builder/relay
// facts into the single Metadata value every inspector consumes alongside
// a CallTree. It is a pure assembly step: every input is already fetched or
// computed elsewhere (the header from the tracer, prices from pricing/dex
// and pricing/cex, proposer/relay facts from the tracer's block-metadata
// collaborator); the joiner's only job is stitching them into one
// read-only value and filling the derived fields (e.g. per-tx DEX quotes
// keyed by pair) the inspectors expect to index directly.
package metadata

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mevtrace/engine/types"
)

// RelayBid is the P2P relay's record of when a builder's winning bid for
// this block was received, a timestamp anchor earlier than the block's own
// timestamp.
type RelayBid struct {
	RelaySeenAt  uint64 // microseconds since epoch
	BuilderPubkey string
}

// Metadata is the joined, read-only context an inspector needs beyond the
// CallTree itself.
type Metadata struct {
	Header types.BlockHeader

	ProposerFeeRecipient common.Address
	ProposerMevReward    *big.Int
	RelayBid             *RelayBid // nil if no relay data was available for this block

	EthPriceUSD *types.Rat

	CexPrices types.CexPriceMap
	DexQuotes map[dexQuoteKey]types.DexQuote
}

// dexQuoteKey indexes a block's DEX quotes by the (pair, tx_idx) an
// inspector actually looks them up by.
type dexQuoteKey struct {
	Pair  types.Pair
	TxIdx int
}

// Builder assembles a Metadata value incrementally as each upstream source
// resolves, mirroring how the pipeline stage actually fills it in: header
// first, then pricing, then builder/relay facts last once the tracer's
// relay collaborator responds.
type Builder struct {
	meta Metadata
}

// NewBuilder seeds a Builder with the block header every other field is
// relative to.
func NewBuilder(header types.BlockHeader) *Builder {
	return &Builder{meta: Metadata{
		Header:    header,
		CexPrices: make(types.CexPriceMap),
		DexQuotes: make(map[dexQuoteKey]types.DexQuote),
	}}
}

// WithEthPrice attaches the block's USD/ETH reference price.
func (b *Builder) WithEthPrice(price *types.Rat) *Builder {
	b.meta.EthPriceUSD = price
	return b
}

// WithProposer attaches the proposer's fee recipient and realized MEV
// reward for the block.
func (b *Builder) WithProposer(recipient common.Address, reward *big.Int) *Builder {
	b.meta.ProposerFeeRecipient = recipient
	b.meta.ProposerMevReward = reward
	return b
}

// WithRelayBid attaches the relay's bid-acceptance timestamp, if one was
// retrieved for this block.
func (b *Builder) WithRelayBid(bid *RelayBid) *Builder {
	b.meta.RelayBid = bid
	return b
}

// WithCexPrice records a single exchange/pair quote.
func (b *Builder) WithCexPrice(quote types.CexQuote) *Builder {
	b.meta.CexPrices.Put(quote)
	return b
}

// WithDexQuote records a pair's DEX quote at a specific tx_idx.
func (b *Builder) WithDexQuote(txIdx int, quote types.DexQuote) *Builder {
	b.meta.DexQuotes[dexQuoteKey{Pair: quote.Pair, TxIdx: txIdx}] = quote
	return b
}

// Build returns the assembled Metadata.
func (b *Builder) Build() Metadata {
	return b.meta
}

// DexQuoteAt returns pair's DEX quote at txIdx, falling back to the most
// recent earlier tx_idx if the pair had no trade exactly at txIdx.
func (m Metadata) DexQuoteAt(pair types.Pair, txIdx int) (types.DexQuote, bool) {
	if q, ok := m.DexQuotes[dexQuoteKey{Pair: pair, TxIdx: txIdx}]; ok {
		return q, true
	}
	var best *types.DexQuote
	bestIdx := -1
	for key, q := range m.DexQuotes {
		if key.Pair != pair || key.TxIdx > txIdx || key.TxIdx <= bestIdx {
			continue
		}
		q := q
		best, bestIdx = &q, key.TxIdx
	}
	if best == nil {
		return types.DexQuote{}, false
	}
	return *best, true
}

package classifier

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/mevtrace/engine/types"
)

// NewDefaultDispatcher wires every registered protocol family into a fresh
// Dispatcher, the table the pipeline's Builder is constructed with. SushiSwap
// reuses the UniswapV2 event shapes since it is a direct fork; AaveV3 reuses
// AaveV2's LiquidationCall/FlashLoan event shapes for the same reason.
func NewDefaultDispatcher() *Dispatcher {
	d := NewDispatcher()
	RegisterUniswapV2(d, types.ProtocolUniswapV2)
	RegisterUniswapV2(d, types.ProtocolSushiSwap)
	RegisterAaveV2(d, types.ProtocolAaveV2)
	RegisterAaveV2(d, types.ProtocolAaveV3)
	return d
}

// MapReader is an in-memory Reader backed by plain maps. Production wiring
// uses the store package's pebble-backed address tables instead; MapReader
// exists for tests and for seeding a small known-address set (e.g. the CEX
// intermediary whitelist) without a store dependency.
type MapReader struct {
	protocols map[common.Address]types.Protocol
	tokens    map[common.Address][2]common.Address
}

// NewMapReader returns an empty MapReader.
func NewMapReader() *MapReader {
	return &MapReader{
		protocols: make(map[common.Address]types.Protocol),
		tokens:    make(map[common.Address][2]common.Address),
	}
}

// AddPool registers a pool's protocol tag and its two underlying tokens.
func (r *MapReader) AddPool(pool common.Address, protocol types.Protocol, token0, token1 common.Address) {
	r.protocols[pool] = protocol
	r.tokens[pool] = [2]common.Address{token0, token1}
}

// ProtocolOf implements Reader.
func (r *MapReader) ProtocolOf(addr common.Address) (types.Protocol, bool) {
	p, ok := r.protocols[addr]
	return p, ok
}

// TokensOf implements Reader.
func (r *MapReader) TokensOf(pool common.Address) (common.Address, common.Address, bool) {
	t, ok := r.tokens[pool]
	if !ok {
		return common.Address{}, common.Address{}, false
	}
	return t[0], t[1], true
}

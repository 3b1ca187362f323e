package store

import (
	"encoding/binary"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mevtrace/engine/types"
)

// PutBlockHeader writes the BlockHeader table entry for a block, keyed by
// number; (number, hash) uniquely identifies a header per spec, but the
// store itself is keyed on number alone since reorg handling is the
// pipeline's concern, not the store's.
func (s *Store) PutBlockHeader(h types.BlockHeader) error {
	return s.set(uint64Key(prefixBlockHeader, h.Number), h)
}

// GetBlockHeader reads a block's header, reporting false if absent.
func (s *Store) GetBlockHeader(number uint64) (types.BlockHeader, bool, error) {
	var h types.BlockHeader
	ok, err := s.get(uint64Key(prefixBlockHeader, number), &h)
	return h, ok, err
}

// PutTxTraces writes a block's trace set into the billy-backed blob log and
// records the resulting shelf id under the TxTraces table, so the large,
// immutable payload never lives in pebble's own LSM tree.
func (s *Store) PutTxTraces(blockNumber uint64, traces []types.TxTrace) error {
	data, err := encodeRecord(traces)
	if err != nil {
		return err
	}
	id, err := s.traces.Put(data)
	if err != nil {
		return fmt.Errorf("store: write trace blob: %w", err)
	}
	idBuf := make([]byte, 8)
	binary.BigEndian.PutUint64(idBuf, id)
	return s.db.Set(uint64Key(prefixTxTraces, blockNumber), idBuf, defaultWriteOptions)
}

// GetTxTraces reads a block's trace set back out of the blob log.
func (s *Store) GetTxTraces(blockNumber uint64) ([]types.TxTrace, bool, error) {
	idBuf, closer, err := s.db.Get(uint64Key(prefixTxTraces, blockNumber))
	if err == errNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	id := binary.BigEndian.Uint64(idBuf)
	closer.Close()

	data, err := s.traces.Get(id)
	if err != nil {
		return nil, false, fmt.Errorf("store: read trace blob: %w", err)
	}
	var traces []types.TxTrace
	if err := decodeRecord(data, &traces); err != nil {
		return nil, false, err
	}
	return traces, true, nil
}

// PutCexPrices writes a block's per-exchange CEX price snapshot.
func (s *Store) PutCexPrices(blockNumber uint64, prices types.CexPriceMap) error {
	return s.set(uint64Key(prefixCexPrice, blockNumber), prices)
}

// GetCexPrices reads a block's CEX price snapshot.
func (s *Store) GetCexPrices(blockNumber uint64) (types.CexPriceMap, bool, error) {
	var prices types.CexPriceMap
	ok, err := s.get(uint64Key(prefixCexPrice, blockNumber), &prices)
	return prices, ok, err
}

// PutCexTrades writes a block's trade-stream window.
func (s *Store) PutCexTrades(blockNumber uint64, trades types.CexTradeMap) error {
	return s.set(uint64Key(prefixCexTrades, blockNumber), trades)
}

// GetCexTrades reads a block's trade-stream window.
func (s *Store) GetCexTrades(blockNumber uint64) (types.CexTradeMap, bool, error) {
	var trades types.CexTradeMap
	ok, err := s.get(uint64Key(prefixCexTrades, blockNumber), &trades)
	return trades, ok, err
}

// PutDexQuotes writes the DEX quotes observed at a single tx_idx within a
// block, composite-keyed as spec.md's DexPrice[(u64, u16) -> Vec<DexQuote>].
func (s *Store) PutDexQuotes(blockNumber uint64, txIdx uint16, quotes []types.DexQuote) error {
	return s.set(dexPriceKey(blockNumber, txIdx), quotes)
}

// GetDexQuotes reads the DEX quotes recorded at a single tx_idx.
func (s *Store) GetDexQuotes(blockNumber uint64, txIdx uint16) ([]types.DexQuote, bool, error) {
	var quotes []types.DexQuote
	ok, err := s.get(dexPriceKey(blockNumber, txIdx), &quotes)
	return quotes, ok, err
}

// PutBundles writes a block's raw inspector output ahead of composition.
func (s *Store) PutBundles(blockNumber uint64, bundles []types.Bundle) error {
	return s.set(uint64Key(prefixBundles, blockNumber), bundles)
}

// GetBundles reads a block's raw bundle set.
func (s *Store) GetBundles(blockNumber uint64) ([]types.Bundle, bool, error) {
	var bundles []types.Bundle
	ok, err := s.get(uint64Key(prefixBundles, blockNumber), &bundles)
	return bundles, ok, err
}

// PutMevBlock writes the composer's final per-block result.
func (s *Store) PutMevBlock(block types.MevBlock) error {
	return s.set(uint64Key(prefixMevBlocks, block.BlockNumber), block)
}

// GetMevBlock reads a block's final MevBlock.
func (s *Store) GetMevBlock(blockNumber uint64) (types.MevBlock, bool, error) {
	var block types.MevBlock
	ok, err := s.get(uint64Key(prefixMevBlocks, blockNumber), &block)
	return block, ok, err
}

// addressTokens is the AddressToTokens table's value shape.
type addressTokens struct {
	Token0 common.Address
	Token1 common.Address
}

// PutAddressTokens upserts a pool's token pair, as loaded from
// classifier_config.toml at startup.
func (s *Store) PutAddressTokens(pool common.Address, token0, token1 common.Address) error {
	return s.set(addressKey(prefixAddressToTokens, pool), addressTokens{Token0: token0, Token1: token1})
}

// GetAddressTokens reads a pool's token pair.
func (s *Store) GetAddressTokens(pool common.Address) (common.Address, common.Address, bool, error) {
	var at addressTokens
	ok, err := s.get(addressKey(prefixAddressToTokens, pool), &at)
	return at.Token0, at.Token1, ok, err
}

// PutAddressProtocol upserts a pool's protocol tag.
func (s *Store) PutAddressProtocol(addr common.Address, protocol types.Protocol) error {
	return s.set(addressKey(prefixAddressToProtocol, addr), protocol)
}

// GetAddressProtocol reads a pool's protocol tag.
func (s *Store) GetAddressProtocol(addr common.Address) (types.Protocol, bool, error) {
	var protocol types.Protocol
	ok, err := s.get(addressKey(prefixAddressToProtocol, addr), &protocol)
	return protocol, ok, err
}

// PutTokenInfo upserts a token's symbol/decimals.
func (s *Store) PutTokenInfo(token common.Address, info types.TokenInfo) error {
	return s.set(addressKey(prefixTokenInfo, token), info)
}

// GetTokenInfo reads a token's symbol/decimals.
func (s *Store) GetTokenInfo(token common.Address) (types.TokenInfo, bool, error) {
	var info types.TokenInfo
	ok, err := s.get(addressKey(prefixTokenInfo, token), &info)
	return info, ok, err
}

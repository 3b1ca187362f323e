package store

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/pebble"
	"github.com/ethereum/go-ethereum/common"
)

// TableNames lists every table the db command can address, the Go side of
// spec.md's `db inspect <table> <key>`.
var TableNames = []string{
	"block_headers", "tx_traces", "cex_prices", "cex_trades",
	"dex_prices", "bundles", "mev_blocks",
	"address_to_tokens", "address_to_protocol", "token_info",
}

var tablePrefixes = map[string]byte{
	"block_headers":       prefixBlockHeader,
	"tx_traces":           prefixTxTraces,
	"cex_prices":          prefixCexPrice,
	"cex_trades":          prefixCexTrades,
	"dex_prices":          prefixDexPrice,
	"bundles":             prefixBundles,
	"mev_blocks":          prefixMevBlocks,
	"address_to_tokens":   prefixAddressToTokens,
	"address_to_protocol": prefixAddressToProtocol,
	"token_info":          prefixTokenInfo,
}

// TableStats counts the live keys under every table's prefix. It scans the
// full keyspace once; meant for offline `db stats`, never the hot path.
func (s *Store) TableStats() (map[string]int, error) {
	iter, err := s.db.NewIter(&pebble.IterOptions{})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	byPrefix := make(map[byte]string, len(tablePrefixes))
	for name, p := range tablePrefixes {
		byPrefix[p] = name
	}

	counts := make(map[string]int, len(tablePrefixes))
	for iter.First(); iter.Valid(); iter.Next() {
		if key := iter.Key(); len(key) > 0 {
			if name, ok := byPrefix[key[0]]; ok {
				counts[name]++
			}
		}
	}
	return counts, iter.Error()
}

// Inspect decodes a single record out of table, keyed by key, dispatching
// to the table's own typed accessor so callers never need to know a
// table's on-disk key shape. key is a decimal block number for every
// block-indexed table, "<block>:<tx_idx>" for dex_prices, and a hex
// address for the three address-indexed tables.
func (s *Store) Inspect(table, key string) (any, bool, error) {
	switch table {
	case "block_headers":
		n, err := parseBlockNumber(key)
		if err != nil {
			return nil, false, err
		}
		return s.GetBlockHeader(n)
	case "tx_traces":
		n, err := parseBlockNumber(key)
		if err != nil {
			return nil, false, err
		}
		return s.GetTxTraces(n)
	case "cex_prices":
		n, err := parseBlockNumber(key)
		if err != nil {
			return nil, false, err
		}
		return s.GetCexPrices(n)
	case "cex_trades":
		n, err := parseBlockNumber(key)
		if err != nil {
			return nil, false, err
		}
		return s.GetCexTrades(n)
	case "dex_prices":
		blockNumber, txIdx, err := parseDexPriceKey(key)
		if err != nil {
			return nil, false, err
		}
		return s.GetDexQuotes(blockNumber, txIdx)
	case "bundles":
		n, err := parseBlockNumber(key)
		if err != nil {
			return nil, false, err
		}
		return s.GetBundles(n)
	case "mev_blocks":
		n, err := parseBlockNumber(key)
		if err != nil {
			return nil, false, err
		}
		return s.GetMevBlock(n)
	case "address_to_tokens":
		addr, err := parseAddress(key)
		if err != nil {
			return nil, false, err
		}
		token0, token1, ok, err := s.GetAddressTokens(addr)
		return addressTokens{Token0: token0, Token1: token1}, ok, err
	case "address_to_protocol":
		addr, err := parseAddress(key)
		if err != nil {
			return nil, false, err
		}
		return s.GetAddressProtocol(addr)
	case "token_info":
		addr, err := parseAddress(key)
		if err != nil {
			return nil, false, err
		}
		return s.GetTokenInfo(addr)
	default:
		return nil, false, fmt.Errorf("store: unknown table %q, want one of %v", table, TableNames)
	}
}

func parseBlockNumber(key string) (uint64, error) {
	n, err := strconv.ParseUint(key, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("store: %q is not a block number: %w", key, err)
	}
	return n, nil
}

func parseDexPriceKey(key string) (uint64, uint16, error) {
	blockPart, txPart, ok := strings.Cut(key, ":")
	if !ok {
		return 0, 0, fmt.Errorf("store: dex_prices key must be \"<block>:<tx_idx>\", got %q", key)
	}
	blockNumber, err := parseBlockNumber(blockPart)
	if err != nil {
		return 0, 0, err
	}
	txIdx, err := strconv.ParseUint(txPart, 10, 16)
	if err != nil {
		return 0, 0, fmt.Errorf("store: %q is not a tx index: %w", txPart, err)
	}
	return blockNumber, uint16(txIdx), nil
}

func parseAddress(key string) (common.Address, error) {
	if !common.IsHexAddress(key) {
		return common.Address{}, fmt.Errorf("store: %q is not a hex address", key)
	}
	return common.HexToAddress(key), nil
}

// Package config loads the engine's startup configuration: the
// classifier_config.toml pool/token whitelist and the run-level settings
// derived from CLI flags, following a "load, then upsert into the store"
// shape; WatchClassifierConfig repeats the upsert whenever the file changes
// on disk.
package config

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/fsnotify/fsnotify"
	"github.com/mevtrace/engine/types"
	"github.com/spf13/viper"
)

// TokenInfoEntry is one entry in a pool's token_info list.
type TokenInfoEntry struct {
	Symbol   string `mapstructure:"symbol"`
	Decimals uint   `mapstructure:"decimals"`
	Address  string `mapstructure:"address"`
}

// PoolEntry is one `<pool_address> = { init_block, token_info }` table
// entry under a protocol section.
type PoolEntry struct {
	InitBlock uint64           `mapstructure:"init_block"`
	TokenInfo []TokenInfoEntry `mapstructure:"token_info"`
}

// ClassifierConfig is classifier_config.toml's shape: one section per
// protocol name, each a map of pool address (hex string) to PoolEntry.
type ClassifierConfig map[string]map[string]PoolEntry

// LoadClassifierConfig reads and parses classifier_config.toml at path.
func LoadClassifierConfig(path string) (ClassifierConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg ClassifierConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	// viper lower-cases every key; restore each known protocol section's
	// types.Protocol spelling so Upsert tags pools with the dispatch key.
	known := []types.Protocol{types.ProtocolUniswapV2, types.ProtocolUniswapV3, types.ProtocolSushiSwap, types.ProtocolCurveV1,
		types.ProtocolBalancerV2, types.ProtocolAaveV2, types.ProtocolAaveV3, types.ProtocolCompoundV2}
	out := make(ClassifierConfig, len(cfg))
	for name, pools := range cfg {
		for _, p := range known {
			if strings.EqualFold(name, string(p)) {
				name = string(p)
				break
			}
		}
		out[name] = pools
	}
	return out, nil
}

// WatchClassifierConfig re-reads and re-upserts path into store every time
// it changes on disk, via viper's fsnotify-backed watcher, so a new pool
// can be added to the whitelist without restarting the engine. A parse or
// upsert failure on a reload is logged and the previous in-store state is
// left untouched; it never panics or stops the watch.
func WatchClassifierConfig(path string, store addressTokenStore) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	v.OnConfigChange(func(_ fsnotify.Event) {
		cfg, err := LoadClassifierConfig(path)
		if err != nil {
			log.Error("classifier config reload: parse failed, keeping previous state", "path", path, "err", err)
			return
		}
		if err := cfg.Upsert(store); err != nil {
			log.Error("classifier config reload: upsert failed, keeping previous state", "path", path, "err", err)
			return
		}
		log.Info("classifier config reloaded", "path", path)
	})
	v.WatchConfig()
	return nil
}

// addressTokenStore is the narrow write surface Upsert needs,
// satisfied by *store.Store.
type addressTokenStore interface {
	PutAddressProtocol(addr common.Address, protocol types.Protocol) error
	PutAddressTokens(pool common.Address, token0, token1 common.Address) error
	PutTokenInfo(token common.Address, info types.TokenInfo) error
}

// Upsert writes every pool/token entry in cfg into the store's
// AddressToProtocol, AddressToTokens, and TokenInfo tables, the one-time
// startup load spec.md describes. A pool with fewer than two token_info
// entries stops the upsert with an error rather than being silently
// dropped, since a malformed config entry should fail loudly at startup,
// not at classify time.
func (cfg ClassifierConfig) Upsert(store addressTokenStore) error {
	for protocolName, pools := range cfg {
		protocol := types.Protocol(protocolName)
		for poolAddrHex, entry := range pools {
			if !common.IsHexAddress(poolAddrHex) {
				return fmt.Errorf("config: protocol %s: invalid pool address %q", protocolName, poolAddrHex)
			}
			pool := common.HexToAddress(poolAddrHex)
			if err := store.PutAddressProtocol(pool, protocol); err != nil {
				return fmt.Errorf("config: upsert protocol for %s: %w", poolAddrHex, err)
			}
			if len(entry.TokenInfo) < 2 {
				return fmt.Errorf("config: protocol %s pool %s: need 2 token_info entries, got %d", protocolName, poolAddrHex, len(entry.TokenInfo))
			}
			token0 := common.HexToAddress(entry.TokenInfo[0].Address)
			token1 := common.HexToAddress(entry.TokenInfo[1].Address)
			if err := store.PutAddressTokens(pool, token0, token1); err != nil {
				return fmt.Errorf("config: upsert tokens for %s: %w", poolAddrHex, err)
			}
			for _, tok := range entry.TokenInfo {
				addr := common.HexToAddress(tok.Address)
				info := types.TokenInfo{Symbol: tok.Symbol, Decimals: tok.Decimals}
				if err := store.PutTokenInfo(addr, info); err != nil {
					return fmt.Errorf("config: upsert token info for %s: %w", tok.Address, err)
				}
			}
		}
	}
	return nil
}

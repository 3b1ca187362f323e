package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mevtrace/engine/types"
	"github.com/stretchr/testify/require"
)

const sampleTOML = `
[UniswapV2.0x0000000000000000000000000000000000000001]
init_block = 100

[[UniswapV2.0x0000000000000000000000000000000000000001.token_info]]
symbol = "WETH"
decimals = 18
address = "0x0000000000000000000000000000000000000002"

[[UniswapV2.0x0000000000000000000000000000000000000001.token_info]]
symbol = "USDC"
decimals = 6
address = "0x0000000000000000000000000000000000000003"
`

func writeSampleConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "classifier_config.toml")
	require.NoError(t, os.WriteFile(path, []byte(sampleTOML), 0o644))
	return path
}

func TestLoadClassifierConfigParsesPoolsAndTokens(t *testing.T) {
	path := writeSampleConfig(t)
	cfg, err := LoadClassifierConfig(path)
	require.NoError(t, err)

	pools, ok := cfg["UniswapV2"]
	require.True(t, ok)
	entry, ok := pools["0x0000000000000000000000000000000000000001"]
	require.True(t, ok)
	require.Equal(t, uint64(100), entry.InitBlock)
	require.Len(t, entry.TokenInfo, 2)
	require.Equal(t, "WETH", entry.TokenInfo[0].Symbol)
}

type fakeAddressTokenStore struct {
	mu        sync.Mutex
	protocols map[common.Address]types.Protocol
	tokens    map[common.Address][2]common.Address
	infos     map[common.Address]types.TokenInfo
}

func newFakeAddressTokenStore() *fakeAddressTokenStore {
	return &fakeAddressTokenStore{
		protocols: make(map[common.Address]types.Protocol),
		tokens:    make(map[common.Address][2]common.Address),
		infos:     make(map[common.Address]types.TokenInfo),
	}
}

func (f *fakeAddressTokenStore) PutAddressProtocol(addr common.Address, protocol types.Protocol) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.protocols[addr] = protocol
	return nil
}

func (f *fakeAddressTokenStore) PutAddressTokens(pool common.Address, token0, token1 common.Address) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[pool] = [2]common.Address{token0, token1}
	return nil
}

func (f *fakeAddressTokenStore) PutTokenInfo(token common.Address, info types.TokenInfo) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.infos[token] = info
	return nil
}

func TestUpsertWritesProtocolTokensAndInfo(t *testing.T) {
	path := writeSampleConfig(t)
	cfg, err := LoadClassifierConfig(path)
	require.NoError(t, err)

	store := newFakeAddressTokenStore()
	require.NoError(t, cfg.Upsert(store))

	pool := common.HexToAddress("0x0000000000000000000000000000000000000001")
	require.Equal(t, types.ProtocolUniswapV2, store.protocols[pool])

	toks := store.tokens[pool]
	require.Equal(t, common.HexToAddress("0x0000000000000000000000000000000000000002"), toks[0])
	require.Equal(t, common.HexToAddress("0x0000000000000000000000000000000000000003"), toks[1])

	info := store.infos[common.HexToAddress("0x0000000000000000000000000000000000000002")]
	require.Equal(t, "WETH", info.Symbol)
	require.Equal(t, uint(18), info.Decimals)
}

func TestWatchClassifierConfigReloadsOnChange(t *testing.T) {
	path := writeSampleConfig(t)
	store := newFakeAddressTokenStore()

	require.NoError(t, WatchClassifierConfig(path, store))

	newPool := common.HexToAddress("0x0000000000000000000000000000000000000009")
	updated := `
[UniswapV2.0x0000000000000000000000000000000000000009]
init_block = 200

[[UniswapV2.0x0000000000000000000000000000000000000009.token_info]]
symbol = "WETH"
decimals = 18
address = "0x0000000000000000000000000000000000000002"

[[UniswapV2.0x0000000000000000000000000000000000000009.token_info]]
symbol = "DAI"
decimals = 18
address = "0x0000000000000000000000000000000000000004"
`
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o644))

	require.Eventually(t, func() bool {
		store.mu.Lock()
		defer store.mu.Unlock()
		_, ok := store.protocols[newPool]
		return ok
	}, 5*time.Second, 50*time.Millisecond, "expected reload to upsert the new pool")
}

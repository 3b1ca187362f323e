package cex

import (
	_ "embed"
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mevtrace/engine/types"
)

//go:embed intermediaries.json
var rawIntermediaries []byte

var coreIntermediaries []common.Address

// usdcAddress and usdtAddress are pulled out of the same whitelist by name,
// since the stable-pair bypass rule needs to recognize them specifically
// rather than treat them as opaque bridge tokens.
var usdcAddress, usdtAddress common.Address

func init() {
	var byName map[string]string
	if err := json.Unmarshal(rawIntermediaries, &byName); err != nil {
		panic(err)
	}
	for name, addr := range byName {
		a := common.HexToAddress(addr)
		coreIntermediaries = append(coreIntermediaries, a)
		switch name {
		case "USDC":
			usdcAddress = a
		case "USDT":
			usdtAddress = a
		}
	}
	rawIntermediaries = nil
}

// isStableBridgePair reports whether pair is the USDC<->USDT stable bridge
// in either direction. Such pairs always bypass the minimum-volume check,
// since a thin basket on a near-1:1 stable pair is still trustworthy.
func isStableBridgePair(pair types.Pair) bool {
	return (pair.Token0 == usdcAddress && pair.Token1 == usdtAddress) ||
		(pair.Token0 == usdtAddress && pair.Token1 == usdcAddress)
}

// CoreIntermediaries returns the fixed whitelist of bridge tokens
// (WETH/USDC/USDT/DAI) always tried as an intermediary hop, in addition to
// whatever block-local tokens the caller supplies via WithBlockLocal.
func CoreIntermediaries() []common.Address {
	out := make([]common.Address, len(coreIntermediaries))
	copy(out, coreIntermediaries)
	return out
}

// WithBlockLocal extends the core whitelist with tokens seen in the current
// block (e.g. a pool's own paired token), since a bridge token that only
// has liquidity within this block is still a valid one-hop candidate.
func WithBlockLocal(blockLocal []common.Address) []common.Address {
	out := CoreIntermediaries()
	seen := make(map[common.Address]bool, len(out))
	for _, a := range out {
		seen[a] = true
	}
	for _, a := range blockLocal {
		if !seen[a] {
			out = append(out, a)
			seen[a] = true
		}
	}
	return out
}

package classifier

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// selectorFromSignature derives a 4-byte call selector from a canonical
// Solidity function signature, e.g. "swap(uint256,uint256,address,bytes)".
func selectorFromSignature(sig string) Selector {
	return SelectorOf(crypto.Keccak256([]byte(sig)))
}

// topicFromSignature derives a log's topic-0 event signature hash from its
// canonical Solidity event signature, e.g. "Swap(address,uint256,uint256)".
func topicFromSignature(sig string) common.Hash {
	return crypto.Keccak256Hash([]byte(sig))
}

// splitWords slices a log's non-indexed data section into n right-aligned
// 32-byte ABI words, the common case for events whose every non-indexed
// field is a uint256. Returns an error if data is short, which callers
// surface as a decode failure (spec.md §7) rather than panicking.
func splitWords(data []byte, n int) ([]*big.Int, error) {
	const wordLen = 32
	if len(data) < n*wordLen {
		return nil, fmt.Errorf("log data too short: want %d words, have %d bytes", n, len(data))
	}
	out := make([]*big.Int, n)
	for i := 0; i < n; i++ {
		out[i] = new(big.Int).SetBytes(data[i*wordLen : (i+1)*wordLen])
	}
	return out, nil
}

// addrFromTopic extracts the right-aligned 20-byte address from an indexed
// topic slot. Returns the zero address if the topic is absent.
func addrFromTopic(topics []common.Hash, idx int) common.Address {
	if idx >= len(topics) {
		return common.Address{}
	}
	return common.BytesToAddress(topics[idx].Bytes())
}

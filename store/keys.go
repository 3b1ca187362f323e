package store

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common"
)

// Table prefixes, one byte per spec.md's table list, so every table shares
// pebble's single keyspace without colliding.
const (
	prefixBlockHeader      byte = 'h'
	prefixTxTraces         byte = 't'
	prefixCexPrice         byte = 'c'
	prefixCexTrades        byte = 'C'
	prefixDexPrice         byte = 'd'
	prefixBundles          byte = 'b'
	prefixMevBlocks        byte = 'm'
	prefixAddressToTokens  byte = 'a'
	prefixAddressToProtocol byte = 'p'
	prefixTokenInfo        byte = 'i'
)

func uint64Key(prefix byte, n uint64) []byte {
	key := make([]byte, 9)
	key[0] = prefix
	binary.BigEndian.PutUint64(key[1:], n)
	return key
}

func dexPriceKey(blockNumber uint64, txIdx uint16) []byte {
	key := make([]byte, 11)
	key[0] = prefixDexPrice
	binary.BigEndian.PutUint64(key[1:9], blockNumber)
	binary.BigEndian.PutUint16(key[9:11], txIdx)
	return key
}

func dexPriceBlockPrefix(blockNumber uint64) []byte {
	key := make([]byte, 9)
	key[0] = prefixDexPrice
	binary.BigEndian.PutUint64(key[1:9], blockNumber)
	return key
}

func addressKey(prefix byte, addr common.Address) []byte {
	key := make([]byte, 1+common.AddressLength)
	key[0] = prefix
	copy(key[1:], addr.Bytes())
	return key
}

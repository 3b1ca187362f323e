package store

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/mevtrace/engine/classifier"
	"github.com/mevtrace/engine/types"
)

// ClassifierReader adapts a Store's (error-returning) address tables to the
// classifier.Reader interface the dispatch table's ClassifyFuncs expect,
// which reports misses as a bool rather than an error: a classifier table
// miss is the expected, non-fatal "no entry yet" case spec.md names, not a
// store failure worth propagating. A genuine store error is folded into
// "not found" too — the classifier's only recourse either way is to mark
// the call Unclassified.
type ClassifierReader struct {
	Store *Store
}

var _ classifier.Reader = ClassifierReader{}

// ProtocolOf resolves an address's protocol tag.
func (r ClassifierReader) ProtocolOf(addr common.Address) (types.Protocol, bool) {
	protocol, ok, err := r.Store.GetAddressProtocol(addr)
	if err != nil {
		return types.ProtocolUnknown, false
	}
	return protocol, ok
}

// TokensOf resolves a pool's token pair.
func (r ClassifierReader) TokensOf(pool common.Address) (token0, token1 common.Address, ok bool) {
	t0, t1, found, err := r.Store.GetAddressTokens(pool)
	if err != nil {
		return common.Address{}, common.Address{}, false
	}
	return t0, t1, found
}

package types

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// BlockHeader is the minimal execution-layer header the engine needs.
// Immutable once written to the store: (Number, Hash) uniquely identifies it.
type BlockHeader struct {
	Number      uint64
	Hash        common.Hash
	ParentHash  common.Hash
	Timestamp   uint64 // seconds since epoch, matches execution-client header semantics
	Beneficiary common.Address
	BaseFee     *big.Int // nil pre-EIP-1559
}

// TimestampMicros converts the header's second-resolution timestamp into the
// microsecond resolution the CEX pricer works in.
func (h *BlockHeader) TimestampMicros() uint64 {
	return h.Timestamp * 1_000_000
}

package types

import "github.com/ethereum/go-ethereum/common"

// DexQuote is the DEX pricer's answer for a (pair, tx_idx) request: the
// pool-implied price immediately before and immediately after the
// transaction's effects were applied.
type DexQuote struct {
	Pair                  Pair
	PreState              *Rat
	PostState             *Rat
	PoolLiquidity         *Rat
	GoesThrough           *common.Address // intermediary token, nil if direct
	IsTransfer            bool
	FirstHopConnections   int // number of candidate routes considered; a confidence signal
}

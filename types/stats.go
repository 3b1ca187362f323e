package types

import "github.com/ethereum/go-ethereum/common"

// TransactionStats accumulates per-tx counters during classification: how
// many trace entries it had, how many the dispatch table missed, and
// whether the top-level call reverted.
type TransactionStats struct {
	TxHash            common.Hash
	TraceCount        int
	ClassifiedCount   int
	UnclassifiedCount int
	Reverted          bool
}

// BlockStats is the per-block roll-up of TransactionStats. The pipeline
// feeds its unclassified count into metrics; BlockStats is not written to
// the store, and no code path sets Err.
type BlockStats struct {
	BlockNumber uint64
	Txs         []TransactionStats
	Err         string // empty if the block was processed successfully
}

// TotalUnclassified sums the unclassified-selector count across every tx in
// the block, feeding the classifier's "unknown selector" metric.
func (b *BlockStats) TotalUnclassified() int {
	var total int
	for _, tx := range b.Txs {
		total += tx.UnclassifiedCount
	}
	return total
}

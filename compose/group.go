// Package compose turns a block's raw inspector output into the final
// MevBlock: deduplicating/merging overlapping bundles, filtering
// unprofitable ones, and aggregating the block-level header stats.
package compose

import "github.com/mevtrace/engine/types"

// groupByType buckets bundles by their MevType, the same
// group-into-a-map idiom used to merge per-chain atomic requests before
// writing them out, applied here to bundles before stage 2's reduce pass.
func groupByType(bundles []types.Bundle) map[types.MevType][]types.Bundle {
	out := make(map[types.MevType][]types.Bundle, len(bundles))
	for _, b := range bundles {
		out[b.Header.MevType] = append(out[b.Header.MevType], b)
	}
	return out
}

// txHashSet returns a bundle's tx-hash set as a lookup set for subsumption
// and equality checks.
func txHashSet(b types.Bundle) map[[32]byte]bool {
	set := make(map[[32]byte]bool, len(b.Header.TxHashes))
	for _, h := range b.Header.TxHashes {
		set[h] = true
	}
	return set
}

// sameTxHashSet reports whether a and b cover exactly the same transactions.
func sameTxHashSet(a, b types.Bundle) bool {
	as, bs := txHashSet(a), txHashSet(b)
	if len(as) != len(bs) {
		return false
	}
	for h := range as {
		if !bs[h] {
			return false
		}
	}
	return true
}

// subsumes reports whether every tx in sub is covered by outer — a Backrun
// or Jit bundle fully contained in a Sandwich's tx set is redundant once
// the Sandwich is reported.
func subsumes(outer, sub types.Bundle) bool {
	outerSet := txHashSet(outer)
	for _, h := range sub.Header.TxHashes {
		if !outerSet[h] {
			return false
		}
	}
	return true
}

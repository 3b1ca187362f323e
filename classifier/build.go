package classifier

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/log"
	"github.com/mevtrace/engine/types"
)

// Builder turns raw per-tx traces into a classified CallTree. It owns no
// state across blocks; one Builder is shared read-only by every worker in
// the pipeline's bounded pool.
type Builder struct {
	dispatch *Dispatcher
	db       Reader
}

// NewBuilder wires a dispatch table and a store read-handle into a Builder.
func NewBuilder(dispatch *Dispatcher, db Reader) *Builder {
	return &Builder{dispatch: dispatch, db: db}
}

// BuildCallTree classifies every trace entry in every transaction of a
// block and returns the resulting CallTree plus per-block stats. If any
// transaction's trace is structurally broken (see types.CallTree's Validate
// invariants), the whole block fails: the tree is nil and the error names
// the block, while the per-tx stats gathered so far are still returned.
func (b *Builder) BuildCallTree(traces []types.TxTrace, header types.BlockHeader) (*types.CallTree, *types.BlockStats, error) {
	tree := &types.CallTree{Header: header, TxRoots: make([]types.TxRoot, 0, len(traces))}
	stats := &types.BlockStats{BlockNumber: header.Number, Txs: make([]types.TransactionStats, 0, len(traces))}

	for _, trace := range traces {
		root, txStats := b.classifyTx(trace, header.BaseFee)
		tree.TxRoots = append(tree.TxRoots, root)
		stats.Txs = append(stats.Txs, txStats)
	}

	if err := tree.Validate(); err != nil {
		return nil, stats, fmt.Errorf("block %d: %w", header.Number, err)
	}
	finalize(tree)
	return tree, stats, nil
}

func (b *Builder) classifyTx(trace types.TxTrace, baseFee *big.Int) (types.TxRoot, types.TransactionStats) {
	root := types.TxRoot{
		TxHash:  trace.TxHash,
		TxIndex: trace.TxIndex,
		GasDetails: types.GasDetails{
			GasUsed:           trace.GasUsed,
			EffectiveGasPrice: trace.EffectiveGasPrice,
			PriorityFee:       trace.PriorityFee(baseFee),
		},
		Nodes: make([]types.Node, len(trace.Entries)),
	}
	stats := types.TransactionStats{TxHash: trace.TxHash, TraceCount: len(trace.Entries)}

	for i, entry := range trace.Entries {
		node := types.Node{ID: i, ParentID: entry.ParentIndex, Trace: entry}
		if entry.ParentIndex >= 0 && entry.ParentIndex < len(root.Nodes) {
			root.Nodes[entry.ParentIndex].Children = append(root.Nodes[entry.ParentIndex].Children, i)
		}
		if entry.Reverted {
			stats.Reverted = stats.Reverted || entry.ParentIndex == -1
		}

		action, classified, err := b.classifyEntry(entry)
		switch {
		case err != nil:
			log.Debug("classifier: decode failed, leaving node unclassified", "tx", trace.TxHash, "traceIndex", entry.TraceIndex, "err", err)
			node.Action = types.NewUnclassified(entry.TraceIndex)
			stats.UnclassifiedCount++
		case classified:
			node.Action = action
			stats.ClassifiedCount++
		default:
			node.Action = types.NewUnclassified(entry.TraceIndex)
			stats.UnclassifiedCount++
		}
		root.Nodes[i] = node
	}
	return root, stats
}

// classifyEntry tries the callee's registered call classifier first, then
// falls back to the entry's own emitted logs (a factory's PairCreated event
// takes the log path even though the call itself has no dispatch entry).
func (b *Builder) classifyEntry(entry types.TraceEntry) (types.Action, bool, error) {
	protocol, known := b.db.ProtocolOf(entry.To)
	if known {
		call := &Call{
			TraceIndex: entry.TraceIndex,
			From:       entry.From,
			To:         entry.To,
			Input:      entry.Input,
			Output:     entry.Output,
			Value:      types.RatFromFloat(0),
			DB:         b.db,
		}
		if entry.Value != nil {
			call.Value = types.ScaledRational(entry.Value, 0)
		}
		if action, ok, err := b.dispatch.ClassifyCall(protocol, call); ok || err != nil {
			return action, ok, err
		}
	}

	for _, log := range entry.Logs {
		logProtocol, logKnown := b.db.ProtocolOf(log.Address)
		if !logKnown {
			continue
		}
		lc := &LogCall{TraceIndex: entry.TraceIndex, Emitter: log.Address, Log: log, DB: b.db}
		if action, ok, err := b.dispatch.ClassifyLog(logProtocol, lc); ok || err != nil {
			return action, ok, err
		}
	}

	if entry.Reverted {
		return types.NewRevert(entry.TraceIndex, "reverted"), true, nil
	}
	if entry.Value != nil && entry.Value.Sign() > 0 && len(entry.Input) == 0 {
		return types.NewEthTransfer(entry.TraceIndex, entry.From, entry.To, entry.Value), true, nil
	}
	return nil, false, nil
}

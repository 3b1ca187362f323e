// Package classifier turns a block's raw TxTrace entries into a CallTree of
// NormalizedAction nodes. Dispatch is a two-level table keyed first by the
// callee's protocol tag, then by call selector or log signature, expressed
// as plain Go closures registered into a map instead of generated code.
package classifier

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/mevtrace/engine/types"
)

// Selector is a 4-byte function selector.
type Selector [4]byte

// SelectorOf extracts the function selector from call input data. Returns
// the zero selector if input is too short to contain one.
func SelectorOf(input []byte) Selector {
	var s Selector
	if len(input) >= 4 {
		copy(s[:], input[:4])
	}
	return s
}

// Reader is the narrow read handle a ClassifyFunc gets into the store's
// address-keyed tables.
type Reader interface {
	ProtocolOf(addr common.Address) (types.Protocol, bool)
	TokensOf(pool common.Address) (token0, token1 common.Address, ok bool)
}

// Call is the decoded call-frame context handed to a ClassifyFunc.
type Call struct {
	TraceIndex int
	From       common.Address
	To         common.Address
	Input      []byte
	Output     []byte
	Value      *types.Rat
	DB         Reader
}

// LogCall is the decoded log context handed to a log-keyed ClassifyFunc.
type LogCall struct {
	TraceIndex int
	Emitter    common.Address
	Log        types.Log
	DB         Reader
}

// ClassifyFunc maps a single call frame to a NormalizedAction, or reports no
// match. A non-nil error means the selector was known but decoding failed
// (spec.md §7 "Missing decoded call-data for a known selector" — non-fatal,
// caller logs and leaves the node Unclassified).
type ClassifyFunc func(c *Call) (types.Action, error)

// LogClassifyFunc is the event-log equivalent of ClassifyFunc.
type LogClassifyFunc func(l *LogCall) (types.Action, error)

// Dispatcher is the two-level (protocol, selector|logsig) classifier table.
type Dispatcher struct {
	byCall map[types.Protocol]map[Selector]ClassifyFunc
	byLog  map[types.Protocol]map[common.Hash]LogClassifyFunc
}

// NewDispatcher returns an empty dispatch table.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		byCall: make(map[types.Protocol]map[Selector]ClassifyFunc),
		byLog:  make(map[types.Protocol]map[common.Hash]LogClassifyFunc),
	}
}

// RegisterCall installs a classifier for calls to the given protocol with
// the given 4-byte selector.
func (d *Dispatcher) RegisterCall(protocol types.Protocol, selector Selector, fn ClassifyFunc) {
	m, ok := d.byCall[protocol]
	if !ok {
		m = make(map[Selector]ClassifyFunc)
		d.byCall[protocol] = m
	}
	m[selector] = fn
}

// RegisterLog installs a classifier for logs emitted by the given protocol
// with the given event signature (topic 0).
func (d *Dispatcher) RegisterLog(protocol types.Protocol, sig common.Hash, fn LogClassifyFunc) {
	m, ok := d.byLog[protocol]
	if !ok {
		m = make(map[common.Hash]LogClassifyFunc)
		d.byLog[protocol] = m
	}
	m[sig] = fn
}

// ClassifyCall dispatches a single call frame. ok is false when no dispatch
// record exists for (protocol, selector) — the caller should fall back to
// trying logs, then finally Unclassified.
func (d *Dispatcher) ClassifyCall(protocol types.Protocol, c *Call) (action types.Action, ok bool, err error) {
	m, exists := d.byCall[protocol]
	if !exists {
		return nil, false, nil
	}
	fn, exists := m[SelectorOf(c.Input)]
	if !exists {
		return nil, false, nil
	}
	action, err = fn(c)
	return action, true, err
}

// ClassifyLog dispatches a single decoded log against the protocol's
// registered event classifiers.
func (d *Dispatcher) ClassifyLog(protocol types.Protocol, l *LogCall) (action types.Action, ok bool, err error) {
	m, exists := d.byLog[protocol]
	if !exists || len(l.Log.Topics) == 0 {
		return nil, false, nil
	}
	fn, exists := m[l.Log.Topics[0]]
	if !exists {
		return nil, false, nil
	}
	action, err = fn(l)
	return action, true, err
}

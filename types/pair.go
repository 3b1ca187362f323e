package types

import "github.com/ethereum/go-ethereum/common"

// Pair is a directional token pair: token0 is "in", token1 is "out" for the
// swap the pair was derived from. Order is not canonicalized — token0 < token1
// is deliberately not enforced, since direction itself carries meaning for
// routing and VWAP sign.
type Pair struct {
	Token0 common.Address
	Token1 common.Address
}

// NewPair constructs a directional pair.
func NewPair(token0, token1 common.Address) Pair {
	return Pair{Token0: token0, Token1: token1}
}

// Flip reverses the pair's direction.
func (p Pair) Flip() Pair {
	return Pair{Token0: p.Token1, Token1: p.Token0}
}

// Identity reports whether the pair is degenerate (both legs the same
// token), in which case every pricer in the engine short-circuits to a (1, 1)
// price.
func (p Pair) Identity() bool {
	return p.Token0 == p.Token1
}

func (p Pair) String() string {
	return p.Token0.Hex() + "->" + p.Token1.Hex()
}

package types

import "math/big"

// Rat is the engine's exact-arithmetic type. Prices, amounts and profits are
// carried as big.Rat end to end; conversion to float64 happens only at the
// export boundary (see RoundToFloat), matching the "exact arithmetic
// everywhere, float64 is a projection" design rule.
type Rat = big.Rat

// NewRat builds an exact rational from a numerator/denominator pair.
func NewRat(num, denom int64) *Rat {
	return big.NewRat(num, denom)
}

// RatFromFloat converts a float64 into the nearest exact rational. Used only
// at ingestion boundaries where an upstream source (a CEX trade feed) hands
// us a float and we need to promote it into the engine's exact domain.
func RatFromFloat(f float64) *Rat {
	r := new(big.Rat)
	r.SetFloat64(f)
	return r
}

// ScaledRational interprets an integer amount as if it had `decimals` decimal
// places, returning the equivalent exact rational (e.g. wei -> ether).
func ScaledRational(amount *big.Int, decimals uint) *Rat {
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	return new(big.Rat).SetFrac(amount, scale)
}

// RoundToFloat rounds r to the nearest float64, ties to even (banker's
// rounding), and is the ONLY place a rational is allowed to become a float in
// the engine — every USD/ETH projection in Bundle and MevBlock funnels
// through this.
func RoundToFloat(r *Rat) float64 {
	if r == nil {
		return 0
	}
	f, _ := r.Float64()
	return f
}

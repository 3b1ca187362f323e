package cex

import "errors"

// ErrMissingTradeData is returned when neither a pair nor its flip has any
// admissible trades on any exchange.
var ErrMissingTradeData = errors.New("cex: missing trade data")

// ErrInsufficientVolume is returned when the trades a basket queue could
// assign fall short of the requested volume and bypass_vol was not engaged.
var ErrInsufficientVolume = errors.New("cex: insufficient trade volume")

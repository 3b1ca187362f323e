package store

// traceShelfSizes enumerates billy's shelf sizes for the TxTraces blob log:
// a geometric ladder from 4 KiB up to 8 MiB, since a block's worth of
// traces can range from a handful of bytes (an empty block) to several
// megabytes (a block dense with deep call trees).
const (
	minTraceShelfBytes = 4 * 1024
	maxTraceShelfBytes = 8 * 1024 * 1024
)

// newTraceSlotter returns billy's shelf-size generator: called repeatedly
// until it reports done, each call handing back the next shelf size in the
// ladder.
func newTraceSlotter() func() (uint32, bool) {
	size := uint32(minTraceShelfBytes)
	return func() (uint32, bool) {
		cur := size
		done := cur >= maxTraceShelfBytes
		if !done {
			size *= 2
		}
		return cur, done
	}
}

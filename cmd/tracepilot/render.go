package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/mevtrace/engine/metrics"
	"github.com/olekukonko/tablewriter"
)

// isTerminal reports whether f is an interactive terminal, gating
// --cli-only's live rendering the same way a TUI would gate entering raw
// mode.
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// startLiveCounters redraws a small metrics table to stdout every second
// until ctx is cancelled, the --cli-only substitute for a full TUI (out of
// scope per spec.md §1). Returns a function the caller defers to make sure
// the final render settles before the process exits.
func startLiveCounters(ctx context.Context, reg *metrics.Registry) func() {
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			renderCounters(reg)
			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
		}
	}()
	return func() { <-done }
}

func renderCounters(reg *metrics.Registry) {
	fmt.Print("\033[H\033[2J")
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Metric", "Value"})
	table.Append([]string{"pricer cache hit rate", fmt.Sprintf("%.2f%%", reg.CacheHitRate()*100)})
	table.Render()
}

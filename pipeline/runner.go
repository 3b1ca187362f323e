package pipeline

import (
	"context"

	"github.com/ethereum/go-ethereum/log"
)

// ChainHead reports the current tip, the collaborator tip-follower mode
// polls to compute behind_tip.
type ChainHead interface {
	HeadNumber(ctx context.Context) (uint64, error)
}

// Mode selects how Runner picks the next block range.
type Mode int

const (
	// ModeHistorical processes [start, end] once and stops.
	ModeHistorical Mode = iota
	// ModeOpenEndedHistorical processes [start, infinity) until ctx is
	// cancelled.
	ModeOpenEndedHistorical
	// ModeTipFollower tracks the chain head minus BehindTip, polling Head
	// for new work once it catches up.
	ModeTipFollower
)

// Runner drives the scheduler across a block range according to Mode,
// matching spec.md §5's three run modes.
type Runner struct {
	Scheduler *Scheduler
	Deps      Deps

	Mode       Mode
	StartBlock uint64
	EndBlock   uint64 // 0 == open-ended
	BehindTip  uint64

	Head ChainHead // required for ModeTipFollower

	// PollInterval gates how often ModeTipFollower re-checks Head once it
	// has caught up to tip - BehindTip. Left as a plain field rather than a
	// config value so tests can shrink it.
	PollInterval func(ctx context.Context) error
}

// Run drives blocks through the Scheduler until the configured range is
// exhausted (historical modes) or ctx is cancelled (open-ended modes). A
// block whose processing fails is logged and skipped, not returned. Run
// returns an error only when a block cannot be submitted (for example ctx
// is cancelled while waiting for a free slot); otherwise it returns nil
// after every in-flight block has finished (graceful shutdown).
func (r *Runner) Run(ctx context.Context) error {
	switch r.Mode {
	case ModeHistorical:
		return r.runRange(ctx, r.StartBlock, r.EndBlock)
	case ModeOpenEndedHistorical:
		return r.runOpenEnded(ctx, r.StartBlock)
	case ModeTipFollower:
		return r.runTipFollower(ctx)
	default:
		return r.runRange(ctx, r.StartBlock, r.EndBlock)
	}
}

func (r *Runner) runRange(ctx context.Context, start, end uint64) error {
	for n := start; n <= end; n++ {
		if err := r.submit(ctx, n); err != nil {
			return err
		}
	}
	r.Scheduler.Close()
	return r.Scheduler.Wait()
}

func (r *Runner) runOpenEnded(ctx context.Context, start uint64) error {
	for n := start; ; n++ {
		if ctx.Err() != nil {
			break
		}
		if err := r.submit(ctx, n); err != nil {
			return err
		}
	}
	r.Scheduler.Close()
	return r.Scheduler.Wait()
}

func (r *Runner) runTipFollower(ctx context.Context) error {
	next := r.StartBlock
	for {
		if ctx.Err() != nil {
			break
		}
		head, err := r.Head.HeadNumber(ctx)
		if err != nil {
			log.Warn("chain head lookup failed, retrying", "err", err)
			if r.PollInterval != nil {
				if err := r.PollInterval(ctx); err != nil {
					break
				}
			}
			continue
		}
		target := head
		if target >= r.BehindTip {
			target -= r.BehindTip
		} else {
			target = 0
		}
		if next > target {
			if r.PollInterval != nil {
				if err := r.PollInterval(ctx); err != nil {
					break
				}
			}
			continue
		}
		for ; next <= target; next++ {
			if ctx.Err() != nil {
				break
			}
			if err := r.submit(ctx, next); err != nil {
				return err
			}
		}
	}
	r.Scheduler.Close()
	return r.Scheduler.Wait()
}

func (r *Runner) submit(ctx context.Context, blockNumber uint64) error {
	return r.Scheduler.Submit(ctx, blockNumber, func(ctx context.Context) error {
		if err := ProcessBlock(ctx, r.Deps, blockNumber); err != nil {
			log.Error("block processing failed, skipping", "block", blockNumber, "err", err)
		}
		return nil
	})
}

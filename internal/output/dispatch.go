package output

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/leaksentry/leaksentry/internal/domain/model"
	"github.com/leaksentry/leaksentry/internal/domain/port/driven"
)

// Dispatcher fans findings out to the three reporting channels. Each
// channel is gated by its own flag and owns its failure: a channel error
// is logged as a warning and recorded, never escalated and never allowed
// to cancel a sibling.
type Dispatcher struct {
	Reviews driven.ReviewService
	Summary *SummaryWriter
	Stager  *Stager

	EnableComments bool
	EnableSummary  bool
	EnableArtifact bool

	NotifyUsers []string
	ReportPath  string
}

// DispatchFindings runs all three channels concurrently and blocks until
// every channel has completed or failed. This must finish before the
// process exits; the final nonzero status never short-circuits reporting.
func (d *Dispatcher) DispatchFindings(ctx context.Context, ev model.TriggerEvent, findings []model.Finding) []model.DispatchResult {
	var (
		g       errgroup.Group
		mu      sync.Mutex
		results []model.DispatchResult
	)

	record := func(ch model.Channel, err error) {
		if err != nil {
			err = &model.ChannelFailure{Channel: ch, Cause: err}
			slog.Warn("reporting channel failed", "channel", ch, "error", err)
		}
		mu.Lock()
		results = append(results, model.DispatchResult{Channel: ch, Err: err})
		mu.Unlock()
	}

	run := func(ch model.Channel, enabled bool, fn func() error) {
		if !enabled {
			slog.Debug("reporting channel disabled", "channel", ch)
			return
		}
		g.Go(func() error {
			record(ch, fn())
			return nil
		})
	}

	run(model.ChannelComments, d.EnableComments, func() error {
		candidates := BuildCandidates(findings, d.NotifyUsers)
		planned := PlanComments(ctx, ev, candidates, true, d.Reviews)
		PostComments(ctx, ev, planned, d.Reviews)
		return nil
	})

	run(model.ChannelSummary, d.EnableSummary, func() error {
		return d.Summary.Write(FindingsSummary(ev.Repository, findings))
	})

	run(model.ChannelArtifact, d.EnableArtifact, func() error {
		return d.Stager.Stage(d.ReportPath)
	})

	// Channel funcs always return nil; failures live in results.
	_ = g.Wait()
	return results
}

// DispatchClean emits the success summary and still stages the report in
// case the scanner wrote one on a clean run.
func (d *Dispatcher) DispatchClean() []model.DispatchResult {
	var results []model.DispatchResult

	if d.EnableSummary {
		err := d.Summary.Write(SuccessSummary())
		if err != nil {
			slog.Warn("reporting channel failed", "channel", model.ChannelSummary, "error", err)
		}
		results = append(results, model.DispatchResult{Channel: model.ChannelSummary, Err: err})
	}
	if d.EnableArtifact {
		err := d.Stager.Stage(d.ReportPath)
		if err != nil {
			slog.Warn("reporting channel failed", "channel", model.ChannelArtifact, "error", err)
		}
		results = append(results, model.DispatchResult{Channel: model.ChannelArtifact, Err: err})
	}
	return results
}

// DispatchError emits the error summary naming the scanner's exit status.
func (d *Dispatcher) DispatchError(exitStatus int) []model.DispatchResult {
	if !d.EnableSummary {
		return nil
	}
	err := d.Summary.Write(ErrorSummary(exitStatus))
	if err != nil {
		slog.Warn("reporting channel failed", "channel", model.ChannelSummary, "error", err)
	}
	return []model.DispatchResult{{Channel: model.ChannelSummary, Err: err}}
}

// ExitStatus maps a scan outcome to the final process status. Findings
// exit 1, deliberately distinct from the scanner's own leaks code, and an
// unrepresentable execution status (the timeout sentinel) normalizes to 1.
func ExitStatus(outcome model.ScanOutcome) int {
	switch outcome.Status {
	case model.ScanClean:
		return 0
	case model.ScanFindingsDetected:
		return 1
	default:
		if outcome.ExitStatus > 0 {
			return outcome.ExitStatus
		}
		return 1
	}
}

// Package application wires event classification, scanner invocation,
// report parsing, and result dispatch into a single scan run.
package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/leaksentry/leaksentry/internal/config"
	"github.com/leaksentry/leaksentry/internal/domain/model"
	"github.com/leaksentry/leaksentry/internal/domain/port/driven"
	"github.com/leaksentry/leaksentry/internal/event"
	"github.com/leaksentry/leaksentry/internal/output"
	"github.com/leaksentry/leaksentry/internal/sarif"
	"github.com/leaksentry/leaksentry/internal/scanner"
)

// scanRunner abstracts scanner execution so the pipeline can be tested
// without spawning a real binary.
type scanRunner interface {
	Run(ctx context.Context, args, extraEnv []string, workdir string) (scanner.Result, error)
}

var _ scanRunner = (*scanner.Runner)(nil)

// Pipeline executes one complete scan: it classifies the triggering
// event, resolves the commit range, invokes the scanner, parses the
// report when findings exist, and fans results out to the reporting
// channels. Run returns the process exit status.
type Pipeline struct {
	Cfg        *config.Config
	Reviews    driven.ReviewService
	Runner     scanRunner
	Dispatcher *output.Dispatcher
}

// Run performs the scan and returns the exit status the process should
// terminate with. A non-nil error always accompanies a nonzero status
// and describes a failure outside the scanner's own exit contract.
func (p *Pipeline) Run(ctx context.Context) (int, error) {
	ev, err := event.Read(p.Cfg)
	if err != nil {
		return 1, err
	}

	slog.Info("event classified",
		"kind", ev.Kind,
		"repository", ev.Repository.FullName,
	)

	// A push payload can legitimately carry zero commits (branch
	// creation, force push of existing history). Nothing to scan.
	if ev.Kind == model.TriggerPush && len(ev.Commits) == 0 {
		slog.Info("push event carries no commits, skipping scan")
		p.Dispatcher.DispatchClean()
		return 0, nil
	}

	rng, err := event.ResolveRange(ctx, ev, p.Cfg.BaseRef, p.Reviews)
	if err != nil {
		return 1, fmt.Errorf("resolving commit range: %w", err)
	}

	args := scanner.DetectArgs(rng, p.Cfg.ReportPath(), p.Cfg.ScannerConfig)
	extraEnv := scanner.EnvOverlay(p.Cfg.ScannerLicense)

	res, err := p.Runner.Run(ctx, args, extraEnv, p.Cfg.WorkspacePath)
	if err != nil {
		return 1, fmt.Errorf("invoking scanner: %w", err)
	}

	outcome := model.OutcomeFromExitStatus(res.ExitStatus)

	switch outcome.Status {
	case model.ScanClean:
		slog.Info("no leaks detected")
		p.Dispatcher.DispatchClean()
		return 0, nil

	case model.ScanFindingsDetected:
		findings, err := sarif.ParseAndExtract(p.Cfg.ReportPath())
		if err != nil {
			// Scanner claimed findings but the report is unusable.
			// No reporting channel runs against a report we cannot
			// trust.
			return 1, fmt.Errorf("reading scan report: %w", err)
		}
		outcome.Findings = findings
		slog.Warn("leaks detected", "count", len(findings))
		p.Dispatcher.DispatchFindings(ctx, ev, findings)
		return output.ExitStatus(outcome), nil

	default:
		slog.Error("scanner execution failed",
			"exit_status", res.ExitStatus,
			"stderr", res.Stderr,
		)
		p.Dispatcher.DispatchError(res.ExitStatus)
		status := output.ExitStatus(outcome)
		return status, &model.ExecutionError{
			ExitStatus: res.ExitStatus,
			Cause:      fmt.Errorf("scanner exited with status %d", res.ExitStatus),
		}
	}
}

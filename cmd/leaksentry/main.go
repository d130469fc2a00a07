package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	githubadapter "github.com/leaksentry/leaksentry/internal/adapter/driven/github"
	"github.com/leaksentry/leaksentry/internal/application"
	"github.com/leaksentry/leaksentry/internal/cli"
	"github.com/leaksentry/leaksentry/internal/config"
	"github.com/leaksentry/leaksentry/internal/output"
	"github.com/leaksentry/leaksentry/internal/scanner"
)

func main() {
	if !inActionEnvironment() {
		os.Exit(cli.Run())
	}

	status, err := runAction()
	if err != nil {
		slog.Error("scan failed", "error", err)
	}
	os.Exit(status)
}

// inActionEnvironment reports whether the process was launched by the CI
// runner rather than from a shell.
func inActionEnvironment() bool {
	return os.Getenv("GITHUB_ACTIONS") != "" &&
		os.Getenv("GITHUB_WORKSPACE") != "" &&
		os.Getenv("GITHUB_EVENT_PATH") != ""
}

func runAction() (int, error) {
	// 1. Load configuration (fail fast on missing required env vars).
	cfg, err := config.Load()
	if err != nil {
		return 1, err
	}
	slog.Info("config loaded",
		"repository", cfg.Repository,
		"event", cfg.EventName,
		"scanner_version", cfg.ScannerVersion,
		"scan_timeout", cfg.ScanTimeout,
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Wire the review-service adapter. The token may be empty outside
	// pull_request runs; the comment channel is the only consumer.
	reviews := githubadapter.NewClient(cfg.GitHubToken)

	// 4. Wire the reporting channels. The summary path is captured once
	// here; a missing path downgrades that channel to a logged no-op.
	dispatcher := &output.Dispatcher{
		Reviews:        reviews,
		Summary:        &output.SummaryWriter{Path: os.Getenv("GITHUB_STEP_SUMMARY")},
		Stager:         &output.Stager{Dir: cfg.ArtifactDir},
		EnableComments: cfg.EnableComments,
		EnableSummary:  cfg.EnableSummary,
		EnableArtifact: cfg.EnableArtifact,
		NotifyUsers:    cfg.NotifyUsers,
		ReportPath:     cfg.ReportPath(),
	}

	// 5. Run the pipeline and exit with its status.
	pipeline := &application.Pipeline{
		Cfg:     cfg,
		Reviews: reviews,
		Runner: &scanner.Runner{
			Binary:  scanner.DefaultBinary,
			Timeout: cfg.ScanTimeout,
		},
		Dispatcher: dispatcher,
	}

	return pipeline.Run(ctx)
}

// Package scanner builds the external scanner invocation and runs the
// process. It never interprets exit statuses itself; the pipeline owns
// that decision.
package scanner

import (
	"fmt"

	"github.com/leaksentry/leaksentry/internal/domain/model"
)

// DefaultBinary is the scanner executable name, resolved via PATH.
const DefaultBinary = "gitleaks"

// LeaksExitCode is the exit status the scanner is asked to use when it
// detects secrets, keeping it distinct from its generic error status 1.
const LeaksExitCode = 2

// LogOpts renders the git-log restriction for a commit range. The scanner
// passes the value through to git verbatim, so the text must be exact:
//
//	nil range      -> "" (full history, argument omitted)
//	single commit  -> "-1"
//	otherwise      -> "--no-merges --first-parent {base}^..{head}"
func LogOpts(rng *model.CommitRange) string {
	if rng == nil {
		return ""
	}
	if rng.SingleCommit {
		return "-1"
	}
	return fmt.Sprintf("--no-merges --first-parent %s^..%s", rng.Base, rng.Head)
}

// DetectArgs constructs the argument list for a detect run against the
// given range. reportPath is where the scanner writes its SARIF report;
// configPath, when non-empty, selects an explicit rule file.
func DetectArgs(rng *model.CommitRange, reportPath, configPath string) []string {
	args := []string{
		"detect",
		"--redact",
		"-v",
		fmt.Sprintf("--exit-code=%d", LeaksExitCode),
		"--report-format=sarif",
		"--report-path=" + reportPath,
		"--log-level=debug",
	}

	if configPath != "" {
		args = append(args, "--config="+configPath)
	}

	if opts := LogOpts(rng); opts != "" {
		args = append(args, "--log-opts="+opts)
	}

	return args
}

// EnvOverlay returns the extra environment entries the scanner process
// receives on top of the inherited environment.
func EnvOverlay(license string) []string {
	if license == "" {
		return nil
	}
	return []string{"GITLEAKS_LICENSE=" + license}
}

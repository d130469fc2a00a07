package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leaksentry/leaksentry/internal/config"
	"github.com/leaksentry/leaksentry/internal/domain/model"
	"github.com/leaksentry/leaksentry/internal/output"
	"github.com/leaksentry/leaksentry/internal/scanner"
)

var (
	flagSource       string
	flagReportPath   string
	flagReportFormat string
	flagRedact       bool
	flagVerbose      bool
	flagLogOpts      string
	flagConfig       string
)

func addScanFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagSource, "source", ".", "Path of the repository to scan")
	cmd.Flags().BoolVar(&flagRedact, "redact", true, "Redact secret values in scanner output")
	cmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", true, "Verbose scanner output")
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to a scanner rule config file")
}

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Scan repository history for secrets",
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := filepath.Abs(flagSource)
		if err != nil {
			return fmt.Errorf("resolving source path: %w", err)
		}

		reportPath := flagReportPath
		if reportPath == "" {
			reportPath = filepath.Join(source, "results.sarif")
		}

		scanArgs := []string{
			"detect",
			fmt.Sprintf("--exit-code=%d", scanner.LeaksExitCode),
			"--report-format=" + flagReportFormat,
			"--report-path=" + reportPath,
		}
		scanArgs = appendCommonFlags(scanArgs)
		if flagLogOpts != "" {
			scanArgs = append(scanArgs, "--log-opts="+flagLogOpts)
		}

		code, err := runScan(cmd, scanArgs, source)
		if err != nil {
			return err
		}
		exitCode = code
		return nil
	},
}

var flagStaged bool

var protectCmd = &cobra.Command{
	Use:   "protect",
	Short: "Scan uncommitted changes for secrets",
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := filepath.Abs(flagSource)
		if err != nil {
			return fmt.Errorf("resolving source path: %w", err)
		}

		scanArgs := []string{
			"protect",
			fmt.Sprintf("--exit-code=%d", scanner.LeaksExitCode),
		}
		scanArgs = appendCommonFlags(scanArgs)
		if flagStaged {
			scanArgs = append(scanArgs, "--staged")
		}

		code, err := runScan(cmd, scanArgs, source)
		if err != nil {
			return err
		}
		exitCode = code
		return nil
	},
}

func init() {
	addScanFlags(detectCmd)
	detectCmd.Flags().StringVar(&flagReportPath, "report-path", "", "Report output path (default: <source>/results.sarif)")
	detectCmd.Flags().StringVar(&flagReportFormat, "report-format", "sarif", "Report format")
	detectCmd.Flags().StringVar(&flagLogOpts, "log-opts", "", "git log options restricting the scanned range")

	addScanFlags(protectCmd)
	protectCmd.Flags().BoolVar(&flagStaged, "staged", false, "Scan staged changes only")
}

func appendCommonFlags(scanArgs []string) []string {
	if flagRedact {
		scanArgs = append(scanArgs, "--redact")
	}
	if flagVerbose {
		scanArgs = append(scanArgs, "-v")
	}
	if flagConfig != "" {
		scanArgs = append(scanArgs, "--config="+flagConfig)
	}
	return scanArgs
}

// runScan executes the scanner and maps its exit status through the same
// outcome contract the CI pipeline uses: 0 stays 0, the leaks code maps
// to 1, anything else passes through.
func runScan(cmd *cobra.Command, scanArgs []string, workdir string) (int, error) {
	runner := &scanner.Runner{
		Binary:  scanner.DefaultBinary,
		Timeout: config.DefaultScanTimeout,
	}

	res, err := runner.Run(cmd.Context(), scanArgs, scanner.EnvOverlay(os.Getenv("GITLEAKS_LICENSE")), workdir)
	if err != nil {
		return 0, err
	}

	outcome := model.OutcomeFromExitStatus(res.ExitStatus)
	switch outcome.Status {
	case model.ScanClean:
		fmt.Fprintln(cmd.OutOrStdout(), "no leaks detected")
	case model.ScanFindingsDetected:
		fmt.Fprintln(cmd.OutOrStdout(), "leaks detected, see scanner output")
	default:
		fmt.Fprintf(cmd.ErrOrStderr(), "scanner exited with error, exit code [%d]\n", res.ExitStatus)
	}
	return output.ExitStatus(outcome), nil
}

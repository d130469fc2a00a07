// Package config loads the pipeline configuration from environment variables.
// Everything is captured once at startup into an immutable Config and
// threaded through function parameters; no component re-reads the process
// environment afterwards.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/leaksentry/leaksentry/internal/domain/model"
)

// DefaultScanTimeout bounds the scanner subprocess wall clock.
const DefaultScanTimeout = 60 * time.Second

// Config holds the run configuration derived from the CI environment.
type Config struct {
	// GitHub context.
	GitHubToken     string
	WorkspacePath   string
	EventPath       string
	EventName       string
	Repository      string // owner/repo
	RepositoryOwner string

	// Scanner selection and rules.
	ScannerVersion string // consumed by the installer collaborator, carried only
	ScannerConfig  string // path to rule config, empty when none
	ScannerLicense string // passed through to the scanner environment

	// Reporting channels.
	EnableSummary  bool
	EnableArtifact bool
	EnableComments bool
	NotifyUsers    []string
	ArtifactDir    string

	// Range override and limits.
	BaseRef     string // optional override for the range base
	ScanTimeout time.Duration
}

// Load reads configuration from environment variables and returns a
// validated Config. The GITHUB_* context variables are required;
// GITHUB_TOKEN is required only for pull_request events, since that is the
// only trigger that talks to the review-comment API.
func Load() (*Config, error) {
	workspace, err := requiredEnv("GITHUB_WORKSPACE")
	if err != nil {
		return nil, err
	}
	eventPath, err := requiredEnv("GITHUB_EVENT_PATH")
	if err != nil {
		return nil, err
	}
	eventName, err := requiredEnv("GITHUB_EVENT_NAME")
	if err != nil {
		return nil, err
	}
	repository, err := requiredEnv("GITHUB_REPOSITORY")
	if err != nil {
		return nil, err
	}
	owner, err := requiredEnv("GITHUB_REPOSITORY_OWNER")
	if err != nil {
		return nil, err
	}
	if !strings.Contains(repository, "/") {
		return nil, fmt.Errorf("%w: GITHUB_REPOSITORY %q is not owner/repo", model.ErrConfiguration, repository)
	}

	token := os.Getenv("GITHUB_TOKEN")
	if eventName == "pull_request" && token == "" {
		return nil, fmt.Errorf("%w: GITHUB_TOKEN is required for pull_request events", model.ErrConfiguration)
	}

	baseRef := os.Getenv("BASE_REF")
	if err := ValidateGitRef(baseRef); err != nil {
		return nil, err
	}

	scannerVersion := "8.24.3"
	if v, ok := os.LookupEnv("GITLEAKS_VERSION"); ok && v != "" {
		scannerVersion = v
	}

	scannerConfig := os.Getenv("GITLEAKS_CONFIG")
	if scannerConfig == "" {
		// Auto-detect a rule file at the workspace root.
		candidate := filepath.Join(workspace, "gitleaks.toml")
		if _, err := os.Stat(candidate); err == nil {
			scannerConfig = candidate
		}
	}

	artifactDir := os.Getenv("LEAKSENTRY_ARTIFACT_DIR")
	if artifactDir == "" {
		artifactDir = filepath.Join(workspace, "leaksentry-artifacts")
	}

	scanTimeout := DefaultScanTimeout
	if v, ok := os.LookupEnv("LEAKSENTRY_SCAN_TIMEOUT"); ok {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("%w: LEAKSENTRY_SCAN_TIMEOUT has invalid duration %q: %v", model.ErrConfiguration, v, err)
		}
		scanTimeout = parsed
	}

	return &Config{
		GitHubToken:     token,
		WorkspacePath:   workspace,
		EventPath:       eventPath,
		EventName:       eventName,
		Repository:      repository,
		RepositoryOwner: owner,
		ScannerVersion:  scannerVersion,
		ScannerConfig:   scannerConfig,
		ScannerLicense:  os.Getenv("GITLEAKS_LICENSE"),
		EnableSummary:   boolEnv("LEAKSENTRY_ENABLE_SUMMARY", true),
		EnableArtifact:  boolEnv("LEAKSENTRY_ENABLE_ARTIFACT", true),
		EnableComments:  boolEnv("LEAKSENTRY_ENABLE_COMMENTS", true),
		NotifyUsers:     parseUserList(os.Getenv("LEAKSENTRY_NOTIFY_USER_LIST")),
		ArtifactDir:     artifactDir,
		BaseRef:         baseRef,
		ScanTimeout:     scanTimeout,
	}, nil
}

// ReportPath is the fixed location the scanner is asked to write its
// structured report to, single-writer then single-reader.
func (c *Config) ReportPath() string {
	return filepath.Join(c.WorkspacePath, "results.sarif")
}

// RepoParts splits Repository into owner and name.
func (c *Config) RepoParts() (owner, name string) {
	parts := strings.SplitN(c.Repository, "/", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return c.RepositoryOwner, ""
}

func requiredEnv(key string) (string, error) {
	v := os.Getenv(key)
	if v == "" {
		return "", fmt.Errorf("%w: %s is not set", model.ErrConfiguration, key)
	}
	return v, nil
}

// boolEnv parses a feature flag. Only the literal values "false" and "0"
// are falsy; every other non-empty value is truthy, and absence takes the
// default. This parsing rule is load-bearing for workflows written against
// earlier releases.
func boolEnv(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	switch v {
	case "false", "0":
		return false
	default:
		return true
	}
}

// parseUserList splits a comma-separated notify list, keeping each entry
// verbatim (including its @ prefix) and dropping empties.
func parseUserList(input string) []string {
	if input == "" {
		return nil
	}
	var users []string
	for _, u := range strings.Split(input, ",") {
		u = strings.TrimSpace(u)
		if u != "" {
			users = append(users, u)
		}
	}
	return users
}

// ValidateGitRef rejects refs that could smuggle arguments or shell
// metacharacters into the scanner's range expression. Empty refs are
// allowed: they mean "no override".
func ValidateGitRef(ref string) error {
	if ref == "" {
		return nil
	}
	if strings.Contains(ref, "..") {
		return fmt.Errorf("%w: git ref %q contains path traversal", model.ErrConfiguration, ref)
	}
	if i := strings.IndexAny(ref, ";&|$`<>\n\r"); i >= 0 {
		return fmt.Errorf("%w: git ref %q contains forbidden character %q", model.ErrConfiguration, ref, ref[i])
	}
	return nil
}

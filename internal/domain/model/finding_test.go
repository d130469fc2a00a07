package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprint_Format(t *testing.T) {
	f := Finding{
		RuleID:    "aws-access-token",
		FilePath:  "src/config.go",
		StartLine: 42,
		CommitSHA: "abc123def456",
	}

	assert.Equal(t, "abc123def456:src/config.go:aws-access-token:42", f.Fingerprint())
}

func TestFingerprint_Deterministic(t *testing.T) {
	f := Finding{RuleID: "generic-api-key", FilePath: "a.yml", StartLine: 7, CommitSHA: "deadbeef"}

	assert.Equal(t, f.Fingerprint(), f.Fingerprint())

	// Any of the four inputs changing must change the fingerprint.
	variants := []Finding{
		{RuleID: "other-rule", FilePath: "a.yml", StartLine: 7, CommitSHA: "deadbeef"},
		{RuleID: "generic-api-key", FilePath: "b.yml", StartLine: 7, CommitSHA: "deadbeef"},
		{RuleID: "generic-api-key", FilePath: "a.yml", StartLine: 8, CommitSHA: "deadbeef"},
		{RuleID: "generic-api-key", FilePath: "a.yml", StartLine: 7, CommitSHA: "cafef00d"},
	}
	for _, v := range variants {
		assert.NotEqual(t, f.Fingerprint(), v.Fingerprint())
	}
}

func TestShortSHA(t *testing.T) {
	assert.Equal(t, "abcdef1", Finding{CommitSHA: "abcdef1234567890"}.ShortSHA())
	assert.Equal(t, "abc", Finding{CommitSHA: "abc"}.ShortSHA())
}

func TestFindingURLs(t *testing.T) {
	f := Finding{FilePath: "src/main.go", StartLine: 42, CommitSHA: "abc123"}
	repoURL := "https://github.com/owner/repo"

	assert.Equal(t, "https://github.com/owner/repo/commit/abc123", f.CommitURL(repoURL))
	assert.Equal(t, "https://github.com/owner/repo/blob/abc123/src/main.go#L42", f.SecretURL(repoURL))
	assert.Equal(t, "https://github.com/owner/repo/blob/abc123/src/main.go", f.FileURL(repoURL))
}

func TestOutcomeFromExitStatus(t *testing.T) {
	assert.Equal(t, ScanClean, OutcomeFromExitStatus(0).Status)
	assert.Equal(t, ScanFindingsDetected, OutcomeFromExitStatus(2).Status)
	assert.Equal(t, ScanExecutionError, OutcomeFromExitStatus(1).Status)
	assert.Equal(t, ScanExecutionError, OutcomeFromExitStatus(126).Status)
	assert.Equal(t, 126, OutcomeFromExitStatus(126).ExitStatus)
}

package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leaksentry/leaksentry/internal/domain/model"
)

func TestSuccessSummary(t *testing.T) {
	s := SuccessSummary()
	assert.Contains(t, s, "No leaks detected")
	assert.Contains(t, s, "✅")
}

func TestErrorSummary(t *testing.T) {
	s := ErrorSummary(126)
	assert.Contains(t, s, "Exit code [126]")
	assert.Contains(t, s, "❌")
}

func TestFindingsSummary(t *testing.T) {
	repo := model.Repository{
		Owner:    "owner",
		Name:     "repo",
		FullName: "owner/repo",
		HTMLURL:  "https://github.com/owner/repo",
	}
	findings := []model.Finding{{
		RuleID:     "aws-access-token",
		FilePath:   "src/config.go",
		StartLine:  42,
		CommitSHA:  "abc123def456",
		Author:     "Jordan Doe",
		Email:      "jordan@example.com",
		CommitDate: "2026-08-01",
	}}

	s := FindingsSummary(repo, findings)

	assert.Contains(t, s, "<table>")
	assert.Contains(t, s, "aws-access-token")
	assert.Contains(t, s, "abc123d") // short SHA
	assert.Contains(t, s, "Jordan Doe")
	assert.Contains(t, s, "https://github.com/owner/repo/commit/abc123def456")
	assert.Contains(t, s, "https://github.com/owner/repo/blob/abc123def456/src/config.go#L42")
}

func TestFindingsSummary_EscapesScannerText(t *testing.T) {
	repo := model.Repository{HTMLURL: "https://github.com/o/r"}
	findings := []model.Finding{{
		RuleID: `<script>"x"&'y'</script>`,
		Author: "a < b",
	}}

	s := FindingsSummary(repo, findings)

	assert.NotContains(t, s, "<script>")
	assert.Contains(t, s, "&lt;script&gt;")
	assert.Contains(t, s, "a &lt; b")
}

func TestSummaryWriter_Appends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.md")
	w := &SummaryWriter{Path: path}

	require.NoError(t, w.Write("first"))
	require.NoError(t, w.Write("second"))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\n", string(content))
}

func TestSummaryWriter_NoPathIsNoop(t *testing.T) {
	w := &SummaryWriter{}
	assert.NoError(t, w.Write("ignored"))
}

func TestSummaryWriter_UnwritablePath(t *testing.T) {
	w := &SummaryWriter{Path: filepath.Join(t.TempDir(), "missing", "summary.md")}
	assert.Error(t, w.Write("content"))
}

package model

import "fmt"

// UnknownPlaceholder substitutes scanner report fields that were absent.
// Entries stay parseable instead of aborting extraction.
const UnknownPlaceholder = "unknown"

// Finding is one detected secret occurrence extracted from the scanner's
// report. Immutable once constructed.
type Finding struct {
	RuleID        string
	Message       string
	FilePath      string
	StartLine     int
	StartColumn   int    // 0 when the report omitted it
	Snippet       string // UnknownPlaceholder when redacted or absent
	CommitSHA     string
	Author        string
	Email         string
	CommitDate    string
	CommitMessage string // UnknownPlaceholder when absent
}

// Fingerprint derives the stable identifier for a finding. The format is
// consumed verbatim by ignore-list files, so it must never change:
//
//	{commitSHA}:{filePath}:{ruleID}:{startLine}
func (f Finding) Fingerprint() string {
	return fmt.Sprintf("%s:%s:%s:%d", f.CommitSHA, f.FilePath, f.RuleID, f.StartLine)
}

// ShortSHA returns the first seven characters of the commit SHA, or the
// whole SHA when it is shorter than that.
func (f Finding) ShortSHA() string {
	if len(f.CommitSHA) >= 7 {
		return f.CommitSHA[:7]
	}
	return f.CommitSHA
}

// CommitURL links to the commit that introduced the finding.
func (f Finding) CommitURL(repoURL string) string {
	return fmt.Sprintf("%s/commit/%s", repoURL, f.CommitSHA)
}

// SecretURL links directly to the detected line.
func (f Finding) SecretURL(repoURL string) string {
	return fmt.Sprintf("%s/blob/%s/%s#L%d", repoURL, f.CommitSHA, f.FilePath, f.StartLine)
}

// FileURL links to the file at the offending commit.
func (f Finding) FileURL(repoURL string) string {
	return fmt.Sprintf("%s/blob/%s/%s", repoURL, f.CommitSHA, f.FilePath)
}

package sarif

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/leaksentry/leaksentry/internal/domain/model"
)

// ParseFile reads and validates the report at path. A missing file,
// malformed JSON, or a document with no runs is a report parse error: the
// scanner claimed findings but produced nothing valid to report.
func ParseFile(path string) (*Report, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading report %s: %v", model.ErrReportParse, path, err)
	}
	return Parse(raw)
}

// Parse validates a raw report document.
func Parse(raw []byte) (*Report, error) {
	var report Report
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil, fmt.Errorf("%w: decoding report: %v", model.ErrReportParse, err)
	}
	if len(report.Runs) == 0 {
		return nil, fmt.Errorf("%w: report has no runs", model.ErrReportParse)
	}
	return &report, nil
}

// ExtractFindings converts report results into findings. Structurally
// incomplete results (no location, no fingerprints) are skipped with a
// warning rather than failing the whole report; absent optional fields
// degrade to the "unknown" placeholder.
func ExtractFindings(report *Report) []model.Finding {
	var findings []model.Finding

	for _, run := range report.Runs {
		for _, result := range run.Results {
			f, ok := findingFromResult(result)
			if !ok {
				continue
			}
			findings = append(findings, f)
		}
	}

	slog.Info("extracted findings from report", "count", len(findings))
	return findings
}

// ParseAndExtract reads the report and extracts findings in one step.
func ParseAndExtract(path string) ([]model.Finding, error) {
	report, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	return ExtractFindings(report), nil
}

func findingFromResult(result Result) (model.Finding, bool) {
	if len(result.Locations) == 0 {
		slog.Warn("skipping result without locations", "rule_id", result.RuleID)
		return model.Finding{}, false
	}
	if result.PartialFingerprints == nil {
		slog.Warn("skipping result without fingerprints", "rule_id", result.RuleID)
		return model.Finding{}, false
	}

	loc := result.Locations[0].PhysicalLocation
	fp := result.PartialFingerprints

	f := model.Finding{
		RuleID:        result.RuleID,
		Message:       result.Message.Text,
		FilePath:      loc.ArtifactLocation.URI,
		StartLine:     loc.Region.StartLine,
		StartColumn:   loc.Region.StartColumn,
		Snippet:       orUnknown(snippetText(loc.Region.Snippet)),
		CommitSHA:     orUnknown(fp.CommitSHA),
		Author:        orUnknown(fp.Author),
		Email:         orUnknown(fp.Email),
		CommitDate:    orUnknown(fp.Date),
		CommitMessage: orUnknown(fp.CommitMessage),
	}
	return f, true
}

func snippetText(s *ArtifactContent) string {
	if s == nil {
		return ""
	}
	return s.Text
}

func orUnknown(s string) string {
	if s == "" {
		return model.UnknownPlaceholder
	}
	return s
}

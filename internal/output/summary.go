package output

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/leaksentry/leaksentry/internal/domain/model"
)

// SummaryWriter appends rendered summaries to the CI job summary file.
// An empty Path makes every write a logged no-op, so runs outside CI
// still work.
type SummaryWriter struct {
	Path string
}

// Write appends content (plus a trailing newline) to the summary file.
func (w *SummaryWriter) Write(content string) error {
	if w.Path == "" {
		slog.Warn("no summary path configured, skipping job summary")
		return nil
	}

	f, err := os.OpenFile(w.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening summary file %s: %w", w.Path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(content + "\n"); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}

// SuccessSummary is the clean-run summary.
func SuccessSummary() string {
	return "## No leaks detected ✅\n"
}

// ErrorSummary names the scanner's failing exit status.
func ErrorSummary(exitStatus int) string {
	return fmt.Sprintf("## ❌ Scanner exited with error. Exit code [%d]\n", exitStatus)
}

// FindingsSummary renders an HTML table of findings with links into the
// repository. All scanner-derived text is escaped.
func FindingsSummary(repo model.Repository, findings []model.Finding) string {
	var b strings.Builder

	b.WriteString("## 🛑 Secrets detected 🛑\n\n")
	b.WriteString("<table>\n<tr>\n")
	for _, th := range []string{"Rule ID", "Commit", "Secret URL", "Start Line", "Author", "Date", "Email", "File"} {
		fmt.Fprintf(&b, "  <th>%s</th>\n", th)
	}
	b.WriteString("</tr>\n")

	for _, f := range findings {
		b.WriteString("<tr>\n")
		fmt.Fprintf(&b, "  <td>%s</td>\n", escapeHTML(f.RuleID))
		fmt.Fprintf(&b, "  <td><a href=%q>%s</a></td>\n", f.CommitURL(repo.HTMLURL), f.ShortSHA())
		fmt.Fprintf(&b, "  <td><a href=%q>View Secret</a></td>\n", f.SecretURL(repo.HTMLURL))
		fmt.Fprintf(&b, "  <td>%d</td>\n", f.StartLine)
		fmt.Fprintf(&b, "  <td>%s</td>\n", escapeHTML(f.Author))
		fmt.Fprintf(&b, "  <td>%s</td>\n", escapeHTML(f.CommitDate))
		fmt.Fprintf(&b, "  <td>%s</td>\n", escapeHTML(f.Email))
		fmt.Fprintf(&b, "  <td><a href=%q>%s</a></td>\n", f.FileURL(repo.HTMLURL), escapeHTML(f.FilePath))
		b.WriteString("</tr>\n")
	}

	b.WriteString("</table>\n")
	return b.String()
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// Package output implements the three reporting channels (review comments,
// job summary, artifact staging) and the dispatcher that fans findings out
// to them.
package output

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/leaksentry/leaksentry/internal/domain/model"
	"github.com/leaksentry/leaksentry/internal/domain/port/driven"
)

// BuildCommentBody renders the review-comment text for one finding. The
// fingerprint is embedded verbatim so reviewers can copy it straight into
// the ignore-list file.
func BuildCommentBody(f model.Finding, notifyUsers []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🛑 **Secret detected**\n\n")
	fmt.Fprintf(&b, "**Rule:** `%s`\n", f.RuleID)
	fmt.Fprintf(&b, "**Commit:** `%s`\n", f.CommitSHA)
	fmt.Fprintf(&b, "**Fingerprint:** `%s`\n\n", f.Fingerprint())
	b.WriteString("If this is a true positive, rotate the secret immediately. ")
	b.WriteString("If it is a false positive, add the fingerprint above to `.gitleaksignore`.\n")

	if len(notifyUsers) > 0 {
		fmt.Fprintf(&b, "\n**CC:** %s\n", strings.Join(notifyUsers, " "))
	}

	return b.String()
}

// BuildCandidates renders a candidate comment for every finding. Bodies
// are built unconditionally, regardless of trigger or enablement; PlanComments
// decides what is actually submitted.
func BuildCandidates(findings []model.Finding, notifyUsers []string) []model.CandidateComment {
	candidates := make([]model.CandidateComment, 0, len(findings))
	for _, f := range findings {
		candidates = append(candidates, model.CandidateComment{
			Path:     f.FilePath,
			Line:     f.StartLine,
			CommitID: f.CommitSHA,
			Body:     BuildCommentBody(f, notifyUsers),
		})
	}
	return candidates
}

// PlanComments filters candidates down to the ones worth submitting.
// Non-pull-request triggers and disabled comments plan nothing. Existing
// comments are fetched once, then matched through a key lookup so each
// candidate costs O(1) instead of a pairwise scan.
//
// A failed existing-comment fetch downgrades to planning without
// deduplication: posting a duplicate beats dropping a real finding.
func PlanComments(ctx context.Context, ev model.TriggerEvent, candidates []model.CandidateComment, enabled bool, reviews driven.ReviewService) []model.CandidateComment {
	if ev.Kind != model.TriggerPullRequest || !enabled {
		return nil
	}

	existing, err := reviews.ListReviewComments(ctx, ev.Repository, ev.PullRequest.Number)
	if err != nil {
		slog.Warn("fetching existing comments failed, planning without deduplication", "error", err)
		existing = nil
	}

	seen := make(map[model.CommentKey]struct{}, len(existing))
	for _, c := range existing {
		seen[c.Key()] = struct{}{}
	}

	var planned []model.CandidateComment
	for _, c := range candidates {
		if _, dup := seen[c.Key()]; dup {
			slog.Debug("skipping duplicate comment", "path", c.Path, "line", c.Line)
			continue
		}
		planned = append(planned, c)
	}
	return planned
}

// PostComments submits planned comments one by one. A single failed post
// (for example, a line outside the pull request diff) is logged and
// skipped; the remaining candidates are still attempted. Returns how many
// were posted and how many failed.
func PostComments(ctx context.Context, ev model.TriggerEvent, planned []model.CandidateComment, reviews driven.ReviewService) (posted, failed int) {
	for _, c := range planned {
		if err := reviews.CreateReviewComment(ctx, ev.Repository, ev.PullRequest.Number, c); err != nil {
			slog.Warn("posting comment failed", "path", c.Path, "line", c.Line, "error", err)
			failed++
			continue
		}
		slog.Debug("posted comment", "path", c.Path, "line", c.Line)
		posted++
	}
	slog.Info("comment submission finished", "posted", posted, "failed", failed)
	return posted, failed
}

package driven

import (
	"context"

	"github.com/leaksentry/leaksentry/internal/domain/model"
)

// ReviewService defines the driven port for the review-comment capability
// of the code-hosting API. The pipeline consumes it for pull_request
// triggers only: once to resolve the PR's commit list, once to fetch
// existing comments for deduplication, and once per planned comment.
type ReviewService interface {
	// ListPullRequestCommits returns the SHAs of the pull request's
	// commits in order, oldest first.
	ListPullRequestCommits(ctx context.Context, repo model.Repository, prNumber int) ([]string, error)

	// ListReviewComments returns every inline review comment on the pull
	// request, projected down to the fields deduplication needs.
	ListReviewComments(ctx context.Context, repo model.Repository, prNumber int) ([]model.ExistingComment, error)

	// CreateReviewComment posts one inline review comment. A failure for
	// one comment (for example, a line outside the diff) must not prevent
	// the caller from attempting the next.
	CreateReviewComment(ctx context.Context, repo model.Repository, prNumber int, comment model.CandidateComment) error
}

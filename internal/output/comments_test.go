package output

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leaksentry/leaksentry/internal/domain/model"
)

// fakeReviews stubs the ReviewService port and records posted comments.
type fakeReviews struct {
	commits  []string
	existing []model.ExistingComment
	listErr  error

	posted    []model.CandidateComment
	createErr map[string]error // keyed by path, lets single posts fail
}

func (f *fakeReviews) ListPullRequestCommits(ctx context.Context, repo model.Repository, prNumber int) ([]string, error) {
	return f.commits, nil
}

func (f *fakeReviews) ListReviewComments(ctx context.Context, repo model.Repository, prNumber int) ([]model.ExistingComment, error) {
	return f.existing, f.listErr
}

func (f *fakeReviews) CreateReviewComment(ctx context.Context, repo model.Repository, prNumber int, comment model.CandidateComment) error {
	if err, ok := f.createErr[comment.Path]; ok {
		return err
	}
	f.posted = append(f.posted, comment)
	return nil
}

var testFinding = model.Finding{
	RuleID:    "aws-access-token",
	FilePath:  "src/main.go",
	StartLine: 42,
	CommitSHA: "abc123",
}

func prEvent() model.TriggerEvent {
	return model.TriggerEvent{
		Kind:        model.TriggerPullRequest,
		Repository:  model.Repository{Owner: "owner", Name: "repo", FullName: "owner/repo"},
		PullRequest: &model.PullRequestRef{Number: 5},
	}
}

func TestBuildCommentBody(t *testing.T) {
	body := BuildCommentBody(testFinding, nil)

	assert.Contains(t, body, "aws-access-token")
	assert.Contains(t, body, "abc123")
	assert.Contains(t, body, "abc123:src/main.go:aws-access-token:42")
	assert.Contains(t, body, ".gitleaksignore")
	assert.NotContains(t, body, "CC:")
}

func TestBuildCommentBody_NotifyList(t *testing.T) {
	body := BuildCommentBody(testFinding, []string{"@alice", "@bob"})

	assert.Contains(t, body, "**CC:** @alice @bob")
}

func TestBuildCandidates_AlwaysBuilt(t *testing.T) {
	// Bodies are rendered regardless of trigger or enablement.
	candidates := BuildCandidates([]model.Finding{testFinding}, nil)

	require.Len(t, candidates, 1)
	assert.Equal(t, "src/main.go", candidates[0].Path)
	assert.Equal(t, 42, candidates[0].Line)
	assert.Equal(t, "abc123", candidates[0].CommitID)
	assert.NotEmpty(t, candidates[0].Body)
}

func TestPlanComments_NotPullRequest(t *testing.T) {
	ev := model.TriggerEvent{Kind: model.TriggerPush}
	candidates := BuildCandidates([]model.Finding{testFinding}, nil)

	planned := PlanComments(context.Background(), ev, candidates, true, &fakeReviews{})

	assert.Empty(t, planned)
}

func TestPlanComments_Disabled(t *testing.T) {
	candidates := BuildCandidates([]model.Finding{testFinding}, nil)

	planned := PlanComments(context.Background(), prEvent(), candidates, false, &fakeReviews{})

	assert.Empty(t, planned)
}

func TestPlanComments_DeduplicatesExactKey(t *testing.T) {
	candidates := BuildCandidates([]model.Finding{testFinding}, nil)
	svc := &fakeReviews{existing: []model.ExistingComment{{
		Path: candidates[0].Path,
		Line: candidates[0].Line,
		Body: candidates[0].Body,
	}}}

	planned := PlanComments(context.Background(), prEvent(), candidates, true, svc)

	assert.Empty(t, planned)
}

func TestPlanComments_AnyFieldDifferingIncludes(t *testing.T) {
	candidates := BuildCandidates([]model.Finding{testFinding}, nil)
	c := candidates[0]

	tests := []struct {
		name     string
		existing model.ExistingComment
	}{
		{name: "different path", existing: model.ExistingComment{Path: "other.go", Line: c.Line, Body: c.Body}},
		{name: "different line", existing: model.ExistingComment{Path: c.Path, Line: c.Line + 1, Body: c.Body}},
		{name: "different body", existing: model.ExistingComment{Path: c.Path, Line: c.Line, Body: "something else"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeReviews{existing: []model.ExistingComment{tt.existing}}
			planned := PlanComments(context.Background(), prEvent(), candidates, true, svc)
			assert.Len(t, planned, 1)
		})
	}
}

func TestPlanComments_FetchFailurePlansWithoutDedup(t *testing.T) {
	candidates := BuildCandidates([]model.Finding{testFinding}, nil)
	svc := &fakeReviews{listErr: errors.New("api down")}

	planned := PlanComments(context.Background(), prEvent(), candidates, true, svc)

	assert.Len(t, planned, 1)
}

func TestPostComments_SingleFailureDoesNotStopOthers(t *testing.T) {
	findings := []model.Finding{
		{RuleID: "r1", FilePath: "a.go", StartLine: 1, CommitSHA: "s1"},
		{RuleID: "r2", FilePath: "b.go", StartLine: 2, CommitSHA: "s2"},
		{RuleID: "r3", FilePath: "c.go", StartLine: 3, CommitSHA: "s3"},
	}
	planned := BuildCandidates(findings, nil)
	svc := &fakeReviews{createErr: map[string]error{"b.go": errors.New("line outside diff")}}

	posted, failed := PostComments(context.Background(), prEvent(), planned, svc)

	assert.Equal(t, 2, posted)
	assert.Equal(t, 1, failed)
	require.Len(t, svc.posted, 2)
	assert.Equal(t, "a.go", svc.posted[0].Path)
	assert.Equal(t, "c.go", svc.posted[1].Path)
}

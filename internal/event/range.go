package event

import (
	"context"
	"fmt"

	"github.com/leaksentry/leaksentry/internal/domain/model"
	"github.com/leaksentry/leaksentry/internal/domain/port/driven"
)

// ResolveRange derives the commit range for a classified trigger. A nil
// range means full-history scan. overrideBase, when non-empty, replaces
// the derived base for push and pull_request triggers.
//
// Pull request ranges come from the PR's ordered commit list, fetched once
// through the review service; pushes use the payload commit list.
func ResolveRange(ctx context.Context, ev model.TriggerEvent, overrideBase string, reviews driven.ReviewService) (*model.CommitRange, error) {
	switch ev.Kind {
	case model.TriggerPush:
		if len(ev.Commits) == 0 {
			return nil, fmt.Errorf("push event has no commits")
		}
		return rangeFromCommits(ev.Commits, overrideBase, true), nil

	case model.TriggerPullRequest:
		shas, err := reviews.ListPullRequestCommits(ctx, ev.Repository, ev.PullRequest.Number)
		if err != nil {
			return nil, fmt.Errorf("fetching commits for PR #%d: %w", ev.PullRequest.Number, err)
		}
		if len(shas) == 0 {
			return nil, fmt.Errorf("pull request #%d has no commits", ev.PullRequest.Number)
		}
		return rangeFromCommits(shas, overrideBase, false), nil

	case model.TriggerManualDispatch, model.TriggerScheduled:
		return nil, nil

	default:
		return nil, fmt.Errorf("%w: %q", model.ErrUnsupportedEvent, ev.Kind)
	}
}

// rangeFromCommits builds a range from an ordered commit list (oldest
// first). Only pushes may collapse to the single-commit fast path: a pull
// request with one commit still scans as a base^..head range.
func rangeFromCommits(shas []string, overrideBase string, allowSingle bool) *model.CommitRange {
	base := shas[0]
	head := shas[len(shas)-1]
	if overrideBase != "" {
		base = overrideBase
	}
	return &model.CommitRange{
		Base:         base,
		Head:         head,
		SingleCommit: allowSingle && base == head,
	}
}

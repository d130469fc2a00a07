// Package github implements the ReviewService port using the go-github
// library.
package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"
	gh "github.com/google/go-github/v82/github"
	"github.com/gregjones/httpcache"

	"github.com/leaksentry/leaksentry/internal/domain/model"
	"github.com/leaksentry/leaksentry/internal/domain/port/driven"
)

// Compile-time port satisfaction check.
var _ driven.ReviewService = (*Client)(nil)

// Client implements the driven.ReviewService port using the go-github
// library.
type Client struct {
	gh *gh.Client
}

// NewClient creates a review-service client with the following transport
// stack:
//  1. httpcache (ETag-based conditional request caching)
//  2. go-github-ratelimit (secondary rate limit middleware, sleeps on 429)
//  3. go-github (GitHub REST API client with PAT auth)
func NewClient(token string) *Client {
	cacheTransport := httpcache.NewMemoryCacheTransport()
	rateLimitClient := github_ratelimit.NewClient(cacheTransport)
	client := gh.NewClient(rateLimitClient).WithAuthToken(token)

	return &Client{gh: client}
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and
// base URL. This constructor is intended for testing, allowing injection
// of an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string) (*Client, error) {
	client := gh.NewClient(httpClient)

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	client.BaseURL = u

	return &Client{gh: client}, nil
}

// ListPullRequestCommits returns the SHAs of the pull request's commits in
// order, oldest first. It handles pagination automatically.
func (c *Client) ListPullRequestCommits(ctx context.Context, repo model.Repository, prNumber int) ([]string, error) {
	opts := &gh.ListOptions{PerPage: 100}
	var shas []string

	for {
		commits, resp, err := c.gh.PullRequests.ListCommits(ctx, repo.Owner, repo.Name, prNumber, opts)
		if err != nil {
			return nil, fmt.Errorf("listing commits for %s#%d (page %d): %w", repo.FullName, prNumber, opts.Page, err)
		}

		for _, commit := range commits {
			shas = append(shas, commit.GetSHA())
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return shas, nil
}

// ListReviewComments returns every inline review comment on the pull
// request, projected down to the fields deduplication needs. It handles
// pagination automatically.
func (c *Client) ListReviewComments(ctx context.Context, repo model.Repository, prNumber int) ([]model.ExistingComment, error) {
	opts := &gh.PullRequestListCommentsOptions{
		ListOptions: gh.ListOptions{PerPage: 100},
	}
	var all []model.ExistingComment

	for {
		comments, resp, err := c.gh.PullRequests.ListComments(ctx, repo.Owner, repo.Name, prNumber, opts)
		if err != nil {
			return nil, fmt.Errorf("listing review comments for %s#%d (page %d): %w", repo.FullName, prNumber, opts.Page, err)
		}

		for _, comment := range comments {
			all = append(all, model.ExistingComment{
				Path: comment.GetPath(),
				Line: comment.GetLine(),
				Body: comment.GetBody(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return all, nil
}

// CreateReviewComment posts one inline review comment on the side of the
// new content.
func (c *Client) CreateReviewComment(ctx context.Context, repo model.Repository, prNumber int, comment model.CandidateComment) error {
	req := &gh.PullRequestComment{
		Body:     gh.Ptr(comment.Body),
		CommitID: gh.Ptr(comment.CommitID),
		Path:     gh.Ptr(comment.Path),
		Line:     gh.Ptr(comment.Line),
		Side:     gh.Ptr("RIGHT"),
	}

	_, _, err := c.gh.PullRequests.CreateComment(ctx, repo.Owner, repo.Name, prNumber, req)
	if err != nil {
		return fmt.Errorf("creating review comment on %s#%d %s:%d: %w", repo.FullName, prNumber, comment.Path, comment.Line, err)
	}
	return nil
}

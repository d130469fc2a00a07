package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leaksentry/leaksentry/internal/domain/model"
)

var fallbackRepo = model.Repository{
	Owner:    "owner",
	Name:     "repo",
	FullName: "owner/repo",
	HTMLURL:  "https://github.com/owner/repo",
}

const pushPayload = `{
	"repository": {
		"name": "repo",
		"full_name": "owner/repo",
		"html_url": "https://github.com/owner/repo",
		"owner": {"login": "owner"}
	},
	"commits": [
		{"id": "a1"},
		{"id": "a2"},
		{"id": "a3"}
	]
}`

const prPayload = `{
	"repository": {
		"name": "repo",
		"full_name": "owner/repo",
		"html_url": "https://github.com/owner/repo",
		"owner": {"login": "owner"}
	},
	"pull_request": {
		"number": 5,
		"base": {"sha": "b1"},
		"head": {"sha": "h1"}
	}
}`

func TestClassify_Push(t *testing.T) {
	ev, err := Classify("push", []byte(pushPayload), fallbackRepo)

	require.NoError(t, err)
	assert.Equal(t, model.TriggerPush, ev.Kind)
	assert.Equal(t, []string{"a1", "a2", "a3"}, ev.Commits)
	assert.Equal(t, "owner/repo", ev.Repository.FullName)
	assert.Nil(t, ev.PullRequest)
}

func TestClassify_PushWithoutCommits(t *testing.T) {
	// An empty push is valid; the pipeline short-circuits to a clean run
	// instead of invoking the scanner.
	ev, err := Classify("push", []byte(`{"commits": []}`), fallbackRepo)

	require.NoError(t, err)
	assert.Equal(t, model.TriggerPush, ev.Kind)
	assert.Empty(t, ev.Commits)
}

func TestClassify_PullRequest(t *testing.T) {
	ev, err := Classify("pull_request", []byte(prPayload), fallbackRepo)

	require.NoError(t, err)
	assert.Equal(t, model.TriggerPullRequest, ev.Kind)
	require.NotNil(t, ev.PullRequest)
	assert.Equal(t, 5, ev.PullRequest.Number)
	assert.Equal(t, "b1", ev.PullRequest.BaseSHA)
	assert.Equal(t, "h1", ev.PullRequest.HeadSHA)
}

func TestClassify_PullRequestMissingObject(t *testing.T) {
	_, err := Classify("pull_request", []byte(`{}`), fallbackRepo)
	assert.Error(t, err)
}

func TestClassify_ScheduleUsesFallbackRepo(t *testing.T) {
	// Scheduled payloads may omit the repository object entirely.
	ev, err := Classify("schedule", []byte(`{}`), fallbackRepo)

	require.NoError(t, err)
	assert.Equal(t, model.TriggerScheduled, ev.Kind)
	assert.Equal(t, fallbackRepo, ev.Repository)
	assert.Empty(t, ev.Commits)
}

func TestClassify_ManualDispatch(t *testing.T) {
	ev, err := Classify("workflow_dispatch", []byte(`{}`), fallbackRepo)

	require.NoError(t, err)
	assert.Equal(t, model.TriggerManualDispatch, ev.Kind)
}

func TestClassify_UnsupportedEvent(t *testing.T) {
	_, err := Classify("deployment_status", []byte(`{}`), fallbackRepo)

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrUnsupportedEvent)
	assert.Contains(t, err.Error(), "deployment_status")
}

func TestClassify_MalformedPayload(t *testing.T) {
	_, err := Classify("push", []byte(`{not json`), fallbackRepo)
	assert.Error(t, err)
}

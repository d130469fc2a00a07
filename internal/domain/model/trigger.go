package model

import "fmt"

// TriggerKind identifies which CI event started a scan. The set is closed:
// classification validates the raw event name once at the boundary and the
// rest of the pipeline branches on this value only.
type TriggerKind string

const (
	TriggerPush           TriggerKind = "push"
	TriggerPullRequest    TriggerKind = "pull_request"
	TriggerManualDispatch TriggerKind = "workflow_dispatch"
	TriggerScheduled      TriggerKind = "schedule"
)

// ParseTriggerKind maps a raw event name to a TriggerKind.
// Unknown names return ErrUnsupportedEvent wrapped with the offending name.
func ParseTriggerKind(name string) (TriggerKind, error) {
	switch name {
	case "push":
		return TriggerPush, nil
	case "pull_request":
		return TriggerPullRequest, nil
	case "workflow_dispatch":
		return TriggerManualDispatch, nil
	case "schedule":
		return TriggerScheduled, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedEvent, name)
	}
}

// Repository identifies the repository a trigger fired on.
type Repository struct {
	Owner    string
	Name     string
	FullName string
	HTMLURL  string
}

// PullRequestRef carries the pull request identity and its base/head SHAs
// as reported by the event payload.
type PullRequestRef struct {
	Number  int
	BaseSHA string
	HeadSHA string
}

// TriggerEvent is the classified form of an external CI trigger. It is
// constructed once by the event classifier and immutable afterwards.
//
// Commits is populated for Push (payload commit list, in order) and
// PullRequest (fetched PR commit list, in order); it is empty for
// ManualDispatch and Scheduled triggers. PullRequest is non-nil only when
// Kind is TriggerPullRequest.
type TriggerEvent struct {
	Kind        TriggerKind
	Repository  Repository
	Commits     []string
	PullRequest *PullRequestRef
}

// CommitRange is the span of history the scanner is restricted to.
// A nil *CommitRange means full-history scan.
type CommitRange struct {
	Base string
	Head string
	// SingleCommit is true only for a push where base equals head; the
	// scanner is then asked for the most recent commit instead of an
	// empty base^..head range.
	SingleCommit bool
}

package model

// CandidateComment is a rendered review comment ready for submission.
// Candidates are built 1:1 from findings, and only ever submitted for
// pull_request triggers.
type CandidateComment struct {
	Path     string
	Line     int
	CommitID string
	Body     string
}

// ExistingComment is the minimal projection of a review comment already
// present on the pull request, used only for deduplication.
type ExistingComment struct {
	Path string
	Line int
	Body string
}

// CommentKey is the deduplication identity of a review comment. Two
// comments with equal keys are duplicates.
type CommentKey struct {
	Path string
	Line int
	Body string
}

// Key returns the deduplication key for a candidate.
func (c CandidateComment) Key() CommentKey {
	return CommentKey{Path: c.Path, Line: c.Line, Body: c.Body}
}

// Key returns the deduplication key for an existing comment.
func (c ExistingComment) Key() CommentKey {
	return CommentKey{Path: c.Path, Line: c.Line, Body: c.Body}
}

// Package domain defines the comment-source types and port for the watcher
package domain

import "context"

// Comment is one inbound comment as seen from the source surface
type Comment struct {
	ID           string // bare id, e.g. "abc123"
	Fullname     string // prefixed thing id, e.g. "t1_abc123"
	SubmissionID string // bare id of the submission the comment lives under
	Author       string
	Body         string
}

// SourcePort yields the newest comments from the watched surface. Order and
// overlap between calls are the source's business; the admission filter
// dedupes via the decision ledger, not via the source
type SourcePort interface {
	Latest(ctx context.Context) ([]Comment, error)
}

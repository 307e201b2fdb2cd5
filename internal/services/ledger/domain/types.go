// Package domain defines the decision-ledger types and ports
package domain

// Reason explains why a candidate was rejected
type Reason string

const (
	// ReasonNone means the verdict was an accept
	ReasonNone Reason = ""

	// ReasonAlreadyHandled means the comment id already carries an idempotency marker
	ReasonAlreadyHandled Reason = "already_handled"

	// ReasonThreadSaturated means the submission reached its accepted-reply cap
	ReasonThreadSaturated Reason = "thread_saturated"

	// ReasonAuthorSaturated means the author reached their per-thread cap
	ReasonAuthorSaturated Reason = "author_saturated"
)

// Verdict is the outcome of an admission or commit check
type Verdict struct {
	Allowed bool
	Reason  Reason
}

// Accept returns an allowing verdict
func Accept() Verdict { return Verdict{Allowed: true} }

// Reject returns a refusing verdict with the given reason
func Reject(r Reason) Verdict { return Verdict{Reason: r} }

// Counts is the submission-level tally snapshot used by the non-mutating check
type Counts struct {
	Total  int64
	Author int64
	Exists bool // whether a decision record exists for the submission at all
}

// CommitInput carries everything the atomic commit step needs in one shot
type CommitInput struct {
	SubmissionID string
	AuthorID     string
	CommentID    string
	ThreadCap    int
	AuthorCap    int
	Allowlisted  bool
}

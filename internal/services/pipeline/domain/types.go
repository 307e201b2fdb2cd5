// Package domain defines the candidate-processing types and ports
package domain

import "context"

// Candidate is one admitted mention queued for processing. FirstName and
// LastName are filled by the parse stage; everything else comes from the
// comment it was lifted from
type Candidate struct {
	CommentID       string // bare comment id, e.g. "t1_abc" without the prefix
	CommentFullname string // prefixed thing id the reply is addressed to
	SubmissionID    string
	AuthorID        string
	Body            string
	FirstName       string
	LastName        string
	RunID           string
}

// Outcome is the terminal state of one candidate run
type Outcome string

const (
	// OutcomeDelivered means the reply was committed and posted
	OutcomeDelivered Outcome = "delivered"

	// OutcomeSuppressed means the commit re-check refused the candidate
	OutcomeSuppressed Outcome = "suppressed"

	// OutcomeUnresolved means no identity suggestion matched the parsed name
	OutcomeUnresolved Outcome = "unresolved"

	// OutcomeMalformed means a provider payload could not be decoded
	OutcomeMalformed Outcome = "malformed"

	// OutcomeFetchFailed means a provider was unreachable or refused the call
	OutcomeFetchFailed Outcome = "fetch_failed"

	// OutcomeInvalid means the body carried no parseable mention
	OutcomeInvalid Outcome = "invalid"

	// OutcomeFailed means the ledger or the delivery surface errored
	OutcomeFailed Outcome = "failed"
)

// RunnerPort processes one candidate to a terminal state. Run never panics
// outward and never returns an error: every failure is a terminal outcome
type RunnerPort interface {
	Run(ctx context.Context, c Candidate) Outcome
}

// DeliveryPort posts a rendered reply under the given parent fullname
type DeliveryPort interface {
	Reply(ctx context.Context, parentFullname, body string) error
}

// Package domain defines the provider-facing ports the pipeline consumes
package domain

import (
	"context"

	"rinkbot/internal/core/nhl"
)

// IdentityPort resolves a parsed name to an external subject id.
// An Unresolved error means no suggestion matched; it is an expected
// terminal state, not a failure
type IdentityPort interface {
	Resolve(ctx context.Context, first, last string) (subjectID string, err error)
}

// RecordPort fetches the full season/career record for a subject id
type RecordPort interface {
	Fetch(ctx context.Context, subjectID string) (*nhl.Player, error)
}

package domain

import "context"

// RecorderPort is the two-phase duplicate/rate-limit surface the rest of the
// bot sees. Admit is the cheap non-mutating gate run before expensive lookups;
// Commit re-runs the same checks atomically and records the acceptance, so
// exactly one caller wins per comment id no matter how many duplicate
// candidates were admitted
type RecorderPort interface {
	Admit(ctx context.Context, submissionID, authorID, commentID string) (Verdict, error)
	Commit(ctx context.Context, submissionID, authorID, commentID string) (Verdict, error)
}

// StorePort is the backing-store seam the ledger service drives.
// CommitAtomic must perform its checks and writes as one indivisible step
type StorePort interface {
	// SeenComment reports whether the idempotency marker exists for commentID
	SeenComment(ctx context.Context, commentID string) (bool, error)

	// Counts returns the submission tally snapshot for the admission check
	Counts(ctx context.Context, submissionID, authorID string) (Counts, error)

	// CommitAtomic re-checks and, on acceptance, sets the marker and
	// increments the counters, all as a single uninterrupted step
	CommitAtomic(ctx context.Context, in CommitInput) (Verdict, error)
}

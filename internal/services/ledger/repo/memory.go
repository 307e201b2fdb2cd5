// Package repo provides decision-ledger backing stores: a redis-backed one
// for production and an in-process one for tests and redis-less development
package repo

import (
	"context"
	"sync"

	"rinkbot/internal/services/ledger/domain"
)

// Memory is a mutex-guarded in-process ledger store.
// The mutex makes CommitAtomic a true critical section, mirroring what the
// redis store gets from running its script server-side
type Memory struct {
	mu      sync.Mutex
	markers map[string]struct{}
	tallies map[string]map[string]int64 // submission -> field -> count ("total" + author ids)
}

// NewMemory constructs an empty in-process store
func NewMemory() *Memory {
	return &Memory{
		markers: make(map[string]struct{}),
		tallies: make(map[string]map[string]int64),
	}
}

// SeenComment reports whether the idempotency marker exists
func (m *Memory) SeenComment(_ context.Context, commentID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.markers[commentID]
	return ok, nil
}

// Counts returns the tally snapshot for the non-mutating admission check
func (m *Memory) Counts(_ context.Context, submissionID, authorID string) (domain.Counts, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tallies[submissionID]
	if !ok {
		return domain.Counts{}, nil
	}
	return domain.Counts{Total: t[totalField], Author: t[authorID], Exists: true}, nil
}

// CommitAtomic re-checks and records the acceptance under one lock hold
func (m *Memory) CommitAtomic(_ context.Context, in domain.CommitInput) (domain.Verdict, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, seen := m.markers[in.CommentID]; seen {
		return domain.Reject(domain.ReasonAlreadyHandled), nil
	}

	t := m.tallies[in.SubmissionID]
	if !in.Allowlisted && t != nil {
		if t[totalField] >= int64(in.ThreadCap) {
			return domain.Reject(domain.ReasonThreadSaturated), nil
		}
		if t[in.AuthorID] >= int64(in.AuthorCap) {
			return domain.Reject(domain.ReasonAuthorSaturated), nil
		}
	}

	if t == nil {
		t = make(map[string]int64)
		m.tallies[in.SubmissionID] = t
	}
	m.markers[in.CommentID] = struct{}{}
	t[totalField]++
	t[in.AuthorID]++
	return domain.Accept(), nil
}

// Package service implements the decision-ledger checks over a backing store
package service

import (
	"context"

	"rinkbot/internal/platform/logger"
	"rinkbot/internal/services/ledger/domain"
)

// Config carries the volume caps and the rate-limit-exempt authors
type Config struct {
	ThreadCap    int
	AuthorCap    int
	AllowAuthors []string
}

// Service implements domain.RecorderPort
type Service struct {
	store domain.StorePort
	cfg   Config
	allow map[string]struct{}
	log   *logger.Logger
}

// New constructs a ledger service with defaulted caps
func New(store domain.StorePort, cfg Config) *Service {
	if cfg.ThreadCap <= 0 {
		cfg.ThreadCap = 25
	}
	if cfg.AuthorCap <= 0 {
		cfg.AuthorCap = 5
	}
	allow := make(map[string]struct{}, len(cfg.AllowAuthors))
	for _, a := range cfg.AllowAuthors {
		allow[a] = struct{}{}
	}
	return &Service{
		store: store,
		cfg:   cfg,
		allow: allow,
		log:   logger.Named("ledger"),
	}
}

func (s *Service) allowlisted(authorID string) bool {
	_, ok := s.allow[authorID]
	return ok
}

// Admit runs the non-mutating admission check, in order: idempotency marker,
// allow-list, record existence, thread cap, author cap
func (s *Service) Admit(ctx context.Context, submissionID, authorID, commentID string) (domain.Verdict, error) {
	seen, err := s.store.SeenComment(ctx, commentID)
	if err != nil {
		return domain.Verdict{}, err
	}
	if seen {
		s.log.Debug().Str("comment", commentID).Msg("already responded")
		return domain.Reject(domain.ReasonAlreadyHandled), nil
	}

	if s.allowlisted(authorID) {
		return domain.Accept(), nil
	}

	counts, err := s.store.Counts(ctx, submissionID, authorID)
	if err != nil {
		return domain.Verdict{}, err
	}
	if !counts.Exists {
		// record is created at commit, not here
		return domain.Accept(), nil
	}
	if counts.Total >= int64(s.cfg.ThreadCap) {
		s.log.Debug().Str("submission", submissionID).Int64("total", counts.Total).Msg("thread saturated")
		return domain.Reject(domain.ReasonThreadSaturated), nil
	}
	if counts.Author >= int64(s.cfg.AuthorCap) {
		s.log.Debug().Str("author", authorID).Int64("count", counts.Author).Msg("author saturated")
		return domain.Reject(domain.ReasonAuthorSaturated), nil
	}
	return domain.Accept(), nil
}

// Commit re-runs the admission checks atomically and, on acceptance, sets the
// idempotency marker and increments the submission and author tallies as one
// indivisible update
func (s *Service) Commit(ctx context.Context, submissionID, authorID, commentID string) (domain.Verdict, error) {
	v, err := s.store.CommitAtomic(ctx, domain.CommitInput{
		SubmissionID: submissionID,
		AuthorID:     authorID,
		CommentID:    commentID,
		ThreadCap:    s.cfg.ThreadCap,
		AuthorCap:    s.cfg.AuthorCap,
		Allowlisted:  s.allowlisted(authorID),
	})
	if err != nil {
		return domain.Verdict{}, err
	}
	if !v.Allowed {
		s.log.Debug().
			Str("comment", commentID).
			Str("submission", submissionID).
			Str("reason", string(v.Reason)).
			Msg("commit rejected")
	}
	return v, nil
}

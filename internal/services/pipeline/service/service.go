// Package service runs admitted candidates through the reply pipeline.
//
// Each candidate moves through five stages: parse the mention out of the
// body, resolve the name to a subject id, fetch the record, render the
// reply, then commit-and-deliver. The commit happens before the post so a
// delivery failure can never cause a duplicate reply; the marker burns the
// comment id either way
package service

import (
	"context"

	"github.com/google/uuid"

	"rinkbot/internal/core/render"
	"rinkbot/internal/core/summon"
	perr "rinkbot/internal/platform/errors"
	"rinkbot/internal/platform/logger"
	ledgerdom "rinkbot/internal/services/ledger/domain"
	"rinkbot/internal/services/pipeline/domain"
	resolvedom "rinkbot/internal/services/resolve/domain"
)

// Config carries the reply rendering options
type Config struct {
	FooterContact string
}

// Service implements domain.RunnerPort
type Service struct {
	recorder ledgerdom.RecorderPort
	identity resolvedom.IdentityPort
	record   resolvedom.RecordPort
	delivery domain.DeliveryPort
	cfg      Config
	log      *logger.Logger
}

// New wires the pipeline over its four ports
func New(
	recorder ledgerdom.RecorderPort,
	identity resolvedom.IdentityPort,
	record resolvedom.RecordPort,
	delivery domain.DeliveryPort,
	cfg Config,
) *Service {
	return &Service{
		recorder: recorder,
		identity: identity,
		record:   record,
		delivery: delivery,
		cfg:      cfg,
		log:      logger.Named("pipeline"),
	}
}

// Run drives one candidate to a terminal outcome. A panic anywhere in the
// stages is caught here and becomes OutcomeFailed; nothing escapes to the
// worker that spawned the run
func (s *Service) Run(ctx context.Context, c domain.Candidate) (out domain.Outcome) {
	if c.RunID == "" {
		c.RunID = uuid.NewString()
	}
	ctx = logger.WithCandidate(ctx, c.CommentID, c.RunID)

	defer func() {
		if r := recover(); r != nil {
			logger.C(ctx).Error().Interface("panic", r).Msg("candidate run panicked")
			out = domain.OutcomeFailed
		}
	}()

	first, last, ok := s.parse(&c)
	if !ok {
		logger.C(ctx).Debug().Msg("no parseable mention")
		return domain.OutcomeInvalid
	}

	subjectID, err := s.identity.Resolve(ctx, first, last)
	if err != nil {
		return s.classify(ctx, "resolve", err)
	}

	player, err := s.record.Fetch(ctx, subjectID)
	if err != nil {
		return s.classify(ctx, "fetch", err)
	}

	body := render.Render(player, render.Options{FooterContact: s.cfg.FooterContact})

	verdict, err := s.recorder.Commit(ctx, c.SubmissionID, c.AuthorID, c.CommentID)
	if err != nil {
		logger.C(ctx).Error().Err(err).Msg("commit failed")
		return domain.OutcomeFailed
	}
	if !verdict.Allowed {
		logger.C(ctx).Debug().Str("reason", string(verdict.Reason)).Msg("commit refused")
		return domain.OutcomeSuppressed
	}

	// the commit already burned the marker; a failed post is logged and
	// dropped rather than retried
	if err := s.delivery.Reply(ctx, c.CommentFullname, body); err != nil {
		logger.C(ctx).Error().Err(err).Msg("reply delivery failed")
		return domain.OutcomeFailed
	}

	logger.C(ctx).Info().Str("player", player.FullName).Msg("reply delivered")
	return domain.OutcomeDelivered
}

// parse fills the candidate's name fields from its body when the admission
// filter did not already do so
func (s *Service) parse(c *domain.Candidate) (first, last string, ok bool) {
	if c.FirstName != "" && c.LastName != "" {
		return c.FirstName, c.LastName, true
	}
	req, ok := summon.Match(c.Body)
	if !ok {
		return "", "", false
	}
	first, last, ok = summon.ParseName(req)
	if !ok {
		return "", "", false
	}
	c.FirstName, c.LastName = first, last
	return first, last, true
}

func (s *Service) classify(ctx context.Context, stage string, err error) domain.Outcome {
	switch perr.CodeOf(err) {
	case perr.ErrorCodeUnresolved:
		logger.C(ctx).Debug().Str("stage", stage).Msg("no identity match")
		return domain.OutcomeUnresolved
	case perr.ErrorCodeMalformedPayload:
		logger.C(ctx).Warn().Err(err).Str("stage", stage).Msg("malformed provider payload")
		return domain.OutcomeMalformed
	default:
		logger.C(ctx).Warn().Err(err).Str("stage", stage).Msg("provider fetch failed")
		return domain.OutcomeFetchFailed
	}
}

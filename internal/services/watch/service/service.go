// Package service drives the watch loop: poll the comment source, admit
// mentions into a bounded queue, and hand admitted candidates to the
// pipeline without ever blocking the loop.
//
// The queue is the only coupling between scanning and processing. A full
// queue drops the candidate on the floor; the next scan of the same comment
// gets another chance as long as the ledger has not seen it yet
package service

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"rinkbot/internal/core/summon"
	"rinkbot/internal/platform/logger"
	ledgerdom "rinkbot/internal/services/ledger/domain"
	pipedom "rinkbot/internal/services/pipeline/domain"
	pipesvc "rinkbot/internal/services/pipeline/service"
	"rinkbot/internal/services/watch/domain"
)

// Config carries the loop cadence and queue sizing
type Config struct {
	QueueSize    int           // admitted-candidate buffer, default 1024
	PollInterval time.Duration // sleep between cycles, default 5s
	DrainTimeout time.Duration // shutdown grace for in-flight runs, default 30s
}

func (c *Config) defaults() {
	if c.QueueSize <= 0 {
		c.QueueSize = 1024
	}
	if c.PollInterval <= 0 {
		c.PollInterval = 5 * time.Second
	}
	if c.DrainTimeout <= 0 {
		c.DrainTimeout = 30 * time.Second
	}
}

// Stats are the watcher's monotonic counters, safe for concurrent reads
type Stats struct {
	Cycles    atomic.Int64
	Dropped   atomic.Int64
	Enqueued  atomic.Int64
	Delivered atomic.Int64
}

// Watcher owns the poll/admit/drain cycle
type Watcher struct {
	source   domain.SourcePort
	recorder ledgerdom.RecorderPort
	runner   pipedom.RunnerPort
	tracker  *pipesvc.Tracker
	cfg      Config
	queue    chan pipedom.Candidate
	stats    Stats
	log      *logger.Logger
}

// New builds a watcher with defaulted config
func New(
	source domain.SourcePort,
	recorder ledgerdom.RecorderPort,
	runner pipedom.RunnerPort,
	tracker *pipesvc.Tracker,
	cfg Config,
) *Watcher {
	cfg.defaults()
	return &Watcher{
		source:   source,
		recorder: recorder,
		runner:   runner,
		tracker:  tracker,
		cfg:      cfg,
		queue:    make(chan pipedom.Candidate, cfg.QueueSize),
		log:      logger.Named("watch"),
	}
}

// Stats exposes the counters for the ops surface
func (w *Watcher) Stats() *Stats { return &w.stats }

// QueueDepth reports how many admitted candidates are waiting
func (w *Watcher) QueueDepth() int { return len(w.queue) }

// InFlight reports how many candidate runs are currently executing
func (w *Watcher) InFlight() int64 { return w.tracker.InFlight() }

// Run loops until ctx is cancelled, then waits out in-flight runs up to the
// drain timeout. Each cycle is recover-guarded so a panicking source or a
// bad batch costs one cycle, not the process
func (w *Watcher) Run(ctx context.Context) error {
	for {
		w.cycle(ctx)

		select {
		case <-ctx.Done():
			return w.shutdown()
		case <-time.After(w.cfg.PollInterval):
		}
	}
}

// cycle performs one scan-then-drain pass
func (w *Watcher) cycle(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			w.log.Error().Interface("panic", r).Msg("watch cycle panicked")
		}
	}()

	w.scan(ctx)
	w.drain(ctx)
	w.stats.Cycles.Add(1)
}

// scan pulls the newest comments and pushes admissible mentions onto the
// queue. Enqueueing never blocks; overflow is dropped and counted
func (w *Watcher) scan(ctx context.Context) {
	comments, err := w.source.Latest(ctx)
	if err != nil {
		w.log.Warn().Err(err).Msg("source fetch failed")
		return
	}

	for _, c := range comments {
		req, ok := summon.Match(c.Body)
		if !ok {
			continue
		}
		first, last, ok := summon.ParseName(req)
		if !ok {
			continue
		}

		verdict, err := w.recorder.Admit(ctx, c.SubmissionID, c.Author, c.ID)
		if err != nil {
			w.log.Warn().Err(err).Str("comment", c.ID).Msg("admission check failed")
			continue
		}
		if !verdict.Allowed {
			continue
		}

		cand := pipedom.Candidate{
			CommentID:       c.ID,
			CommentFullname: c.Fullname,
			SubmissionID:    c.SubmissionID,
			AuthorID:        c.Author,
			Body:            c.Body,
			FirstName:       first,
			LastName:        last,
			RunID:           uuid.NewString(),
		}

		select {
		case w.queue <- cand:
			w.stats.Enqueued.Add(1)
		default:
			w.stats.Dropped.Add(1)
			w.log.Warn().Str("comment", c.ID).Msg("queue full, candidate dropped")
		}
	}
}

// drain spawns a run for everything currently queued and returns without
// waiting on any of them
func (w *Watcher) drain(ctx context.Context) {
	for {
		select {
		case cand := <-w.queue:
			w.tracker.Go(func() {
				if out := w.runner.Run(ctx, cand); out == pipedom.OutcomeDelivered {
					w.stats.Delivered.Add(1)
				}
			})
		default:
			return
		}
	}
}

// shutdown gives queued and in-flight work a bounded chance to finish.
// Runs get a fresh context: the loop's one is already cancelled
func (w *Watcher) shutdown() error {
	drainCtx, cancel := context.WithTimeout(context.Background(), w.cfg.DrainTimeout)
	defer cancel()

	w.drain(drainCtx)
	if err := w.tracker.Wait(drainCtx); err != nil {
		w.log.Warn().Int64("in_flight", w.tracker.InFlight()).Msg("drain timeout, abandoning runs")
		return err
	}
	w.log.Info().Msg("watcher drained")
	return nil
}

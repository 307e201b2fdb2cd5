// Package store provides a unified interface to optional storage backends
package store

import (
	"context"

	"rinkbot/internal/platform/logger"
)

// Store is the facade for optional backends
// zero value is safe but does nothing
type Store struct {
	// Log is the logger used by subclients
	// zero means a no op zerolog logger
	Log logger.Logger

	// KV is the redis seam, nil when disabled
	KV KV
}

// KV is the hash/counter surface the decision ledger needs.
// It deliberately mirrors the small slice of redis the bot uses:
// key existence, set-once markers, hash field reads and increments,
// and server-side scripts for indivisible check-and-set steps
type KV interface {
	Exists(ctx context.Context, key string) (bool, error)
	Set(ctx context.Context, key, value string) error
	HExists(ctx context.Context, key, field string) (bool, error)
	HGetInt(ctx context.Context, key, field string) (val int64, ok bool, err error)
	HSet(ctx context.Context, key string, fields map[string]any) error
	HIncrBy(ctx context.Context, key, field string, by int64) (int64, error)
	Eval(ctx context.Context, script string, keys []string, args ...any) (any, error)
	Ping(ctx context.Context) error
	Close() error
}

// Pinger is any seam that can report readiness
type Pinger interface{ Ping(context.Context) error }

// Open constructs a Store with the requested backends
// backends not enabled in cfg remain nil on the Store
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}

	// defaults for zero logger to avoid nil checks
	s.Log = s.Log.With().Logger()

	if cfg.RDS.Enabled {
		kv, err := openRedis(ctx, cfg, s)
		if err != nil {
			return nil, err
		}
		s.KV = kv
	}

	return s, nil
}

// Close releases every open backend
func (s *Store) Close(_ context.Context) error {
	if s == nil || s.KV == nil {
		return nil
	}
	return s.KV.Close()
}

// Ping verifies readiness of every enabled backend
func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.KV == nil {
		return nil
	}
	return s.KV.Ping(ctx)
}

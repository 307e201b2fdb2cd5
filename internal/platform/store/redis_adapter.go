package store

import (
	"context"
	"strconv"
	"time"

	perr "rinkbot/internal/platform/errors"

	"github.com/redis/go-redis/v9"
)

// rdsKV adapts *redis.Client to the KV seam
type rdsKV struct {
	c *redis.Client
}

// openRedis dials redis and verifies readiness with a bounded ping,
// retrying with exponential backoff like the other backend openers
func openRedis(ctx context.Context, cfg Config, s *Store) (KV, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RDS.Addr,
		DB:       cfg.RDS.DB,
		Password: cfg.RDS.Password,
	})

	backoff := 250 * time.Millisecond
	var lastErr error
	for attempt := 1; attempt <= cfg.RDS.retries(); attempt++ {
		pctx, cancel := context.WithTimeout(ctx, cfg.RDS.pingTimeout())
		lastErr = client.Ping(pctx).Err()
		cancel()
		if lastErr == nil {
			s.Log.Debug().Str("addr", cfg.RDS.Addr).Int("attempt", attempt).Msg("redis ready")
			return &rdsKV{c: client}, nil
		}
		s.Log.Warn().Err(lastErr).Str("addr", cfg.RDS.Addr).Int("attempt", attempt).Msg("redis ping failed")
		select {
		case <-ctx.Done():
			_ = client.Close()
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	_ = client.Close()
	return nil, perr.Wrapf(lastErr, perr.ErrorCodeUnavailable, "redis not reachable at %s", cfg.RDS.Addr)
}

func (r *rdsKV) Exists(ctx context.Context, key string) (bool, error) {
	n, err := r.c.Exists(ctx, key).Result()
	if err != nil {
		return false, perr.Wrap(err, perr.ErrorCodeStore, "exists")
	}
	return n > 0, nil
}

func (r *rdsKV) Set(ctx context.Context, key, value string) error {
	if err := r.c.Set(ctx, key, value, 0).Err(); err != nil {
		return perr.Wrap(err, perr.ErrorCodeStore, "set")
	}
	return nil
}

func (r *rdsKV) HExists(ctx context.Context, key, field string) (bool, error) {
	ok, err := r.c.HExists(ctx, key, field).Result()
	if err != nil {
		return false, perr.Wrap(err, perr.ErrorCodeStore, "hexists")
	}
	return ok, nil
}

func (r *rdsKV) HGetInt(ctx context.Context, key, field string) (int64, bool, error) {
	s, err := r.c.HGet(ctx, key, field).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, perr.Wrap(err, perr.ErrorCodeStore, "hget")
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false, perr.Wrapf(err, perr.ErrorCodeStore, "hget %s/%s is not an int", key, field)
	}
	return v, true, nil
}

func (r *rdsKV) HSet(ctx context.Context, key string, fields map[string]any) error {
	if err := r.c.HSet(ctx, key, fields).Err(); err != nil {
		return perr.Wrap(err, perr.ErrorCodeStore, "hset")
	}
	return nil
}

func (r *rdsKV) HIncrBy(ctx context.Context, key, field string, by int64) (int64, error) {
	n, err := r.c.HIncrBy(ctx, key, field, by).Result()
	if err != nil {
		return 0, perr.Wrap(err, perr.ErrorCodeStore, "hincrby")
	}
	return n, nil
}

func (r *rdsKV) Eval(ctx context.Context, script string, keys []string, args ...any) (any, error) {
	v, err := r.c.Eval(ctx, script, keys, args...).Result()
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeStore, "eval")
	}
	return v, nil
}

func (r *rdsKV) Ping(ctx context.Context) error {
	return perr.WrapIf(r.c.Ping(ctx).Err(), perr.ErrorCodeUnavailable, "redis ping")
}

func (r *rdsKV) Close() error { return r.c.Close() }

package store

import (
	"context"
	"testing"
	"time"
)

func TestOpenNothingEnabled(t *testing.T) {
	s, err := Open(context.Background(), Config{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.KV != nil {
		t.Fatalf("KV should stay nil when disabled")
	}
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("Ping on empty store should be nil, got %v", err)
	}
	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("Close on empty store should be nil, got %v", err)
	}
}

func TestRedisConfigDefaults(t *testing.T) {
	var c RedisConfig
	if c.retries() != 5 {
		t.Fatalf("default retries: %d", c.retries())
	}
	if c.pingTimeout() != 5*time.Second {
		t.Fatalf("default ping timeout: %v", c.pingTimeout())
	}

	c = RedisConfig{ConnectRetries: 2, PingTimeout: time.Second}
	if c.retries() != 2 || c.pingTimeout() != time.Second {
		t.Fatalf("explicit knobs ignored")
	}
}

func TestOpenRedisUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, err := Open(ctx, Config{RDS: RedisConfig{
		Enabled:        true,
		Addr:           "127.0.0.1:1", // nothing listens here
		ConnectRetries: 1,
		PingTimeout:    200 * time.Millisecond,
	}})
	if err == nil {
		t.Fatalf("expected error for unreachable redis")
	}
}

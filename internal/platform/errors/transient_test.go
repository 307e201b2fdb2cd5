package errors

import (
	"context"
	"fmt"
	"net"
	"testing"

	"github.com/redis/go-redis/v9"
)

type fakeNetErr struct{ timeout bool }

func (e *fakeNetErr) Error() string   { return "conn reset" }
func (e *fakeNetErr) Timeout() bool   { return e.timeout }
func (e *fakeNetErr) Temporary() bool { return true }

var _ net.Error = (*fakeNetErr)(nil)

func TestIsTimeout(t *testing.T) {
	if !IsTimeout(fmt.Errorf("wrap: %w", &fakeNetErr{timeout: true})) {
		t.Fatalf("timeout should be detected through wrapping")
	}
	if IsTimeout(&fakeNetErr{timeout: false}) {
		t.Fatalf("non-timeout net error misclassified")
	}
	if IsTimeout(fmt.Errorf("plain")) {
		t.Fatalf("plain error is not a timeout")
	}
}

func TestIsRetryable(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"ctx canceled", context.Canceled, false},
		{"deadline", fmt.Errorf("op: %w", context.DeadlineExceeded), false},
		{"redis nil", redis.Nil, false},
		{"transient fetch", TransientFetchf("suggest 503"), true},
		{"store", Storef("redis down"), true},
		{"unavailable", Unavailablef("warming up"), true},
		{"unresolved", Unresolvedf("nobody"), false},
		{"net wrapped foreign", fmt.Errorf("dial: %w", &fakeNetErr{}), true},
		{"plain", fmt.Errorf("plain"), false},
	}
	for _, c := range cases {
		if got := Retryable(c.err); got != c.want {
			t.Fatalf("%s: Retryable = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestIsRedisNil(t *testing.T) {
	if !IsRedisNil(fmt.Errorf("get: %w", redis.Nil)) {
		t.Fatalf("redis.Nil should be detected through wrapping")
	}
	if IsRedisNil(context.DeadlineExceeded) {
		t.Fatalf("deadline is not redis.Nil")
	}
}

package errors

// Transport-specific helpers for classifying provider and Redis failures

import (
	"context"
	stderrs "errors"
	"io"
	"net"

	"github.com/redis/go-redis/v9"
)

// IsTimeout reports whether the root cause is a network timeout
func IsTimeout(err error) bool {
	var ne net.Error
	if stderrs.As(Root(err), &ne) {
		return ne.Timeout()
	}
	return false
}

// IsNetwork reports whether the root cause is a transport-level failure
// (dial/reset/EOF), as opposed to an application-level refusal
func IsNetwork(err error) bool {
	root := Root(err)
	var ne net.Error
	if stderrs.As(root, &ne) {
		return true
	}
	return stderrs.Is(root, io.ErrUnexpectedEOF) || stderrs.Is(root, io.EOF)
}

// IsRedisNil reports whether err is the go-redis missing-key sentinel
func IsRedisNil(err error) bool { return stderrs.Is(Root(err), redis.Nil) }

// IsRetryable reports whether the failure is worth retrying on a later cycle.
// Context cancellation is never retryable; redis.Nil is an answer, not a failure
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	root := Root(err)
	if stderrs.Is(root, context.Canceled) || stderrs.Is(root, context.DeadlineExceeded) {
		return false
	}
	if IsRedisNil(err) {
		return false
	}
	switch CodeOf(err) {
	case ErrorCodeTransientFetch, ErrorCodeUnavailable, ErrorCodeStore:
		return true
	}
	return IsNetwork(err)
}

package errors

import (
	stderrs "errors"
	"fmt"
	"testing"
)

func TestNewWrapAndCode(t *testing.T) {
	base := New(ErrorCodeUnresolved, "no suggestion matched")
	if CodeOf(base) != ErrorCodeUnresolved {
		t.Fatalf("CodeOf: got %d", CodeOf(base))
	}

	wrapped := Wrapf(base, ErrorCodeTransientFetch, "lookup %q", "brindamour")
	if CodeOf(wrapped) != ErrorCodeTransientFetch {
		t.Fatalf("wrap code: got %d", CodeOf(wrapped))
	}
	if Root(wrapped).Error() != "no suggestion matched" {
		t.Fatalf("Root: got %q", Root(wrapped).Error())
	}
	if !IsCode(wrapped, ErrorCodeTransientFetch) {
		t.Fatalf("IsCode should see the outermost code")
	}
}

func TestAsAndForeign(t *testing.T) {
	if _, ok := As(fmt.Errorf("plain")); ok {
		t.Fatalf("plain error should not convert")
	}
	if CodeOf(fmt.Errorf("plain")) != ErrorCodeUnknown {
		t.Fatalf("plain error should map to Unknown")
	}

	e := Wrap(stderrs.New("boom"), ErrorCodeStore, "hset failed")
	got, ok := As(fmt.Errorf("outer: %w", e))
	if !ok || got.Code() != ErrorCodeStore {
		t.Fatalf("As through std wrapping failed")
	}
}

func TestWithOp(t *testing.T) {
	e := Storef("incr failed")
	e2 := WithOp(e, "ledger.commit")
	pe, ok := As(e2)
	if !ok || pe.Op() != "ledger.commit" {
		t.Fatalf("WithOp: got %+v", e2)
	}
	// original untouched (copy-on-write)
	pe0, _ := As(e)
	if pe0.Op() != "" {
		t.Fatalf("original mutated")
	}

	plain := fmt.Errorf("plain")
	if WithOp(plain, "x") != plain {
		t.Fatalf("foreign errors pass through unchanged")
	}
}

func TestWrapIf(t *testing.T) {
	if WrapIf(nil, ErrorCodeStore, "x") != nil {
		t.Fatalf("WrapIf(nil) should be nil")
	}
	if CodeOf(WrapIf(fmt.Errorf("y"), ErrorCodeStore, "x")) != ErrorCodeStore {
		t.Fatalf("WrapIf should wrap non-nil")
	}
}

func TestNilErrorString(t *testing.T) {
	var e *Error
	if e.Error() != "<nil>" {
		t.Fatalf("nil receiver: got %q", e.Error())
	}
}

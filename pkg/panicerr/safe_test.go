package panicerr

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestSafePassesThroughError(t *testing.T) {
	want := errors.New("boom")
	err := Safe(func() error { return want })()
	if !errors.Is(err, want) {
		t.Errorf("expected %v, got %v", want, err)
	}
}

func TestSafeCatchesPanic(t *testing.T) {
	err := Safe(func() error { panic("bug") })()
	if err == nil {
		t.Fatal("expected error from panic")
	}
	if !strings.Contains(err.Error(), "bug") {
		t.Errorf("panic value lost: %v", err)
	}
}

func TestSafeContextPassesThroughError(t *testing.T) {
	want := errors.New("boom")
	err := SafeContext(func(context.Context) error { return want })(context.Background())
	if !errors.Is(err, want) {
		t.Errorf("expected %v, got %v", want, err)
	}
}

func TestSafeContextCatchesPanic(t *testing.T) {
	err := SafeContext(func(context.Context) error { panic("bug") })(context.Background())
	if err == nil {
		t.Fatal("expected error from panic")
	}
	if !strings.Contains(err.Error(), "bug") {
		t.Errorf("panic value lost: %v", err)
	}
}

func TestSafeResult(t *testing.T) {
	val, err := SafeResult(func() (string, error) { return "ok", nil })()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if val != "ok" {
		t.Errorf("expected ok, got %q", val)
	}
}

func TestSafeResultCatchesPanic(t *testing.T) {
	val, err := SafeResult(func() (string, error) { panic("bug") })()
	if err == nil {
		t.Fatal("expected error from panic")
	}
	if val != "" {
		t.Errorf("expected zero value, got %q", val)
	}
}

func TestSafeResultKeepsErrorOverPanicValue(t *testing.T) {
	want := errors.New("real failure")
	_, err := SafeResult(func() (string, error) { return "", want })()
	if !errors.Is(err, want) {
		t.Errorf("expected %v, got %v", want, err)
	}
}

package app

import (
	"errors"
	"testing"
)

func TestInitError(t *testing.T) {
	inner := errors.New("no tty")
	err := &InitError{Component: "backend", Err: inner}

	if got := err.Error(); got != "init backend: no tty" {
		t.Errorf("Error() = %q, want %q", got, "init backend: no tty")
	}
	if !errors.Is(err, inner) {
		t.Error("errors.Is should find the wrapped error")
	}
}

func TestInteractionError(t *testing.T) {
	inner := errors.New("unknown tool")
	err := interaction("key", "next tool", inner)

	if got := err.Error(); got != "key next tool: unknown tool" {
		t.Errorf("Error() = %q, want %q", got, "key next tool: unknown tool")
	}
	if !errors.Is(err, inner) {
		t.Error("errors.Is should find the wrapped error")
	}
	var ie *InteractionError
	if !errors.As(err, &ie) || ie.Input != "key" {
		t.Errorf("errors.As = %+v, want key input", ie)
	}

	if err := interaction("pointer", "drag to (1, 1)", nil); err != nil {
		t.Errorf("interaction(nil) = %v, want nil", err)
	}
}

func TestSentinelErrors(t *testing.T) {
	sentinels := []error{ErrQuit, ErrAlreadyRunning, ErrNoBackend}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("%v should not match %v", a, b)
			}
		}
	}
}

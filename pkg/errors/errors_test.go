package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeNotFound, "element not found")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeNotFound, err.Code)
	}
	if err.Message != "element not found" {
		t.Errorf("expected message 'element not found', got %s", err.Message)
	}
	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrCodeTransport, "walk failed", cause)

	if err.Code != ErrCodeTransport {
		t.Errorf("expected code %s, got %s", ErrCodeTransport, err.Code)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected cause to be wrapped")
	}
}

func TestWrapWithContext(t *testing.T) {
	cause := errors.New("timeout")
	ctx := map[string]any{
		"host": "ups-1.example.org",
		"oid":  "1.3.6.1.4.1.534.1",
	}

	err := WrapWithContext(ErrCodeTimeout, "walk timed out", cause, ctx)

	if err.Code != ErrCodeTimeout {
		t.Errorf("expected code %s, got %s", ErrCodeTimeout, err.Code)
	}
	if err.Context == nil {
		t.Fatal("expected context to be set")
	}
	if err.Context["host"] != "ups-1.example.org" {
		t.Errorf("expected host to be ups-1.example.org")
	}
}

func TestError(t *testing.T) {
	tests := []struct {
		name     string
		err      *StructuredError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(ErrCodeConfiguration, "unknown device type"),
			expected: "[CONFIGURATION] unknown device type",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeConstruction, "failed", errors.New("root cause")),
			expected: "[CONSTRUCTION] failed: root cause",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestIsCode(t *testing.T) {
	inner := New(ErrCodeTransport, "unreachable")
	outer := Wrap(ErrCodeTimeout, "too many failures", inner)
	plain := fmt.Errorf("poll: %w", outer)

	tests := []struct {
		name string
		err  error
		code ErrorCode
		want bool
	}{
		{name: "outer code", err: outer, code: ErrCodeTimeout, want: true},
		{name: "nested code", err: outer, code: ErrCodeTransport, want: true},
		{name: "through fmt wrap", err: plain, code: ErrCodeTransport, want: true},
		{name: "absent code", err: outer, code: ErrCodeConfiguration, want: false},
		{name: "plain error", err: errors.New("x"), code: ErrCodeInternal, want: false},
		{name: "nil error", err: nil, code: ErrCodeInternal, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCode(tt.err, tt.code); got != tt.want {
				t.Errorf("IsCode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(fmt.Errorf("x: %w", New(ErrCodeNotFound, "y"))); got != ErrCodeNotFound {
		t.Errorf("expected %s, got %s", ErrCodeNotFound, got)
	}
	if got := CodeOf(errors.New("plain")); got != "" {
		t.Errorf("expected empty code, got %s", got)
	}
}

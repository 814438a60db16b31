package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeNotFound, "resource not found")

	if err.Code != ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeNotFound, err.Code)
	}
	if err.Message != "resource not found" {
		t.Errorf("expected message 'resource not found', got %s", err.Message)
	}
	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInternal, "operation failed", cause)

	if err.Code != ErrCodeInternal {
		t.Errorf("expected code %s, got %s", ErrCodeInternal, err.Code)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected cause to be wrapped")
	}
}

func TestWrapWithContext(t *testing.T) {
	cause := errors.New("connection refused")
	ctx := map[string]any{
		"kind":      "pod",
		"namespace": "default",
	}

	err := WrapWithContext(ErrCodeUnavailable, "list failed", cause, ctx)

	if err.Code != ErrCodeUnavailable {
		t.Errorf("expected code %s, got %s", ErrCodeUnavailable, err.Code)
	}
	if err.Context == nil {
		t.Fatal("expected context to be set")
	}
	if err.Context["kind"] != "pod" {
		t.Errorf("expected kind to be pod")
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
			err:      New(ErrCodeNotFound, "not found"),
			expected: "[NOT_FOUND] not found",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeInternal, "failed", errors.New("root cause")),
			expected: "[INTERNAL] failed: root cause",
		},
		{
			name:     "malformed invocation",
			err:      New(ErrCodeMalformedInvocation, "unknown tool \"x\""),
			expected: "[MALFORMED_INVOCATION] unknown tool \"x\"",
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

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(ErrCodeInternal, "wrapped", cause)

	unwrapped := err.Unwrap()
	if !errors.Is(unwrapped, cause) {
		t.Errorf("expected unwrapped error to be original cause")
	}

	if !errors.Is(err, cause) {
		t.Errorf("errors.Is should work with Unwrap")
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"nil", nil, ""},
		{"plain error", errors.New("boom"), ErrCodeInternal},
		{"structured", New(ErrCodeNotFound, "gone"), ErrCodeNotFound},
		{"wrapped structured", fmt.Errorf("outer: %w", New(ErrCodeUnavailable, "down")), ErrCodeUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %q, want %q", got, tt.want)
			}
		})
	}

	if !IsCode(New(ErrCodeTimeout, "slow"), ErrCodeTimeout) {
		t.Error("IsCode should match the structured code")
	}
	if IsCode(nil, ErrCodeInternal) {
		t.Error("IsCode(nil) should be false")
	}
}

func TestRetryable(t *testing.T) {
	retryable := []ErrorCode{ErrCodeUnavailable, ErrCodeOracleUnavailable, ErrCodeTimeout, ErrCodeRateLimitExceeded}
	for _, code := range retryable {
		if !New(code, "x").Retryable() {
			t.Errorf("%s should be retryable", code)
		}
	}

	final := []ErrorCode{ErrCodeNotFound, ErrCodeInvalidRequest, ErrCodeMalformedInvocation, ErrCodeInternal}
	for _, code := range final {
		if New(code, "x").Retryable() {
			t.Errorf("%s should not be retryable", code)
		}
	}
}

func TestErrorCodes(t *testing.T) {
	codes := []ErrorCode{
		ErrCodeNotFound,
		ErrCodeUnauthorized,
		ErrCodeTimeout,
		ErrCodeInternal,
		ErrCodeInvalidRequest,
		ErrCodeUnavailable,
		ErrCodeMalformedInvocation,
		ErrCodeOracleUnavailable,
	}

	for _, code := range codes {
		if string(code) == "" {
			t.Errorf("error code should not be empty: %v", code)
		}
	}
}

package errors

import (
	"fmt"
	"testing"
)

func TestInferenceError(t *testing.T) {
	cause := New("connection refused")

	err := NewInferenceError("j-hartmann/emotion-english-distilroberta-base", 503, cause)
	msg := err.Error()
	if msg != "inference error (model=j-hartmann/emotion-english-distilroberta-base, status=503): connection refused" {
		t.Errorf("Unexpected error message: %q", msg)
	}

	if !Is(err, cause) {
		t.Error("InferenceError should unwrap to its cause")
	}

	// Without status code
	err = NewInferenceError("sentiment", 0, cause)
	if err.Error() != "inference error (model=sentiment): connection refused" {
		t.Errorf("Unexpected error message: %q", err.Error())
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("text", "must not be empty")
	if err.Error() != "validation failed on text: must not be empty" {
		t.Errorf("Unexpected error message: %q", err.Error())
	}
}

func TestWrapper(t *testing.T) {
	w := NewWrapper("scholar", "search")

	if w.Wrap(nil, "ignored") != nil {
		t.Error("Wrapping nil should return nil")
	}

	cause := New("HTTP 500")
	err := w.Wrap(cause, "literature search failed")
	if !Is(err, cause) {
		t.Error("WrappedError should unwrap to its cause")
	}
	if GetUserMessage(err) != "literature search failed" {
		t.Errorf("Unexpected user message: %q", GetUserMessage(err))
	}

	err = w.Wrapf(cause, "query %q failed", "grief mourning")
	if GetUserMessage(err) != `query "grief mourning" failed` {
		t.Errorf("Unexpected user message: %q", GetUserMessage(err))
	}
}

func TestGetUserMessagePlainError(t *testing.T) {
	err := fmt.Errorf("plain: %w", ErrTimeout)
	if GetUserMessage(err) != "plain: operation timed out" {
		t.Errorf("Unexpected message: %q", GetUserMessage(err))
	}
	if GetUserMessage(nil) != "" {
		t.Error("Expected empty message for nil error")
	}
}

package sentry

import "testing"

func TestInitializeDisabledWithoutDSN(t *testing.T) {
	if err := Initialize(Config{}); err != nil {
		t.Errorf("Initialize with empty DSN should be a no-op, got %v", err)
	}
	if IsEnabled() {
		t.Error("Sentry should be disabled without a DSN")
	}
}

func TestCaptureExceptionNilSafe(t *testing.T) {
	// Must not panic when disabled or given nil
	CaptureException(nil)
}

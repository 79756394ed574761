package llm

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetryWithBackoff_SuccessFirstTry(t *testing.T) {
	calls := 0
	err := retryWithBackoff(context.Background(), 3, func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetryWithBackoff_NonRetryableReturnsImmediately(t *testing.T) {
	calls := 0
	wantErr := errors.New("bad request")
	err := retryWithBackoff(context.Background(), 3, func() error {
		calls++
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (no retry on non-retryable error)", calls)
	}
}

func TestRetryWithBackoff_AuthNotRetried(t *testing.T) {
	calls := 0
	err := retryWithBackoff(context.Background(), 3, func() error {
		calls++
		return &authError{message: "bad key"}
	})
	if !IsAuthError(err) {
		t.Fatalf("err = %v, want auth error", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetryWithBackoff_RetriesRateLimit(t *testing.T) {
	calls := 0
	err := retryWithBackoff(context.Background(), 1, func() error {
		calls++
		if calls == 1 {
			return &rateLimitError{}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestRetryWithBackoff_ContextCancelDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	calls := 0
	err := retryWithBackoff(ctx, 3, func() error {
		calls++
		return &serverError{statusCode: 500, body: "boom"}
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (cancelled before second attempt)", calls)
	}
}

func TestIsAuthError(t *testing.T) {
	if !IsAuthError(&authError{message: "nope"}) {
		t.Error("authError should be detected")
	}
	if IsAuthError(errors.New("other")) {
		t.Error("plain error should not be an auth error")
	}
	if IsAuthError(nil) {
		t.Error("nil should not be an auth error")
	}
}

package ledger

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

type codedError int

func (e codedError) Error() string { return fmt.Sprintf("sqlite error %d", int(e)) }
func (e codedError) Code() int     { return int(e) }

func TestIsLocked(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("database is locked"), false},
		{codedError(5), true},
		{fmt.Errorf("insert run: %w", codedError(5|2<<8)), true},
		{codedError(6), false},
	}
	for _, tt := range tests {
		if got := isLocked(tt.err); got != tt.want {
			t.Fatalf("isLocked(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestWithLockRetry(t *testing.T) {
	calls := 0
	err := withLockRetry(context.Background(), func() error {
		calls++
		if calls < 3 {
			return codedError(5)
		}
		return nil
	})
	if err != nil || calls != 3 {
		t.Fatalf("expected success on third call, got err=%v calls=%d", err, calls)
	}

	calls = 0
	permanent := errors.New("constraint failed")
	if err := withLockRetry(context.Background(), func() error {
		calls++
		return permanent
	}); !errors.Is(err, permanent) || calls != 1 {
		t.Fatalf("expected one attempt for non-busy error, got err=%v calls=%d", err, calls)
	}

	calls = 0
	if err := withLockRetry(context.Background(), func() error {
		calls++
		return codedError(5)
	}); !isLocked(err) || calls != len(lockedBackoff)+1 {
		t.Fatalf("expected busy error after %d calls, got err=%v calls=%d", len(lockedBackoff)+1, err, calls)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := withLockRetry(ctx, func() error { return codedError(5) }); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

package poll

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestBackoff_Defaults(t *testing.T) {
	b := Backoff{}.withDefaults()
	if b.Initial != DefaultInitialInterval {
		t.Errorf("Initial = %v, want %v", b.Initial, DefaultInitialInterval)
	}
	if b.Max != DefaultMaxInterval {
		t.Errorf("Max = %v, want %v", b.Max, DefaultMaxInterval)
	}
	if b.Multiplier != DefaultBackoffMultiplier {
		t.Errorf("Multiplier = %v, want %v", b.Multiplier, DefaultBackoffMultiplier)
	}

	b = Backoff{Initial: time.Minute, Max: time.Second, Jitter: -1}.withDefaults()
	if b.Max != time.Minute {
		t.Errorf("Max = %v, want it raised to Initial", b.Max)
	}
	if b.Jitter != 0 {
		t.Errorf("Jitter = %v, want 0", b.Jitter)
	}
}

func TestUntil_DoneImmediately(t *testing.T) {
	calls := 0
	err := Until(context.Background(), Backoff{Initial: time.Hour}, func(context.Context) (bool, error) {
		calls++
		return true, nil
	})
	if err != nil {
		t.Fatalf("Until() error = %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestUntil_PollsUntilDone(t *testing.T) {
	calls := 0
	start := time.Now()
	err := Until(context.Background(), Backoff{Initial: 5 * time.Millisecond, Max: 10 * time.Millisecond}, func(context.Context) (bool, error) {
		calls++
		return calls == 4, nil
	})
	if err != nil {
		t.Fatalf("Until() error = %v", err)
	}
	if calls != 4 {
		t.Errorf("calls = %d, want 4", calls)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("elapsed = %v, want at least 5+7.5+10ms of backoff", elapsed)
	}
}

func TestUntil_StopsOnError(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	err := Until(context.Background(), Backoff{Initial: time.Millisecond}, func(context.Context) (bool, error) {
		calls++
		return false, boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("Until() error = %v, want boom", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestUntil_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := Until(ctx, Backoff{Initial: time.Hour}, func(context.Context) (bool, error) {
		return false, nil
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Until() error = %v, want DeadlineExceeded", err)
	}
}

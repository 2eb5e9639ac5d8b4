package backoff

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDefaultSequence(t *testing.T) {
	b := New(Config{})

	expected := []time.Duration{
		500 * time.Millisecond,
		1 * time.Second,
		2 * time.Second,
		4 * time.Second,
		5 * time.Second,
		5 * time.Second, // Should stay at max
	}

	for i, exp := range expected {
		base := b.Current()
		_ = b.Next()
		if base != exp {
			t.Errorf("Attempt %d: base = %v, want %v", i, base, exp)
		}
	}
	if b.Attempts() != len(expected) {
		t.Errorf("Attempts() = %d, want %d", b.Attempts(), len(expected))
	}
}

func TestJitterRange(t *testing.T) {
	b := New(Config{Initial: time.Second})

	for i := range 20 {
		b.Reset()
		d := b.Next()
		if d < time.Second || d > 1250*time.Millisecond {
			t.Errorf("Sample %d: %v out of expected range [1s, 1.25s]", i, d)
		}
	}
}

func TestNoJitter(t *testing.T) {
	b := New(Config{Initial: 10 * time.Millisecond, Jitter: -1})
	for range 5 {
		b.Reset()
		if d := b.Next(); d != 10*time.Millisecond {
			t.Errorf("Next() = %v, want 10ms", d)
		}
	}
}

func TestReset(t *testing.T) {
	b := New(Config{})
	b.Next()
	b.Next()
	if b.Current() <= DefaultInitial {
		t.Error("Backoff should have increased")
	}

	b.Reset()
	if b.Current() != DefaultInitial {
		t.Errorf("Current() = %v after reset, want %v", b.Current(), DefaultInitial)
	}
	if b.Attempts() != 0 {
		t.Errorf("Attempts() = %d after reset, want 0", b.Attempts())
	}
}

func TestCustomConfig(t *testing.T) {
	b := New(Config{Initial: 100 * time.Millisecond, Max: 300 * time.Millisecond, Multiplier: 3, Jitter: -1})

	want := []time.Duration{100 * time.Millisecond, 300 * time.Millisecond, 300 * time.Millisecond}
	for i, w := range want {
		if got := b.Next(); got != w {
			t.Errorf("Next() #%d = %v, want %v", i, got, w)
		}
	}
}

func TestMaxBelowInitial(t *testing.T) {
	b := New(Config{Initial: 2 * time.Second, Max: time.Second, Jitter: -1})
	if got := b.Next(); got != 2*time.Second {
		t.Errorf("Next() = %v, want 2s", got)
	}
	if got := b.Current(); got != 2*time.Second {
		t.Errorf("Current() = %v, want 2s", got)
	}
}

func TestWait(t *testing.T) {
	b := New(Config{Initial: time.Millisecond, Jitter: -1})
	if err := b.Wait(context.Background()); err != nil {
		t.Errorf("Wait() = %v", err)
	}

	b = New(Config{Initial: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := b.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Wait() = %v, want context.Canceled", err)
	}
}

var fast = Config{Initial: time.Millisecond, Jitter: -1}

func TestRetrySucceedsAfterFailures(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), 3, fast, nil, func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("refused")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Retry() = %v, want nil", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetryExhausted(t *testing.T) {
	last := errors.New("third")
	calls := 0
	err := Retry(context.Background(), 3, fast, nil, func(context.Context) error {
		calls++
		if calls == 3 {
			return last
		}
		return errors.New("earlier")
	})
	if !errors.Is(err, last) {
		t.Errorf("Retry() = %v, want last error", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetryStopsOnPermanentError(t *testing.T) {
	permanent := errors.New("unsupported")
	calls := 0
	err := Retry(context.Background(), 5, fast,
		func(err error) bool { return !errors.Is(err, permanent) },
		func(context.Context) error {
			calls++
			return permanent
		})
	if !errors.Is(err, permanent) {
		t.Errorf("Retry() = %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetrySingleAttempt(t *testing.T) {
	calls := 0
	_ = Retry(context.Background(), 0, fast, nil, func(context.Context) error {
		calls++
		return errors.New("refused")
	})
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetryCancelledDuringWait(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	failure := errors.New("refused")
	calls := 0
	err := Retry(ctx, 5, Config{Initial: time.Hour, Jitter: -1}, nil, func(context.Context) error {
		calls++
		cancel()
		return failure
	})
	if !errors.Is(err, failure) {
		t.Errorf("Retry() = %v, want op error", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

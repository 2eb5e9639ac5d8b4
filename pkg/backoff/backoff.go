package backoff

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Defaults.
const (
	// DefaultInitial is the first retry delay.
	DefaultInitial = 500 * time.Millisecond

	// DefaultMax caps the delay.
	DefaultMax = 5 * time.Second

	// DefaultMultiplier is the factor by which the delay grows.
	DefaultMultiplier = 2.0

	// DefaultJitter is the maximum jitter as a fraction of the delay.
	DefaultJitter = 0.25
)

// Config customizes a Backoff. Zero fields use the defaults; a negative
// Jitter disables jitter.
type Config struct {
	Initial    time.Duration
	Max        time.Duration
	Multiplier float64
	Jitter     float64
}

// Backoff calculates exponential backoff delays with jitter.
type Backoff struct {
	mu sync.Mutex

	current time.Duration

	initial    time.Duration
	max        time.Duration
	multiplier float64
	jitter     float64

	attempts int
	rng      *rand.Rand
}

// New creates a Backoff.
func New(cfg Config) *Backoff {
	if cfg.Initial <= 0 {
		cfg.Initial = DefaultInitial
	}
	if cfg.Max <= 0 {
		cfg.Max = DefaultMax
	}
	if cfg.Max < cfg.Initial {
		cfg.Max = cfg.Initial
	}
	if cfg.Multiplier <= 1 {
		cfg.Multiplier = DefaultMultiplier
	}
	switch {
	case cfg.Jitter == 0:
		cfg.Jitter = DefaultJitter
	case cfg.Jitter < 0:
		cfg.Jitter = 0
	}

	return &Backoff{
		current:    cfg.Initial,
		initial:    cfg.Initial,
		max:        cfg.Max,
		multiplier: cfg.Multiplier,
		jitter:     cfg.Jitter,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Next returns the next delay (with jitter) and advances the backoff.
func (b *Backoff) Next() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()

	delay := b.addJitter(b.current)

	b.attempts++
	next := time.Duration(float64(b.current) * b.multiplier)
	if next > b.max {
		next = b.max
	}
	b.current = next

	return delay
}

// Reset returns to the initial delay.
func (b *Backoff) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.current = b.initial
	b.attempts = 0
}

// Attempts returns the number of delays handed out since the last reset.
func (b *Backoff) Attempts() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.attempts
}

// Current returns the current base delay (without jitter).
func (b *Backoff) Current() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

func (b *Backoff) addJitter(d time.Duration) time.Duration {
	if b.jitter <= 0 {
		return d
	}
	return d + time.Duration(float64(d)*b.jitter*b.rng.Float64())
}

// Wait sleeps for the next delay. It returns ctx.Err() if ctx ends first.
func (b *Backoff) Wait(ctx context.Context) error {
	t := time.NewTimer(b.Next())
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Retry calls op up to attempts times, waiting between calls with a
// Backoff built from cfg. It stops early when op succeeds, when retryable
// reports false for its error or when ctx ends. A nil retryable retries
// every error. The last error from op is returned.
func Retry(ctx context.Context, attempts int, cfg Config, retryable func(error) bool, op func(context.Context) error) error {
	if attempts < 1 {
		attempts = 1
	}
	b := New(cfg)

	var err error
	for i := 1; ; i++ {
		if err = op(ctx); err == nil {
			return nil
		}
		if i >= attempts || (retryable != nil && !retryable(err)) {
			return err
		}
		if werr := b.Wait(ctx); werr != nil {
			return err
		}
	}
}

package routing

import (
	"math/rand/v2"
	"time"
)

// Backoff defaults for retries whose DelayError carries no delay.
const (
	InitialBackoff    = 100 * time.Millisecond
	MaxBackoff        = 10 * time.Second
	BackoffMultiplier = 2.0

	// JitterFactor is the largest jitter added, as a fraction of the delay.
	JitterFactor = 0.25
)

// BackoffConfig shapes the retry delays. Zero values take the defaults,
// except Jitter where zero disables jitter.
type BackoffConfig struct {
	Initial    time.Duration
	Max        time.Duration
	Multiplier float64
	Jitter     float64
}

// DefaultBackoffConfig returns the package defaults with jitter enabled.
func DefaultBackoffConfig() BackoffConfig {
	return BackoffConfig{
		Initial:    InitialBackoff,
		Max:        MaxBackoff,
		Multiplier: BackoffMultiplier,
		Jitter:     JitterFactor,
	}
}

func (c BackoffConfig) withDefaults() BackoffConfig {
	if c.Initial <= 0 {
		c.Initial = InitialBackoff
	}
	if c.Max <= 0 {
		c.Max = MaxBackoff
	}
	c.Max = max(c.Max, c.Initial)
	if c.Multiplier <= 1 {
		c.Multiplier = BackoffMultiplier
	}
	c.Jitter = max(c.Jitter, 0)
	return c
}

// Delay returns the delay before retry number attempt, counted from zero,
// without jitter.
func (c BackoffConfig) Delay(attempt int) time.Duration {
	c = c.withDefaults()
	d := c.Initial
	for range attempt {
		if d >= c.Max {
			break
		}
		d = time.Duration(float64(d) * c.Multiplier)
	}
	return min(d, c.Max)
}

// Backoff hands out growing delays for the retries of one delivery. It is
// not safe for concurrent use; a delivery has at most one retry in flight.
type Backoff struct {
	cfg      BackoffConfig
	attempts int
}

// NewBackoff creates a Backoff from cfg.
func NewBackoff(cfg BackoffConfig) *Backoff {
	return &Backoff{cfg: cfg.withDefaults()}
}

// Next returns the delay for the next retry, with jitter, and advances.
func (b *Backoff) Next() time.Duration {
	d := b.cfg.Delay(b.attempts)
	b.attempts++
	if b.cfg.Jitter > 0 {
		d += time.Duration(float64(d) * b.cfg.Jitter * rand.Float64())
	}
	return d
}

// Current returns the delay Next will build on, without jitter.
func (b *Backoff) Current() time.Duration {
	return b.cfg.Delay(b.attempts)
}

// Attempts returns how many delays were handed out since the last Reset.
func (b *Backoff) Attempts() int {
	return b.attempts
}

// Reset starts over at the initial delay.
func (b *Backoff) Reset() {
	b.attempts = 0
}

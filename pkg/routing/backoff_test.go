package routing

import (
	"testing"
	"time"
)

func TestBackoffConfigDelay(t *testing.T) {
	cfg := DefaultBackoffConfig()

	expected := []time.Duration{
		100 * time.Millisecond,
		200 * time.Millisecond,
		400 * time.Millisecond,
		800 * time.Millisecond,
		1600 * time.Millisecond,
		3200 * time.Millisecond,
		6400 * time.Millisecond,
		10 * time.Second,
		10 * time.Second,
	}
	for attempt, want := range expected {
		if got := cfg.Delay(attempt); got != want {
			t.Errorf("Delay(%d) = %v, want %v", attempt, got, want)
		}
	}

	if got := cfg.Delay(10_000); got != MaxBackoff {
		t.Errorf("Delay(10000) = %v, want %v", got, MaxBackoff)
	}
	if got := (BackoffConfig{}).Delay(0); got != InitialBackoff {
		t.Errorf("zero config Delay(0) = %v, want %v", got, InitialBackoff)
	}
}

func TestBackoffJitterStaysInRange(t *testing.T) {
	b := NewBackoff(DefaultBackoffConfig())
	limit := time.Duration(float64(InitialBackoff) * (1 + JitterFactor))

	for i := 0; i < 50; i++ {
		b.Reset()
		if d := b.Next(); d < InitialBackoff || d > limit {
			t.Errorf("sample %d: %v outside [%v, %v]", i, d, InitialBackoff, limit)
		}
	}
}

func TestBackoffWithoutJitterIsExact(t *testing.T) {
	b := NewBackoff(BackoffConfig{
		Initial:    10 * time.Millisecond,
		Max:        50 * time.Millisecond,
		Multiplier: 2.0,
	})

	expected := []time.Duration{
		10 * time.Millisecond,
		20 * time.Millisecond,
		40 * time.Millisecond,
		50 * time.Millisecond,
		50 * time.Millisecond,
	}
	for i, want := range expected {
		if got := b.Next(); got != want {
			t.Errorf("retry %d: got %v, want %v", i, got, want)
		}
	}
	if b.Attempts() != len(expected) {
		t.Errorf("Attempts() = %d, want %d", b.Attempts(), len(expected))
	}
}

func TestBackoffReset(t *testing.T) {
	b := NewBackoff(BackoffConfig{})
	for i := 0; i < 5; i++ {
		b.Next()
	}
	if b.Current() <= InitialBackoff {
		t.Error("delay should have grown")
	}

	b.Reset()

	if b.Current() != InitialBackoff {
		t.Errorf("Current() = %v after reset, want %v", b.Current(), InitialBackoff)
	}
	if b.Attempts() != 0 {
		t.Errorf("Attempts() = %d after reset, want 0", b.Attempts())
	}
}

func TestBackoffMaxBelowInitial(t *testing.T) {
	b := NewBackoff(BackoffConfig{Initial: time.Second, Max: time.Millisecond})
	b.Next()
	if b.Current() != time.Second {
		t.Errorf("Current() = %v, want 1s", b.Current())
	}
}

package scheduler

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Handle identifies a scheduled work item.
type Handle uint64

// InvalidHandle is returned when work could not be scheduled.
const InvalidHandle Handle = 0

// DefaultPoolSize is the worker count used when a pool size is not given.
const DefaultPoolSize = 4

// ErrUnknownStrategy is returned by ParseStrategy.
var ErrUnknownStrategy = errors.New("unknown scheduler strategy")

// Scheduler executes work once after a delay.
type Scheduler interface {
	// Schedule queues work to run after delay and returns its handle.
	// Negative delays are treated as zero.
	Schedule(work func(), delay time.Duration) Handle

	// Cancel removes a pending item. It returns false if the item already
	// started, completed, was canceled before, or is unknown.
	Cancel(h Handle) bool

	// Pending returns the number of items that have neither started nor
	// been canceled.
	Pending() int

	// Shutdown drops all pending items and waits for running work.
	Shutdown()
}

// Strategy selects a Scheduler implementation.
type Strategy uint8

const (
	// StrategySingleThreaded runs all work on one dedicated worker.
	StrategySingleThreaded Strategy = iota

	// StrategyPool runs work on a bounded worker pool.
	StrategyPool
)

// String returns the configuration name of the strategy.
func (s Strategy) String() string {
	switch s {
	case StrategySingleThreaded:
		return "single"
	case StrategyPool:
		return "pool"
	default:
		return "unknown"
	}
}

// ParseStrategy parses "single" or "pool".
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single", "single-threaded", "":
		return StrategySingleThreaded, nil
	case "pool", "thread-pool":
		return StrategyPool, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

// Option configures a scheduler.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger for debug output. A nil logger disables logging.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// New creates a scheduler for the given strategy. poolSize is only used by
// StrategyPool; values <= 0 select DefaultPoolSize.
func New(strategy Strategy, name string, poolSize int, opts ...Option) Scheduler {
	if strategy == StrategyPool {
		return NewPool(name, poolSize, opts...)
	}
	return NewSingleThreaded(name, opts...)
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// run executes work and keeps a panicking item from taking down its worker.
func run(name string, h Handle, work func(), logger *slog.Logger) {
	defer func() {
		if r := recover(); r != nil && logger != nil {
			logger.Error("scheduled work panicked", "scheduler", name, "handle", uint64(h), "panic", r)
		}
	}()
	work()
}

// Compile-time interface satisfaction checks.
var (
	_ Scheduler = (*SingleThreaded)(nil)
	_ Scheduler = (*Pool)(nil)
)

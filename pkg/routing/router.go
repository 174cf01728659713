package routing

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mash-protocol/mash-rpc/pkg/log"
	"github.com/mash-protocol/mash-rpc/pkg/message"
	"github.com/mash-protocol/mash-rpc/pkg/scheduler"
	"github.com/mash-protocol/mash-rpc/pkg/ttl"
)

var (
	// ErrMessageExpired is reported when a message cannot be delivered
	// before its expiry date.
	ErrMessageExpired = errors.New("routing: message expired")

	// ErrClosed is reported for deliveries routed or pending when the router
	// is closed.
	ErrClosed = errors.New("routing: router closed")

	// ErrNoScheduler is returned by New when no scheduler is configured.
	ErrNoScheduler = errors.New("routing: scheduler is required")
)

// MessageSender hands a message to a transport. Failures are reported
// through onFailure, possibly asynchronously. *mqtt.Sender implements it.
type MessageSender interface {
	SendMessage(dest message.Address, msg *message.ImmutableMessage, onFailure message.FailureFunc)
}

// Config configures a Router.
type Config struct {
	// Scheduler runs delayed retries. Required.
	Scheduler scheduler.Scheduler

	// Backoff is used when a DelayError carries no delay.
	Backoff BackoffConfig

	// ClientID identifies this client in protocol log events.
	ClientID string

	// Logger is used for debug output. If nil, logging is disabled.
	Logger *slog.Logger

	// ProtocolLogger receives an error event for every scheduled retry and
	// every delivery the router gives up on.
	ProtocolLogger log.Logger

	// Clock returns the current time. Defaults to ttl.Now.
	Clock func() ttl.Timestamp
}

// Router delivers messages and retries delayed deliveries until they expire.
type Router struct {
	sender   MessageSender
	sched    scheduler.Scheduler
	backoff  BackoffConfig
	clientID string
	logger   *slog.Logger
	protocol log.Logger
	clock    func() ttl.Timestamp

	mu      sync.Mutex
	pending map[scheduler.Handle]*delivery
	closed  bool
}

type delivery struct {
	dest      message.Address
	msg       *message.ImmutableMessage
	onFailure message.FailureFunc
	backoff   *Backoff
	handle    scheduler.Handle
	attempts  int
}

func (d *delivery) fail(err error) {
	if d.onFailure != nil {
		d.onFailure(err)
	}
}

// New creates a Router sending through sender.
func New(sender MessageSender, cfg Config) (*Router, error) {
	if cfg.Scheduler == nil {
		return nil, ErrNoScheduler
	}
	clock := cfg.Clock
	if clock == nil {
		clock = ttl.Now
	}
	return &Router{
		sender:   sender,
		sched:    cfg.Scheduler,
		backoff:  cfg.Backoff,
		clientID: cfg.ClientID,
		logger:   cfg.Logger,
		protocol: log.OrNoop(cfg.ProtocolLogger),
		clock:    clock,
		pending:  make(map[scheduler.Handle]*delivery),
	}, nil
}

func (r *Router) debugLog(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Debug(msg, args...)
	}
}

// Route sends msg to dest. onFailure receives the first non-retryable error,
// ErrMessageExpired, or ErrClosed. It may be nil.
func (r *Router) Route(dest message.Address, msg *message.ImmutableMessage, onFailure message.FailureFunc) {
	r.attempt(&delivery{dest: dest, msg: msg, onFailure: onFailure})
}

// Pending returns the number of deliveries waiting for a retry.
func (r *Router) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

// Close cancels all pending retries and fails them with ErrClosed.
// Close does not shut down the scheduler.
func (r *Router) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	var canceled []*delivery
	for h, d := range r.pending {
		if r.sched.Cancel(h) {
			canceled = append(canceled, d)
		}
		delete(r.pending, h)
	}
	r.mu.Unlock()

	for _, d := range canceled {
		r.giveUp(d, fmt.Errorf("%w: message %s", ErrClosed, d.msg.ID))
	}
}

func (r *Router) attempt(d *delivery) {
	r.mu.Lock()
	delete(r.pending, d.handle)
	d.handle = scheduler.InvalidHandle
	closed := r.closed
	r.mu.Unlock()

	if closed {
		r.giveUp(d, fmt.Errorf("%w: message %s", ErrClosed, d.msg.ID))
		return
	}
	if d.msg.IsExpired(r.clock()) {
		r.giveUp(d, fmt.Errorf("%w: message %s after %d attempts", ErrMessageExpired, d.msg.ID, d.attempts))
		return
	}

	d.attempts++
	r.sender.SendMessage(d.dest, d.msg, func(err error) {
		r.handleFailure(d, err)
	})
}

func (r *Router) handleFailure(d *delivery, err error) {
	de, ok := message.AsDelay(err)
	if !ok {
		d.fail(err)
		return
	}

	delay := de.Delay
	if delay <= 0 {
		if d.backoff == nil {
			d.backoff = NewBackoff(r.backoff)
		}
		delay = d.backoff.Next()
	}

	if remaining := ttl.Remaining(d.msg.ExpiryDate, r.clock()); delay >= remaining {
		r.giveUp(d, fmt.Errorf("%w: retry in %s exceeds remaining %s: %w",
			ErrMessageExpired, delay, remaining.Truncate(time.Millisecond), err))
		return
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		r.giveUp(d, fmt.Errorf("%w: %w", ErrClosed, err))
		return
	}
	h := r.sched.Schedule(func() { r.attempt(d) }, delay)
	if h == scheduler.InvalidHandle {
		r.mu.Unlock()
		r.giveUp(d, fmt.Errorf("%w: scheduler unavailable: %w", ErrClosed, err))
		return
	}
	d.handle = h
	r.pending[h] = d
	r.mu.Unlock()

	r.debugLog("routing: retry scheduled",
		"msg_id", d.msg.ID,
		"attempt", d.attempts,
		"delay", delay)
	r.logError(d, err, fmt.Sprintf("retry %d in %s", d.attempts, delay))
}

// giveUp reports a delivery the router will not retry.
func (r *Router) giveUp(d *delivery, err error) {
	r.debugLog("routing: delivery failed", "msg_id", d.msg.ID, "attempts", d.attempts, "error", err)
	r.logError(d, err, "dropped")
	d.fail(err)
}

func (r *Router) logError(d *delivery, err error, context string) {
	topic := ""
	if addr, ok := d.dest.(*message.MqttAddress); ok && addr != nil {
		topic = addr.Topic
	}
	r.protocol.Log(log.Event{
		Timestamp: time.Now(),
		ClientID:  r.clientID,
		Direction: log.DirectionOut,
		Layer:     log.LayerMessaging,
		Category:  log.CategoryError,
		Topic:     topic,
		Error: &log.ErrorEventData{
			Layer:   log.LayerMessaging,
			Message: err.Error(),
			Context: d.msg.ID + ": " + context,
		},
	})
}

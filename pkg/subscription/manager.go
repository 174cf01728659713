package subscription

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mash-protocol/mash-rpc/pkg/log"
	"github.com/mash-protocol/mash-rpc/pkg/qos"
	"github.com/mash-protocol/mash-rpc/pkg/scheduler"
	"github.com/mash-protocol/mash-rpc/pkg/ttl"
)

// Subscription errors.
var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrClosed               = errors.New("subscription manager closed")
	ErrNilListener          = errors.New("listener is required")
	ErrNilQos               = errors.New("qos is required")
)

// Config configures a Manager.
type Config struct {
	// Scheduler runs alert and expiry tasks. If nil, the Manager starts and
	// owns a single-threaded scheduler that is shut down by Close.
	Scheduler scheduler.Scheduler

	// ClientID identifies this participant in protocol log events.
	ClientID string

	// Logger is used for debug output. If nil, logging is disabled.
	Logger *slog.Logger

	// ProtocolLogger receives subscription lifecycle events.
	ProtocolLogger log.Logger

	// Clock returns the current time. Defaults to ttl.Now.
	Clock func() ttl.Timestamp
}

type entry struct {
	id         string
	methodName string
	listener   Listener
	qos        *qos.SubscriptionQos

	alertInterval time.Duration
	alertHandle   scheduler.Handle
	expiryHandle  scheduler.Handle

	registeredAt     ttl.Timestamp
	alertCount       uint64
	publicationCount uint64
	lastPublication  ttl.Timestamp
}

func (e *entry) info() Info {
	return Info{
		ID:               e.id,
		MethodName:       e.methodName,
		Qos:              *e.qos,
		RegisteredAt:     e.registeredAt,
		AlertCount:       e.alertCount,
		PublicationCount: e.publicationCount,
		LastPublication:  e.lastPublication,
		AlertInterval:    e.alertInterval,
	}
}

// Manager registers subscriptions and drives their alert and expiry timers.
type Manager struct {
	mu sync.RWMutex

	sched     scheduler.Scheduler
	ownsSched bool
	clientID  string
	logger    *slog.Logger
	protocol  log.Logger
	clock     func() ttl.Timestamp
	entries   map[string]*entry
	closed    bool
	closeOnce sync.Once
}

// NewManager creates a subscription manager.
func NewManager(cfg Config) *Manager {
	m := &Manager{
		sched:    cfg.Scheduler,
		clientID: cfg.ClientID,
		logger:   cfg.Logger,
		protocol: log.OrNoop(cfg.ProtocolLogger),
		clock:    cfg.Clock,
		entries:  make(map[string]*entry),
	}
	if m.sched == nil {
		m.sched = scheduler.NewSingleThreaded("subscription-manager", scheduler.WithLogger(cfg.Logger))
		m.ownsSched = true
	}
	if m.clock == nil {
		m.clock = ttl.Now
	}
	return m
}

func (m *Manager) debugLog(msg string, args ...any) {
	if m.logger != nil {
		m.logger.Debug(msg, args...)
	}
}

// Register adds a subscription to methodName and returns its ID together
// with the request to send to the provider. The request carries q itself;
// the Manager keeps its own copy, so the caller may modify or discard q
// afterwards.
func (m *Manager) Register(methodName string, listener Listener, q *qos.SubscriptionQos) (string, Request, error) {
	if listener == nil {
		return "", Request{}, ErrNilListener
	}
	if q == nil {
		return "", Request{}, ErrNilQos
	}
	if err := q.Validate(); err != nil {
		return "", Request{}, fmt.Errorf("register %s: %w", methodName, err)
	}

	e := &entry{
		id:           uuid.NewString(),
		methodName:   methodName,
		listener:     listener,
		qos:          q.Clone(),
		registeredAt: m.clock(),
	}
	if ms, ok := qos.AlertInterval(e.qos); ok && ms > 0 {
		e.alertInterval = ttl.Duration(ms)
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return "", Request{}, ErrClosed
	}
	m.entries[e.id] = e
	if e.alertInterval > 0 {
		e.alertHandle = m.sched.Schedule(m.alertTask(e.id), e.alertInterval)
	}
	if e.qos.HasExpiry() {
		e.expiryHandle = m.sched.Schedule(m.expiryTask(e.id), ttl.Remaining(e.qos.ExpiryDate, e.registeredAt))
	}
	m.mu.Unlock()

	m.debugLog("subscription: registered",
		"subscription_id", e.id,
		"method", methodName,
		"qos", e.qos.String())
	m.logEvent(e, log.SubscriptionRegistered)

	return e.id, Request{SubscribeToName: methodName, SubscriptionID: e.id, Qos: q}, nil
}

// Unregister removes a subscription and cancels its timers. Unknown or
// already removed IDs are ignored.
func (m *Manager) Unregister(id string) {
	m.mu.Lock()
	e, exists := m.entries[id]
	if !exists {
		m.mu.Unlock()
		m.debugLog("subscription: unregister of unknown id", "subscription_id", id)
		return
	}
	m.removeLocked(e)
	m.mu.Unlock()

	m.debugLog("subscription: unregistered", "subscription_id", id, "alerts", e.alertCount)
	m.logEvent(e, log.SubscriptionUnregistered)
}

// Get returns a snapshot of a subscription.
func (m *Manager) Get(id string) (Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, exists := m.entries[id]
	if !exists {
		return Info{}, ErrSubscriptionNotFound
	}
	return e.info(), nil
}

// List returns snapshots of all subscriptions ordered by registration time.
func (m *Manager) List() []Info {
	m.mu.RLock()
	out := make([]Info, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e.info())
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].RegisteredAt != out[j].RegisteredAt {
			return out[i].RegisteredAt < out[j].RegisteredAt
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Count returns the number of active subscriptions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// DeliverPublication forwards a received publication to the subscription's
// listener. It does not reset the alert cadence.
func (m *Manager) DeliverPublication(id string, value any) error {
	m.mu.Lock()
	e, exists := m.entries[id]
	if !exists {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrSubscriptionNotFound, id)
	}
	e.publicationCount++
	e.lastPublication = m.clock()
	listener := e.listener
	m.mu.Unlock()

	listener.OnPublication(value)
	return nil
}

// DeliverError forwards an error reported for the subscription to its
// listener.
func (m *Manager) DeliverError(id string, err error) error {
	m.mu.RLock()
	e, exists := m.entries[id]
	m.mu.RUnlock()
	if !exists {
		return fmt.Errorf("%w: %s", ErrSubscriptionNotFound, id)
	}

	e.listener.OnError(err)
	return nil
}

// Close removes all subscriptions without notifying their listeners and
// stops the scheduler if the Manager owns it. Close must not be called from
// a listener callback when the Manager owns its scheduler.
func (m *Manager) Close() error {
	m.closeOnce.Do(func() {
		m.mu.Lock()
		m.closed = true
		removed := make([]*entry, 0, len(m.entries))
		for _, e := range m.entries {
			m.removeLocked(e)
			removed = append(removed, e)
		}
		m.mu.Unlock()

		for _, e := range removed {
			m.logEvent(e, log.SubscriptionUnregistered)
		}
		if m.ownsSched {
			m.sched.Shutdown()
		}
		m.debugLog("subscription: manager closed", "removed", len(removed))
	})
	return nil
}

// removeLocked deletes e and cancels its timers. Caller holds m.mu.
func (m *Manager) removeLocked(e *entry) {
	delete(m.entries, e.id)
	if e.alertHandle != scheduler.InvalidHandle {
		m.sched.Cancel(e.alertHandle)
		e.alertHandle = scheduler.InvalidHandle
	}
	if e.expiryHandle != scheduler.InvalidHandle {
		m.sched.Cancel(e.expiryHandle)
		e.expiryHandle = scheduler.InvalidHandle
	}
}

// alertTask returns the self-renewing alert step for id. The next alert is
// scheduled before the listener runs, while m.mu is held, so Unregister
// always sees the current handle.
func (m *Manager) alertTask(id string) func() {
	return func() {
		m.mu.Lock()
		e, exists := m.entries[id]
		if !exists {
			m.mu.Unlock()
			return
		}
		e.alertHandle = scheduler.InvalidHandle

		if e.qos.IsExpired(m.clock()) {
			m.removeLocked(e)
			m.mu.Unlock()
			m.expired(e)
			return
		}

		e.alertCount++
		e.alertHandle = m.sched.Schedule(m.alertTask(id), e.alertInterval)
		listener := e.listener
		m.mu.Unlock()

		m.logEvent(e, log.SubscriptionAlert)
		listener.OnPublicationMissed()
	}
}

func (m *Manager) expiryTask(id string) func() {
	return func() {
		m.mu.Lock()
		e, exists := m.entries[id]
		if !exists {
			m.mu.Unlock()
			return
		}
		e.expiryHandle = scheduler.InvalidHandle
		m.removeLocked(e)
		m.mu.Unlock()

		m.expired(e)
	}
}

func (m *Manager) expired(e *entry) {
	m.debugLog("subscription: expired",
		"subscription_id", e.id,
		"method", e.methodName,
		"alerts", e.alertCount)
	m.logEvent(e, log.SubscriptionExpired)
}

func (m *Manager) logEvent(e *entry, action log.SubscriptionAction) {
	m.mu.RLock()
	alerts := e.alertCount
	m.mu.RUnlock()

	m.protocol.Log(log.Event{
		Timestamp:      time.Now(),
		ClientID:       m.clientID,
		Direction:      log.DirectionLocal,
		Layer:          log.LayerSubscription,
		Category:       log.CategorySubscription,
		SubscriptionID: e.id,
		Subscription: &log.SubscriptionEvent{
			Action:          action,
			MethodName:      e.methodName,
			QosKind:         e.qos.Kind.String(),
			AlertIntervalMs: qos.AlertIntervalMs(e.qos),
			ExpiryDate:      int64(e.qos.ExpiryDate),
			AlertCount:      alerts,
		},
	})
}

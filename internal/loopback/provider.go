package loopback

import (
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/mash-protocol/mash-rpc/pkg/message"
	"github.com/mash-protocol/mash-rpc/pkg/qos"
	"github.com/mash-protocol/mash-rpc/pkg/scheduler"
	"github.com/mash-protocol/mash-rpc/pkg/subscription"
	"github.com/mash-protocol/mash-rpc/pkg/ttl"
	"github.com/mash-protocol/mash-rpc/pkg/wire"
)

// ErrUnknownSubscription is returned for subscription IDs the provider does
// not serve.
var ErrUnknownSubscription = errors.New("unknown subscription")

// Publisher sends an encoded message of type t to topic.
type Publisher func(topic string, t message.Type, payload []byte)

// Sample is the value the provider publishes.
type Sample struct {
	Name string `cbor:"1,keyasint"`
	Seq  uint64 `cbor:"2,keyasint"`
}

// ProviderConfig configures a Provider.
type ProviderConfig struct {
	// Scheduler drives periodic publications. Required.
	Scheduler scheduler.Scheduler

	// Publish sends publications back to the subscriber. Required.
	Publish Publisher

	// ReplyTopic is the subscriber's channel topic.
	ReplyTopic string

	// Logger is used for debug output. If nil, logging is disabled.
	Logger *slog.Logger
}

type served struct {
	req      subscription.Request
	interval time.Duration
	handle   scheduler.Handle
	paused   bool
	seq      uint64
}

// Provider answers subscription requests with publications. Periodic
// subscriptions publish every period, keep-alive subscriptions every maximum
// interval and on-change subscriptions once on registration.
type Provider struct {
	cfg ProviderConfig

	mu     sync.Mutex
	subs   map[string]*served
	closed bool
}

// NewProvider creates a provider.
func NewProvider(cfg ProviderConfig) *Provider {
	return &Provider{
		cfg:  cfg,
		subs: make(map[string]*served),
	}
}

func (p *Provider) debugLog(msg string, args ...any) {
	if p.cfg.Logger != nil {
		p.cfg.Logger.Debug(msg, args...)
	}
}

// Handle is a Handler for the provider topic.
func (p *Provider) Handle(topic string, headers map[string]string, payload []byte) {
	switch t := MessageType(headers); t {
	case message.TypeSubscriptionRequest:
		req, err := wire.DecodeSubscriptionRequest(payload)
		if err != nil {
			p.debugLog("provider: bad subscription request", "error", err)
			return
		}
		p.start(*req)
	case message.TypeSubscriptionStop:
		stop, err := wire.DecodeSubscriptionStop(payload)
		if err != nil {
			p.debugLog("provider: bad subscription stop", "error", err)
			return
		}
		p.stop(stop.SubscriptionID)
	default:
		p.debugLog("provider: ignoring message", "topic", topic, "type", t)
	}
}

func cadence(q *qos.SubscriptionQos) time.Duration {
	if ms, ok := qos.PeriodicPublicationInterval(q); ok && ms > 0 {
		return ttl.Duration(ms)
	}
	if q != nil && q.Kind == qos.KindOnChangeWithKeepAlive && q.MaxIntervalMs > 0 {
		return ttl.Duration(q.MaxIntervalMs)
	}
	return 0
}

func (p *Provider) start(req subscription.Request) {
	s := &served{req: req, interval: cadence(req.Qos)}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	if old, ok := p.subs[req.SubscriptionID]; ok {
		p.cfg.Scheduler.Cancel(old.handle)
	}
	p.subs[req.SubscriptionID] = s
	if s.interval > 0 {
		s.handle = p.cfg.Scheduler.Schedule(p.tick(req.SubscriptionID), s.interval)
	}
	p.mu.Unlock()

	p.debugLog("provider: serving", "id", req.SubscriptionID, "name", req.SubscribeToName, "interval", s.interval)

	if s.interval == 0 {
		p.publish(req.SubscriptionID, Sample{Name: req.SubscribeToName})
	}
}

func (p *Provider) stop(id string) {
	p.mu.Lock()
	s, ok := p.subs[id]
	if ok {
		p.cfg.Scheduler.Cancel(s.handle)
		delete(p.subs, id)
	}
	p.mu.Unlock()

	if ok {
		p.debugLog("provider: stopped", "id", id)
	}
}

func (p *Provider) tick(id string) func() {
	return func() {
		p.mu.Lock()
		s, ok := p.subs[id]
		if !ok || p.closed {
			p.mu.Unlock()
			return
		}
		s.handle = p.cfg.Scheduler.Schedule(p.tick(id), s.interval)
		if s.paused {
			p.mu.Unlock()
			return
		}
		s.seq++
		sample := Sample{Name: s.req.SubscribeToName, Seq: s.seq}
		p.mu.Unlock()

		p.publish(id, sample)
	}
}

func (p *Provider) publish(id string, sample Sample) {
	pub, err := wire.NewPublication(id, sample)
	if err != nil {
		p.debugLog("provider: encode sample", "error", err)
		return
	}
	p.send(pub)
}

func (p *Provider) send(pub *wire.Publication) {
	data, err := wire.EncodePublication(pub)
	if err != nil {
		p.debugLog("provider: encode publication", "error", err)
		return
	}
	p.cfg.Publish(p.cfg.ReplyTopic, message.TypePublication, data)
}

// Pause stops publishing for id without ending the subscription, so the
// subscriber starts receiving missed-publication alerts.
func (p *Provider) Pause(id string) error {
	return p.setPaused(id, true)
}

// Resume restarts publishing for a paused subscription.
func (p *Provider) Resume(id string) error {
	return p.setPaused(id, false)
}

func (p *Provider) setPaused(id string, paused bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.subs[id]
	if !ok {
		return ErrUnknownSubscription
	}
	s.paused = paused
	return nil
}

// Fail sends a publication carrying an error for id.
func (p *Provider) Fail(id, reason string) error {
	p.mu.Lock()
	_, ok := p.subs[id]
	p.mu.Unlock()
	if !ok {
		return ErrUnknownSubscription
	}
	p.send(&wire.Publication{SubscriptionID: id, Error: reason})
	return nil
}

// Serving returns the IDs of active subscriptions in sorted order.
func (p *Provider) Serving() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	ids := make([]string, 0, len(p.subs))
	for id := range p.subs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Close cancels all publication timers.
func (p *Provider) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	for id, s := range p.subs {
		p.cfg.Scheduler.Cancel(s.handle)
		delete(p.subs, id)
	}
}

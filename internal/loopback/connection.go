package loopback

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/mash-protocol/mash-rpc/pkg/message"
	"github.com/mash-protocol/mash-rpc/pkg/mqtt"
)

// TypeHeader is the custom header carrying the message type. Receivers see it
// with message.CustomHeaderPrefix applied.
const TypeHeader = "msg-type"

// ErrNoRoute is reported when a message is published to a topic nobody
// listens on.
var ErrNoRoute = errors.New("no handler for topic")

// Handler receives a published message.
type Handler func(topic string, headers map[string]string, payload []byte)

// Delivery is a record of one published message.
type Delivery struct {
	Topic      string
	QosLevel   int
	TTLSeconds uint32
	Headers    map[string]string
	Size       int
}

// Config configures a Connection.
type Config struct {
	QosLevel            int
	MaxPacketSize       uint64
	PriorityTopicSuffix string

	// Logger is used for debug output. If nil, logging is disabled.
	Logger *slog.Logger
}

// Connection is an in-memory mqtt.Connection.
type Connection struct {
	cfg Config

	ready atomic.Bool

	mu       sync.RWMutex
	handlers map[string]Handler
	history  []Delivery

	wg sync.WaitGroup
}

var _ mqtt.Connection = (*Connection)(nil)

// NewConnection creates a connection that is not yet ready.
func NewConnection(cfg Config) *Connection {
	return &Connection{
		cfg:      cfg,
		handlers: make(map[string]Handler),
	}
}

func (c *Connection) debugLog(msg string, args ...any) {
	if c.cfg.Logger != nil {
		c.cfg.Logger.Debug(msg, args...)
	}
}

// Subscribe registers h for messages published to topic. A later call for the
// same topic replaces the handler.
func (c *Connection) Subscribe(topic string, h Handler) {
	c.mu.Lock()
	c.handlers[topic] = h
	c.mu.Unlock()
}

// SetReady toggles whether the connection reports itself as subscribed to
// its channel topic.
func (c *Connection) SetReady(ready bool) {
	c.ready.Store(ready)
	c.debugLog("loopback: ready changed", "ready", ready)
}

// IsSubscribedToChannelTopic implements mqtt.Connection.
func (c *Connection) IsSubscribedToChannelTopic() bool {
	return c.ready.Load()
}

// QosLevel implements mqtt.Connection.
func (c *Connection) QosLevel() int {
	return c.cfg.QosLevel
}

// MaxPacketSize implements mqtt.Connection.
func (c *Connection) MaxPacketSize() uint64 {
	return c.cfg.MaxPacketSize
}

// PriorityTopicSuffix implements mqtt.Connection.
func (c *Connection) PriorityTopicSuffix() string {
	return c.cfg.PriorityTopicSuffix
}

// Publish implements mqtt.Connection. The handler runs on its own goroutine;
// onFailure is called synchronously when no handler matches.
func (c *Connection) Publish(topic string, qosLevel int, onFailure message.FailureFunc, ttlSeconds uint32,
	headers map[string]string, payload []byte) {
	route := c.route(topic)

	c.mu.Lock()
	c.history = append(c.history, Delivery{
		Topic:      topic,
		QosLevel:   qosLevel,
		TTLSeconds: ttlSeconds,
		Headers:    headers,
		Size:       len(payload),
	})
	h, ok := c.handlers[route]
	c.mu.Unlock()

	c.debugLog("loopback: publish", "topic", topic, "qos", qosLevel, "ttl", ttlSeconds, "size", len(payload))

	if !ok {
		if onFailure != nil {
			onFailure(fmt.Errorf("%w: %s", ErrNoRoute, topic))
		}
		return
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		h(route, headers, payload)
	}()
}

// route strips the priority suffix that the sender appends to
// non-multicast topics.
func (c *Connection) route(topic string) string {
	if c.cfg.PriorityTopicSuffix == "" {
		return topic
	}
	return strings.TrimSuffix(topic, "/"+c.cfg.PriorityTopicSuffix)
}

// History returns a copy of all deliveries so far.
func (c *Connection) History() []Delivery {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Delivery, len(c.history))
	copy(out, c.history)
	return out
}

// Wait blocks until all in-flight handler calls have returned.
func (c *Connection) Wait() {
	c.wg.Wait()
}

// MessageType returns the message type carried in prefixed headers.
func MessageType(headers map[string]string) message.Type {
	return message.Type(headers[message.CustomHeaderPrefix+TypeHeader])
}

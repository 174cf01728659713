// Package client assembles a subscription client over the loopback
// connection: sender, router, subscription manager and a simulated provider
// sharing one scheduler.
package client

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mash-protocol/mash-rpc/internal/loopback"
	"github.com/mash-protocol/mash-rpc/pkg/config"
	"github.com/mash-protocol/mash-rpc/pkg/log"
	"github.com/mash-protocol/mash-rpc/pkg/message"
	"github.com/mash-protocol/mash-rpc/pkg/mqtt"
	"github.com/mash-protocol/mash-rpc/pkg/qos"
	"github.com/mash-protocol/mash-rpc/pkg/routing"
	"github.com/mash-protocol/mash-rpc/pkg/scheduler"
	"github.com/mash-protocol/mash-rpc/pkg/subscription"
	"github.com/mash-protocol/mash-rpc/pkg/wire"
)

// ErrProvider wraps errors reported by the provider in a publication.
var ErrProvider = errors.New("provider error")

// Config configures a Client.
type Config struct {
	Settings config.Settings

	// Logger is used for debug output. If nil, logging is disabled.
	Logger *slog.Logger

	// ProtocolLogger receives publish, subscription and error events.
	ProtocolLogger log.Logger

	// OnSendFailure is called when a message cannot be delivered.
	OnSendFailure func(msgID string, err error)

	// OnMessage is called for one-way messages arriving on the channel topic.
	OnMessage func(topic string, payload []byte)
}

// Client is a subscription client wired to an in-memory broker.
type Client struct {
	cfg      Config
	settings config.Settings
	ttlMs    int64

	sched    scheduler.Scheduler
	conn     *loopback.Connection
	router   *routing.Router
	manager  *subscription.Manager
	provider *loopback.Provider
}

// New builds and connects a client.
func New(cfg Config) (*Client, error) {
	s := cfg.Settings
	if err := s.Validate(); err != nil {
		return nil, err
	}
	strategy, err := s.SchedulerStrategy()
	if err != nil {
		return nil, err
	}

	c := &Client{
		cfg:      cfg,
		settings: s,
		ttlMs:    s.MessageTTL.Milliseconds(),
		sched:    scheduler.New(strategy, s.ClientID, s.PoolSize, scheduler.WithLogger(cfg.Logger)),
	}

	c.conn = loopback.NewConnection(loopback.Config{
		QosLevel:            s.QosLevel,
		MaxPacketSize:       s.MaxPacketSize,
		PriorityTopicSuffix: s.PriorityTopicSuffix,
		Logger:              cfg.Logger,
	})

	sender := mqtt.NewSender(c.conn, mqtt.SenderConfig{
		ClientID:       s.ClientID,
		Logger:         cfg.Logger,
		ProtocolLogger: cfg.ProtocolLogger,
	})

	c.router, err = routing.New(sender, routing.Config{
		Scheduler:      c.sched,
		Backoff:        routing.DefaultBackoffConfig(),
		ClientID:       s.ClientID,
		Logger:         cfg.Logger,
		ProtocolLogger: cfg.ProtocolLogger,
	})
	if err != nil {
		c.sched.Shutdown()
		return nil, fmt.Errorf("failed to create router: %w", err)
	}

	c.manager = subscription.NewManager(subscription.Config{
		Scheduler:      c.sched,
		ClientID:       s.ClientID,
		Logger:         cfg.Logger,
		ProtocolLogger: cfg.ProtocolLogger,
	})

	c.provider = loopback.NewProvider(loopback.ProviderConfig{
		Scheduler:  c.sched,
		Publish:    c.publish,
		ReplyTopic: s.ChannelTopic,
		Logger:     cfg.Logger,
	})

	c.conn.Subscribe(s.ChannelTopic, c.handleChannel)
	c.conn.Subscribe(s.ProviderTopic, c.provider.Handle)
	c.conn.SetReady(true)

	return c, nil
}

func (c *Client) debugLog(msg string, args ...any) {
	if c.cfg.Logger != nil {
		c.cfg.Logger.Debug(msg, args...)
	}
}

// Subscribe registers a subscription and sends the request to the provider.
func (c *Client) Subscribe(methodName string, q *qos.SubscriptionQos, l subscription.Listener) (string, error) {
	id, req, err := c.manager.Register(methodName, l, q)
	if err != nil {
		return "", err
	}
	data, err := wire.EncodeSubscriptionRequest(&req)
	if err != nil {
		c.manager.Unregister(id)
		return "", err
	}
	c.publish(c.settings.ProviderTopic, message.TypeSubscriptionRequest, data)
	return id, nil
}

// Unsubscribe removes a subscription and tells the provider to stop.
func (c *Client) Unsubscribe(id string) error {
	if _, err := c.manager.Get(id); err != nil {
		return err
	}
	c.manager.Unregister(id)

	data, err := wire.EncodeSubscriptionStop(&wire.SubscriptionStop{SubscriptionID: id})
	if err != nil {
		return err
	}
	c.publish(c.settings.ProviderTopic, message.TypeSubscriptionStop, data)
	return nil
}

// Send routes a one-way message to topic and returns its ID.
func (c *Client) Send(topic string, payload []byte, ttl time.Duration, bestEffort bool) string {
	opts := []message.Option{
		message.WithHeader(loopback.TypeHeader, string(message.TypeOneWay)),
		message.WithParticipants(c.settings.ClientID, topic),
	}
	if bestEffort {
		opts = append(opts, message.WithEffort(qos.EffortBestEffort))
	}
	return c.route(topic, message.New(message.TypeOneWay, payload, ttl.Milliseconds(), opts...))
}

func (c *Client) publish(topic string, t message.Type, payload []byte) {
	c.route(topic, message.New(t, payload, c.ttlMs,
		message.WithHeader(loopback.TypeHeader, string(t)),
		message.WithParticipants(c.settings.ClientID, topic),
	))
}

func (c *Client) route(topic string, msg *message.ImmutableMessage) string {
	dest := &message.MqttAddress{BrokerURI: c.settings.BrokerURI, Topic: topic}
	c.router.Route(dest, msg, func(err error) {
		c.debugLog("client: delivery failed", "msg", msg.ID, "error", err)
		if c.cfg.OnSendFailure != nil {
			c.cfg.OnSendFailure(msg.ID, err)
		}
	})
	return msg.ID
}

func (c *Client) handleChannel(topic string, headers map[string]string, payload []byte) {
	switch t := loopback.MessageType(headers); t {
	case message.TypePublication:
		c.handlePublication(payload)
	case message.TypeOneWay:
		if c.cfg.OnMessage != nil {
			c.cfg.OnMessage(topic, payload)
		}
	default:
		c.debugLog("client: ignoring message", "topic", topic, "type", t)
	}
}

func (c *Client) handlePublication(payload []byte) {
	pub, err := wire.DecodePublication(payload)
	if err != nil {
		c.debugLog("client: bad publication", "error", err)
		return
	}

	if pub.Error != "" {
		err = c.manager.DeliverError(pub.SubscriptionID, fmt.Errorf("%w: %s", ErrProvider, pub.Error))
	} else {
		var sample loopback.Sample
		if err = pub.DecodeValue(&sample); err != nil {
			err = c.manager.DeliverError(pub.SubscriptionID, err)
		} else {
			err = c.manager.DeliverPublication(pub.SubscriptionID, sample)
		}
	}
	if err != nil {
		c.debugLog("client: publication dropped", "id", pub.SubscriptionID, "error", err)
	}
}

// SetReady toggles the connection's channel subscription. While not ready,
// messages wait in the router until they expire.
func (c *Client) SetReady(ready bool) {
	c.conn.SetReady(ready)
}

// Ready reports whether the connection accepts messages.
func (c *Client) Ready() bool {
	return c.conn.IsSubscribedToChannelTopic()
}

// Pause stops the provider's publications for id.
func (c *Client) Pause(id string) error {
	return c.provider.Pause(id)
}

// Resume restarts the provider's publications for id.
func (c *Client) Resume(id string) error {
	return c.provider.Resume(id)
}

// Fail makes the provider report an error for id.
func (c *Client) Fail(id, reason string) error {
	return c.provider.Fail(id, reason)
}

// Subscriptions returns the registered subscriptions.
func (c *Client) Subscriptions() []subscription.Info {
	return c.manager.List()
}

// Subscription returns one registered subscription.
func (c *Client) Subscription(id string) (subscription.Info, error) {
	return c.manager.Get(id)
}

// Serving returns the subscription IDs the provider publishes for.
func (c *Client) Serving() []string {
	return c.provider.Serving()
}

// PendingRetries returns the number of messages waiting for redelivery.
func (c *Client) PendingRetries() int {
	return c.router.Pending()
}

// History returns every message published on the connection.
func (c *Client) History() []loopback.Delivery {
	return c.conn.History()
}

// Settings returns the settings the client runs with.
func (c *Client) Settings() config.Settings {
	return c.settings
}

// Close stops all timers, fails pending deliveries and drops every
// subscription.
func (c *Client) Close() error {
	c.provider.Close()
	c.router.Close()
	err := c.manager.Close()
	c.sched.Shutdown()
	c.conn.Wait()
	return err
}

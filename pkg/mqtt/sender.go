package mqtt

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/mash-protocol/mash-rpc/pkg/log"
	"github.com/mash-protocol/mash-rpc/pkg/message"
	"github.com/mash-protocol/mash-rpc/pkg/ttl"
)

const (
	// OverheadPerMessage is the fixed MQTT publish overhead in bytes.
	OverheadPerMessage uint64 = 32

	// OverheadPerCustomHeader is added for each user property on top of the
	// key and value lengths.
	OverheadPerCustomHeader uint64 = 5

	// NotReadyRetryDelay is the backoff suggested while the connection is
	// not subscribed to its channel topic.
	NotReadyRetryDelay = 2 * time.Second

	// QosBestEffort is the MQTT QoS level used for best-effort messages.
	QosBestEffort = 0
)

// SenderConfig configures a Sender.
type SenderConfig struct {
	// ClientID identifies this client in protocol log events.
	ClientID string

	// Logger is used for debug output. If nil, logging is disabled.
	Logger *slog.Logger

	// ProtocolLogger receives a PublishEvent for every message handed to
	// the connection and an error event for every rejected message.
	ProtocolLogger log.Logger

	// Clock returns the current time. Defaults to ttl.Now.
	Clock func() ttl.Timestamp
}

// Sender publishes messages to MQTT addresses through a Connection.
type Sender struct {
	conn     Connection
	clientID string
	logger   *slog.Logger
	protocol log.Logger
	clock    func() ttl.Timestamp
}

// NewSender creates a Sender publishing through conn.
func NewSender(conn Connection, cfg SenderConfig) *Sender {
	clock := cfg.Clock
	if clock == nil {
		clock = ttl.Now
	}
	return &Sender{
		conn:     conn,
		clientID: cfg.ClientID,
		logger:   cfg.Logger,
		protocol: log.OrNoop(cfg.ProtocolLogger),
		clock:    clock,
	}
}

func (s *Sender) debugLog(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

// SendMessage validates msg and hands it to the connection. Failures are
// reported only through onFailure, which may be nil.
func (s *Sender) SendMessage(dest message.Address, msg *message.ImmutableMessage, onFailure message.FailureFunc) {
	if onFailure == nil {
		onFailure = func(error) {}
	}
	if msg == nil {
		s.reject(nil, "", ErrNilMessage)
		onFailure(ErrNilMessage)
		return
	}

	addr, ok := dest.(*message.MqttAddress)
	if !ok || addr == nil {
		err := fmt.Errorf("%w: got %v", ErrInvalidAddressType, dest)
		s.reject(msg, "", err)
		onFailure(err)
		return
	}

	if !s.conn.IsSubscribedToChannelTopic() {
		err := &message.DelayError{Delay: NotReadyRetryDelay, Err: ErrNotReady}
		s.reject(msg, addr.Topic, err)
		onFailure(err)
		return
	}

	topic := addr.Topic
	if !msg.Type.IsMulticast() {
		topic += "/" + s.conn.PriorityTopicSuffix()
	}

	qosLevel := s.conn.QosLevel()
	if msg.IsBestEffort() {
		qosLevel = QosBestEffort
	}

	headers := msg.PrefixedCustomHeaders()
	size, ok := EstimateSize(topic, headers, msg.Payload)
	if !ok {
		err := &MessageTooLargeError{Limit: math.MaxInt64, Actual: size}
		s.reject(msg, topic, err)
		onFailure(err)
		return
	}
	if limit := s.conn.MaxPacketSize(); limit != 0 && size > limit {
		err := &MessageTooLargeError{Limit: limit, Actual: size}
		s.reject(msg, topic, err)
		onFailure(err)
		return
	}

	ttlSeconds := TTLSeconds(msg.ExpiryDate, s.clock())

	s.debugLog("mqtt: publishing",
		"msg_id", msg.ID,
		"topic", topic,
		"qos", qosLevel,
		"ttl_sec", ttlSeconds,
		"size", size)
	s.protocol.Log(log.Event{
		Timestamp: time.Now(),
		ClientID:  s.clientID,
		Direction: log.DirectionOut,
		Layer:     log.LayerTransport,
		Category:  log.CategoryMessage,
		Topic:     topic,
		Publish: &log.PublishEvent{
			MessageID:   msg.ID,
			MessageType: string(msg.Type),
			QosLevel:    qosLevel,
			TTLSeconds:  ttlSeconds,
			Size:        size,
			PayloadSize: len(msg.Payload),
			HeaderCount: len(headers),
		},
	})

	s.conn.Publish(topic, qosLevel, onFailure, ttlSeconds, headers, msg.Payload)
}

func (s *Sender) reject(msg *message.ImmutableMessage, topic string, err error) {
	msgID := ""
	if msg != nil {
		msgID = msg.ID
	}
	s.debugLog("mqtt: message rejected", "msg_id", msgID, "topic", topic, "error", err)
	s.protocol.Log(log.Event{
		Timestamp: time.Now(),
		ClientID:  s.clientID,
		Direction: log.DirectionOut,
		Layer:     log.LayerTransport,
		Category:  log.CategoryError,
		Topic:     topic,
		Error: &log.ErrorEventData{
			Layer:   log.LayerTransport,
			Message: err.Error(),
			Context: msgID,
		},
	})
}

// EstimateSize returns the publish packet size estimate:
// payload + OverheadPerMessage + topic + sum(key + value + OverheadPerCustomHeader).
// ok is false if the sum does not fit in an int64.
func EstimateSize(topic string, headers map[string]string, payload []byte) (size uint64, ok bool) {
	size = uint64(len(payload))
	if size > math.MaxInt64 {
		return size, false
	}
	add := func(n uint64) bool {
		if size > math.MaxInt64-n {
			size = math.MaxUint64
			return false
		}
		size += n
		return true
	}
	if !add(OverheadPerMessage) || !add(uint64(len(topic))) {
		return size, false
	}
	for k, v := range headers {
		if !add(uint64(len(k)) + uint64(len(v)) + OverheadPerCustomHeader) {
			return size, false
		}
	}
	return size, true
}

// TTLSeconds converts an absolute expiry into a whole-second MQTT message
// expiry interval, rounding up. An expiry in the past, or one too far in the
// future for a uint32, yields math.MaxUint32.
func TTLSeconds(expiry, now ttl.Timestamp) uint32 {
	remaining := ttl.ToRelative(expiry, now)
	if remaining < 0 {
		return math.MaxUint32
	}
	secs := remaining / 1000
	if remaining%1000 != 0 {
		secs++
	}
	if secs > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(secs)
}

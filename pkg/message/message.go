package message

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/mash-protocol/mash-rpc/pkg/qos"
	"github.com/mash-protocol/mash-rpc/pkg/ttl"
)

// CustomHeaderPrefix is prepended to custom header keys on the wire.
const CustomHeaderPrefix = "c-"

// Type is the message type literal carried in the envelope.
type Type string

// Message types.
const (
	TypeRequest                      Type = "rq"
	TypeReply                        Type = "rp"
	TypeOneWay                       Type = "oneWay"
	TypeSubscriptionRequest          Type = "srq"
	TypeBroadcastSubscriptionRequest Type = "brq"
	TypeMulticastSubscriptionRequest Type = "mrq"
	TypeSubscriptionReply            Type = "srp"
	TypeSubscriptionStop             Type = "sst"
	TypePublication                  Type = "p"
	TypeMulticast                    Type = "m"
)

// IsMulticast reports whether the message is addressed to many subscribers.
func (t Type) IsMulticast() bool {
	return t == TypeMulticast
}

// ImmutableMessage is a serialized outbound message. It must not be modified
// after it has been handed to a sender.
type ImmutableMessage struct {
	// ID uniquely identifies the message.
	ID string

	// Type is the message type.
	Type Type

	// Sender and Recipient are participant IDs.
	Sender    string
	Recipient string

	// Payload is the serialized message body.
	Payload []byte

	// ExpiryDate is the absolute expiry of the message.
	ExpiryDate ttl.Timestamp

	// Effort is the optional delivery effort hint. Nil means default.
	Effort *qos.Effort

	// CustomHeaders are application headers without the wire prefix.
	CustomHeaders map[string]string
}

// Option configures a message built by New.
type Option func(*ImmutableMessage)

// WithEffort sets the delivery effort hint.
func WithEffort(e qos.Effort) Option {
	return func(m *ImmutableMessage) {
		m.Effort = &e
	}
}

// WithHeader adds a custom header.
func WithHeader(key, value string) Option {
	return func(m *ImmutableMessage) {
		if m.CustomHeaders == nil {
			m.CustomHeaders = make(map[string]string)
		}
		m.CustomHeaders[key] = value
	}
}

// WithParticipants sets the sender and recipient participant IDs.
func WithParticipants(sender, recipient string) Option {
	return func(m *ImmutableMessage) {
		m.Sender = sender
		m.Recipient = recipient
	}
}

// New builds a message with a fresh ID and an expiry ttlMs from now.
func New(msgType Type, payload []byte, ttlMs int64, opts ...Option) *ImmutableMessage {
	m := &ImmutableMessage{
		ID:         uuid.NewString(),
		Type:       msgType,
		Payload:    payload,
		ExpiryDate: ttl.AbsoluteFromNow(ttlMs),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// IsBestEffort reports whether the best-effort hint is set.
func (m *ImmutableMessage) IsBestEffort() bool {
	return m.Effort != nil && *m.Effort == qos.EffortBestEffort
}

// PrefixedCustomHeaders returns the custom headers with CustomHeaderPrefix
// applied to each key.
func (m *ImmutableMessage) PrefixedCustomHeaders() map[string]string {
	if len(m.CustomHeaders) == 0 {
		return nil
	}
	out := make(map[string]string, len(m.CustomHeaders))
	for k, v := range m.CustomHeaders {
		out[CustomHeaderPrefix+k] = v
	}
	return out
}

// IsExpired reports whether the message expiry lies before now.
func (m *ImmutableMessage) IsExpired(now ttl.Timestamp) bool {
	return m.ExpiryDate < now
}

// String returns a log-friendly summary without the payload.
func (m *ImmutableMessage) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "msg{id=%s type=%s sender=%s recipient=%s expiry=%s size=%d",
		m.ID, m.Type, m.Sender, m.Recipient, m.ExpiryDate, len(m.Payload))
	if m.Effort != nil {
		fmt.Fprintf(&b, " effort=%s", m.Effort)
	}
	for _, k := range slices.Sorted(maps.Keys(m.CustomHeaders)) {
		fmt.Fprintf(&b, " %s=%s", k, m.CustomHeaders[k])
	}
	b.WriteString("}")
	return b.String()
}

package log

import "time"

// Event represents a protocol log event captured at any layer.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// ClientID identifies the local participant that produced the event.
	ClientID string `cbor:"2,keyasint,omitempty"`

	// Direction indicates message flow.
	Direction Direction `cbor:"3,keyasint"`

	// Layer where the event was captured.
	Layer Layer `cbor:"4,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"5,keyasint"`

	// Topic is the broker topic, for transport events.
	Topic string `cbor:"6,keyasint,omitempty"`

	// SubscriptionID is set for subscription events.
	SubscriptionID string `cbor:"7,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Publish      *PublishEvent      `cbor:"10,keyasint,omitempty"` // Transport layer
	Subscription *SubscriptionEvent `cbor:"11,keyasint,omitempty"` // Subscription layer
	Error        *ErrorEventData    `cbor:"12,keyasint,omitempty"` // Errors at any layer
}

// Direction indicates the direction of message flow.
type Direction uint8

const (
	// DirectionIn indicates an incoming message.
	DirectionIn Direction = 0
	// DirectionOut indicates an outgoing message.
	DirectionOut Direction = 1
	// DirectionLocal indicates a local state change with no message flow.
	DirectionLocal Direction = 2
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	case DirectionLocal:
		return "LOCAL"
	default:
		return "UNKNOWN"
	}
}

// Layer indicates which component captured the event.
type Layer uint8

const (
	// LayerTransport is the broker connection handoff.
	LayerTransport Layer = 0
	// LayerMessaging is outbound message validation and routing.
	LayerMessaging Layer = 1
	// LayerSubscription is the subscription manager.
	LayerSubscription Layer = 2
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerTransport:
		return "TRANSPORT"
	case LayerMessaging:
		return "MESSAGING"
	case LayerSubscription:
		return "SUBSCRIPTION"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryMessage indicates a published message.
	CategoryMessage Category = 0
	// CategorySubscription indicates a subscription lifecycle change.
	CategorySubscription Category = 1
	// CategoryError indicates an error event.
	CategoryError Category = 2
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryMessage:
		return "MESSAGE"
	case CategorySubscription:
		return "SUBSCRIPTION"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// PublishEvent captures a message handed to the broker connection.
type PublishEvent struct {
	// MessageID is the envelope's message ID.
	MessageID string `cbor:"1,keyasint,omitempty"`

	// MessageType is the envelope's message type literal.
	MessageType string `cbor:"2,keyasint,omitempty"`

	// QosLevel is the broker QoS level used.
	QosLevel int `cbor:"3,keyasint"`

	// TTLSeconds is the message expiry interval passed to the broker.
	TTLSeconds uint32 `cbor:"4,keyasint"`

	// Size is the estimated packet size in bytes.
	Size uint64 `cbor:"5,keyasint"`

	// PayloadSize is the serialized payload size in bytes.
	PayloadSize int `cbor:"6,keyasint"`

	// HeaderCount is the number of custom headers.
	HeaderCount int `cbor:"7,keyasint,omitempty"`
}

// SubscriptionAction is a subscription lifecycle transition.
type SubscriptionAction uint8

const (
	// SubscriptionRegistered indicates a new subscription.
	SubscriptionRegistered SubscriptionAction = 0
	// SubscriptionAlert indicates a missed-publication alert.
	SubscriptionAlert SubscriptionAction = 1
	// SubscriptionExpired indicates removal at the expiry date.
	SubscriptionExpired SubscriptionAction = 2
	// SubscriptionUnregistered indicates explicit removal.
	SubscriptionUnregistered SubscriptionAction = 3
)

// String returns the action name.
func (a SubscriptionAction) String() string {
	switch a {
	case SubscriptionRegistered:
		return "REGISTERED"
	case SubscriptionAlert:
		return "ALERT"
	case SubscriptionExpired:
		return "EXPIRED"
	case SubscriptionUnregistered:
		return "UNREGISTERED"
	default:
		return "UNKNOWN"
	}
}

// SubscriptionEvent captures a subscription lifecycle transition.
type SubscriptionEvent struct {
	// Action is the transition.
	Action SubscriptionAction `cbor:"1,keyasint"`

	// MethodName is the subscribed attribute or broadcast.
	MethodName string `cbor:"2,keyasint,omitempty"`

	// QosKind is the QoS variant name.
	QosKind string `cbor:"3,keyasint,omitempty"`

	// AlertIntervalMs is the alert window (-1 when not applicable).
	AlertIntervalMs int64 `cbor:"4,keyasint,omitempty"`

	// ExpiryDate is the expiry in milliseconds since the epoch.
	ExpiryDate int64 `cbor:"5,keyasint,omitempty"`

	// AlertCount is the number of alerts delivered so far.
	AlertCount uint64 `cbor:"6,keyasint,omitempty"`
}

// ErrorEventData captures errors at any layer.
type ErrorEventData struct {
	// Layer where the error occurred.
	Layer Layer `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Code is the error code (if applicable).
	Code *int `cbor:"3,keyasint,omitempty"`

	// Context describes what operation was being performed.
	Context string `cbor:"4,keyasint,omitempty"`
}

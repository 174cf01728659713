package mqtt

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAddressType is reported when the destination is not an
	// MQTT address.
	ErrInvalidAddressType = errors.New("mqtt: destination is not an MqttAddress")

	// ErrNotReady is wrapped in a message.DelayError when the connection is
	// not yet subscribed to its channel topic.
	ErrNotReady = errors.New("mqtt: connection not subscribed to channel topic")

	// ErrNilMessage is reported when SendMessage is given no message.
	ErrNilMessage = errors.New("mqtt: nil message")

	// ErrMessageTooLarge is the base error for MessageTooLargeError.
	ErrMessageTooLarge = errors.New("mqtt: message too large")
)

// MessageTooLargeError reports an estimated packet size above the broker limit.
type MessageTooLargeError struct {
	Limit  uint64
	Actual uint64
}

func (e *MessageTooLargeError) Error() string {
	return fmt.Sprintf("mqtt publish failed: maximum allowed message size of %d bytes exceeded, actual size is %d bytes",
		e.Limit, e.Actual)
}

func (e *MessageTooLargeError) Unwrap() error {
	return ErrMessageTooLarge
}

package wire

import (
	"fmt"

	"github.com/mash-protocol/mash-rpc/pkg/message"
	"github.com/mash-protocol/mash-rpc/pkg/qos"
	"github.com/mash-protocol/mash-rpc/pkg/ttl"
)

type envelope struct {
	ID         string            `cbor:"1,keyasint"`
	Type       string            `cbor:"2,keyasint"`
	Sender     string            `cbor:"3,keyasint,omitempty"`
	Recipient  string            `cbor:"4,keyasint,omitempty"`
	ExpiryDate int64             `cbor:"5,keyasint"`
	Effort     string            `cbor:"6,keyasint,omitempty"`
	Headers    map[string]string `cbor:"7,keyasint,omitempty"`
	Payload    []byte            `cbor:"8,keyasint"`
}

// EncodeMessage encodes a complete message envelope.
func EncodeMessage(msg *message.ImmutableMessage) ([]byte, error) {
	if msg.ID == "" || msg.Type == "" {
		return nil, fmt.Errorf("%w: message without id or type", ErrInvalid)
	}
	env := envelope{
		ID:         msg.ID,
		Type:       string(msg.Type),
		Sender:     msg.Sender,
		Recipient:  msg.Recipient,
		ExpiryDate: int64(msg.ExpiryDate),
		Headers:    msg.CustomHeaders,
		Payload:    msg.Payload,
	}
	if msg.Effort != nil {
		env.Effort = msg.Effort.String()
	}
	return Marshal(env)
}

// DecodeMessage decodes a message envelope.
func DecodeMessage(data []byte) (*message.ImmutableMessage, error) {
	var env envelope
	if err := Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to decode message: %w", err)
	}
	if env.ID == "" || env.Type == "" {
		return nil, fmt.Errorf("%w: message without id or type", ErrInvalid)
	}

	msg := &message.ImmutableMessage{
		ID:            env.ID,
		Type:          message.Type(env.Type),
		Sender:        env.Sender,
		Recipient:     env.Recipient,
		Payload:       env.Payload,
		ExpiryDate:    ttl.Timestamp(env.ExpiryDate),
		CustomHeaders: env.Headers,
	}
	if env.Effort != "" {
		effort, err := qos.ParseEffort(env.Effort)
		if err != nil {
			return nil, fmt.Errorf("%w: message %s: %w", ErrInvalid, env.ID, err)
		}
		msg.Effort = &effort
	}
	return msg, nil
}

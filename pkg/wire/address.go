package wire

import (
	"fmt"

	"github.com/mash-protocol/mash-rpc/pkg/message"
)

// addressWire is the flattened address encoding. Only the fields of Kind
// are set.
type addressWire struct {
	Kind          message.AddressKind `cbor:"1,keyasint"`
	BrokerURI     string              `cbor:"2,keyasint,omitempty"`
	Topic         string              `cbor:"3,keyasint,omitempty"`
	EndpointURL   string              `cbor:"4,keyasint,omitempty"`
	ChannelID     string              `cbor:"5,keyasint,omitempty"`
	ParticipantID string              `cbor:"6,keyasint,omitempty"`
}

// EncodeAddress encodes an address.
func EncodeAddress(addr message.Address) ([]byte, error) {
	var w addressWire
	switch a := addr.(type) {
	case *message.MqttAddress:
		w = addressWire{Kind: message.KindMqtt, BrokerURI: a.BrokerURI, Topic: a.Topic}
	case *message.ChannelAddress:
		w = addressWire{Kind: message.KindChannel, EndpointURL: a.MessagingEndpointURL, ChannelID: a.ChannelID}
	case *message.InProcessAddress:
		w = addressWire{Kind: message.KindInProcess, ParticipantID: a.ParticipantID}
	default:
		return nil, fmt.Errorf("%w: address type %T", ErrInvalid, addr)
	}
	return Marshal(w)
}

// DecodeAddress decodes an address.
func DecodeAddress(data []byte) (message.Address, error) {
	var w addressWire
	if err := Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("failed to decode address: %w", err)
	}
	switch w.Kind {
	case message.KindMqtt:
		return &message.MqttAddress{BrokerURI: w.BrokerURI, Topic: w.Topic}, nil
	case message.KindChannel:
		return &message.ChannelAddress{MessagingEndpointURL: w.EndpointURL, ChannelID: w.ChannelID}, nil
	case message.KindInProcess:
		return &message.InProcessAddress{ParticipantID: w.ParticipantID}, nil
	}
	return nil, fmt.Errorf("%w: address kind %d", ErrInvalid, w.Kind)
}

package message

import "fmt"

// AddressKind discriminates routing address types.
type AddressKind uint8

const (
	// KindMqtt is a broker topic address.
	KindMqtt AddressKind = iota + 1

	// KindChannel is an HTTP long-poll channel address.
	KindChannel

	// KindInProcess is a participant in the same process.
	KindInProcess
)

// String returns the kind name.
func (k AddressKind) String() string {
	switch k {
	case KindMqtt:
		return "MQTT"
	case KindChannel:
		return "CHANNEL"
	case KindInProcess:
		return "IN_PROCESS"
	default:
		return "UNKNOWN"
	}
}

// Address is a routing destination. The set of implementations is closed.
type Address interface {
	Kind() AddressKind
	String() string
	isAddress()
}

// MqttAddress addresses a topic on a broker.
type MqttAddress struct {
	BrokerURI string `cbor:"1,keyasint"`
	Topic     string `cbor:"2,keyasint"`
}

// Kind returns KindMqtt.
func (*MqttAddress) Kind() AddressKind { return KindMqtt }

func (a *MqttAddress) String() string {
	return fmt.Sprintf("mqtt{broker=%s topic=%s}", a.BrokerURI, a.Topic)
}

func (*MqttAddress) isAddress() {}

// ChannelAddress addresses a channel on a messaging endpoint.
type ChannelAddress struct {
	MessagingEndpointURL string `cbor:"1,keyasint"`
	ChannelID            string `cbor:"2,keyasint"`
}

// Kind returns KindChannel.
func (*ChannelAddress) Kind() AddressKind { return KindChannel }

func (a *ChannelAddress) String() string {
	return fmt.Sprintf("channel{endpoint=%s id=%s}", a.MessagingEndpointURL, a.ChannelID)
}

func (*ChannelAddress) isAddress() {}

// InProcessAddress addresses a participant in the local process.
type InProcessAddress struct {
	ParticipantID string `cbor:"1,keyasint"`
}

// Kind returns KindInProcess.
func (*InProcessAddress) Kind() AddressKind { return KindInProcess }

func (a *InProcessAddress) String() string {
	return fmt.Sprintf("in-process{participant=%s}", a.ParticipantID)
}

func (*InProcessAddress) isAddress() {}

// Compile-time interface satisfaction checks.
var (
	_ Address = (*MqttAddress)(nil)
	_ Address = (*ChannelAddress)(nil)
	_ Address = (*InProcessAddress)(nil)
)

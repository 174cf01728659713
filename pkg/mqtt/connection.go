package mqtt

import "github.com/mash-protocol/mash-rpc/pkg/message"

// Connection is the broker connection a Sender publishes through.
// Implementations must be safe for concurrent use.
type Connection interface {
	// IsSubscribedToChannelTopic reports whether the connection is up and
	// subscribed to its own channel topic.
	IsSubscribedToChannelTopic() bool

	// QosLevel returns the configured publish QoS level (0, 1 or 2).
	QosLevel() int

	// MaxPacketSize returns the broker's maximum packet size in bytes.
	// Zero means unlimited.
	MaxPacketSize() uint64

	// PriorityTopicSuffix returns the topic segment appended to
	// non-multicast topics.
	PriorityTopicSuffix() string

	// Publish sends payload to topic. Asynchronous failures are reported
	// through onFailure.
	Publish(topic string, qosLevel int, onFailure message.FailureFunc, ttlSeconds uint32,
		headers map[string]string, payload []byte)
}

package subscription

import (
	"time"

	"github.com/mash-protocol/mash-rpc/pkg/qos"
	"github.com/mash-protocol/mash-rpc/pkg/ttl"
)

// Request is the wire-level subscription request sent to the provider.
type Request struct {
	// SubscribeToName is the attribute or broadcast name.
	SubscribeToName string `cbor:"1,keyasint"`

	// SubscriptionID identifies the subscription on both sides.
	SubscriptionID string `cbor:"2,keyasint"`

	// Qos is the requested policy.
	Qos *qos.SubscriptionQos `cbor:"3,keyasint,omitempty"`
}

// Info is a snapshot of a registered subscription.
type Info struct {
	ID         string
	MethodName string
	Qos        qos.SubscriptionQos

	// RegisteredAt is when Register was called.
	RegisteredAt ttl.Timestamp

	// AlertCount is the number of missed-publication alerts delivered.
	AlertCount uint64

	// PublicationCount is the number of publications delivered.
	PublicationCount uint64

	// LastPublication is zero until the first publication.
	LastPublication ttl.Timestamp

	// AlertInterval is zero when the subscription does not alert.
	AlertInterval time.Duration
}

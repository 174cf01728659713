package wire

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/mash-protocol/mash-rpc/pkg/subscription"
)

// Publication carries a value, or an error, for one subscription.
type Publication struct {
	SubscriptionID string `cbor:"1,keyasint"`

	// Value is the CBOR-encoded publication value.
	Value cbor.RawMessage `cbor:"2,keyasint,omitempty"`

	// Error is set instead of Value when the provider reports a failure.
	Error string `cbor:"3,keyasint,omitempty"`
}

// SubscriptionStop asks the provider to end a subscription.
type SubscriptionStop struct {
	SubscriptionID string `cbor:"1,keyasint"`
}

// EncodeSubscriptionRequest encodes a subscription request.
func EncodeSubscriptionRequest(req *subscription.Request) ([]byte, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	return Marshal(req)
}

// DecodeSubscriptionRequest decodes and validates a subscription request.
func DecodeSubscriptionRequest(data []byte) (*subscription.Request, error) {
	var req subscription.Request
	if err := Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to decode subscription request: %w", err)
	}
	if err := validateRequest(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

func validateRequest(req *subscription.Request) error {
	switch {
	case req.SubscriptionID == "":
		return fmt.Errorf("%w: subscription request without subscription id", ErrInvalid)
	case req.SubscribeToName == "":
		return fmt.Errorf("%w: subscription request %s without name", ErrInvalid, req.SubscriptionID)
	case req.Qos == nil:
		return fmt.Errorf("%w: subscription request %s without qos", ErrInvalid, req.SubscriptionID)
	}
	if err := req.Qos.Validate(); err != nil {
		return fmt.Errorf("%w: subscription request %s: %w", ErrInvalid, req.SubscriptionID, err)
	}
	return nil
}

// NewPublication encodes value into a Publication for id.
func NewPublication(id string, value any) (*Publication, error) {
	raw, err := Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to encode publication value: %w", err)
	}
	return &Publication{SubscriptionID: id, Value: raw}, nil
}

// DecodeValue decodes the publication value into v.
func (p *Publication) DecodeValue(v any) error {
	if len(p.Value) == 0 {
		return fmt.Errorf("%w: publication %s has no value", ErrInvalid, p.SubscriptionID)
	}
	return Unmarshal(p.Value, v)
}

// EncodePublication encodes a publication.
func EncodePublication(p *Publication) ([]byte, error) {
	if p.SubscriptionID == "" {
		return nil, fmt.Errorf("%w: publication without subscription id", ErrInvalid)
	}
	return Marshal(p)
}

// DecodePublication decodes a publication.
func DecodePublication(data []byte) (*Publication, error) {
	var p Publication
	if err := Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to decode publication: %w", err)
	}
	if p.SubscriptionID == "" {
		return nil, fmt.Errorf("%w: publication without subscription id", ErrInvalid)
	}
	return &p, nil
}

// EncodeSubscriptionStop encodes a subscription stop.
func EncodeSubscriptionStop(s *SubscriptionStop) ([]byte, error) {
	if s.SubscriptionID == "" {
		return nil, fmt.Errorf("%w: subscription stop without subscription id", ErrInvalid)
	}
	return Marshal(s)
}

// DecodeSubscriptionStop decodes a subscription stop.
func DecodeSubscriptionStop(data []byte) (*SubscriptionStop, error) {
	var s SubscriptionStop
	if err := Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode subscription stop: %w", err)
	}
	if s.SubscriptionID == "" {
		return nil, fmt.Errorf("%w: subscription stop without subscription id", ErrInvalid)
	}
	return &s, nil
}

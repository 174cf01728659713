package qos

import (
	"errors"
	"fmt"

	"github.com/mash-protocol/mash-rpc/pkg/ttl"
)

// QoS validation errors.
var (
	ErrInvalidPeriod        = errors.New("invalid publication period")
	ErrInvalidMinInterval   = errors.New("invalid minimum interval")
	ErrInvalidAlertInterval = errors.New("invalid alert interval")
	ErrUnknownKind          = errors.New("unknown subscription qos kind")
)

// NotApplicable is the wire encoding of an interval that does not apply to a
// QoS kind or is not configured.
const NotApplicable int64 = -1

// NoExpiry marks a subscription that never expires.
const NoExpiry = ttl.Max

// Interval limits.
const (
	// MinPeriodMs is the smallest allowed period for periodic publications.
	MinPeriodMs int64 = 50

	// MaxPeriodMs is the largest allowed period (30 days).
	MaxPeriodMs int64 = 2_592_000_000

	// MaxMinIntervalMs is the largest allowed minimum interval (30 days).
	MaxMinIntervalMs int64 = 2_592_000_000

	// MaxAlertAfterIntervalMs is the largest allowed alert window (30 days).
	MaxAlertAfterIntervalMs int64 = 2_592_000_000

	// DefaultPublicationTtlMs is used when no publication ttl is given.
	DefaultPublicationTtlMs int64 = 10_000
)

// Kind identifies the subscription QoS variant.
type Kind uint8

const (
	// KindOnChange publishes on value change only.
	KindOnChange Kind = iota + 1

	// KindPeriodic publishes at a fixed period.
	KindPeriodic

	// KindOnChangeWithKeepAlive publishes on change and at least every
	// MaxIntervalMs.
	KindOnChangeWithKeepAlive
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindOnChange:
		return "ON_CHANGE"
	case KindPeriodic:
		return "PERIODIC"
	case KindOnChangeWithKeepAlive:
		return "ON_CHANGE_WITH_KEEP_ALIVE"
	default:
		return "UNKNOWN"
	}
}

// SubscriptionQos is the policy governing a subscription's cadence, expiry
// and alerting. Only the fields relevant to Kind are meaningful; use the
// constructors and the extraction functions rather than reading fields
// directly.
type SubscriptionQos struct {
	Kind Kind `cbor:"1,keyasint"`

	// ExpiryDate is when the subscription becomes invalid. NoExpiry means never.
	ExpiryDate ttl.Timestamp `cbor:"2,keyasint"`

	// PublicationTtlMs is the ttl applied to each publication message.
	PublicationTtlMs int64 `cbor:"3,keyasint"`

	// MinIntervalMs is the minimum time between publications
	// (OnChange, OnChangeWithKeepAlive).
	MinIntervalMs int64 `cbor:"4,keyasint,omitempty"`

	// MaxIntervalMs is the keep-alive cadence (OnChangeWithKeepAlive).
	MaxIntervalMs int64 `cbor:"5,keyasint,omitempty"`

	// PeriodMs is the publication cadence (Periodic).
	PeriodMs int64 `cbor:"6,keyasint,omitempty"`

	// AlertAfterIntervalMs is the missed-publication window
	// (Periodic, OnChangeWithKeepAlive). NotApplicable disables alerting.
	AlertAfterIntervalMs int64 `cbor:"7,keyasint,omitempty"`
}

// NewOnChange returns an on-change QoS.
func NewOnChange(expiry ttl.Timestamp, minIntervalMs int64) *SubscriptionQos {
	return &SubscriptionQos{
		Kind:                 KindOnChange,
		ExpiryDate:           expiry,
		PublicationTtlMs:     DefaultPublicationTtlMs,
		MinIntervalMs:        minIntervalMs,
		AlertAfterIntervalMs: NotApplicable,
	}
}

// NewPeriodic returns a periodic QoS. Pass NotApplicable as alertAfterMs to
// disable missed-publication alerts.
func NewPeriodic(expiry ttl.Timestamp, periodMs, alertAfterMs int64) *SubscriptionQos {
	return &SubscriptionQos{
		Kind:                 KindPeriodic,
		ExpiryDate:           expiry,
		PublicationTtlMs:     DefaultPublicationTtlMs,
		PeriodMs:             periodMs,
		AlertAfterIntervalMs: alertAfterMs,
	}
}

// NewOnChangeWithKeepAlive returns an on-change QoS with a keep-alive cadence.
func NewOnChangeWithKeepAlive(expiry ttl.Timestamp, minIntervalMs, maxIntervalMs, alertAfterMs int64) *SubscriptionQos {
	return &SubscriptionQos{
		Kind:                 KindOnChangeWithKeepAlive,
		ExpiryDate:           expiry,
		PublicationTtlMs:     DefaultPublicationTtlMs,
		MinIntervalMs:        minIntervalMs,
		MaxIntervalMs:        maxIntervalMs,
		AlertAfterIntervalMs: alertAfterMs,
	}
}

// Clone returns an independent copy. Managers store clones so later changes
// by the caller do not affect an active subscription.
func (q *SubscriptionQos) Clone() *SubscriptionQos {
	if q == nil {
		return nil
	}
	c := *q
	return &c
}

// HasExpiry reports whether an expiry date is configured.
func (q *SubscriptionQos) HasExpiry() bool {
	return q.ExpiryDate != NoExpiry && q.ExpiryDate > 0
}

// IsExpired reports whether the subscription has expired at now.
func (q *SubscriptionQos) IsExpired(now ttl.Timestamp) bool {
	return q.HasExpiry() && now >= q.ExpiryDate
}

// IsChangeDriven reports whether publications are triggered by value changes.
func IsChangeDriven(q *SubscriptionQos) bool {
	switch q.Kind {
	case KindOnChange, KindOnChangeWithKeepAlive:
		return true
	case KindPeriodic:
		return false
	}
	return false
}

// AlertInterval returns the missed-publication alert window. ok is false for
// OnChange, for unknown kinds, and when alerting is not configured.
func AlertInterval(q *SubscriptionQos) (ms int64, ok bool) {
	switch q.Kind {
	case KindPeriodic, KindOnChangeWithKeepAlive:
		if q.AlertAfterIntervalMs < 0 {
			return NotApplicable, false
		}
		return q.AlertAfterIntervalMs, true
	case KindOnChange:
		return NotApplicable, false
	}
	return NotApplicable, false
}

// MinInterval returns the minimum interval between publications. Only
// OnChange reports a value.
func MinInterval(q *SubscriptionQos) (ms int64, ok bool) {
	switch q.Kind {
	case KindOnChange:
		return q.MinIntervalMs, true
	case KindPeriodic, KindOnChangeWithKeepAlive:
		return NotApplicable, false
	}
	return NotApplicable, false
}

// PeriodicPublicationInterval returns the expected publication cadence:
// MaxIntervalMs for OnChangeWithKeepAlive, PeriodMs for Periodic.
func PeriodicPublicationInterval(q *SubscriptionQos) (ms int64, ok bool) {
	switch q.Kind {
	case KindOnChangeWithKeepAlive:
		return q.MaxIntervalMs, true
	case KindPeriodic:
		return q.PeriodMs, true
	case KindOnChange:
		return NotApplicable, false
	}
	return NotApplicable, false
}

// AlertIntervalMs is AlertInterval in its wire encoding (NotApplicable when
// absent).
func AlertIntervalMs(q *SubscriptionQos) int64 {
	ms, _ := AlertInterval(q)
	return ms
}

// Validate checks the intervals for the QoS kind.
func (q *SubscriptionQos) Validate() error {
	switch q.Kind {
	case KindOnChange:
		return validateMinInterval(q.MinIntervalMs)

	case KindPeriodic:
		if err := validatePeriod(q.PeriodMs); err != nil {
			return err
		}
		return validateAlert(q.AlertAfterIntervalMs, q.PeriodMs)

	case KindOnChangeWithKeepAlive:
		if err := validateMinInterval(q.MinIntervalMs); err != nil {
			return err
		}
		if err := validatePeriod(q.MaxIntervalMs); err != nil {
			return err
		}
		if q.MaxIntervalMs < q.MinIntervalMs {
			return fmt.Errorf("%w: max interval %dms below min interval %dms",
				ErrInvalidPeriod, q.MaxIntervalMs, q.MinIntervalMs)
		}
		return validateAlert(q.AlertAfterIntervalMs, q.MaxIntervalMs)
	}
	return fmt.Errorf("%w: %d", ErrUnknownKind, q.Kind)
}

func validateMinInterval(ms int64) error {
	if ms < 0 || ms > MaxMinIntervalMs {
		return fmt.Errorf("%w: %dms", ErrInvalidMinInterval, ms)
	}
	return nil
}

func validatePeriod(ms int64) error {
	if ms < MinPeriodMs || ms > MaxPeriodMs {
		return fmt.Errorf("%w: %dms (allowed %d..%d)", ErrInvalidPeriod, ms, MinPeriodMs, MaxPeriodMs)
	}
	return nil
}

// An alert window shorter than the publication cadence would fire on every
// regular publication gap.
func validateAlert(alertMs, cadenceMs int64) error {
	if alertMs == NotApplicable || alertMs == 0 {
		return nil
	}
	if alertMs < 0 || alertMs > MaxAlertAfterIntervalMs {
		return fmt.Errorf("%w: %dms (allowed up to %d)", ErrInvalidAlertInterval, alertMs, MaxAlertAfterIntervalMs)
	}
	if alertMs < cadenceMs {
		return fmt.Errorf("%w: %dms below publication interval %dms", ErrInvalidAlertInterval, alertMs, cadenceMs)
	}
	return nil
}

// String returns a compact description for logs.
func (q *SubscriptionQos) String() string {
	switch q.Kind {
	case KindOnChange:
		return fmt.Sprintf("%s{expiry=%s min=%dms}", q.Kind, q.ExpiryDate, q.MinIntervalMs)
	case KindPeriodic:
		return fmt.Sprintf("%s{expiry=%s period=%dms alert=%dms}", q.Kind, q.ExpiryDate, q.PeriodMs, q.AlertAfterIntervalMs)
	case KindOnChangeWithKeepAlive:
		return fmt.Sprintf("%s{expiry=%s min=%dms max=%dms alert=%dms}",
			q.Kind, q.ExpiryDate, q.MinIntervalMs, q.MaxIntervalMs, q.AlertAfterIntervalMs)
	}
	return q.Kind.String()
}

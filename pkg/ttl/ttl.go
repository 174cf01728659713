package ttl

import (
	"math"
	"strconv"
	"time"
)

// Timestamp is an absolute point in time in milliseconds since the Unix epoch.
type Timestamp int64

// Saturation bounds.
const (
	// Max is the latest representable timestamp. It is used as "never expires".
	Max Timestamp = math.MaxInt64

	// Min is the earliest representable timestamp.
	Min Timestamp = math.MinInt64
)

// MaxAbsolute returns the saturation ceiling, used as "never expires".
func MaxAbsolute() Timestamp {
	return Max
}

// MinAbsolute returns the saturation floor.
func MinAbsolute() Timestamp {
	return Min
}

// Now returns the current time as a Timestamp.
func Now() Timestamp {
	return FromTime(time.Now())
}

// FromTime converts a time.Time to a Timestamp.
func FromTime(t time.Time) Timestamp {
	return Timestamp(t.UnixMilli())
}

// Time converts the timestamp to a UTC time.Time.
// Saturated values map to the corresponding extreme time.Time, which is
// only meaningful for comparisons.
func (ts Timestamp) Time() time.Time {
	return time.UnixMilli(int64(ts)).UTC()
}

// IsMax reports whether ts is the "never expires" ceiling.
func (ts Timestamp) IsMax() bool {
	return ts == Max
}

// Before reports whether ts is earlier than other.
func (ts Timestamp) Before(other Timestamp) bool {
	return ts < other
}

// String returns the timestamp in RFC 3339 form, or "max"/"min" for the
// saturation bounds.
func (ts Timestamp) String() string {
	switch ts {
	case Max:
		return "max"
	case Min:
		return "min"
	}
	return ts.Time().Format(time.RFC3339Nano)
}

// ToAbsolute adds ttlMs to now and saturates on overflow.
func ToAbsolute(ttlMs int64, now Timestamp) Timestamp {
	expiry := Timestamp(int64(now) + ttlMs)

	switch {
	case ttlMs > 0 && expiry < now:
		return Max
	case ttlMs < 0 && expiry > now:
		return Min
	}
	return expiry
}

// AbsoluteFromNow is ToAbsolute relative to the current time.
func AbsoluteFromNow(ttlMs int64) Timestamp {
	return ToAbsolute(ttlMs, Now())
}

// ToRelative returns ts - now in milliseconds. The result is negative when ts
// has already passed. The subtraction saturates at the int64 bounds.
func ToRelative(ts, now Timestamp) int64 {
	a, b := int64(ts), int64(now)
	diff := a - b

	// Overflow iff the operands have different signs and the result's sign
	// differs from a.
	if (a >= 0) != (b >= 0) && (diff >= 0) != (a >= 0) {
		if a >= 0 {
			return math.MaxInt64
		}
		return math.MinInt64
	}
	return diff
}

// RemainingFromNow is ToRelative relative to the current time.
func RemainingFromNow(ts Timestamp) int64 {
	return ToRelative(ts, Now())
}

// ToRelativeString returns ToRelative formatted as a decimal string.
func ToRelativeString(ts, now Timestamp) string {
	return strconv.FormatInt(ToRelative(ts, now), 10)
}

// Remaining returns the time left until ts as a time.Duration, clamped to
// the representable duration range.
func Remaining(ts, now Timestamp) time.Duration {
	return Duration(ToRelative(ts, now))
}

// Duration converts milliseconds to a time.Duration, clamped to the
// representable duration range.
func Duration(ms int64) time.Duration {
	if ms > int64(math.MaxInt64/time.Millisecond) {
		return time.Duration(math.MaxInt64)
	}
	if ms < int64(math.MinInt64/time.Millisecond) {
		return time.Duration(math.MinInt64)
	}
	return time.Duration(ms) * time.Millisecond
}

// Package ttl converts between relative time-to-live values and absolute
// expiry timestamps.
//
// Timestamps are milliseconds since the Unix epoch (UTC). The full int64
// range is usable, which time.Time cannot represent, so conversions saturate
// instead of wrapping:
//
//	expiry := ttl.ToAbsolute(60_000, ttl.Now())  // one minute from now
//	never := ttl.MaxAbsolute()                    // "never expires"
//	remaining := ttl.ToRelative(expiry, ttl.Now())
//
// A positive ttl that overflows yields MaxAbsolute, a negative ttl that
// overflows yields MinAbsolute. A zero ttl returns now unchanged.
package ttl

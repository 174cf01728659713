package qos

import (
	"fmt"
	"strings"
)

// Effort is the messaging delivery effort hint carried by a message.
type Effort uint8

const (
	// EffortNormal uses the transport's configured delivery guarantee.
	EffortNormal Effort = iota

	// EffortBestEffort allows the transport to use its lowest guarantee.
	EffortBestEffort
)

// Effort literals as carried in message headers.
const (
	EffortLiteralNormal     = "NORMAL"
	EffortLiteralBestEffort = "BEST_EFFORT"
)

// String returns the header literal.
func (e Effort) String() string {
	switch e {
	case EffortNormal:
		return EffortLiteralNormal
	case EffortBestEffort:
		return EffortLiteralBestEffort
	default:
		return "UNKNOWN"
	}
}

// ParseEffort parses a header literal (case-insensitive).
func ParseEffort(s string) (Effort, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case EffortLiteralNormal:
		return EffortNormal, nil
	case EffortLiteralBestEffort:
		return EffortBestEffort, nil
	}
	return EffortNormal, fmt.Errorf("unknown messaging effort %q", s)
}

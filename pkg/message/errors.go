package message

import (
	"errors"
	"fmt"
	"time"
)

// ErrMessageNotSent is the base error for messages that were rejected before
// reaching the transport.
var ErrMessageNotSent = errors.New("message not sent")

// FailureFunc receives send failures. It may be called synchronously from
// the send call or later from a transport goroutine.
type FailureFunc func(err error)

// DelayError reports a retryable failure: the message should be sent again
// after Delay.
type DelayError struct {
	// Delay is the suggested backoff before retrying.
	Delay time.Duration

	// Err is the underlying cause.
	Err error
}

func (e *DelayError) Error() string {
	return fmt.Sprintf("%v (retry in %s)", e.Err, e.Delay)
}

func (e *DelayError) Unwrap() error {
	return e.Err
}

// AsDelay returns the DelayError in err's chain, if any.
func AsDelay(err error) (*DelayError, bool) {
	var de *DelayError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

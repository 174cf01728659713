// Package routing delivers outbound messages through a MessageSender and
// retries deliveries that fail with a message.DelayError.
//
// The retry is scheduled on a scheduler.Scheduler after the delay the sender
// suggested, or after an exponential backoff when the suggestion is zero.
// A message whose expiry date passes before the next attempt is failed with
// ErrMessageExpired. Errors that are not DelayErrors go straight to the
// caller's failure callback.
package routing

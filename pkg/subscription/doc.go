// Package subscription tracks active subscriptions on the subscribing side
// and alerts listeners when publications stop arriving.
//
// # Lifecycle
//
// A subscription is ACTIVE from Register until it is unregistered, its
// expiry date passes, or the Manager is closed. Those terminal states are
// not distinguished after the fact: the entry is simply gone.
//
// # Missed-Publication Alerts
//
// Periodic and OnChangeWithKeepAlive subscriptions with a positive alert
// interval get a self-renewing alert task. Each time it fires the listener's
// OnPublicationMissed is called and the task is rescheduled after the same
// interval. The cadence is fixed: publications delivered through
// DeliverPublication do not reset it.
//
// OnChange subscriptions never alert.
//
// # Expiry
//
// A subscription with an expiry date is removed when the date passes, either
// by the alert task that observes it or by a dedicated expiry timer,
// whichever runs first.
//
// # Concurrency
//
// Registry changes and timer-handle updates happen under the Manager's
// mutex. Timer tasks re-check that their entry still exists after taking the
// mutex, so a task racing with Unregister is a no-op. Listener callbacks run
// outside the mutex on the scheduler's goroutine; a notification that has
// already started may complete after Unregister returns.
package subscription

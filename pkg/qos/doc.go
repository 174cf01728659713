// Package qos defines subscription quality-of-service policies and the
// messaging delivery effort hint.
//
// A SubscriptionQos is a closed tagged union over three kinds:
//
//   - OnChange: publications are sent when the value changes, no more often
//     than MinIntervalMs. Never alerts.
//   - Periodic: publications every PeriodMs. Alerts after
//     AlertAfterIntervalMs without a publication.
//   - OnChangeWithKeepAlive: on change, but at least every MaxIntervalMs.
//     Alerts after AlertAfterIntervalMs.
//
// The extraction functions (AlertInterval, MinInterval,
// PeriodicPublicationInterval) switch exhaustively over the kind and report
// "not applicable" with a false second return value.
package qos

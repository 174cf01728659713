// Package mqtt hands outbound messages to an MQTT broker connection.
//
// Sender validates each message against the connection's current limits
// before publishing:
//
//  1. The destination must be a message.MqttAddress.
//  2. The connection must be subscribed to its channel topic; otherwise the
//     failure callback receives a retryable message.DelayError (2s).
//  3. Non-multicast messages go to "<topic>/<priority suffix>".
//  4. Best-effort messages are published with QoS 0.
//  5. The estimated packet size (payload + 32 + topic + per header
//     key + value + 5) must not exceed a nonzero maximum packet size.
//  6. The message expiry is converted to whole seconds, rounding up.
//
// All failures are reported through the failure callback. Sender never
// retries.
package mqtt

// Package loopback provides an in-memory broker connection and a simulated
// subscription provider.
//
// The connection implements mqtt.Connection. Published messages are handed to
// the handler registered for their topic, with the priority suffix stripped,
// on a separate goroutine. The provider answers subscription requests with
// periodic publications so that the subscription and delivery paths can be
// exercised end to end without a broker.
package loopback

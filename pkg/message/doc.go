// Package message defines the outbound message envelope and the routing
// addresses it can be sent to.
//
// An ImmutableMessage carries an already-serialized payload plus the
// envelope data the transport needs: message type, expiry date, delivery
// effort and custom headers. The payload encoding is opaque here.
package message

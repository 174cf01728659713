// Package wire defines the CBOR encoding of subscription messages, addresses
// and message envelopes.
//
// All structures use integer map keys and are encoded deterministically, so
// equal values always produce equal bytes. Decoding is lenient: unknown keys
// are ignored and duplicate keys resolve to the last value.
//
// The RPC payload inside an envelope is opaque to this package.
package wire

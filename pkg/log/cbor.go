package log

import (
	"io"

	"github.com/fxamacker/cbor/v2"
)

var (
	// Timestamps are stored as RFC 3339 strings with nanoseconds so that
	// ordering survives a round trip and the raw file stays readable with
	// generic CBOR tools.
	eventEncMode = mustEncMode(cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeRFC3339Nano,
	})

	// Logs written by newer versions may carry keys this version does not
	// know; they are skipped.
	eventDecMode = mustDecMode(cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyQuiet,
		IndefLength: cbor.IndefLengthAllowed,
	})
)

func mustEncMode(opts cbor.EncOptions) cbor.EncMode {
	m, err := opts.EncMode()
	if err != nil {
		panic("log: " + err.Error())
	}
	return m
}

func mustDecMode(opts cbor.DecOptions) cbor.DecMode {
	m, err := opts.DecMode()
	if err != nil {
		panic("log: " + err.Error())
	}
	return m
}

// EncodeEvent encodes one event as a CBOR record.
func EncodeEvent(event Event) ([]byte, error) {
	return eventEncMode.Marshal(event)
}

// DecodeEvent decodes one CBOR record.
func DecodeEvent(data []byte) (Event, error) {
	var event Event
	err := eventDecMode.Unmarshal(data, &event)
	return event, err
}

// NewDecoder returns a decoder for a stream of event records.
func NewDecoder(r io.Reader) *cbor.Decoder {
	return eventDecMode.NewDecoder(r)
}

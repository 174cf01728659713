package wire

import (
	"errors"

	"github.com/fxamacker/cbor/v2"
)

// ErrInvalid is returned when decoded data is structurally valid CBOR but
// does not describe a valid value.
var ErrInvalid = errors.New("wire: invalid value")

// Decode limits for data received from the broker.
const (
	maxNestedLevels = 16
	maxContainerLen = 4096
)

var (
	// Canonical encoding makes equal values produce equal bytes, so
	// EstimateSize and packet limits see stable sizes.
	encMode = mustEncMode(cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
	})

	decMode = mustDecMode(cbor.DecOptions{
		DupMapKey:        cbor.DupMapKeyEnforcedAPF,
		IndefLength:      cbor.IndefLengthForbidden,
		MaxNestedLevels:  maxNestedLevels,
		MaxArrayElements: maxContainerLen,
		MaxMapPairs:      maxContainerLen,
	})
)

func mustEncMode(opts cbor.EncOptions) cbor.EncMode {
	m, err := opts.EncMode()
	if err != nil {
		panic("wire: " + err.Error())
	}
	return m
}

func mustDecMode(opts cbor.DecOptions) cbor.DecMode {
	m, err := opts.DecMode()
	if err != nil {
		panic("wire: " + err.Error())
	}
	return m
}

// Marshal encodes v in canonical CBOR.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes data into v. Duplicate map keys, indefinite-length
// items and oversized containers are rejected.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

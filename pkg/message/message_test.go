package message

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mash-protocol/mash-rpc/pkg/qos"
	"github.com/mash-protocol/mash-rpc/pkg/ttl"
)

func TestNew(t *testing.T) {
	before := ttl.Now()
	m := New(TypeRequest, []byte("hello"), 60_000,
		WithParticipants("proxy-1", "provider-1"),
		WithHeader("trace", "abc"),
	)

	assert.NotEmpty(t, m.ID)
	assert.Equal(t, TypeRequest, m.Type)
	assert.Equal(t, "proxy-1", m.Sender)
	assert.Equal(t, "provider-1", m.Recipient)
	assert.GreaterOrEqual(t, int64(m.ExpiryDate), int64(before)+60_000)
	assert.False(t, m.IsBestEffort())
	assert.False(t, m.IsExpired(before))

	other := New(TypeRequest, nil, 0)
	assert.NotEqual(t, m.ID, other.ID)
}

func TestEffort(t *testing.T) {
	m := New(TypeOneWay, nil, 1000, WithEffort(qos.EffortBestEffort))
	assert.True(t, m.IsBestEffort())

	m = New(TypeOneWay, nil, 1000, WithEffort(qos.EffortNormal))
	assert.False(t, m.IsBestEffort())
}

func TestPrefixedCustomHeaders(t *testing.T) {
	m := New(TypeRequest, nil, 1000, WithHeader("a", "1"), WithHeader("bb", "22"))

	assert.Equal(t, map[string]string{"c-a": "1", "c-bb": "22"}, m.PrefixedCustomHeaders())
	assert.Equal(t, map[string]string{"a": "1", "bb": "22"}, m.CustomHeaders, "original headers untouched")
	assert.Nil(t, New(TypeRequest, nil, 1000).PrefixedCustomHeaders())
}

func TestIsMulticast(t *testing.T) {
	assert.True(t, TypeMulticast.IsMulticast())
	assert.False(t, TypePublication.IsMulticast())
	assert.False(t, TypeRequest.IsMulticast())
}

func TestString(t *testing.T) {
	m := &ImmutableMessage{ID: "m1", Type: TypeReply, Payload: []byte("xyz"), ExpiryDate: ttl.Max}
	m.CustomHeaders = map[string]string{"z": "1", "a": "2"}

	s := m.String()
	assert.Contains(t, s, "id=m1")
	assert.Contains(t, s, "size=3")
	assert.Contains(t, s, "expiry=max")
	assert.Less(t, strings.Index(s, " a=2"), strings.Index(s, " z=1"), "headers are sorted")
	assert.NotContains(t, s, "xyz")
}

func TestAddressKinds(t *testing.T) {
	var addrs = []Address{
		&MqttAddress{BrokerURI: "tcp://broker:1883", Topic: "clients/1"},
		&ChannelAddress{MessagingEndpointURL: "http://bounce/", ChannelID: "ch"},
		&InProcessAddress{ParticipantID: "p"},
	}
	want := []AddressKind{KindMqtt, KindChannel, KindInProcess}

	for i, a := range addrs {
		assert.Equal(t, want[i], a.Kind())
		assert.NotEmpty(t, a.String())
	}
	assert.Equal(t, "UNKNOWN", AddressKind(0).String())
}

package wire

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mash-protocol/mash-rpc/pkg/message"
	"github.com/mash-protocol/mash-rpc/pkg/qos"
	"github.com/mash-protocol/mash-rpc/pkg/subscription"
)

func TestSubscriptionRequest(t *testing.T) {
	req := &subscription.Request{
		SubscribeToName: "location",
		SubscriptionID:  "sub-1",
		Qos:             qos.NewPeriodic(1_700_000_001_100, 100, 200),
	}

	data, err := EncodeSubscriptionRequest(req)
	require.NoError(t, err)

	got, err := DecodeSubscriptionRequest(data)
	require.NoError(t, err)
	assert.Equal(t, req, got)

	again, err := EncodeSubscriptionRequest(got)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(data, again), "encoding must be deterministic")
}

func TestSubscriptionRequestValidation(t *testing.T) {
	tests := []struct {
		name string
		req  subscription.Request
	}{
		{"missing id", subscription.Request{SubscribeToName: "x", Qos: qos.NewOnChange(-1, 0)}},
		{"missing name", subscription.Request{SubscriptionID: "s", Qos: qos.NewOnChange(-1, 0)}},
		{"missing qos", subscription.Request{SubscriptionID: "s", SubscribeToName: "x"}},
		{"invalid qos", subscription.Request{SubscriptionID: "s", SubscribeToName: "x", Qos: qos.NewPeriodic(-1, 1, -1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EncodeSubscriptionRequest(&tt.req)
			assert.ErrorIs(t, err, ErrInvalid)

			data, err := Marshal(tt.req)
			require.NoError(t, err)
			_, err = DecodeSubscriptionRequest(data)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}

	_, err := DecodeSubscriptionRequest([]byte{0xff})
	assert.Error(t, err)
}

func TestPublication(t *testing.T) {
	p, err := NewPublication("sub-1", map[string]int{"speed": 42})
	require.NoError(t, err)

	data, err := EncodePublication(p)
	require.NoError(t, err)

	got, err := DecodePublication(data)
	require.NoError(t, err)
	assert.Equal(t, "sub-1", got.SubscriptionID)

	var value map[string]int
	require.NoError(t, got.DecodeValue(&value))
	assert.Equal(t, 42, value["speed"])

	_, err = EncodePublication(&Publication{})
	assert.ErrorIs(t, err, ErrInvalid)

	errPub := &Publication{SubscriptionID: "sub-1", Error: "provider failed"}
	data, err = EncodePublication(errPub)
	require.NoError(t, err)
	got, err = DecodePublication(data)
	require.NoError(t, err)
	assert.Equal(t, "provider failed", got.Error)
	assert.ErrorIs(t, got.DecodeValue(&value), ErrInvalid)
}

func TestSubscriptionStop(t *testing.T) {
	data, err := EncodeSubscriptionStop(&SubscriptionStop{SubscriptionID: "sub-1"})
	require.NoError(t, err)

	got, err := DecodeSubscriptionStop(data)
	require.NoError(t, err)
	assert.Equal(t, "sub-1", got.SubscriptionID)

	empty, err := Marshal(SubscriptionStop{})
	require.NoError(t, err)
	_, err = DecodeSubscriptionStop(empty)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestAddress(t *testing.T) {
	addrs := []message.Address{
		&message.MqttAddress{BrokerURI: "tcp://broker:1883", Topic: "a/b"},
		&message.ChannelAddress{MessagingEndpointURL: "http://bounce", ChannelID: "ch-1"},
		&message.InProcessAddress{ParticipantID: "p-1"},
	}
	for _, addr := range addrs {
		t.Run(addr.Kind().String(), func(t *testing.T) {
			data, err := EncodeAddress(addr)
			require.NoError(t, err)

			got, err := DecodeAddress(data)
			require.NoError(t, err)
			assert.Equal(t, addr, got)
		})
	}

	_, err := EncodeAddress(nil)
	assert.ErrorIs(t, err, ErrInvalid)

	bad, err := Marshal(addressWire{Kind: 99})
	require.NoError(t, err)
	_, err = DecodeAddress(bad)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestMessageEnvelope(t *testing.T) {
	msg := message.New(message.TypeRequest, []byte{1, 2, 3}, 5000,
		message.WithParticipants("alice", "bob"),
		message.WithEffort(qos.EffortBestEffort),
		message.WithHeader("trace", "abc"))

	data, err := EncodeMessage(msg)
	require.NoError(t, err)

	got, err := DecodeMessage(data)
	require.NoError(t, err)
	assert.Equal(t, msg, got)
	assert.True(t, got.IsBestEffort())

	plain := message.New(message.TypeMulticast, nil, 100)
	data, err = EncodeMessage(plain)
	require.NoError(t, err)
	got, err = DecodeMessage(data)
	require.NoError(t, err)
	assert.Nil(t, got.Effort)
	assert.Equal(t, message.TypeMulticast, got.Type)

	_, err = EncodeMessage(&message.ImmutableMessage{})
	assert.ErrorIs(t, err, ErrInvalid)

	badEffort, err := Marshal(envelope{ID: "x", Type: "rq", Effort: "LOUD"})
	require.NoError(t, err)
	_, err = DecodeMessage(badEffort)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestCodecRejectsNonCanonicalInput(t *testing.T) {
	var stop SubscriptionStop

	dup := []byte{0xa2, 0x01, 0x61, 'a', 0x01, 0x61, 'b'}
	assert.Error(t, Unmarshal(dup, &stop), "duplicate map key")

	indef := []byte{0xbf, 0x01, 0x61, 'a', 0xff}
	assert.Error(t, Unmarshal(indef, &stop), "indefinite-length map")

	require.NoError(t, Unmarshal([]byte{0xa1, 0x01, 0x61, 'a'}, &stop))
	assert.Equal(t, "a", stop.SubscriptionID)
}

func TestCodecIsDeterministic(t *testing.T) {
	v := map[string]int{"bb": 1, "a": 2, "c": 3}

	first, err := Marshal(v)
	require.NoError(t, err)
	for range 10 {
		again, err := Marshal(v)
		require.NoError(t, err)
		assert.True(t, bytes.Equal(first, again))
	}
	assert.Equal(t, []byte{0xa3, 0x61, 'a'}, first[:3])
}

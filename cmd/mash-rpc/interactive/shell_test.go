package interactive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mash-protocol/mash-rpc/pkg/qos"
	"github.com/mash-protocol/mash-rpc/pkg/subscription"
	"github.com/mash-protocol/mash-rpc/pkg/ttl"
)

func TestParseQos(t *testing.T) {
	now := ttl.Timestamp(1_000_000)

	tests := []struct {
		name string
		kind string
		args []string
		want *qos.SubscriptionQos
	}{
		{
			name: "periodic",
			kind: "periodic",
			args: []string{"100"},
			want: qos.NewPeriodic(qos.NoExpiry, 100, 0),
		},
		{
			name: "periodic with alert and expiry",
			kind: "PERIODIC",
			args: []string{"100", "300", "5000"},
			want: qos.NewPeriodic(1_005_000, 100, 300),
		},
		{
			name: "onchange defaults",
			kind: "onchange",
			want: qos.NewOnChange(qos.NoExpiry, 0),
		},
		{
			name: "onchange with min interval",
			kind: "onchange",
			args: []string{"20", "0"},
			want: qos.NewOnChange(qos.NoExpiry, 20),
		},
		{
			name: "keepalive",
			kind: "keepalive",
			args: []string{"10", "200", "400", "1000"},
			want: qos.NewOnChangeWithKeepAlive(1_001_000, 10, 200, 400),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseQos(tt.kind, tt.args, now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseQosErrors(t *testing.T) {
	now := ttl.Timestamp(0)

	_, err := ParseQos("periodic", nil, now)
	assert.Error(t, err)

	_, err = ParseQos("keepalive", []string{"10"}, now)
	assert.Error(t, err)

	_, err = ParseQos("periodic", []string{"abc"}, now)
	assert.Error(t, err)

	_, err = ParseQos("sometimes", nil, now)
	assert.Error(t, err)

	_, err = ParseQos("periodic", []string{"1"}, now)
	assert.ErrorIs(t, err, qos.ErrInvalidPeriod)

	_, err = ParseQos("periodic", []string{"100", "50"}, now)
	assert.ErrorIs(t, err, qos.ErrInvalidAlertInterval)
}

func TestResolveID(t *testing.T) {
	infos := []subscription.Info{
		{ID: "abc123"},
		{ID: "abd456"},
		{ID: "ab"},
	}

	id, err := ResolveID("abc", infos)
	require.NoError(t, err)
	assert.Equal(t, "abc123", id)

	id, err = ResolveID("ab", infos)
	require.NoError(t, err)
	assert.Equal(t, "ab", id)

	_, err = ResolveID("abx", infos)
	assert.ErrorIs(t, err, subscription.ErrSubscriptionNotFound)

	_, err = ResolveID("a", infos)
	assert.ErrorIs(t, err, ErrAmbiguousID)
}

package message

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDelayError(t *testing.T) {
	cause := errors.New("not connected")
	err := fmt.Errorf("send: %w", &DelayError{Delay: 2 * time.Second, Err: cause})

	de, ok := AsDelay(err)
	assert.True(t, ok)
	assert.Equal(t, 2*time.Second, de.Delay)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "not connected (retry in 2s)", de.Error())

	_, ok = AsDelay(cause)
	assert.False(t, ok)
}

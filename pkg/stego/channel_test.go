package stego

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhysLogicalBijection(t *testing.T) {
	t.Parallel()

	for l := 0; l < 4096; l++ {
		p := physIndex(l)
		assert.NotEqual(t, 3, p%4, "logical %d mapped onto an alpha byte", l)
		back, ok := logicalIndex(p)
		require.True(t, ok)
		assert.Equal(t, l, back)
	}
}

func TestLogicalIndexRejectsAlpha(t *testing.T) {
	t.Parallel()

	for p := 3; p < 256; p += 4 {
		_, ok := logicalIndex(p)
		assert.False(t, ok, "phys %d is alpha", p)
	}
}

func TestCapacityChannels(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 3, CapacityChannels(1, 1))
	assert.Equal(t, 12288, CapacityChannels(64, 64))
	assert.Equal(t, 3072, CapacityChannels(32, 32))
}

func TestMaxPayloadBytes(t *testing.T) {
	t.Parallel()

	// (3wh - 272 - 128) / 8, floored at zero.
	assert.Equal(t, 0, MaxPayloadBytes(1, 1))
	assert.Equal(t, 0, MaxPayloadBytes(10, 1))
	assert.Equal(t, 334, MaxPayloadBytes(32, 32))
	assert.Equal(t, 1486, MaxPayloadBytes(64, 64))
}

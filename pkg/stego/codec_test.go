package stego

import (
	"bytes"
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newCarrier builds a w*h RGBA buffer with every byte set to fill.
func newCarrier(w, h int, fill byte) []byte {
	buf := make([]byte, 4*w*h)
	for i := range buf {
		buf[i] = fill
	}
	return buf
}

// assertMinimalPerturbation verifies alpha bytes are untouched and RGB
// bytes differ from the original in bit 0 only.
func assertMinimalPerturbation(t *testing.T, before, after []byte) {
	t.Helper()
	require.Len(t, after, len(before))
	for i := range before {
		if i%4 == 3 {
			assert.Equal(t, before[i], after[i], "alpha byte %d changed", i)
		} else if diff := before[i] ^ after[i]; diff&^1 != 0 {
			t.Fatalf("byte %d changed outside bit 0: %#02x -> %#02x", i, before[i], after[i])
		}
	}
}

func TestOpenRoundTrip(t *testing.T) {
	t.Parallel()

	codec := NewCodec()
	buf := newCarrier(64, 64, 255)
	before := bytes.Clone(buf)

	require.NoError(t, codec.Encode(context.Background(), buf, 64, 64, "hello", "", nil))

	sig, err := codec.Scan(buf, 64, 64)
	require.NoError(t, err)
	assert.Equal(t, SignatureOpen, sig)

	assertMinimalPerturbation(t, before, buf)

	text, err := codec.Decode(context.Background(), buf, 64, 64, "", nil)
	require.NoError(t, err)
	assert.Equal(t, "hello", text)
}

func TestLockedRoundTrip(t *testing.T) {
	t.Parallel()

	codec := NewCodec()
	buf := newCarrier(64, 64, 255)

	require.NoError(t, codec.Encode(context.Background(), buf, 64, 64, "top secret", "correct horse", nil))

	sig, err := codec.Scan(buf, 64, 64)
	require.NoError(t, err)
	assert.Equal(t, SignatureLocked, sig)

	_, err = codec.Decode(context.Background(), buf, 64, 64, "", nil)
	code, ok := CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, ErrWrongPasswordOrTampered, code)

	text, err := codec.Decode(context.Background(), buf, 64, 64, "correct horse", nil)
	require.NoError(t, err)
	assert.Equal(t, "top secret", text)
}

func TestScanNegative(t *testing.T) {
	t.Parallel()

	codec := NewCodec()

	// All-0xFF LSBs spell 0xFFFF, which is neither signature.
	sig, err := codec.Scan(newCarrier(8, 8, 255), 8, 8)
	require.NoError(t, err)
	assert.Equal(t, SignatureNone, sig)

	// One pixel cannot even hold the 16 signature bits.
	sig, err = codec.Scan(newCarrier(1, 1, 0), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, SignatureNone, sig)
}

func TestEncodeCapacityExceeded(t *testing.T) {
	t.Parallel()

	codec := NewCodec()

	err := codec.Encode(context.Background(), newCarrier(1, 1, 0), 1, 1, "x", "", nil)
	code, ok := CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, ErrCapacityExceeded, code)

	// One byte past the predicted capacity of a 32x32 carrier.
	over := make([]byte, MaxPayloadBytes(32, 32)+1)
	for i := range over {
		over[i] = 'a'
	}
	err = codec.Encode(context.Background(), newCarrier(32, 32, 0), 32, 32, string(over), "", nil)
	code, ok = CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, ErrCapacityExceeded, code)
}

func TestCapacityBoundaryRoundTrip(t *testing.T) {
	t.Parallel()

	// A 32x32 carrier holds exactly (3*1024 - 272 - 128)/8 = 334 bytes.
	codec := NewCodec()
	buf := newCarrier(32, 32, 0x80)

	payload := make([]byte, MaxPayloadBytes(32, 32))
	for i := range payload {
		payload[i] = byte('a' + i%26)
	}

	require.NoError(t, codec.Encode(context.Background(), buf, 32, 32, string(payload), "", nil))

	text, err := codec.Decode(context.Background(), buf, 32, 32, "", nil)
	require.NoError(t, err)
	assert.Equal(t, string(payload), text)
}

func TestDecodeNoSignature(t *testing.T) {
	t.Parallel()

	codec := NewCodec()

	_, err := codec.Decode(context.Background(), newCarrier(32, 32, 255), 32, 32, "", nil)
	code, ok := CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, ErrNoSignature, code)

	// Too small for a header at all.
	_, err = codec.Decode(context.Background(), newCarrier(2, 2, 0), 2, 2, "", nil)
	code, ok = CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, ErrNoSignature, code)
}

func TestDecodeCorruptHeader(t *testing.T) {
	t.Parallel()

	codec := NewCodec()
	buf := newCarrier(32, 32, 0)
	require.NoError(t, codec.Encode(context.Background(), buf, 32, 32, "hi", "", nil))

	// Zero out the 32-bit length field (logical channels 240..271).
	require.NoError(t, writeBits(buf, headerBits-lengthBits, []byte{0, 0, 0, 0}))

	_, err := codec.Decode(context.Background(), buf, 32, 32, "", nil)
	code, ok := CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, ErrCorruptHeader, code)

	// A declared length beyond the body capacity is equally corrupt.
	require.NoError(t, writeBits(buf, headerBits-lengthBits, []byte{0xFF, 0xFF, 0xFF, 0xF8}))
	_, err = codec.Decode(context.Background(), buf, 32, 32, "", nil)
	code, ok = CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, ErrCorruptHeader, code)
}

func TestTamperDetection(t *testing.T) {
	t.Parallel()

	codec := NewCodec()
	buf := newCarrier(64, 64, 255)
	require.NoError(t, codec.Encode(context.Background(), buf, 64, 64, "hello", "pw", nil))

	// Locate the first scattered ciphertext bit from the recovered salt and
	// flip it.
	hdr, err := readHeader(buf)
	require.NoError(t, err)
	body := CapacityChannels(64, 64) - headerBits
	seq := newScatterSequence(scatterSeed(hdr.salt[:]), body, int(hdr.payloadBits))
	idx, ok := seq.next(body)
	require.True(t, ok)

	buf[physIndex(headerBits+idx)] ^= 1

	_, err = codec.Decode(context.Background(), buf, 64, 64, "pw", nil)
	code, ok := CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, ErrWrongPasswordOrTampered, code)
}

func TestAlphaPreservedRandomCarrier(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	buf := make([]byte, 4*64*64)
	for i := range buf {
		buf[i] = byte(rng.Intn(256))
	}
	before := bytes.Clone(buf)

	codec := NewCodec()
	require.NoError(t, codec.Encode(context.Background(), buf, 64, 64, "alpha check", "", nil))

	assertMinimalPerturbation(t, before, buf)
}

func TestProgressMonotonic(t *testing.T) {
	t.Parallel()

	codec := NewCodec()
	buf := newCarrier(64, 64, 0)

	var percents []int
	progress := func(p int) { percents = append(percents, p) }

	require.NoError(t, codec.Encode(context.Background(), buf, 64, 64, "progress message", "", progress))

	require.NotEmpty(t, percents)
	for i := 1; i < len(percents); i++ {
		assert.GreaterOrEqual(t, percents[i], percents[i-1])
	}
	assert.Equal(t, 100, percents[len(percents)-1])
}

func TestEncodeCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	codec := NewCodec()
	buf := newCarrier(64, 64, 0)
	err := codec.Encode(ctx, buf, 64, 64, "never lands", "", nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestValidateCarrier(t *testing.T) {
	t.Parallel()

	codec := NewCodec()

	_, err := codec.Scan(make([]byte, 5), 1, 1)
	code, ok := CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, ErrOutOfRange, code)

	err = codec.Encode(context.Background(), nil, 0, 0, "x", "", nil)
	code, ok = CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, ErrOutOfRange, code)
}

func TestCodecStateIdleBetweenOperations(t *testing.T) {
	t.Parallel()

	codec := NewCodec()
	assert.Equal(t, StateIdle, codec.State())

	buf := newCarrier(16, 16, 0)
	require.NoError(t, codec.Encode(context.Background(), buf, 16, 16, "s", "", nil))
	assert.Equal(t, StateIdle, codec.State())
}

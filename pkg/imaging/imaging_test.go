package imaging

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLayout(t *testing.T) {
	t.Parallel()

	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{R: 40, G: 50, B: 60, A: 255})

	pix, w, h := Normalize(img)
	assert.Equal(t, 2, w)
	assert.Equal(t, 1, h)
	assert.Equal(t, []byte{10, 20, 30, 255, 40, 50, 60, 255}, pix)
}

func TestNormalizeOffsetBounds(t *testing.T) {
	t.Parallel()

	// Subimages with non-zero minimum must land at origin.
	img := image.NewRGBA(image.Rect(5, 5, 7, 6))
	img.SetRGBA(5, 5, color.RGBA{R: 1, G: 2, B: 3, A: 255})

	pix, w, h := Normalize(img)
	assert.Equal(t, 2, w)
	assert.Equal(t, 1, h)
	assert.Equal(t, []byte{1, 2, 3, 255}, pix[:4])
}

func TestPNGRoundTrip(t *testing.T) {
	t.Parallel()

	pix := make([]byte, 4*3*2)
	for i := range pix {
		pix[i] = byte(i * 7)
	}
	// PNG stores straight alpha; keep alpha opaque so the premultiplied
	// RGBA values survive the container untouched.
	for i := 3; i < len(pix); i += 4 {
		pix[i] = 255
	}

	var buf bytes.Buffer
	require.NoError(t, EncodePNG(&buf, pix, 3, 2))

	got, w, h, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 3, w)
	assert.Equal(t, 2, h)
	assert.Equal(t, pix, got)
}

func TestEncodePNGSizeMismatch(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := EncodePNG(&buf, make([]byte, 7), 2, 2)
	assert.Error(t, err)
}

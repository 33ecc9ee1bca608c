// Package imaging converts between image files and the raw RGBA carrier
// layout the codec works on: 4 bytes per pixel, row-major, alpha last.
//
// PNG and JPEG decode are supported as input. Output is always PNG; a lossy
// container would destroy the LSB plane the payload lives in.
package imaging

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
)

// Normalize flattens any decoded image into the carrier layout and returns
// the pixel buffer plus dimensions.
func Normalize(img image.Image) ([]byte, int, int) {
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	return rgba.Pix, bounds.Dx(), bounds.Dy()
}

// Decode reads a PNG or JPEG stream and normalizes it into a carrier
// buffer.
func Decode(r io.Reader) ([]byte, int, int, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("image decode: %w", err)
	}
	pix, w, h := Normalize(img)
	return pix, w, h, nil
}

// EncodePNG wraps a carrier buffer back into a lossless PNG container.
func EncodePNG(w io.Writer, pix []byte, width, height int) error {
	if len(pix) != 4*width*height {
		return fmt.Errorf("pixel buffer of %d bytes does not match %dx%d", len(pix), width, height)
	}
	img := &image.RGBA{
		Pix:    pix,
		Stride: 4 * width,
		Rect:   image.Rect(0, 0, width, height),
	}
	return png.Encode(w, img)
}

// LoadCarrier reads an image file into a carrier buffer.
func LoadCarrier(path string) ([]byte, int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("open carrier: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// SavePNG writes a carrier buffer to a PNG file.
func SavePNG(path string, pix []byte, width, height int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()
	if err := EncodePNG(f, pix, width, height); err != nil {
		return err
	}
	return f.Close()
}

package imagefile

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestNormalize_ShrinksLargePNGToJPEG(t *testing.T) {
	img, err := NewNormalizer(100, 0).Normalize(pngBytes(t, 400, 200))
	require.NoError(t, err)

	assert.Equal(t, "image/jpeg", img.MIME)
	assert.Equal(t, "image/png", img.SourceMIME)
	assert.Equal(t, 100, img.Width)
	assert.Equal(t, 50, img.Height)
	assert.Equal(t, []byte{0xff, 0xd8}, img.Data[:2])
}

func TestNormalize_KeepsSmallImageSize(t *testing.T) {
	img, err := NewNormalizer(1024, 0).Normalize(pngBytes(t, 64, 32))
	require.NoError(t, err)

	assert.Equal(t, 64, img.Width)
	assert.Equal(t, 32, img.Height)
}

func TestNormalize_RejectsOtherContent(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"plain text", []byte("definitely not an image")},
		{"gif", []byte("GIF89a\x01\x00\x01\x00\x00\x00\x00;")},
		{"pdf", []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewNormalizer(100, 0).Normalize(tt.data)

			var ute *UnsupportedTypeError
			require.True(t, errors.As(err, &ute))
			assert.Contains(t, err.Error(), "allowed: jpeg, png")
		})
	}
}

func TestNormalize_Empty(t *testing.T) {
	_, err := NewNormalizer(100, 0).Normalize(nil)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestNormalize_CorruptPNG(t *testing.T) {
	data := pngBytes(t, 10, 10)[:30]

	_, err := NewNormalizer(100, 0).Normalize(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "image decode failed")
}

func TestNormalize_RejectsOversizedCanvasBeforeDecoding(t *testing.T) {
	// A flat gray canvas compresses to a tiny upload.
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 12000, 12000))))
	require.Less(t, buf.Len(), 1<<20)

	_, err := NewNormalizer(1024, 40_000_000).Normalize(buf.Bytes())

	var tle *TooLargeError
	require.True(t, errors.As(err, &tle))
	assert.Equal(t, 12000, tle.Width)
	assert.Equal(t, 12000, tle.Height)
	assert.Contains(t, err.Error(), "more than 40000000 pixels")
}

func TestNormalize_PixelCapAllowsImagesAtTheLimit(t *testing.T) {
	img, err := NewNormalizer(1024, 64*32).Normalize(pngBytes(t, 64, 32))
	require.NoError(t, err)
	assert.Equal(t, 64, img.Width)
}

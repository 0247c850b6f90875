// Package imagefile checks uploaded images by content and shrinks them to a
// JPEG thumbnail before they are sent to a captioner.
package imagefile

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	"ai-forms/internal/application/port/output"
	"ai-forms/internal/domain/entity"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
)

var _ output.ImageNormalizer = (*Normalizer)(nil)

var ErrEmpty = errors.New("image is empty")

var allowedTypes = []string{"image/jpeg", "image/png"}

type UnsupportedTypeError struct {
	Detected string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported image type %s (allowed: jpeg, png)", e.Detected)
}

// TooLargeError reports an image whose declared canvas exceeds the pixel cap.
// The check runs on the header alone, before any pixel data is decoded.
type TooLargeError struct {
	Width, Height int
	MaxPixels     int
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("image is %dx%d, more than %d pixels allowed", e.Width, e.Height, e.MaxPixels)
}

type Normalizer struct {
	maxSide   int
	maxPixels int
	quality   int
}

// NewNormalizer builds a normalizer; maxPixels <= 0 disables the size cap.
func NewNormalizer(maxSide, maxPixels int) *Normalizer {
	return &Normalizer{maxSide: maxSide, maxPixels: maxPixels, quality: 85}
}

// Normalize sniffs data, rejects anything but JPEG and PNG, rejects canvases
// above maxPixels, applies EXIF orientation and fits the image inside
// maxSide x maxSide.
func (n *Normalizer) Normalize(data []byte) (*entity.Image, error) {
	if len(data) == 0 {
		return nil, ErrEmpty
	}

	mtype := mimetype.Detect(data)
	if !mimetype.EqualsAny(mtype.String(), allowedTypes...) {
		return nil, &UnsupportedTypeError{Detected: mtype.String()}
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("image decode failed: %w", err)
	}
	if n.maxPixels > 0 && int64(cfg.Width)*int64(cfg.Height) > int64(n.maxPixels) {
		return nil, &TooLargeError{Width: cfg.Width, Height: cfg.Height, MaxPixels: n.maxPixels}
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("image decode failed: %w", err)
	}

	b := img.Bounds()
	if n.maxSide > 0 && (b.Dx() > n.maxSide || b.Dy() > n.maxSide) {
		img = imaging.Fit(img, n.maxSide, n.maxSide, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, img, imaging.JPEG, imaging.JPEGQuality(n.quality)); err != nil {
		return nil, fmt.Errorf("jpeg encode failed: %w", err)
	}

	return &entity.Image{
		Data:       buf.Bytes(),
		MIME:       "image/jpeg",
		SourceMIME: mtype.String(),
		Width:      img.Bounds().Dx(),
		Height:     img.Bounds().Dy(),
	}, nil
}

// Package caption holds the offline captioner used when no vision model is
// configured.
package caption

import (
	"context"

	"ai-forms/internal/application/port/output"
	"ai-forms/internal/domain/entity"
)

var _ output.CaptionerPort = (*Stub)(nil)

// Stub returns the same demo caption for every image.
type Stub struct {
	text string
}

func NewStub(text string) *Stub {
	return &Stub{text: text}
}

func (s *Stub) Caption(ctx context.Context, img entity.Image) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.text, nil
}

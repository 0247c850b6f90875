package output

import (
	"context"

	"ai-forms/internal/domain/entity"
)

type ImageNormalizer interface {
	Normalize(data []byte) (*entity.Image, error)
}

type CaptionerPort interface {
	Caption(ctx context.Context, img entity.Image) (string, error)
}

package formservice

import (
	"context"

	"ai-forms/internal/application/port/output"
	"ai-forms/internal/domain/entity"
)

var _ output.ServicePort = (*ImageCaptionService)(nil)

type ImageCaptionService struct {
	normalizer output.ImageNormalizer
	captioner  output.CaptionerPort
}

func NewImageCaptionService(normalizer output.ImageNormalizer, captioner output.CaptionerPort) *ImageCaptionService {
	return &ImageCaptionService{
		normalizer: normalizer,
		captioner:  captioner,
	}
}

func (s *ImageCaptionService) Descriptor() entity.Descriptor {
	return entity.Descriptor{
		ID:          entity.ServiceImageCaption,
		DisplayName: "Image Captioning",
		Description: "Describes an uploaded JPEG or PNG image.",
		Icon:        "🖼️",
	}
}

func (s *ImageCaptionService) Fields() []entity.FieldSpec {
	return []entity.FieldSpec{
		{
			Name: "image", Label: "Image", Kind: entity.FieldFile, Required: true,
			Accept: []string{"image/jpeg", "image/png"},
		},
	}
}

func (s *ImageCaptionService) Execute(ctx context.Context, in entity.Input) entity.Outcome {
	v, verr := validate(s.Fields(), in)
	if verr != nil {
		return verr
	}

	img, err := s.normalizer.Normalize(v.bytes("image"))
	if err != nil {
		return entity.NewValidationError("image", "image could not be used: %v", err)
	}

	caption, err := s.captioner.Caption(ctx, *img)
	if err != nil {
		return asTransportError(err)
	}

	return &entity.Success{
		Message:     "Caption generated",
		ContentType: entity.ContentTypePlain,
		Raw:         caption,
	}
}

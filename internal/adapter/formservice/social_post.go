package formservice

import (
	"context"

	"ai-forms/internal/application/port/output"
	"ai-forms/internal/domain/entity"
)

var _ output.ServicePort = (*SocialPostService)(nil)

type SocialPostService struct {
	hook output.WebhookPort
	url  string
}

func NewSocialPostService(hook output.WebhookPort, url string) *SocialPostService {
	return &SocialPostService{hook: hook, url: url}
}

func (s *SocialPostService) Descriptor() entity.Descriptor {
	return entity.Descriptor{
		ID:          entity.ServiceSocialPost,
		DisplayName: "SNS Auto Post",
		Description: "Asks an automation to draft and publish an SNS post about a keyword.",
		Icon:        "📣",
	}
}

func (s *SocialPostService) Fields() []entity.FieldSpec {
	return []entity.FieldSpec{
		{Name: "keyword", Label: "Keyword", Kind: entity.FieldText, Required: true},
	}
}

func (s *SocialPostService) Execute(ctx context.Context, in entity.Input) entity.Outcome {
	v, verr := validate(s.Fields(), in)
	if verr != nil {
		return verr
	}

	payload := map[string]any{"keyword": v.str("keyword")}
	return postWebhook(ctx, s.hook, s.url, payload, "Post request sent")
}

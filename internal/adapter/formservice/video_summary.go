package formservice

import (
	"context"
	"regexp"

	"ai-forms/internal/application/port/output"
	"ai-forms/internal/domain/entity"
)

var _ output.ServicePort = (*VideoSummaryService)(nil)

// YouTubeURLPattern accepts watch URLs and youtu.be short links with an
// 11-character video id. Trailing parameters are allowed.
const YouTubeURLPattern = `^(https?://)?(www\.)?(youtube\.com/watch\?v=|youtu\.be/)([A-Za-z0-9_-]{11})`

var youtubeURL = regexp.MustCompile(YouTubeURLPattern)

type VideoSummaryService struct {
	hook output.WebhookPort
	url  string
}

func NewVideoSummaryService(hook output.WebhookPort, url string) *VideoSummaryService {
	return &VideoSummaryService{hook: hook, url: url}
}

func (s *VideoSummaryService) Descriptor() entity.Descriptor {
	return entity.Descriptor{
		ID:          entity.ServiceVideoSummary,
		DisplayName: "YouTube Summary",
		Description: "Sends a YouTube video to an automation that returns a summary.",
		Icon:        "🎬",
	}
}

func (s *VideoSummaryService) Fields() []entity.FieldSpec {
	return []entity.FieldSpec{
		{
			Name: "youtube_url", Label: "YouTube URL", Kind: entity.FieldURL, Required: true,
			Pattern: YouTubeURLPattern, Help: "https://www.youtube.com/watch?v=...",
		},
	}
}

func (s *VideoSummaryService) Execute(ctx context.Context, in entity.Input) entity.Outcome {
	v, verr := validate(s.Fields(), in)
	if verr != nil {
		return verr
	}

	payload := map[string]any{"youtubeURL": v.str("youtube_url")}
	return postWebhook(ctx, s.hook, s.url, payload, "Video submitted for summarization")
}

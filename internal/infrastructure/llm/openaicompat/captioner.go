package openaicompat

import (
	"context"
	"encoding/base64"
	"strings"

	"ai-forms/internal/application/port/output"
	"ai-forms/internal/domain/entity"

	"github.com/sashabaranov/go-openai"
)

var _ output.CaptionerPort = (*Captioner)(nil)

// Captioner asks a vision-capable chat model to describe an image, sent
// inline as a base64 data URL.
type Captioner struct {
	client    *openai.Client
	model     string
	prompt    string
	maxTokens int
}

type CaptionerConfig struct {
	Config
	Model     string
	Prompt    string
	MaxTokens int
}

func NewCaptioner(cfg CaptionerConfig) *Captioner {
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 300
	}
	return &Captioner{
		client:    newClient(cfg.Config),
		model:     cfg.Model,
		prompt:    cfg.Prompt,
		maxTokens: maxTokens,
	}
}

func (c *Captioner) Caption(ctx context.Context, img entity.Image) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: c.prompt},
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: dataURL(img)},
					},
				},
			},
		},
		MaxTokens: c.maxTokens,
	})
	if err != nil {
		return "", transportError(err)
	}

	if len(resp.Choices) == 0 {
		return "", &entity.TransportError{Message: "no choices in response"}
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func dataURL(img entity.Image) string {
	mime := img.MIME
	if mime == "" {
		mime = "image/jpeg"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}

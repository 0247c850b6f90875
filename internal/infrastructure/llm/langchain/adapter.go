// Package langchain adapts a langchaingo llms.Model to the completion port, so
// any provider langchaingo supports can back the text services.
package langchain

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"ai-forms/internal/application/port/output"
	"ai-forms/internal/domain/entity"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

var _ output.LLMPort = (*Adapter)(nil)

type Adapter struct {
	model  llms.Model
	logger output.LoggerPort
}

func NewAdapter(model llms.Model, logger output.LoggerPort) *Adapter {
	return &Adapter{model: model, logger: logger}
}

type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// NewOpenAI builds an adapter over langchaingo's OpenAI client.
func NewOpenAI(cfg Config, logger output.LoggerPort) (*Adapter, error) {
	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
		openai.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	model, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("langchain openai client: %w", err)
	}
	return NewAdapter(model, logger), nil
}

func (a *Adapter) Complete(ctx context.Context, req output.CompletionRequest) (*output.Completion, error) {
	var opts []llms.CallOption
	if req.Model != "" {
		opts = append(opts, llms.WithModel(req.Model))
	}
	if req.MaxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(req.MaxTokens))
	}

	a.logger.Debug("Generating content", "model", req.Model, "messages", len(req.Messages))

	resp, err := a.model.GenerateContent(ctx, convertMessages(req.Messages), opts...)
	if err != nil {
		return nil, &entity.TransportError{Message: fmt.Sprintf("generate content failed: %v", err)}
	}
	if resp == nil || len(resp.Choices) == 0 {
		return nil, &entity.TransportError{Message: "no choices in response"}
	}

	return &output.Completion{
		Text:  resp.Choices[0].Content,
		Model: req.Model,
	}, nil
}

func convertMessages(messages []entity.Message) []llms.MessageContent {
	result := make([]llms.MessageContent, 0, len(messages))
	for _, msg := range messages {
		result = append(result, llms.TextParts(roleType(msg.Role), msg.Content))
	}
	return result
}

func roleType(role entity.MessageRole) llms.ChatMessageType {
	switch role {
	case entity.RoleSystem:
		return llms.ChatMessageTypeSystem
	case entity.RoleAssistant:
		return llms.ChatMessageTypeAI
	default:
		return llms.ChatMessageTypeHuman
	}
}

// Package openaicompat talks to any OpenAI-compatible chat completions API
// (OpenAI itself, OpenRouter, local gateways) through go-openai.
package openaicompat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"ai-forms/internal/application/port/output"
	"ai-forms/internal/domain/entity"

	"github.com/sashabaranov/go-openai"
)

var _ output.LLMPort = (*Adapter)(nil)

type Adapter struct {
	client *openai.Client
	logger output.LoggerPort
}

type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	Logger  output.LoggerPort
}

func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:  apiKey,
		BaseURL: "https://api.openai.com/v1",
		Timeout: 60 * time.Second,
	}
}

type loggingTransport struct {
	base   http.RoundTripper
	logger output.LoggerPort
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var bodyBytes []byte
	if req.Body != nil {
		bodyBytes, _ = io.ReadAll(req.Body)
		req.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
	}

	var request struct {
		Model     string `json:"model"`
		MaxTokens int    `json:"max_tokens"`
	}
	if len(bodyBytes) > 0 {
		_ = json.Unmarshal(bodyBytes, &request)
	}

	// Message bodies may carry base64 images, so only the envelope is logged.
	t.logger.Debug("HTTP Request",
		"method", req.Method,
		"url", req.URL.String(),
		"model", request.Model,
		"maxTokens", request.MaxTokens,
		"bytes", len(bodyBytes),
	)

	resp, err := t.base.RoundTrip(req)

	if resp != nil {
		t.logger.Debug("HTTP Response",
			"status", resp.Status,
			"statusCode", resp.StatusCode,
		)
	}

	return resp, err
}

func newClient(cfg Config) *openai.Client {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	var transport http.RoundTripper = http.DefaultTransport
	if cfg.Logger != nil {
		transport = &loggingTransport{
			base:   transport,
			logger: cfg.Logger,
		}
	}
	config.HTTPClient = &http.Client{
		Transport: transport,
		Timeout:   cfg.Timeout,
	}

	return openai.NewClientWithConfig(config)
}

func NewAdapter(cfg Config) *Adapter {
	return &Adapter{
		client: newClient(cfg),
		logger: cfg.Logger,
	}
}

func (a *Adapter) Complete(ctx context.Context, req output.CompletionRequest) (*output.Completion, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     req.Model,
		Messages:  convertMessages(req.Messages),
		MaxTokens: req.MaxTokens,
	})
	if err != nil {
		return nil, transportError(err)
	}

	if len(resp.Choices) == 0 {
		return nil, &entity.TransportError{Message: "no choices in response"}
	}

	model := resp.Model
	if model == "" {
		model = req.Model
	}
	return &output.Completion{
		Text:  resp.Choices[0].Message.Content,
		Model: model,
	}, nil
}

func convertMessages(messages []entity.Message) []openai.ChatCompletionMessage {
	result := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, msg := range messages {
		result = append(result, openai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}
	return result
}

// transportError keeps the provider's status code so callers can report it.
func transportError(err error) *entity.TransportError {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &entity.TransportError{
			StatusCode: apiErr.HTTPStatusCode,
			Message:    fmt.Sprintf("chat completion failed: %s", apiErr.Message),
		}
	}

	// Non-JSON error pages land here; the body is passed through untouched.
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &entity.TransportError{
			StatusCode: reqErr.HTTPStatusCode,
			Message:    fmt.Sprintf("chat completion failed: status %d", reqErr.HTTPStatusCode),
			RawBody:    string(reqErr.Body),
		}
	}

	return &entity.TransportError{Message: fmt.Sprintf("chat completion failed: %v", err)}
}

package output

import (
	"context"

	"ai-forms/internal/domain/entity"
)

type LLMPort interface {
	Complete(ctx context.Context, req CompletionRequest) (*Completion, error)
}

type CompletionRequest struct {
	Model     string
	Messages  []entity.Message
	MaxTokens int
}

type Completion struct {
	Text  string
	Model string
}

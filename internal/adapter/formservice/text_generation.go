package formservice

import (
	"context"
	"strconv"

	"ai-forms/internal/application/port/output"
	"ai-forms/internal/domain/content"
	"ai-forms/internal/domain/entity"
)

var _ output.ServicePort = (*TextGenerationService)(nil)

const (
	minTokens     = 50
	maxTokens     = 2000
	defaultTokens = 500
)

type TextGenerationService struct {
	llm          output.LLMPort
	systemPrompt string
	models       []string
	defaultModel string
}

func NewTextGenerationService(llm output.LLMPort, systemPrompt string, models []string, defaultModel string) *TextGenerationService {
	return &TextGenerationService{
		llm:          llm,
		systemPrompt: systemPrompt,
		models:       models,
		defaultModel: defaultModel,
	}
}

func (s *TextGenerationService) Descriptor() entity.Descriptor {
	return entity.Descriptor{
		ID:          entity.ServiceTextGeneration,
		DisplayName: "AI Text Generation",
		Description: "Generates text from a prompt with a GPT chat model.",
		Icon:        "✍️",
	}
}

func (s *TextGenerationService) Fields() []entity.FieldSpec {
	return []entity.FieldSpec{
		{Name: "prompt", Label: "Prompt", Kind: entity.FieldTextarea, Required: true},
		{Name: "model", Label: "Model", Kind: entity.FieldChoice, Options: s.models, Default: s.defaultModel},
		{
			Name: "max_tokens", Label: "Max tokens", Kind: entity.FieldInt,
			Min: entity.Bound(minTokens), Max: entity.Bound(maxTokens), Step: 50,
			Default: strconv.Itoa(defaultTokens),
		},
	}
}

func (s *TextGenerationService) Execute(ctx context.Context, in entity.Input) entity.Outcome {
	v, verr := validate(s.Fields(), in)
	if verr != nil {
		return verr
	}

	text, terr := complete(ctx, s.llm, output.CompletionRequest{
		Model: v.str("model"),
		Messages: []entity.Message{
			{Role: entity.RoleSystem, Content: s.systemPrompt},
			{Role: entity.RoleUser, Content: v.str("prompt")},
		},
		MaxTokens: v.integer("max_tokens"),
	})
	if terr != nil {
		return terr
	}

	return successFrom(content.Classify([]byte(text), ""), "Text generated")
}

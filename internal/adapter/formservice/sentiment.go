package formservice

import (
	"context"
	"encoding/json"
	"strings"

	"ai-forms/internal/application/port/output"
	"ai-forms/internal/domain/content"
	"ai-forms/internal/domain/entity"
)

var _ output.ServicePort = (*SentimentAnalysisService)(nil)

const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"

	MaxSentimentScore = 10

	defaultSentimentScore   = 5
	defaultSentimentExplain = "no explanation provided"
)

type SentimentAnalysisService struct {
	llm          output.LLMPort
	systemPrompt string
	model        string
}

func NewSentimentAnalysisService(llm output.LLMPort, systemPrompt, model string) *SentimentAnalysisService {
	return &SentimentAnalysisService{
		llm:          llm,
		systemPrompt: systemPrompt,
		model:        model,
	}
}

func (s *SentimentAnalysisService) Descriptor() entity.Descriptor {
	return entity.Descriptor{
		ID:          entity.ServiceSentimentAnalysis,
		DisplayName: "Sentiment Analysis",
		Description: "Scores how positive or negative a text is.",
		Icon:        "😊",
	}
}

func (s *SentimentAnalysisService) Fields() []entity.FieldSpec {
	return []entity.FieldSpec{
		{Name: "text", Label: "Text to analyze", Kind: entity.FieldTextarea, Required: true},
	}
}

func (s *SentimentAnalysisService) Execute(ctx context.Context, in entity.Input) entity.Outcome {
	v, verr := validate(s.Fields(), in)
	if verr != nil {
		return verr
	}

	text, terr := complete(ctx, s.llm, output.CompletionRequest{
		Model: s.model,
		Messages: []entity.Message{
			{Role: entity.RoleSystem, Content: s.systemPrompt},
			{Role: entity.RoleUser, Content: v.str("text")},
		},
	})
	if terr != nil {
		return terr
	}

	obj, ok := content.ExtractObject(text)
	if !ok {
		return &entity.Success{
			Message:     "Sentiment analyzed",
			ContentType: entity.ContentTypePlain,
			Raw:         text,
		}
	}

	fields := normalizeSentiment(obj)
	return &entity.Success{
		Message:     "Sentiment analyzed",
		ContentType: entity.ContentTypeJSON,
		Data:        fields,
		Fields:      fields,
		Raw:         text,
	}
}

func normalizeSentiment(obj map[string]any) map[string]any {
	sentiment := SentimentNeutral
	if s, ok := obj["sentiment"].(string); ok && strings.TrimSpace(s) != "" {
		sentiment = strings.ToLower(strings.TrimSpace(s))
	}

	score := float64(defaultSentimentScore)
	switch n := obj["score"].(type) {
	case json.Number:
		if f, err := n.Float64(); err == nil {
			score = f
		}
	case float64:
		score = n
	}
	score = min(max(score, 0), MaxSentimentScore)

	explanation := defaultSentimentExplain
	if e, ok := obj["explanation"].(string); ok && e != "" {
		explanation = e
	}

	return map[string]any{
		"sentiment":   sentiment,
		"score":       score,
		"explanation": explanation,
	}
}

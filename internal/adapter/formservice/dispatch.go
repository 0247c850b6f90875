// Package formservice implements the service panels: each one validates its
// declared fields, builds an outbound payload, makes exactly one call to its
// transport and normalizes the result into an entity.Outcome.
package formservice

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"ai-forms/internal/application/port/output"
	"ai-forms/internal/domain/content"
	"ai-forms/internal/domain/entity"
)

func asTransportError(err error) *entity.TransportError {
	var te *entity.TransportError
	if errors.As(err, &te) {
		return te
	}
	return &entity.TransportError{Message: err.Error()}
}

func successFrom(res content.Result, message string) *entity.Success {
	s := &entity.Success{
		Message:     message,
		ContentType: res.ContentType,
		Data:        res.Data,
		Raw:         res.Raw,
	}
	if obj, ok := res.Object(); ok {
		s.Fields = obj
	}
	return s
}

// postWebhook sends payload and classifies the reply. Only HTTP 200 counts as
// accepted.
func postWebhook(ctx context.Context, hook output.WebhookPort, url string, payload map[string]any, message string) entity.Outcome {
	resp, err := hook.Post(ctx, url, payload)
	if err != nil {
		return asTransportError(err)
	}

	if resp.StatusCode != http.StatusOK {
		return &entity.TransportError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("webhook responded with status %d", resp.StatusCode),
			RawBody:    string(resp.Body),
		}
	}

	s := successFrom(content.Classify(resp.Body, resp.ContentType), message)
	s.Sent = payload
	return s
}

func complete(ctx context.Context, llm output.LLMPort, req output.CompletionRequest) (string, *entity.TransportError) {
	resp, err := llm.Complete(ctx, req)
	if err != nil {
		return "", asTransportError(err)
	}
	return resp.Text, nil
}

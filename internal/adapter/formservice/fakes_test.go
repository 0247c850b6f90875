package formservice

import (
	"context"
	"encoding/json"
	"errors"

	"ai-forms/internal/application/port/output"
	"ai-forms/internal/domain/entity"
)

type fakeLLM struct {
	calls    int
	lastReq  output.CompletionRequest
	response string
	err      error
}

func (f *fakeLLM) Complete(ctx context.Context, req output.CompletionRequest) (*output.Completion, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &output.Completion{Text: f.response, Model: req.Model}, nil
}

// fakeWebhook replies with a fixed response, or echoes the payload back as
// JSON when echo is set.
type fakeWebhook struct {
	calls       int
	lastURL     string
	lastPayload map[string]any
	status      int
	contentType string
	body        string
	echo        bool
	err         error
}

func (f *fakeWebhook) Post(ctx context.Context, url string, payload map[string]any) (*output.WebhookResponse, error) {
	f.calls++
	f.lastURL = url
	f.lastPayload = payload
	if f.err != nil {
		return nil, f.err
	}
	if f.echo {
		body, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		return &output.WebhookResponse{StatusCode: 200, ContentType: "application/json", Body: body}, nil
	}
	status := f.status
	if status == 0 {
		status = 200
	}
	return &output.WebhookResponse{StatusCode: status, ContentType: f.contentType, Body: []byte(f.body)}, nil
}

type fakeNormalizer struct {
	calls int
	err   error
}

func (f *fakeNormalizer) Normalize(data []byte) (*entity.Image, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &entity.Image{Data: data, MIME: "image/jpeg", Width: 4, Height: 3}, nil
}

type fakeCaptioner struct {
	calls   int
	caption string
	err     error
}

func (f *fakeCaptioner) Caption(ctx context.Context, img entity.Image) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.caption, nil
}

var errNetwork = errors.New("dial tcp: connection refused")

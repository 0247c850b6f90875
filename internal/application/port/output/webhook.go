package output

import "context"

// WebhookPort posts a JSON object to an automation endpoint. A non-nil error
// means no HTTP response was received; any status code is returned as-is.
type WebhookPort interface {
	Post(ctx context.Context, url string, payload map[string]any) (*WebhookResponse, error)
}

type WebhookResponse struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

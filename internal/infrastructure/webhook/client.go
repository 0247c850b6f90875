// Package webhook posts JSON payloads to automation webhooks (n8n, Zapier,
// Make and similar) over resty.
package webhook

import (
	"context"
	"fmt"
	"time"

	"ai-forms/internal/application/port/output"
	"ai-forms/internal/domain/entity"

	"github.com/go-resty/resty/v2"
)

var _ output.WebhookPort = (*Client)(nil)

const userAgent = "ai-forms-webhook/1.0"

type Config struct {
	Timeout time.Duration
	Logger  output.LoggerPort
}

func DefaultConfig() Config {
	return Config{Timeout: 60 * time.Second}
}

// Client sends exactly one request per Post. Retries stay disabled because a
// webhook may trigger side effects such as calendar entries.
type Client struct {
	resty  *resty.Client
	logger output.LoggerPort
}

func NewClient(cfg Config) *Client {
	r := resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json, text/html;q=0.9, */*;q=0.8")

	return &Client{resty: r, logger: cfg.Logger}
}

func (c *Client) Post(ctx context.Context, url string, payload map[string]any) (*output.WebhookResponse, error) {
	start := time.Now()

	resp, err := c.resty.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(url)
	if err != nil {
		if c.logger != nil {
			c.logger.Warn("Webhook request failed", "url", url, "error", err)
		}
		return nil, &entity.TransportError{Message: fmt.Sprintf("webhook request failed: %v", err)}
	}

	if c.logger != nil {
		c.logger.Debug("Webhook responded",
			"url", url,
			"status", resp.StatusCode(),
			"bytes", len(resp.Body()),
			"duration", time.Since(start),
		)
	}

	return &output.WebhookResponse{
		StatusCode:  resp.StatusCode(),
		ContentType: resp.Header().Get("Content-Type"),
		Body:        resp.Body(),
	}, nil
}

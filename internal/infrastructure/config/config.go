// Package config provides application configuration loaded from environment
// variables.
package config

import (
	"fmt"
	"slices"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const logPrefix = "config:Load"

const (
	ProviderOpenAI    = "openai"
	ProviderLangchain = "langchain"

	CaptionStub   = "stub"
	CaptionVision = "vision"
)

type Config struct {
	AppEnv  string `envconfig:"APP_ENV" default:"dev"`
	Server  ServerConfig
	LLM     LLMConfig
	Webhook WebhookConfig
	Caption CaptionConfig
	Log     LogConfig
}

type ServerConfig struct {
	Addr            string        `envconfig:"HTTP_ADDR" default:"0.0.0.0:8080"`
	RequestTimeout  time.Duration `envconfig:"REQUEST_TIMEOUT" default:"90s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	RateLimitRPS    float64       `envconfig:"RATE_LIMIT_RPS" default:"2"`
	RateLimitBurst  int           `envconfig:"RATE_LIMIT_BURST" default:"5"`
	MaxUploadBytes  int64         `envconfig:"MAX_UPLOAD_BYTES" default:"10485760"`
}

type LLMConfig struct {
	Provider       string        `envconfig:"LLM_PROVIDER" default:"openai"`
	APIKey         string        `envconfig:"OPENAI_API_KEY"`
	BaseURL        string        `envconfig:"OPENAI_BASE_URL" default:"https://api.openai.com/v1"`
	Models         []string      `envconfig:"LLM_MODELS" default:"gpt-4,gpt-3.5-turbo"`
	DefaultModel   string        `envconfig:"LLM_DEFAULT_MODEL" default:"gpt-3.5-turbo"`
	SentimentModel string        `envconfig:"LLM_SENTIMENT_MODEL" default:"gpt-3.5-turbo"`
	Timeout        time.Duration `envconfig:"LLM_TIMEOUT" default:"60s"`
}

type WebhookConfig struct {
	MeetingURL      string        `envconfig:"MEETING_WEBHOOK_URL"`
	VideoSummaryURL string        `envconfig:"VIDEO_SUMMARY_WEBHOOK_URL"`
	SocialPostURL   string        `envconfig:"SOCIAL_POST_WEBHOOK_URL"`
	Timeout         time.Duration `envconfig:"WEBHOOK_TIMEOUT" default:"60s"`
}

type CaptionConfig struct {
	Mode      string `envconfig:"CAPTION_MODE" default:"stub"`
	Model     string `envconfig:"CAPTION_MODEL" default:"gpt-4o-mini"`
	MaxSide   int    `envconfig:"CAPTION_MAX_SIDE" default:"1024"`
	MaxPixels int    `envconfig:"CAPTION_MAX_PIXELS" default:"40000000"`
	MaxTokens int    `envconfig:"CAPTION_MAX_TOKENS" default:"300"`
}

type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("%s - %w", logPrefix, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case ProviderOpenAI, ProviderLangchain:
	default:
		return fmt.Errorf("%s - LLM_PROVIDER must be %q or %q, got %q", logPrefix, ProviderOpenAI, ProviderLangchain, c.LLM.Provider)
	}
	if len(c.LLM.Models) == 0 {
		return fmt.Errorf("%s - LLM_MODELS must list at least one model", logPrefix)
	}
	if !slices.Contains(c.LLM.Models, c.LLM.DefaultModel) {
		return fmt.Errorf("%s - LLM_DEFAULT_MODEL %q is not in LLM_MODELS", logPrefix, c.LLM.DefaultModel)
	}

	switch c.Caption.Mode {
	case CaptionStub:
	case CaptionVision:
		if c.LLM.APIKey == "" {
			return fmt.Errorf("%s - CAPTION_MODE=vision requires OPENAI_API_KEY", logPrefix)
		}
	default:
		return fmt.Errorf("%s - CAPTION_MODE must be %q or %q, got %q", logPrefix, CaptionStub, CaptionVision, c.Caption.Mode)
	}
	if c.Caption.MaxSide <= 0 {
		return fmt.Errorf("%s - CAPTION_MAX_SIDE must be positive", logPrefix)
	}
	if c.Caption.MaxPixels <= 0 {
		return fmt.Errorf("%s - CAPTION_MAX_PIXELS must be positive", logPrefix)
	}

	if c.Server.RequestTimeout <= 0 || c.LLM.Timeout <= 0 || c.Webhook.Timeout <= 0 {
		return fmt.Errorf("%s - timeouts must be positive", logPrefix)
	}
	if c.Server.RateLimitRPS <= 0 || c.Server.RateLimitBurst <= 0 {
		return fmt.Errorf("%s - RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive", logPrefix)
	}
	return nil
}

func (c *Config) HasLLM() bool {
	return c.LLM.APIKey != ""
}

package di

import (
	"fmt"

	"ai-forms/internal/adapter/formservice"
	"ai-forms/internal/adapter/httpapi"
	"ai-forms/internal/adapter/render"
	"ai-forms/internal/application/port/input"
	"ai-forms/internal/application/port/output"
	"ai-forms/internal/application/service"
	"ai-forms/internal/domain/entity"
	"ai-forms/internal/infrastructure/caption"
	"ai-forms/internal/infrastructure/config"
	"ai-forms/internal/infrastructure/htmlview"
	"ai-forms/internal/infrastructure/imagefile"
	"ai-forms/internal/infrastructure/llm/langchain"
	"ai-forms/internal/infrastructure/llm/openaicompat"
	"ai-forms/internal/infrastructure/logger"
	"ai-forms/internal/infrastructure/metrics"
	"ai-forms/internal/infrastructure/prompts"
	"ai-forms/internal/infrastructure/webhook"
	"ai-forms/internal/usecase/executor"
)

type Container struct {
	Config    *config.Config
	Logger    output.LoggerPort
	LLM       output.LLMPort
	Webhook   output.WebhookPort
	Captioner output.CaptionerPort
	Registry  output.ServiceRegistry
	Executor  input.ServiceExecutor
	Metrics   *metrics.Metrics
	Text      *render.TextRenderer
	HTML      *render.HTMLRenderer
}

type Option func(*Container)

// WithLLM replaces the configured LLM client, which also makes the LLM
// services available without an API key.
func WithLLM(llm output.LLMPort) Option {
	return func(c *Container) { c.LLM = llm }
}

func WithWebhook(hook output.WebhookPort) Option {
	return func(c *Container) { c.Webhook = hook }
}

func WithCaptioner(captioner output.CaptionerPort) Option {
	return func(c *Container) { c.Captioner = captioner }
}

func WithLogger(log output.LoggerPort) Option {
	return func(c *Container) { c.Logger = log }
}

func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	c := &Container{Config: cfg}
	for _, opt := range opts {
		opt(c)
	}

	if c.Logger == nil {
		log, err := logger.NewLoggerAdapter(logger.Config{
			Level:       cfg.Log.Level,
			Development: cfg.Log.Development,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
		c.Logger = log
	}

	if c.LLM == nil && cfg.HasLLM() {
		llm, err := newLLM(cfg, c.Logger)
		if err != nil {
			c.Logger.Close()
			return nil, err
		}
		c.LLM = llm
	}

	if c.Webhook == nil {
		c.Webhook = webhook.NewClient(webhook.Config{
			Timeout: cfg.Webhook.Timeout,
			Logger:  c.Logger,
		})
	}

	if c.Captioner == nil {
		c.Captioner = newCaptioner(cfg, c.Logger)
	}

	registry, err := c.registerServices()
	if err != nil {
		c.Logger.Close()
		return nil, err
	}
	c.Registry = registry

	c.Metrics = metrics.New()
	c.Executor = executor.New(registry, c.Logger, executor.WithMetrics(c.Metrics))
	c.Text = render.NewTextRenderer()
	c.HTML = render.NewHTMLRenderer(htmlview.NewRenderer(htmlview.DefaultConfig))

	c.Logger.Info("Container ready", "services", registry.Len(), "llmProvider", cfg.LLM.Provider, "captionMode", cfg.Caption.Mode)
	return c, nil
}

func newLLM(cfg *config.Config, log output.LoggerPort) (output.LLMPort, error) {
	switch cfg.LLM.Provider {
	case config.ProviderLangchain:
		llm, err := langchain.NewOpenAI(langchain.Config{
			APIKey:  cfg.LLM.APIKey,
			BaseURL: cfg.LLM.BaseURL,
			Model:   cfg.LLM.DefaultModel,
			Timeout: cfg.LLM.Timeout,
		}, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create llm: %w", err)
		}
		return llm, nil
	default:
		return openaicompat.NewAdapter(openaicompat.Config{
			APIKey:  cfg.LLM.APIKey,
			BaseURL: cfg.LLM.BaseURL,
			Timeout: cfg.LLM.Timeout,
			Logger:  log,
		}), nil
	}
}

func newCaptioner(cfg *config.Config, log output.LoggerPort) output.CaptionerPort {
	if cfg.Caption.Mode == config.CaptionVision && cfg.HasLLM() {
		return openaicompat.NewCaptioner(openaicompat.CaptionerConfig{
			Config: openaicompat.Config{
				APIKey:  cfg.LLM.APIKey,
				BaseURL: cfg.LLM.BaseURL,
				Timeout: cfg.LLM.Timeout,
				Logger:  log,
			},
			Model:     cfg.Caption.Model,
			Prompt:    prompts.System(prompts.CaptionPrompt),
			MaxTokens: cfg.Caption.MaxTokens,
		})
	}
	return caption.NewStub(prompts.StubCaption)
}

// registerServices registers the panels in menu order. A panel whose backend
// is not configured is skipped with a warning instead of failing startup.
func (c *Container) registerServices() (*service.ServiceRegistryImpl, error) {
	cfg := c.Config
	registry := service.NewServiceRegistry()

	sentimentPrompt, err := prompts.GenerateSentimentPrompt(prompts.SentimentTemplate, prompts.SentimentPromptData{
		MaxScore: formservice.MaxSentimentScore,
		Sentiments: []string{
			formservice.SentimentPositive,
			formservice.SentimentNegative,
			formservice.SentimentNeutral,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build sentiment prompt: %w", err)
	}

	type candidate struct {
		id      entity.ServiceID
		missing string
		build   func() output.ServicePort
	}

	candidates := []candidate{
		{
			id: entity.ServiceTextGeneration, missing: c.missingLLM(),
			build: func() output.ServicePort {
				return formservice.NewTextGenerationService(c.LLM, prompts.System(prompts.TextGenerationPrompt), cfg.LLM.Models, cfg.LLM.DefaultModel)
			},
		},
		{
			id: entity.ServiceImageCaption,
			build: func() output.ServicePort {
				return formservice.NewImageCaptionService(imagefile.NewNormalizer(cfg.Caption.MaxSide, cfg.Caption.MaxPixels), c.Captioner)
			},
		},
		{
			id: entity.ServiceSentimentAnalysis, missing: c.missingLLM(),
			build: func() output.ServicePort {
				return formservice.NewSentimentAnalysisService(c.LLM, sentimentPrompt, cfg.LLM.SentimentModel)
			},
		},
		{
			id: entity.ServiceMeetingScheduler, missing: missingURL("MEETING_WEBHOOK_URL", cfg.Webhook.MeetingURL),
			build: func() output.ServicePort {
				return formservice.NewMeetingSchedulerService(c.Webhook, cfg.Webhook.MeetingURL)
			},
		},
		{
			id: entity.ServiceVideoSummary, missing: missingURL("VIDEO_SUMMARY_WEBHOOK_URL", cfg.Webhook.VideoSummaryURL),
			build: func() output.ServicePort {
				return formservice.NewVideoSummaryService(c.Webhook, cfg.Webhook.VideoSummaryURL)
			},
		},
		{
			id: entity.ServiceSocialPost, missing: missingURL("SOCIAL_POST_WEBHOOK_URL", cfg.Webhook.SocialPostURL),
			build: func() output.ServicePort {
				return formservice.NewSocialPostService(c.Webhook, cfg.Webhook.SocialPostURL)
			},
		},
	}

	for _, cand := range candidates {
		if cand.missing != "" {
			c.Logger.Warn("Service disabled", "service", cand.id, "reason", cand.missing)
			continue
		}
		if err := registry.Register(cand.build()); err != nil {
			return nil, fmt.Errorf("failed to register %s: %w", cand.id, err)
		}
	}

	return registry, nil
}

func (c *Container) missingLLM() string {
	if c.LLM == nil {
		return "OPENAI_API_KEY is not set"
	}
	return ""
}

func missingURL(name, value string) string {
	if value == "" {
		return name + " is not set"
	}
	return ""
}

func (c *Container) HTTPServer() *httpapi.Server {
	return httpapi.NewServer(
		httpapi.Config{
			RequestTimeout: c.Config.Server.RequestTimeout,
			RateLimitRPS:   c.Config.Server.RateLimitRPS,
			RateLimitBurst: c.Config.Server.RateLimitBurst,
			MaxUploadBytes: c.Config.Server.MaxUploadBytes,
			AccessLog:      true,
		},
		c.Registry, c.Executor, c.HTML, c.Metrics, c.Logger,
	)
}

func (c *Container) Close() {
	if c.Logger != nil {
		c.Logger.Close()
	}
}

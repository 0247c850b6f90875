package executor

import (
	"context"
	"fmt"
	"time"

	"ai-forms/internal/application/port/input"
	"ai-forms/internal/application/port/output"
	"ai-forms/internal/domain/entity"

	"github.com/google/uuid"
)

var _ input.ServiceExecutor = (*UseCase)(nil)

type UseCase struct {
	registry output.ServiceRegistry
	logger   output.LoggerPort
	metrics  output.MetricsPort
	now      func() time.Time
}

type Option func(*UseCase)

func WithMetrics(m output.MetricsPort) Option {
	return func(uc *UseCase) {
		uc.metrics = m
	}
}

func New(registry output.ServiceRegistry, logger output.LoggerPort, opts ...Option) *UseCase {
	uc := &UseCase{
		registry: registry,
		logger:   logger,
		metrics:  noopMetrics{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute resolves id and runs the service once. The only error returned is
// *entity.NotFoundError; every other failure is carried by the Outcome.
func (uc *UseCase) Execute(ctx context.Context, id entity.ServiceID, in entity.Input) (*input.ExecuteResult, error) {
	svc, err := uc.registry.Resolve(id)
	if err != nil {
		uc.logger.Warn("Unknown service requested", "service", id)
		return nil, err
	}

	requestID := uuid.NewString()
	log := uc.logger.WithFields(map[string]interface{}{
		"requestId": requestID,
		"service":   string(id),
	})
	log.Debug("Executing service", "fields", in.FieldNames())

	start := uc.now()
	outcome := uc.run(ctx, svc, in)
	duration := uc.now().Sub(start)

	switch o := outcome.(type) {
	case *entity.Success:
		log.Info("Service succeeded", "contentType", o.ContentType, "duration", duration)
	case *entity.ValidationError:
		log.Info("Service input rejected", "field", o.Field, "reason", o.Message)
	case *entity.TransportError:
		log.Warn("Service transport failed", "status", o.StatusCode, "error", o.Message, "duration", duration)
	}

	uc.metrics.RecordExecution(id, outcome.Kind(), duration)

	return &input.ExecuteResult{
		RequestID: requestID,
		Service:   svc.Descriptor(),
		Outcome:   outcome,
		Duration:  duration,
	}, nil
}

// run converts a panicking or nil-returning service into a TransportError.
func (uc *UseCase) run(ctx context.Context, svc output.ServicePort, in entity.Input) (outcome entity.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			uc.logger.Error("Service panicked", "service", svc.Descriptor().ID, "panic", r)
			outcome = &entity.TransportError{Message: fmt.Sprintf("service failed: %v", r)}
		}
	}()

	outcome = svc.Execute(ctx, in)
	if outcome == nil {
		outcome = &entity.TransportError{Message: "service returned no result"}
	}
	return outcome
}

type noopMetrics struct{}

func (noopMetrics) RecordExecution(entity.ServiceID, entity.OutcomeKind, time.Duration) {}

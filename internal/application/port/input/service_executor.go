package input

import (
	"context"
	"time"

	"ai-forms/internal/domain/entity"
)

type ExecuteResult struct {
	RequestID string
	Service   entity.Descriptor
	Outcome   entity.Outcome
	Duration  time.Duration
}

type ServiceExecutor interface {
	Execute(ctx context.Context, id entity.ServiceID, in entity.Input) (*ExecuteResult, error)
}

package output

import (
	"time"

	"ai-forms/internal/domain/entity"
)

type MetricsPort interface {
	RecordExecution(id entity.ServiceID, kind entity.OutcomeKind, duration time.Duration)
}

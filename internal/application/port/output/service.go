package output

import (
	"context"

	"ai-forms/internal/domain/entity"
)

// ServicePort is one pluggable service panel.
type ServicePort interface {
	Descriptor() entity.Descriptor
	Fields() []entity.FieldSpec
	Execute(ctx context.Context, in entity.Input) entity.Outcome
}

type ServiceRegistry interface {
	Register(svc ServicePort) error
	Resolve(id entity.ServiceID) (ServicePort, error)
	List() []entity.Descriptor
	Services() []ServicePort
	Len() int
}

package service

import (
	"ai-forms/internal/application/port/output"
	"ai-forms/internal/domain/entity"
)

var _ output.ServiceRegistry = (*ServiceRegistryImpl)(nil)

// ServiceRegistryImpl is populated once during startup wiring and only read
// afterwards, so it carries no lock.
type ServiceRegistryImpl struct {
	services map[entity.ServiceID]output.ServicePort
	order    []entity.ServiceID
}

func NewServiceRegistry() *ServiceRegistryImpl {
	return &ServiceRegistryImpl{
		services: make(map[entity.ServiceID]output.ServicePort),
	}
}

func (r *ServiceRegistryImpl) Register(svc output.ServicePort) error {
	id := svc.Descriptor().ID
	if _, exists := r.services[id]; exists {
		return &entity.DuplicateIDError{ID: id}
	}
	r.services[id] = svc
	r.order = append(r.order, id)
	return nil
}

func (r *ServiceRegistryImpl) Resolve(id entity.ServiceID) (output.ServicePort, error) {
	svc, ok := r.services[id]
	if !ok {
		return nil, &entity.NotFoundError{ID: id}
	}
	return svc, nil
}

func (r *ServiceRegistryImpl) List() []entity.Descriptor {
	result := make([]entity.Descriptor, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.services[id].Descriptor())
	}
	return result
}

func (r *ServiceRegistryImpl) Services() []output.ServicePort {
	result := make([]output.ServicePort, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.services[id])
	}
	return result
}

func (r *ServiceRegistryImpl) Len() int {
	return len(r.order)
}

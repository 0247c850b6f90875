package entity

import "fmt"

type DuplicateIDError struct {
	ID ServiceID
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("service %q is already registered", e.ID)
}

type NotFoundError struct {
	ID ServiceID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("service %q not found", e.ID)
}

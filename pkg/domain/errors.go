package domain

import (
	"errors"
	"fmt"
)

var ErrEntityNotFound *notFoundError

type notFoundError struct {
	EntityType string
	Identity   string
}

func (e *notFoundError) Error() string {
	return fmt.Sprintf("%s '%s' not found", e.EntityType, e.Identity)
}

func NewNotFoundError(entityType string, identity string) error {
	return &notFoundError{
		EntityType: entityType,
		Identity:   identity,
	}
}

func IsNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var notFoundError *notFoundError
	ok := errors.As(err, &notFoundError)
	return ok
}

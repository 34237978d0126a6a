package moderation

import (
	"errors"
	"fmt"
)

// ErrMissingIdentity is a validation failure, never eligible for fail-open.
var ErrMissingIdentity = errors.New("user_identity is required")

// InfraError marks a failure of a collaborator (account store, cache, AI
// provider) as opposed to a policy outcome. Components return it untouched;
// only the orchestrator maps it to the fail-open response.
type InfraError struct {
	Component string
	Err       error
}

func (e *InfraError) Error() string {
	return fmt.Sprintf("%s: %v", e.Component, e.Err)
}

func (e *InfraError) Unwrap() error {
	return e.Err
}

func NewInfraError(component string, err error) error {
	return &InfraError{Component: component, Err: err}
}

func IsInfraError(err error) bool {
	if err == nil {
		return false
	}
	var infraErr *InfraError
	return errors.As(err, &infraErr)
}

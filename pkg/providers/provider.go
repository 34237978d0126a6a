package providers

import (
	"context"

	"github.com/selira/modguard/pkg/domain/moderation"
)

//go:generate mockery --name=Provider --dir=. --output=./mocks --filename=provider_mock.go --case=underscore --with-expecter

// Provider is one AI moderation backend. Classify returns a decision or an
// error; it never coerces a failure into a safe decision — the fail-open
// call belongs to the orchestrator, where it is auditable in one place.
type Provider interface {
	Name() string
	Classify(ctx context.Context, text string) (*moderation.Decision, error)
}

package account

import (
	"context"
	"time"
)

//go:generate mockery --name=Repository --dir=. --output=./mocks --filename=account_repository_mock.go --case=underscore --with-expecter

// Repository is backed by the external account store. IncrementViolation and
// Ban must be atomic store-side updates, never read-then-write, so two
// concurrent violations for the same identity cannot lose an increment.
type Repository interface {
	FindByIdentity(ctx context.Context, identity string) (*Account, error)
	// IncrementViolation adds one violation, stamps the offense metadata and
	// returns the updated record. The record is created lazily when the
	// identity has no prior history.
	IncrementViolation(ctx context.Context, identity string, category string, at time.Time) (*Account, error)
	// Ban marks the account banned with the given reason. It is a no-op for
	// an already banned account: ban_reason is written once.
	Ban(ctx context.Context, identity string, reason string, at time.Time) (*Account, error)
}

package mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/selira/modguard/pkg/domain/account"
	"github.com/stretchr/testify/mock"
)

type Repository struct {
	mock.Mock
}

func (m *Repository) FindByIdentity(ctx context.Context, identity string) (*account.Account, error) {
	args := m.Called(ctx, identity)
	entity, ok := args.Get(0).(*account.Account)
	if !ok && args.Get(0) != nil {
		return nil, fmt.Errorf("expected *account.Account, got %T", args.Get(0))
	}
	return entity, args.Error(1)
}

func (m *Repository) IncrementViolation(
	ctx context.Context,
	identity string,
	category string,
	at time.Time,
) (*account.Account, error) {
	args := m.Called(ctx, identity, category, at)
	entity, ok := args.Get(0).(*account.Account)
	if !ok && args.Get(0) != nil {
		return nil, fmt.Errorf("expected *account.Account, got %T", args.Get(0))
	}
	return entity, args.Error(1)
}

func (m *Repository) Ban(
	ctx context.Context,
	identity string,
	reason string,
	at time.Time,
) (*account.Account, error) {
	args := m.Called(ctx, identity, reason, at)
	entity, ok := args.Get(0).(*account.Account)
	if !ok && args.Get(0) != nil {
		return nil, fmt.Errorf("expected *account.Account, got %T", args.Get(0))
	}
	return entity, args.Error(1)
}

package mocks

import (
	"context"
	"fmt"

	appmoderation "github.com/selira/modguard/pkg/app/moderation"
	"github.com/selira/modguard/pkg/domain/account"
	"github.com/selira/modguard/pkg/domain/moderation"
	"github.com/stretchr/testify/mock"
)

type Ledger struct {
	mock.Mock
}

func (m *Ledger) CheckStatus(ctx context.Context, identity string) (*account.BanStatus, error) {
	args := m.Called(ctx, identity)
	status, ok := args.Get(0).(*account.BanStatus)
	if !ok && args.Get(0) != nil {
		return nil, fmt.Errorf("expected *account.BanStatus, got %T", args.Get(0))
	}
	return status, args.Error(1)
}

func (m *Ledger) RecordViolation(
	ctx context.Context,
	identity string,
	decision moderation.Decision,
) (*appmoderation.ViolationRecord, error) {
	args := m.Called(ctx, identity, decision)
	record, ok := args.Get(0).(*appmoderation.ViolationRecord)
	if !ok && args.Get(0) != nil {
		return nil, fmt.Errorf("expected *moderation.ViolationRecord, got %T", args.Get(0))
	}
	return record, args.Error(1)
}

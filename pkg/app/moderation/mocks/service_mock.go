package mocks

import (
	"context"
	"fmt"

	appmoderation "github.com/selira/modguard/pkg/app/moderation"
	"github.com/stretchr/testify/mock"
)

type Service struct {
	mock.Mock
}

func (m *Service) Moderate(ctx context.Context, req appmoderation.Request) (*appmoderation.Outcome, error) {
	args := m.Called(ctx, req)
	outcome, ok := args.Get(0).(*appmoderation.Outcome)
	if !ok && args.Get(0) != nil {
		return nil, fmt.Errorf("expected *moderation.Outcome, got %T", args.Get(0))
	}
	return outcome, args.Error(1)
}

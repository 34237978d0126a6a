package mocks

import (
	"context"
	"fmt"

	"github.com/selira/modguard/pkg/domain/moderation"
	"github.com/stretchr/testify/mock"
)

type Provider struct {
	mock.Mock
}

func (m *Provider) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *Provider) Classify(ctx context.Context, text string) (*moderation.Decision, error) {
	args := m.Called(ctx, text)
	decision, ok := args.Get(0).(*moderation.Decision)
	if !ok && args.Get(0) != nil {
		return nil, fmt.Errorf("expected *moderation.Decision, got %T", args.Get(0))
	}
	return decision, args.Error(1)
}

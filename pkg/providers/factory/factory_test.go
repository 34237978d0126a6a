package factory

import (
	"testing"

	"github.com/selira/modguard/pkg/config"
	"github.com/selira/modguard/pkg/providers/mistral"
	"github.com/selira/modguard/pkg/providers/openrouter"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_FullChainOrder(t *testing.T) {
	chain := Build(&config.ProvidersConfig{
		Mistral:    config.MistralConfig{APIKey: "mistral-key"},
		OpenRouter: config.OpenRouterConfig{APIKey: "openrouter-key"},
	}, logrus.New())

	require.Len(t, chain, 2)
	assert.Equal(t, mistral.ProviderName, chain[0].Name())
	assert.Equal(t, openrouter.ProviderName, chain[1].Name())
}

func TestBuild_FallbackOnly(t *testing.T) {
	chain := Build(&config.ProvidersConfig{
		OpenRouter: config.OpenRouterConfig{APIKey: "openrouter-key"},
	}, logrus.New())

	require.Len(t, chain, 1)
	assert.Equal(t, openrouter.ProviderName, chain[0].Name())
}

func TestBuild_EmptyWithoutKeys(t *testing.T) {
	chain := Build(&config.ProvidersConfig{}, logrus.New())
	assert.Empty(t, chain)
}

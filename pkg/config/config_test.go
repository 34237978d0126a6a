package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	contents := `
server:
  host: "127.0.0.1"
  port: 9000

moderation:
  ban_threshold: 5
  custom_rules:
    - category: "Illegal Drugs"
      patterns:
        - '\bcustom banned phrase\b'

providers:
  mistral:
    api_key: "mistral-key"
    thresholds:
      selfharm: 0.9
  openrouter:
    api_key: "openrouter-key"
    confidence_threshold: 85
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(contents), 0o600))

	require.NoError(t, Load(dir))
	cfg := GetConfig()

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 5, cfg.Moderation.BanThreshold)
	require.Len(t, cfg.Moderation.CustomRules, 1)
	assert.Equal(t, "Illegal Drugs", cfg.Moderation.CustomRules[0]["category"])
	assert.Equal(t, "mistral-key", cfg.Providers.Mistral.APIKey)
	assert.Equal(t, 0.9, cfg.Providers.Mistral.Thresholds["selfharm"])
	assert.Equal(t, 85, cfg.Providers.OpenRouter.ConfidenceThreshold)

	// Defaults fill in everything the file left out.
	assert.Equal(t, 9090, cfg.Server.MetricsPort)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 300, cfg.Moderation.BanStatusTTLSeconds)
}

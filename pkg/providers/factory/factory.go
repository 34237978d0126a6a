package factory

import (
	"time"

	"github.com/selira/modguard/pkg/config"
	"github.com/selira/modguard/pkg/infra/httpx"
	"github.com/selira/modguard/pkg/providers"
	"github.com/selira/modguard/pkg/providers/mistral"
	"github.com/selira/modguard/pkg/providers/openrouter"
	"github.com/sirupsen/logrus"
)

const (
	breakerTimeout     = 30 * time.Second
	breakerMaxFailures = 5
)

// Build assembles the ordered provider fallback chain from configuration.
// The direct classifier is preferred; the prompted completion model is the
// fallback. An empty chain means the AI pass is skipped entirely.
func Build(cfg *config.ProvidersConfig, logger *logrus.Logger) []providers.Provider {
	var chain []providers.Provider

	if cfg.Mistral.APIKey != "" {
		timeout := timeoutOrDefault(cfg.Mistral.TimeoutSeconds)
		client := mistral.NewClient(logger, httpx.NewClient(timeout), mistral.Config{
			APIKey:     cfg.Mistral.APIKey,
			BaseURL:    cfg.Mistral.BaseURL,
			Model:      cfg.Mistral.Model,
			Categories: cfg.Mistral.Categories,
			Thresholds: cfg.Mistral.Thresholds,
		})
		chain = append(chain, providers.WithCircuitBreaker(client, breakerTimeout, breakerMaxFailures))
		logger.WithField("provider", mistral.ProviderName).Info("moderation provider configured")
	}

	if cfg.OpenRouter.APIKey != "" {
		client := openrouter.NewClient(logger, openrouter.Config{
			APIKey:              cfg.OpenRouter.APIKey,
			BaseURL:             cfg.OpenRouter.BaseURL,
			Model:               cfg.OpenRouter.Model,
			ConfidenceThreshold: cfg.OpenRouter.ConfidenceThreshold,
		})
		chain = append(chain, providers.WithCircuitBreaker(client, breakerTimeout, breakerMaxFailures))
		logger.WithField("provider", openrouter.ProviderName).Info("moderation provider configured")
	}

	if len(chain) == 0 {
		logger.Warn("no AI moderation provider configured, rule-based detection only")
	}

	return chain
}

func timeoutOrDefault(seconds int) time.Duration {
	if seconds <= 0 {
		return httpx.DefaultTimeout
	}
	return time.Duration(seconds) * time.Second
}

package mistral

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/selira/modguard/pkg/domain/moderation"
	"github.com/selira/modguard/pkg/infra/httpx"
	"github.com/sirupsen/logrus"
)

const (
	ProviderName     = "mistral"
	DefaultBaseURL   = "https://api.mistral.ai"
	DefaultModel     = "mistral-moderation-latest"
	moderationsPath  = "/v1/chat/moderations"
	defaultThreshold = 0.85
)

// The direct classifier reports Mistral's own taxonomy; only the entries
// mapped here can produce a decision, keeping the output inside the closed
// category set. Generic sexual content is deliberately absent: this is an
// 18+ platform.
var categoryMapping = map[string]moderation.Category{
	"selfharm":                       moderation.CategorySelfHarm,
	"self_harm":                      moderation.CategorySelfHarm,
	"violence_and_threats":           moderation.CategoryTerrorism,
	"dangerous_and_criminal_content": moderation.CategoryIllegalDrugs,
}

// defaultCategories is the evaluation order: the first flagged entry names
// the decision category.
var defaultCategories = []string{
	"selfharm",
	"self_harm",
	"violence_and_threats",
	"dangerous_and_criminal_content",
}

type Config struct {
	APIKey     string
	BaseURL    string
	Model      string
	Categories []string
	Thresholds map[string]float64
}

type Client struct {
	client httpx.Client
	logger *logrus.Logger
	config Config
}

type moderationRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type moderationResponse struct {
	ID      string             `json:"id"`
	Model   string             `json:"model"`
	Results []moderationResult `json:"results"`
}

type moderationResult struct {
	Categories     map[string]bool    `json:"categories"`
	CategoryScores map[string]float64 `json:"category_scores"`
}

func NewClient(logger *logrus.Logger, httpClient httpx.Client, cfg Config) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if len(cfg.Categories) == 0 {
		cfg.Categories = defaultCategories
	}
	return &Client{
		client: httpClient,
		logger: logger,
		config: cfg,
	}
}

func (c *Client) Name() string {
	return ProviderName
}

func (c *Client) Classify(ctx context.Context, text string) (*moderation.Decision, error) {
	payload, err := json.Marshal(moderationRequest{
		Model: c.config.Model,
		Input: []string{text},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal moderation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+moderationsPath, bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create moderation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mistral moderation request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read moderation response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("mistral moderation returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed moderationResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to unmarshal moderation response: %w", err)
	}
	if len(parsed.Results) == 0 {
		return nil, fmt.Errorf("mistral moderation returned no results")
	}

	return c.analyze(parsed.Results[0]), nil
}

func (c *Client) analyze(result moderationResult) *moderation.Decision {
	for _, name := range c.config.Categories {
		category, known := categoryMapping[name]
		if !known {
			continue
		}

		score := result.CategoryScores[name]
		threshold := defaultThreshold
		if t, ok := c.config.Thresholds[name]; ok {
			threshold = t
		}

		if result.Categories[name] || score >= threshold {
			c.logger.WithFields(logrus.Fields{
				"provider": ProviderName,
				"category": name,
				"score":    score,
			}).Warn("content flagged by moderation classifier")
			decision := moderation.Decision{
				Blocked:    true,
				Category:   category,
				Severity:   moderation.SeverityHigh,
				Message:    "Message blocked due to content policy violation",
				Confidence: int(score * 100),
				Source:     ProviderName,
			}
			if category == moderation.CategorySelfHarm {
				decision.ProvideResources = true
			}
			return &decision
		}
	}

	safe := moderation.Safe()
	return &safe
}

package moderation

import (
	"context"

	"github.com/selira/modguard/pkg/domain/moderation"
	"github.com/selira/modguard/pkg/infra/prometheus"
	"github.com/selira/modguard/pkg/providers"
	"github.com/sirupsen/logrus"
)

const (
	bannedAccountMessage = "Account restricted due to content policy violations"
	failOpenMessage      = "Moderation check failed - allowing message"
)

//go:generate mockery --name=Service --dir=. --output=./mocks --filename=service_mock.go --case=underscore --with-expecter

// Service is the moderation entry point used by the transport layer.
type Service interface {
	Moderate(ctx context.Context, req Request) (*Outcome, error)
}

// Engine is the rule-based detection pass. Satisfied by ruleset.Ruleset.
type Engine interface {
	Evaluate(text string) moderation.Decision
}

type Request struct {
	Message         *string `json:"message"`
	UserIdentity    string  `json:"user_identity"`
	StatusCheckOnly bool    `json:"status_check_only"`
}

// Outcome is the per-request moderation result delivered to the caller.
type Outcome struct {
	Blocked          bool                `json:"blocked"`
	Banned           bool                `json:"banned,omitempty"`
	Safe             bool                `json:"safe,omitempty"`
	Status           string              `json:"status,omitempty"`
	Category         moderation.Category `json:"category,omitempty"`
	Severity         moderation.Severity `json:"severity,omitempty"`
	Message          string              `json:"message,omitempty"`
	BanReason        string              `json:"ban_reason,omitempty"`
	ViolationCount   int                 `json:"violation_count,omitempty"`
	ProvideResources bool                `json:"provide_resources,omitempty"`
	Error            string              `json:"error,omitempty"`
	Details          string              `json:"details,omitempty"`
}

// Moderator sequences the decision pipeline: ban short-circuit, rule-based
// pass, AI fallback, ledger write. It is the only component that knows the
// full flow and the only place where an infrastructure error becomes a
// fail-open result.
type Moderator struct {
	engine Engine
	chain  []providers.Provider
	ledger Ledger
	logger *logrus.Logger
}

func NewModerator(
	engine Engine,
	chain []providers.Provider,
	ledger Ledger,
	logger *logrus.Logger,
) *Moderator {
	return &Moderator{
		engine: engine,
		chain:  chain,
		ledger: ledger,
		logger: logger,
	}
}

// Moderate runs the full pipeline. A missing identity is a validation error
// and propagates; any infrastructure failure is mapped to an allowed
// fail-open outcome here, and nowhere else, so the availability tradeoff
// stays a single reviewable branch.
func (m *Moderator) Moderate(ctx context.Context, req Request) (*Outcome, error) {
	if req.UserIdentity == "" {
		return nil, moderation.ErrMissingIdentity
	}

	outcome, err := m.run(ctx, req)
	if err != nil {
		m.logger.WithError(err).WithField("identity", req.UserIdentity).
			Error("moderation infrastructure failure, failing open")
		prometheus.ModerationFailOpenTotal.Inc()
		prometheus.ModerationRequestTotal.WithLabelValues("fail_open").Inc()
		return &Outcome{
			Blocked: false,
			Safe:    true,
			Error:   failOpenMessage,
			Details: err.Error(),
		}, nil
	}

	switch {
	case outcome.Banned:
		prometheus.ModerationRequestTotal.WithLabelValues("banned").Inc()
	case outcome.Blocked:
		prometheus.ModerationRequestTotal.WithLabelValues("blocked").Inc()
	default:
		prometheus.ModerationRequestTotal.WithLabelValues("allowed").Inc()
	}
	return outcome, nil
}

func (m *Moderator) run(ctx context.Context, req Request) (*Outcome, error) {
	status, err := m.ledger.CheckStatus(ctx, req.UserIdentity)
	if err != nil {
		return nil, err
	}

	if status.IsBanned {
		// Banned accounts never get re-evaluated against current content.
		return &Outcome{
			Blocked:   true,
			Banned:    true,
			Message:   bannedAccountMessage,
			BanReason: status.BanReason,
		}, nil
	}

	if req.StatusCheckOnly || req.Message == nil {
		return &Outcome{Blocked: false, Status: "active"}, nil
	}

	if decision := m.engine.Evaluate(*req.Message); decision.Blocked {
		return m.enforce(ctx, req.UserIdentity, decision), nil
	}

	decision, err := m.classify(ctx, *req.Message)
	if err != nil {
		return nil, err
	}
	if decision != nil && decision.Blocked {
		return m.enforce(ctx, req.UserIdentity, *decision), nil
	}

	return &Outcome{Blocked: false}, nil
}

// classify walks the provider fallback chain in order. The first provider
// that answers wins; a provider error moves on to the next. All providers
// failing is an infrastructure error. A nil decision means no provider is
// configured.
func (m *Moderator) classify(ctx context.Context, message string) (*moderation.Decision, error) {
	if len(m.chain) == 0 {
		return nil, nil
	}

	var lastErr error
	for _, provider := range m.chain {
		decision, err := provider.Classify(ctx, message)
		if err != nil {
			m.logger.WithError(err).WithField("provider", provider.Name()).
				Warn("moderation provider failed, trying next")
			prometheus.ProviderErrorTotal.WithLabelValues(provider.Name()).Inc()
			lastErr = err
			continue
		}
		return decision, nil
	}

	return nil, moderation.NewInfraError("ai moderation", lastErr)
}

// enforce records the confirmed violation and shapes the blocked outcome.
// A ledger write failure is logged but does not downgrade a confirmed
// violation to allowed; enforcement history may be undercounted, enforcement
// of this message is not.
func (m *Moderator) enforce(ctx context.Context, identity string, decision moderation.Decision) *Outcome {
	prometheus.ModerationBlockedTotal.WithLabelValues(string(decision.Category), decision.Source).Inc()

	m.logger.WithFields(logrus.Fields{
		"identity": identity,
		"category": decision.Category,
		"severity": decision.Severity,
		"source":   decision.Source,
		"auto_ban": decision.AutoBan,
	}).Warn("prohibited content detected")

	outcome := &Outcome{
		Blocked:          true,
		Category:         decision.Category,
		Severity:         decision.Severity,
		Message:          decision.Message,
		ProvideResources: decision.ProvideResources,
	}

	record, err := m.ledger.RecordViolation(ctx, identity, decision)
	if err != nil {
		m.logger.WithError(err).WithField("identity", identity).
			Error("failed to record violation, enforcement history may be undercounted")
		return outcome
	}

	outcome.Banned = record.Banned
	outcome.BanReason = record.BanReason
	outcome.ViolationCount = record.ViolationCount
	return outcome
}

package moderation

import (
	"context"
	"fmt"
	"time"

	"github.com/selira/modguard/pkg/domain"
	"github.com/selira/modguard/pkg/domain/account"
	"github.com/selira/modguard/pkg/domain/moderation"
	"github.com/selira/modguard/pkg/infra/prometheus"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

//go:generate mockery --name=Ledger --dir=. --output=./mocks --filename=ledger_mock.go --case=underscore --with-expecter

// Ledger is the violation ledger and ban state machine. Banned is terminal
// within this subsystem; nothing here ever clears a ban or decrements a
// count.
type Ledger interface {
	CheckStatus(ctx context.Context, identity string) (*account.BanStatus, error)
	RecordViolation(ctx context.Context, identity string, decision moderation.Decision) (*ViolationRecord, error)
}

// ViolationRecord is the ledger's answer after a confirmed violation.
type ViolationRecord struct {
	ViolationCount int
	Banned         bool
	BanReason      string
}

// BanStatusCache keeps the per-message ban check off the account store.
type BanStatusCache interface {
	GetBanStatus(ctx context.Context, identity string) (*account.BanStatus, error)
	SaveBanStatus(ctx context.Context, status *account.BanStatus) error
	InvalidateBanStatus(ctx context.Context, identity string) error
}

type ledger struct {
	repo      account.Repository
	cache     BanStatusCache
	logger    *logrus.Logger
	threshold int
	sf        singleflight.Group
	now       func() time.Time
}

func NewLedger(
	repo account.Repository,
	cache BanStatusCache,
	logger *logrus.Logger,
	banThreshold int,
) Ledger {
	return &ledger{
		repo:      repo,
		cache:     cache,
		logger:    logger,
		threshold: banThreshold,
		now:       time.Now,
	}
}

func (l *ledger) CheckStatus(ctx context.Context, identity string) (*account.BanStatus, error) {
	if l.cache != nil {
		if status, err := l.cache.GetBanStatus(ctx, identity); err == nil {
			return status, nil
		}
	}

	v, err, _ := l.sf.Do(identity, func() (interface{}, error) {
		entity, err := l.repo.FindByIdentity(ctx, identity)
		if err != nil {
			if domain.IsNotFoundError(err) {
				// No record yet means no prior violations, not an error.
				return &account.BanStatus{Identity: identity}, nil
			}
			return nil, moderation.NewInfraError("account store", err)
		}
		return &account.BanStatus{
			Identity:  identity,
			IsBanned:  entity.IsBanned,
			BanReason: entity.BanReason,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	status, ok := v.(*account.BanStatus)
	if !ok {
		return nil, moderation.NewInfraError("account store", fmt.Errorf("unexpected status type %T", v))
	}

	if l.cache != nil {
		if err := l.cache.SaveBanStatus(ctx, status); err != nil {
			l.logger.WithError(err).Warn("failed to cache ban status")
		}
	}

	return status, nil
}

// RecordViolation increments the counter store-side, then applies the ban
// policy: threshold reached, or a single occurrence of an auto-ban category.
func (l *ledger) RecordViolation(
	ctx context.Context,
	identity string,
	decision moderation.Decision,
) (*ViolationRecord, error) {
	now := l.now()

	entity, err := l.repo.IncrementViolation(ctx, identity, string(decision.Category), now)
	if err != nil {
		return nil, moderation.NewInfraError("account store", err)
	}

	record := &ViolationRecord{
		ViolationCount: entity.ViolationCount,
		Banned:         entity.IsBanned,
		BanReason:      entity.BanReason,
	}

	shouldBan := entity.ViolationCount >= l.threshold || decision.AutoBan
	if !shouldBan || entity.IsBanned {
		return record, nil
	}

	var reason string
	var trigger string
	if decision.AutoBan {
		reason = fmt.Sprintf("Immediate ban: %s", decision.Category)
		trigger = "auto_ban"
	} else {
		reason = fmt.Sprintf("Auto-banned after %d violations: %s", entity.ViolationCount, decision.Category)
		trigger = "threshold"
	}

	banned, err := l.repo.Ban(ctx, identity, reason, now)
	if err != nil {
		return nil, moderation.NewInfraError("account store", err)
	}

	l.logger.WithFields(logrus.Fields{
		"identity":   identity,
		"category":   decision.Category,
		"violations": banned.ViolationCount,
		"trigger":    trigger,
	}).Warn("account banned")
	prometheus.ModerationBanTotal.WithLabelValues(trigger).Inc()

	if l.cache != nil {
		status := &account.BanStatus{
			Identity:  identity,
			IsBanned:  banned.IsBanned,
			BanReason: banned.BanReason,
		}
		if err := l.cache.SaveBanStatus(ctx, status); err != nil {
			l.logger.WithError(err).Warn("failed to cache ban status after ban")
		}
	}

	record.Banned = banned.IsBanned
	record.BanReason = banned.BanReason
	record.ViolationCount = banned.ViolationCount
	return record, nil
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/selira/modguard/pkg/domain"
	"github.com/selira/modguard/pkg/domain/account"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) account.Repository {
	return &AccountRepository{
		db: db,
	}
}

func (r *AccountRepository) FindByIdentity(ctx context.Context, identity string) (*account.Account, error) {
	var entity account.Account
	result := r.db.WithContext(ctx).First(&entity, "identity = ?", identity)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("account", identity)
		}
		return nil, fmt.Errorf("account: %w", result.Error)
	}
	return &entity, nil
}

// IncrementViolation performs the increment store-side so concurrent
// violations for the same identity never lose an update. The record is
// created lazily on first offense; the unique index on identity plus
// ON CONFLICT DO NOTHING resolves concurrent creators.
func (r *AccountRepository) IncrementViolation(
	ctx context.Context,
	identity string,
	category string,
	at time.Time,
) (*account.Account, error) {
	updates := map[string]interface{}{
		"violation_count":         gorm.Expr("violation_count + 1"),
		"last_violation_category": category,
		"last_violation_at":       at,
		"updated_at":              at,
	}

	var entity account.Account
	result := r.db.WithContext(ctx).
		Model(&entity).
		Clauses(clause.Returning{}).
		Where("identity = ?", identity).
		Updates(updates)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to increment violation: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return &entity, nil
	}

	fresh := account.NewAccount(identity)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "identity"}},
			DoNothing: true,
		}).
		Create(fresh).Error; err != nil {
		return nil, fmt.Errorf("failed to create account record: %w", err)
	}

	result = r.db.WithContext(ctx).
		Model(&entity).
		Clauses(clause.Returning{}).
		Where("identity = ?", identity).
		Updates(updates)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to increment violation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("account record vanished during increment: %s", identity)
	}
	return &entity, nil
}

// Ban is idempotent: the WHERE guard keeps ban_reason immutable once set.
func (r *AccountRepository) Ban(
	ctx context.Context,
	identity string,
	reason string,
	at time.Time,
) (*account.Account, error) {
	updates := map[string]interface{}{
		"is_banned":  true,
		"ban_reason": reason,
		"banned_at":  at,
		"updated_at": at,
	}

	var entity account.Account
	result := r.db.WithContext(ctx).
		Model(&entity).
		Clauses(clause.Returning{}).
		Where("identity = ? AND is_banned = ?", identity, false).
		Updates(updates)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to ban account: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return &entity, nil
	}

	// Already banned, or no record exists. Return the current state.
	return r.FindByIdentity(ctx, identity)
}

package account

import (
	"time"

	"github.com/google/uuid"
)

// Status of an account within the moderation subsystem. Banned is terminal
// here; un-banning is an external administrative action.
type Status string

const (
	StatusActive Status = "active"
	StatusBanned Status = "banned"
)

// Account is the per-identity moderation record. Identity is an opaque
// external reference (email or account id); this subsystem is its only
// writer for the violation and ban fields.
type Account struct {
	ID                    uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Identity              string     `json:"identity" gorm:"uniqueIndex;not null"`
	ViolationCount        int        `json:"violation_count" gorm:"not null;default:0"`
	IsBanned              bool       `json:"is_banned" gorm:"not null;default:false"`
	BanReason             string     `json:"ban_reason,omitempty"`
	BannedAt              *time.Time `json:"banned_at,omitempty"`
	LastViolationCategory string     `json:"last_violation_category,omitempty"`
	LastViolationAt       *time.Time `json:"last_violation_at,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

func (Account) TableName() string {
	return "moderation_accounts"
}

func (a *Account) Status() Status {
	if a.IsBanned {
		return StatusBanned
	}
	return StatusActive
}

// BanStatus is the read-only projection used for the short-circuit check.
type BanStatus struct {
	Identity  string `json:"identity"`
	IsBanned  bool   `json:"is_banned"`
	BanReason string `json:"ban_reason,omitempty"`
}

func NewAccount(identity string) *Account {
	id, err := uuid.NewV6()
	if err != nil {
		id = uuid.New()
	}
	return &Account{
		ID:       id,
		Identity: identity,
	}
}

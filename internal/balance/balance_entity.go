package balance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovementReason tags each ledger entry. ReasonApprovalDebit doubles
// as the idempotency guard: at most one movement with that reason may
// exist per leave request.
type MovementReason string

const (
	ReasonApprovalDebit    MovementReason = "APPROVAL_DEBIT"
	ReasonAllowanceGrant   MovementReason = "ALLOWANCE_GRANT"
	ReasonManualAdjustment MovementReason = "MANUAL_ADJUSTMENT"
)

type LeaveBalance struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_balance_user_type"`
	LeaveTypeID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_balance_user_type"`
	Available   decimal.Decimal `gorm:"type:numeric(8,2);not null;default:0"`
	CreatedAt   time.Time       `gorm:"autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime"`
}

// BalanceMovement is an immutable ledger line. Rows are only ever
// inserted; the running total lives on LeaveBalance.Available.
type BalanceMovement struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	BalanceID uuid.UUID       `gorm:"type:uuid;not null;index"`
	RequestID *uuid.UUID      `gorm:"type:uuid;index:idx_movement_request"`
	Quantity  decimal.Decimal `gorm:"type:numeric(8,2);not null"`
	Reason    MovementReason  `gorm:"size:32;not null;index:idx_movement_request"`
	Note      string          `gorm:"size:512"`
	CreatedAt time.Time       `gorm:"autoCreateTime"`
}

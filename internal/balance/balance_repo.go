package balance

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

//go:generate mockgen -source=balance_repo.go -destination=mock/balance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	CreateBalance(ctx context.Context, b *LeaveBalance) error
	FindBalanceByID(ctx context.Context, id string) (*LeaveBalance, error)
	FindByUserAndType(ctx context.Context, userID, leaveTypeID string) (*LeaveBalance, error)
	FindByUser(ctx context.Context, userID string) ([]LeaveBalance, error)
	UpdateAvailable(ctx context.Context, balanceID string, available decimal.Decimal) error
	CreateMovement(ctx context.Context, m *BalanceMovement) error
	HasMovement(ctx context.Context, requestID string, reason MovementReason) (bool, error)
	ListMovements(ctx context.Context, balanceID string) ([]BalanceMovement, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

// conn routes queries through the active transaction when one is set.
func (r *repository) conn(ctx context.Context) *gorm.DB {
	if r.tx == nil {
		return r.db.WithContext(ctx)
	}
	db := r.db.Session(&gorm.Session{Context: ctx, NewDB: true})
	db.Statement.ConnPool = r.tx
	return db
}

func (r *repository) CreateBalance(ctx context.Context, b *LeaveBalance) error {
	return r.conn(ctx).Create(b).Error
}

func (r *repository) FindBalanceByID(ctx context.Context, id string) (*LeaveBalance, error) {
	var b LeaveBalance
	err := r.conn(ctx).
		Where("id = ?", id).
		First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// FindByUserAndType returns nil, nil when no balance row exists.
// Debits silently skip in that case, so absence is not an error here.
func (r *repository) FindByUserAndType(ctx context.Context, userID, leaveTypeID string) (*LeaveBalance, error) {
	var b LeaveBalance
	err := r.conn(ctx).
		Where("user_id = ? AND leave_type_id = ?", userID, leaveTypeID).
		First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) FindByUser(ctx context.Context, userID string) ([]LeaveBalance, error) {
	var balances []LeaveBalance
	err := r.conn(ctx).
		Where("user_id = ?", userID).
		Find(&balances).Error
	return balances, err
}

func (r *repository) UpdateAvailable(ctx context.Context, balanceID string, available decimal.Decimal) error {
	return r.conn(ctx).
		Model(&LeaveBalance{}).
		Where("id = ?", balanceID).
		Update("available", available).Error
}

func (r *repository) CreateMovement(ctx context.Context, m *BalanceMovement) error {
	return r.conn(ctx).Create(m).Error
}

func (r *repository) HasMovement(ctx context.Context, requestID string, reason MovementReason) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Model(&BalanceMovement{}).
		Where("request_id = ? AND reason = ?", requestID, reason).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) ListMovements(ctx context.Context, balanceID string) ([]BalanceMovement, error) {
	var movements []BalanceMovement
	err := r.conn(ctx).
		Where("balance_id = ?", balanceID).
		Order("created_at DESC").
		Find(&movements).Error
	return movements, err
}

package balance

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Ledger is the write side the approval state machine drives. Both
// methods run inside the caller's transaction so the debit commits or
// rolls back with the decision that triggered it.
//
//go:generate mockgen -source=ledger.go -destination=mock/ledger_mock.go -package=mock
type Ledger interface {
	// DebitForApproval deducts quantity from the (userID, leaveTypeID)
	// balance and records an APPROVAL_DEBIT movement for requestID.
	// At most one such movement ever exists per request: replays are
	// detected and skipped. A missing balance row or a zero quantity
	// also skips without error.
	DebitForApproval(ctx context.Context, tx *sql.Tx, userID, leaveTypeID, requestID uuid.UUID, quantity decimal.Decimal) error

	// HasSufficient reports whether the balance covers quantity. A
	// missing balance row counts as sufficient: not every leave type
	// is balance-tracked.
	HasSufficient(ctx context.Context, userID, leaveTypeID uuid.UUID, quantity decimal.Decimal) (bool, error)
}

type ledger struct {
	repo   Repository
	logger *zap.Logger
}

func NewLedger(repo Repository, logger ...*zap.Logger) Ledger {
	l := zap.L().Named("balance.ledger")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.ledger")
	}
	return &ledger{repo: repo, logger: l}
}

func (l *ledger) DebitForApproval(ctx context.Context, tx *sql.Tx, userID, leaveTypeID, requestID uuid.UUID, quantity decimal.Decimal) error {
	qtx := l.repo
	if tx != nil {
		qtx = l.repo.WithTx(tx)
	}

	done, err := qtx.HasMovement(ctx, requestID.String(), ReasonApprovalDebit)
	if err != nil {
		return err
	}
	if done {
		l.logger.Info("debit already applied, skipping",
			zap.String("request_id", requestID.String()),
		)
		return nil
	}

	if quantity.IsZero() {
		return nil
	}

	b, err := qtx.FindByUserAndType(ctx, userID.String(), leaveTypeID.String())
	if err != nil {
		return err
	}
	if b == nil {
		l.logger.Info("no balance row for user and leave type, skipping debit",
			zap.String("user_id", userID.String()),
			zap.String("leave_type_id", leaveTypeID.String()),
		)
		return nil
	}

	reqID := requestID
	movement := &BalanceMovement{
		ID:        uuid.New(),
		BalanceID: b.ID,
		RequestID: &reqID,
		Quantity:  quantity.Neg(),
		Reason:    ReasonApprovalDebit,
	}
	if err := qtx.CreateMovement(ctx, movement); err != nil {
		return err
	}

	return qtx.UpdateAvailable(ctx, b.ID.String(), b.Available.Sub(quantity))
}

func (l *ledger) HasSufficient(ctx context.Context, userID, leaveTypeID uuid.UUID, quantity decimal.Decimal) (bool, error) {
	b, err := l.repo.FindByUserAndType(ctx, userID.String(), leaveTypeID.String())
	if err != nil {
		return false, err
	}
	if b == nil {
		return true, nil
	}
	return b.Available.GreaterThanOrEqual(quantity), nil
}

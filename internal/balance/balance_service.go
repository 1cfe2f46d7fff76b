package balance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	balanceerrors "go-leaveflow/internal/balance/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=balance_service.go -destination=mock/balance_service_mock.go -package=mock
type Service interface {
	Grant(ctx context.Context, req GrantBalanceRequest) (BalanceResponse, error)
	GetByUser(ctx context.Context, userID string) ([]BalanceResponse, error)
	Adjust(ctx context.Context, balanceID string, req AdjustBalanceRequest) (BalanceResponse, error)
	GetMovements(ctx context.Context, balanceID string) ([]MovementResponse, error)
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

// Grant seeds a balance row for a user and leave type, recording the
// opening quantity as an ALLOWANCE_GRANT movement.
func (s *service) Grant(ctx context.Context, req GrantBalanceRequest) (BalanceResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return BalanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	days := decimal.NewFromFloat(req.Days)
	b := &LeaveBalance{
		ID:          uuid.New(),
		UserID:      uuid.MustParse(req.UserID),
		LeaveTypeID: uuid.MustParse(req.LeaveTypeID),
		Available:   days,
	}

	if err := qtx.CreateBalance(ctx, b); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return BalanceResponse{}, balanceerrors.ErrBalanceExists
		}
		return BalanceResponse{}, err
	}

	if days.IsPositive() {
		movement := &BalanceMovement{
			ID:        uuid.New(),
			BalanceID: b.ID,
			Quantity:  days,
			Reason:    ReasonAllowanceGrant,
		}
		if err := qtx.CreateMovement(ctx, movement); err != nil {
			return BalanceResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return BalanceResponse{}, err
	}

	return mapBalanceToResponse(*b), nil
}

func (s *service) GetByUser(ctx context.Context, userID string) ([]BalanceResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, balanceerrors.ErrInvalidID
	}

	balances, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	res := make([]BalanceResponse, len(balances))
	for i, b := range balances {
		res[i] = mapBalanceToResponse(b)
	}
	return res, nil
}

// Adjust is the manual correction path, the only sanctioned way to
// undo a debit after a decision has been applied.
func (s *service) Adjust(ctx context.Context, balanceID string, req AdjustBalanceRequest) (BalanceResponse, error) {
	if _, err := uuid.Parse(balanceID); err != nil {
		return BalanceResponse{}, balanceerrors.ErrInvalidID
	}
	quantity := decimal.NewFromFloat(req.Quantity)
	if quantity.IsZero() {
		return BalanceResponse{}, balanceerrors.ErrInvalidQuantity
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return BalanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	b, err := qtx.FindBalanceByID(ctx, balanceID)
	if err != nil {
		return BalanceResponse{}, err
	}
	if b == nil {
		return BalanceResponse{}, balanceerrors.ErrBalanceNotFound
	}

	movement := &BalanceMovement{
		ID:        uuid.New(),
		BalanceID: b.ID,
		Quantity:  quantity,
		Reason:    ReasonManualAdjustment,
		Note:      req.Note,
	}
	if err := qtx.CreateMovement(ctx, movement); err != nil {
		return BalanceResponse{}, err
	}

	b.Available = b.Available.Add(quantity)
	if err := qtx.UpdateAvailable(ctx, b.ID.String(), b.Available); err != nil {
		return BalanceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return BalanceResponse{}, err
	}

	return mapBalanceToResponse(*b), nil
}

func (s *service) GetMovements(ctx context.Context, balanceID string) ([]MovementResponse, error) {
	if _, err := uuid.Parse(balanceID); err != nil {
		return nil, balanceerrors.ErrInvalidID
	}

	movements, err := s.repo.ListMovements(ctx, balanceID)
	if err != nil {
		return nil, err
	}

	res := make([]MovementResponse, len(movements))
	for i, m := range movements {
		res[i] = mapMovementToResponse(m)
	}
	return res, nil
}

func mapBalanceToResponse(b LeaveBalance) BalanceResponse {
	available, _ := b.Available.Float64()
	return BalanceResponse{
		ID:          b.ID.String(),
		UserID:      b.UserID.String(),
		LeaveTypeID: b.LeaveTypeID.String(),
		Available:   available,
	}
}

func mapMovementToResponse(m BalanceMovement) MovementResponse {
	quantity, _ := m.Quantity.Float64()
	resp := MovementResponse{
		ID:        m.ID.String(),
		Quantity:  quantity,
		Reason:    string(m.Reason),
		Note:      m.Note,
		CreatedAt: m.CreatedAt.Format(time.RFC3339),
	}
	if m.RequestID != nil {
		resp.RequestID = m.RequestID.String()
	}
	return resp
}

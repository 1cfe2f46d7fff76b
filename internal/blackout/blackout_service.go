package blackout

import (
	"context"
	"database/sql"
	"errors"
	"time"

	blackouterrors "go-leaveflow/internal/blackout/errors"
	"go-leaveflow/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=blackout_service.go -destination=mock/blackout_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateBlackoutRequest) (BlackoutResponse, error)
	GetAll(ctx context.Context) ([]BlackoutResponse, error)
	GetByID(ctx context.Context, id string) (BlackoutResponse, error)
	Update(ctx context.Context, id string, req UpdateBlackoutRequest) (BlackoutResponse, error)
	Deactivate(ctx context.Context, id string) error
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateBlackoutRequest) (BlackoutResponse, error) {
	fields, err := parseBlackoutFields(req.StartDate, req.EndDate, req.ScopeType, req.ScopeKey, req.EnforceMode)
	if err != nil {
		return BlackoutResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return BlackoutResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	b := &BlackoutPeriod{
		ID:          uuid.New(),
		Name:        req.Name,
		StartDate:   fields.start,
		EndDate:     fields.end,
		ScopeType:   fields.scope,
		ScopeKey:    fields.scopeKey,
		EnforceMode: fields.mode,
		Active:      true,
	}

	if err := qtx.Create(ctx, b); err != nil {
		return BlackoutResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return BlackoutResponse{}, err
	}

	return mapToResponse(*b), nil
}

func (s *service) GetAll(ctx context.Context) ([]BlackoutResponse, error) {
	periods, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]BlackoutResponse, len(periods))
	for i, b := range periods {
		res[i] = mapToResponse(b)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (BlackoutResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return BlackoutResponse{}, blackouterrors.ErrInvalidBlackoutID
	}

	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BlackoutResponse{}, blackouterrors.ErrBlackoutNotFound
		}
		return BlackoutResponse{}, err
	}
	return mapToResponse(*b), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateBlackoutRequest) (BlackoutResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return BlackoutResponse{}, blackouterrors.ErrInvalidBlackoutID
	}
	fields, err := parseBlackoutFields(req.StartDate, req.EndDate, req.ScopeType, req.ScopeKey, req.EnforceMode)
	if err != nil {
		return BlackoutResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return BlackoutResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	b, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BlackoutResponse{}, blackouterrors.ErrBlackoutNotFound
		}
		return BlackoutResponse{}, err
	}

	b.Name = req.Name
	b.StartDate = fields.start
	b.EndDate = fields.end
	b.ScopeType = fields.scope
	b.ScopeKey = fields.scopeKey
	b.EnforceMode = fields.mode
	if req.Active != nil {
		b.Active = *req.Active
	}

	if err := qtx.Update(ctx, b); err != nil {
		return BlackoutResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return BlackoutResponse{}, err
	}

	return mapToResponse(*b), nil
}

func (s *service) Deactivate(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return blackouterrors.ErrInvalidBlackoutID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.Deactivate(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return blackouterrors.ErrBlackoutNotFound
		}
		return err
	}

	return tx.Commit()
}

type blackoutFields struct {
	start, end time.Time
	scope      domain.BlackoutScope
	scopeKey   *uuid.UUID
	mode       domain.EnforceMode
}

func parseBlackoutFields(startRaw, endRaw, scopeRaw, scopeKeyRaw, modeRaw string) (blackoutFields, error) {
	start, err := time.Parse("2006-01-02", startRaw)
	if err != nil {
		return blackoutFields{}, blackouterrors.ErrInvalidDateRange
	}
	end, err := time.Parse("2006-01-02", endRaw)
	if err != nil {
		return blackoutFields{}, blackouterrors.ErrInvalidDateRange
	}
	if end.Before(start) {
		return blackoutFields{}, blackouterrors.ErrInvalidDateRange
	}

	scope, err := domain.ParseBlackoutScope(scopeRaw)
	if err != nil {
		return blackoutFields{}, blackouterrors.ErrInvalidScope
	}
	mode, err := domain.ParseEnforceMode(modeRaw)
	if err != nil {
		return blackoutFields{}, blackouterrors.ErrInvalidEnforceMode
	}

	var scopeKey *uuid.UUID
	if scope != domain.ScopeGlobal {
		if scopeKeyRaw == "" {
			return blackoutFields{}, blackouterrors.ErrScopeKeyRequired
		}
		parsed, err := uuid.Parse(scopeKeyRaw)
		if err != nil {
			return blackoutFields{}, blackouterrors.ErrScopeKeyRequired
		}
		scopeKey = &parsed
	}

	return blackoutFields{
		start:    domain.DateOnly(start),
		end:      domain.DateOnly(end),
		scope:    scope,
		scopeKey: scopeKey,
		mode:     mode,
	}, nil
}

func mapToResponse(b BlackoutPeriod) BlackoutResponse {
	resp := BlackoutResponse{
		ID:          b.ID.String(),
		Name:        b.Name,
		StartDate:   b.StartDate.Format("2006-01-02"),
		EndDate:     b.EndDate.Format("2006-01-02"),
		ScopeType:   b.ScopeType.String(),
		EnforceMode: b.EnforceMode.String(),
		Active:      b.Active,
	}
	if b.ScopeKey != nil {
		resp.ScopeKey = b.ScopeKey.String()
	}
	return resp
}

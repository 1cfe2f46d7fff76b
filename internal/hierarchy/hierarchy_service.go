package hierarchy

import (
	"context"
	"database/sql"
	"errors"

	hierarchyerrors "go-leaveflow/internal/hierarchy/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

//go:generate mockgen -source=hierarchy_service.go -destination=mock/hierarchy_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateHierarchyRequest) (HierarchyResponse, error)
	GetAll(ctx context.Context) ([]HierarchyResponse, error)
	GetByID(ctx context.Context, id string) (HierarchyResponse, error)
	Update(ctx context.Context, id string, req UpdateHierarchyRequest) (HierarchyResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Create(
	ctx context.Context,
	req CreateHierarchyRequest,
) (HierarchyResponse, error) {

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return HierarchyResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	h := &Hierarchy{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
	}

	if err := qtx.Create(ctx, h); err != nil {
		return HierarchyResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return HierarchyResponse{}, err
	}

	return mapToResponse(*h), nil
}

func (s *service) GetAll(ctx context.Context) ([]HierarchyResponse, error) {
	hierarchies, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(hierarchies), nil
}

func (s *service) GetByID(ctx context.Context, id string) (HierarchyResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return HierarchyResponse{}, hierarchyerrors.ErrInvalidHierarchyID
	}

	h, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return HierarchyResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*h), nil
}

func (s *service) Update(
	ctx context.Context,
	id string,
	req UpdateHierarchyRequest,
) (HierarchyResponse, error) {

	if _, err := uuid.Parse(id); err != nil {
		return HierarchyResponse{}, hierarchyerrors.ErrInvalidHierarchyID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return HierarchyResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	h, err := qtx.FindByID(ctx, id)
	if err != nil {
		return HierarchyResponse{}, mapRepositoryError(err)
	}

	h.Name = req.Name
	h.Description = req.Description

	if err := qtx.Update(ctx, h); err != nil {
		return HierarchyResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return HierarchyResponse{}, err
	}

	return mapToResponse(*h), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return hierarchyerrors.ErrInvalidHierarchyID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}

	return tx.Commit()
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return hierarchyerrors.ErrHierarchyNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return hierarchyerrors.ErrHierarchyNameTaken
	}
	return err
}

func mapToResponse(h Hierarchy) HierarchyResponse {
	return HierarchyResponse{
		ID:          h.ID.String(),
		Name:        h.Name,
		Description: h.Description,
		CreatedAt:   h.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:   h.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func mapToListResponse(hierarchies []Hierarchy) []HierarchyResponse {
	res := make([]HierarchyResponse, len(hierarchies))
	for i, h := range hierarchies {
		res[i] = mapToResponse(h)
	}
	return res
}

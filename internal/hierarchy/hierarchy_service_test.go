package hierarchy_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"go-leaveflow/internal/hierarchy"
	hierarchyerrors "go-leaveflow/internal/hierarchy/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

var pgUniqueViolation = pgconn.PgError{Code: "23505", ConstraintName: "uq_hierarchy_name"}

type fakeHierarchyRepository struct {
	createFn   func(ctx context.Context, h *hierarchy.Hierarchy) error
	findAllFn  func(ctx context.Context) ([]hierarchy.Hierarchy, error)
	findByIDFn func(ctx context.Context, id string) (*hierarchy.Hierarchy, error)
	updateFn   func(ctx context.Context, h *hierarchy.Hierarchy) error
	deleteFn   func(ctx context.Context, id string) error
}

func (f *fakeHierarchyRepository) WithTx(tx *sql.Tx) hierarchy.Repository { return f }

func (f *fakeHierarchyRepository) Create(ctx context.Context, h *hierarchy.Hierarchy) error {
	if f.createFn != nil {
		return f.createFn(ctx, h)
	}
	return nil
}

func (f *fakeHierarchyRepository) FindAll(ctx context.Context) ([]hierarchy.Hierarchy, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeHierarchyRepository) FindByID(ctx context.Context, id string) (*hierarchy.Hierarchy, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeHierarchyRepository) Update(ctx context.Context, h *hierarchy.Hierarchy) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, h)
	}
	return nil
}

func (f *fakeHierarchyRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestHierarchyService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()
		expectTx(t, mock, true)

		repo := &fakeHierarchyRepository{
			createFn: func(ctx context.Context, h *hierarchy.Hierarchy) error {
				assert.Equal(t, "Engineering", h.Name)
				assert.NotEqual(t, uuid.Nil, h.ID)
				return nil
			},
		}
		svc := hierarchy.NewService(db, repo)

		resp, err := svc.Create(ctx, hierarchy.CreateHierarchyRequest{Name: "Engineering"})

		assert.NoError(t, err)
		assert.Equal(t, "Engineering", resp.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate name maps to conflict", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()
		expectTx(t, mock, false)

		repo := &fakeHierarchyRepository{
			createFn: func(ctx context.Context, h *hierarchy.Hierarchy) error {
				return &pgUniqueViolation
			},
		}
		svc := hierarchy.NewService(db, repo)

		_, err := svc.Create(ctx, hierarchy.CreateHierarchyRequest{Name: "Engineering"})

		assert.ErrorIs(t, err, hierarchyerrors.ErrHierarchyNameTaken)
	})
}

func TestHierarchyService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid id", func(t *testing.T) {
		svc := hierarchy.NewService(nil, &fakeHierarchyRepository{})

		_, err := svc.GetByID(ctx, "not-a-uuid")

		assert.ErrorIs(t, err, hierarchyerrors.ErrInvalidHierarchyID)
	})

	t.Run("not found", func(t *testing.T) {
		repo := &fakeHierarchyRepository{
			findByIDFn: func(ctx context.Context, id string) (*hierarchy.Hierarchy, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}
		svc := hierarchy.NewService(nil, repo)

		_, err := svc.GetByID(ctx, uuid.New().String())

		assert.ErrorIs(t, err, hierarchyerrors.ErrHierarchyNotFound)
	})

	t.Run("success", func(t *testing.T) {
		id := uuid.New()
		repo := &fakeHierarchyRepository{
			findByIDFn: func(ctx context.Context, gotID string) (*hierarchy.Hierarchy, error) {
				assert.Equal(t, id.String(), gotID)
				return &hierarchy.Hierarchy{ID: id, Name: "Support"}, nil
			},
		}
		svc := hierarchy.NewService(nil, repo)

		resp, err := svc.GetByID(ctx, id.String())

		assert.NoError(t, err)
		assert.Equal(t, "Support", resp.Name)
	})
}

func TestHierarchyService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("propagates unexpected repo error", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()
		expectTx(t, mock, false)

		boom := errors.New("connection reset")
		repo := &fakeHierarchyRepository{
			findByIDFn: func(ctx context.Context, id string) (*hierarchy.Hierarchy, error) {
				return nil, boom
			},
		}
		svc := hierarchy.NewService(db, repo)

		_, err := svc.Update(ctx, uuid.New().String(), hierarchy.UpdateHierarchyRequest{Name: "Ops"})

		assert.ErrorIs(t, err, boom)
	})

	t.Run("success", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()
		expectTx(t, mock, true)

		id := uuid.New()
		repo := &fakeHierarchyRepository{
			findByIDFn: func(ctx context.Context, gotID string) (*hierarchy.Hierarchy, error) {
				return &hierarchy.Hierarchy{ID: id, Name: "Old"}, nil
			},
			updateFn: func(ctx context.Context, h *hierarchy.Hierarchy) error {
				assert.Equal(t, "Ops", h.Name)
				return nil
			},
		}
		svc := hierarchy.NewService(db, repo)

		resp, err := svc.Update(ctx, id.String(), hierarchy.UpdateHierarchyRequest{Name: "Ops"})

		assert.NoError(t, err)
		assert.Equal(t, "Ops", resp.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

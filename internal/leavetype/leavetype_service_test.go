package leavetype_test

import (
	"context"
	"database/sql"
	"testing"

	"go-leaveflow/internal/domain"
	"go-leaveflow/internal/leavetype"
	leavetypeerrors "go-leaveflow/internal/leavetype/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

type fakeLeaveTypeRepository struct {
	createFn     func(ctx context.Context, lt *leavetype.LeaveType) error
	findAllFn    func(ctx context.Context) ([]leavetype.LeaveType, error)
	findByIDFn   func(ctx context.Context, id string) (*leavetype.LeaveType, error)
	updateFn     func(ctx context.Context, lt *leavetype.LeaveType) error
	deactivateFn func(ctx context.Context, id string) error
}

func (f *fakeLeaveTypeRepository) WithTx(tx *sql.Tx) leavetype.Repository { return f }

func (f *fakeLeaveTypeRepository) Create(ctx context.Context, lt *leavetype.LeaveType) error {
	if f.createFn != nil {
		return f.createFn(ctx, lt)
	}
	return nil
}

func (f *fakeLeaveTypeRepository) FindAll(ctx context.Context) ([]leavetype.LeaveType, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeLeaveTypeRepository) FindByID(ctx context.Context, id string) (*leavetype.LeaveType, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeLeaveTypeRepository) Update(ctx context.Context, lt *leavetype.LeaveType) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, lt)
	}
	return nil
}

func (f *fakeLeaveTypeRepository) Deactivate(ctx context.Context, id string) error {
	if f.deactivateFn != nil {
		return f.deactivateFn(ctx, id)
	}
	return nil
}

func TestLeaveTypeService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults manager and hr approval on", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()
		mock.ExpectBegin()
		mock.ExpectCommit()

		repo := &fakeLeaveTypeRepository{
			createFn: func(ctx context.Context, lt *leavetype.LeaveType) error {
				assert.True(t, lt.RequiresManagerApproval)
				assert.False(t, lt.RequiresDirectorApproval)
				assert.True(t, lt.RequiresHRApproval)
				assert.Equal(t, domain.FlowSerial, lt.FlowMode)
				return nil
			},
		}
		svc := leavetype.NewService(db, repo, nil)

		resp, err := svc.Create(ctx, leavetype.CreateLeaveTypeRequest{Name: "Annual"})

		assert.NoError(t, err)
		assert.Equal(t, "SERIAL", resp.FlowMode)
	})

	t.Run("invalid flow mode rejected", func(t *testing.T) {
		svc := leavetype.NewService(nil, &fakeLeaveTypeRepository{}, nil)

		_, err := svc.Create(ctx, leavetype.CreateLeaveTypeRequest{Name: "Annual", FlowMode: "roundrobin"})

		assert.ErrorIs(t, err, leavetypeerrors.ErrInvalidFlowMode)
	})

	t.Run("all flags can be turned off explicitly", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()
		mock.ExpectBegin()
		mock.ExpectCommit()

		off := false
		repo := &fakeLeaveTypeRepository{
			createFn: func(ctx context.Context, lt *leavetype.LeaveType) error {
				assert.Empty(t, lt.Levels())
				return nil
			},
		}
		svc := leavetype.NewService(db, repo, nil)

		_, err := svc.Create(ctx, leavetype.CreateLeaveTypeRequest{
			Name:                    "Comp day",
			RequiresManagerApproval: &off,
			RequiresHRApproval:      &off,
		})

		assert.NoError(t, err)
	})
}

func TestLeaveTypeLevels(t *testing.T) {
	lt := leavetype.LeaveType{
		RequiresManagerApproval:  true,
		RequiresDirectorApproval: true,
		RequiresHRApproval:       true,
	}
	assert.Equal(t,
		[]domain.ApprovalLevel{domain.LevelManager, domain.LevelDirector, domain.LevelHR},
		lt.Levels(),
	)

	lt = leavetype.LeaveType{RequiresHRApproval: true}
	assert.Equal(t, []domain.ApprovalLevel{domain.LevelHR}, lt.Levels())
}

package assignment

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=assignment_repo.go -destination=mock/assignment_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreateAssignment(ctx context.Context, a *ManagerAssignment) error
	FindActiveAssignment(ctx context.Context, hierarchyID, employeeID string) (*ManagerAssignment, error)
	FindActiveAssignmentsByManager(ctx context.Context, hierarchyID, managerID string) ([]ManagerAssignment, error)
	ListAssignments(ctx context.Context, hierarchyID string) ([]ManagerAssignment, error)
	DeactivateAssignment(ctx context.Context, id string) error

	CreateDelegation(ctx context.Context, d *ManagerDelegation) error
	FindActiveDelegationCovering(ctx context.Context, hierarchyID, delegatorID string, start, end time.Time) (*ManagerDelegation, error)
	FindOverlappingActiveDelegations(ctx context.Context, hierarchyID, delegatorID string, start, end time.Time) ([]ManagerDelegation, error)
	FindActiveDelegationsToDelegate(ctx context.Context, hierarchyID, delegateID string) ([]ManagerDelegation, error)
	ListDelegations(ctx context.Context, hierarchyID string) ([]ManagerDelegation, error)
	DeactivateDelegation(ctx context.Context, id string) error
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

func (r *repository) CreateAssignment(ctx context.Context, a *ManagerAssignment) error {
	return r.conn(ctx).Create(a).Error
}

// FindActiveAssignment returns nil, nil when the employee is
// unassigned. Absence is a valid state, not an error.
func (r *repository) FindActiveAssignment(ctx context.Context, hierarchyID, employeeID string) (*ManagerAssignment, error) {
	var a ManagerAssignment
	err := r.conn(ctx).
		Where("hierarchy_id = ? AND employee_id = ? AND active = ?", hierarchyID, employeeID, true).
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindActiveAssignmentsByManager(ctx context.Context, hierarchyID, managerID string) ([]ManagerAssignment, error) {
	var assignments []ManagerAssignment
	err := r.conn(ctx).
		Where("hierarchy_id = ? AND manager_id = ? AND active = ?", hierarchyID, managerID, true).
		Find(&assignments).Error
	return assignments, err
}

func (r *repository) ListAssignments(ctx context.Context, hierarchyID string) ([]ManagerAssignment, error) {
	var assignments []ManagerAssignment
	err := r.conn(ctx).
		Where("hierarchy_id = ?", hierarchyID).
		Order("created_at DESC").
		Find(&assignments).Error
	return assignments, err
}

func (r *repository) DeactivateAssignment(ctx context.Context, id string) error {
	res := r.conn(ctx).
		Model(&ManagerAssignment{}).
		Where("id = ? AND active = ?", id, true).
		Update("active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) CreateDelegation(ctx context.Context, d *ManagerDelegation) error {
	return r.conn(ctx).Create(d).Error
}

func (r *repository) FindActiveDelegationCovering(ctx context.Context, hierarchyID, delegatorID string, start, end time.Time) (*ManagerDelegation, error) {
	var d ManagerDelegation
	err := r.conn(ctx).
		Where("hierarchy_id = ? AND delegator_id = ? AND active = ?", hierarchyID, delegatorID, true).
		Where("start_date <= ? AND end_date >= ?", start, end).
		Order("start_date ASC").
		First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *repository) FindOverlappingActiveDelegations(ctx context.Context, hierarchyID, delegatorID string, start, end time.Time) ([]ManagerDelegation, error) {
	var delegations []ManagerDelegation
	err := r.conn(ctx).
		Where("hierarchy_id = ? AND delegator_id = ? AND active = ?", hierarchyID, delegatorID, true).
		Where("start_date <= ? AND end_date >= ?", end, start).
		Find(&delegations).Error
	return delegations, err
}

func (r *repository) FindActiveDelegationsToDelegate(ctx context.Context, hierarchyID, delegateID string) ([]ManagerDelegation, error) {
	var delegations []ManagerDelegation
	err := r.conn(ctx).
		Where("hierarchy_id = ? AND delegate_id = ? AND active = ?", hierarchyID, delegateID, true).
		Find(&delegations).Error
	return delegations, err
}

func (r *repository) ListDelegations(ctx context.Context, hierarchyID string) ([]ManagerDelegation, error) {
	var delegations []ManagerDelegation
	err := r.conn(ctx).
		Where("hierarchy_id = ?", hierarchyID).
		Order("start_date DESC").
		Find(&delegations).Error
	return delegations, err
}

func (r *repository) DeactivateDelegation(ctx context.Context, id string) error {
	res := r.conn(ctx).
		Model(&ManagerDelegation{}).
		Where("id = ? AND active = ?", id, true).
		Update("active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

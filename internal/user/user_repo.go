package user

import (
	"context"
	"database/sql"

	"go-leaveflow/internal/domain"

	"gorm.io/gorm"
)

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, u *User) error
	FindAll(ctx context.Context) ([]User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, u *User) error
	Deactivate(ctx context.Context, id string) error

	// FindActiveByRoleInHierarchy lists active users holding a role inside a
	// hierarchy, ordered for deterministic approver selection.
	FindActiveByRoleInHierarchy(ctx context.Context, hierarchyID string, role domain.Role) ([]User, error)

	// FindActiveGlobalByRole lists active users holding a role with no
	// hierarchy attachment (e.g., company-wide HR).
	FindActiveGlobalByRole(ctx context.Context, role domain.Role) ([]User, error)

	FindOptions(ctx context.Context) ([]User, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
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

func (r *repository) Create(ctx context.Context, u *User) error {
	return r.conn(ctx).Create(u).Error
}

func (r *repository) FindAll(ctx context.Context) ([]User, error) {
	var users []User
	err := r.conn(ctx).
		Order("last_name, first_name").
		Find(&users).Error
	return users, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*User, error) {
	var u User
	err := r.conn(ctx).First(&u, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) Update(ctx context.Context, u *User) error {
	return r.conn(ctx).Save(u).Error
}

func (r *repository) Deactivate(ctx context.Context, id string) error {
	return r.conn(ctx).
		Model(&User{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

func (r *repository) FindActiveByRoleInHierarchy(ctx context.Context, hierarchyID string, role domain.Role) ([]User, error) {
	var users []User
	err := r.conn(ctx).
		Where("hierarchy_id = ?", hierarchyID).
		Where("role = ?", role.String()).
		Where("is_active = true").
		Order("last_name, first_name").
		Find(&users).Error
	return users, err
}

func (r *repository) FindActiveGlobalByRole(ctx context.Context, role domain.Role) ([]User, error) {
	var users []User
	err := r.conn(ctx).
		Where("hierarchy_id IS NULL").
		Where("role = ?", role.String()).
		Where("is_active = true").
		Order("last_name, first_name").
		Find(&users).Error
	return users, err
}

func (r *repository) FindOptions(ctx context.Context) ([]User, error) {
	var users []User
	err := r.conn(ctx).
		Select("id", "hierarchy_id", "first_name", "last_name", "email", "role", "is_active").
		Where("is_active = true").
		Order("last_name, first_name").
		Find(&users).Error
	return users, err
}

package hierarchy

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=hierarchy_repo.go -destination=mock/hierarchy_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, h *Hierarchy) error
	FindAll(ctx context.Context) ([]Hierarchy, error)
	FindByID(ctx context.Context, id string) (*Hierarchy, error)
	Update(ctx context.Context, h *Hierarchy) error
	Delete(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, h *Hierarchy) error {
	return r.conn(ctx).Create(h).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Hierarchy, error) {
	var hierarchies []Hierarchy
	err := r.conn(ctx).
		Order("name ASC").
		Find(&hierarchies).Error
	return hierarchies, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Hierarchy, error) {
	var h Hierarchy
	err := r.conn(ctx).
		Where("id = ?", id).
		First(&h).Error
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *repository) Update(ctx context.Context, h *Hierarchy) error {
	return r.conn(ctx).Save(h).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.conn(ctx).
		Where("id = ?", id).
		Delete(&Hierarchy{}).Error
}

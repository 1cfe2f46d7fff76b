package blackout

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=blackout_repo.go -destination=mock/blackout_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, b *BlackoutPeriod) error
	FindAll(ctx context.Context) ([]BlackoutPeriod, error)
	FindByID(ctx context.Context, id string) (*BlackoutPeriod, error)
	FindActiveOverlapping(ctx context.Context, start, end time.Time) ([]BlackoutPeriod, error)
	Update(ctx context.Context, b *BlackoutPeriod) error
	Deactivate(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, b *BlackoutPeriod) error {
	return r.conn(ctx).Create(b).Error
}

func (r *repository) FindAll(ctx context.Context) ([]BlackoutPeriod, error) {
	var periods []BlackoutPeriod
	err := r.conn(ctx).
		Order("start_date DESC").
		Find(&periods).Error
	return periods, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*BlackoutPeriod, error) {
	var b BlackoutPeriod
	err := r.conn(ctx).
		Where("id = ?", id).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// FindActiveOverlapping returns every active period sharing at least
// one day with [start, end]. Scope matching happens in the enforcer,
// which needs to see the full overlapping set.
func (r *repository) FindActiveOverlapping(ctx context.Context, start, end time.Time) ([]BlackoutPeriod, error) {
	var periods []BlackoutPeriod
	err := r.conn(ctx).
		Where("active = ?", true).
		Where("start_date <= ? AND end_date >= ?", end, start).
		Find(&periods).Error
	return periods, err
}

func (r *repository) Update(ctx context.Context, b *BlackoutPeriod) error {
	return r.conn(ctx).Save(b).Error
}

func (r *repository) Deactivate(ctx context.Context, id string) error {
	res := r.conn(ctx).
		Model(&BlackoutPeriod{}).
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

package leavetype

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"go-leaveflow/internal/domain"
	leavetypeerrors "go-leaveflow/internal/leavetype/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const LeaveTypeOptionsKey = "leave_types:options"

//go:generate mockgen -source=leavetype_service.go -destination=mock/leavetype_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateLeaveTypeRequest) (LeaveTypeResponse, error)
	GetAll(ctx context.Context) ([]LeaveTypeResponse, error)
	GetOptions(ctx context.Context) ([]LeaveTypeResponse, error)
	GetByID(ctx context.Context, id string) (LeaveTypeResponse, error)
	Update(ctx context.Context, id string, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error)
	Deactivate(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("leavetype.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavetype.service")
	}
	return &service{db: db, repo: repo, rdb: rdb, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateLeaveTypeRequest) (LeaveTypeResponse, error) {
	flowMode, err := domain.ParseFlowMode(req.FlowMode)
	if err != nil {
		return LeaveTypeResponse{}, leavetypeerrors.ErrInvalidFlowMode
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveTypeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	lt := &LeaveType{
		ID:                       uuid.New(),
		Name:                     req.Name,
		Description:              req.Description,
		RequiresManagerApproval:  boolOrDefault(req.RequiresManagerApproval, true),
		RequiresDirectorApproval: req.RequiresDirectorApproval,
		RequiresHRApproval:       boolOrDefault(req.RequiresHRApproval, true),
		FlowMode:                 flowMode,
		MaxConsecutiveDays:       req.MaxConsecutiveDays,
		AllowHalfDay:             boolOrDefault(req.AllowHalfDay, true),
		DefaultAllowanceDays:     decimal.NewFromFloat(req.DefaultAllowanceDays),
		IsActive:                 true,
	}

	if err := qtx.Create(ctx, lt); err != nil {
		return LeaveTypeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return LeaveTypeResponse{}, err
	}

	s.invalidateOptionsCache(ctx)
	return mapToResponse(*lt), nil
}

func (s *service) GetAll(ctx context.Context) ([]LeaveTypeResponse, error) {
	types, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(types), nil
}

// GetOptions serves the dropdown list read by every submission form.
// Cached in redis with singleflight so a cold cache triggers one load.
func (s *service) GetOptions(ctx context.Context) ([]LeaveTypeResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, LeaveTypeOptionsKey).Result(); err == nil {
			var resp []LeaveTypeResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(LeaveTypeOptionsKey, func() (interface{}, error) {
		types, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		active := make([]LeaveType, 0, len(types))
		for _, lt := range types {
			if lt.IsActive {
				active = append(active, lt)
			}
		}
		resp := mapToListResponse(active)
		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, LeaveTypeOptionsKey, jsonData, 1*time.Hour)
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]LeaveTypeResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveTypeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveTypeResponse{}, leavetypeerrors.ErrInvalidLeaveTypeID
	}

	lt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveTypeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*lt), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveTypeResponse{}, leavetypeerrors.ErrInvalidLeaveTypeID
	}
	flowMode, err := domain.ParseFlowMode(req.FlowMode)
	if err != nil {
		return LeaveTypeResponse{}, leavetypeerrors.ErrInvalidFlowMode
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveTypeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	lt, err := qtx.FindByID(ctx, id)
	if err != nil {
		return LeaveTypeResponse{}, mapRepositoryError(err)
	}

	lt.Name = req.Name
	lt.Description = req.Description
	lt.RequiresManagerApproval = req.RequiresManagerApproval
	lt.RequiresDirectorApproval = req.RequiresDirectorApproval
	lt.RequiresHRApproval = req.RequiresHRApproval
	lt.FlowMode = flowMode
	lt.MaxConsecutiveDays = req.MaxConsecutiveDays
	lt.AllowHalfDay = req.AllowHalfDay
	lt.DefaultAllowanceDays = decimal.NewFromFloat(req.DefaultAllowanceDays)
	if req.IsActive != nil {
		lt.IsActive = *req.IsActive
	}

	if err := qtx.Update(ctx, lt); err != nil {
		return LeaveTypeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return LeaveTypeResponse{}, err
	}

	s.invalidateOptionsCache(ctx)
	return mapToResponse(*lt), nil
}

func (s *service) Deactivate(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return leavetypeerrors.ErrInvalidLeaveTypeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.Deactivate(ctx, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidateOptionsCache(ctx)
	return nil
}

func (s *service) invalidateOptionsCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, LeaveTypeOptionsKey).Err(); err != nil {
		s.logger.Warn("failed to invalidate options cache",
			zap.String("key", LeaveTypeOptionsKey),
			zap.Error(err),
		)
	}
}

func boolOrDefault(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leavetypeerrors.ErrLeaveTypeNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return leavetypeerrors.ErrLeaveTypeNameTaken
	}
	return err
}

func mapToResponse(lt LeaveType) LeaveTypeResponse {
	allowance, _ := lt.DefaultAllowanceDays.Float64()
	return LeaveTypeResponse{
		ID:                       lt.ID.String(),
		Name:                     lt.Name,
		Description:              lt.Description,
		RequiresManagerApproval:  lt.RequiresManagerApproval,
		RequiresDirectorApproval: lt.RequiresDirectorApproval,
		RequiresHRApproval:       lt.RequiresHRApproval,
		FlowMode:                 lt.FlowMode.String(),
		MaxConsecutiveDays:       lt.MaxConsecutiveDays,
		AllowHalfDay:             lt.AllowHalfDay,
		DefaultAllowanceDays:     allowance,
		IsActive:                 lt.IsActive,
	}
}

func mapToListResponse(types []LeaveType) []LeaveTypeResponse {
	res := make([]LeaveTypeResponse, len(types))
	for i, lt := range types {
		res[i] = mapToResponse(lt)
	}
	return res
}

package assignment

import (
	"context"
	"database/sql"
	"errors"
	"time"

	assignmenterrors "go-leaveflow/internal/assignment/errors"
	"go-leaveflow/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=assignment_service.go -destination=mock/assignment_service_mock.go -package=mock
type Service interface {
	CreateAssignment(ctx context.Context, req CreateAssignmentRequest) (AssignmentResponse, error)
	ListAssignments(ctx context.Context, hierarchyID string) ([]AssignmentResponse, error)
	DeactivateAssignment(ctx context.Context, id string) error
	GetManagerCoverage(ctx context.Context, hierarchyID, managerID string) (ManagerCoverageResponse, error)

	CreateDelegation(ctx context.Context, req CreateDelegationRequest) (DelegationResponse, error)
	ListDelegations(ctx context.Context, hierarchyID string) ([]DelegationResponse, error)
	DeactivateDelegation(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("assignment.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("assignment.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) CreateAssignment(ctx context.Context, req CreateAssignmentRequest) (AssignmentResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AssignmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	existing, err := qtx.FindActiveAssignment(ctx, req.HierarchyID, req.EmployeeID)
	if err != nil {
		return AssignmentResponse{}, err
	}
	if existing != nil {
		return AssignmentResponse{}, assignmenterrors.ErrAssignmentExists
	}

	a := &ManagerAssignment{
		ID:          uuid.New(),
		HierarchyID: uuid.MustParse(req.HierarchyID),
		EmployeeID:  uuid.MustParse(req.EmployeeID),
		ManagerID:   uuid.MustParse(req.ManagerID),
		Active:      true,
	}

	// The partial unique index catches the race two concurrent
	// creates can win past the pre-check above.
	if err := qtx.CreateAssignment(ctx, a); err != nil {
		return AssignmentResponse{}, mapUniqueViolation(err, assignmenterrors.ErrAssignmentExists)
	}

	if err := tx.Commit(); err != nil {
		return AssignmentResponse{}, err
	}

	return mapAssignmentToResponse(*a), nil
}

func (s *service) ListAssignments(ctx context.Context, hierarchyID string) ([]AssignmentResponse, error) {
	if _, err := uuid.Parse(hierarchyID); err != nil {
		return nil, assignmenterrors.ErrInvalidID
	}

	assignments, err := s.repo.ListAssignments(ctx, hierarchyID)
	if err != nil {
		return nil, err
	}

	res := make([]AssignmentResponse, len(assignments))
	for i, a := range assignments {
		res[i] = mapAssignmentToResponse(a)
	}
	return res, nil
}

func (s *service) DeactivateAssignment(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return assignmenterrors.ErrInvalidID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.DeactivateAssignment(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return assignmenterrors.ErrAssignmentNotFound
		}
		return err
	}

	return tx.Commit()
}

// GetManagerCoverage answers who a manager currently acts for: the
// employees assigned to them plus the active delegations naming them
// delegate.
func (s *service) GetManagerCoverage(ctx context.Context, hierarchyID, managerID string) (ManagerCoverageResponse, error) {
	if _, err := uuid.Parse(hierarchyID); err != nil {
		return ManagerCoverageResponse{}, assignmenterrors.ErrInvalidID
	}
	if _, err := uuid.Parse(managerID); err != nil {
		return ManagerCoverageResponse{}, assignmenterrors.ErrInvalidID
	}

	assignments, err := s.repo.FindActiveAssignmentsByManager(ctx, hierarchyID, managerID)
	if err != nil {
		return ManagerCoverageResponse{}, err
	}
	delegations, err := s.repo.FindActiveDelegationsToDelegate(ctx, hierarchyID, managerID)
	if err != nil {
		return ManagerCoverageResponse{}, err
	}

	resp := ManagerCoverageResponse{
		HierarchyID:         hierarchyID,
		ManagerID:           managerID,
		Assignments:         make([]AssignmentResponse, len(assignments)),
		DelegationsReceived: make([]DelegationResponse, len(delegations)),
	}
	for i, a := range assignments {
		resp.Assignments[i] = mapAssignmentToResponse(a)
	}
	for i, d := range delegations {
		resp.DelegationsReceived[i] = mapDelegationToResponse(d)
	}
	return resp, nil
}

func (s *service) CreateDelegation(ctx context.Context, req CreateDelegationRequest) (DelegationResponse, error) {
	start, end, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return DelegationResponse{}, err
	}
	if req.DelegatorID == req.DelegateID {
		return DelegationResponse{}, assignmenterrors.ErrSelfDelegation
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DelegationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	overlapping, err := qtx.FindOverlappingActiveDelegations(ctx, req.HierarchyID, req.DelegatorID, start, end)
	if err != nil {
		return DelegationResponse{}, err
	}
	if len(overlapping) > 0 {
		return DelegationResponse{}, assignmenterrors.ErrDelegationOverlap
	}

	d := &ManagerDelegation{
		ID:          uuid.New(),
		HierarchyID: uuid.MustParse(req.HierarchyID),
		DelegatorID: uuid.MustParse(req.DelegatorID),
		DelegateID:  uuid.MustParse(req.DelegateID),
		StartDate:   start,
		EndDate:     end,
		Active:      true,
	}

	if err := qtx.CreateDelegation(ctx, d); err != nil {
		return DelegationResponse{}, mapExclusionViolation(err, assignmenterrors.ErrDelegationOverlap)
	}

	if err := tx.Commit(); err != nil {
		return DelegationResponse{}, err
	}

	return mapDelegationToResponse(*d), nil
}

func (s *service) ListDelegations(ctx context.Context, hierarchyID string) ([]DelegationResponse, error) {
	if _, err := uuid.Parse(hierarchyID); err != nil {
		return nil, assignmenterrors.ErrInvalidID
	}

	delegations, err := s.repo.ListDelegations(ctx, hierarchyID)
	if err != nil {
		return nil, err
	}

	res := make([]DelegationResponse, len(delegations))
	for i, d := range delegations {
		res[i] = mapDelegationToResponse(d)
	}
	return res, nil
}

func (s *service) DeactivateDelegation(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return assignmenterrors.ErrInvalidID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.DeactivateDelegation(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return assignmenterrors.ErrDelegationNotFound
		}
		return err
	}

	return tx.Commit()
}

func parseDateRange(startRaw, endRaw string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", startRaw)
	if err != nil {
		return time.Time{}, time.Time{}, assignmenterrors.ErrInvalidDateRange
	}
	end, err := time.Parse("2006-01-02", endRaw)
	if err != nil {
		return time.Time{}, time.Time{}, assignmenterrors.ErrInvalidDateRange
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, assignmenterrors.ErrInvalidDateRange
	}
	return domain.DateOnly(start), domain.DateOnly(end), nil
}

func mapUniqueViolation(err, mapped error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return mapped
	}
	return err
}

func mapExclusionViolation(err, mapped error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23P01" {
		return mapped
	}
	return err
}

func mapAssignmentToResponse(a ManagerAssignment) AssignmentResponse {
	return AssignmentResponse{
		ID:          a.ID.String(),
		HierarchyID: a.HierarchyID.String(),
		EmployeeID:  a.EmployeeID.String(),
		ManagerID:   a.ManagerID.String(),
		Active:      a.Active,
		CreatedAt:   a.CreatedAt.Format(time.RFC3339),
	}
}

func mapDelegationToResponse(d ManagerDelegation) DelegationResponse {
	return DelegationResponse{
		ID:          d.ID.String(),
		HierarchyID: d.HierarchyID.String(),
		DelegatorID: d.DelegatorID.String(),
		DelegateID:  d.DelegateID.String(),
		StartDate:   d.StartDate.Format("2006-01-02"),
		EndDate:     d.EndDate.Format("2006-01-02"),
		Active:      d.Active,
	}
}

package leave

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-leaveflow/internal/domain"
)

// PendingApprovalRow is one visibility-filter candidate: a pending
// approval joined with the request fields the narrowing rules need.
type PendingApprovalRow struct {
	ApprovalID string
	RequestID  string
	Level      domain.ApprovalLevel
	StepOrder  int
	ApproverID *string

	Reference   string
	EmployeeID  string
	HierarchyID string
	LeaveTypeID string
	StartDate   time.Time
	EndDate     time.Time
	FlowMode    domain.FlowMode
	HalfDay     bool
	CreatedAt   time.Time
}

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreateRequest(ctx context.Context, r *LeaveRequest) error
	FindRequestByID(ctx context.Context, id string) (*LeaveRequest, error)
	FindRequestWithApprovals(ctx context.Context, id string) (*LeaveRequest, error)
	UpdateRequestStatus(ctx context.Context, id string, status domain.RequestStatus, currentStage string) error
	HasOverlappingActiveRequest(ctx context.Context, employeeID string, start, end time.Time) (bool, error)
	ListRequestsByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error)
	ListRequestsByHierarchy(ctx context.Context, hierarchyID string) ([]LeaveRequest, error)

	CreateApprovals(ctx context.Context, approvals []Approval) error
	FindApprovalForUpdate(ctx context.Context, id string) (*Approval, error)
	FindApprovalsByRequest(ctx context.Context, requestID string) ([]Approval, error)
	FindPendingApprovalsByLevel(ctx context.Context, level domain.ApprovalLevel, hierarchyID string) ([]PendingApprovalRow, error)
	UpdateApproval(ctx context.Context, a *Approval) error
	UnlockNextApproval(ctx context.Context, requestID string, stepOrder int) error
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

func (r *repository) CreateRequest(ctx context.Context, req *LeaveRequest) error {
	return r.conn(ctx).Omit("Approvals").Create(req).Error
}

func (r *repository) FindRequestByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var req LeaveRequest
	err := r.conn(ctx).
		Where("id = ?", id).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *repository) FindRequestWithApprovals(ctx context.Context, id string) (*LeaveRequest, error) {
	var req LeaveRequest
	err := r.conn(ctx).
		Preload("Approvals", func(db *gorm.DB) *gorm.DB {
			return db.Order("step_order ASC")
		}).
		Where("id = ?", id).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *repository) UpdateRequestStatus(ctx context.Context, id string, status domain.RequestStatus, currentStage string) error {
	return r.conn(ctx).
		Model(&LeaveRequest{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        status,
			"current_stage": currentStage,
		}).Error
}

// HasOverlappingActiveRequest checks the employee's own pending and
// approved requests against [start, end], date-inclusive.
func (r *repository) HasOverlappingActiveRequest(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Model(&LeaveRequest{}).
		Where("employee_id = ?", employeeID).
		Where("status IN ?", []domain.RequestStatus{domain.RequestPending, domain.RequestApproved}).
		Where("start_date <= ? AND end_date >= ?", end, start).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) ListRequestsByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.conn(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) ListRequestsByHierarchy(ctx context.Context, hierarchyID string) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.conn(ctx).
		Where("hierarchy_id = ?", hierarchyID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) CreateApprovals(ctx context.Context, approvals []Approval) error {
	if len(approvals) == 0 {
		return nil
	}
	return r.conn(ctx).Create(&approvals).Error
}

// FindApprovalForUpdate takes a row lock so two concurrent decisions
// on the same approval serialize; the loser then fails the status
// recheck with a conflict instead of silently double-applying.
func (r *repository) FindApprovalForUpdate(ctx context.Context, id string) (*Approval, error) {
	var a Approval
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindApprovalsByRequest(ctx context.Context, requestID string) ([]Approval, error) {
	var approvals []Approval
	err := r.conn(ctx).
		Where("request_id = ?", requestID).
		Order("step_order ASC").
		Find(&approvals).Error
	return approvals, err
}

// FindPendingApprovalsByLevel returns the raw candidate set for the
// visibility filter: pending approvals at the level, scoped to a
// hierarchy when one is given. Serial requests hold at most one
// pending approval by construction, so the minimum-order rule is
// already satisfied here; manager narrowing happens in the service.
func (r *repository) FindPendingApprovalsByLevel(ctx context.Context, level domain.ApprovalLevel, hierarchyID string) ([]PendingApprovalRow, error) {
	q := r.conn(ctx).
		Table("approvals").
		Select(`approvals.id::text AS approval_id,
			approvals.request_id::text AS request_id,
			approvals.level AS level,
			approvals.step_order AS step_order,
			approvals.approver_id::text AS approver_id,
			approvals.created_at AS created_at,
			leave_requests.reference AS reference,
			leave_requests.employee_id::text AS employee_id,
			leave_requests.hierarchy_id::text AS hierarchy_id,
			leave_requests.leave_type_id::text AS leave_type_id,
			leave_requests.start_date AS start_date,
			leave_requests.end_date AS end_date,
			leave_requests.flow_mode AS flow_mode,
			leave_requests.half_day AS half_day`).
		Joins("JOIN leave_requests ON leave_requests.id = approvals.request_id").
		Where("approvals.status = ?", domain.ApprovalPending).
		Where("approvals.level = ?", level).
		Where("leave_requests.deleted_at IS NULL")
	if hierarchyID != "" {
		q = q.Where("leave_requests.hierarchy_id = ?", hierarchyID)
	}

	var rows []PendingApprovalRow
	err := q.Order("approvals.created_at ASC").Scan(&rows).Error
	return rows, err
}

func (r *repository) UpdateApproval(ctx context.Context, a *Approval) error {
	return r.conn(ctx).Save(a).Error
}

// UnlockNextApproval flips the Blocked approval at stepOrder to
// Pending. No-op when the chain has no further step.
func (r *repository) UnlockNextApproval(ctx context.Context, requestID string, stepOrder int) error {
	return r.conn(ctx).
		Model(&Approval{}).
		Where("request_id = ? AND step_order = ? AND status = ?", requestID, stepOrder, domain.ApprovalBlocked).
		Update("status", domain.ApprovalPending).Error
}

package leave

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"go-leaveflow/internal/domain"
)

// CurrentStage markers used alongside level names.
const (
	StageParallel  = "PARALLEL"
	StageCompleted = "COMPLETED"
)

// LeaveRequest is created once at submission and mutated only by
// decision application afterwards. Status is always derived from the
// request's approvals. FlowMode is snapshotted from the leave type at
// submission so later policy edits cannot reshape an in-flight chain.
type LeaveRequest struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`
	// Reference numbers are issued by a per-hierarchy counter, so
	// uniqueness is scoped to the hierarchy.
	Reference   string    `gorm:"size:32;not null;uniqueIndex:uq_leave_reference,priority:2"`
	EmployeeID  uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_employee_dates"`
	LeaveTypeID uuid.UUID `gorm:"type:uuid;not null"`
	HierarchyID uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_hierarchy_status;uniqueIndex:uq_leave_reference,priority:1"`

	StartDate     time.Time       `gorm:"type:date;not null;index:idx_leave_employee_dates"`
	EndDate       time.Time       `gorm:"type:date;not null;index:idx_leave_employee_dates"`
	HalfDay       bool            `gorm:"not null;default:false"`
	HalfDayPeriod string          `gorm:"size:2"`
	RequestedDays decimal.Decimal `gorm:"type:numeric(6,2);not null"`
	ActualDays    decimal.Decimal `gorm:"type:numeric(6,2);not null"`
	Reason        string          `gorm:"type:text"`

	FlowMode                 domain.FlowMode      `gorm:"size:16;not null"`
	Status                   domain.RequestStatus `gorm:"size:16;not null;index:idx_leave_hierarchy_status"`
	CurrentStage             string               `gorm:"size:16;not null"`
	RequiresDirectorOverride bool                 `gorm:"not null;default:false"`

	Approvals []Approval `gorm:"foreignKey:RequestID"`

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// DebitQuantity is what an approval debits from the balance: half a
// day for half-day requests, the actual day count otherwise.
func (r LeaveRequest) DebitQuantity() decimal.Decimal {
	if r.HalfDay {
		return decimal.NewFromFloat(0.5)
	}
	return r.ActualDays
}

// Approval is one stage of a request's chain. ApproverID is the
// planned approver and may be empty when no user held the level's
// role at planning time; ActorID records who actually decided.
type Approval struct {
	ID        uuid.UUID             `gorm:"type:uuid;primaryKey"`
	RequestID uuid.UUID             `gorm:"type:uuid;not null;index:idx_approval_request"`
	Level     domain.ApprovalLevel  `gorm:"size:16;not null;index:idx_approval_level_status"`
	StepOrder int                   `gorm:"not null"`
	Status    domain.ApprovalStatus `gorm:"size:16;not null;index:idx_approval_level_status"`

	ApproverID *uuid.UUID `gorm:"type:uuid"`
	ActorID    *uuid.UUID `gorm:"type:uuid"`
	Comment    string     `gorm:"type:text"`
	DecidedAt  *time.Time

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// ComputeAggregate derives the request-level status from its
// approvals. Any rejection wins; all approved means approved; an
// empty chain is an auto-approval.
func ComputeAggregate(flowMode domain.FlowMode, approvals []Approval) (domain.RequestStatus, string) {
	if len(approvals) == 0 {
		return domain.RequestApproved, StageCompleted
	}

	allApproved := true
	var lowestPending *Approval
	for i := range approvals {
		a := &approvals[i]
		if a.Status == domain.ApprovalRejected {
			return domain.RequestRejected, StageCompleted
		}
		if a.Status != domain.ApprovalApproved {
			allApproved = false
		}
		if a.Status == domain.ApprovalPending {
			if lowestPending == nil || a.StepOrder < lowestPending.StepOrder {
				lowestPending = a
			}
		}
	}

	if allApproved {
		return domain.RequestApproved, StageCompleted
	}
	if flowMode == domain.FlowParallel {
		return domain.RequestPending, StageParallel
	}
	if lowestPending != nil {
		return domain.RequestPending, lowestPending.Level.String()
	}
	// Blocked steps remain but nothing is pending. Transient state
	// between a serial approval and its chain unlock.
	return domain.RequestPending, ""
}

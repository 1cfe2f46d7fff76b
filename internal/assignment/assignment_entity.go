package assignment

import (
	"time"

	"github.com/google/uuid"

	"go-leaveflow/internal/domain"
)

// ManagerAssignment binds one employee to one manager inside a
// hierarchy. At most one active row may exist per (hierarchy,
// employee) pair; a partial unique index (uq_assignment_active,
// WHERE active) backs the invariant so concurrent writers cannot
// both slip past the application-level check.
type ManagerAssignment struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	HierarchyID uuid.UUID `gorm:"type:uuid;not null;index:idx_assignment_lookup"`
	EmployeeID  uuid.UUID `gorm:"type:uuid;not null;index:idx_assignment_lookup"`
	ManagerID   uuid.UUID `gorm:"type:uuid;not null"`
	Active      bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

// ManagerDelegation hands a manager's approval duty to a delegate for
// an inclusive date interval. Historical rows stay around inactive;
// overlap among active rows for one delegator is rejected on create.
type ManagerDelegation struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	HierarchyID uuid.UUID `gorm:"type:uuid;not null;index:idx_delegation_lookup"`
	DelegatorID uuid.UUID `gorm:"type:uuid;not null;index:idx_delegation_lookup"`
	DelegateID  uuid.UUID `gorm:"type:uuid;not null"`
	StartDate   time.Time `gorm:"type:date;not null"`
	EndDate     time.Time `gorm:"type:date;not null"`
	Active      bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

// Covers reports whether the delegation interval fully contains the
// requested period. Date-only, inclusive on both ends.
func (d ManagerDelegation) Covers(periodStart, periodEnd time.Time) bool {
	return domain.RangeContains(d.StartDate, d.EndDate, periodStart, periodEnd)
}

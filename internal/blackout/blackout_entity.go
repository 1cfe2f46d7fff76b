package blackout

import (
	"time"

	"github.com/google/uuid"

	"go-leaveflow/internal/domain"
)

// BlackoutPeriod restricts leave submissions over a date interval.
// ScopeKey is read according to ScopeType: a leave type id for
// LEAVE_TYPE, a user id for USER, unused for GLOBAL.
type BlackoutPeriod struct {
	ID          uuid.UUID            `gorm:"type:uuid;primaryKey"`
	Name        string               `gorm:"size:255;not null"`
	StartDate   time.Time            `gorm:"type:date;not null;index:idx_blackout_interval"`
	EndDate     time.Time            `gorm:"type:date;not null;index:idx_blackout_interval"`
	ScopeType   domain.BlackoutScope `gorm:"size:16;not null"`
	ScopeKey    *uuid.UUID           `gorm:"type:uuid"`
	EnforceMode domain.EnforceMode   `gorm:"size:24;not null"`
	Active      bool                 `gorm:"not null;default:true"`
	CreatedAt   time.Time            `gorm:"autoCreateTime"`
	UpdatedAt   time.Time            `gorm:"autoUpdateTime"`
}

// Matches reports whether the period applies to the given employee
// and leave type. Department-scoped periods never match: the scope is
// stored but no membership join has been defined for it yet, and the
// enforcer keeps that gap explicit instead of guessing one.
func (b BlackoutPeriod) Matches(employeeID, leaveTypeID uuid.UUID) bool {
	switch b.ScopeType {
	case domain.ScopeGlobal:
		return true
	case domain.ScopeLeaveType:
		return b.ScopeKey != nil && *b.ScopeKey == leaveTypeID
	case domain.ScopeUser:
		return b.ScopeKey != nil && *b.ScopeKey == employeeID
	case domain.ScopeDepartment:
		return false
	}
	return false
}

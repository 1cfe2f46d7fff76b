package leavetype

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"go-leaveflow/internal/domain"
)

// LeaveType carries the approval policy for one category of leave.
// The planner reads the Requires* flags and FlowMode; the submission
// flow reads MaxConsecutiveDays and AllowHalfDay.
type LeaveType struct {
	ID                       uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name                     string          `gorm:"size:255;not null;uniqueIndex:uq_leave_type_name"`
	Description              string          `gorm:"size:1024"`
	RequiresManagerApproval  bool            `gorm:"not null;default:true"`
	RequiresDirectorApproval bool            `gorm:"not null;default:false"`
	RequiresHRApproval       bool            `gorm:"not null;default:true"`
	FlowMode                 domain.FlowMode `gorm:"size:16;not null;default:SERIAL"`
	MaxConsecutiveDays       int             `gorm:"not null;default:0"`
	AllowHalfDay             bool            `gorm:"not null;default:true"`
	DefaultAllowanceDays     decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`
	IsActive                 bool            `gorm:"not null;default:true"`
	CreatedAt                time.Time       `gorm:"autoCreateTime"`
	UpdatedAt                time.Time       `gorm:"autoUpdateTime"`
	DeletedAt                gorm.DeletedAt  `gorm:"index"`
}

// Levels returns the policy's approval sequence in canonical order.
// An empty result means the type has no policy gates at all.
func (t LeaveType) Levels() []domain.ApprovalLevel {
	var levels []domain.ApprovalLevel
	if t.RequiresManagerApproval {
		levels = append(levels, domain.LevelManager)
	}
	if t.RequiresDirectorApproval {
		levels = append(levels, domain.LevelDirector)
	}
	if t.RequiresHRApproval {
		levels = append(levels, domain.LevelHR)
	}
	return levels
}

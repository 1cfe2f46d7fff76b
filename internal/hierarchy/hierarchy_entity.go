package hierarchy

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Hierarchy is an organizational unit. Manager assignments, blackout
// periods and approver lookups are scoped by hierarchy id.
type Hierarchy struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name        string         `gorm:"size:255;not null;uniqueIndex:uq_hierarchy_name"`
	Description string         `gorm:"size:1024"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

package auth

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User maps the shared users table; the auth module only reads the
// columns it needs for credentials and token claims.
type User struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	HierarchyID *uuid.UUID `gorm:"type:uuid;index"`
	FirstName   string     `gorm:"type:varchar(100);not null"`
	LastName    string     `gorm:"type:varchar(100);not null"`
	Email       string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	Password    string     `gorm:"type:varchar(255);not null"`
	Role        string     `gorm:"type:varchar(50);not null;default:'EMPLOYEE'"`
	IsActive    bool       `gorm:"default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	HierarchyID *uuid.UUID `gorm:"type:uuid;index:idx_users_hierarchy_role"`
	FirstName   string     `gorm:"type:varchar(100);not null"`
	LastName    string     `gorm:"type:varchar(100);not null"`
	Email       string     `gorm:"type:varchar(255);uniqueIndex:uq_user_email;not null"`
	Password    string     `gorm:"type:varchar(255);not null"`
	Role        string     `gorm:"type:varchar(50);not null;default:'EMPLOYEE';index:idx_users_hierarchy_role"`
	IsActive    bool       `gorm:"default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

package notification

import (
	"time"

	"github.com/google/uuid"
)

// Kinds of notifications the consumers produce.
const (
	KindRequestSubmitted = "REQUEST_SUBMITTED"
	KindRequestDecided   = "REQUEST_DECIDED"
)

// Notification is one inbox entry for a user. Rows are written by the
// event consumers, never by request-path code.
type Notification struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_notification_user"`
	Kind      string    `gorm:"size:32;not null"`
	Title     string    `gorm:"size:255;not null"`
	Body      string    `gorm:"type:text"`
	Reference string    `gorm:"size:32"`
	ReadAt    *time.Time
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

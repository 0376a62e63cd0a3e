package models

import "time"

// Event types recorded to the audit log.
const (
	EventUserLoggedIn            = "user_logged_in"
	EventNotificationRead        = "notification_read"
	EventNotificationDeleted     = "notification_deleted"
	EventOrganizationUserAdded   = "organization_user_added"
	EventOrganizationUserRemoved = "organization_user_removed"
)

// EventQueueItem is a pending audit entry written by the controllers and
// drained into Event rows by the event processor.
type EventQueueItem struct {
	ID             int64   `gorm:"primaryKey;autoIncrement"`
	Type           string  `gorm:"type:varchar(64);not null"`
	UserID         string  `gorm:"type:varchar(36);not null"`
	NotificationID *string `gorm:"type:varchar(36)"`
	OccurredAt     time.Time
	Processed      bool `gorm:"not null;default:false;index"`
}

type Event struct {
	ID             int64   `gorm:"primaryKey;autoIncrement"`
	Type           string  `gorm:"type:varchar(64);not null"`
	UserID         string  `gorm:"type:varchar(36);index;not null"`
	NotificationID *string `gorm:"type:varchar(36)"`
	OccurredAt     time.Time
	RecordedAt     time.Time
}

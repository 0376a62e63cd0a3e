package models

import "time"

// NotificationStatus holds one user's read/deleted state for one
// notification. At most one row per (notification, user) pair; a missing row
// means neither date is set. Deleting a notification for a user only sets
// DeletedDate here, the notification row itself is never removed.
type NotificationStatus struct {
	NotificationID string `gorm:"type:varchar(36);primaryKey"`
	UserID         string `gorm:"type:varchar(36);primaryKey"`
	ReadDate       *time.Time
	DeletedDate    *time.Time
}

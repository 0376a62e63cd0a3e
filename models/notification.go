package models

import "time"

// Client platform a notification targets. ClientTypeAll matches every
// requesting platform.
const (
	ClientTypeAll     = "all"
	ClientTypeWeb     = "web"
	ClientTypeBrowser = "browser"
	ClientTypeDesktop = "desktop"
	ClientTypeMobile  = "mobile"
)

// Priority values, higher means more urgent.
const (
	PriorityInformational = 0
	PriorityLow           = 1
	PriorityMedium        = 2
	PriorityHigh          = 3
	PriorityCritical      = 4
)

// Notification is a server-pushed message. Title and Body are encrypted
// blobs; the server stores and returns them without ever decrypting.
//
// Visibility: Global notifications reach everyone, UserID targets one user,
// OrganizationID targets members of one organization. UserID and
// OrganizationID may both be set ("this user within this organization");
// Global implies both are nil.
type Notification struct {
	ID             string  `gorm:"type:varchar(36);primaryKey"`
	Global         bool    `gorm:"not null;default:false"`
	UserID         *string `gorm:"type:varchar(36);index"`
	OrganizationID *string `gorm:"type:varchar(36);index"`
	ClientType     string  `gorm:"type:varchar(16);not null"`
	Priority       int     `gorm:"not null"`
	Title          string  `gorm:"type:text;not null"`
	Body           string  `gorm:"type:text;not null"`
	CreationDate   time.Time
	RevisionDate   time.Time
}

func ValidClientType(clientType string) bool {
	switch clientType {
	case ClientTypeAll, ClientTypeWeb, ClientTypeBrowser, ClientTypeDesktop, ClientTypeMobile:
		return true
	}
	return false
}

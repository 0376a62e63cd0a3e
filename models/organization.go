package models

import "time"

type Organization struct {
	ID        string `gorm:"type:varchar(36);primaryKey"`
	Name      string `gorm:"type:varchar(255); not null"`
	Enabled   bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrganizationUser is one membership row; the set of rows for a user is the
// organization half of the requesting principal.
type OrganizationUser struct {
	ID             string       `gorm:"type:varchar(36);primaryKey"`
	OrganizationID string       `gorm:"type:varchar(36);index;not null"`
	Organization   Organization `gorm:"foreignKey:OrganizationID;references:ID;constraint:OnDelete:CASCADE"`
	UserID         string       `gorm:"type:varchar(36);index;not null"`
	User           User         `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Role           string       `gorm:"type:varchar(255); not null"`
	CreatedAt      time.Time
}

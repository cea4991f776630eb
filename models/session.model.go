package models

import (
	"time"

	"gorm.io/gorm"
)

// Session is the locally persisted dashboard session, rehydrated at startup
// from the stored token
type Session struct {
	gorm.Model
	Token     string    `gorm:"type:text;not null" json:"-"`
	UserID    uint      `gorm:"not null;index" json:"userId"`
	Email     string    `gorm:"type:varchar(255)" json:"email"`
	Username  string    `gorm:"type:varchar(255)" json:"username"`
	RolesJSON string    `gorm:"type:text" json:"-"` // JSON-encoded role list
	ExpiresAt time.Time `gorm:"not null" json:"expiresAt"`
	IsDeleted bool      `gorm:"default:false" json:"isDeleted"`
}

func (Session) TableName() string {
	return "sessions"
}

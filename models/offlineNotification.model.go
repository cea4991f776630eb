package models

import (
	"time"

	"gorm.io/gorm"
)

// OfflineNotification is a locally persisted notification send that failed and
// is waiting for a flush attempt
type OfflineNotification struct {
	gorm.Model
	QueueID   string    `gorm:"type:varchar(36);uniqueIndex" json:"queueId"`
	UserID    uint      `gorm:"not null;index" json:"userId"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Type      string    `gorm:"type:varchar(50);not null" json:"type"` // already canonical
	Attempts  int       `gorm:"default:0" json:"attempts"`
	LastError string    `gorm:"type:text" json:"lastError"`
	QueuedAt  time.Time `gorm:"not null" json:"queuedAt"`
	IsDeleted bool      `gorm:"default:false" json:"isDeleted"`
}

func (OfflineNotification) TableName() string {
	return "offline_notifications"
}

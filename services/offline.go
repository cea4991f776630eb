package services

import (
	"context"
	"log"
	"time"

	"edudash/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationSender is the part of the notification service the offline
// queue needs; narrowed for testability
type NotificationSender interface {
	Send(ctx context.Context, userID uint, content, typ string) (models.Notification, error)
}

// OfflineQueue persists notification sends that failed so they can be
// retried by the flush scheduler
type OfflineQueue struct {
	db     *gorm.DB
	sender NotificationSender
}

// NewOfflineQueue creates an OfflineQueue on the local state database
func NewOfflineQueue(db *gorm.DB, sender NotificationSender) *OfflineQueue {
	return &OfflineQueue{db: db, sender: sender}
}

// SaveOfflineNotification appends a pending send to the queue. The type is
// normalized on the way in so flush attempts never transmit an alias.
func (q *OfflineQueue) SaveOfflineNotification(userID uint, content, typ string) (models.OfflineNotification, error) {
	entry := models.OfflineNotification{
		QueueID:  uuid.NewString(),
		UserID:   userID,
		Content:  content,
		Type:     string(NormalizeNotificationType(typ)),
		QueuedAt: time.Now(),
	}
	if err := q.db.Create(&entry).Error; err != nil {
		return models.OfflineNotification{}, err
	}
	return entry, nil
}

// Pending returns the queued entries waiting for a flush
func (q *OfflineQueue) Pending() ([]models.OfflineNotification, error) {
	var pending []models.OfflineNotification
	err := q.db.Where("is_deleted = false").Order("queued_at asc").Find(&pending).Error
	return pending, err
}

// ProcessPendingOfflineNotifications attempts every queued entry and
// partitions the results: processed entries are removed, failing ones stay
// for the next flush with their attempt count bumped and the error recorded.
func (q *OfflineQueue) ProcessPendingOfflineNotifications(ctx context.Context) (processed, remaining []models.OfflineNotification, err error) {
	pending, err := q.Pending()
	if err != nil {
		return nil, nil, err
	}

	processed = []models.OfflineNotification{}
	remaining = []models.OfflineNotification{}

	for _, entry := range pending {
		if _, serr := q.sender.Send(ctx, entry.UserID, entry.Content, entry.Type); serr != nil {
			entry.Attempts++
			entry.LastError = serr.Error()
			if uerr := q.db.Save(&entry).Error; uerr != nil {
				log.Printf("Failed to update offline entry %s: %v", entry.QueueID, uerr)
			}
			remaining = append(remaining, entry)
			continue
		}

		entry.IsDeleted = true
		if uerr := q.db.Save(&entry).Error; uerr != nil {
			log.Printf("Failed to retire offline entry %s: %v", entry.QueueID, uerr)
		}
		processed = append(processed, entry)
	}

	return processed, remaining, nil
}

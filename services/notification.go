package services

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"edudash/endpoints"
	"edudash/models"
	"edudash/upstream"
	"edudash/utils"

	"github.com/jinzhu/now"
)

// NotificationService translates notification operations into upstream calls.
//
// Read methods never return an unusable value: on failure they log, return
// the typed empty fallback ([] or a zero page) and the error, so callers can
// either distinguish a failed read from an empty one or ignore the error and
// serve the fallback. Write methods propagate errors unchanged.
type NotificationService struct {
	api        *upstream.Client
	recentDays int
	retryMax   int
	retryDelay time.Duration
}

// NewNotificationService creates a NotificationService
func NewNotificationService(api *upstream.Client, recentDays, retryMax int, retryDelay time.Duration) *NotificationService {
	if recentDays <= 0 {
		recentDays = 7
	}
	if retryMax <= 0 {
		retryMax = 3
	}
	return &NotificationService{api: api, recentDays: recentDays, retryMax: retryMax, retryDelay: retryDelay}
}

func userParam(userID uint) map[string]string {
	return map[string]string{"userId": strconv.FormatUint(uint64(userID), 10)}
}

func pageQuery(page, size int) map[string]string {
	return map[string]string{
		"page": strconv.Itoa(page),
		"size": strconv.Itoa(size),
	}
}

// fetchList is the shared read path for list-shaped queries
func (s *NotificationService) fetchList(ctx context.Context, endpoint string, params, query map[string]string) ([]models.Notification, error) {
	path, err := endpoints.Build(endpoint, params)
	if err != nil {
		log.Printf("Failed to build %s: %v", endpoint, err)
		return []models.Notification{}, err
	}

	items := []models.Notification{}
	if err := s.api.Get(ctx, path, query, &items); err != nil {
		log.Printf("Failed to fetch %s: %v", endpoint, err)
		return []models.Notification{}, err
	}
	return items, nil
}

// fetchPage is the shared read path for page-shaped queries
func (s *NotificationService) fetchPage(ctx context.Context, endpoint string, params, query map[string]string) (models.NotificationPage, error) {
	path, err := endpoints.Build(endpoint, params)
	if err != nil {
		log.Printf("Failed to build %s: %v", endpoint, err)
		return models.EmptyPage[models.Notification](), err
	}

	page := models.EmptyPage[models.Notification]()
	if err := s.api.Get(ctx, path, query, &page); err != nil {
		log.Printf("Failed to fetch %s: %v", endpoint, err)
		return models.EmptyPage[models.Notification](), err
	}
	if page.Content == nil {
		page.Content = []models.Notification{}
	}
	return page, nil
}

// FetchAll returns every notification in the system (admin view)
func (s *NotificationService) FetchAll(ctx context.Context) ([]models.Notification, error) {
	return s.fetchList(ctx, "notifications.all", nil, nil)
}

// FetchAllPaged returns a page of all notifications (admin view)
func (s *NotificationService) FetchAllPaged(ctx context.Context, page, size int) (models.NotificationPage, error) {
	return s.fetchPage(ctx, "notifications.allPaged", nil, pageQuery(page, size))
}

// FetchByUser returns every notification for a user
func (s *NotificationService) FetchByUser(ctx context.Context, userID uint) ([]models.Notification, error) {
	return s.fetchList(ctx, "notifications.byUser", userParam(userID), nil)
}

// FetchByUserPaged returns one page of a user's notifications
func (s *NotificationService) FetchByUserPaged(ctx context.Context, userID uint, page, size int) (models.NotificationPage, error) {
	return s.fetchPage(ctx, "notifications.byUserPaged", userParam(userID), pageQuery(page, size))
}

// FetchByType returns a user's notifications of one category. The type is
// normalized before it reaches the wire.
func (s *NotificationService) FetchByType(ctx context.Context, userID uint, typ string) ([]models.Notification, error) {
	params := userParam(userID)
	params["type"] = string(NormalizeNotificationType(typ))
	return s.fetchList(ctx, "notifications.byType", params, nil)
}

// FetchByTypePaged returns one page of a user's notifications of one category
func (s *NotificationService) FetchByTypePaged(ctx context.Context, userID uint, typ string, page, size int) (models.NotificationPage, error) {
	params := userParam(userID)
	params["type"] = string(NormalizeNotificationType(typ))
	return s.fetchPage(ctx, "notifications.byTypePaged", params, pageQuery(page, size))
}

// FetchByCourse returns a user's notifications tied to a course
func (s *NotificationService) FetchByCourse(ctx context.Context, userID, courseID uint) ([]models.Notification, error) {
	params := userParam(userID)
	params["courseId"] = strconv.FormatUint(uint64(courseID), 10)
	return s.fetchList(ctx, "notifications.byCourse", params, nil)
}

// FetchByPayment returns a user's notifications tied to a payment
func (s *NotificationService) FetchByPayment(ctx context.Context, userID, paymentID uint) ([]models.Notification, error) {
	params := userParam(userID)
	params["paymentId"] = strconv.FormatUint(uint64(paymentID), 10)
	return s.fetchList(ctx, "notifications.byPayment", params, nil)
}

// FetchUnread returns a user's unread notifications
func (s *NotificationService) FetchUnread(ctx context.Context, userID uint) ([]models.Notification, error) {
	return s.fetchList(ctx, "notifications.unread", userParam(userID), nil)
}

// FetchUnreadCount returns the number of unread notifications for a user
func (s *NotificationService) FetchUnreadCount(ctx context.Context, userID uint) (int64, error) {
	path, err := endpoints.Build("notifications.unreadCount", userParam(userID))
	if err != nil {
		return 0, err
	}
	var count int64
	if err := s.api.Get(ctx, path, nil, &count); err != nil {
		log.Printf("Failed to fetch unread count for user %d: %v", userID, err)
		return 0, err
	}
	return count, nil
}

// FetchRecent returns a user's notifications since the start of the recent
// window (day-aligned)
func (s *NotificationService) FetchRecent(ctx context.Context, userID uint) ([]models.Notification, error) {
	from := now.BeginningOfDay().AddDate(0, 0, -s.recentDays)
	return s.FetchByDateRange(ctx, userID, from, time.Now())
}

// FetchByDateRange returns a user's notifications sent inside [from, to]
func (s *NotificationService) FetchByDateRange(ctx context.Context, userID uint, from, to time.Time) ([]models.Notification, error) {
	query := map[string]string{
		"from": from.Format(time.RFC3339),
		"to":   to.Format(time.RFC3339),
	}
	return s.fetchList(ctx, "notifications.byDateRange", userParam(userID), query)
}

// Search returns a user's notifications whose content matches term
func (s *NotificationService) Search(ctx context.Context, userID uint, term string) ([]models.Notification, error) {
	return s.fetchList(ctx, "notifications.search", userParam(userID), map[string]string{"q": term})
}

// SearchPaged returns one page of content-matching notifications
func (s *NotificationService) SearchPaged(ctx context.Context, userID uint, term string, page, size int) (models.NotificationPage, error) {
	query := pageQuery(page, size)
	query["q"] = term
	return s.fetchPage(ctx, "notifications.searchPaged", userParam(userID), query)
}

// FetchStatistics returns the per-user notification summary
func (s *NotificationService) FetchStatistics(ctx context.Context, userID uint) (models.NotificationStats, error) {
	path, err := endpoints.Build("notifications.stats", userParam(userID))
	if err != nil {
		return models.NotificationStats{}, err
	}
	var stats models.NotificationStats
	if err := s.api.Get(ctx, path, nil, &stats); err != nil {
		log.Printf("Failed to fetch notification statistics for user %d: %v", userID, err)
		return models.NotificationStats{}, err
	}
	return stats, nil
}

// FetchNotificationsWithRetry fetches a user's notifications with bounded
// retries and a linearly growing delay. After the attempts are exhausted it
// gives up and returns the empty fallback.
func (s *NotificationService) FetchNotificationsWithRetry(ctx context.Context, userID uint, maxRetries int) []models.Notification {
	if maxRetries <= 0 {
		maxRetries = s.retryMax
	}

	var items []models.Notification
	err := utils.Retry(ctx, maxRetries, utils.LinearDelay(s.retryDelay), func() error {
		fetched, ferr := s.FetchByUser(ctx, userID)
		if ferr != nil {
			return ferr
		}
		items = fetched
		return nil
	})
	if err != nil {
		log.Printf("Giving up on notifications for user %d after %d attempts: %v", userID, maxRetries, err)
		return []models.Notification{}
	}
	return items
}

// Create creates a notification record upstream
func (s *NotificationService) Create(ctx context.Context, input models.NotificationInput) (models.Notification, error) {
	input.Type = string(NormalizeNotificationType(input.Type))

	path, err := endpoints.Build("notifications.create", nil)
	if err != nil {
		return models.Notification{}, err
	}
	var created models.Notification
	if err := s.api.Post(ctx, path, input, &created); err != nil {
		return models.Notification{}, fmt.Errorf("create notification: %w", err)
	}
	return created, nil
}

// MarkAsRead marks one notification as read
func (s *NotificationService) MarkAsRead(ctx context.Context, id uint) error {
	path, err := endpoints.Build("notifications.markRead", map[string]string{"id": strconv.FormatUint(uint64(id), 10)})
	if err != nil {
		return err
	}
	if err := s.api.Put(ctx, path, nil, nil); err != nil {
		return fmt.Errorf("mark notification %d as read: %w", id, err)
	}
	return nil
}

// MarkAllAsRead marks all of a user's notifications as read, optionally
// scoped to one category
func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uint, typ string) error {
	path, err := endpoints.Build("notifications.markAllRead", userParam(userID))
	if err != nil {
		return err
	}
	var body any
	if typ != "" {
		body = map[string]string{"type": string(NormalizeNotificationType(typ))}
	}
	if err := s.api.Put(ctx, path, body, nil); err != nil {
		return fmt.Errorf("mark all as read for user %d: %w", userID, err)
	}
	return nil
}

// Delete deletes one notification
func (s *NotificationService) Delete(ctx context.Context, id uint) error {
	path, err := endpoints.Build("notifications.delete", map[string]string{"id": strconv.FormatUint(uint64(id), 10)})
	if err != nil {
		return err
	}
	if err := s.api.Delete(ctx, path, nil); err != nil {
		return fmt.Errorf("delete notification %d: %w", id, err)
	}
	return nil
}

// DeleteAllRead deletes every read notification of a user
func (s *NotificationService) DeleteAllRead(ctx context.Context, userID uint) error {
	path, err := endpoints.Build("notifications.deleteAllRead", userParam(userID))
	if err != nil {
		return err
	}
	if err := s.api.Delete(ctx, path, nil); err != nil {
		return fmt.Errorf("delete read notifications for user %d: %w", userID, err)
	}
	return nil
}

// Send sends a notification to one user. The type is normalized before the
// request is constructed.
func (s *NotificationService) Send(ctx context.Context, userID uint, content, typ string) (models.Notification, error) {
	path, err := endpoints.Build("notifications.send", nil)
	if err != nil {
		return models.Notification{}, err
	}
	body := map[string]any{
		"userId":  userID,
		"content": content,
		"type":    string(NormalizeNotificationType(typ)),
	}
	var sent models.Notification
	if err := s.api.Post(ctx, path, body, &sent); err != nil {
		return models.Notification{}, fmt.Errorf("send notification to user %d: %w", userID, err)
	}
	return sent, nil
}

// SendMulti sends the same notification to several users
func (s *NotificationService) SendMulti(ctx context.Context, userIDs []uint, content, typ string) error {
	path, err := endpoints.Build("notifications.sendMulti", nil)
	if err != nil {
		return err
	}
	body := map[string]any{
		"userIds": userIDs,
		"content": content,
		"type":    string(NormalizeNotificationType(typ)),
	}
	if err := s.api.Post(ctx, path, body, nil); err != nil {
		return fmt.Errorf("send notification to %d users: %w", len(userIDs), err)
	}
	return nil
}

// UpdateContent replaces a notification's content text
func (s *NotificationService) UpdateContent(ctx context.Context, id uint, content string) error {
	path, err := endpoints.Build("notifications.updateContent", map[string]string{"id": strconv.FormatUint(uint64(id), 10)})
	if err != nil {
		return err
	}
	if err := s.api.Put(ctx, path, map[string]string{"content": content}, nil); err != nil {
		return fmt.Errorf("update content of notification %d: %w", id, err)
	}
	return nil
}

package notificationController

import (
	"time"

	"edudash/cache"
	"edudash/config"
	"edudash/middleware"
	"edudash/services"
	notificationValidator "edudash/validators/notification"

	"github.com/gofiber/fiber/v2"
)

var (
	svc        *services.NotificationService
	queryCache *cache.QueryCache
	queue      *services.OfflineQueue
	toaster    services.Toaster
)

// Init wires the controller's collaborators. Called once from main.
func Init(s *services.NotificationService, qc *cache.QueryCache, q *services.OfflineQueue, t services.Toaster) {
	svc = s
	queryCache = qc
	queue = q
	toaster = t
}

// feedFor builds a feed for the authenticated view from query parameters.
// The filters are mutually exclusive; the feed resolver picks the active one.
func feedFor(c *fiber.Ctx) *services.NotificationFeed {
	userID := uint(c.QueryInt("userId", int(c.Locals("userId").(uint))))

	opts := services.FeedOptions{
		AllUsers:   c.QueryBool("all", false),
		Search:     c.Query("search"),
		CourseID:   uint(c.QueryInt("courseId", 0)),
		PaymentID:  uint(c.QueryInt("paymentId", 0)),
		Type:       c.Query("type"),
		UnreadOnly: c.QueryBool("unread", false),
		RecentOnly: c.QueryBool("recent", false),
		Page:       c.QueryInt("page", 0),
		Size:       c.QueryInt("limit", 20),
		Paginated:  c.QueryBool("paginated", false),
		Infinite:   c.QueryBool("infinite", false),
	}
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			opts.From = t
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			opts.To = t
		}
	}

	feed := services.NewNotificationFeed(svc, queryCache, toaster, userID, opts)
	if config.AppConfig != nil && config.AppConfig.SettleDelayMs > 0 {
		feed.SetSettle(time.Duration(config.AppConfig.SettleDelayMs) * time.Millisecond)
	}
	return feed
}

// List serves the notification feed for the active filter combination
func List(c *fiber.Ctx) error {
	feed := feedFor(c)
	data := feed.Load(c.Context())
	if feed.LastErr() != nil {
		// Fallback shape is still served; flag the staleness in the message
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Notifications may be stale!", data)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notifications fetched!", data)
}

// UnreadCount serves the unread counter badge
func UnreadCount(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	count, err := svc.FetchUnreadCount(c.Context(), userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Unread count may be stale!", fiber.Map{"count": count})
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Unread count fetched!", fiber.Map{"count": count})
}

// Stats serves the per-user notification summary
func Stats(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	stats, err := svc.FetchStatistics(c.Context(), userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Statistics may be stale!", stats)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Statistics fetched!", stats)
}

// MarkRead marks one notification read
func MarkRead(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid notification id!", nil)
	}

	feed := feedFor(c)
	if err := feed.MarkRead(c.Context(), uint(id)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark notification as read!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notification marked as read!", nil)
}

// MarkAllRead marks all notifications read, optionally scoped by type
func MarkAllRead(c *fiber.Ctx) error {
	feed := feedFor(c)

	typ := c.Query("type")
	var err error
	if typ != "" {
		err = feed.MarkAllReadByType(c.Context(), typ)
	} else {
		err = feed.MarkAllRead(c.Context())
	}
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark notifications as read!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "All notifications marked as read!", nil)
}

// Delete deletes one notification
func Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid notification id!", nil)
	}

	feed := feedFor(c)
	if err := feed.Delete(c.Context(), uint(id)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete notification!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notification deleted!", nil)
}

// DeleteAllRead deletes every read notification of the user
func DeleteAllRead(c *fiber.Ctx) error {
	feed := feedFor(c)
	if err := feed.DeleteAllRead(c.Context()); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete read notifications!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Read notifications deleted!", nil)
}

// Send sends a notification to one user. A failed send is parked in the
// offline queue for the flush scheduler.
func Send(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSend").(*notificationValidator.SendRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	feed := feedFor(c)
	if err := feed.Send(c.Context(), reqData.UserID, reqData.Content, reqData.Type); err != nil {
		if _, qerr := queue.SaveOfflineNotification(reqData.UserID, reqData.Content, reqData.Type); qerr == nil {
			return middleware.JsonResponse(c, fiber.StatusAccepted, true, "Notification queued for later delivery!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send notification!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notification sent!", nil)
}

// SendMulti sends the same notification to several users
func SendMulti(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSendMulti").(*notificationValidator.SendMultiRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	feed := feedFor(c)
	if err := feed.SendMulti(c.Context(), reqData.UserIDs, reqData.Content, reqData.Type); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send notifications!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notifications sent!", nil)
}

// UpdateContent replaces a notification's content text
func UpdateContent(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid notification id!", nil)
	}

	reqData, ok := c.Locals("validatedUpdateContent").(*notificationValidator.UpdateContentRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	feed := feedFor(c)
	if err := feed.UpdateContent(c.Context(), uint(id), reqData.Content); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update notification!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notification updated!", nil)
}

// Refresh invalidates the cached feed so the next read is fresh
func Refresh(c *fiber.Ctx) error {
	feed := feedFor(c)
	feed.Refresh(c.Context())
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notifications refreshed!", nil)
}

// ForceRefresh repeats invalidation with backoff until the cache settles
func ForceRefresh(c *fiber.Ctx) error {
	feed := feedFor(c)
	if err := feed.ForceRefresh(c.Context()); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to refresh notifications!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notifications refreshed!", nil)
}

// Debug probes every legacy category for the user
func Debug(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	report := svc.DebugNotifications(c.Context(), userID)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Diagnostic report assembled!", report)
}

// Health checks the upstream notification API
func Health(c *fiber.Ctx) error {
	result := svc.CheckNotificationAPI(c.Context())
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notification API checked!", result)
}

// Sync refetches every canonical category for the user
func Sync(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	synced := svc.SyncNotifications(c.Context(), userID)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notifications synced!", synced)
}

// FlushOffline processes the pending offline queue on demand
func FlushOffline(c *fiber.Ctx) error {
	processed, remaining, err := queue.ProcessPendingOfflineNotifications(c.Context())
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process offline queue!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Offline queue processed!", fiber.Map{
		"processed": len(processed),
		"remaining": len(remaining),
	})
}

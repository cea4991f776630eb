package services

import (
	"context"
	"sort"

	"edudash/endpoints"
	"edudash/models"
)

// DiagnosticEntry is one probe result in a diagnostic fan-out. A failing
// category records its error without aborting the other probes.
type DiagnosticEntry struct {
	Count int    `json:"count"`
	Error string `json:"error,omitempty"`
}

// DebugNotifications probes every legacy category plus the unread count and
// statistics for a user and assembles a result map keyed by category.
func (s *NotificationService) DebugNotifications(ctx context.Context, userID uint) map[string]DiagnosticEntry {
	report := make(map[string]DiagnosticEntry)

	aliases := LegacyTypeAliases()
	sort.Strings(aliases)
	for _, alias := range aliases {
		items, err := s.FetchByType(ctx, userID, alias)
		entry := DiagnosticEntry{Count: len(items)}
		if err != nil {
			entry.Error = err.Error()
		}
		report[alias] = entry
	}

	unread, err := s.FetchUnreadCount(ctx, userID)
	entry := DiagnosticEntry{Count: int(unread)}
	if err != nil {
		entry.Error = err.Error()
	}
	report["unreadCount"] = entry

	stats, err := s.FetchStatistics(ctx, userID)
	entry = DiagnosticEntry{Count: int(stats.Total)}
	if err != nil {
		entry.Error = err.Error()
	}
	report["statistics"] = entry

	return report
}

// CheckNotificationAPI verifies the notification endpoints answer at all
func (s *NotificationService) CheckNotificationAPI(ctx context.Context) map[string]string {
	result := make(map[string]string)

	path, err := endpoints.Build("notifications.health", nil)
	if err == nil {
		err = s.api.Get(ctx, path, nil, nil)
	}
	if err != nil {
		result["health"] = err.Error()
	} else {
		result["health"] = "ok"
	}

	if _, err := s.FetchAllPaged(ctx, 0, 1); err != nil {
		result["paginated"] = err.Error()
	} else {
		result["paginated"] = "ok"
	}

	return result
}

// SyncNotifications refetches every canonical category for a user, capturing
// per-category errors independently, and returns the refreshed items grouped
// by category.
func (s *NotificationService) SyncNotifications(ctx context.Context, userID uint) map[string][]models.Notification {
	synced := make(map[string][]models.Notification)
	for _, typ := range CanonicalTypes() {
		items, err := s.FetchByType(ctx, userID, string(typ))
		if err != nil {
			// Keep the empty fallback for this category, others continue
			synced[string(typ)] = []models.Notification{}
			continue
		}
		synced[string(typ)] = items
	}

	if unread, err := s.FetchUnread(ctx, userID); err == nil {
		synced["unread"] = unread
	} else {
		synced["unread"] = []models.Notification{}
	}

	return synced
}

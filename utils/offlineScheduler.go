package utils

import (
	"context"
	"fmt"
	"log"
	"time"

	"edudash/models"

	"github.com/robfig/cron/v3"
)

// OfflineFlusher is the queue operation the scheduler drives
type OfflineFlusher interface {
	ProcessPendingOfflineNotifications(ctx context.Context) (processed, remaining []models.OfflineNotification, err error)
}

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[OFFLINE-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// StartOfflineScheduler flushes the offline notification queue on the given
// cron spec. Failing entries stay queued for the next run.
func StartOfflineScheduler(queue OfflineFlusher, spec string) *cron.Cron {
	c := cron.New()

	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		processed, remaining, err := queue.ProcessPendingOfflineNotifications(ctx)
		if err != nil {
			logScheduler("Error processing offline queue: " + err.Error())
			return
		}
		if len(processed) == 0 && len(remaining) == 0 {
			return
		}
		logScheduler(fmt.Sprintf("Offline queue flushed: %d processed, %d remaining", len(processed), len(remaining)))
	})
	if err != nil {
		log.Fatalf("Invalid offline flush cron spec %q: %v", spec, err)
	}

	c.Start()
	logScheduler("Offline queue scheduler started with spec " + spec)
	return c
}

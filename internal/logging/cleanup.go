package logging

import (
	"log/slog"
	"time"

	"github.com/eylulkaya/lostfound/internal/models"
	"gorm.io/gorm"
)

// StartCleanup runs two sweeps until done closes: expired activity_logs every
// minute, and system_logs older than 30 days once a day.
func StartCleanup(db *gorm.DB, done chan struct{}) {
	go func() {
		activityTicker := time.NewTicker(time.Minute)
		defer activityTicker.Stop()
		logTicker := time.NewTicker(24 * time.Hour)
		defer logTicker.Stop()

		for {
			select {
			case <-activityTicker.C:
				result := db.Where("expires_at < ?", time.Now()).Delete(&models.ActivityLog{})
				if result.Error != nil {
					slog.Error("activity log sweep failed", "error", result.Error)
				}
			case <-logTicker.C:
				cutoff := time.Now().AddDate(0, 0, -30)
				result := db.Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
				if result.Error != nil {
					slog.Error("system log cleanup failed", "error", result.Error)
				} else if result.RowsAffected > 0 {
					slog.Info("system log cleanup completed", "deleted", result.RowsAffected)
				}
			case <-done:
				return
			}
		}
	}()
}

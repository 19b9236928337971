package services

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/eylulkaya/lostfound/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// activityTTL is how long audit rows live before the cleanup sweep removes them.
const activityTTL = 15 * time.Minute

type ActivityService struct {
	db *gorm.DB
}

func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{db: db}
}

// Record appends an audit row. Best effort, same contract as notifications.
func (s *ActivityService) Record(actor, activity string, details map[string]any, verifier, result string) {
	now := time.Now()
	entry := models.ActivityLog{
		ID:        uuid.New(),
		Actor:     actor,
		Activity:  activity,
		Verifier:  verifier,
		Result:    result,
		CreatedAt: now,
		ExpiresAt: now.Add(activityTTL),
	}
	if len(details) > 0 {
		if b, err := json.Marshal(details); err == nil {
			entry.Details = datatypes.JSON(b)
		}
	}
	if err := s.db.Create(&entry).Error; err != nil {
		slog.Error("failed to record activity", "activity", activity, "error", err)
	}
}

package services

import (
	"log/slog"

	"github.com/eylulkaya/lostfound/internal/apperr"
	"github.com/eylulkaya/lostfound/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// Emit appends a notification for a user. Best effort: failures are logged and
// swallowed so workflow transitions never fail on the side channel.
func (s *NotificationService) Emit(userID uuid.UUID, message, notifType string) {
	n := models.Notification{
		ID:      uuid.New(),
		UserID:  userID,
		Message: message,
		Type:    notifType,
	}
	if err := s.db.Create(&n).Error; err != nil {
		slog.Error("failed to emit notification", "user_id", userID.String(), "type", notifType, "error", err)
	}
}

func (s *NotificationService) ListForUser(userID uuid.UUID) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

// MarkRead flips is_read on a notification owned by userID.
func (s *NotificationService) MarkRead(id, userID uuid.UUID) error {
	result := s.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("notification not found")
	}
	return nil
}

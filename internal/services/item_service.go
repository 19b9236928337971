package services

import (
	"fmt"
	"time"

	"github.com/eylulkaya/lostfound/internal/apperr"
	"github.com/eylulkaya/lostfound/internal/authctx"
	"github.com/eylulkaya/lostfound/internal/config"
	"github.com/eylulkaya/lostfound/internal/dto"
	"github.com/eylulkaya/lostfound/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Item collection selector used by the staff review endpoints.
const (
	ItemTypeLost  = "lost"
	ItemTypeFound = "found"
)

type ItemService struct {
	db            *gorm.DB
	cfg           *config.Config
	notifications *NotificationService
	activity      *ActivityService
}

func NewItemService(db *gorm.DB, cfg *config.Config, notifications *NotificationService, activity *ActivityService) *ItemService {
	return &ItemService{db: db, cfg: cfg, notifications: notifications, activity: activity}
}

// CreateLost stores a new lost-item report. Approval state always starts at
// pending no matter what the client sent.
func (s *ItemService) CreateLost(req *dto.CreateLostItemRequest, reporterID uuid.UUID) (*models.LostItem, error) {
	categoryID, err := s.validateItemFields(req.Name, req.CategoryID)
	if err != nil {
		return nil, err
	}
	dateLost, err := parseDate("date_lost", req.DateLost)
	if err != nil {
		return nil, err
	}

	item := models.LostItem{
		ID:             uuid.New(),
		Name:           req.Name,
		CategoryID:     categoryID,
		LostLocation:   req.LostLocation,
		Description:    req.Description,
		DateLost:       dateLost,
		ImageURL:       req.ImageURL,
		ReporterID:     reporterID,
		ContactInfo:    req.ContactInfo,
		Status:         models.LostStatusOpen,
		ApprovalStatus: models.ApprovalPending,
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("failed to create lost item: %w", err)
	}
	return &item, nil
}

func (s *ItemService) CreateFound(req *dto.CreateFoundItemRequest, posterID uuid.UUID) (*models.FoundItem, error) {
	categoryID, err := s.validateItemFields(req.Name, req.CategoryID)
	if err != nil {
		return nil, err
	}
	dateFound, err := parseDate("date_found", req.DateFound)
	if err != nil {
		return nil, err
	}

	item := models.FoundItem{
		ID:             uuid.New(),
		Name:           req.Name,
		CategoryID:     categoryID,
		FoundLocation:  req.FoundLocation,
		Description:    req.Description,
		DateFound:      dateFound,
		ImageURL:       req.ImageURL,
		PostedBy:       posterID,
		ContactInfo:    req.ContactInfo,
		Status:         models.FoundStatusPending,
		ApprovalStatus: models.ApprovalPending,
		ClaimStatus:    models.ClaimLatchNone,
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("failed to create found item: %w", err)
	}
	return &item, nil
}

func (s *ItemService) validateItemFields(name, categoryID string) (uuid.UUID, error) {
	if name == "" {
		return uuid.Nil, apperr.Validation("item name is required")
	}
	catID, err := uuid.Parse(categoryID)
	if err != nil {
		return uuid.Nil, apperr.Validation("invalid category_id")
	}
	var category models.Category
	if err := s.db.First(&category, "id = ?", catID).Error; err != nil {
		return uuid.Nil, apperr.Validation("unknown category")
	}
	return catID, nil
}

// ListApprovedLost returns publicly visible lost items.
func (s *ItemService) ListApprovedLost() ([]models.LostItem, error) {
	var items []models.LostItem
	err := s.db.Preload("Category").Preload("Reporter").
		Where("approval_status = ?", models.ApprovalApproved).
		Find(&items).Error
	return items, err
}

func (s *ItemService) ListApprovedFound() ([]models.FoundItem, error) {
	var items []models.FoundItem
	err := s.db.Preload("Category").Preload("Poster").
		Where("approval_status = ?", models.ApprovalApproved).
		Find(&items).Error
	return items, err
}

func (s *ItemService) GetFound(id uuid.UUID) (*models.FoundItem, error) {
	var item models.FoundItem
	err := s.db.Preload("Category").Preload("Poster").First(&item, "id = ?", id).Error
	if err != nil {
		return nil, apperr.NotFound("found item not found")
	}
	return &item, nil
}

// ListPending returns awaiting-review reports from both collections.
func (s *ItemService) ListPending() ([]models.LostItem, []models.FoundItem, error) {
	var lost []models.LostItem
	if err := s.db.Preload("Category").Preload("Reporter").
		Where("approval_status = ?", models.ApprovalPending).
		Find(&lost).Error; err != nil {
		return nil, nil, err
	}
	var found []models.FoundItem
	if err := s.db.Preload("Category").Preload("Poster").
		Where("approval_status = ?", models.ApprovalPending).
		Find(&found).Error; err != nil {
		return nil, nil, err
	}
	return lost, found, nil
}

// approvableFrom lists the states a review transition may leave. Reversing an
// already-decided item is only possible with the re-review flag.
func (s *ItemService) approvableFrom(target string) []string {
	if !s.cfg.AllowReReview {
		return []string{models.ApprovalPending}
	}
	if target == models.ApprovalApproved {
		return []string{models.ApprovalPending, models.ApprovalRejected}
	}
	return []string{models.ApprovalPending, models.ApprovalApproved}
}

// Approve transitions a report to approved via a conditional update, so two
// concurrent reviews cannot both land.
func (s *ItemService) Approve(itemID uuid.UUID, itemType string, reviewer authctx.Identity) error {
	return s.review(itemID, itemType, reviewer, models.ApprovalApproved, "")
}

// Reject transitions a report to rejected and notifies the reporter. The
// reason is optional and included in the notification when given.
func (s *ItemService) Reject(itemID uuid.UUID, itemType string, reason string, reviewer authctx.Identity) error {
	return s.review(itemID, itemType, reviewer, models.ApprovalRejected, reason)
}

func (s *ItemService) review(itemID uuid.UUID, itemType string, reviewer authctx.Identity, target, reason string) error {
	var model interface{}
	var ownerID uuid.UUID
	switch itemType {
	case ItemTypeLost:
		var item models.LostItem
		if err := s.db.First(&item, "id = ?", itemID).Error; err != nil {
			return apperr.NotFound("lost item not found")
		}
		model = &models.LostItem{}
		ownerID = item.ReporterID
	case ItemTypeFound:
		var item models.FoundItem
		if err := s.db.First(&item, "id = ?", itemID).Error; err != nil {
			return apperr.NotFound("found item not found")
		}
		model = &models.FoundItem{}
		ownerID = item.PostedBy
	default:
		return apperr.Validation("type must be lost or found")
	}

	now := time.Now()
	updates := map[string]interface{}{
		"approval_status":  target,
		"reviewed_by":      reviewer.ID,
		"reviewed_at":      now,
		"rejection_reason": reason,
	}

	result := s.db.Model(model).
		Where("id = ? AND approval_status IN ?", itemID, s.approvableFrom(target)).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.InvalidState("item has already been reviewed")
	}

	if target == models.ApprovalRejected {
		message := "Your " + itemType + " item report was rejected"
		if reason != "" {
			message += ": " + reason
		}
		s.notifications.Emit(ownerID, message, models.NotifStatusUpdate)
	}
	s.activity.Record(reviewer.Name, "item_review", map[string]any{
		"item_id": itemID.String(),
		"type":    itemType,
		"reason":  reason,
	}, reviewer.Email, target)
	return nil
}

func (s *ItemService) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	err := s.db.Order("name").Find(&categories).Error
	return categories, err
}

// parseDate accepts RFC 3339 or YYYY-MM-DD. An omitted date defaults to the
// report time; a malformed one is a validation error.
func parseDate(field, s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, apperr.Validation("invalid " + field + ": use YYYY-MM-DD")
}

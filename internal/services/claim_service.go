package services

import (
	"time"

	"github.com/eylulkaya/lostfound/internal/apperr"
	"github.com/eylulkaya/lostfound/internal/authctx"
	"github.com/eylulkaya/lostfound/internal/dto"
	"github.com/eylulkaya/lostfound/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClaimService struct {
	db            *gorm.DB
	notifications *NotificationService
	activity      *ActivityService
}

func NewClaimService(db *gorm.DB, notifications *NotificationService, activity *ActivityService) *ClaimService {
	return &ClaimService{db: db, notifications: notifications, activity: activity}
}

// Submit places a claim on an approved, unclaimed found item. The claim latch
// on the item is flipped by a conditional update, so of any number of
// concurrent submissions exactly one wins; the rest fail without mutating
// anything.
func (s *ClaimService) Submit(req *dto.SubmitClaimRequest, claimantID uuid.UUID) (*models.Claim, error) {
	if req.ProofDescription == "" {
		return nil, apperr.Validation("proof_description is required")
	}
	itemID, err := uuid.Parse(req.FoundItem)
	if err != nil {
		return nil, apperr.Validation("invalid found_item id")
	}

	var claim *models.Claim
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var item models.FoundItem
		if err := tx.First(&item, "id = ?", itemID).Error; err != nil {
			return apperr.NotFound("found item not found")
		}

		result := tx.Model(&models.FoundItem{}).
			Where("id = ? AND approval_status = ? AND claim_status = ?",
				itemID, models.ApprovalApproved, models.ClaimLatchNone).
			Updates(map[string]interface{}{
				"claim_status": models.ClaimLatchClaimed,
				"status":       models.FoundStatusClaimed,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			if item.ApprovalStatus != models.ApprovalApproved {
				return apperr.InvalidState("item is awaiting approval")
			}
			return apperr.InvalidState("item already has an active claim")
		}

		claim = &models.Claim{
			ID:               uuid.New(),
			FoundItemID:      itemID,
			ClaimantID:       claimantID,
			ProofDescription: req.ProofDescription,
			Status:           models.ClaimPending,
		}
		if req.LostItem != "" {
			if lostID, err := uuid.Parse(req.LostItem); err == nil {
				claim.LostItemID = &lostID
			}
		}
		return tx.Create(claim).Error
	})
	if err != nil {
		return nil, err
	}

	s.activity.Record(claimantID.String(), "claim_submitted", map[string]any{
		"found_item_id": itemID.String(),
	}, "", models.ClaimPending)
	return claim, nil
}

// ListPending returns unreviewed claims with claimant and item expanded.
func (s *ClaimService) ListPending() ([]models.Claim, error) {
	var claims []models.Claim
	err := s.db.Preload("Claimant").Preload("FoundItem").Preload("FoundItem.Poster").
		Where("status = ?", models.ClaimPending).
		Order("created_at").
		Find(&claims).Error
	return claims, err
}

// Verify confirms the pending claim on a found item. The claim becomes
// verified and the item reaches its terminal returned state.
func (s *ClaimService) Verify(foundItemID uuid.UUID, reviewer authctx.Identity) error {
	var claimantID uuid.UUID
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var item models.FoundItem
		if err := tx.First(&item, "id = ?", foundItemID).Error; err != nil {
			return apperr.NotFound("found item not found")
		}

		var claim models.Claim
		if err := tx.Where("found_item_id = ? AND status = ?", foundItemID, models.ClaimPending).
			First(&claim).Error; err != nil {
			return apperr.InvalidState("item has no pending claim")
		}

		now := time.Now()
		result := tx.Model(&models.Claim{}).
			Where("id = ? AND status = ?", claim.ID, models.ClaimPending).
			Updates(map[string]interface{}{
				"status":      models.ClaimVerified,
				"reviewed_by": reviewer.ID,
				"reviewed_at": now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperr.InvalidState("claim was already reviewed")
		}

		claimantID = claim.ClaimantID
		return tx.Model(&models.FoundItem{}).
			Where("id = ?", foundItemID).
			Update("status", models.FoundStatusReturned).Error
	})
	if err != nil {
		return err
	}

	s.notifications.Emit(claimantID, "Your claim was verified. Please pick up your item at the lost and found office.", models.NotifClaimUpdate)
	s.activity.Record(reviewer.Name, "claim_verified", map[string]any{
		"found_item_id": foundItemID.String(),
	}, reviewer.Email, models.ClaimVerified)
	return nil
}

// Reject turns down the pending claim and releases the item latch, making the
// item claimable again.
func (s *ClaimService) Reject(foundItemID uuid.UUID, reason string, reviewer authctx.Identity) error {
	var claimantID uuid.UUID
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var item models.FoundItem
		if err := tx.First(&item, "id = ?", foundItemID).Error; err != nil {
			return apperr.NotFound("found item not found")
		}

		var claim models.Claim
		if err := tx.Where("found_item_id = ? AND status = ?", foundItemID, models.ClaimPending).
			First(&claim).Error; err != nil {
			return apperr.InvalidState("item has no pending claim")
		}

		now := time.Now()
		result := tx.Model(&models.Claim{}).
			Where("id = ? AND status = ?", claim.ID, models.ClaimPending).
			Updates(map[string]interface{}{
				"status":           models.ClaimRejected,
				"reviewed_by":      reviewer.ID,
				"reviewed_at":      now,
				"rejection_reason": reason,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperr.InvalidState("claim was already reviewed")
		}

		claimantID = claim.ClaimantID
		return tx.Model(&models.FoundItem{}).
			Where("id = ?", foundItemID).
			Updates(map[string]interface{}{
				"claim_status": models.ClaimLatchNone,
				"status":       models.FoundStatusPending,
			}).Error
	})
	if err != nil {
		return err
	}

	message := "Your claim was rejected."
	if reason != "" {
		message = "Your claim was rejected: " + reason
	}
	s.notifications.Emit(claimantID, message, models.NotifClaimUpdate)
	s.activity.Record(reviewer.Name, "claim_rejected", map[string]any{
		"found_item_id": foundItemID.String(),
		"reason":        reason,
	}, reviewer.Email, models.ClaimRejected)
	return nil
}

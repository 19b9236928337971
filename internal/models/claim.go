package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Claim states. A found item has at most one pending claim at a time; rejection
// frees the item for a new claim, verification is terminal.
const (
	ClaimPending  = "pending"
	ClaimVerified = "verified"
	ClaimRejected = "rejected"
)

type Claim struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	FoundItemID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"found_item_id"`
	ClaimantID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"claimant_id"`
	LostItemID       *uuid.UUID `gorm:"type:uuid" json:"lost_item_id,omitempty"`
	ProofDescription string     `gorm:"type:text;not null" json:"proof_description"`
	Status           string     `gorm:"size:20;default:'pending';index" json:"status"`
	ReviewedBy       *uuid.UUID `gorm:"type:uuid" json:"reviewed_by,omitempty"`
	ReviewedAt       *time.Time `json:"reviewed_at,omitempty"`
	RejectionReason  string     `gorm:"size:500" json:"rejection_reason,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	FoundItem        FoundItem  `gorm:"foreignKey:FoundItemID" json:"found_item,omitempty"`
	Claimant         User       `gorm:"foreignKey:ClaimantID" json:"claimant,omitempty"`
}

func (cl *Claim) BeforeCreate(tx *gorm.DB) error {
	if cl.ID == uuid.Nil {
		cl.ID = uuid.New()
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Approval states shared by lost and found reports. Items are invisible to the
// public listing until staff approve them.
const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

// Lost item lifecycle.
const (
	LostStatusOpen   = "open"
	LostStatusFound  = "found"
	LostStatusClosed = "closed"
)

// Found item lifecycle. "returned" is terminal: the claim was verified and the
// item handed back to its owner.
const (
	FoundStatusPending  = "pending"
	FoundStatusClaimed  = "claimed"
	FoundStatusReturned = "returned"
)

// Claim latch values on FoundItem. The latch exists only so claim submission can
// be a single conditional update; claim detail lives on Claim.
const (
	ClaimLatchNone    = "none"
	ClaimLatchClaimed = "claimed"
)

type LostItem struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string     `gorm:"not null;size:200" json:"name"`
	CategoryID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"category_id"`
	LostLocation    string     `gorm:"size:255" json:"lost_location"`
	Description     string     `gorm:"type:text" json:"description"`
	DateLost        time.Time  `json:"date_lost"`
	ImageURL        string     `gorm:"type:text" json:"image_url,omitempty"`
	ReporterID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"reporter_id"`
	ContactInfo     string     `gorm:"size:255" json:"contact_info"`
	Status          string     `gorm:"size:20;default:'open'" json:"status"`
	ApprovalStatus  string     `gorm:"size:20;default:'pending';index" json:"approval_status"`
	ReviewedBy      *uuid.UUID `gorm:"type:uuid" json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
	RejectionReason string     `gorm:"size:500" json:"rejection_reason,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	Category        Category   `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Reporter        User       `gorm:"foreignKey:ReporterID" json:"reporter,omitempty"`
}

func (i *LostItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

type FoundItem struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string     `gorm:"not null;size:200" json:"name"`
	CategoryID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"category_id"`
	FoundLocation   string     `gorm:"size:255" json:"found_location"`
	Description     string     `gorm:"type:text" json:"description"`
	DateFound       time.Time  `json:"date_found"`
	ImageURL        string     `gorm:"type:text" json:"image_url,omitempty"`
	PostedBy        uuid.UUID  `gorm:"type:uuid;not null;index" json:"posted_by"`
	ContactInfo     string     `gorm:"size:255" json:"contact_info"`
	Status          string     `gorm:"size:20;default:'pending'" json:"status"`
	ApprovalStatus  string     `gorm:"size:20;default:'pending';index" json:"approval_status"`
	ReviewedBy      *uuid.UUID `gorm:"type:uuid" json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
	RejectionReason string     `gorm:"size:500" json:"rejection_reason,omitempty"`
	ClaimStatus     string     `gorm:"size:20;default:'none';index" json:"claim_status"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	Category        Category   `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Poster          User       `gorm:"foreignKey:PostedBy" json:"poster,omitempty"`
}

func (i *FoundItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

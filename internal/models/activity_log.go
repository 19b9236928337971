package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ActivityLog is a short-lived audit trail of workflow transitions. Rows carry
// an ExpiresAt fifteen minutes out and are swept by the cleanup goroutine.
type ActivityLog struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Actor     string         `gorm:"size:100" json:"actor"`
	Activity  string         `gorm:"size:100;not null" json:"activity"`
	Details   datatypes.JSON `json:"details"`
	Verifier  string         `gorm:"size:100" json:"verifier"`
	Result    string         `gorm:"size:50" json:"result"`
	CreatedAt time.Time      `json:"created_at"`
	ExpiresAt time.Time      `gorm:"index" json:"expires_at"`
}

func (a *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

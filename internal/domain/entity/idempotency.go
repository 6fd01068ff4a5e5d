package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IdempotencyKey remembers the response to a request so a retried checkout is replayed
// instead of billed twice
type IdempotencyKey struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Key          string    `gorm:"uniqueIndex:idx_idempotency_staff_key;size:255;not null"`
	StaffID      string    `gorm:"uniqueIndex:idx_idempotency_staff_key;size:36;not null"`
	Endpoint     string    `gorm:"size:255;not null"`
	RequestHash  string    `gorm:"size:64"`
	ResponseCode int       `gorm:"not null;default:0"`
	ResponseBody string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	ExpiresAt    time.Time `gorm:"not null;index"`
}

func (k *IdempotencyKey) BeforeCreate(tx *gorm.DB) error {
	if k.ID == uuid.Nil {
		k.ID = uuid.New()
	}
	return nil
}

func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}

// IsExpired checks the key against now
func (k *IdempotencyKey) IsExpired(now time.Time) bool {
	return now.After(k.ExpiresAt)
}

// IsPending reports whether the request holding the key has not finished yet
func (k *IdempotencyKey) IsPending() bool {
	return k.ResponseCode == 0
}

package entity

import (
	"time"

	"github.com/sangkips/billing-api/internal/domain/enum"
	"github.com/sangkips/billing-api/pkg/utils"
	"gorm.io/gorm"
)

// Staff is a person who can log in to the counter
type Staff struct {
	ID           string         `gorm:"size:36;primaryKey" json:"id"`
	Name         string         `gorm:"size:255;not null" json:"name"`
	Email        string         `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Mobile       string         `gorm:"size:20" json:"mobile,omitempty"`
	Role         enum.StaffRole `gorm:"size:20;not null" json:"role"`
	IsActive     bool           `gorm:"not null" json:"is_active"`
	PasswordHash string         `gorm:"size:255" json:"-"`
	JoinedAt     time.Time      `json:"joined_at"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func (s *Staff) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = utils.NewID("S")
	}
	if s.JoinedAt.IsZero() {
		s.JoinedAt = time.Now()
	}
	return nil
}

func (Staff) TableName() string {
	return "staff"
}

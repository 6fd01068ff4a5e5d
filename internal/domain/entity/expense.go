package entity

import (
	"time"

	"github.com/sangkips/billing-api/pkg/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Expense is money paid out of the shop for running costs
type Expense struct {
	ID          string          `gorm:"size:36;primaryKey" json:"id"`
	Category    string          `gorm:"size:100;not null;index" json:"category"`
	Description string          `gorm:"type:text" json:"description"`
	Amount      decimal.Decimal `gorm:"type:numeric;not null" json:"amount"`
	Date        time.Time       `gorm:"not null;index" json:"date"`
	PaymentMode string          `gorm:"size:30" json:"payment_mode"`
	CreatedBy   string          `gorm:"size:36" json:"created_by,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = utils.NewID("E")
	}
	return nil
}

func (Expense) TableName() string {
	return "expenses"
}

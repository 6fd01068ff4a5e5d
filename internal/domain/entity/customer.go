package entity

import (
	"time"

	"github.com/sangkips/billing-api/internal/domain/enum"
	"github.com/sangkips/billing-api/pkg/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// WalkInCustomerName is printed on bills that have no customer attached
const WalkInCustomerName = "Walk-in Customer"

// Customer is an entry in the customer directory
type Customer struct {
	ID                 string            `gorm:"size:36;primaryKey" json:"id"`
	Name               string            `gorm:"size:255;not null" json:"name"`
	Mobile             string            `gorm:"size:20;index" json:"mobile"`
	Email              string            `gorm:"size:255" json:"email,omitempty"`
	GSTIN              string            `gorm:"size:15" json:"gstin,omitempty"`
	Address            string            `gorm:"type:text" json:"address,omitempty"`
	Type               enum.CustomerType `gorm:"size:20;not null" json:"type"`
	CreditLimit        decimal.Decimal   `gorm:"type:numeric" json:"credit_limit"`
	OutstandingBalance decimal.Decimal   `gorm:"type:numeric" json:"outstanding_balance"`
	TotalPurchases     decimal.Decimal   `gorm:"type:numeric" json:"total_purchases"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

// BeforeCreate assigns an id and a default type
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = utils.NewID("C")
	}
	if c.Type == "" {
		c.Type = enum.CustomerTypeRetail
	}
	return nil
}

func (Customer) TableName() string {
	return "customers"
}

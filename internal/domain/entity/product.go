package entity

import (
	"time"

	"github.com/sangkips/billing-api/pkg/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a catalog entry. The cart reads it but never writes it.
type Product struct {
	ID                string          `gorm:"size:36;primaryKey" json:"id"`
	Name              string          `gorm:"size:255;not null" json:"name"`
	NameTamil         string          `gorm:"size:255" json:"name_tamil,omitempty"`
	Category          string          `gorm:"size:100;index" json:"category"`
	Price             decimal.Decimal `gorm:"type:numeric;not null" json:"price"`
	MRP               decimal.Decimal `gorm:"type:numeric" json:"mrp"`
	GSTPercent        decimal.Decimal `gorm:"type:numeric;not null" json:"gst_percent"`
	HSNCode           string          `gorm:"size:20" json:"hsn_code,omitempty"`
	Stock             int             `gorm:"not null" json:"stock"`
	Unit              string          `gorm:"size:20" json:"unit"`
	Barcode           string          `gorm:"size:64;index" json:"barcode,omitempty"`
	LowStockThreshold int             `gorm:"not null" json:"low_stock_threshold"`
	IsActive          bool            `gorm:"not null" json:"is_active"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// BeforeCreate assigns an id to products created without one
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = utils.NewID("P")
	}
	return nil
}

func (Product) TableName() string {
	return "products"
}

// IsOutOfStock reports an empty shelf
func (p *Product) IsOutOfStock() bool {
	return p.Stock <= 0
}

// IsLowStock reports stock above zero but at or below the threshold
func (p *Product) IsLowStock(threshold int) bool {
	return p.Stock > 0 && p.Stock <= threshold
}

// StockValue is stock x selling price
func (p *Product) StockValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Stock)))
}

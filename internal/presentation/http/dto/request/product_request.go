package request

import "github.com/shopspring/decimal"

// CreateProductRequest represents a product creation request. Category and unit accept
// an id or a display name from the customization lists.
type CreateProductRequest struct {
	Name              string          `json:"name" binding:"required,min=2,max=255"`
	NameTamil         string          `json:"name_tamil" binding:"omitempty,max=255"`
	Category          string          `json:"category" binding:"required"`
	Price             decimal.Decimal `json:"price"`
	MRP               decimal.Decimal `json:"mrp"`
	GSTPercent        decimal.Decimal `json:"gst_percent"`
	HSNCode           string          `json:"hsn_code" binding:"omitempty,max=20"`
	Stock             int             `json:"stock"`
	Unit              string          `json:"unit"`
	Barcode           string          `json:"barcode" binding:"omitempty,max=64"`
	LowStockThreshold int             `json:"low_stock_threshold" binding:"min=0"`
	IsActive          *bool           `json:"is_active"`
}

// UpdateProductRequest represents a product update request
type UpdateProductRequest struct {
	Name              *string          `json:"name" binding:"omitempty,min=2,max=255"`
	NameTamil         *string          `json:"name_tamil" binding:"omitempty,max=255"`
	Category          *string          `json:"category"`
	Price             *decimal.Decimal `json:"price"`
	MRP               *decimal.Decimal `json:"mrp"`
	GSTPercent        *decimal.Decimal `json:"gst_percent"`
	HSNCode           *string          `json:"hsn_code" binding:"omitempty,max=20"`
	Stock             *int             `json:"stock"`
	Unit              *string          `json:"unit"`
	Barcode           *string          `json:"barcode" binding:"omitempty,max=64"`
	LowStockThreshold *int             `json:"low_stock_threshold" binding:"omitempty,min=0"`
	IsActive          *bool            `json:"is_active"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search     string `form:"search"`
	Category   string `form:"category"`
	ActiveOnly bool   `form:"active_only"`
	LowStock   bool   `form:"low_stock"`
	SortBy     string `form:"sort_by"`
	SortOrder  string `form:"sort_order"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}

package request

import "github.com/shopspring/decimal"

// PurchaseItemRequest is one line of a supplier invoice
type PurchaseItemRequest struct {
	ProductID  string          `json:"product_id"`
	Name       string          `json:"name" binding:"required_without=ProductID"`
	Quantity   int             `json:"quantity" binding:"required,min=1"`
	Rate       decimal.Decimal `json:"rate"`
	GSTPercent decimal.Decimal `json:"gst_percent"`
}

// CreatePurchaseRequest represents a purchase creation request
type CreatePurchaseRequest struct {
	SupplierName   string                `json:"supplier_name" binding:"required,min=2,max=255"`
	SupplierGSTIN  string                `json:"supplier_gstin" binding:"omitempty,gstin"`
	SupplierMobile string                `json:"supplier_mobile" binding:"omitempty,len=10,numeric"`
	InvoiceNo      string                `json:"invoice_no" binding:"max=50"`
	Date           string                `json:"date"`
	Paid           decimal.Decimal       `json:"paid"`
	Items          []PurchaseItemRequest `json:"items" binding:"required,min=1,dive"`
}

// PayPurchaseRequest records a payment towards a purchase balance
type PayPurchaseRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// PurchaseFilterRequest represents purchase filter parameters
type PurchaseFilterRequest struct {
	Search  string `form:"search"`
	Status  string `form:"status" binding:"omitempty,oneof=pending partial paid"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}

package entity

import (
	"time"

	"github.com/sangkips/billing-api/internal/domain/enum"
	"github.com/sangkips/billing-api/pkg/apperror"
	"github.com/sangkips/billing-api/pkg/money"
	"github.com/sangkips/billing-api/pkg/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Purchase is a supplier invoice for stock bought in
type Purchase struct {
	ID             string              `gorm:"size:36;primaryKey" json:"id"`
	PurchaseNo     string              `gorm:"size:50;uniqueIndex;not null" json:"purchase_no"`
	SupplierName   string              `gorm:"size:255;not null" json:"supplier_name"`
	SupplierGSTIN  string              `gorm:"size:15" json:"supplier_gstin,omitempty"`
	SupplierMobile string              `gorm:"size:20" json:"supplier_mobile,omitempty"`
	InvoiceNo      string              `gorm:"size:100" json:"invoice_no,omitempty"`
	Date           time.Time           `gorm:"not null;index" json:"date"`
	Items          []PurchaseItem      `gorm:"foreignKey:PurchaseID" json:"items"`
	Subtotal       decimal.Decimal     `gorm:"type:numeric" json:"subtotal"`
	GST            decimal.Decimal     `gorm:"type:numeric" json:"gst"`
	Total          decimal.Decimal     `gorm:"type:numeric" json:"total"`
	Paid           decimal.Decimal     `gorm:"type:numeric" json:"paid"`
	Balance        decimal.Decimal     `gorm:"type:numeric" json:"balance"`
	Status         enum.PurchaseStatus `gorm:"not null" json:"status"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

func (p *Purchase) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = utils.NewID("PO")
	}
	return nil
}

func (Purchase) TableName() string {
	return "purchases"
}

// Recalculate derives item totals, invoice totals, balance and status from items and Paid
func (p *Purchase) Recalculate() {
	p.Subtotal = decimal.Zero
	p.GST = decimal.Zero
	for i := range p.Items {
		item := &p.Items[i]
		taxable := item.Rate.Mul(decimal.NewFromInt(int64(item.Quantity)))
		gst := money.Percent(taxable, item.GSTPercent)
		item.Total = taxable.Add(gst)
		p.Subtotal = p.Subtotal.Add(taxable)
		p.GST = p.GST.Add(gst)
	}
	p.Total = p.Subtotal.Add(p.GST).Round(2)
	p.Balance = p.Total.Sub(p.Paid)
	p.Status = purchaseStatusFor(p.Paid, p.Total)
}

// ApplyPayment records a payment against the balance
func (p *Purchase) ApplyPayment(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return apperror.NewBadRequestError("Payment amount must be greater than zero")
	}
	if amount.GreaterThan(p.Balance) {
		return apperror.ErrOverpayment
	}
	p.Paid = p.Paid.Add(amount)
	p.Balance = p.Total.Sub(p.Paid)
	p.Status = purchaseStatusFor(p.Paid, p.Total)
	return nil
}

func purchaseStatusFor(paid, total decimal.Decimal) enum.PurchaseStatus {
	switch {
	case !paid.IsPositive():
		return enum.PurchaseStatusPending
	case paid.GreaterThanOrEqual(total):
		return enum.PurchaseStatusPaid
	default:
		return enum.PurchaseStatusPartial
	}
}

// PurchaseItem is one line of a supplier invoice
type PurchaseItem struct {
	ID         uint            `gorm:"primaryKey;autoIncrement" json:"-"`
	PurchaseID string          `gorm:"size:36;not null;index" json:"-"`
	ProductID  string          `gorm:"size:36" json:"product_id,omitempty"`
	Name       string          `gorm:"size:255;not null" json:"name"`
	Quantity   int             `gorm:"not null" json:"quantity"`
	Rate       decimal.Decimal `gorm:"type:numeric" json:"rate"`
	GSTPercent decimal.Decimal `gorm:"type:numeric" json:"gst_percent"`
	Total      decimal.Decimal `gorm:"type:numeric" json:"total"`
}

func (PurchaseItem) TableName() string {
	return "purchase_items"
}

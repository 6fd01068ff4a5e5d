package entity

import (
	"time"

	"github.com/sangkips/billing-api/internal/domain/enum"
	"github.com/sangkips/billing-api/pkg/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Bill is a finalized sale. It is written once and never updated.
type Bill struct {
	ID             string          `gorm:"size:36;primaryKey" json:"id"`
	BillNumber     string          `gorm:"size:50;uniqueIndex;not null" json:"bill_number"`
	Date           time.Time       `gorm:"not null;index" json:"date"`
	CustomerID     *string         `gorm:"size:36;index" json:"customer_id"`
	CustomerName   string          `gorm:"size:255" json:"customer_name"`
	CustomerMobile string          `gorm:"size:20" json:"customer_mobile,omitempty"`
	CustomerGSTIN  string          `gorm:"size:15" json:"customer_gstin,omitempty"`
	Items          []BillItem      `gorm:"foreignKey:BillID" json:"items"`
	Subtotal       decimal.Decimal `gorm:"type:numeric" json:"subtotal"`
	CGST           decimal.Decimal `gorm:"type:numeric" json:"cgst"`
	SGST           decimal.Decimal `gorm:"type:numeric" json:"sgst"`
	LineDiscount   decimal.Decimal `gorm:"type:numeric" json:"line_discount"`
	Discount       decimal.Decimal `gorm:"type:numeric" json:"discount"`
	RoundOff       decimal.Decimal `gorm:"type:numeric" json:"round_off"`
	Total          decimal.Decimal `gorm:"type:numeric" json:"total"`
	PaymentMode    string          `gorm:"size:30" json:"payment_mode"`
	Status         enum.BillStatus `gorm:"not null" json:"status"`
	PaidAmount     decimal.Decimal `gorm:"type:numeric" json:"paid_amount"`
	CreatedBy      string          `gorm:"size:36" json:"created_by,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// BeforeCreate assigns an id to bills created without one
func (b *Bill) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = utils.NewID("B")
	}
	return nil
}

func (Bill) TableName() string {
	return "bills"
}

// BalanceDue is total minus the amount already paid
func (b *Bill) BalanceDue() decimal.Decimal {
	return b.Total.Sub(b.PaidAmount)
}

// IsWalkIn reports a bill without a customer record
func (b *Bill) IsWalkIn() bool {
	return b.CustomerID == nil
}

// TotalGST is cgst + sgst
func (b *Bill) TotalGST() decimal.Decimal {
	return b.CGST.Add(b.SGST)
}

// BillItem is the frozen copy of a cart line inside a bill
type BillItem struct {
	ID         uint            `gorm:"primaryKey;autoIncrement" json:"-"`
	BillID     string          `gorm:"size:36;not null;index" json:"-"`
	Position   int             `gorm:"not null" json:"-"`
	ProductID  string          `gorm:"size:36;index" json:"product_id"`
	Name       string          `gorm:"size:255" json:"name"`
	HSNCode    string          `gorm:"size:20" json:"hsn_code,omitempty"`
	Unit       string          `gorm:"size:20" json:"unit,omitempty"`
	Quantity   int             `gorm:"not null" json:"quantity"`
	Price      decimal.Decimal `gorm:"type:numeric" json:"price"`
	GSTPercent decimal.Decimal `gorm:"type:numeric" json:"gst_percent"`
	Discount   decimal.Decimal `gorm:"type:numeric" json:"discount"`
	Total      decimal.Decimal `gorm:"type:numeric" json:"total"`
}

func (BillItem) TableName() string {
	return "bill_items"
}

// Taxable is price x quantity
func (i BillItem) Taxable() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// HalfGST is the CGST (equal to SGST) portion of the line
func (i BillItem) HalfGST() decimal.Decimal {
	return i.Taxable().Mul(i.GSTPercent).Div(twoHundred)
}

// BillDraft is everything needed to freeze a cart into a bill
type BillDraft struct {
	BillNumber  string
	Date        time.Time
	Customer    *Customer
	Lines       []CartLine
	Totals      Totals
	PaymentMode string
	CreatedBy   string
}

// NewPaidBill snapshots a draft into a fully paid bill. The returned bill shares no
// memory with the draft lines.
func NewPaidBill(d BillDraft) *Bill {
	b := &Bill{
		BillNumber:   d.BillNumber,
		Date:         d.Date,
		CustomerName: WalkInCustomerName,
		Subtotal:     d.Totals.Subtotal,
		CGST:         d.Totals.CGST,
		SGST:         d.Totals.SGST,
		LineDiscount: d.Totals.LineDiscount,
		Discount:     d.Totals.Discount,
		RoundOff:     d.Totals.RoundOff,
		Total:        d.Totals.Total,
		PaymentMode:  d.PaymentMode,
		Status:       enum.BillStatusPaid,
		PaidAmount:   d.Totals.Total,
		CreatedBy:    d.CreatedBy,
	}
	if d.Customer != nil {
		id := d.Customer.ID
		b.CustomerID = &id
		b.CustomerName = d.Customer.Name
		b.CustomerMobile = d.Customer.Mobile
		b.CustomerGSTIN = d.Customer.GSTIN
	}

	b.Items = make([]BillItem, 0, len(d.Lines))
	for i, l := range d.Lines {
		b.Items = append(b.Items, BillItem{
			Position:   i,
			ProductID:  l.ProductID,
			Name:       l.Name,
			HSNCode:    l.HSNCode,
			Unit:       l.Unit,
			Quantity:   l.Quantity,
			Price:      l.Price,
			GSTPercent: l.GSTPercent,
			Discount:   l.Discount,
			Total:      l.Total,
		})
	}
	return b
}

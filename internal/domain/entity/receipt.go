package entity

import (
	"github.com/sangkips/billing-api/pkg/money"
	"github.com/shopspring/decimal"
)

// ReceiptHeader holds the shop details printed at the top of an invoice
type ReceiptHeader struct {
	BusinessName string `json:"business_name,omitempty"`
	Address      string `json:"address,omitempty"`
	Mobile       string `json:"mobile,omitempty"`
	Email        string `json:"email,omitempty"`
	GSTIN        string `json:"gstin,omitempty"`
	LogoURL      string `json:"logo_url,omitempty"`
}

// ReceiptCustomer is the bill-to block
type ReceiptCustomer struct {
	Name   string `json:"name"`
	Mobile string `json:"mobile,omitempty"`
	GSTIN  string `json:"gstin,omitempty"`
}

// ReceiptItem is one printed line
type ReceiptItem struct {
	Name       string          `json:"name"`
	HSNCode    string          `json:"hsn_code,omitempty"`
	Quantity   int             `json:"quantity"`
	Unit       string          `json:"unit,omitempty"`
	Price      decimal.Decimal `json:"price"`
	GSTPercent decimal.Decimal `json:"gst_percent"`
	Total      decimal.Decimal `json:"total"`
}

// Receipt is a printable view of a bill shaped by the invoice settings.
// It is not stored; it is built from a bill at print time.
type Receipt struct {
	Format        string           `json:"format"`
	Title         string           `json:"title"`
	Header        ReceiptHeader    `json:"header"`
	BillNumber    string           `json:"bill_number"`
	Date          string           `json:"date"`
	Cashier       string           `json:"cashier,omitempty"`
	Customer      *ReceiptCustomer `json:"customer,omitempty"`
	Items         []ReceiptItem    `json:"items"`
	ShowHSN       bool             `json:"show_hsn"`
	ShowItemTax   bool             `json:"show_item_tax"`
	ShowGSTSplit  bool             `json:"show_gst_split"`
	Subtotal      decimal.Decimal  `json:"subtotal"`
	CGST          decimal.Decimal  `json:"cgst"`
	SGST          decimal.Decimal  `json:"sgst"`
	Discount      decimal.Decimal  `json:"discount"`
	RoundOff      decimal.Decimal  `json:"round_off"`
	Total         decimal.Decimal  `json:"total"`
	Paid          decimal.Decimal  `json:"paid"`
	Balance       decimal.Decimal  `json:"balance"`
	PaymentMode   string           `json:"payment_mode"`
	AmountInWords string           `json:"amount_in_words,omitempty"`
	Terms         string           `json:"terms,omitempty"`
	Footer        string           `json:"footer,omitempty"`
	Signature     bool             `json:"signature"`
	QRPayload     string           `json:"qr_payload,omitempty"`
	Currency      money.Format     `json:"-"`
}

// Amount formats d with the receipt's currency settings
func (r *Receipt) Amount(d decimal.Decimal) string {
	return money.FormatAmount(d, r.Currency)
}

package entity

import (
	"github.com/sangkips/billing-api/pkg/money"
	"github.com/shopspring/decimal"
)

var twoHundred = decimal.NewFromInt(200)

// TotalsPolicy carries the billing settings that affect totals
type TotalsPolicy struct {
	RoundMode     money.RoundMode
	ApplyDiscount bool
}

// DefaultTotalsPolicy rounds to the nearest rupee and honours the bill discount
var DefaultTotalsPolicy = TotalsPolicy{RoundMode: money.RoundNearest, ApplyDiscount: true}

// Totals is the aggregate view of a set of lines
type Totals struct {
	ItemCount    int             `json:"item_count"`
	Quantity     int             `json:"quantity"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	CGST         decimal.Decimal `json:"cgst"`
	SGST         decimal.Decimal `json:"sgst"`
	TotalGST     decimal.Decimal `json:"total_gst"`
	LineDiscount decimal.Decimal `json:"line_discount"`
	Discount     decimal.Decimal `json:"discount"`
	PreRound     decimal.Decimal `json:"pre_round_total"`
	RoundOff     decimal.Decimal `json:"round_off"`
	Total        decimal.Decimal `json:"total"`
}

// ComputeTotals applies the default policy
func ComputeTotals(lines []CartLine, billDiscount decimal.Decimal) Totals {
	return ComputeTotalsWithPolicy(lines, billDiscount, DefaultTotalsPolicy)
}

// ComputeTotalsWithPolicy sums the lines. GST is split into two equal halves; the
// pre-round total is subtotal + cgst + sgst - line discounts - bill discount.
func ComputeTotalsWithPolicy(lines []CartLine, billDiscount decimal.Decimal, policy TotalsPolicy) Totals {
	t := Totals{ItemCount: len(lines)}
	halfGST := decimal.Zero
	for _, l := range lines {
		t.Quantity += l.Quantity
		t.Subtotal = t.Subtotal.Add(l.Taxable())
		halfGST = halfGST.Add(l.Taxable().Mul(l.GSTPercent).Div(twoHundred))
		t.LineDiscount = t.LineDiscount.Add(l.Discount)
	}
	t.CGST = halfGST
	t.SGST = halfGST
	t.TotalGST = t.CGST.Add(t.SGST)

	if policy.ApplyDiscount && billDiscount.IsPositive() {
		t.Discount = billDiscount
	}

	t.PreRound = t.Subtotal.Add(t.TotalGST).Sub(t.LineDiscount).Sub(t.Discount)
	t.Total = money.Round(t.PreRound, policy.RoundMode)
	t.RoundOff = t.Total.Sub(t.PreRound)
	return t
}

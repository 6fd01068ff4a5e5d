package entity

import (
	"testing"

	"github.com/sangkips/billing-api/pkg/apperror"
	"github.com/sangkips/billing-api/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func product(id, price, gst string) *Product {
	return &Product{ID: id, Name: "Product " + id, Price: dec(price), GSTPercent: dec(gst), IsActive: true, Stock: 10}
}

func assertDec(t *testing.T, want string, got decimal.Decimal, msg ...interface{}) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s %v", want, got, msg)
}

func TestCart_SampleBillTotals(t *testing.T) {
	cart := NewCart()
	require.NoError(t, cart.Add(product("P001", "120", "5"), 2))
	require.NoError(t, cart.Add(product("P003", "135", "5"), 1))

	totals := cart.Totals(DefaultTotalsPolicy)
	assertDec(t, "375", totals.Subtotal)
	assertDec(t, "9.375", totals.CGST)
	assertDec(t, "9.375", totals.SGST)
	assertDec(t, "393.75", totals.PreRound)
	assertDec(t, "394", totals.Total)
	assertDec(t, "0.25", totals.RoundOff)
	assert.Equal(t, 2, totals.ItemCount)
	assert.Equal(t, 3, totals.Quantity)
}

func TestCart_AddMergesUsingSnapshot(t *testing.T) {
	cart := NewCart()
	p := product("P001", "120", "5")
	require.NoError(t, cart.Add(p, 1))

	p.Price = dec("200")
	p.Name = "Renamed"
	require.NoError(t, cart.Add(p, 2))

	require.Equal(t, 1, cart.Len())
	line, ok := cart.Line("P001")
	require.True(t, ok)
	assert.Equal(t, 3, line.Quantity)
	assert.Equal(t, "Product P001", line.Name)
	assertDec(t, "120", line.Price)
	assertDec(t, "378", line.Total)
}

func TestCart_AddRejectsInactiveAndBadQuantity(t *testing.T) {
	cart := NewCart()
	inactive := product("P009", "10", "18")
	inactive.IsActive = false

	assert.ErrorIs(t, cart.Add(inactive, 1), apperror.ErrProductInactive)
	assert.ErrorIs(t, cart.Add(product("P001", "120", "5"), 0), apperror.ErrInvalidQuantity)
	assert.Equal(t, CartStateEmpty, cart.State())
}

func TestCart_UpdateQuantity(t *testing.T) {
	cart := NewCart()
	require.NoError(t, cart.Add(product("P001", "120", "5"), 2))
	require.NoError(t, cart.Add(product("P003", "135", "5"), 1))

	assert.True(t, cart.UpdateQuantity("P001", 4))
	line, _ := cart.Line("P001")
	assertDec(t, "504", line.Total)

	assert.True(t, cart.UpdateQuantity("P001", 0))
	assert.Equal(t, 1, cart.Len())
	_, ok := cart.Line("P001")
	assert.False(t, ok)

	assert.True(t, cart.UpdateQuantity("P003", -3))
	assert.Equal(t, 0, cart.Len())

	assert.False(t, cart.UpdateQuantity("P404", 2))
}

func TestCart_LineDiscountUsesCanonicalFormula(t *testing.T) {
	cart := NewCart()
	require.NoError(t, cart.Add(product("P005", "280", "5"), 10))
	require.True(t, cart.SetLineDiscount("P005", dec("100")))

	line, _ := cart.Line("P005")
	assertDec(t, "2840", line.Total)

	require.NoError(t, cart.Add(product("P005", "280", "5"), 1))
	line, _ = cart.Line("P005")
	assertDec(t, "3134", line.Total)

	cart.UpdateQuantity("P005", 10)
	line, _ = cart.Line("P005")
	assertDec(t, "2840", line.Total)

	cart.SetLineDiscount("P005", dec("-5"))
	line, _ = cart.Line("P005")
	assertDec(t, "0", line.Discount)
}

func TestCart_RemoveIsIdempotent(t *testing.T) {
	cart := NewCart()
	require.NoError(t, cart.Add(product("P001", "120", "5"), 1))
	cart.Remove("P001")
	cart.Remove("P001")
	cart.Remove("missing")
	assert.Equal(t, 0, cart.Len())
}

func TestCart_InsertionOrder(t *testing.T) {
	cart := NewCart()
	for _, id := range []string{"P003", "P001", "P002"} {
		require.NoError(t, cart.Add(product(id, "10", "0"), 1))
	}
	cart.Remove("P001")
	require.NoError(t, cart.Add(product("P001", "10", "0"), 1))

	var ids []string
	for _, l := range cart.Lines() {
		ids = append(ids, l.ProductID)
	}
	assert.Equal(t, []string{"P003", "P002", "P001"}, ids)
}

func TestCart_ClearResetsDiscountButKeepsCustomer(t *testing.T) {
	cart := NewCart()
	require.NoError(t, cart.Add(product("P001", "120", "5"), 2))
	cart.SetDiscount(dec("10"))
	id := "C001"
	cart.SelectCustomer(&id)

	cart.Clear()

	totals := cart.Totals(DefaultTotalsPolicy)
	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.CGST.IsZero())
	assert.True(t, totals.SGST.IsZero())
	assert.True(t, totals.Total.IsZero())
	assert.True(t, cart.Discount().IsZero())
	require.NotNil(t, cart.CustomerID())
	assert.Equal(t, "C001", *cart.CustomerID())
}

func TestCart_SelectCustomerCopiesID(t *testing.T) {
	cart := NewCart()
	id := "C001"
	cart.SelectCustomer(&id)
	id = "C999"
	assert.Equal(t, "C001", *cart.CustomerID())

	cart.SelectCustomer(nil)
	assert.Nil(t, cart.CustomerID())
}

func TestCart_LinesReturnsCopy(t *testing.T) {
	cart := NewCart()
	require.NoError(t, cart.Add(product("P001", "120", "5"), 2))

	lines := cart.Lines()
	lines[0].Quantity = 99

	line, _ := cart.Line("P001")
	assert.Equal(t, 2, line.Quantity)
}

func TestComputeTotals_DiscountAndNegativeRoundOff(t *testing.T) {
	lines := []CartLine{RecomputeLine(CartLine{ProductID: "P004", Quantity: 3, Price: dec("52"), GSTPercent: dec("18")})}

	totals := ComputeTotals(lines, dec("4"))
	assertDec(t, "156", totals.Subtotal)
	assertDec(t, "14.04", totals.CGST)
	assertDec(t, "180.08", totals.PreRound)
	assertDec(t, "180", totals.Total)
	assertDec(t, "-0.08", totals.RoundOff)
	assert.True(t, totals.RoundOff.Abs().LessThan(decimal.NewFromInt(1)))
}

func TestComputeTotalsWithPolicy(t *testing.T) {
	lines := []CartLine{
		RecomputeLine(CartLine{ProductID: "P001", Quantity: 2, Price: dec("120"), GSTPercent: dec("5")}),
		RecomputeLine(CartLine{ProductID: "P003", Quantity: 1, Price: dec("135"), GSTPercent: dec("5")}),
	}

	none := ComputeTotalsWithPolicy(lines, decimal.Zero, TotalsPolicy{RoundMode: money.RoundNone, ApplyDiscount: true})
	assertDec(t, "393.75", none.Total)
	assert.True(t, none.RoundOff.IsZero())

	down := ComputeTotalsWithPolicy(lines, decimal.Zero, TotalsPolicy{RoundMode: money.RoundDown, ApplyDiscount: true})
	assertDec(t, "393", down.Total)
	assertDec(t, "-0.75", down.RoundOff)

	up := ComputeTotalsWithPolicy(lines, dec("3.75"), TotalsPolicy{RoundMode: money.RoundUp, ApplyDiscount: true})
	assertDec(t, "390", up.Total)

	noDiscount := ComputeTotalsWithPolicy(lines, dec("50"), TotalsPolicy{RoundMode: money.RoundNearest})
	assertDec(t, "394", noDiscount.Total)
	assert.True(t, noDiscount.Discount.IsZero())
}

func TestComputeTotals_CGSTEqualsSGST(t *testing.T) {
	lines := []CartLine{
		RecomputeLine(CartLine{ProductID: "a", Quantity: 7, Price: dec("33.33"), GSTPercent: dec("12")}),
		RecomputeLine(CartLine{ProductID: "b", Quantity: 3, Price: dec("19.99"), GSTPercent: dec("28")}),
		RecomputeLine(CartLine{ProductID: "c", Quantity: 1, Price: dec("5"), GSTPercent: dec("0")}),
	}
	totals := ComputeTotals(lines, decimal.Zero)
	assert.True(t, totals.CGST.Equal(totals.SGST))

	var sum decimal.Decimal
	for _, l := range lines {
		sum = sum.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	assert.True(t, sum.Equal(totals.Subtotal))
	assert.True(t, totals.RoundOff.Abs().LessThan(decimal.NewFromInt(1)))
}

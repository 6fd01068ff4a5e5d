package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/sangkips/billing-api/internal/domain/entity"
	"github.com/sangkips/billing-api/internal/domain/enum"
	"github.com/sangkips/billing-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCartService_Totals(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.cart.AddItem(ctx, "P001", 2)
	require.NoError(t, err)
	view, err := f.cart.AddItem(ctx, "P003", 1)
	require.NoError(t, err)

	assert.Equal(t, entity.CartStateBuilding, view.State)
	assert.Equal(t, 2, view.Totals.ItemCount)
	assert.Equal(t, 3, view.Totals.Quantity)
	assert.True(t, dec("375").Equal(view.Totals.Subtotal), view.Totals.Subtotal.String())
	assert.True(t, dec("9.375").Equal(view.Totals.CGST), view.Totals.CGST.String())
	assert.True(t, dec("9.375").Equal(view.Totals.SGST), view.Totals.SGST.String())
	assert.True(t, dec("393.75").Equal(view.Totals.PreRound), view.Totals.PreRound.String())
	assert.True(t, dec("394").Equal(view.Totals.Total), view.Totals.Total.String())
	assert.True(t, dec("0.25").Equal(view.Totals.RoundOff), view.Totals.RoundOff.String())
}

func TestCartService_AddSameProductMergesLine(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.cart.AddItem(ctx, "P007", 3)
	require.NoError(t, err)
	view, err := f.cart.AddItem(ctx, "P007", 2)
	require.NoError(t, err)

	require.Len(t, view.Lines, 1)
	assert.Equal(t, 5, view.Lines[0].Quantity)
}

func TestCartService_AddItemErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.cart.AddItem(ctx, "P001", 0)
	assert.ErrorIs(t, err, apperror.ErrInvalidQuantity)

	_, err = f.cart.AddItem(ctx, "P999", 1)
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 404, appErr.Code)

	product, err := f.products.GetByID(ctx, "P002")
	require.NoError(t, err)
	product.IsActive = false
	require.NoError(t, f.products.Update(ctx, product))

	_, err = f.cart.AddItem(ctx, "P002", 1)
	assert.ErrorIs(t, err, apperror.ErrProductInactive)

	view, err := f.cart.GetCart(ctx)
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
}

func TestCartService_UpdateQuantityZeroRemoves(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.cart.AddItem(ctx, "P001", 2)
	require.NoError(t, err)
	_, err = f.cart.AddItem(ctx, "P004", 1)
	require.NoError(t, err)

	view, err := f.cart.UpdateQuantity(ctx, "P001", 0)
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, "P004", view.Lines[0].ProductID)

	view, err = f.cart.UpdateQuantity(ctx, "P004", -3)
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
	assert.Equal(t, entity.CartStateEmpty, view.State)

	_, err = f.cart.UpdateQuantity(ctx, "P004", 2)
	assert.Equal(t, http.StatusNotFound, errCode(t, err))
}

func TestCartService_UpdateQuantityZeroOnAbsentLine(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.cart.AddItem(ctx, "P001", 1)
	require.NoError(t, err)

	view, err := f.cart.UpdateQuantity(ctx, "P003", 0)
	require.NoError(t, err, "removing a line that is not there is a no-op")
	require.Len(t, view.Lines, 1)
	assert.Equal(t, "P001", view.Lines[0].ProductID)

	view, err = f.cart.UpdateQuantity(ctx, "P003", -1)
	require.NoError(t, err)
	assert.Len(t, view.Lines, 1)
}

func TestCartService_AddByBarcode(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	view, err := f.cart.AddByBarcode(ctx, " 8901234567892 ", 2)
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, "P003", view.Lines[0].ProductID)
	assert.Equal(t, 2, view.Lines[0].Quantity)

	_, err = f.cart.AddByBarcode(ctx, "8901234567892", 0)
	assert.ErrorIs(t, err, apperror.ErrInvalidQuantity)

	_, err = f.cart.AddByBarcode(ctx, "0000000000000", 1)
	assert.Equal(t, http.StatusNotFound, errCode(t, err))
}

func TestCartService_LineSnapshotSurvivesProductEdit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.cart.AddItem(ctx, "P001", 1)
	require.NoError(t, err)

	product, err := f.products.GetByID(ctx, "P001")
	require.NoError(t, err)
	product.Price = dec("999")
	require.NoError(t, f.products.Update(ctx, product))

	view, err := f.cart.AddItem(ctx, "P001", 1)
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.True(t, dec("120").Equal(view.Lines[0].Price))
	assert.Equal(t, 2, view.Lines[0].Quantity)
}

func TestCartService_Discounts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.cart.AddItem(ctx, "P001", 2)
	require.NoError(t, err)
	_, err = f.cart.AddItem(ctx, "P003", 1)
	require.NoError(t, err)

	view, err := f.cart.ApplyDiscount(ctx, "13.75")
	require.NoError(t, err)
	assert.True(t, dec("13.75").Equal(view.Totals.Discount))
	assert.True(t, dec("380").Equal(view.Totals.Total), view.Totals.Total.String())

	view, err = f.cart.ApplyDiscount(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, view.Discount.IsZero())

	view, err = f.cart.ApplyDiscount(ctx, "-5")
	require.NoError(t, err)
	assert.True(t, view.Discount.IsZero())

	view, err = f.cart.SetLineDiscount(ctx, "P001", dec("10"))
	require.NoError(t, err)
	assert.True(t, dec("10").Equal(view.Totals.LineDiscount))
	assert.True(t, dec("384").Equal(view.Totals.Total), view.Totals.Total.String())
}

func TestCartService_DiscountIgnoredWhenDisabled(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.settings.UpdateSection(ctx, enum.SectionBilling, map[string]json.RawMessage{
		"enable_discount": json.RawMessage(`false`),
	})
	require.NoError(t, err)

	_, err = f.cart.AddItem(ctx, "P001", 2)
	require.NoError(t, err)
	view, err := f.cart.ApplyDiscount(ctx, "50")
	require.NoError(t, err)

	assert.True(t, dec("50").Equal(view.Discount))
	assert.True(t, view.Totals.Discount.IsZero())
	assert.True(t, dec("252").Equal(view.Totals.Total))
}

func TestCartService_SelectCustomer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id := "C001"
	view, err := f.cart.SelectCustomer(ctx, &id)
	require.NoError(t, err)
	require.NotNil(t, view.Customer)
	assert.Equal(t, "Murugan Stores", view.Customer.Name)

	missing := "C999"
	_, err = f.cart.SelectCustomer(ctx, &missing)
	assert.Error(t, err)

	view, err = f.cart.SelectCustomer(ctx, nil)
	require.NoError(t, err)
	assert.Nil(t, view.Customer)
}

func TestCartService_CompleteSale(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.cart.CompleteSale(ctx, &CompleteSaleInput{PaymentMode: "cash"})
	assert.ErrorIs(t, err, apperror.ErrEmptyCart)

	id := "C002"
	_, err = f.cart.SelectCustomer(ctx, &id)
	require.NoError(t, err)
	_, err = f.cart.AddItem(ctx, "P001", 2)
	require.NoError(t, err)
	_, err = f.cart.AddItem(ctx, "P003", 1)
	require.NoError(t, err)

	bill, err := f.cart.CompleteSale(ctx, &CompleteSaleInput{PaymentMode: "upi", StaffID: "S003"})
	require.NoError(t, err)

	assert.Equal(t, "INV-2026-0004", bill.BillNumber)
	assert.Equal(t, enum.BillStatusPaid, bill.Status)
	assert.Equal(t, "UPI", bill.PaymentMode)
	assert.Equal(t, "Lakshmi Traders", bill.CustomerName)
	assert.True(t, dec("394").Equal(bill.Total))
	assert.True(t, bill.Total.Equal(bill.PaidAmount))
	require.Len(t, bill.Items, 2)

	view, err := f.cart.GetCart(ctx)
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
	assert.Nil(t, view.Customer)
	assert.True(t, view.Discount.IsZero())

	// Later cart activity must not reach the stored bill
	_, err = f.cart.AddItem(ctx, "P001", 7)
	require.NoError(t, err)
	stored, err := f.bills.GetByNumber(ctx, "INV-2026-0004")
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.Len(t, stored.Items, 2)
	assert.Equal(t, 2, stored.Items[0].Quantity)
	assert.True(t, dec("394").Equal(stored.Total))

	next, err := f.cart.CompleteSale(ctx, &CompleteSaleInput{})
	require.NoError(t, err)
	assert.Equal(t, "INV-2026-0005", next.BillNumber)
	assert.Equal(t, "Cash", next.PaymentMode)
	assert.Equal(t, entity.WalkInCustomerName, next.CustomerName)
}

func TestCartService_CompleteSaleRejectsDisabledPaymentMode(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.cart.AddItem(ctx, "P001", 1)
	require.NoError(t, err)

	_, err = f.cart.CompleteSale(ctx, &CompleteSaleInput{PaymentMode: "cheque"})
	assert.ErrorIs(t, err, apperror.ErrPaymentModeDisabled)

	view, err := f.cart.GetCart(ctx)
	require.NoError(t, err)
	assert.Len(t, view.Lines, 1)
}

type recordingPrinter struct {
	printed []string
	err     error
}

func (p *recordingPrinter) PrintBill(_ context.Context, bill *entity.Bill) error {
	p.printed = append(p.printed, bill.BillNumber)
	return p.err
}

func TestCartService_PrintAfterSale(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := &recordingPrinter{err: errors.New("paper out")}
	f.cart.SetPrinter(p)

	_, err := f.cart.AddItem(ctx, "P004", 1)
	require.NoError(t, err)
	_, err = f.cart.CompleteSale(ctx, &CompleteSaleInput{})
	require.NoError(t, err)
	assert.Empty(t, p.printed)

	_, err = f.settings.UpdateSection(ctx, enum.SectionBilling, map[string]json.RawMessage{
		"print_after_sale": json.RawMessage(`true`),
	})
	require.NoError(t, err)

	_, err = f.cart.AddItem(ctx, "P004", 1)
	require.NoError(t, err)
	bill, err := f.cart.CompleteSale(ctx, &CompleteSaleInput{})
	require.NoError(t, err, "a failed print must not fail the sale")
	assert.Equal(t, []string{bill.BillNumber}, p.printed)
}

func TestParseDiscount(t *testing.T) {
	assert.True(t, dec("12.5").Equal(ParseDiscount(" 12.5 ")))
	assert.True(t, ParseDiscount("").IsZero())
	assert.True(t, ParseDiscount("1e2x").IsZero())
	assert.True(t, ParseDiscount("-1").IsZero())
}

package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/sangkips/billing-api/internal/domain/entity"
	"github.com/sangkips/billing-api/internal/domain/enum"
	"github.com/sangkips/billing-api/internal/infrastructure/repository"
	"github.com/sangkips/billing-api/pkg/logger"
	"github.com/sangkips/billing-api/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePrinter struct {
	jobs [][]byte
	err  error
}

func (p *fakePrinter) Print(_ context.Context, data []byte) error {
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, data)
	return nil
}

func (p *fakePrinter) IsConnected(context.Context) bool { return p.err == nil }

func (p *fakePrinter) Kind() string { return "network" }

func newPrinterService(f *fixture, p *fakePrinter) *PrinterService {
	return NewPrinterService(
		p,
		NewBillService(f.bills),
		NewProfileService(repository.NewSettingsRepository(f.db)),
		f.staff,
		f.settings,
		48,
		logger.Discard(),
	)
}

func TestPrinterService_Receipt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := newPrinterService(f, &fakePrinter{})

	stored, err := f.bills.GetByNumber(ctx, "INV-2026-0001")
	require.NoError(t, err)

	receipt, err := svc.GetReceipt(ctx, "INV-2026-0001")
	require.NoError(t, err)
	assert.Equal(t, "Tax Invoice", receipt.Title)
	assert.Equal(t, "Sri Lakshmi Stores", receipt.Header.BusinessName)
	assert.Equal(t, "Rajesh Kumar", receipt.Cashier)
	assert.Equal(t, stored.Date.Format("02/01/2006 15:04"), receipt.Date)
	require.NotNil(t, receipt.Customer)
	assert.Equal(t, "Selvam (Walk-in)", receipt.Customer.Name)
	require.Len(t, receipt.Items, 2)
	assert.Equal(t, "1006", receipt.Items[0].HSNCode)
	assert.True(t, receipt.ShowGSTSplit)
	assert.Empty(t, receipt.QRPayload, "QR code is off by default")
	assert.NotEmpty(t, receipt.Terms)

	_, err = f.settings.UpdateSection(ctx, enum.SectionInvoice, map[string]json.RawMessage{
		"show_qr_code":  json.RawMessage(`true`),
		"show_hsn_code": json.RawMessage(`false`),
		"show_terms":    json.RawMessage(`false`),
	})
	require.NoError(t, err)
	_, err = f.settings.UpdateSection(ctx, enum.SectionAppearance, map[string]json.RawMessage{
		"date_format": json.RawMessage(`"YYYY-MM-DD"`),
	})
	require.NoError(t, err)

	receipt, err = svc.GetReceipt(ctx, "INV-2026-0001")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(receipt.QRPayload, "upi://pay?"))
	assert.Empty(t, receipt.Items[0].HSNCode)
	assert.Empty(t, receipt.Terms)
	assert.Equal(t, stored.Date.Format("2006-01-02 15:04"), receipt.Date)

	_, err = svc.GetReceipt(ctx, "INV-2099-0001")
	assert.Equal(t, 404, errCode(t, err))
}

func TestPrinterService_Print(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := &fakePrinter{}
	svc := newPrinterService(f, p)

	status := svc.GetStatus(ctx)
	assert.True(t, status.Configured)
	assert.True(t, status.Connected)
	assert.Equal(t, 48, status.PaperWidth)

	_, err := svc.PrintBillByID(ctx, "INV-2026-0002")
	require.NoError(t, err)
	require.Len(t, p.jobs, 1)
	job := string(p.jobs[0])
	assert.Contains(t, job, "INV-2026-0002")
	assert.Contains(t, job, "Murugan Stores")
	assert.Contains(t, job, "Rs.")
	assert.NotContains(t, job, "₹", "thermal printers get an ASCII currency sign")

	p.err = errors.New("cover open")
	receipt, err := svc.TestPrint(ctx)
	assert.Error(t, err)
	require.NotNil(t, receipt, "the test receipt is returned when printing fails")
	assert.Equal(t, "TEST-0001", receipt.BillNumber)
	assert.False(t, svc.GetStatus(ctx).Connected)
}

func TestPrinterService_WritePDF(t *testing.T) {
	f := newFixture(t)
	svc := newPrinterService(f, &fakePrinter{})

	var buf bytes.Buffer
	name, err := svc.WritePDF(context.Background(), "INV-2026-0003", &buf)
	require.NoError(t, err)
	assert.Equal(t, "INV-2026-0003.pdf", name)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestBuildReceipt_WalkInAndToggles(t *testing.T) {
	bill := &entity.Bill{
		BillNumber:   "INV-2026-0042",
		Date:         time.Date(2026, time.March, 4, 17, 5, 0, 0, time.Local),
		CustomerName: entity.WalkInCustomerName,
		Subtotal:     dec("100"),
		CGST:         dec("2.5"),
		SGST:         dec("2.5"),
		Discount:     dec("5"),
		LineDiscount: dec("3"),
		RoundOff:     dec("0.4"),
		Total:        dec("97"),
		PaidAmount:   dec("97"),
		PaymentMode:  "Cash",
	}
	profile := &entity.BusinessProfile{BusinessName: "Kavya Mart", UPIID: "kavya@upi", Mobile: "9876543210"}

	inv := entity.DefaultSettings().Invoice
	inv.InvoiceTitle = ""
	inv.ShowMobile = false
	inv.ShowPaymentMode = false
	inv.ShowFooter = true
	inv.ShowQRCode = true

	r := BuildReceipt(bill, profile, ReceiptOptions{Invoice: inv, ShowGSTFor: false, GSTSplit: true, Currency: money.DefaultFormat})
	assert.Nil(t, r.Customer)
	assert.Equal(t, "TAX INVOICE", r.Title)
	assert.Empty(t, r.Header.Mobile)
	assert.Empty(t, r.PaymentMode)
	assert.Equal(t, defaultFooter, r.Footer)
	assert.False(t, r.ShowGSTSplit, "no split without GST")
	assert.True(t, dec("8").Equal(r.Discount))
	assert.Equal(t, "04/03/2026 17:05", r.Date)
	assert.Contains(t, r.QRPayload, "pa=kavya%40upi")

	inv.ShowDiscount = false
	inv.ShowRoundOff = false
	r = BuildReceipt(bill, profile, ReceiptOptions{Invoice: inv})
	assert.True(t, r.Discount.IsZero())
	assert.True(t, r.RoundOff.IsZero())
}

func TestUPIPayload(t *testing.T) {
	payload := UPIPayload("srilakshmistores@upi", "Sri Lakshmi Stores", dec("394"), "INV-2026-0001")

	u, err := url.Parse(payload)
	require.NoError(t, err)
	assert.Equal(t, "upi", u.Scheme)
	q := u.Query()
	assert.Equal(t, "srilakshmistores@upi", q.Get("pa"))
	assert.Equal(t, "Sri Lakshmi Stores", q.Get("pn"))
	assert.Equal(t, "394.00", q.Get("am"))
	assert.Equal(t, "INR", q.Get("cu"))
	assert.Equal(t, "INV-2026-0001", q.Get("tn"))
}

func TestFormatReceipt_Sections(t *testing.T) {
	r := &entity.Receipt{
		Title:        "Tax Invoice",
		Header:       entity.ReceiptHeader{BusinessName: "Kavya Mart", GSTIN: "33AABCS1234F1Z5"},
		BillNumber:   "INV-2026-0042",
		Date:         "04/03/2026 17:05",
		Items:        []entity.ReceiptItem{{Name: "Curd (500ml)", Quantity: 2, Price: dec("38"), Total: dec("76"), HSNCode: "0403", GSTPercent: dec("5")}},
		ShowHSN:      true,
		ShowItemTax:  true,
		ShowGSTSplit: true,
		Subtotal:     dec("72.38"),
		CGST:         dec("1.81"),
		SGST:         dec("1.81"),
		Total:        dec("76"),
		Paid:         dec("50"),
		Balance:      dec("26"),
		Currency:     money.DefaultFormat,
	}

	out := string(FormatReceipt(r, 32))
	for _, want := range []string{"Kavya Mart", "GSTIN: 33AABCS1234F1Z5", "INV-2026-0042", "HSN 0403", "GST 5%", "CGST:", "Balance:"} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "Payment:")
}

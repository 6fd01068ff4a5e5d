package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"
	"github.com/sangkips/billing-api/internal/domain/entity"
	"github.com/sangkips/billing-api/internal/domain/repository"
	"github.com/sangkips/billing-api/pkg/money"
	"github.com/sangkips/billing-api/pkg/printer"
	"github.com/sangkips/billing-api/pkg/utils"
	"github.com/shopspring/decimal"
	"github.com/skip2/go-qrcode"
)

const defaultFooter = "Thank you! Visit again."

// PrinterService renders bills as receipts and sends them to the counter printer
type PrinterService struct {
	printer    printer.Printer
	bills      *BillService
	profiles   *ProfileService
	staffRepo  repository.StaffRepository
	settings   *CustomizationService
	paperWidth int
	logger     *slog.Logger
}

// NewPrinterService creates a new printer service
func NewPrinterService(
	p printer.Printer,
	bills *BillService,
	profiles *ProfileService,
	staffRepo repository.StaffRepository,
	settings *CustomizationService,
	paperWidth int,
	logger *slog.Logger,
) *PrinterService {
	return &PrinterService{
		printer:    p,
		bills:      bills,
		profiles:   profiles,
		staffRepo:  staffRepo,
		settings:   settings,
		paperWidth: paperWidth,
		logger:     logger,
	}
}

// PrinterStatus reports the configured printer
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
	PaperWidth int    `json:"paper_width"`
}

// GetStatus checks whether the printer answers
func (s *PrinterService) GetStatus(ctx context.Context) *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printer.Kind() != "none",
		Connected:  s.printer.IsConnected(ctx),
		Type:       s.printer.Kind(),
		PaperWidth: s.paperWidth,
	}
}

// TestPrint prints a sample receipt. The receipt is returned even when printing fails.
func (s *PrinterService) TestPrint(ctx context.Context) (*entity.Receipt, error) {
	receipt := &entity.Receipt{
		Format:      "thermal",
		Title:       "PRINTER TEST",
		Header:      entity.ReceiptHeader{BusinessName: "PRINTER TEST"},
		BillNumber:  "TEST-0001",
		Date:        time.Now().Format("02/01/2006 15:04"),
		Cashier:     "System",
		PaymentMode: "Cash",
		Items: []entity.ReceiptItem{
			{Name: "Test Item 1", Quantity: 1, Price: decimal.NewFromInt(10), Total: decimal.NewFromInt(10)},
			{Name: "Test Item 2", Quantity: 2, Price: decimal.NewFromInt(5), Total: decimal.NewFromInt(10)},
		},
		Subtotal: decimal.NewFromInt(20),
		Total:    decimal.NewFromInt(20),
		Paid:     decimal.NewFromInt(20),
		Footer:   defaultFooter,
		Currency: s.settings.CurrencyFormat(),
	}

	if err := s.printer.Print(ctx, FormatReceipt(receipt, s.paperWidth)); err != nil {
		return receipt, fmt.Errorf("test print failed: %w", err)
	}
	return receipt, nil
}

// GetReceipt builds the receipt view of a bill from the current profile and settings
func (s *PrinterService) GetReceipt(ctx context.Context, idOrNumber string) (*entity.Receipt, error) {
	bill, err := s.bills.GetBill(ctx, idOrNumber)
	if err != nil {
		return nil, err
	}
	return s.receiptFor(ctx, bill)
}

// PrintBill sends a bill to the printer
func (s *PrinterService) PrintBill(ctx context.Context, bill *entity.Bill) error {
	receipt, err := s.receiptFor(ctx, bill)
	if err != nil {
		return err
	}
	if err := s.printer.Print(ctx, FormatReceipt(receipt, s.paperWidth)); err != nil {
		return fmt.Errorf("failed to print bill %s: %w", bill.BillNumber, err)
	}
	return nil
}

// PrintBillByID reprints a stored bill and returns the printed receipt
func (s *PrinterService) PrintBillByID(ctx context.Context, idOrNumber string) (*entity.Receipt, error) {
	receipt, err := s.GetReceipt(ctx, idOrNumber)
	if err != nil {
		return nil, err
	}
	if err := s.printer.Print(ctx, FormatReceipt(receipt, s.paperWidth)); err != nil {
		s.logger.Warn("reprint failed", "bill_number", receipt.BillNumber, "error", err)
		return receipt, fmt.Errorf("failed to print bill %s: %w", receipt.BillNumber, err)
	}
	return receipt, nil
}

// WritePDF renders a bill as a PDF invoice and returns the suggested file name
func (s *PrinterService) WritePDF(ctx context.Context, idOrNumber string, w io.Writer) (string, error) {
	receipt, err := s.GetReceipt(ctx, idOrNumber)
	if err != nil {
		return "", err
	}
	if err := RenderReceiptPDF(receipt, w); err != nil {
		return "", err
	}
	return receipt.BillNumber + ".pdf", nil
}

func (s *PrinterService) receiptFor(ctx context.Context, bill *entity.Bill) (*entity.Receipt, error) {
	profile, err := s.profiles.GetProfile(ctx)
	if err != nil {
		return nil, err
	}
	cashier := ""
	if bill.CreatedBy != "" {
		staff, err := s.staffRepo.GetByID(ctx, bill.CreatedBy)
		if err != nil {
			return nil, err
		}
		if staff != nil {
			cashier = staff.Name
		}
	}
	all := s.settings.All()
	return BuildReceipt(bill, profile, ReceiptOptions{
		Invoice:    all.Invoice,
		ShowGSTFor: all.Tax.EnableGST && all.Billing.EnableGST,
		GSTSplit:   all.Tax.ShowGSTBreakup,
		DateFormat: all.Appearance.DateFormat,
		Currency:   s.settings.CurrencyFormat(),
		Cashier:    cashier,
	}), nil
}

// ReceiptOptions are the settings that shape a receipt
type ReceiptOptions struct {
	Invoice    entity.InvoiceSettings
	ShowGSTFor bool
	GSTSplit   bool
	DateFormat string
	Currency   money.Format
	Cashier    string
}

// BuildReceipt applies the invoice toggles to a bill. Hidden blocks are left empty.
func BuildReceipt(bill *entity.Bill, profile *entity.BusinessProfile, opts ReceiptOptions) *entity.Receipt {
	inv := opts.Invoice
	r := &entity.Receipt{
		Format:       inv.Format,
		Title:        inv.InvoiceTitle,
		BillNumber:   bill.BillNumber,
		Date:         bill.Date.Format(dateLayout(opts.DateFormat) + " 15:04"),
		Cashier:      opts.Cashier,
		ShowHSN:      inv.ShowHSNCode,
		ShowItemTax:  opts.ShowGSTFor,
		ShowGSTSplit: opts.ShowGSTFor && opts.GSTSplit,
		Subtotal:     bill.Subtotal,
		CGST:         bill.CGST,
		SGST:         bill.SGST,
		Total:        bill.Total,
		Paid:         bill.PaidAmount,
		Balance:      bill.BalanceDue(),
		Signature:    inv.ShowSignature,
		Currency:     opts.Currency,
	}
	if r.Title == "" {
		r.Title = "TAX INVOICE"
	}

	r.Header.BusinessName = profile.BusinessName
	if inv.ShowAddress {
		r.Header.Address = profile.FullAddress()
	}
	if inv.ShowMobile && profile.Mobile != "" {
		r.Header.Mobile = utils.FormatMobile(profile.Mobile)
	}
	if inv.ShowEmail {
		r.Header.Email = profile.Email
	}
	if inv.ShowGSTIN {
		r.Header.GSTIN = profile.GSTIN
	}
	if inv.ShowLogo {
		r.Header.LogoURL = profile.LogoURL
	}

	if !bill.IsWalkIn() {
		r.Customer = &entity.ReceiptCustomer{
			Name:   bill.CustomerName,
			Mobile: utils.FormatMobile(bill.CustomerMobile),
			GSTIN:  bill.CustomerGSTIN,
		}
	}

	r.Items = make([]entity.ReceiptItem, 0, len(bill.Items))
	for _, item := range bill.Items {
		ri := entity.ReceiptItem{
			Name:       item.Name,
			Quantity:   item.Quantity,
			Unit:       item.Unit,
			Price:      item.Price,
			GSTPercent: item.GSTPercent,
			Total:      item.Total,
		}
		if inv.ShowHSNCode {
			ri.HSNCode = item.HSNCode
		}
		r.Items = append(r.Items, ri)
	}

	if inv.ShowDiscount {
		r.Discount = bill.LineDiscount.Add(bill.Discount)
	}
	if inv.ShowRoundOff {
		r.RoundOff = bill.RoundOff
	}
	if inv.ShowPaymentMode {
		r.PaymentMode = bill.PaymentMode
	}
	if inv.ShowTerms {
		r.Terms = inv.TermsText
	}
	if inv.ShowFooter {
		r.Footer = profile.InvoiceFooter
		if r.Footer == "" {
			r.Footer = defaultFooter
		}
	}
	if inv.ShowQRCode && profile.UPIID != "" {
		r.QRPayload = UPIPayload(profile.UPIID, profile.BusinessName, bill.Total, bill.BillNumber)
	}
	r.AmountInWords = money.InWords(bill.Total)
	return r
}

// UPIPayload builds a upi://pay URI for the amount
func UPIPayload(vpa, payee string, amount decimal.Decimal, note string) string {
	q := url.Values{}
	q.Set("pa", vpa)
	q.Set("pn", payee)
	q.Set("am", amount.StringFixed(2))
	q.Set("cu", "INR")
	q.Set("tn", note)
	return "upi://pay?" + q.Encode()
}

// dateLayout maps the appearance date format onto a Go layout
func dateLayout(format string) string {
	switch format {
	case "MM/DD/YYYY":
		return "01/02/2006"
	case "YYYY-MM-DD":
		return "2006-01-02"
	default:
		return "02/01/2006"
	}
}

// FormatReceipt renders a receipt as ESC/POS bytes for the given paper width
func FormatReceipt(r *entity.Receipt, width int) []byte {
	cf := r.Currency.ASCII()
	amount := func(d decimal.Decimal) string { return money.FormatAmount(d, cf) }
	doc := printer.NewDocument(width)

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.BusinessName).
		SetFontSize(printer.FontNormal).
		SetBold(false)
	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Mobile != "" {
		doc.TextF("Ph: %s", r.Header.Mobile)
	}
	if r.Header.GSTIN != "" {
		doc.TextF("GSTIN: %s", r.Header.GSTIN)
	}
	doc.SetBold(true).Text(r.Title).SetBold(false)

	doc.SetAlign(printer.AlignLeft).Separator('-')
	doc.KeyValue("Bill No:", r.BillNumber).
		KeyValue("Date:", r.Date)
	if r.Cashier != "" {
		doc.KeyValue("Cashier:", r.Cashier)
	}
	if r.Customer != nil {
		doc.KeyValue("Customer:", r.Customer.Name)
		if r.Customer.Mobile != "" {
			doc.KeyValue("Mobile:", r.Customer.Mobile)
		}
		if r.Customer.GSTIN != "" {
			doc.KeyValue("GSTIN:", r.Customer.GSTIN)
		}
	}
	doc.Separator('-')

	for _, item := range r.Items {
		doc.ItemLine(item.Name, item.Quantity, amount(item.Price), amount(item.Total))
		var extra []string
		if r.ShowHSN && item.HSNCode != "" {
			extra = append(extra, "HSN "+item.HSNCode)
		}
		if r.ShowItemTax && item.GSTPercent.IsPositive() {
			extra = append(extra, "GST "+item.GSTPercent.String()+"%")
		}
		if len(extra) > 0 {
			doc.Text("  " + strings.Join(extra, "  "))
		}
	}
	doc.Separator('-')

	doc.KeyValue("Subtotal:", amount(r.Subtotal))
	if r.ShowGSTSplit {
		doc.KeyValue("CGST:", amount(r.CGST)).
			KeyValue("SGST:", amount(r.SGST))
	} else if r.ShowItemTax {
		doc.KeyValue("GST:", amount(r.CGST.Add(r.SGST)))
	}
	if r.Discount.IsPositive() {
		doc.KeyValue("Discount:", "-"+amount(r.Discount))
	}
	if !r.RoundOff.IsZero() {
		doc.KeyValue("Round Off:", r.RoundOff.StringFixed(2))
	}
	doc.SetBold(true).
		KeyValue("TOTAL:", amount(r.Total)).
		SetBold(false)
	if r.Balance.IsPositive() {
		doc.KeyValue("Paid:", amount(r.Paid)).
			KeyValue("Balance:", amount(r.Balance))
	}
	if r.PaymentMode != "" {
		doc.KeyValue("Payment:", r.PaymentMode)
	}
	if r.AmountInWords != "" {
		doc.Text(r.AmountInWords)
	}
	doc.Separator('-')

	doc.SetAlign(printer.AlignCenter)
	if r.QRPayload != "" {
		doc.QRCode(r.QRPayload, 6).Text("Scan to pay with UPI")
	}
	if r.Terms != "" {
		doc.Text(r.Terms)
	}
	if r.Footer != "" {
		doc.LineFeed().Text(r.Footer)
	}
	doc.SetAlign(printer.AlignLeft).
		FeedLines(3).
		PartialCut()

	return doc.Bytes()
}

// RenderReceiptPDF writes an invoice PDF sized by the receipt format
func RenderReceiptPDF(r *entity.Receipt, w io.Writer) error {
	var pdf *gofpdf.Fpdf
	switch r.Format {
	case "a4":
		pdf = gofpdf.New("P", "mm", "A4", "")
	case "a5":
		pdf = gofpdf.New("P", "mm", "A5", "")
	default:
		pdf = gofpdf.NewCustom(&gofpdf.InitType{
			OrientationStr: "P",
			UnitStr:        "mm",
			Size:           gofpdf.SizeType{Wd: 80, Ht: 297},
		})
	}
	margin := 8.0
	if r.Format != "a4" && r.Format != "a5" {
		margin = 4
	}
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	cf := r.Currency.ASCII()
	amount := func(d decimal.Decimal) string { return money.FormatAmount(d, cf) }
	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 2*margin

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 7, tr(r.Header.BusinessName), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, line := range []string{r.Header.Address, prefixed("Ph: ", r.Header.Mobile), r.Header.Email, prefixed("GSTIN: ", r.Header.GSTIN)} {
		if line != "" {
			pdf.MultiCell(contentW, 4.5, tr(line), "", "C", false)
		}
	}
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 6, tr(r.Title), "TB", 1, "C", false, 0, "")
	pdf.Ln(1)

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW/2, 5, tr("Bill No: "+r.BillNumber), "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/2, 5, tr("Date: "+r.Date), "", 1, "R", false, 0, "")
	if r.Cashier != "" {
		pdf.CellFormat(contentW, 5, tr("Cashier: "+r.Cashier), "", 1, "L", false, 0, "")
	}
	if r.Customer != nil {
		pdf.CellFormat(contentW, 5, tr("Bill To: "+r.Customer.Name), "", 1, "L", false, 0, "")
		if r.Customer.Mobile != "" {
			pdf.CellFormat(contentW, 5, tr("Mobile: "+r.Customer.Mobile), "", 1, "L", false, 0, "")
		}
		if r.Customer.GSTIN != "" {
			pdf.CellFormat(contentW, 5, tr("GSTIN: "+r.Customer.GSTIN), "", 1, "L", false, 0, "")
		}
	}
	pdf.Ln(2)

	// item table: name takes what the numeric columns leave
	numW := contentW * 0.16
	qtyW := contentW * 0.1
	nameW := contentW - qtyW - 2*numW
	showGST := r.ShowItemTax
	if showGST {
		nameW -= qtyW
	}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(nameW, 6, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(qtyW, 6, "Qty", "B", 0, "R", false, 0, "")
	pdf.CellFormat(numW, 6, "Rate", "B", 0, "R", false, 0, "")
	if showGST {
		pdf.CellFormat(qtyW, 6, "GST%", "B", 0, "R", false, 0, "")
	}
	pdf.CellFormat(numW, 6, "Amount", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range r.Items {
		name := item.Name
		if r.ShowHSN && item.HSNCode != "" {
			name += " (" + item.HSNCode + ")"
		}
		pdf.CellFormat(nameW, 5, tr(name), "", 0, "L", false, 0, "")
		pdf.CellFormat(qtyW, 5, fmt.Sprintf("%d", item.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(numW, 5, tr(amount(item.Price)), "", 0, "R", false, 0, "")
		if showGST {
			pdf.CellFormat(qtyW, 5, item.GSTPercent.String(), "", 0, "R", false, 0, "")
		}
		pdf.CellFormat(numW, 5, tr(amount(item.Total)), "", 1, "R", false, 0, "")
	}
	pdf.CellFormat(contentW, 1, "", "T", 1, "L", false, 0, "")

	total := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 9)
		pdf.CellFormat(contentW-numW*1.5, 5, tr(label), "", 0, "R", false, 0, "")
		pdf.CellFormat(numW*1.5, 5, tr(value), "", 1, "R", false, 0, "")
	}
	total("Subtotal", amount(r.Subtotal), false)
	if r.ShowGSTSplit {
		total("CGST", amount(r.CGST), false)
		total("SGST", amount(r.SGST), false)
	} else if r.ShowItemTax {
		total("GST", amount(r.CGST.Add(r.SGST)), false)
	}
	if r.Discount.IsPositive() {
		total("Discount", "-"+amount(r.Discount), false)
	}
	if !r.RoundOff.IsZero() {
		total("Round Off", r.RoundOff.StringFixed(2), false)
	}
	total("TOTAL", amount(r.Total), true)
	if r.Balance.IsPositive() {
		total("Paid", amount(r.Paid), false)
		total("Balance", amount(r.Balance), false)
	}
	if r.PaymentMode != "" {
		total("Payment Mode", r.PaymentMode, false)
	}

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "I", 8)
	if r.AmountInWords != "" {
		pdf.MultiCell(contentW, 4, tr(r.AmountInWords), "", "L", false)
	}

	if r.QRPayload != "" {
		png, err := qrcode.Encode(r.QRPayload, qrcode.Medium, 256)
		if err != nil {
			return fmt.Errorf("failed to generate UPI QR code: %w", err)
		}
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("upi-qr", opts, bytes.NewReader(png))
		size := 30.0
		pdf.Ln(2)
		pdf.ImageOptions("upi-qr", (pageW-size)/2, pdf.GetY(), size, size, true, opts, 0, "")
		pdf.SetFont("Helvetica", "", 8)
		pdf.CellFormat(contentW, 4, "Scan to pay with UPI", "", 1, "C", false, 0, "")
	}

	if r.Terms != "" {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "", 8)
		pdf.MultiCell(contentW, 4, tr(r.Terms), "", "L", false)
	}
	if r.Signature {
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 8)
		pdf.CellFormat(contentW, 4, "Authorised Signatory", "", 1, "R", false, 0, "")
	}
	if r.Footer != "" {
		pdf.Ln(3)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(contentW, 4.5, tr(r.Footer), "", "C", false)
	}

	return pdf.Output(w)
}

func prefixed(prefix, value string) string {
	if value == "" {
		return ""
	}
	return prefix + value
}

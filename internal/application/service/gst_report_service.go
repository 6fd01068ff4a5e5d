package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/sangkips/billing-api/internal/domain/entity"
	"github.com/sangkips/billing-api/internal/domain/repository"
	"github.com/sangkips/billing-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	sheetGSTR1   = "GSTR-1"
	sheetHSN     = "HSN Summary"
	sheetMonthly = "Monthly GST"

	noHSN = "N/A"
)

// GSTReportService builds GST returns from finalized bills
type GSTReportService struct {
	billRepo repository.BillRepository
	now      func() time.Time
}

// NewGSTReportService creates a new GST report service
func NewGSTReportService(billRepo repository.BillRepository) *GSTReportService {
	return &GSTReportService{billRepo: billRepo, now: time.Now}
}

// DateRange is an inclusive range of calendar days. Nil ends default to the current month.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// GSTR1Row is one invoice of the outward supplies return
type GSTR1Row struct {
	InvoiceNo     string          `json:"invoice_no"`
	Date          string          `json:"date"`
	CustomerName  string          `json:"customer_name"`
	CustomerGSTIN string          `json:"customer_gstin"`
	Taxable       decimal.Decimal `json:"taxable"`
	CGST          decimal.Decimal `json:"cgst"`
	SGST          decimal.Decimal `json:"sgst"`
	Total         decimal.Decimal `json:"total"`
}

// HSNRow sums the lines sharing an HSN code
type HSNRow struct {
	HSNCode  string          `json:"hsn_code"`
	Quantity int             `json:"quantity"`
	Taxable  decimal.Decimal `json:"taxable"`
	CGST     decimal.Decimal `json:"cgst"`
	SGST     decimal.Decimal `json:"sgst"`
}

// MonthlyGSTRow is the tax collected in one month
type MonthlyGSTRow struct {
	Month     string          `json:"month"`
	BillCount int             `json:"bill_count"`
	Taxable   decimal.Decimal `json:"taxable"`
	CGST      decimal.Decimal `json:"cgst"`
	SGST      decimal.Decimal `json:"sgst"`
	TotalGST  decimal.Decimal `json:"total_gst"`
}

// GSTR1Report lists every invoice in the range with its totals
type GSTR1Report struct {
	From    string          `json:"from"`
	To      string          `json:"to"`
	Rows    []GSTR1Row      `json:"rows"`
	Taxable decimal.Decimal `json:"taxable"`
	CGST    decimal.Decimal `json:"cgst"`
	SGST    decimal.Decimal `json:"sgst"`
	Total   decimal.Decimal `json:"total"`
}

// GetGSTR1 lists the invoices in the range, oldest first
func (s *GSTReportService) GetGSTR1(ctx context.Context, r DateRange) (*GSTR1Report, error) {
	from, to, err := s.resolve(r)
	if err != nil {
		return nil, err
	}
	bills, err := s.billRepo.ListBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return buildGSTR1(bills, from, to), nil
}

// GetHSNSummary groups bill lines by HSN code. Lines without a code are grouped as N/A.
func (s *GSTReportService) GetHSNSummary(ctx context.Context, r DateRange) ([]HSNRow, error) {
	from, to, err := s.resolve(r)
	if err != nil {
		return nil, err
	}
	bills, err := s.billRepo.ListBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return buildHSNSummary(bills), nil
}

// GetMonthly sums GST per calendar month
func (s *GSTReportService) GetMonthly(ctx context.Context, r DateRange) ([]MonthlyGSTRow, error) {
	from, to, err := s.resolve(r)
	if err != nil {
		return nil, err
	}
	bills, err := s.billRepo.ListBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return buildMonthly(bills), nil
}

// Export writes an XLSX workbook with one sheet per report
func (s *GSTReportService) Export(ctx context.Context, r DateRange, w io.Writer) error {
	from, to, err := s.resolve(r)
	if err != nil {
		return err
	}
	bills, err := s.billRepo.ListBetween(ctx, from, to)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	gstr1 := buildGSTR1(bills, from, to)
	rows := make([][]interface{}, 0, len(gstr1.Rows)+1)
	for _, row := range gstr1.Rows {
		rows = append(rows, []interface{}{
			row.InvoiceNo, row.Date, row.CustomerName, row.CustomerGSTIN,
			row.Taxable.InexactFloat64(), row.CGST.InexactFloat64(), row.SGST.InexactFloat64(), row.Total.InexactFloat64(),
		})
	}
	rows = append(rows, []interface{}{
		"TOTAL", "", "", "",
		gstr1.Taxable.InexactFloat64(), gstr1.CGST.InexactFloat64(), gstr1.SGST.InexactFloat64(), gstr1.Total.InexactFloat64(),
	})
	if err := writeSheet(f, sheetGSTR1, header,
		[]string{"Invoice No", "Date", "Customer", "GSTIN", "Taxable", "CGST", "SGST", "Total"}, rows); err != nil {
		return err
	}

	hsn := buildHSNSummary(bills)
	rows = make([][]interface{}, 0, len(hsn))
	for _, row := range hsn {
		rows = append(rows, []interface{}{
			row.HSNCode, row.Quantity, row.Taxable.InexactFloat64(), row.CGST.InexactFloat64(), row.SGST.InexactFloat64(),
		})
	}
	if err := writeSheet(f, sheetHSN, header,
		[]string{"HSN Code", "Quantity", "Taxable", "CGST", "SGST"}, rows); err != nil {
		return err
	}

	monthly := buildMonthly(bills)
	rows = make([][]interface{}, 0, len(monthly))
	for _, row := range monthly {
		rows = append(rows, []interface{}{
			row.Month, row.BillCount, row.Taxable.InexactFloat64(),
			row.CGST.InexactFloat64(), row.SGST.InexactFloat64(), row.TotalGST.InexactFloat64(),
		})
	}
	if err := writeSheet(f, sheetMonthly, header,
		[]string{"Month", "Bills", "Taxable", "CGST", "SGST", "Total GST"}, rows); err != nil {
		return err
	}

	// The new file starts with Sheet1; drop it once the report sheets exist.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}
	if idx, err := f.GetSheetIndex(sheetGSTR1); err == nil {
		f.SetActiveSheet(idx)
	}

	_, err = f.WriteTo(w)
	return err
}

// ExportFileName is the suggested download name for a range
func (s *GSTReportService) ExportFileName(r DateRange) string {
	from, to, err := s.resolve(r)
	if err != nil {
		return "gst-report.xlsx"
	}
	return fmt.Sprintf("gst-report-%s-to-%s.xlsx", from.Format("2006-01-02"), to.AddDate(0, 0, -1).Format("2006-01-02"))
}

func writeSheet(f *excelize.File, name string, headerStyle int, header []string, rows [][]interface{}) error {
	if _, err := f.NewSheet(name); err != nil {
		return err
	}
	cells := make([]interface{}, len(header))
	for i, h := range header {
		cells[i] = h
	}
	if err := f.SetSheetRow(name, "A1", &cells); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(name, "A1", last, headerStyle); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// resolve turns an inclusive day range into [from, to)
func (s *GSTReportService) resolve(r DateRange) (time.Time, time.Time, error) {
	now := s.now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 1, 0)
	if r.From != nil {
		from = startOfDay(*r.From)
	}
	if r.To != nil {
		to = startOfDay(*r.To).AddDate(0, 0, 1)
	}
	if !from.Before(to) {
		return time.Time{}, time.Time{}, apperror.NewBadRequestError("'from' must not be after 'to'")
	}
	return from, to, nil
}

func buildGSTR1(bills []entity.Bill, from, to time.Time) *GSTR1Report {
	report := &GSTR1Report{
		From: from.Format("2006-01-02"),
		To:   to.AddDate(0, 0, -1).Format("2006-01-02"),
		Rows: make([]GSTR1Row, 0, len(bills)),
	}
	for i := range bills {
		b := &bills[i]
		report.Rows = append(report.Rows, GSTR1Row{
			InvoiceNo:     b.BillNumber,
			Date:          b.Date.Format("2006-01-02"),
			CustomerName:  b.CustomerName,
			CustomerGSTIN: b.CustomerGSTIN,
			Taxable:       b.Subtotal,
			CGST:          b.CGST,
			SGST:          b.SGST,
			Total:         b.Total,
		})
		report.Taxable = report.Taxable.Add(b.Subtotal)
		report.CGST = report.CGST.Add(b.CGST)
		report.SGST = report.SGST.Add(b.SGST)
		report.Total = report.Total.Add(b.Total)
	}
	return report
}

func buildHSNSummary(bills []entity.Bill) []HSNRow {
	byCode := make(map[string]*HSNRow)
	for i := range bills {
		for _, item := range bills[i].Items {
			code := item.HSNCode
			if code == "" {
				code = noHSN
			}
			row, ok := byCode[code]
			if !ok {
				row = &HSNRow{HSNCode: code}
				byCode[code] = row
			}
			half := item.HalfGST()
			row.Quantity += item.Quantity
			row.Taxable = row.Taxable.Add(item.Taxable())
			row.CGST = row.CGST.Add(half)
			row.SGST = row.SGST.Add(half)
		}
	}

	rows := make([]HSNRow, 0, len(byCode))
	for _, row := range byCode {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].HSNCode < rows[j].HSNCode })
	return rows
}

func buildMonthly(bills []entity.Bill) []MonthlyGSTRow {
	byMonth := make(map[string]*MonthlyGSTRow)
	for i := range bills {
		b := &bills[i]
		month := b.Date.Format("2006-01")
		row, ok := byMonth[month]
		if !ok {
			row = &MonthlyGSTRow{Month: month}
			byMonth[month] = row
		}
		row.BillCount++
		row.Taxable = row.Taxable.Add(b.Subtotal)
		row.CGST = row.CGST.Add(b.CGST)
		row.SGST = row.SGST.Add(b.SGST)
		row.TotalGST = row.TotalGST.Add(b.TotalGST())
	}

	rows := make([]MonthlyGSTRow, 0, len(byMonth))
	for _, row := range byMonth {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Month < rows[j].Month })
	return rows
}

package service

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sangkips/billing-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ProductSheetColumns is the header row understood by ParseProductSheet
var ProductSheetColumns = []string{
	"name", "category", "price", "mrp", "gst_percent", "hsn_code", "stock", "unit", "barcode", "low_stock_threshold",
}

// ParseProductSheet reads the first worksheet of an XLSX file. Columns are matched by
// header name, so their order does not matter; unknown columns are ignored.
func ParseProductSheet(r io.Reader) ([]ImportProductRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperror.NewBadRequestError("Invalid spreadsheet: " + err.Error())
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperror.NewBadRequestError("Spreadsheet has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperror.NewBadRequestError("Spreadsheet is empty")
	}

	index := make(map[string]int)
	for i, h := range rows[0] {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := index["name"]; !ok {
		return nil, apperror.NewBadRequestError("Spreadsheet must have a 'name' column")
	}

	cell := func(row []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	out := make([]ImportProductRow, 0, len(rows)-1)
	for n, row := range rows[1:] {
		if len(strings.TrimSpace(strings.Join(row, ""))) == 0 {
			continue
		}
		parsed := ImportProductRow{
			Name:     cell(row, "name"),
			Category: cell(row, "category"),
			HSNCode:  cell(row, "hsn_code"),
			Unit:     cell(row, "unit"),
			Barcode:  cell(row, "barcode"),
		}
		var perr error
		parsed.Price, perr = sheetDecimal(cell(row, "price"), perr)
		parsed.MRP, perr = sheetDecimal(cell(row, "mrp"), perr)
		parsed.GSTPercent, perr = sheetDecimal(cell(row, "gst_percent"), perr)
		parsed.Stock, perr = sheetInt(cell(row, "stock"), perr)
		parsed.LowStockThreshold, perr = sheetInt(cell(row, "low_stock_threshold"), perr)
		if perr != nil {
			return nil, apperror.NewBadRequestError(fmt.Sprintf("Row %d: %s", n+2, perr.Error()))
		}
		out = append(out, parsed)
	}
	return out, nil
}

func sheetDecimal(s string, prev error) (decimal.Decimal, error) {
	if prev != nil || s == "" {
		return decimal.Zero, prev
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("'%s' is not a number", s)
	}
	return d, nil
}

func sheetInt(s string, prev error) (int, error) {
	if prev != nil || s == "" {
		return 0, prev
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("'%s' is not a whole number", s)
	}
	return n, nil
}

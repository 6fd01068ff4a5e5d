package handler

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/billing-api/internal/application/service"
	"github.com/sangkips/billing-api/internal/presentation/http/dto/request"
	"github.com/sangkips/billing-api/internal/presentation/http/dto/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler serves the dashboard, stock and GST reports
type ReportHandler struct {
	reportService *service.ReportService
	gstService    *service.GSTReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService, gstService *service.GSTReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService, gstService: gstService}
}

// Dashboard returns sales, expense and stock figures for the home screen
func (h *ReportHandler) Dashboard(c *gin.Context) {
	stats, err := h.reportService.GetDashboard(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Dashboard stats retrieved successfully", stats)
}

// Stock returns the stock report
func (h *ReportHandler) Stock(c *gin.Context) {
	report, err := h.reportService.GetStockReport(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Stock report retrieved successfully", report)
}

// GSTR1 lists the invoices of the range for the GSTR-1 return
func (h *ReportHandler) GSTR1(c *gin.Context) {
	r, ok := bindDateRange(c)
	if !ok {
		return
	}
	report, err := h.gstService.GetGSTR1(c.Request.Context(), r)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "GSTR-1 report retrieved successfully", report)
}

// HSNSummary groups the sold lines of the range by HSN code
func (h *ReportHandler) HSNSummary(c *gin.Context) {
	r, ok := bindDateRange(c)
	if !ok {
		return
	}
	rows, err := h.gstService.GetHSNSummary(c.Request.Context(), r)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "HSN summary retrieved successfully", rows)
}

// MonthlyGST returns the tax collected per month of the range
func (h *ReportHandler) MonthlyGST(c *gin.Context) {
	r, ok := bindDateRange(c)
	if !ok {
		return
	}
	rows, err := h.gstService.GetMonthly(c.Request.Context(), r)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Monthly GST retrieved successfully", rows)
}

// ExportGST downloads the three GST reports as one workbook
func (h *ReportHandler) ExportGST(c *gin.Context) {
	r, ok := bindDateRange(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.gstService.Export(c.Request.Context(), r, &buf); err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+h.gstService.ExportFileName(r)+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// bindDateRange reads inclusive from/to query dates
func bindDateRange(c *gin.Context) (service.DateRange, bool) {
	var req request.DateRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters: "+err.Error())
		return service.DateRange{}, false
	}
	from, err := parseDate("from", req.From)
	if err != nil {
		response.Error(c, err)
		return service.DateRange{}, false
	}
	to, err := parseDate("to", req.To)
	if err != nil {
		response.Error(c, err)
		return service.DateRange{}, false
	}
	return service.DateRange{From: from, To: to}, true
}

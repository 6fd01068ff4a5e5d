package handler

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/billing-api/internal/application/service"
	"github.com/sangkips/billing-api/internal/domain/enum"
	"github.com/sangkips/billing-api/internal/domain/repository"
	"github.com/sangkips/billing-api/internal/presentation/http/dto/request"
	"github.com/sangkips/billing-api/internal/presentation/http/dto/response"
)

// BillHandler serves finalized bills and their printed forms
type BillHandler struct {
	billService    *service.BillService
	printerService *service.PrinterService
}

// NewBillHandler creates a new bill handler
func NewBillHandler(billService *service.BillService, printerService *service.PrinterService) *BillHandler {
	return &BillHandler{billService: billService, printerService: printerService}
}

// List handles listing bills, newest first
func (h *BillHandler) List(c *gin.Context) {
	var filter request.BillFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}
	from, to, err := parseDateRange(filter.From, filter.To)
	if err != nil {
		response.Error(c, err)
		return
	}

	params := &repository.BillFilterParams{
		Pagination: pageParams(filter.Page, filter.PerPage),
		Search:     filter.Search,
		StartDate:  from,
		EndDate:    to,
	}
	if filter.Status != "" {
		status, err := enum.ParseBillStatus(filter.Status)
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		params.Status = &status
	}
	if filter.CustomerID != "" {
		params.CustomerID = &filter.CustomerID
	}

	result, err := h.billService.ListBills(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, "Bills retrieved successfully", result)
}

// Get returns a bill by id or bill number
func (h *BillHandler) Get(c *gin.Context) {
	bill, err := h.billService.GetBill(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Bill retrieved successfully", bill)
}

// Receipt returns the printable view of a bill
func (h *BillHandler) Receipt(c *gin.Context) {
	receipt, err := h.printerService.GetReceipt(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Receipt generated", receipt)
}

// PDF downloads the bill as a PDF invoice
func (h *BillHandler) PDF(c *gin.Context) {
	var buf bytes.Buffer
	name, err := h.printerService.WritePDF(c.Request.Context(), c.Param("id"), &buf)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// Print reprints a bill. A printer failure still returns the receipt, with a warning.
func (h *BillHandler) Print(c *gin.Context) {
	receipt, err := h.printerService.PrintBillByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if receipt != nil {
			response.OK(c, "Receipt generated but printing failed", gin.H{
				"receipt": receipt,
				"warning": err.Error(),
			})
			return
		}
		response.Error(c, err)
		return
	}
	response.OK(c, "Bill sent to printer", gin.H{"receipt": receipt})
}

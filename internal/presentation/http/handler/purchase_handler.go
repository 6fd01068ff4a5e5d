package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/billing-api/internal/application/service"
	"github.com/sangkips/billing-api/internal/domain/enum"
	"github.com/sangkips/billing-api/internal/domain/repository"
	"github.com/sangkips/billing-api/internal/presentation/http/dto/request"
	"github.com/sangkips/billing-api/internal/presentation/http/dto/response"
)

// PurchaseHandler handles supplier purchases
type PurchaseHandler struct {
	purchaseService *service.PurchaseService
}

// NewPurchaseHandler creates a new purchase handler
func NewPurchaseHandler(purchaseService *service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

// List handles listing purchases
func (h *PurchaseHandler) List(c *gin.Context) {
	var filter request.PurchaseFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	params := &repository.PurchaseFilterParams{
		Pagination: pageParams(filter.Page, filter.PerPage),
		Search:     filter.Search,
	}
	if filter.Status != "" {
		status, err := enum.ParsePurchaseStatus(filter.Status)
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		params.Status = &status
	}

	result, err := h.purchaseService.ListPurchases(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, "Purchases retrieved successfully", result)
}

// Create handles purchase creation
func (h *PurchaseHandler) Create(c *gin.Context) {
	var req request.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	date, err := parseDate("date", req.Date)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]service.PurchaseItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.PurchaseItemInput{
			ProductID:  item.ProductID,
			Name:       item.Name,
			Quantity:   item.Quantity,
			Rate:       item.Rate,
			GSTPercent: item.GSTPercent,
		})
	}

	purchase, err := h.purchaseService.CreatePurchase(c.Request.Context(), &service.CreatePurchaseInput{
		SupplierName:   req.SupplierName,
		SupplierGSTIN:  req.SupplierGSTIN,
		SupplierMobile: req.SupplierMobile,
		InvoiceNo:      req.InvoiceNo,
		Date:           date,
		Paid:           req.Paid,
		Items:          items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Purchase created successfully", purchase)
}

// Get handles getting a single purchase with its items
func (h *PurchaseHandler) Get(c *gin.Context) {
	purchase, err := h.purchaseService.GetPurchase(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Purchase retrieved successfully", purchase)
}

// Pay records a payment against the purchase balance
func (h *PurchaseHandler) Pay(c *gin.Context) {
	var req request.PayPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	purchase, err := h.purchaseService.PayPurchase(c.Request.Context(), c.Param("id"), req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Payment recorded", purchase)
}

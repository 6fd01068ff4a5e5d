package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/billing-api/internal/application/service"
	"github.com/sangkips/billing-api/internal/domain/enum"
	"github.com/sangkips/billing-api/internal/domain/repository"
	"github.com/sangkips/billing-api/internal/presentation/http/dto/request"
	"github.com/sangkips/billing-api/internal/presentation/http/dto/response"
)

// CustomerHandler handles customer-related HTTP requests
type CustomerHandler struct {
	customerService *service.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// List handles listing customers
func (h *CustomerHandler) List(c *gin.Context) {
	var filter request.CustomerFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	params := &repository.CustomerFilterParams{
		Pagination: pageParams(filter.Page, filter.PerPage),
		Search:     filter.Search,
	}
	if filter.Type != "" {
		t := enum.CustomerType(filter.Type)
		params.Type = &t
	}

	result, err := h.customerService.ListCustomers(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, "Customers retrieved successfully", result)
}

// Create handles customer creation
func (h *CustomerHandler) Create(c *gin.Context) {
	var req request.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), &service.CreateCustomerInput{
		Name:        req.Name,
		Mobile:      req.Mobile,
		Email:       req.Email,
		GSTIN:       req.GSTIN,
		Address:     req.Address,
		Type:        enum.CustomerType(req.Type),
		CreditLimit: req.CreditLimit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Customer created successfully", customer)
}

// Get handles getting a single customer
func (h *CustomerHandler) Get(c *gin.Context) {
	customer, err := h.customerService.GetCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Customer retrieved successfully", customer)
}

// Update handles customer updates
func (h *CustomerHandler) Update(c *gin.Context) {
	var req request.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := &service.UpdateCustomerInput{
		ID:          c.Param("id"),
		Name:        req.Name,
		Mobile:      req.Mobile,
		Email:       req.Email,
		GSTIN:       req.GSTIN,
		Address:     req.Address,
		CreditLimit: req.CreditLimit,
	}
	if req.Type != nil {
		t := enum.CustomerType(*req.Type)
		input.Type = &t
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Customer updated successfully", customer)
}

// Delete handles customer deletion
func (h *CustomerHandler) Delete(c *gin.Context) {
	if err := h.customerService.DeleteCustomer(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Stats returns customer counts and outstanding dues
func (h *CustomerHandler) Stats(c *gin.Context) {
	stats, err := h.customerService.GetStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Customer stats retrieved successfully", stats)
}

package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/billing-api/internal/application/service"
	"github.com/sangkips/billing-api/internal/domain/repository"
	"github.com/sangkips/billing-api/internal/presentation/http/dto/request"
	"github.com/sangkips/billing-api/internal/presentation/http/dto/response"
)

// ExpenseHandler handles shop expense requests
type ExpenseHandler struct {
	expenseService *service.ExpenseService
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(expenseService *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// List handles listing expenses, newest first
func (h *ExpenseHandler) List(c *gin.Context) {
	var filter request.ExpenseFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}
	from, to, err := parseDateRange(filter.From, filter.To)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.expenseService.ListExpenses(c.Request.Context(), &repository.ExpenseFilterParams{
		Pagination: pageParams(filter.Page, filter.PerPage),
		Category:   filter.Category,
		StartDate:  from,
		EndDate:    to,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, "Expenses retrieved successfully", result)
}

// Create handles expense creation
func (h *ExpenseHandler) Create(c *gin.Context) {
	input, ok := h.bindExpense(c)
	if !ok {
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Expense recorded successfully", expense)
}

// Get handles getting a single expense
func (h *ExpenseHandler) Get(c *gin.Context) {
	expense, err := h.expenseService.GetExpense(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Expense retrieved successfully", expense)
}

// Update replaces an expense
func (h *ExpenseHandler) Update(c *gin.Context) {
	input, ok := h.bindExpense(c)
	if !ok {
		return
	}

	expense, err := h.expenseService.UpdateExpense(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Expense updated successfully", expense)
}

// Delete handles expense deletion
func (h *ExpenseHandler) Delete(c *gin.Context) {
	if err := h.expenseService.DeleteExpense(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Stats returns today, month and all-time expense totals
func (h *ExpenseHandler) Stats(c *gin.Context) {
	stats, err := h.expenseService.GetStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Expense stats retrieved successfully", stats)
}

func (h *ExpenseHandler) bindExpense(c *gin.Context) (*service.ExpenseInput, bool) {
	var req request.ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return nil, false
	}
	date, err := parseDate("date", req.Date)
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	return &service.ExpenseInput{
		Category:    req.Category,
		Description: req.Description,
		Amount:      req.Amount,
		Date:        date,
		PaymentMode: req.PaymentMode,
		CreatedBy:   GetStaffID(c),
	}, true
}

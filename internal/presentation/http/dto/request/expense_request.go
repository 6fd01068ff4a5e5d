package request

import "github.com/shopspring/decimal"

// ExpenseRequest is used to create and to replace an expense
type ExpenseRequest struct {
	Category    string          `json:"category" binding:"required"`
	Description string          `json:"description" binding:"max=500"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	PaymentMode string          `json:"payment_mode"`
}

// ExpenseFilterRequest represents expense filter parameters
type ExpenseFilterRequest struct {
	Category string `form:"category"`
	From     string `form:"from"`
	To       string `form:"to"`
	Page     int    `form:"page"`
	PerPage  int    `form:"per_page"`
}

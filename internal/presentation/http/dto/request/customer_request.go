package request

import "github.com/shopspring/decimal"

// CreateCustomerRequest represents a customer creation request
type CreateCustomerRequest struct {
	Name        string          `json:"name" binding:"required,min=2,max=255"`
	Mobile      string          `json:"mobile" binding:"required"`
	Email       string          `json:"email" binding:"omitempty,email"`
	GSTIN       string          `json:"gstin" binding:"omitempty,gstin"`
	Address     string          `json:"address"`
	Type        string          `json:"type" binding:"omitempty,oneof=retail wholesale credit"`
	CreditLimit decimal.Decimal `json:"credit_limit"`
}

// UpdateCustomerRequest represents a customer update request
type UpdateCustomerRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=2,max=255"`
	Mobile      *string          `json:"mobile"`
	Email       *string          `json:"email" binding:"omitempty,email"`
	GSTIN       *string          `json:"gstin"`
	Address     *string          `json:"address"`
	Type        *string          `json:"type" binding:"omitempty,oneof=retail wholesale credit"`
	CreditLimit *decimal.Decimal `json:"credit_limit"`
}

// CustomerFilterRequest represents customer filter parameters
type CustomerFilterRequest struct {
	Search  string `form:"search"`
	Type    string `form:"type" binding:"omitempty,oneof=retail wholesale credit"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}

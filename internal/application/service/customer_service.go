package service

import (
	"context"
	"strings"

	"github.com/sangkips/billing-api/internal/domain/entity"
	"github.com/sangkips/billing-api/internal/domain/enum"
	"github.com/sangkips/billing-api/internal/domain/repository"
	"github.com/sangkips/billing-api/pkg/apperror"
	"github.com/sangkips/billing-api/pkg/pagination"
	"github.com/sangkips/billing-api/pkg/utils"
	"github.com/shopspring/decimal"
)

// CustomerService handles customer-related operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CreateCustomerInput represents the create customer input
type CreateCustomerInput struct {
	Name        string
	Mobile      string
	Email       string
	GSTIN       string
	Address     string
	Type        enum.CustomerType
	CreditLimit decimal.Decimal
}

// CreateCustomer creates a new customer. Mobile numbers are unique in the directory.
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	customer := &entity.Customer{
		Name:        strings.TrimSpace(input.Name),
		Mobile:      strings.TrimSpace(input.Mobile),
		Email:       strings.TrimSpace(input.Email),
		GSTIN:       utils.NormalizeGSTIN(input.GSTIN),
		Address:     input.Address,
		Type:        input.Type,
		CreditLimit: input.CreditLimit,
	}
	if customer.Type == "" {
		customer.Type = enum.CustomerTypeRetail
	}

	if err := validateCustomer(customer); err != nil {
		return nil, err
	}
	if err := s.checkMobile(ctx, customer); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id string) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// ListCustomers lists customers with search and type filter
func (s *CustomerService) ListCustomers(ctx context.Context, params *repository.CustomerFilterParams) (*pagination.Result[entity.Customer], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.Default()
	}
	customers, total, err := s.customerRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewResult(customers, params.Pagination, total), nil
}

// UpdateCustomerInput represents the update customer input. Nil fields are left unchanged.
type UpdateCustomerInput struct {
	ID          string
	Name        *string
	Mobile      *string
	Email       *string
	GSTIN       *string
	Address     *string
	Type        *enum.CustomerType
	CreditLimit *decimal.Decimal
}

// UpdateCustomer updates a customer
func (s *CustomerService) UpdateCustomer(ctx context.Context, input *UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := s.GetCustomer(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		customer.Name = strings.TrimSpace(*input.Name)
	}
	if input.Mobile != nil {
		customer.Mobile = strings.TrimSpace(*input.Mobile)
	}
	if input.Email != nil {
		customer.Email = strings.TrimSpace(*input.Email)
	}
	if input.GSTIN != nil {
		customer.GSTIN = utils.NormalizeGSTIN(*input.GSTIN)
	}
	if input.Address != nil {
		customer.Address = *input.Address
	}
	if input.Type != nil {
		customer.Type = *input.Type
	}
	if input.CreditLimit != nil {
		customer.CreditLimit = *input.CreditLimit
	}

	if err := validateCustomer(customer); err != nil {
		return nil, err
	}
	if input.Mobile != nil {
		if err := s.checkMobile(ctx, customer); err != nil {
			return nil, err
		}
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer deletes a customer. Bills keep their customer snapshot.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id string) error {
	if _, err := s.GetCustomer(ctx, id); err != nil {
		return err
	}
	return s.customerRepo.Delete(ctx, id)
}

// CustomerStats summarizes the directory
type CustomerStats struct {
	Total            int                       `json:"total"`
	ByType           map[enum.CustomerType]int `json:"by_type"`
	TotalOutstanding decimal.Decimal           `json:"total_outstanding"`
	WithOutstanding  int                       `json:"with_outstanding"`
	TotalPurchases   decimal.Decimal           `json:"total_purchases"`
}

// GetStats counts customers per type and sums their balances
func (s *CustomerService) GetStats(ctx context.Context) (*CustomerStats, error) {
	customers, err := s.customerRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := &CustomerStats{
		Total:  len(customers),
		ByType: make(map[enum.CustomerType]int, len(enum.CustomerTypes)),
	}
	for _, t := range enum.CustomerTypes {
		stats.ByType[t] = 0
	}
	for _, c := range customers {
		stats.ByType[c.Type]++
		stats.TotalOutstanding = stats.TotalOutstanding.Add(c.OutstandingBalance)
		stats.TotalPurchases = stats.TotalPurchases.Add(c.TotalPurchases)
		if c.OutstandingBalance.IsPositive() {
			stats.WithOutstanding++
		}
	}
	return stats, nil
}

func validateCustomer(c *entity.Customer) error {
	var fields []apperror.FieldError
	if c.Name == "" {
		fields = append(fields, apperror.FieldError{Field: "name", Message: "is required"})
	}
	if !utils.IsValidMobile(c.Mobile) {
		fields = append(fields, apperror.FieldError{Field: "mobile", Message: "must be a 10 digit mobile number"})
	}
	if c.GSTIN != "" && !utils.IsValidGSTIN(c.GSTIN) {
		fields = append(fields, apperror.FieldError{Field: "gstin", Message: "is not a valid GSTIN"})
	}
	if !c.Type.IsValid() {
		fields = append(fields, apperror.FieldError{Field: "type", Message: "must be one of [retail wholesale credit]"})
	}
	if c.CreditLimit.IsNegative() {
		fields = append(fields, apperror.FieldError{Field: "credit_limit", Message: "must not be negative"})
	}
	if len(fields) > 0 {
		return apperror.NewValidationError(fields)
	}
	return nil
}

func (s *CustomerService) checkMobile(ctx context.Context, c *entity.Customer) error {
	existing, err := s.customerRepo.GetByMobile(ctx, c.Mobile)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != c.ID {
		return apperror.NewConflictError("A customer with this mobile number already exists")
	}
	return nil
}

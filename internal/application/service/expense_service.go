package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sangkips/billing-api/internal/domain/entity"
	"github.com/sangkips/billing-api/internal/domain/repository"
	"github.com/sangkips/billing-api/pkg/apperror"
	"github.com/sangkips/billing-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// ExpenseService handles shop expenses
type ExpenseService struct {
	expenseRepo repository.ExpenseRepository
	settings    *CustomizationService
	now         func() time.Time
}

// NewExpenseService creates a new expense service
func NewExpenseService(expenseRepo repository.ExpenseRepository, settings *CustomizationService) *ExpenseService {
	return &ExpenseService{
		expenseRepo: expenseRepo,
		settings:    settings,
		now:         time.Now,
	}
}

// ExpenseInput is used for both create and update
type ExpenseInput struct {
	Category    string
	Description string
	Amount      decimal.Decimal
	Date        *time.Time
	PaymentMode string
	CreatedBy   string
}

// CreateExpense records an expense. The category must be an enabled expense category.
func (s *ExpenseService) CreateExpense(ctx context.Context, input *ExpenseInput) (*entity.Expense, error) {
	expense := &entity.Expense{CreatedBy: input.CreatedBy, Date: s.now()}
	if err := s.apply(expense, input); err != nil {
		return nil, err
	}
	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// GetExpense retrieves an expense by ID
func (s *ExpenseService) GetExpense(ctx context.Context, id string) (*entity.Expense, error) {
	expense, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, apperror.NewNotFoundError("Expense")
	}
	return expense, nil
}

// UpdateExpense replaces the editable fields of an expense
func (s *ExpenseService) UpdateExpense(ctx context.Context, id string, input *ExpenseInput) (*entity.Expense, error) {
	expense, err := s.GetExpense(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(expense, input); err != nil {
		return nil, err
	}
	if err := s.expenseRepo.Update(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// DeleteExpense deletes an expense
func (s *ExpenseService) DeleteExpense(ctx context.Context, id string) error {
	if _, err := s.GetExpense(ctx, id); err != nil {
		return err
	}
	return s.expenseRepo.Delete(ctx, id)
}

// ListExpenses lists expenses newest first
func (s *ExpenseService) ListExpenses(ctx context.Context, params *repository.ExpenseFilterParams) (*pagination.Result[entity.Expense], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.Default()
	}
	expenses, total, err := s.expenseRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewResult(expenses, params.Pagination, total), nil
}

// CategoryAmount is the spend in one category
type CategoryAmount struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Count    int             `json:"count"`
}

// ExpenseStats summarizes spending
type ExpenseStats struct {
	Today      decimal.Decimal  `json:"today"`
	ThisMonth  decimal.Decimal  `json:"this_month"`
	Total      decimal.Decimal  `json:"total"`
	Count      int              `json:"count"`
	ByCategory []CategoryAmount `json:"by_category"`
}

// GetStats sums expenses for today, the current month and overall, largest category first
func (s *ExpenseService) GetStats(ctx context.Context) (*ExpenseStats, error) {
	expenses, err := s.expenseRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return summarizeExpenses(expenses, s.now()), nil
}

func summarizeExpenses(expenses []entity.Expense, now time.Time) *ExpenseStats {
	todayStart := startOfDay(now)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	stats := &ExpenseStats{Count: len(expenses), ByCategory: []CategoryAmount{}}
	byCategory := make(map[string]*CategoryAmount)
	for _, e := range expenses {
		stats.Total = stats.Total.Add(e.Amount)
		if !e.Date.Before(todayStart) && e.Date.Before(todayStart.AddDate(0, 0, 1)) {
			stats.Today = stats.Today.Add(e.Amount)
		}
		if !e.Date.Before(monthStart) && e.Date.Before(monthStart.AddDate(0, 1, 0)) {
			stats.ThisMonth = stats.ThisMonth.Add(e.Amount)
		}
		ca, ok := byCategory[e.Category]
		if !ok {
			ca = &CategoryAmount{Category: e.Category}
			byCategory[e.Category] = ca
		}
		ca.Amount = ca.Amount.Add(e.Amount)
		ca.Count++
	}
	for _, ca := range byCategory {
		stats.ByCategory = append(stats.ByCategory, *ca)
	}
	sort.Slice(stats.ByCategory, func(i, j int) bool {
		if c := stats.ByCategory[i].Amount.Cmp(stats.ByCategory[j].Amount); c != 0 {
			return c > 0
		}
		return stats.ByCategory[i].Category < stats.ByCategory[j].Category
	})
	return stats
}

func (s *ExpenseService) apply(expense *entity.Expense, input *ExpenseInput) error {
	category, ok := findCategory(s.settings.EnabledExpenseCategories(), input.Category)
	if !ok {
		return apperror.NewValidationError([]apperror.FieldError{
			{Field: "category", Message: fmt.Sprintf("'%s' is not an enabled expense category", input.Category)},
		})
	}
	if !input.Amount.IsPositive() {
		return apperror.NewValidationError([]apperror.FieldError{{Field: "amount", Message: "must be greater than zero"}})
	}

	mode := strings.TrimSpace(input.PaymentMode)
	if mode != "" {
		m, err := s.settings.ResolvePaymentMode(mode)
		if err != nil {
			return err
		}
		mode = m.Name
	}

	expense.Category = category.Name
	expense.Description = strings.TrimSpace(input.Description)
	expense.Amount = input.Amount
	expense.PaymentMode = mode
	if input.Date != nil {
		expense.Date = *input.Date
	}
	return nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

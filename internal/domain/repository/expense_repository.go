package repository

import (
	"context"
	"time"

	"github.com/sangkips/billing-api/internal/domain/entity"
	"github.com/sangkips/billing-api/pkg/pagination"
)

// ExpenseRepository stores shop expenses
type ExpenseRepository interface {
	Create(ctx context.Context, expense *entity.Expense) error
	GetByID(ctx context.Context, id string) (*entity.Expense, error)
	Update(ctx context.Context, expense *entity.Expense) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, params *ExpenseFilterParams) ([]entity.Expense, int64, error)
	ListAll(ctx context.Context) ([]entity.Expense, error)
}

// ExpenseFilterParams narrows an expense listing
type ExpenseFilterParams struct {
	Pagination *pagination.Params
	Category   string
	StartDate  *time.Time
	EndDate    *time.Time
}

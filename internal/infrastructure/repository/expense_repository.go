package repository

import (
	"context"
	"errors"

	"github.com/sangkips/billing-api/internal/domain/entity"
	domainRepo "github.com/sangkips/billing-api/internal/domain/repository"
	"gorm.io/gorm"
)

type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *gorm.DB) domainRepo.ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(ctx context.Context, expense *entity.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *expenseRepository) GetByID(ctx context.Context, id string) (*entity.Expense, error) {
	var expense entity.Expense
	err := r.db.WithContext(ctx).First(&expense, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &expense, err
}

func (r *expenseRepository) Update(ctx context.Context, expense *entity.Expense) error {
	return r.db.WithContext(ctx).Save(expense).Error
}

func (r *expenseRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&entity.Expense{}, "id = ?", id).Error
}

func (r *expenseRepository) List(ctx context.Context, params *domainRepo.ExpenseFilterParams) ([]entity.Expense, int64, error) {
	var expenses []entity.Expense
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Expense{}).
		Scopes(DateRange("date", params.StartDate, params.EndDate))
	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params.Pagination)).
		Order("date DESC").
		Find(&expenses).Error
	return expenses, total, err
}

func (r *expenseRepository) ListAll(ctx context.Context) ([]entity.Expense, error) {
	var expenses []entity.Expense
	err := r.db.WithContext(ctx).Order("date DESC").Find(&expenses).Error
	return expenses, err
}

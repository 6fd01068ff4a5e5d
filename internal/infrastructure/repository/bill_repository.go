package repository

import (
	"context"
	"errors"
	"time"

	"github.com/sangkips/billing-api/internal/domain/entity"
	domainRepo "github.com/sangkips/billing-api/internal/domain/repository"
	"gorm.io/gorm"
)

type billRepository struct {
	db *gorm.DB
}

// NewBillRepository creates a new bill repository
func NewBillRepository(db *gorm.DB) domainRepo.BillRepository {
	return &billRepository{db: db}
}

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// Create inserts the bill and its items in one transaction
func (r *billRepository) Create(ctx context.Context, bill *entity.Bill) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(bill).Error
	})
}

func (r *billRepository) GetByID(ctx context.Context, id string) (*entity.Bill, error) {
	var bill entity.Bill
	err := r.db.WithContext(ctx).
		Preload("Items", orderedItems).
		First(&bill, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bill, err
}

func (r *billRepository) GetByNumber(ctx context.Context, billNumber string) (*entity.Bill, error) {
	var bill entity.Bill
	err := r.db.WithContext(ctx).
		Preload("Items", orderedItems).
		First(&bill, "bill_number = ?", billNumber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bill, err
}

func (r *billRepository) List(ctx context.Context, params *domainRepo.BillFilterParams) ([]entity.Bill, int64, error) {
	var bills []entity.Bill
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Bill{}).
		Scopes(
			Search(params.Search, "bill_number", "customer_name", "customer_mobile"),
			DateRange("date", params.StartDate, params.EndDate),
		)

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params.Pagination)).
		Preload("Items", orderedItems).
		Order("date DESC, bill_number DESC").
		Find(&bills).Error
	return bills, total, err
}

func (r *billRepository) ListBetween(ctx context.Context, from, to time.Time) ([]entity.Bill, error) {
	var bills []entity.Bill
	err := r.db.WithContext(ctx).
		Scopes(DateRange("date", &from, &to)).
		Preload("Items", orderedItems).
		Order("date ASC, bill_number ASC").
		Find(&bills).Error
	return bills, err
}

func (r *billRepository) NumbersWithPrefix(ctx context.Context, prefix string) ([]string, error) {
	var numbers []string
	err := r.db.WithContext(ctx).Model(&entity.Bill{}).
		Where("bill_number LIKE ?", prefix+"%").
		Pluck("bill_number", &numbers).Error
	return numbers, err
}

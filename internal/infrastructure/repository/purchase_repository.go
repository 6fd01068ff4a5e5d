package repository

import (
	"context"
	"errors"

	"github.com/sangkips/billing-api/internal/domain/entity"
	domainRepo "github.com/sangkips/billing-api/internal/domain/repository"
	"gorm.io/gorm"
)

type purchaseRepository struct {
	db *gorm.DB
}

// NewPurchaseRepository creates a new purchase repository
func NewPurchaseRepository(db *gorm.DB) domainRepo.PurchaseRepository {
	return &purchaseRepository{db: db}
}

func (r *purchaseRepository) Create(ctx context.Context, purchase *entity.Purchase) error {
	return r.db.WithContext(ctx).Create(purchase).Error
}

func (r *purchaseRepository) GetByID(ctx context.Context, id string) (*entity.Purchase, error) {
	var purchase entity.Purchase
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&purchase, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &purchase, err
}

func (r *purchaseRepository) UpdatePayment(ctx context.Context, purchase *entity.Purchase) error {
	return r.db.WithContext(ctx).Model(&entity.Purchase{}).
		Where("id = ?", purchase.ID).
		Updates(map[string]interface{}{
			"paid":    purchase.Paid,
			"balance": purchase.Balance,
			"status":  purchase.Status,
		}).Error
}

func (r *purchaseRepository) List(ctx context.Context, params *domainRepo.PurchaseFilterParams) ([]entity.Purchase, int64, error) {
	var purchases []entity.Purchase
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Purchase{}).
		Scopes(Search(params.Search, "purchase_no", "supplier_name", "invoice_no"))
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params.Pagination)).
		Preload("Items").
		Order("date DESC, purchase_no DESC").
		Find(&purchases).Error
	return purchases, total, err
}

func (r *purchaseRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.Purchase{}).Count(&total).Error
	return total, err
}

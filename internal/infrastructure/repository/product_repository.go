package repository

import (
	"context"
	"errors"

	"github.com/sangkips/billing-api/internal/domain/entity"
	domainRepo "github.com/sangkips/billing-api/internal/domain/repository"
	"gorm.io/gorm"
)

var productSortColumns = map[string]string{
	"name":       "name",
	"price":      "price",
	"stock":      "stock",
	"category":   "category",
	"created_at": "created_at",
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) domainRepo.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

func (r *productRepository) GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).First(&product, "barcode = ?", barcode).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

// GetByIDs retrieves multiple products by their IDs in a single query
func (r *productRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.Product, error) {
	if len(ids) == 0 {
		return []entity.Product{}, nil
	}
	var products []entity.Product
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error
	return products, err
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&entity.Product{}, "id = ?", id).Error
}

func (r *productRepository) List(ctx context.Context, params *domainRepo.ProductFilterParams) ([]entity.Product, int64, error) {
	var products []entity.Product
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Product{}).
		Scopes(Search(params.Search, "name", "name_tamil", "barcode", "hsn_code"))

	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}
	if params.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if params.LowStock {
		query = query.Where("stock <= low_stock_threshold")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := sortColumn(params.SortBy, productSortColumns, "name")
	dir := "ASC"
	if params.SortOrder != "" {
		dir = sortDirection(params.SortOrder)
	}

	err := query.Scopes(Paginate(params.Pagination)).
		Order(order + " " + dir).
		Find(&products).Error
	return products, total, err
}

func (r *productRepository) ListAll(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	err := r.db.WithContext(ctx).Order("name ASC").Find(&products).Error
	return products, err
}

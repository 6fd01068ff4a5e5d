package repository

import (
	"context"

	"github.com/sangkips/billing-api/internal/domain/entity"
	"github.com/sangkips/billing-api/pkg/pagination"
)

// ProductRepository is the product catalog
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, int64, error)
	ListAll(ctx context.Context) ([]entity.Product, error)
}

// ProductFilterParams narrows a product listing
type ProductFilterParams struct {
	Pagination *pagination.Params
	Search     string
	Category   string
	ActiveOnly bool
	// LowStock keeps products at or below their own low stock threshold
	LowStock   bool
	SortBy     string
	SortOrder  string
}

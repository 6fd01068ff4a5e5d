package repository

import (
	"context"

	"github.com/sangkips/billing-api/internal/domain/entity"
	"github.com/sangkips/billing-api/internal/domain/enum"
	"github.com/sangkips/billing-api/pkg/pagination"
)

// PurchaseRepository stores supplier purchases with their items
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.Purchase) error
	GetByID(ctx context.Context, id string) (*entity.Purchase, error)
	// UpdatePayment persists paid, balance and status only
	UpdatePayment(ctx context.Context, purchase *entity.Purchase) error
	List(ctx context.Context, params *PurchaseFilterParams) ([]entity.Purchase, int64, error)
	Count(ctx context.Context) (int64, error)
}

// PurchaseFilterParams narrows a purchase listing
type PurchaseFilterParams struct {
	Pagination *pagination.Params
	Search     string
	Status     *enum.PurchaseStatus
}

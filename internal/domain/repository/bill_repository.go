package repository

import (
	"context"
	"time"

	"github.com/sangkips/billing-api/internal/domain/entity"
	"github.com/sangkips/billing-api/internal/domain/enum"
	"github.com/sangkips/billing-api/pkg/pagination"
)

// BillRepository stores finalized bills. There is no update: bills are immutable.
type BillRepository interface {
	Create(ctx context.Context, bill *entity.Bill) error
	GetByID(ctx context.Context, id string) (*entity.Bill, error)
	GetByNumber(ctx context.Context, billNumber string) (*entity.Bill, error)
	List(ctx context.Context, params *BillFilterParams) ([]entity.Bill, int64, error)
	// ListBetween returns bills with items whose date is in [from, to), oldest first
	ListBetween(ctx context.Context, from, to time.Time) ([]entity.Bill, error)
	// NumbersWithPrefix returns every bill number starting with prefix
	NumbersWithPrefix(ctx context.Context, prefix string) ([]string, error)
}

// BillFilterParams narrows a bill listing. Results are newest first.
type BillFilterParams struct {
	Pagination *pagination.Params
	Search     string
	Status     *enum.BillStatus
	CustomerID *string
	StartDate  *time.Time
	EndDate    *time.Time
}

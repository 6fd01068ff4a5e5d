package repository

import (
	"context"

	"github.com/sangkips/billing-api/internal/domain/entity"
	"github.com/sangkips/billing-api/internal/domain/enum"
	"github.com/sangkips/billing-api/pkg/pagination"
)

// CustomerRepository is the customer directory
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	GetByMobile(ctx context.Context, mobile string) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, params *CustomerFilterParams) ([]entity.Customer, int64, error)
	ListAll(ctx context.Context) ([]entity.Customer, error)
}

// CustomerFilterParams narrows a customer listing
type CustomerFilterParams struct {
	Pagination *pagination.Params
	Search     string
	Type       *enum.CustomerType
}

package repository

import (
	"context"

	"github.com/sangkips/billing-api/internal/domain/entity"
)

// StaffRepository stores staff accounts
type StaffRepository interface {
	Create(ctx context.Context, staff *entity.Staff) error
	GetByID(ctx context.Context, id string) (*entity.Staff, error)
	GetByEmail(ctx context.Context, email string) (*entity.Staff, error)
	Update(ctx context.Context, staff *entity.Staff) error
	List(ctx context.Context) ([]entity.Staff, error)
}

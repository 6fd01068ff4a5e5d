package service

import (
	"context"

	"github.com/sangkips/billing-api/internal/domain/entity"
	"github.com/sangkips/billing-api/internal/domain/repository"
	"github.com/sangkips/billing-api/pkg/apperror"
	"github.com/sangkips/billing-api/pkg/pagination"
)

// BillService reads finalized bills. Bills are only ever written by CartService.
type BillService struct {
	billRepo repository.BillRepository
}

// NewBillService creates a new bill service
func NewBillService(billRepo repository.BillRepository) *BillService {
	return &BillService{billRepo: billRepo}
}

// GetBill finds a bill by id, falling back to its bill number
func (s *BillService) GetBill(ctx context.Context, idOrNumber string) (*entity.Bill, error) {
	bill, err := s.billRepo.GetByID(ctx, idOrNumber)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		bill, err = s.billRepo.GetByNumber(ctx, idOrNumber)
		if err != nil {
			return nil, err
		}
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}
	return bill, nil
}

// ListBills lists bills newest first
func (s *BillService) ListBills(ctx context.Context, params *repository.BillFilterParams) (*pagination.Result[entity.Bill], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.Default()
	}
	bills, total, err := s.billRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewResult(bills, params.Pagination, total), nil
}

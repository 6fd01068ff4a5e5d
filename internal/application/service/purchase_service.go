package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sangkips/billing-api/internal/domain/entity"
	"github.com/sangkips/billing-api/internal/domain/repository"
	"github.com/sangkips/billing-api/pkg/apperror"
	"github.com/sangkips/billing-api/pkg/pagination"
	"github.com/sangkips/billing-api/pkg/utils"
	"github.com/shopspring/decimal"
)

// PurchaseService handles purchase-related operations
type PurchaseService struct {
	purchaseRepo repository.PurchaseRepository
	productRepo  repository.ProductRepository
	now          func() time.Time
}

// NewPurchaseService creates a new purchase service
func NewPurchaseService(purchaseRepo repository.PurchaseRepository, productRepo repository.ProductRepository) *PurchaseService {
	return &PurchaseService{
		purchaseRepo: purchaseRepo,
		productRepo:  productRepo,
		now:          time.Now,
	}
}

// PurchaseItemInput represents an item in a purchase. ProductID is optional; when set
// the product must exist and its name is used if Name is empty.
type PurchaseItemInput struct {
	ProductID  string
	Name       string
	Quantity   int
	Rate       decimal.Decimal
	GSTPercent decimal.Decimal
}

// CreatePurchaseInput represents the create purchase input
type CreatePurchaseInput struct {
	SupplierName   string
	SupplierGSTIN  string
	SupplierMobile string
	InvoiceNo      string
	Date           *time.Time
	Paid           decimal.Decimal
	Items          []PurchaseItemInput
}

// CreatePurchase records a supplier invoice; totals, balance and status are derived
func (s *PurchaseService) CreatePurchase(ctx context.Context, input *CreatePurchaseInput) (*entity.Purchase, error) {
	if strings.TrimSpace(input.SupplierName) == "" {
		return nil, apperror.NewBadRequestError("Supplier name is required")
	}
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("A purchase needs at least one item")
	}
	gstin := utils.NormalizeGSTIN(input.SupplierGSTIN)
	if gstin != "" && !utils.IsValidGSTIN(gstin) {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "supplier_gstin", Message: "is not a valid GSTIN"}})
	}
	if input.Paid.IsNegative() {
		return nil, apperror.NewBadRequestError("Paid amount must not be negative")
	}

	// Batch fetch all referenced products in one query
	var productIDs []string
	for _, item := range input.Items {
		if item.ProductID != "" {
			productIDs = append(productIDs, item.ProductID)
		}
	}
	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	productMap := make(map[string]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	items := make([]entity.PurchaseItem, 0, len(input.Items))
	for i, item := range input.Items {
		name := strings.TrimSpace(item.Name)
		if item.ProductID != "" {
			p, ok := productMap[item.ProductID]
			if !ok {
				return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", item.ProductID))
			}
			if name == "" {
				name = p.Name
			}
		}
		if name == "" {
			return nil, apperror.NewBadRequestError(fmt.Sprintf("Item %d needs a name or product", i+1))
		}
		if item.Quantity < 1 || item.Rate.IsNegative() || item.GSTPercent.IsNegative() {
			return nil, apperror.NewBadRequestError(fmt.Sprintf("Item %d has an invalid quantity, rate or GST", i+1))
		}
		items = append(items, entity.PurchaseItem{
			ProductID:  item.ProductID,
			Name:       name,
			Quantity:   item.Quantity,
			Rate:       item.Rate,
			GSTPercent: item.GSTPercent,
		})
	}

	date := s.now()
	if input.Date != nil {
		date = *input.Date
	}

	count, err := s.purchaseRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	purchase := &entity.Purchase{
		PurchaseNo:     fmt.Sprintf("PUR-%d-%04d", date.Year(), count+1),
		SupplierName:   strings.TrimSpace(input.SupplierName),
		SupplierGSTIN:  gstin,
		SupplierMobile: strings.TrimSpace(input.SupplierMobile),
		InvoiceNo:      strings.TrimSpace(input.InvoiceNo),
		Date:           date,
		Items:          items,
		Paid:           input.Paid,
	}
	purchase.Recalculate()
	if purchase.Paid.GreaterThan(purchase.Total) {
		return nil, apperror.ErrOverpayment
	}

	if err := s.purchaseRepo.Create(ctx, purchase); err != nil {
		return nil, err
	}
	return purchase, nil
}

// GetPurchase retrieves a purchase by ID
func (s *PurchaseService) GetPurchase(ctx context.Context, id string) (*entity.Purchase, error) {
	purchase, err := s.purchaseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, apperror.NewNotFoundError("Purchase")
	}
	return purchase, nil
}

// ListPurchases lists purchases with filtering
func (s *PurchaseService) ListPurchases(ctx context.Context, params *repository.PurchaseFilterParams) (*pagination.Result[entity.Purchase], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.Default()
	}
	purchases, total, err := s.purchaseRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewResult(purchases, params.Pagination, total), nil
}

// PayPurchase records a payment against the outstanding balance
func (s *PurchaseService) PayPurchase(ctx context.Context, id string, amount decimal.Decimal) (*entity.Purchase, error) {
	purchase, err := s.GetPurchase(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := purchase.ApplyPayment(amount); err != nil {
		return nil, err
	}
	if err := s.purchaseRepo.UpdatePayment(ctx, purchase); err != nil {
		return nil, err
	}
	return purchase, nil
}

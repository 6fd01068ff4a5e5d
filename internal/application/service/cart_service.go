package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/sangkips/billing-api/internal/domain/entity"
	"github.com/sangkips/billing-api/internal/domain/repository"
	"github.com/sangkips/billing-api/pkg/apperror"
	"github.com/sangkips/billing-api/pkg/metrics"
	"github.com/shopspring/decimal"
)

// BillPrinter prints a finalized bill
type BillPrinter interface {
	PrintBill(ctx context.Context, bill *entity.Bill) error
}

// CartService owns the single open cart. Every method holds the cart lock for its whole
// duration, so each operation is atomic with respect to the others.
type CartService struct {
	mu   sync.Mutex
	cart *entity.Cart

	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	billRepo     repository.BillRepository
	settings     *CustomizationService
	numbers      *BillNumberer
	printer      BillPrinter
	metrics      *metrics.Metrics
	logger       *slog.Logger
	now          func() time.Time
}

// NewCartService creates a cart service with an empty cart
func NewCartService(
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	billRepo repository.BillRepository,
	settings *CustomizationService,
	numbers *BillNumberer,
	m *metrics.Metrics,
	logger *slog.Logger,
) *CartService {
	return &CartService{
		cart:         entity.NewCart(),
		productRepo:  productRepo,
		customerRepo: customerRepo,
		billRepo:     billRepo,
		settings:     settings,
		numbers:      numbers,
		metrics:      m,
		logger:       logger,
		now:          time.Now,
	}
}

// SetPrinter enables printing after a sale when the billing settings ask for it
func (s *CartService) SetPrinter(p BillPrinter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.printer = p
}

// CartView is a snapshot of the cart with its totals
type CartView struct {
	State    entity.CartState  `json:"state"`
	Lines    []entity.CartLine `json:"lines"`
	Customer *entity.Customer  `json:"customer"`
	Discount decimal.Decimal   `json:"discount"`
	Totals   entity.Totals     `json:"totals"`
}

// GetCart returns the current cart
func (s *CartService) GetCart(ctx context.Context) (*CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view(ctx)
}

// AddItem adds quantity units of a product. The product must exist and be active.
func (s *CartService) AddItem(ctx context.Context, productID string, quantity int) (*CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity < 1 {
		return nil, apperror.ErrInvalidQuantity
	}
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	if err := s.cart.Add(product, quantity); err != nil {
		return nil, err
	}

	s.metrics.CartOperation("add")
	return s.view(ctx)
}

// AddByBarcode adds quantity units of the product carrying barcode
func (s *CartService) AddByBarcode(ctx context.Context, barcode string, quantity int) (*CartView, error) {
	product, err := s.productRepo.GetByBarcode(ctx, strings.TrimSpace(barcode))
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return s.AddItem(ctx, product.ID, quantity)
}

// UpdateQuantity sets a line's quantity. Zero or less removes the line, and is a no-op
// when the product is not in the cart.
func (s *CartService) UpdateQuantity(ctx context.Context, productID string, quantity int) (*CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.cart.Remove(productID)
		s.metrics.CartOperation("remove")
		return s.view(ctx)
	}
	if !s.cart.UpdateQuantity(productID, quantity) {
		return nil, apperror.NewNotFoundError("Cart item")
	}
	s.metrics.CartOperation("update")
	return s.view(ctx)
}

// SetLineDiscount sets an absolute discount on one line
func (s *CartService) SetLineDiscount(ctx context.Context, productID string, amount decimal.Decimal) (*CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.cart.SetLineDiscount(productID, amount) {
		return nil, apperror.NewNotFoundError("Cart item")
	}
	s.metrics.CartOperation("line_discount")
	return s.view(ctx)
}

// RemoveItem drops a line. Removing a product that is not in the cart is not an error.
func (s *CartService) RemoveItem(ctx context.Context, productID string) (*CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Remove(productID)
	s.metrics.CartOperation("remove")
	return s.view(ctx)
}

// Clear empties the cart and its discount but keeps the selected customer
func (s *CartService) Clear(ctx context.Context) (*CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Clear()
	s.metrics.CartOperation("clear")
	return s.view(ctx)
}

// ApplyDiscount replaces the bill discount with value. Anything that is not a
// non-negative number becomes zero.
func (s *CartService) ApplyDiscount(ctx context.Context, value string) (*CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.SetDiscount(ParseDiscount(value))
	s.metrics.CartOperation("discount")
	return s.view(ctx)
}

// ParseDiscount reads a user-typed discount; invalid or negative input is zero
func ParseDiscount(value string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// SelectCustomer attaches a customer to the cart; nil selects walk-in
func (s *CartService) SelectCustomer(ctx context.Context, customerID *string) (*CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if customerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *customerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
	}
	s.cart.SelectCustomer(customerID)
	s.metrics.CartOperation("customer")
	return s.view(ctx)
}

// CompleteSaleInput is the checkout request
type CompleteSaleInput struct {
	PaymentMode string
	StaffID     string
}

// CompleteSale freezes the cart into a paid bill, stores it and resets the cart to an
// empty walk-in cart. Nothing changes when any step fails.
func (s *CartService) CompleteSale(ctx context.Context, input *CompleteSaleInput) (*entity.Bill, error) {
	bill, printer, err := s.completeSale(ctx, input)
	if err != nil {
		return nil, err
	}

	s.metrics.BillCompleted(bill.PaymentMode, bill.Total.InexactFloat64())
	s.logger.Info("sale completed",
		"bill_number", bill.BillNumber,
		"total", bill.Total.String(),
		"payment_mode", bill.PaymentMode,
		"items", len(bill.Items))

	if printer != nil && s.settings.Billing().PrintAfterSale {
		if err := printer.PrintBill(ctx, bill); err != nil {
			s.logger.Warn("print after sale failed", "bill_number", bill.BillNumber, "error", err)
		}
	}
	return bill, nil
}

func (s *CartService) completeSale(ctx context.Context, input *CompleteSaleInput) (*entity.Bill, BillPrinter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cart.Len() == 0 {
		return nil, nil, apperror.ErrEmptyCart
	}

	mode, err := s.settings.ResolvePaymentMode(input.PaymentMode)
	if err != nil {
		return nil, nil, err
	}

	var customer *entity.Customer
	if id := s.cart.CustomerID(); id != nil {
		customer, err = s.customerRepo.GetByID(ctx, *id)
		if err != nil {
			return nil, nil, err
		}
		if customer == nil {
			return nil, nil, apperror.NewNotFoundError("Customer")
		}
	}

	now := s.now()
	number, err := s.numbers.Next(ctx, now)
	if err != nil {
		return nil, nil, err
	}

	lines := s.cart.Lines()
	bill := entity.NewPaidBill(entity.BillDraft{
		BillNumber:  number,
		Date:        now,
		Customer:    customer,
		Lines:       lines,
		Totals:      entity.ComputeTotalsWithPolicy(lines, s.cart.Discount(), s.settings.TotalsPolicy()),
		PaymentMode: mode.Name,
		CreatedBy:   input.StaffID,
	})
	if err := s.billRepo.Create(ctx, bill); err != nil {
		return nil, nil, err
	}

	s.cart.Clear()
	s.cart.SelectCustomer(nil)
	return bill, s.printer, nil
}

func (s *CartService) view(ctx context.Context) (*CartView, error) {
	v := &CartView{
		State:    s.cart.State(),
		Lines:    s.cart.Lines(),
		Discount: s.cart.Discount(),
		Totals:   s.cart.Totals(s.settings.TotalsPolicy()),
	}
	if id := s.cart.CustomerID(); id != nil {
		customer, err := s.customerRepo.GetByID(ctx, *id)
		if err != nil {
			return nil, err
		}
		v.Customer = customer
	}
	return v, nil
}

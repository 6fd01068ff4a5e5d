package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sangkips/billing-api/internal/domain/entity"
	"github.com/sangkips/billing-api/internal/domain/repository"
	"github.com/sangkips/billing-api/pkg/apperror"
	"github.com/sangkips/billing-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// ProductService handles product-related operations
type ProductService struct {
	productRepo repository.ProductRepository
	settings    *CustomizationService
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository, settings *CustomizationService) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		settings:    settings,
	}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	Name              string
	NameTamil         string
	Category          string
	Price             decimal.Decimal
	MRP               decimal.Decimal
	GSTPercent        decimal.Decimal
	HSNCode           string
	Stock             int
	Unit              string
	Barcode           string
	LowStockThreshold int
	IsActive          *bool
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	product := &entity.Product{
		Name:              strings.TrimSpace(input.Name),
		NameTamil:         input.NameTamil,
		Price:             input.Price,
		MRP:               input.MRP,
		GSTPercent:        input.GSTPercent,
		HSNCode:           input.HSNCode,
		Stock:             input.Stock,
		Barcode:           strings.TrimSpace(input.Barcode),
		LowStockThreshold: input.LowStockThreshold,
		IsActive:          input.IsActive == nil || *input.IsActive,
	}
	if product.LowStockThreshold == 0 {
		product.LowStockThreshold = s.settings.Notifications().LowStockThreshold
	}

	if err := s.applyCategoryAndUnit(product, input.Category, input.Unit); err != nil {
		return nil, err
	}
	if err := s.checkPricing(product); err != nil {
		return nil, err
	}
	if err := s.checkBarcode(ctx, product); err != nil {
		return nil, err
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// GetProductByBarcode retrieves a product by its barcode
func (s *ProductService) GetProductByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	product, err := s.productRepo.GetByBarcode(ctx, strings.TrimSpace(barcode))
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists products with filtering
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.Result[entity.Product], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.Default()
	}
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewResult(products, params.Pagination, total), nil
}

// UpdateProductInput represents the update product input. Nil fields are left unchanged.
type UpdateProductInput struct {
	ID                string
	Name              *string
	NameTamil         *string
	Category          *string
	Price             *decimal.Decimal
	MRP               *decimal.Decimal
	GSTPercent        *decimal.Decimal
	HSNCode           *string
	Stock             *int
	Unit              *string
	Barcode           *string
	LowStockThreshold *int
	IsActive          *bool
}

// UpdateProduct updates a product. Lines already in the cart keep their snapshot.
func (s *ProductService) UpdateProduct(ctx context.Context, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.GetProduct(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.NameTamil != nil {
		product.NameTamil = *input.NameTamil
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.MRP != nil {
		product.MRP = *input.MRP
	}
	if input.GSTPercent != nil {
		product.GSTPercent = *input.GSTPercent
	}
	if input.HSNCode != nil {
		product.HSNCode = *input.HSNCode
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.LowStockThreshold != nil {
		product.LowStockThreshold = *input.LowStockThreshold
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	category, unit := product.Category, product.Unit
	if input.Category != nil {
		category = *input.Category
	}
	if input.Unit != nil {
		unit = *input.Unit
	}
	if input.Category != nil || input.Unit != nil {
		if err := s.applyCategoryAndUnit(product, category, unit); err != nil {
			return nil, err
		}
	}
	if err := s.checkPricing(product); err != nil {
		return nil, err
	}
	if input.Barcode != nil && strings.TrimSpace(*input.Barcode) != product.Barcode {
		product.Barcode = strings.TrimSpace(*input.Barcode)
		if err := s.checkBarcode(ctx, product); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct deletes a product. Bills keep their own copy of the product details.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}

// ImportProductRow represents a single row from the import file
type ImportProductRow struct {
	Name              string
	Category          string
	Price             decimal.Decimal
	MRP               decimal.Decimal
	GSTPercent        decimal.Decimal
	HSNCode           string
	Stock             int
	Unit              string
	Barcode           string
	LowStockThreshold int
}

// ImportResult contains the result of a product import operation
type ImportResult struct {
	TotalRows  int              `json:"total_rows"`
	Successful int              `json:"successful"`
	Failed     int              `json:"failed"`
	Errors     []ImportRowError `json:"errors,omitempty"`
}

// ImportRowError describes an error for a specific row during import
type ImportRowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// ImportProducts validates each row like CreateProduct and creates the valid ones.
// Row numbers in errors are sheet rows, the header being row 1.
func (s *ProductService) ImportProducts(ctx context.Context, rows []ImportProductRow) (*ImportResult, error) {
	result := &ImportResult{TotalRows: len(rows)}
	seenBarcodes := make(map[string]int)

	for i, row := range rows {
		rowNum := i + 2

		if strings.TrimSpace(row.Name) == "" {
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Field: "name", Message: "Name is required"})
			continue
		}
		if row.Barcode != "" {
			if prev, dup := seenBarcodes[row.Barcode]; dup {
				result.Errors = append(result.Errors, ImportRowError{
					Row:     rowNum,
					Field:   "barcode",
					Message: fmt.Sprintf("Duplicate barcode '%s' (same as row %d)", row.Barcode, prev),
				})
				continue
			}
			seenBarcodes[row.Barcode] = rowNum
		}

		_, err := s.CreateProduct(ctx, &CreateProductInput{
			Name:              row.Name,
			Category:          row.Category,
			Price:             row.Price,
			MRP:               row.MRP,
			GSTPercent:        row.GSTPercent,
			HSNCode:           row.HSNCode,
			Stock:             row.Stock,
			Unit:              row.Unit,
			Barcode:           row.Barcode,
			LowStockThreshold: row.LowStockThreshold,
		})
		if err != nil {
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Message: apperror.GetAppError(err).Message})
			continue
		}
		result.Successful++
	}

	result.Failed = len(result.Errors)
	return result, nil
}

// applyCategoryAndUnit resolves category and unit against the enabled customization lists
// and stores their display names on the product
func (s *ProductService) applyCategoryAndUnit(product *entity.Product, category, unit string) error {
	c, ok := findCategory(s.settings.EnabledProductCategories(), category)
	if !ok {
		return apperror.NewValidationError([]apperror.FieldError{
			{Field: "category", Message: fmt.Sprintf("'%s' is not an enabled product category", category)},
		})
	}
	product.Category = c.Name

	if strings.TrimSpace(unit) == "" {
		unit = "pcs"
	}
	for _, u := range s.settings.EnabledUnits() {
		if strings.EqualFold(u.ID, unit) || strings.EqualFold(u.Symbol, unit) || strings.EqualFold(u.Name, unit) {
			product.Unit = u.Symbol
			return nil
		}
	}
	return apperror.NewValidationError([]apperror.FieldError{
		{Field: "unit", Message: fmt.Sprintf("'%s' is not an enabled unit", unit)},
	})
}

func (s *ProductService) checkPricing(product *entity.Product) error {
	var fields []apperror.FieldError
	if product.Name == "" {
		fields = append(fields, apperror.FieldError{Field: "name", Message: "is required"})
	}
	if product.Price.IsNegative() {
		fields = append(fields, apperror.FieldError{Field: "price", Message: "must not be negative"})
	}
	if product.MRP.IsNegative() {
		fields = append(fields, apperror.FieldError{Field: "mrp", Message: "must not be negative"})
	}
	if product.Stock < 0 && !s.settings.Billing().EnableNegativeStock {
		fields = append(fields, apperror.FieldError{Field: "stock", Message: "must not be negative"})
	}

	allowed := false
	for _, rate := range s.settings.GSTRates() {
		if product.GSTPercent.Equal(decimal.NewFromInt(int64(rate))) {
			allowed = true
			break
		}
	}
	if !allowed {
		fields = append(fields, apperror.FieldError{
			Field:   "gst_percent",
			Message: fmt.Sprintf("must be one of the configured GST rates %v", s.settings.GSTRates()),
		})
	}

	if len(fields) > 0 {
		return apperror.NewValidationError(fields)
	}
	return nil
}

func (s *ProductService) checkBarcode(ctx context.Context, product *entity.Product) error {
	if product.Barcode == "" {
		return nil
	}
	existing, err := s.productRepo.GetByBarcode(ctx, product.Barcode)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != product.ID {
		return apperror.NewConflictError("Barcode already assigned to " + existing.Name)
	}
	return nil
}

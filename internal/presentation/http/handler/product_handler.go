package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/billing-api/internal/application/service"
	"github.com/sangkips/billing-api/internal/domain/repository"
	"github.com/sangkips/billing-api/internal/presentation/http/dto/request"
	"github.com/sangkips/billing-api/internal/presentation/http/dto/response"
)

const maxImportSize = 5 << 20

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List handles listing products
func (h *ProductHandler) List(c *gin.Context) {
	var filter request.ProductFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	result, err := h.productService.ListProducts(c.Request.Context(), &repository.ProductFilterParams{
		Pagination: pageParams(filter.Page, filter.PerPage),
		Search:     filter.Search,
		Category:   filter.Category,
		ActiveOnly: filter.ActiveOnly,
		LowStock:   filter.LowStock,
		SortBy:     filter.SortBy,
		SortOrder:  filter.SortOrder,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, "Products retrieved successfully", result)
}

// Create handles product creation
func (h *ProductHandler) Create(c *gin.Context) {
	var req request.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), &service.CreateProductInput{
		Name:              req.Name,
		NameTamil:         req.NameTamil,
		Category:          req.Category,
		Price:             req.Price,
		MRP:               req.MRP,
		GSTPercent:        req.GSTPercent,
		HSNCode:           req.HSNCode,
		Stock:             req.Stock,
		Unit:              req.Unit,
		Barcode:           req.Barcode,
		LowStockThreshold: req.LowStockThreshold,
		IsActive:          req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Product created successfully", product)
}

// Get handles getting a single product
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.productService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Product retrieved successfully", product)
}

// GetByBarcode looks a product up by scanned barcode
func (h *ProductHandler) GetByBarcode(c *gin.Context) {
	product, err := h.productService.GetProductByBarcode(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Product retrieved successfully", product)
}

// Update handles product updates
func (h *ProductHandler) Update(c *gin.Context) {
	var req request.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), &service.UpdateProductInput{
		ID:                c.Param("id"),
		Name:              req.Name,
		NameTamil:         req.NameTamil,
		Category:          req.Category,
		Price:             req.Price,
		MRP:               req.MRP,
		GSTPercent:        req.GSTPercent,
		HSNCode:           req.HSNCode,
		Stock:             req.Stock,
		Unit:              req.Unit,
		Barcode:           req.Barcode,
		LowStockThreshold: req.LowStockThreshold,
		IsActive:          req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Product updated successfully", product)
}

// Delete handles product deletion
func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.productService.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Import creates products from an uploaded XLSX sheet (form field "file")
func (h *ProductHandler) Import(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportSize)
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "A spreadsheet must be uploaded in the 'file' field")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "Failed to read upload: "+err.Error())
		return
	}
	defer file.Close()

	rows, err := service.ParseProductSheet(file)
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.productService.ImportProducts(c.Request.Context(), rows)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Products imported", result)
}

// ImportTemplate describes the expected spreadsheet columns
func (h *ProductHandler) ImportTemplate(c *gin.Context) {
	response.OK(c, "Import columns", gin.H{"columns": service.ProductSheetColumns})
}

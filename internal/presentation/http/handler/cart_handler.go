package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/billing-api/internal/application/service"
	"github.com/sangkips/billing-api/internal/presentation/http/dto/request"
	"github.com/sangkips/billing-api/internal/presentation/http/dto/response"
)

// CartHandler exposes the counter cart
type CartHandler struct {
	cartService *service.CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// Get returns the cart with its totals
func (h *CartHandler) Get(c *gin.Context) {
	view, err := h.cartService.GetCart(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Cart retrieved successfully", view)
}

// AddItem adds a product by id or barcode; quantity defaults to 1
func (h *CartHandler) AddItem(c *gin.Context) {
	var req request.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	var (
		view *service.CartView
		err  error
	)
	if req.ProductID != "" {
		view, err = h.cartService.AddItem(c.Request.Context(), req.ProductID, req.Quantity)
	} else {
		view, err = h.cartService.AddByBarcode(c.Request.Context(), req.Barcode, req.Quantity)
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item added to cart", view)
}

// UpdateQuantity sets the quantity of a line; zero removes it
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	var req request.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	view, err := h.cartService.UpdateQuantity(c.Request.Context(), c.Param("product_id"), *req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Cart updated", view)
}

// SetLineDiscount sets a flat discount on one line
func (h *CartHandler) SetLineDiscount(c *gin.Context) {
	var req request.LineDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	view, err := h.cartService.SetLineDiscount(c.Request.Context(), c.Param("product_id"), req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Line discount updated", view)
}

// RemoveItem drops a line; removing an absent product is a no-op
func (h *CartHandler) RemoveItem(c *gin.Context) {
	view, err := h.cartService.RemoveItem(c.Request.Context(), c.Param("product_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item removed from cart", view)
}

// Clear empties the cart and resets the discount; the selected customer stays
func (h *CartHandler) Clear(c *gin.Context) {
	view, err := h.cartService.Clear(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Cart cleared", view)
}

// ApplyDiscount sets the bill-level discount from free-text input
func (h *CartHandler) ApplyDiscount(c *gin.Context) {
	var req request.CartDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	view, err := h.cartService.ApplyDiscount(c.Request.Context(), req.Value)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Discount applied", view)
}

// SelectCustomer sets or clears the bill-to customer
func (h *CartHandler) SelectCustomer(c *gin.Context) {
	var req request.SelectCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	view, err := h.cartService.SelectCustomer(c.Request.Context(), req.CustomerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Customer updated", view)
}

// Checkout finalizes the cart into a paid bill
func (h *CartHandler) Checkout(c *gin.Context) {
	var req request.CheckoutRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid request body: "+err.Error())
			return
		}
	}

	bill, err := h.cartService.CompleteSale(c.Request.Context(), &service.CompleteSaleInput{
		PaymentMode: req.PaymentMode,
		StaffID:     GetStaffID(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Sale completed", bill)
}

package request

import "github.com/shopspring/decimal"

// AddCartItemRequest adds a product by id or barcode
type AddCartItemRequest struct {
	ProductID string `json:"product_id" binding:"required_without=Barcode"`
	Barcode   string `json:"barcode" binding:"required_without=ProductID"`
	Quantity  int    `json:"quantity"`
}

// UpdateCartItemRequest sets a line quantity; zero or less removes the line
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// LineDiscountRequest sets a line's flat discount
type LineDiscountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// CartDiscountRequest takes free-text input; unparsable or negative values become 0
type CartDiscountRequest struct {
	Value string `json:"value"`
}

// SelectCustomerRequest picks the bill-to customer; null selects walk-in
type SelectCustomerRequest struct {
	CustomerID *string `json:"customer_id"`
}

// CheckoutRequest completes the sale
type CheckoutRequest struct {
	PaymentMode string `json:"payment_mode"`
}

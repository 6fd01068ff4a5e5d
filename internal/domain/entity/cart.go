package entity

import (
	"github.com/sangkips/billing-api/pkg/apperror"
	"github.com/sangkips/billing-api/pkg/money"
	"github.com/shopspring/decimal"
)

// CartState is the lifecycle position of the active cart
type CartState string

const (
	CartStateEmpty    CartState = "empty"
	CartStateBuilding CartState = "building"
)

// CartLine is one product in the cart. Name, price and GST are snapshots taken when the
// product was first added and do not follow later catalog edits.
type CartLine struct {
	ProductID  string          `json:"product_id"`
	Name       string          `json:"name"`
	HSNCode    string          `json:"hsn_code,omitempty"`
	Unit       string          `json:"unit,omitempty"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	GSTPercent decimal.Decimal `json:"gst_percent"`
	Discount   decimal.Decimal `json:"discount"`
	Total      decimal.Decimal `json:"total"`
}

// Taxable is price x quantity before GST and discount
func (l CartLine) Taxable() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// GST is the full GST amount on the line, taxable x gst / 100
func (l CartLine) GST() decimal.Decimal {
	return money.Percent(l.Taxable(), l.GSTPercent)
}

// RecomputeLine returns l with Total = quantity x price x (1 + gst/100) - discount.
// Every path that changes a line goes through here.
func RecomputeLine(l CartLine) CartLine {
	l.Total = l.Taxable().Add(l.GST()).Sub(l.Discount)
	return l
}

// Cart is the single open sale. It is a plain value with no locking; callers serialize access.
type Cart struct {
	lines      []CartLine
	customerID *string
	discount   decimal.Decimal
}

// NewCart returns an empty cart for a walk-in customer
func NewCart() *Cart {
	return &Cart{}
}

// Add puts quantity units of p into the cart. An existing line keeps its snapshot and only
// its quantity grows.
func (c *Cart) Add(p *Product, quantity int) error {
	if !p.IsActive {
		return apperror.ErrProductInactive
	}
	if quantity < 1 {
		return apperror.ErrInvalidQuantity
	}

	if i := c.indexOf(p.ID); i >= 0 {
		line := c.lines[i]
		line.Quantity += quantity
		c.lines[i] = RecomputeLine(line)
		return nil
	}

	c.lines = append(c.lines, RecomputeLine(CartLine{
		ProductID:  p.ID,
		Name:       p.Name,
		HSNCode:    p.HSNCode,
		Unit:       p.Unit,
		Quantity:   quantity,
		Price:      p.Price,
		GSTPercent: p.GSTPercent,
	}))
	return nil
}

// UpdateQuantity sets a line's quantity. A quantity of zero or less removes the line.
// It returns false when the product is not in the cart.
func (c *Cart) UpdateQuantity(productID string, quantity int) bool {
	i := c.indexOf(productID)
	if i < 0 {
		return false
	}
	if quantity <= 0 {
		c.removeAt(i)
		return true
	}
	line := c.lines[i]
	line.Quantity = quantity
	c.lines[i] = RecomputeLine(line)
	return true
}

// SetLineDiscount sets an absolute discount on one line; negative amounts become zero
func (c *Cart) SetLineDiscount(productID string, amount decimal.Decimal) bool {
	i := c.indexOf(productID)
	if i < 0 {
		return false
	}
	if amount.IsNegative() {
		amount = decimal.Zero
	}
	line := c.lines[i]
	line.Discount = amount
	c.lines[i] = RecomputeLine(line)
	return true
}

// Remove deletes the line for productID if present
func (c *Cart) Remove(productID string) {
	if i := c.indexOf(productID); i >= 0 {
		c.removeAt(i)
	}
}

// Clear empties the cart and resets the bill discount. The selected customer stays.
func (c *Cart) Clear() {
	c.lines = nil
	c.discount = decimal.Zero
}

// SetDiscount replaces the bill-level discount; negative amounts become zero
func (c *Cart) SetDiscount(amount decimal.Decimal) {
	if amount.IsNegative() {
		amount = decimal.Zero
	}
	c.discount = amount
}

func (c *Cart) Discount() decimal.Decimal {
	return c.discount
}

// SelectCustomer attaches a customer; nil means walk-in
func (c *Cart) SelectCustomer(customerID *string) {
	if customerID == nil {
		c.customerID = nil
		return
	}
	id := *customerID
	c.customerID = &id
}

// CustomerID returns a copy of the selected customer id, or nil for walk-in
func (c *Cart) CustomerID() *string {
	if c.customerID == nil {
		return nil
	}
	id := *c.customerID
	return &id
}

// Lines returns a copy of the lines in insertion order
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Line returns the line for productID
func (c *Cart) Line(productID string) (CartLine, bool) {
	if i := c.indexOf(productID); i >= 0 {
		return c.lines[i], true
	}
	return CartLine{}, false
}

func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) State() CartState {
	if len(c.lines) == 0 {
		return CartStateEmpty
	}
	return CartStateBuilding
}

// Totals computes the cart totals under policy
func (c *Cart) Totals(policy TotalsPolicy) Totals {
	return ComputeTotalsWithPolicy(c.lines, c.discount, policy)
}

func (c *Cart) indexOf(productID string) int {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) removeAt(i int) {
	c.lines = append(c.lines[:i:i], c.lines[i+1:]...)
}

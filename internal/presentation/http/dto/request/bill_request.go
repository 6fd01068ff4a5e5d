package request

// BillFilterRequest represents bill filter parameters. Dates are YYYY-MM-DD and inclusive.
type BillFilterRequest struct {
	Search     string `form:"search"`
	Status     string `form:"status" binding:"omitempty,oneof=paid pending partial"`
	CustomerID string `form:"customer_id"`
	From       string `form:"from"`
	To         string `form:"to"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}

// DateRangeRequest is a from/to pair of YYYY-MM-DD dates
type DateRangeRequest struct {
	From string `form:"from"`
	To   string `form:"to"`
}

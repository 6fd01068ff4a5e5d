package repository

import (
	"context"
	"time"
)

// TopProductResult is a product's sales over a period
type TopProductResult struct {
	ProductID    string
	ProductName  string
	QuantitySold int
	Revenue      float64
}

// DailySalesResult is the sales of one calendar day
type DailySalesResult struct {
	Day       string
	BillCount int
	Revenue   float64
}

// AnalyticsRepository runs aggregate queries over bills
type AnalyticsRepository interface {
	// GetTopProducts ranks products by revenue for bills dated in [from, to)
	GetTopProducts(ctx context.Context, from, to time.Time, limit int) ([]TopProductResult, error)
	// GetDailySales groups bill totals by day for bills dated in [from, to)
	GetDailySales(ctx context.Context, from, to time.Time) ([]DailySalesResult, error)
}

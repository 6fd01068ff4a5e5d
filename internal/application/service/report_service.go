package service

import (
	"context"
	"sort"
	"time"

	"github.com/sangkips/billing-api/internal/domain/entity"
	"github.com/sangkips/billing-api/internal/domain/enum"
	"github.com/sangkips/billing-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	dashboardTopProducts = 5
	dashboardChartDays   = 7
)

var allTimeStart = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// ReportService provides the dashboard and stock report
type ReportService struct {
	billRepo      repository.BillRepository
	expenseRepo   repository.ExpenseRepository
	productRepo   repository.ProductRepository
	analyticsRepo repository.AnalyticsRepository
	settings      *CustomizationService
	now           func() time.Time
}

// NewReportService creates a new report service
func NewReportService(
	billRepo repository.BillRepository,
	expenseRepo repository.ExpenseRepository,
	productRepo repository.ProductRepository,
	analyticsRepo repository.AnalyticsRepository,
	settings *CustomizationService,
) *ReportService {
	return &ReportService{
		billRepo:      billRepo,
		expenseRepo:   expenseRepo,
		productRepo:   productRepo,
		analyticsRepo: analyticsRepo,
		settings:      settings,
		now:           time.Now,
	}
}

// DashboardStats is the home screen summary
type DashboardStats struct {
	TotalSales    decimal.Decimal   `json:"total_sales"`
	TodaySales    decimal.Decimal   `json:"today_sales"`
	MonthSales    decimal.Decimal   `json:"month_sales"`
	TotalBills    int               `json:"total_bills"`
	TodayBills    int               `json:"today_bills"`
	PaidBills     int               `json:"paid_bills"`
	PendingAmount decimal.Decimal   `json:"pending_amount"`
	TotalGST      decimal.Decimal   `json:"total_gst"`
	TotalExpenses decimal.Decimal   `json:"total_expenses"`
	NetAmount     decimal.Decimal   `json:"net_amount"`
	LowStockCount *int              `json:"low_stock_count,omitempty"`
	TopProducts   []TopProduct      `json:"top_products"`
	DailySales    []DailySalesPoint `json:"daily_sales"`

	// Layout is the widget selection from the dashboard settings section
	Layout entity.DashboardSettings `json:"layout"`
}

// TopProduct is one row of the best sellers list
type TopProduct struct {
	ProductID    string          `json:"product_id"`
	Name         string          `json:"name"`
	QuantitySold int             `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// DailySalesPoint is one day of the sales chart
type DailySalesPoint struct {
	Date      string          `json:"date"`
	BillCount int             `json:"bill_count"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// GetDashboard computes the dashboard. The independent aggregates run concurrently.
func (s *ReportService) GetDashboard(ctx context.Context) (*DashboardStats, error) {
	now := s.now()
	end := startOfDay(now).AddDate(0, 0, 1)
	chartStart := startOfDay(now).AddDate(0, 0, -(dashboardChartDays - 1))

	var (
		bills    []entity.Bill
		expenses []entity.Expense
		products []entity.Product
		top      []repository.TopProductResult
		daily    []repository.DailySalesResult
	)
	lowStockEnabled := s.settings.Notifications().EnableLowStockAlert

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		bills, err = s.billRepo.ListBetween(gctx, allTimeStart, end)
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = s.expenseRepo.ListAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		top, err = s.analyticsRepo.GetTopProducts(gctx, allTimeStart, end, dashboardTopProducts)
		return err
	})
	g.Go(func() error {
		var err error
		daily, err = s.analyticsRepo.GetDailySales(gctx, chartStart, end)
		return err
	})
	if lowStockEnabled {
		g.Go(func() error {
			var err error
			products, err = s.productRepo.ListAll(gctx)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := summarizeBills(bills, now)
	for _, e := range expenses {
		stats.TotalExpenses = stats.TotalExpenses.Add(e.Amount)
	}
	stats.NetAmount = stats.TotalSales.Sub(stats.TotalExpenses)

	stats.TopProducts = make([]TopProduct, 0, len(top))
	for _, t := range top {
		stats.TopProducts = append(stats.TopProducts, TopProduct{
			ProductID:    t.ProductID,
			Name:         t.ProductName,
			QuantitySold: t.QuantitySold,
			Revenue:      decimal.NewFromFloat(t.Revenue).Round(2),
		})
	}
	stats.DailySales = fillDailySales(daily, chartStart, dashboardChartDays)
	stats.Layout = s.settings.Dashboard()

	if lowStockEnabled {
		threshold := s.settings.Notifications().LowStockThreshold
		count := 0
		for i := range products {
			if products[i].IsActive && products[i].IsLowStock(productThreshold(&products[i], threshold)) {
				count++
			}
		}
		stats.LowStockCount = &count
	}
	return stats, nil
}

func summarizeBills(bills []entity.Bill, now time.Time) *DashboardStats {
	todayStart := startOfDay(now)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	stats := &DashboardStats{TotalBills: len(bills)}
	for i := range bills {
		b := &bills[i]
		stats.TotalSales = stats.TotalSales.Add(b.Total)
		stats.TotalGST = stats.TotalGST.Add(b.TotalGST())
		if b.Status == enum.BillStatusPaid {
			stats.PaidBills++
		} else {
			stats.PendingAmount = stats.PendingAmount.Add(b.BalanceDue())
		}
		if !b.Date.Before(todayStart) {
			stats.TodaySales = stats.TodaySales.Add(b.Total)
			stats.TodayBills++
		}
		if !b.Date.Before(monthStart) {
			stats.MonthSales = stats.MonthSales.Add(b.Total)
		}
	}
	return stats
}

// fillDailySales returns one point per day from start, zero for days without bills
func fillDailySales(rows []repository.DailySalesResult, start time.Time, days int) []DailySalesPoint {
	byDay := make(map[string]repository.DailySalesResult, len(rows))
	for _, r := range rows {
		byDay[r.Day] = r
	}
	points := make([]DailySalesPoint, 0, days)
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i).Format("2006-01-02")
		r := byDay[day]
		points = append(points, DailySalesPoint{
			Date:      day,
			BillCount: r.BillCount,
			Revenue:   decimal.NewFromFloat(r.Revenue).Round(2),
		})
	}
	return points
}

// StockReport summarizes inventory
type StockReport struct {
	TotalProducts   int              `json:"total_products"`
	TotalUnits      int              `json:"total_units"`
	LowStockCount   int              `json:"low_stock_count"`
	OutOfStockCount int              `json:"out_of_stock_count"`
	HealthyCount    int              `json:"healthy_count"`
	TotalValue      decimal.Decimal  `json:"total_value"`
	ValueByCategory []CategoryAmount `json:"value_by_category"`
	LowStock        []entity.Product `json:"low_stock"`
	OutOfStock      []entity.Product `json:"out_of_stock"`
}

// GetStockReport classifies active products by stock level. A product's own threshold
// wins over the notification threshold when set.
func (s *ReportService) GetStockReport(ctx context.Context) (*StockReport, error) {
	products, err := s.productRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return buildStockReport(products, s.settings.Notifications().LowStockThreshold), nil
}

func buildStockReport(products []entity.Product, threshold int) *StockReport {
	report := &StockReport{
		ValueByCategory: []CategoryAmount{},
		LowStock:        []entity.Product{},
		OutOfStock:      []entity.Product{},
	}
	byCategory := make(map[string]*CategoryAmount)
	for i := range products {
		p := &products[i]
		if !p.IsActive {
			continue
		}
		report.TotalProducts++
		if p.Stock > 0 {
			report.TotalUnits += p.Stock
			report.TotalValue = report.TotalValue.Add(p.StockValue())
		}

		switch {
		case p.IsOutOfStock():
			report.OutOfStockCount++
			report.OutOfStock = append(report.OutOfStock, *p)
		case p.IsLowStock(productThreshold(p, threshold)):
			report.LowStockCount++
			report.LowStock = append(report.LowStock, *p)
		default:
			report.HealthyCount++
		}

		ca, ok := byCategory[p.Category]
		if !ok {
			ca = &CategoryAmount{Category: p.Category}
			byCategory[p.Category] = ca
		}
		ca.Count++
		if p.Stock > 0 {
			ca.Amount = ca.Amount.Add(p.StockValue())
		}
	}

	for _, ca := range byCategory {
		report.ValueByCategory = append(report.ValueByCategory, *ca)
	}
	sort.Slice(report.ValueByCategory, func(i, j int) bool {
		if c := report.ValueByCategory[i].Amount.Cmp(report.ValueByCategory[j].Amount); c != 0 {
			return c > 0
		}
		return report.ValueByCategory[i].Category < report.ValueByCategory[j].Category
	})
	sort.Slice(report.LowStock, func(i, j int) bool {
		return report.LowStock[i].Stock < report.LowStock[j].Stock
	})
	return report
}

func productThreshold(p *entity.Product, fallback int) int {
	if p.LowStockThreshold > 0 {
		return p.LowStockThreshold
	}
	return fallback
}

package repository

import (
	"context"
	"time"

	domainRepo "github.com/sangkips/billing-api/internal/domain/repository"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) GetTopProducts(ctx context.Context, from, to time.Time, limit int) ([]domainRepo.TopProductResult, error) {
	var results []domainRepo.TopProductResult

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			bi.product_id AS product_id,
			MAX(bi.name) AS product_name,
			COALESCE(SUM(bi.quantity), 0) AS quantity_sold,
			COALESCE(SUM(bi.total), 0) AS revenue
		FROM bill_items bi
		JOIN bills b ON b.id = bi.bill_id
		WHERE b.date >= ? AND b.date < ?
		GROUP BY bi.product_id
		ORDER BY revenue DESC, quantity_sold DESC
		LIMIT ?
	`, from, to, limit).Scan(&results).Error
	if err != nil {
		return nil, err
	}

	return results, nil
}

// GetDailySales groups on the stored date text so the calendar day is the one the bill
// was written in
func (r *analyticsRepository) GetDailySales(ctx context.Context, from, to time.Time) ([]domainRepo.DailySalesResult, error) {
	var results []domainRepo.DailySalesResult

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			substr(b.date, 1, 10) AS day,
			COUNT(b.id) AS bill_count,
			COALESCE(SUM(b.total), 0) AS revenue
		FROM bills b
		WHERE b.date >= ? AND b.date < ?
		GROUP BY substr(b.date, 1, 10)
		ORDER BY day ASC
	`, from, to).Scan(&results).Error
	if err != nil {
		return nil, err
	}

	return results, nil
}

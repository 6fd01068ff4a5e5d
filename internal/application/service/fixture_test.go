package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sangkips/billing-api/internal/config"
	domainRepo "github.com/sangkips/billing-api/internal/domain/repository"
	"github.com/sangkips/billing-api/internal/infrastructure/database"
	"github.com/sangkips/billing-api/internal/infrastructure/repository"
	"github.com/sangkips/billing-api/pkg/logger"
	"github.com/sangkips/billing-api/pkg/metrics"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fixture wires services over a freshly seeded in-memory store
type fixture struct {
	db        *gorm.DB
	products  domainRepo.ProductRepository
	customers domainRepo.CustomerRepository
	bills     domainRepo.BillRepository
	expenses  domainRepo.ExpenseRepository
	purchases domainRepo.PurchaseRepository
	staff     domainRepo.StaffRepository
	settings  *CustomizationService
	cart      *CartService
}

// saleTime is a fixed clock inside the seeded year
var saleTime = time.Date(2026, time.January, 12, 11, 30, 0, 0, time.Local)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.NewDB(&config.DatabaseConfig{
		DSN:     "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		MaxOpen: 1,
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	require.NoError(t, database.SeedDefaultData(db, "admin123"))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	f := &fixture{
		db:        db,
		products:  repository.NewProductRepository(db),
		customers: repository.NewCustomerRepository(db),
		bills:     repository.NewBillRepository(db),
		expenses:  repository.NewExpenseRepository(db),
		purchases: repository.NewPurchaseRepository(db),
		staff:     repository.NewStaffRepository(db),
	}
	f.settings, err = NewCustomizationService(context.Background(), repository.NewSettingsRepository(db), logger.Discard())
	require.NoError(t, err)

	f.cart = NewCartService(
		f.products,
		f.customers,
		f.bills,
		f.settings,
		NewBillNumberer("INV", f.bills),
		metrics.New(prometheus.NewRegistry()),
		logger.Discard(),
	)
	f.cart.now = func() time.Time { return saleTime }
	return f
}

package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sangkips/billing-api/internal/application/service"
	"github.com/sangkips/billing-api/internal/config"
	"github.com/sangkips/billing-api/internal/infrastructure/database"
	"github.com/sangkips/billing-api/internal/infrastructure/repository"
	"github.com/sangkips/billing-api/internal/presentation/http/handler"
	"github.com/sangkips/billing-api/internal/presentation/http/middleware"
	"github.com/sangkips/billing-api/pkg/logger"
	"github.com/sangkips/billing-api/pkg/metrics"
	"github.com/sangkips/billing-api/pkg/printer"
	"github.com/sangkips/billing-api/pkg/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// newTestRouter wires the whole API over a freshly seeded in-memory store
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		App:       config.AppConfig{Name: "billing-api", Env: "test"},
		Database:  config.DatabaseConfig{DSN: "file:" + uuid.NewString() + "?mode=memory&cache=shared", MaxOpen: 1},
		JWT:       config.JWTConfig{Secret: "routes-test-secret", ExpiryHours: time.Hour},
		RateLimit: config.RateLimitConfig{RequestsPerSecond: 1000, Burst: 1000},
		Billing:   config.BillingConfig{BillPrefix: "INV", SeedPassword: "admin123", IdempotencyTTL: time.Hour},
		Printer:   config.PrinterConfig{Type: "none", PaperWidth: 48},
	}

	db, err := database.NewDB(&cfg.Database)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	require.NoError(t, database.SeedDefaultData(db, cfg.Billing.SeedPassword))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	log := logger.Discard()
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)
	staffRepo := repository.NewStaffRepository(db)
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	billRepo := repository.NewBillRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	settingsService, err := service.NewCustomizationService(context.Background(), settingsRepo, log)
	require.NoError(t, err)
	profileService := service.NewProfileService(settingsRepo)
	billService := service.NewBillService(billRepo)
	registry := prometheus.NewRegistry()
	cartService := service.NewCartService(
		productRepo,
		customerRepo,
		billRepo,
		settingsService,
		service.NewBillNumberer(cfg.Billing.BillPrefix, billRepo),
		metrics.New(registry),
		log,
	)
	receiptPrinter, err := printer.New(printer.Options{Type: cfg.Printer.Type})
	require.NoError(t, err)
	printerService := service.NewPrinterService(receiptPrinter, billService, profileService, staffRepo, settingsService, cfg.Printer.PaperWidth, log)
	cartService.SetPrinter(printerService)

	handlers := &Handlers{
		Auth:     handler.NewAuthHandler(service.NewAuthService(staffRepo, jwtManager)),
		Cart:     handler.NewCartHandler(cartService),
		Bill:     handler.NewBillHandler(billService, printerService),
		Product:  handler.NewProductHandler(service.NewProductService(productRepo, settingsService)),
		Customer: handler.NewCustomerHandler(service.NewCustomerService(customerRepo)),
		Expense:  handler.NewExpenseHandler(service.NewExpenseService(expenseRepo, settingsService)),
		Purchase: handler.NewPurchaseHandler(service.NewPurchaseService(repository.NewPurchaseRepository(db), productRepo)),
		Report: handler.NewReportHandler(
			service.NewReportService(billRepo, expenseRepo, productRepo, repository.NewAnalyticsRepository(db), settingsService),
			service.NewGSTReportService(billRepo),
		),
		Settings: handler.NewSettingsHandler(settingsService),
		Profile:  handler.NewProfileHandler(profileService),
		Printer:  handler.NewPrinterHandler(printerService),
	}

	return Setup(handlers, &Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: repository.NewIdempotencyRepository(db),
		Logger:          log,
		MetricsHandler:  promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	})
}

func call(t *testing.T, r http.Handler, method, path, token string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data interface{}) {
	t.Helper()
	var resp apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(resp.Data, data))
	}
}

func login(t *testing.T, r http.Handler, email string) string {
	t.Helper()
	w := call(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": email, "password": "admin123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var out struct {
		AccessToken string `json:"access_token"`
	}
	decode(t, w, &out)
	require.NotEmpty(t, out.AccessToken)
	return out.AccessToken
}

func TestHealthAndAuth(t *testing.T) {
	r := newTestRouter(t)

	w := call(t, r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = call(t, r, http.MethodGet, "/api/v1/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = call(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": "rajesh@business.com", "password": "not-admin"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = call(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": "arun@business.com", "password": "admin123"})
	assert.Equal(t, http.StatusForbidden, w.Code, "inactive staff")

	w = call(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	token := login(t, r, "priya@business.com")
	w = call(t, r, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me struct {
		ID   string `json:"id"`
		Role string `json:"role"`
	}
	decode(t, w, &me)
	assert.Equal(t, "S002", me.ID)
}

func TestCheckoutFlow(t *testing.T) {
	r := newTestRouter(t)
	token := login(t, r, "ravi@business.com")

	w := call(t, r, http.MethodPost, "/api/v1/cart/items", token, gin.H{"product_id": "P001", "quantity": 2})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = call(t, r, http.MethodPost, "/api/v1/cart/items", token, gin.H{"barcode": "8901234567892"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = call(t, r, http.MethodGet, "/api/v1/cart", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var cart struct {
		State  string `json:"state"`
		Lines  []struct{ ProductID string `json:"product_id"` } `json:"lines"`
		Totals struct {
			Subtotal decimal.Decimal `json:"subtotal"`
			Total    decimal.Decimal `json:"total"`
		} `json:"totals"`
	}
	decode(t, w, &cart)
	assert.Equal(t, "building", cart.State)
	assert.Len(t, cart.Lines, 2)
	assert.True(t, decimal.NewFromInt(375).Equal(cart.Totals.Subtotal))
	assert.True(t, decimal.NewFromInt(394).Equal(cart.Totals.Total), cart.Totals.Total.String())

	w = call(t, r, http.MethodPost, "/api/v1/cart/checkout", token, gin.H{"payment_mode": "cheque"}, middleware.IdempotencyKeyHeader, "sale-1")
	assert.Equal(t, http.StatusBadRequest, w.Code, "cheque is disabled by default")

	first := call(t, r, http.MethodPost, "/api/v1/cart/checkout", token, gin.H{"payment_mode": "upi"}, middleware.IdempotencyKeyHeader, "sale-2")
	require.Equal(t, http.StatusCreated, first.Code, first.Body.String())
	var bill struct {
		BillNumber  string          `json:"bill_number"`
		PaymentMode string          `json:"payment_mode"`
		Total       decimal.Decimal `json:"total"`
	}
	decode(t, first, &bill)
	assert.True(t, strings.HasPrefix(bill.BillNumber, "INV-"))
	assert.Equal(t, "UPI", bill.PaymentMode)
	assert.True(t, decimal.NewFromInt(394).Equal(bill.Total))

	replay := call(t, r, http.MethodPost, "/api/v1/cart/checkout", token, gin.H{"payment_mode": "upi"}, middleware.IdempotencyKeyHeader, "sale-2")
	assert.Equal(t, http.StatusCreated, replay.Code)
	assert.Equal(t, "true", replay.Header().Get(middleware.ReplayedHeader))
	assert.Equal(t, first.Body.String(), replay.Body.String())

	w = call(t, r, http.MethodGet, "/api/v1/cart", token, nil)
	decode(t, w, &cart)
	assert.Equal(t, "empty", cart.State)
	assert.Empty(t, cart.Lines)

	w = call(t, r, http.MethodPost, "/api/v1/cart/checkout", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code, "empty cart")

	w = call(t, r, http.MethodGet, "/api/v1/bills/"+bill.BillNumber+"/receipt", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = call(t, r, http.MethodGet, "/api/v1/bills/"+bill.BillNumber+"/pdf", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))

	w = call(t, r, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `pos_bills_completed_total{payment_mode="UPI"} 1`)
}

func TestSettingsPermissions(t *testing.T) {
	r := newTestRouter(t)
	cashier := login(t, r, "meena@business.com")
	owner := login(t, r, "rajesh@business.com")

	w := call(t, r, http.MethodGet, "/api/v1/settings/billing", cashier, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = call(t, r, http.MethodPatch, "/api/v1/settings/billing", cashier, gin.H{"round_off_to": "up"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = call(t, r, http.MethodPatch, "/api/v1/settings/billing", owner, gin.H{"round_off_to": "up"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var billing struct {
		RoundOffTo string `json:"round_off_to"`
		EnableGST  bool   `json:"enable_gst"`
	}
	decode(t, w, &billing)
	assert.Equal(t, "up", billing.RoundOffTo)
	assert.True(t, billing.EnableGST, "other keys keep their values")

	w = call(t, r, http.MethodPatch, "/api/v1/settings/billing", owner, gin.H{"round_up": true})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = call(t, r, http.MethodPatch, "/api/v1/settings/billing", owner, gin.H{"round_off_to": "sideways"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = call(t, r, http.MethodGet, "/api/v1/settings/themes", owner, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = call(t, r, http.MethodPost, "/api/v1/settings/billing/reset", owner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &billing)
	assert.Equal(t, "nearest", billing.RoundOffTo)

	w = call(t, r, http.MethodGet, "/api/v1/settings/payment-modes/enabled", cashier, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var modes []struct {
		ID string `json:"id"`
	}
	decode(t, w, &modes)
	assert.Len(t, modes, 5)
}

func TestSettingsKeyCasing(t *testing.T) {
	r := newTestRouter(t)
	owner := login(t, r, "rajesh@business.com")

	w := call(t, r, http.MethodPatch, "/api/v1/settings/billing", owner, gin.H{"enableGst": false})
	assert.Equal(t, http.StatusBadRequest, w.Code, "field keys are snake_case")

	w = call(t, r, http.MethodPatch, "/api/v1/settings/productFields", owner, gin.H{"show_mrp": false})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var fields struct {
		ShowMRP     bool `json:"show_mrp"`
		ShowBarcode bool `json:"show_barcode"`
	}
	decode(t, w, &fields)
	assert.False(t, fields.ShowMRP)
	assert.True(t, fields.ShowBarcode)

	w = call(t, r, http.MethodGet, "/api/v1/settings/product_fields", owner, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code, "section names are camelCase")
}

func TestReportPermissions(t *testing.T) {
	r := newTestRouter(t)
	cashier := login(t, r, "meena@business.com")
	owner := login(t, r, "rajesh@business.com")

	assert.Equal(t, http.StatusOK, call(t, r, http.MethodGet, "/api/v1/reports/dashboard", cashier, nil).Code)
	assert.Equal(t, http.StatusForbidden, call(t, r, http.MethodGet, "/api/v1/reports/stock", cashier, nil).Code)
	assert.Equal(t, http.StatusForbidden, call(t, r, http.MethodGet, "/api/v1/expenses", cashier, nil).Code)

	w := call(t, r, http.MethodGet, "/api/v1/reports/gst/gstr1?from=2026-01-01&to=2026-01-31", owner, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var gstr1 struct {
		Rows []struct {
			InvoiceNo string `json:"invoice_no"`
		} `json:"rows"`
	}
	decode(t, w, &gstr1)
	assert.Len(t, gstr1.Rows, 3)

	w = call(t, r, http.MethodGet, "/api/v1/reports/gst/gstr1?from=01-01-2026", owner, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = call(t, r, http.MethodGet, "/api/v1/reports/gst/export?from=2026-01-01&to=2026-01-31", owner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "gst-report-2026-01-01-to-2026-01-31.xlsx")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")), "xlsx is a zip archive")
}

func TestStaffManagement(t *testing.T) {
	r := newTestRouter(t)
	manager := login(t, r, "priya@business.com")
	owner := login(t, r, "rajesh@business.com")

	newStaff := gin.H{"name": "Kavya", "email": "kavya@business.com", "role": "cashier", "password": "admin123"}
	assert.Equal(t, http.StatusForbidden, call(t, r, http.MethodPost, "/api/v1/staff", manager, newStaff).Code)

	w := call(t, r, http.MethodPost, "/api/v1/staff", owner, newStaff)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = call(t, r, http.MethodGet, "/api/v1/staff", manager, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var staff []struct {
		Email string `json:"email"`
	}
	decode(t, w, &staff)
	assert.Len(t, staff, 6)

	assert.NotEmpty(t, login(t, r, "kavya@business.com"))
}

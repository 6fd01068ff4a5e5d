package database

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/sangkips/billing-api/internal/domain/entity"
	"github.com/sangkips/billing-api/internal/domain/enum"
	"github.com/sangkips/billing-api/pkg/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SeedDefaultData loads the demo shop: catalog, customers, staff, a few bills, expenses,
// purchases and the business profile. It does nothing when products already exist.
// Every staff account gets staffPassword.
func SeedDefaultData(db *gorm.DB, staffPassword string) error {
	var count int64
	if err := db.Model(&entity.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		slog.Debug("seed skipped, catalog not empty", "products", count)
		return nil
	}

	hash, err := utils.HashPassword(staffPassword)
	if err != nil {
		return fmt.Errorf("failed to hash staff password: %w", err)
	}

	products := seedProducts()
	customers := seedCustomers()

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&products).Error; err != nil {
			return fmt.Errorf("seed products: %w", err)
		}
		if err := tx.Create(&customers).Error; err != nil {
			return fmt.Errorf("seed customers: %w", err)
		}

		staff := seedStaff(hash)
		if err := tx.Create(&staff).Error; err != nil {
			return fmt.Errorf("seed staff: %w", err)
		}

		bills := seedBills(indexProducts(products), indexCustomers(customers))
		for _, b := range bills {
			if err := tx.Create(b).Error; err != nil {
				return fmt.Errorf("seed bill %s: %w", b.BillNumber, err)
			}
		}

		expenses := seedExpenses()
		if err := tx.Create(&expenses).Error; err != nil {
			return fmt.Errorf("seed expenses: %w", err)
		}

		for _, p := range seedPurchases() {
			if err := tx.Create(p).Error; err != nil {
				return fmt.Errorf("seed purchase %s: %w", p.PurchaseNo, err)
			}
		}

		profile := seedProfile()
		if err := tx.Save(&profile).Error; err != nil {
			return fmt.Errorf("seed profile: %w", err)
		}

		slog.Info("seeded demo data",
			"products", len(products),
			"customers", len(customers),
			"bills", len(bills))
		return nil
	})
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 0, 0, 0, time.Local)
}

func dec(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func seedProducts() []entity.Product {
	type row struct {
		id, name, category string
		price, mrp, gst    float64
		hsn                string
		stock              int
		unit               string
		threshold          int
	}
	rows := []row{
		{"P001", "Basmati Rice (1kg)", "Groceries", 120, 140, 5, "1006", 150, "kg", 20},
		{"P002", "Toor Dal (1kg)", "Groceries", 145, 160, 5, "0713", 80, "kg", 15},
		{"P003", "Sunflower Oil (1L)", "Groceries", 135, 150, 5, "1512", 60, "L", 10},
		{"P004", "Mysore Sandal Soap", "Personal Care", 52, 55, 18, "3401", 200, "pcs", 25},
		{"P005", "Aashirvaad Atta (5kg)", "Groceries", 280, 300, 5, "1101", 45, "kg", 10},
		{"P006", "Amul Butter (500g)", "Dairy", 280, 295, 12, "0405", 30, "pcs", 8},
		{"P007", "Parle-G Biscuits", "Snacks", 10, 10, 18, "1905", 500, "pcs", 50},
		{"P008", "Colgate Toothpaste (200g)", "Personal Care", 115, 120, 18, "3306", 75, "pcs", 15},
		{"P009", "Surf Excel (1kg)", "Household", 180, 195, 18, "3402", 40, "kg", 10},
		{"P010", "Filter Coffee Powder (500g)", "Beverages", 320, 350, 5, "0901", 25, "pcs", 5},
		{"P011", "Dosa Batter (1kg)", "Ready to Cook", 80, 90, 5, "1901", 20, "kg", 8},
		{"P012", "Curd (500ml)", "Dairy", 35, 38, 5, "0403", 50, "pcs", 15},
	}

	out := make([]entity.Product, 0, len(rows))
	for i, r := range rows {
		out = append(out, entity.Product{
			ID:                r.id,
			Name:              r.name,
			Category:          r.category,
			Price:             dec(r.price),
			MRP:               dec(r.mrp),
			GSTPercent:        dec(r.gst),
			HSNCode:           r.hsn,
			Stock:             r.stock,
			Unit:              r.unit,
			Barcode:           fmt.Sprintf("%d", int64(8901234567890)+int64(i)),
			LowStockThreshold: r.threshold,
			IsActive:          true,
		})
	}
	return out
}

func seedCustomers() []entity.Customer {
	return []entity.Customer{
		{
			ID: "C001", Name: "Murugan Stores", Mobile: "9876543210", Email: "murugan.stores@email.com",
			Address: "123, Anna Nagar, Chennai - 600040", GSTIN: "33AABCU9603R1ZM",
			Type: enum.CustomerTypeWholesale, CreditLimit: dec(50000), OutstandingBalance: dec(12500), TotalPurchases: dec(245000),
		},
		{
			ID: "C002", Name: "Lakshmi Traders", Mobile: "9876543211", Email: "lakshmi.traders@email.com",
			Address: "45, T Nagar, Chennai - 600017", GSTIN: "33AABCU9603R1ZN",
			Type: enum.CustomerTypeWholesale, CreditLimit: dec(75000), OutstandingBalance: dec(8000), TotalPurchases: dec(380000),
		},
		{
			ID: "C003", Name: "Selvam (Walk-in)", Mobile: "9876543212",
			Type: enum.CustomerTypeRetail, TotalPurchases: dec(5600),
		},
		{
			ID: "C004", Name: "Anbu Supermarket", Mobile: "9876543213", Email: "anbu.super@email.com",
			Address: "78, Velachery Main Road, Chennai - 600042", GSTIN: "33AABCU9603R1ZP",
			Type: enum.CustomerTypeCredit, CreditLimit: dec(100000), OutstandingBalance: dec(45000), TotalPurchases: dec(890000),
		},
		{
			ID: "C005", Name: "Karthik Provisions", Mobile: "9876543214",
			Address: "12, Adyar, Chennai - 600020",
			Type:    enum.CustomerTypeCredit, CreditLimit: dec(25000), OutstandingBalance: dec(3500), TotalPurchases: dec(125000),
		},
	}
}

func seedStaff(hash string) []entity.Staff {
	joined := day(2024, time.January, 1)
	return []entity.Staff{
		{ID: "S001", Name: "Rajesh Kumar", Email: "rajesh@business.com", Mobile: "9876543220", Role: enum.StaffRoleOwner, IsActive: true, PasswordHash: hash, JoinedAt: joined},
		{ID: "S002", Name: "Priya Devi", Email: "priya@business.com", Mobile: "9876543221", Role: enum.StaffRoleManager, IsActive: true, PasswordHash: hash, JoinedAt: joined},
		{ID: "S003", Name: "Ravi Shankar", Email: "ravi@business.com", Mobile: "9876543222", Role: enum.StaffRoleCashier, IsActive: true, PasswordHash: hash, JoinedAt: joined},
		{ID: "S004", Name: "Meena Kumari", Email: "meena@business.com", Mobile: "9876543223", Role: enum.StaffRoleCashier, IsActive: true, PasswordHash: hash, JoinedAt: joined},
		{ID: "S005", Name: "Arun Prasad", Email: "arun@business.com", Mobile: "9876543224", Role: enum.StaffRoleAccountant, IsActive: false, PasswordHash: hash, JoinedAt: joined},
	}
}

type seedLine struct {
	productID string
	quantity  int
	discount  float64
}

func seedBills(products map[string]*entity.Product, customers map[string]*entity.Customer) []*entity.Bill {
	type row struct {
		number     string
		date       time.Time
		customerID string
		lines      []seedLine
		mode       string
		pending    bool
	}
	rows := []row{
		{"INV-2026-0001", day(2026, time.January, 10), "C003", []seedLine{{"P001", 2, 0}, {"P003", 1, 0}}, "Cash", false},
		{"INV-2026-0002", day(2026, time.January, 10), "C001", []seedLine{{"P005", 10, 100}, {"P002", 20, 50}}, "UPI", false},
		{"INV-2026-0003", day(2026, time.January, 9), "C004", []seedLine{{"P007", 100, 0}, {"P008", 24, 60}}, "Credit", true},
	}

	bills := make([]*entity.Bill, 0, len(rows))
	for _, r := range rows {
		lines := make([]entity.CartLine, 0, len(r.lines))
		for _, sl := range r.lines {
			p := products[sl.productID]
			lines = append(lines, entity.RecomputeLine(entity.CartLine{
				ProductID:  p.ID,
				Name:       p.Name,
				HSNCode:    p.HSNCode,
				Unit:       p.Unit,
				Quantity:   sl.quantity,
				Price:      p.Price,
				GSTPercent: p.GSTPercent,
				Discount:   dec(sl.discount),
			}))
		}

		b := entity.NewPaidBill(entity.BillDraft{
			BillNumber:  r.number,
			Date:        r.date,
			Customer:    customers[r.customerID],
			Lines:       lines,
			Totals:      entity.ComputeTotals(lines, decimal.Zero),
			PaymentMode: r.mode,
			CreatedBy:   "S001",
		})
		if r.pending {
			b.Status = enum.BillStatusPending
			b.PaidAmount = decimal.Zero
		}
		bills = append(bills, b)
	}
	return bills
}

func seedExpenses() []entity.Expense {
	return []entity.Expense{
		{ID: "E001", Date: day(2026, time.January, 10), Category: "Electricity", Description: "EB Bill - January", Amount: dec(4500), PaymentMode: "Bank Transfer"},
		{ID: "E002", Date: day(2026, time.January, 9), Category: "Transport", Description: "Stock delivery charges", Amount: dec(800), PaymentMode: "Cash"},
		{ID: "E003", Date: day(2026, time.January, 8), Category: "Staff Salary", Description: "Advance to Ravi", Amount: dec(5000), PaymentMode: "Cash"},
		{ID: "E004", Date: day(2026, time.January, 7), Category: "Maintenance", Description: "AC repair", Amount: dec(2500), PaymentMode: "UPI"},
		{ID: "E005", Date: day(2026, time.January, 5), Category: "Rent", Description: "Shop rent - January", Amount: dec(25000), PaymentMode: "Bank Transfer"},
	}
}

func seedPurchases() []*entity.Purchase {
	rice := &entity.Purchase{
		PurchaseNo:     "PUR-2026-0001",
		SupplierName:   "Chennai Rice Mills",
		SupplierGSTIN:  "33AABCR1234F1Z5",
		SupplierMobile: "9840012345",
		InvoiceNo:      "CRM/2025/4521",
		Date:           day(2026, time.January, 8),
		Items: []entity.PurchaseItem{
			{ProductID: "P001", Name: "Basmati Rice (1kg)", Quantity: 100, Rate: dec(95), GSTPercent: dec(5)},
			{ProductID: "P005", Name: "Aashirvaad Atta (5kg)", Quantity: 20, Rate: dec(240), GSTPercent: dec(5)},
		},
		Paid: dec(10000),
	}
	fmcg := &entity.Purchase{
		PurchaseNo:     "PUR-2026-0002",
		SupplierName:   "Tamil Nadu FMCG Distributors",
		SupplierGSTIN:  "33AABCT5678K1Z2",
		SupplierMobile: "9840067890",
		InvoiceNo:      "TNF-8842",
		Date:           day(2026, time.January, 6),
		Items: []entity.PurchaseItem{
			{ProductID: "P004", Name: "Mysore Sandal Soap", Quantity: 100, Rate: dec(42), GSTPercent: dec(18)},
			{ProductID: "P008", Name: "Colgate Toothpaste (200g)", Quantity: 50, Rate: dec(95), GSTPercent: dec(18)},
		},
	}
	rice.Recalculate()
	fmcg.Recalculate()
	fmcg.Paid = fmcg.Total
	fmcg.Recalculate()
	return []*entity.Purchase{rice, fmcg}
}

func seedProfile() entity.BusinessProfile {
	return entity.BusinessProfile{
		ID:            entity.BusinessProfileID,
		BusinessName:  "Sri Lakshmi Stores",
		OwnerName:     "Rajesh Kumar",
		Category:      "retail",
		Mobile:        "9876543210",
		Email:         "srilakshmistores@gmail.com",
		GSTIN:         "33AABCU9603R1ZM",
		Address:       "45, Gandhi Road, T Nagar",
		District:      "Chennai",
		State:         "Tamil Nadu",
		Pincode:       "600017",
		UPIID:         "srilakshmistores@upi",
		InvoiceFooter: "Thank you for shopping with us!",
		FinancialYear: "2025-26",
	}
}

func indexProducts(ps []entity.Product) map[string]*entity.Product {
	out := make(map[string]*entity.Product, len(ps))
	for i := range ps {
		out[ps[i].ID] = &ps[i]
	}
	return out
}

func indexCustomers(cs []entity.Customer) map[string]*entity.Customer {
	out := make(map[string]*entity.Customer, len(cs))
	for i := range cs {
		out[cs[i].ID] = &cs[i]
	}
	return out
}

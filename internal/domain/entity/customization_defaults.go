package entity

// DefaultSettings returns a freshly allocated settings tree with the shipped defaults.
// Each call returns new slices, so callers may modify the result.
func DefaultSettings() Settings {
	return Settings{
		Invoice: InvoiceSettings{
			ShowLogo:          true,
			ShowGSTIN:         true,
			ShowAddress:       true,
			ShowMobile:        true,
			ShowEmail:         false,
			ShowHSNCode:       true,
			ShowBarcode:       false,
			ShowDiscount:      true,
			ShowRoundOff:      true,
			ShowPaymentMode:   true,
			ShowFooter:        true,
			ShowSignature:     false,
			ShowQRCode:        false,
			ShowTerms:         true,
			InvoiceTitle:      "Tax Invoice",
			InvoiceTitleTamil: "வரி விலைப்பட்டியல்",
			TermsText:         "Goods once sold will not be taken back. Subject to Tamil Nadu jurisdiction.",
			Format:            "thermal",
			FontSize:          "medium",
		},
		Billing: BillingSettings{
			EnableGST:            true,
			DefaultGSTPercent:    5,
			EnableDiscount:       true,
			EnableRoundOff:       true,
			RoundOffTo:           "nearest",
			EnablePartialPayment: true,
			EnableCreditSales:    true,
			ShowMRP:              true,
			ShowStock:            true,
			ShowProductImage:     false,
			QuickQuantities:      []int{1, 2, 5, 10},
			DefaultPaymentMode:   "cash",
			PrintAfterSale:       false,
			ConfirmBeforeSale:    false,
			EnableNegativeStock:  false,
			EnableBarcodeScanner: true,
		},
		ProductFields: ProductFieldSettings{
			ShowTamilName:         true,
			ShowHSNCode:           true,
			ShowBarcode:           true,
			ShowMRP:               true,
			ShowGST:               true,
			ShowStock:             true,
			ShowUnit:              true,
			ShowLowStockThreshold: true,
			CustomFields:          []CustomField{},
		},
		CustomerFields: CustomerFieldSettings{
			ShowEmail:       true,
			ShowAddress:     true,
			ShowGSTIN:       true,
			ShowCreditLimit: true,
			CustomFields:    []CustomField{},
		},
		Dashboard: DashboardSettings{
			ShowTodaySales:   true,
			ShowMonthSales:   true,
			ShowYearSales:    false,
			ShowPendingDues:  true,
			ShowTotalBills:   true,
			ShowSalesChart:   true,
			ShowHourlyChart:  true,
			ShowTopSelling:   true,
			ShowLowStock:     true,
			ShowGSTSummary:   true,
			ShowRecentBills:  true,
			ShowQuickActions: true,
			ChartType:        "area",
			CardLayout:       "grid",
		},
		TableColumns: TableColumnSettings{
			Products:  []string{"name", "category", "price", "gst", "stock", "status", "actions"},
			Customers: []string{"name", "mobile", "type", "outstanding", "totalPurchases", "actions"},
			Bills:     []string{"billNumber", "customer", "date", "amount", "status"},
			Expenses:  []string{"date", "category", "description", "amount", "paymentMode"},
			Purchases: []string{"date", "supplier", "amount", "status"},
			Stock:     []string{"product", "category", "stock", "value", "status"},
		},
		Appearance: AppearanceSettings{
			PrimaryColor:     "#4f46e5",
			AccentColor:      "#f97316",
			FontFamily:       "inter",
			FontSize:         "medium",
			BorderRadius:     "medium",
			SidebarPosition:  "left",
			ShowAnimations:   true,
			ShowTooltips:     true,
			NumberFormat:     "indian",
			DateFormat:       "DD/MM/YYYY",
			CurrencySymbol:   "₹",
			CurrencyPosition: "before",
		},
		Tax: TaxSettings{
			EnableGST:      true,
			GSTRates:       []int{0, 5, 12, 18, 28},
			DefaultGSTRate: 5,
			ShowGSTBreakup: true,
			InclusiveGST:   false,
			EnableCess:     false,
			CessPercent:    0,
		},
		Notifications: NotificationSettings{
			EnableLowStockAlert:      true,
			LowStockThreshold:        10,
			EnableDueReminder:        true,
			DueReminderDays:          7,
			EnableDailySummary:       false,
			EnableSoundEffects:       true,
			EnableEmailNotifications: false,
		},
		PaymentModes: PaymentModeSettings{Modes: []PaymentMode{
			{ID: "cash", Name: "Cash", NameTamil: "பணம்", Icon: "💵", Enabled: true, IsDefault: true},
			{ID: "upi", Name: "UPI", NameTamil: "UPI", Icon: "📱", Enabled: true},
			{ID: "card", Name: "Card", NameTamil: "கார்டு", Icon: "💳", Enabled: true},
			{ID: "bank", Name: "Bank Transfer", NameTamil: "வங்கி பரிமாற்றம்", Icon: "🏦", Enabled: true},
			{ID: "credit", Name: "Credit", NameTamil: "கடன்", Icon: "📝", Enabled: true},
			{ID: "cheque", Name: "Cheque", NameTamil: "காசோலை", Icon: "📄", Enabled: false},
		}},
		Units: UnitSettings{Units: []Unit{
			{ID: "pcs", Name: "Pieces", NameTamil: "துண்டுகள்", Symbol: "pcs", Enabled: true},
			{ID: "kg", Name: "Kilogram", NameTamil: "கிலோ", Symbol: "kg", Enabled: true},
			{ID: "g", Name: "Gram", NameTamil: "கிராம்", Symbol: "g", Enabled: true},
			{ID: "l", Name: "Litre", NameTamil: "லிட்டர்", Symbol: "L", Enabled: true},
			{ID: "ml", Name: "Millilitre", NameTamil: "மில்லி", Symbol: "ml", Enabled: true},
			{ID: "m", Name: "Metre", NameTamil: "மீட்டர்", Symbol: "m", Enabled: false},
			{ID: "cm", Name: "Centimetre", NameTamil: "சென்டி மீட்டர்", Symbol: "cm", Enabled: false},
			{ID: "box", Name: "Box", NameTamil: "பெட்டி", Symbol: "box", Enabled: true},
			{ID: "pack", Name: "Pack", NameTamil: "பேக்", Symbol: "pack", Enabled: true},
			{ID: "dozen", Name: "Dozen", NameTamil: "டஜன்", Symbol: "dz", Enabled: true},
		}},
		Categories: CategorySettings{
			Product: []Category{
				{ID: "groceries", Name: "Groceries", NameTamil: "மளிகை பொருட்கள்", Icon: "🛒", Color: "#22c55e", Enabled: true},
				{ID: "dairy", Name: "Dairy", NameTamil: "பால் பொருட்கள்", Icon: "🥛", Color: "#3b82f6", Enabled: true},
				{ID: "personal-care", Name: "Personal Care", NameTamil: "தனிப்பட்ட பராமரிப்பு", Icon: "🧴", Color: "#ec4899", Enabled: true},
				{ID: "household", Name: "Household", NameTamil: "வீட்டு பொருட்கள்", Icon: "🏠", Color: "#f97316", Enabled: true},
				{ID: "snacks", Name: "Snacks", NameTamil: "தின்பண்டங்கள்", Icon: "🍪", Color: "#eab308", Enabled: true},
				{ID: "beverages", Name: "Beverages", NameTamil: "பானங்கள்", Icon: "☕", Color: "#8b5cf6", Enabled: true},
				{ID: "ready-to-cook", Name: "Ready to Cook", NameTamil: "சமைக்க தயார்", Icon: "🍳", Color: "#ef4444", Enabled: true},
				{ID: "medicines", Name: "Medicines", NameTamil: "மருந்துகள்", Icon: "💊", Color: "#06b6d4", Enabled: false},
				{ID: "electronics", Name: "Electronics", NameTamil: "மின்னணு சாதனங்கள்", Icon: "📱", Color: "#6366f1", Enabled: false},
				{ID: "stationery", Name: "Stationery", NameTamil: "எழுது பொருட்கள்", Icon: "📝", Color: "#14b8a6", Enabled: false},
			},
			Expense: []Category{
				{ID: "rent", Name: "Rent", NameTamil: "வாடகை", Icon: "🏪", Enabled: true},
				{ID: "electricity", Name: "Electricity", NameTamil: "மின்சாரம்", Icon: "⚡", Enabled: true},
				{ID: "salary", Name: "Staff Salary", NameTamil: "ஊழியர் சம்பளம்", Icon: "👥", Enabled: true},
				{ID: "transport", Name: "Transport", NameTamil: "போக்குவரத்து", Icon: "🚛", Enabled: true},
				{ID: "maintenance", Name: "Maintenance", NameTamil: "பராமரிப்பு", Icon: "🔧", Enabled: true},
				{ID: "misc", Name: "Miscellaneous", NameTamil: "இதர செலவுகள்", Icon: "📦", Enabled: true},
				{ID: "internet", Name: "Internet", NameTamil: "இணையம்", Icon: "🌐", Enabled: false},
				{ID: "insurance", Name: "Insurance", NameTamil: "காப்பீடு", Icon: "🛡️", Enabled: false},
				{ID: "taxes", Name: "Taxes", NameTamil: "வரிகள்", Icon: "📋", Enabled: false},
			},
		},
	}
}

package entity

// CustomField is a user-defined extra field on products or customers
type CustomField struct {
	Name      string   `json:"name" validate:"required"`
	NameTamil string   `json:"name_tamil"`
	Type      string   `json:"type" validate:"oneof=text number date select"`
	Options   []string `json:"options,omitempty"`
}

// InvoiceSettings controls what is printed on an invoice
type InvoiceSettings struct {
	ShowLogo          bool   `json:"show_logo"`
	ShowGSTIN         bool   `json:"show_gstin"`
	ShowAddress       bool   `json:"show_address"`
	ShowMobile        bool   `json:"show_mobile"`
	ShowEmail         bool   `json:"show_email"`
	ShowHSNCode       bool   `json:"show_hsn_code"`
	ShowBarcode       bool   `json:"show_barcode"`
	ShowDiscount      bool   `json:"show_discount"`
	ShowRoundOff      bool   `json:"show_round_off"`
	ShowPaymentMode   bool   `json:"show_payment_mode"`
	ShowFooter        bool   `json:"show_footer"`
	ShowSignature     bool   `json:"show_signature"`
	ShowQRCode        bool   `json:"show_qr_code"`
	ShowTerms         bool   `json:"show_terms"`
	InvoiceTitle      string `json:"invoice_title"`
	InvoiceTitleTamil string `json:"invoice_title_tamil"`
	TermsText         string `json:"terms_text"`
	Format            string `json:"format" validate:"oneof=thermal a4 a5"`
	FontSize          string `json:"font_size" validate:"oneof=small medium large"`
}

// BillingSettings are the counter toggles
type BillingSettings struct {
	EnableGST            bool   `json:"enable_gst"`
	DefaultGSTPercent    int    `json:"default_gst_percent"`
	EnableDiscount       bool   `json:"enable_discount"`
	EnableRoundOff       bool   `json:"enable_round_off"`
	RoundOffTo           string `json:"round_off_to" validate:"oneof=none nearest up down"`
	EnablePartialPayment bool   `json:"enable_partial_payment"`
	EnableCreditSales    bool   `json:"enable_credit_sales"`
	ShowMRP              bool   `json:"show_mrp"`
	ShowStock            bool   `json:"show_stock"`
	ShowProductImage     bool   `json:"show_product_image"`
	QuickQuantities      []int  `json:"quick_quantities"`
	DefaultPaymentMode   string `json:"default_payment_mode"`
	PrintAfterSale       bool   `json:"print_after_sale"`
	ConfirmBeforeSale    bool   `json:"confirm_before_sale"`
	EnableNegativeStock  bool   `json:"enable_negative_stock"`
	EnableBarcodeScanner bool   `json:"enable_barcode_scanner"`
}

// ProductFieldSettings toggles product form fields
type ProductFieldSettings struct {
	ShowTamilName         bool          `json:"show_tamil_name"`
	ShowHSNCode           bool          `json:"show_hsn_code"`
	ShowBarcode           bool          `json:"show_barcode"`
	ShowMRP               bool          `json:"show_mrp"`
	ShowGST               bool          `json:"show_gst"`
	ShowStock             bool          `json:"show_stock"`
	ShowUnit              bool          `json:"show_unit"`
	ShowLowStockThreshold bool          `json:"show_low_stock_threshold"`
	ShowBatchNumber       bool          `json:"show_batch_number"`
	ShowExpiryDate        bool          `json:"show_expiry_date"`
	ShowManufacturer      bool          `json:"show_manufacturer"`
	ShowSupplier          bool          `json:"show_supplier"`
	CustomFields          []CustomField `json:"custom_fields" validate:"dive"`
}

// CustomerFieldSettings toggles customer form fields
type CustomerFieldSettings struct {
	ShowEmail         bool          `json:"show_email"`
	ShowAddress       bool          `json:"show_address"`
	ShowGSTIN         bool          `json:"show_gstin"`
	ShowCreditLimit   bool          `json:"show_credit_limit"`
	ShowLoyaltyPoints bool          `json:"show_loyalty_points"`
	ShowBirthday      bool          `json:"show_birthday"`
	ShowNotes         bool          `json:"show_notes"`
	CustomFields      []CustomField `json:"custom_fields" validate:"dive"`
}

// DashboardSettings picks dashboard widgets
type DashboardSettings struct {
	ShowTodaySales   bool   `json:"show_today_sales"`
	ShowMonthSales   bool   `json:"show_month_sales"`
	ShowYearSales    bool   `json:"show_year_sales"`
	ShowPendingDues  bool   `json:"show_pending_dues"`
	ShowTotalBills   bool   `json:"show_total_bills"`
	ShowSalesChart   bool   `json:"show_sales_chart"`
	ShowHourlyChart  bool   `json:"show_hourly_chart"`
	ShowTopSelling   bool   `json:"show_top_selling"`
	ShowLowStock     bool   `json:"show_low_stock"`
	ShowGSTSummary   bool   `json:"show_gst_summary"`
	ShowRecentBills  bool   `json:"show_recent_bills"`
	ShowQuickActions bool   `json:"show_quick_actions"`
	ChartType        string `json:"chart_type" validate:"oneof=area bar line"`
	CardLayout       string `json:"card_layout" validate:"oneof=grid list"`
}

// TableColumnSettings lists visible columns per table
type TableColumnSettings struct {
	Products  []string `json:"products"`
	Customers []string `json:"customers"`
	Bills     []string `json:"bills"`
	Expenses  []string `json:"expenses"`
	Purchases []string `json:"purchases"`
	Stock     []string `json:"stock"`
}

// AppearanceSettings is the look of the client and the currency format
type AppearanceSettings struct {
	PrimaryColor     string `json:"primary_color"`
	AccentColor      string `json:"accent_color"`
	FontFamily       string `json:"font_family" validate:"oneof=inter noto-sans-tamil roboto poppins"`
	FontSize         string `json:"font_size" validate:"oneof=small medium large xlarge"`
	BorderRadius     string `json:"border_radius" validate:"oneof=none small medium large"`
	SidebarPosition  string `json:"sidebar_position" validate:"oneof=left right"`
	SidebarCollapsed bool   `json:"sidebar_collapsed"`
	CompactMode      bool   `json:"compact_mode"`
	ShowAnimations   bool   `json:"show_animations"`
	ShowTooltips     bool   `json:"show_tooltips"`
	NumberFormat     string `json:"number_format" validate:"oneof=indian international"`
	DateFormat       string `json:"date_format" validate:"oneof=DD/MM/YYYY MM/DD/YYYY YYYY-MM-DD"`
	CurrencySymbol   string `json:"currency_symbol" validate:"oneof=₹ Rs. INR"`
	CurrencyPosition string `json:"currency_position" validate:"oneof=before after"`
}

// TaxSettings are the GST rates offered in forms
type TaxSettings struct {
	EnableGST      bool    `json:"enable_gst"`
	GSTRates       []int   `json:"gst_rates"`
	DefaultGSTRate int     `json:"default_gst_rate"`
	ShowGSTBreakup bool    `json:"show_gst_breakup"`
	InclusiveGST   bool    `json:"inclusive_gst"`
	EnableCess     bool    `json:"enable_cess"`
	CessPercent    float64 `json:"cess_percent"`
}

// NotificationSettings are alert toggles
type NotificationSettings struct {
	EnableLowStockAlert      bool `json:"enable_low_stock_alert"`
	LowStockThreshold        int  `json:"low_stock_threshold"`
	EnableDueReminder        bool `json:"enable_due_reminder"`
	DueReminderDays          int  `json:"due_reminder_days"`
	EnableDailySummary       bool `json:"enable_daily_summary"`
	EnableSoundEffects       bool `json:"enable_sound_effects"`
	EnableEmailNotifications bool `json:"enable_email_notifications"`
}

// PaymentMode is one way a customer can pay
type PaymentMode struct {
	ID        string `json:"id" validate:"required"`
	Name      string `json:"name"`
	NameTamil string `json:"name_tamil"`
	Icon      string `json:"icon"`
	Enabled   bool   `json:"enabled"`
	IsDefault bool   `json:"is_default"`
}

// PaymentModeSettings is the list of payment modes
type PaymentModeSettings struct {
	Modes []PaymentMode `json:"modes" validate:"dive"`
}

// Unit is a unit of measure
type Unit struct {
	ID        string `json:"id" validate:"required"`
	Name      string `json:"name"`
	NameTamil string `json:"name_tamil"`
	Symbol    string `json:"symbol"`
	Enabled   bool   `json:"enabled"`
}

// UnitSettings is the list of units
type UnitSettings struct {
	Units []Unit `json:"units" validate:"dive"`
}

// Category is a product or expense category
type Category struct {
	ID        string `json:"id" validate:"required"`
	Name      string `json:"name"`
	NameTamil string `json:"name_tamil"`
	Icon      string `json:"icon"`
	Color     string `json:"color,omitempty"`
	Enabled   bool   `json:"enabled"`
}

// CategorySettings holds both category lists
type CategorySettings struct {
	Product []Category `json:"product" validate:"dive"`
	Expense []Category `json:"expense" validate:"dive"`
}

// Settings is the whole customization tree
type Settings struct {
	Invoice        InvoiceSettings       `json:"invoice"`
	Billing        BillingSettings       `json:"billing"`
	ProductFields  ProductFieldSettings  `json:"productFields"`
	CustomerFields CustomerFieldSettings `json:"customerFields"`
	Dashboard      DashboardSettings     `json:"dashboard"`
	TableColumns   TableColumnSettings   `json:"tableColumns"`
	Appearance     AppearanceSettings    `json:"appearance"`
	Tax            TaxSettings           `json:"tax"`
	Notifications  NotificationSettings  `json:"notifications"`
	PaymentModes   PaymentModeSettings   `json:"paymentModes"`
	Units          UnitSettings          `json:"units"`
	Categories     CategorySettings      `json:"categories"`
}

package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/sangkips/billing-api/internal/domain/entity"
	"github.com/sangkips/billing-api/internal/domain/enum"
	"github.com/sangkips/billing-api/internal/domain/repository"
	"github.com/sangkips/billing-api/pkg/apperror"
	"github.com/sangkips/billing-api/pkg/money"
)

// CustomizationService owns the twelve-section settings tree. Reads return copies;
// writes go through a section-scoped shallow merge and are persisted per section.
type CustomizationService struct {
	mu       sync.RWMutex
	settings entity.Settings
	repo     repository.SettingsRepository
	validate *validator.Validate
	logger   *slog.Logger
}

// NewCustomizationService creates the store with defaults and overlays whatever
// sections were saved earlier
func NewCustomizationService(ctx context.Context, repo repository.SettingsRepository, logger *slog.Logger) (*CustomizationService, error) {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	s := &CustomizationService{
		settings: entity.DefaultSettings(),
		repo:     repo,
		validate: v,
		logger:   logger,
	}
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *CustomizationService) load(ctx context.Context) error {
	stored, err := s.repo.LoadSections(ctx)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	for name, payload := range stored {
		section, ok := enum.ParseSection(name)
		if !ok {
			s.logger.Warn("ignoring stored settings section", "section", name)
			continue
		}
		ptr := sectionPtr(&s.settings, section)
		// decode over the defaults so fields added later keep their default value
		if err := json.Unmarshal(payload, ptr); err != nil {
			s.logger.Warn("stored settings section is unreadable, using defaults", "section", name, "error", err)
			resetSection(&s.settings, section)
		}
	}
	return nil
}

// All returns a copy of the whole tree
func (s *CustomizationService) All() entity.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSettings(s.settings)
}

// GetSection returns a copy of one section
func (s *CustomizationService) GetSection(section enum.Section) (interface{}, error) {
	if _, ok := enum.ParseSection(string(section)); !ok {
		return nil, apperror.ErrUnknownSection
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sectionCopy(s.settings, section), nil
}

// UpdateSection merges patch into one section. Keys the section does not define are
// rejected, omitted keys keep their value and lists are replaced wholesale.
func (s *CustomizationService) UpdateSection(ctx context.Context, section enum.Section, patch map[string]json.RawMessage) (interface{}, error) {
	if _, ok := enum.ParseSection(string(section)); !ok {
		return nil, apperror.ErrUnknownSection
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ptr := sectionPtr(&s.settings, section)
	current, err := toFieldMap(ptr)
	if err != nil {
		return nil, err
	}

	var unknown []string
	for key, value := range patch {
		if _, ok := current[key]; !ok {
			unknown = append(unknown, key)
			continue
		}
		if bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			return nil, apperror.NewBadRequestError(fmt.Sprintf("Setting %s.%s cannot be null", section, key))
		}
		current[key] = value
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, apperror.NewUnknownFieldsError(section.String(), unknown)
	}

	merged, err := json.Marshal(current)
	if err != nil {
		return nil, err
	}
	next := reflect.New(reflect.TypeOf(ptr).Elem())
	if err := json.Unmarshal(merged, next.Interface()); err != nil {
		return nil, apperror.NewBadRequestError(fmt.Sprintf("Invalid value for section %s: %s", section, err.Error()))
	}
	if err := s.validate.Struct(next.Interface()); err != nil {
		return nil, apperror.FromValidation(err)
	}

	if err := s.repo.SaveSection(ctx, section.String(), merged); err != nil {
		return nil, err
	}
	reflect.ValueOf(ptr).Elem().Set(next.Elem())

	s.logger.Info("settings section updated", "section", section, "keys", len(patch))
	return sectionCopy(s.settings, section), nil
}

// ResetSection restores one section to its defaults
func (s *CustomizationService) ResetSection(ctx context.Context, section enum.Section) (interface{}, error) {
	if _, ok := enum.ParseSection(string(section)); !ok {
		return nil, apperror.ErrUnknownSection
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	defaults := entity.DefaultSettings()
	payload, err := json.Marshal(sectionPtr(&defaults, section))
	if err != nil {
		return nil, err
	}
	if err := s.repo.SaveSection(ctx, section.String(), payload); err != nil {
		return nil, err
	}
	resetSection(&s.settings, section)

	s.logger.Info("settings section reset", "section", section)
	return sectionCopy(s.settings, section), nil
}

// ResetAll restores every section to its defaults
func (s *CustomizationService) ResetAll(ctx context.Context) (entity.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	defaults := entity.DefaultSettings()
	payloads := make(map[string][]byte, len(enum.Sections))
	for _, section := range enum.Sections {
		payload, err := json.Marshal(sectionPtr(&defaults, section))
		if err != nil {
			return entity.Settings{}, err
		}
		payloads[section.String()] = payload
	}
	if err := s.repo.SaveSections(ctx, payloads); err != nil {
		return entity.Settings{}, err
	}
	s.settings = defaults

	s.logger.Info("all settings reset")
	return cloneSettings(s.settings), nil
}

func (s *CustomizationService) Invoice() entity.InvoiceSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.Invoice
}

func (s *CustomizationService) Billing() entity.BillingSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b := s.settings.Billing
	b.QuickQuantities = append([]int(nil), b.QuickQuantities...)
	return b
}

func (s *CustomizationService) Appearance() entity.AppearanceSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.Appearance
}

func (s *CustomizationService) Tax() entity.TaxSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t := s.settings.Tax
	t.GSTRates = append([]int(nil), t.GSTRates...)
	return t
}

func (s *CustomizationService) Notifications() entity.NotificationSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.Notifications
}

func (s *CustomizationService) Dashboard() entity.DashboardSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.Dashboard
}

func (s *CustomizationService) PaymentModes() entity.PaymentModeSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return entity.PaymentModeSettings{Modes: append([]entity.PaymentMode(nil), s.settings.PaymentModes.Modes...)}
}

func (s *CustomizationService) Units() entity.UnitSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return entity.UnitSettings{Units: append([]entity.Unit(nil), s.settings.Units.Units...)}
}

func (s *CustomizationService) Categories() entity.CategorySettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return entity.CategorySettings{
		Product: append([]entity.Category(nil), s.settings.Categories.Product...),
		Expense: append([]entity.Category(nil), s.settings.Categories.Expense...),
	}
}

// EnabledPaymentModes lists the modes a sale may be settled with
func (s *CustomizationService) EnabledPaymentModes() []entity.PaymentMode {
	out := []entity.PaymentMode{}
	for _, m := range s.PaymentModes().Modes {
		if m.Enabled {
			out = append(out, m)
		}
	}
	return out
}

// DefaultPaymentMode is the billing default when it is enabled, else the first enabled
// mode marked default, else the first enabled mode
func (s *CustomizationService) DefaultPaymentMode() (entity.PaymentMode, bool) {
	enabled := s.EnabledPaymentModes()
	if len(enabled) == 0 {
		return entity.PaymentMode{}, false
	}
	if m, ok := matchPaymentMode(enabled, s.Billing().DefaultPaymentMode); ok {
		return m, true
	}
	for _, m := range enabled {
		if m.IsDefault {
			return m, true
		}
	}
	return enabled[0], true
}

// ResolvePaymentMode finds an enabled payment mode by id or name, case-insensitively.
// An empty name resolves to the default mode.
func (s *CustomizationService) ResolvePaymentMode(name string) (entity.PaymentMode, error) {
	if strings.TrimSpace(name) == "" {
		if m, ok := s.DefaultPaymentMode(); ok {
			return m, nil
		}
		return entity.PaymentMode{}, apperror.ErrPaymentModeDisabled
	}
	if m, ok := matchPaymentMode(s.EnabledPaymentModes(), name); ok {
		return m, nil
	}
	return entity.PaymentMode{}, apperror.ErrPaymentModeDisabled
}

func matchPaymentMode(modes []entity.PaymentMode, name string) (entity.PaymentMode, bool) {
	name = strings.TrimSpace(name)
	for _, m := range modes {
		if strings.EqualFold(m.ID, name) || strings.EqualFold(m.Name, name) {
			return m, true
		}
	}
	return entity.PaymentMode{}, false
}

// EnabledUnits lists the units offered in product forms
func (s *CustomizationService) EnabledUnits() []entity.Unit {
	out := []entity.Unit{}
	for _, u := range s.Units().Units {
		if u.Enabled {
			out = append(out, u)
		}
	}
	return out
}

// EnabledProductCategories lists product categories that may be assigned
func (s *CustomizationService) EnabledProductCategories() []entity.Category {
	return enabledCategories(s.Categories().Product)
}

// EnabledExpenseCategories lists expense categories that may be assigned
func (s *CustomizationService) EnabledExpenseCategories() []entity.Category {
	return enabledCategories(s.Categories().Expense)
}

func enabledCategories(all []entity.Category) []entity.Category {
	out := []entity.Category{}
	for _, c := range all {
		if c.Enabled {
			out = append(out, c)
		}
	}
	return out
}

// findCategory matches an enabled category by id or display name
func findCategory(categories []entity.Category, value string) (entity.Category, bool) {
	value = strings.TrimSpace(value)
	for _, c := range categories {
		if strings.EqualFold(c.ID, value) || strings.EqualFold(c.Name, value) {
			return c, true
		}
	}
	return entity.Category{}, false
}

// GSTRates returns the configured GST percentages
func (s *CustomizationService) GSTRates() []int {
	return s.Tax().GSTRates
}

// TotalsPolicy maps billing settings onto the totals calculation
func (s *CustomizationService) TotalsPolicy() entity.TotalsPolicy {
	b := s.Billing()
	mode := money.RoundMode(b.RoundOffTo)
	if !b.EnableRoundOff {
		mode = money.RoundNone
	}
	return entity.TotalsPolicy{RoundMode: mode, ApplyDiscount: b.EnableDiscount}
}

// CurrencyFormat maps appearance settings onto amount formatting
func (s *CustomizationService) CurrencyFormat() money.Format {
	a := s.Appearance()
	return money.Format{
		Symbol:   a.CurrencySymbol,
		After:    a.CurrencyPosition == "after",
		Indian:   a.NumberFormat != "international",
		Decimals: 2,
	}
}

func sectionPtr(st *entity.Settings, section enum.Section) interface{} {
	switch section {
	case enum.SectionInvoice:
		return &st.Invoice
	case enum.SectionBilling:
		return &st.Billing
	case enum.SectionProductFields:
		return &st.ProductFields
	case enum.SectionCustomerFields:
		return &st.CustomerFields
	case enum.SectionDashboard:
		return &st.Dashboard
	case enum.SectionTableColumns:
		return &st.TableColumns
	case enum.SectionAppearance:
		return &st.Appearance
	case enum.SectionTax:
		return &st.Tax
	case enum.SectionNotifications:
		return &st.Notifications
	case enum.SectionPaymentModes:
		return &st.PaymentModes
	case enum.SectionUnits:
		return &st.Units
	case enum.SectionCategories:
		return &st.Categories
	}
	panic("unhandled settings section " + string(section))
}

func resetSection(st *entity.Settings, section enum.Section) {
	defaults := entity.DefaultSettings()
	reflect.ValueOf(sectionPtr(st, section)).Elem().
		Set(reflect.ValueOf(sectionPtr(&defaults, section)).Elem())
}

// sectionCopy returns a deep copy of one section as a value
func sectionCopy(st entity.Settings, section enum.Section) interface{} {
	clone := cloneSettings(st)
	return reflect.ValueOf(sectionPtr(&clone, section)).Elem().Interface()
}

// cloneSettings deep-copies the tree through its JSON form; every section is plain data
func cloneSettings(st entity.Settings) entity.Settings {
	raw, err := json.Marshal(st)
	if err != nil {
		panic(err)
	}
	var out entity.Settings
	if err := json.Unmarshal(raw, &out); err != nil {
		panic(err)
	}
	return out
}

func toFieldMap(v interface{}) (map[string]json.RawMessage, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

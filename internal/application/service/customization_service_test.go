package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/sangkips/billing-api/internal/domain/entity"
	"github.com/sangkips/billing-api/internal/domain/enum"
	"github.com/sangkips/billing-api/internal/infrastructure/repository"
	"github.com/sangkips/billing-api/pkg/apperror"
	"github.com/sangkips/billing-api/pkg/logger"
	"github.com/sangkips/billing-api/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func errCode(t *testing.T, err error) int {
	t.Helper()
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr), "expected an AppError, got %v", err)
	return appErr.Code
}

func patch(kv map[string]string) map[string]json.RawMessage {
	out := make(map[string]json.RawMessage, len(kv))
	for k, v := range kv {
		out[k] = json.RawMessage(v)
	}
	return out
}

func TestCustomizationService_Defaults(t *testing.T) {
	f := newFixture(t)

	all := f.settings.All()
	assert.Equal(t, entity.DefaultSettings(), all)
	assert.Len(t, f.settings.EnabledPaymentModes(), 5)
	assert.Equal(t, []int{0, 5, 12, 18, 28}, f.settings.GSTRates())
	assert.Equal(t, entity.TotalsPolicy{RoundMode: money.RoundNearest, ApplyDiscount: true}, f.settings.TotalsPolicy())

	mode, ok := f.settings.DefaultPaymentMode()
	require.True(t, ok)
	assert.Equal(t, "cash", mode.ID)
}

func TestCustomizationService_UpdateSectionIsolation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	before := f.settings.All()

	got, err := f.settings.UpdateSection(ctx, enum.SectionBilling, patch(map[string]string{
		"round_off_to":     `"up"`,
		"quick_quantities": `[1, 3]`,
	}))
	require.NoError(t, err)

	billing, ok := got.(entity.BillingSettings)
	require.True(t, ok)
	assert.Equal(t, "up", billing.RoundOffTo)
	assert.Equal(t, []int{1, 3}, billing.QuickQuantities)

	after := f.settings.All()
	want := before.Billing
	want.RoundOffTo = "up"
	want.QuickQuantities = []int{1, 3}
	assert.Equal(t, want, after.Billing)

	after.Billing = before.Billing
	assert.Equal(t, before, after, "only the patched section may change")
	assert.Equal(t, money.RoundUp, f.settings.TotalsPolicy().RoundMode)
}

func TestCustomizationService_UpdateSectionRejects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.settings.UpdateSection(ctx, enum.SectionTax, patch(map[string]string{"gst_rate": `5`}))
	assert.Equal(t, http.StatusBadRequest, errCode(t, err))

	_, err = f.settings.UpdateSection(ctx, enum.SectionTax, patch(map[string]string{"enable_gst": `null`}))
	assert.Equal(t, http.StatusBadRequest, errCode(t, err))

	_, err = f.settings.UpdateSection(ctx, enum.SectionInvoice, patch(map[string]string{"format": `"letter"`}))
	assert.Equal(t, http.StatusUnprocessableEntity, errCode(t, err))

	_, err = f.settings.UpdateSection(ctx, enum.SectionInvoice, patch(map[string]string{"show_logo": `"yes"`}))
	assert.Equal(t, http.StatusBadRequest, errCode(t, err))

	_, err = f.settings.UpdateSection(ctx, enum.Section("printer"), patch(map[string]string{}))
	assert.ErrorIs(t, err, apperror.ErrUnknownSection)

	assert.Equal(t, entity.DefaultSettings(), f.settings.All(), "rejected patches leave the tree untouched")
}

func TestCustomizationService_ResetSection(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.settings.UpdateSection(ctx, enum.SectionTax, patch(map[string]string{"gst_rates": `[5, 18]`}))
	require.NoError(t, err)
	_, err = f.settings.UpdateSection(ctx, enum.SectionBilling, patch(map[string]string{"enable_round_off": `false`}))
	require.NoError(t, err)

	got, err := f.settings.ResetSection(ctx, enum.SectionTax)
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultSettings().Tax, got)

	assert.False(t, f.settings.Billing().EnableRoundOff, "resetting tax must not touch billing")
	assert.Equal(t, money.RoundNone, f.settings.TotalsPolicy().RoundMode)

	all, err := f.settings.ResetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultSettings(), all)
}

func TestCustomizationService_GetSectionReturnsCopy(t *testing.T) {
	f := newFixture(t)

	got, err := f.settings.GetSection(enum.SectionPaymentModes)
	require.NoError(t, err)
	modes := got.(entity.PaymentModeSettings)
	modes.Modes[0].Enabled = false

	assert.True(t, f.settings.PaymentModes().Modes[0].Enabled)

	_, err = f.settings.GetSection(enum.Section("nope"))
	assert.ErrorIs(t, err, apperror.ErrUnknownSection)
}

func TestCustomizationService_PersistsAcrossRestart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.settings.UpdateSection(ctx, enum.SectionAppearance, patch(map[string]string{
		"currency_symbol":   `"Rs."`,
		"currency_position": `"after"`,
	}))
	require.NoError(t, err)

	reloaded, err := NewCustomizationService(ctx, repository.NewSettingsRepository(f.db), logger.Discard())
	require.NoError(t, err)
	assert.Equal(t, "Rs.", reloaded.Appearance().CurrencySymbol)
	assert.True(t, reloaded.CurrencyFormat().After)
	assert.Equal(t, entity.DefaultSettings().Billing, reloaded.Billing())
}

func TestCustomizationService_ResolvePaymentMode(t *testing.T) {
	f := newFixture(t)

	mode, err := f.settings.ResolvePaymentMode("bank transfer")
	require.NoError(t, err)
	assert.Equal(t, "bank", mode.ID)

	mode, err = f.settings.ResolvePaymentMode("")
	require.NoError(t, err)
	assert.Equal(t, "Cash", mode.Name)

	_, err = f.settings.ResolvePaymentMode("Cheque")
	assert.ErrorIs(t, err, apperror.ErrPaymentModeDisabled)
}

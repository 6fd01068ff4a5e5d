package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/sangkips/billing-api/internal/infrastructure/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileService_GetAndUpdate(t *testing.T) {
	f := newFixture(t)
	svc := NewProfileService(repository.NewSettingsRepository(f.db))
	ctx := context.Background()

	profile, err := svc.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Sri Lakshmi Stores", profile.BusinessName)

	name := " Sri Lakshmi Super Market "
	gstin := "33aabcs1234f1z5"
	profile, err = svc.UpdateProfile(ctx, &UpdateProfileInput{BusinessName: &name, GSTIN: &gstin})
	require.NoError(t, err)
	assert.Equal(t, "Sri Lakshmi Super Market", profile.BusinessName)
	assert.Equal(t, "33AABCS1234F1Z5", profile.GSTIN)
	assert.Equal(t, "Rajesh Kumar", profile.OwnerName, "omitted fields are kept")

	reloaded, err := svc.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, profile.BusinessName, reloaded.BusinessName)

	blank := " "
	badMobile := "12345"
	_, err = svc.UpdateProfile(ctx, &UpdateProfileInput{BusinessName: &blank, Mobile: &badMobile})
	assert.Equal(t, http.StatusUnprocessableEntity, errCode(t, err))
}

func TestProfileService_EmptyStore(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.db.Exec("DELETE FROM business_profile").Error)
	svc := NewProfileService(repository.NewSettingsRepository(f.db))

	profile, err := svc.GetProfile(context.Background())
	require.NoError(t, err)
	assert.Empty(t, profile.BusinessName)
}

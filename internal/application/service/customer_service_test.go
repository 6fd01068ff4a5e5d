package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/sangkips/billing-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerService_Create(t *testing.T) {
	f := newFixture(t)
	svc := NewCustomerService(f.customers)
	ctx := context.Background()

	customer, err := svc.CreateCustomer(ctx, &CreateCustomerInput{
		Name:   "Velu Agencies",
		Mobile: "9123456780",
		GSTIN:  "33aabcv1234f1z5",
	})
	require.NoError(t, err)
	assert.Equal(t, enum.CustomerTypeRetail, customer.Type)
	assert.Equal(t, "33AABCV1234F1Z5", customer.GSTIN)

	_, err = svc.CreateCustomer(ctx, &CreateCustomerInput{Name: "Dup", Mobile: "9123456780"})
	assert.Equal(t, http.StatusConflict, errCode(t, err))
}

func TestCustomerService_CreateValidation(t *testing.T) {
	f := newFixture(t)
	svc := NewCustomerService(f.customers)
	ctx := context.Background()

	cases := map[string]*CreateCustomerInput{
		"short mobile":   {Name: "A Shop", Mobile: "98765"},
		"bad gstin":      {Name: "A Shop", Mobile: "9000000001", GSTIN: "33ABCDE1234F1Z"},
		"gstin no Z":     {Name: "A Shop", Mobile: "9000000001", GSTIN: "33AABCV1234F1X5"},
		"unknown type":   {Name: "A Shop", Mobile: "9000000001", Type: enum.CustomerType("vip")},
		"negative limit": {Name: "A Shop", Mobile: "9000000001", CreditLimit: dec("-1")},
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.CreateCustomer(ctx, input)
			assert.Equal(t, http.StatusUnprocessableEntity, errCode(t, err))
		})
	}
}

func TestCustomerService_Update(t *testing.T) {
	f := newFixture(t)
	svc := NewCustomerService(f.customers)
	ctx := context.Background()

	credit := enum.CustomerTypeCredit
	limit := dec("20000")
	customer, err := svc.UpdateCustomer(ctx, &UpdateCustomerInput{ID: "C003", Type: &credit, CreditLimit: &limit})
	require.NoError(t, err)
	assert.Equal(t, enum.CustomerTypeCredit, customer.Type)
	assert.Equal(t, "9876543212", customer.Mobile)

	taken := "9876543210"
	_, err = svc.UpdateCustomer(ctx, &UpdateCustomerInput{ID: "C003", Mobile: &taken})
	assert.Equal(t, http.StatusConflict, errCode(t, err))

	_, err = svc.UpdateCustomer(ctx, &UpdateCustomerInput{ID: "C999"})
	assert.Equal(t, http.StatusNotFound, errCode(t, err))
}

func TestCustomerService_Stats(t *testing.T) {
	f := newFixture(t)
	svc := NewCustomerService(f.customers)

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 2, stats.ByType[enum.CustomerTypeWholesale])
	assert.Equal(t, 1, stats.ByType[enum.CustomerTypeRetail])
	assert.Equal(t, 2, stats.ByType[enum.CustomerTypeCredit])
	assert.True(t, dec("69000").Equal(stats.TotalOutstanding), stats.TotalOutstanding.String())
	assert.Equal(t, 4, stats.WithOutstanding)
}

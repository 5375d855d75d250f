package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCreateService(t *testing.T) {
	env := setupBillingEnv()

	created, err := env.catalog.CreateService("Gas", "Natural gas", "m3",
		decimal.RequireFromString("7.30"), true)
	assert.NoError(t, err)
	assert.NotZero(t, created.ID)

	_, err = env.catalog.CreateService("Free", "", "unit", decimal.Zero, true)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestActiveServicesExcludesRetired(t *testing.T) {
	env := setupBillingEnv()

	err := env.catalog.DeactivateService(env.electricity.ID)
	assert.NoError(t, err)

	active, err := env.catalog.ActiveServices()
	assert.NoError(t, err)
	assert.Len(t, active, 1)
	assert.Equal(t, "Cold Water", active[0].Name)

	// Retired entries stay resolvable for historical receipt items.
	service, err := env.catalog.GetService(env.electricity.ID)
	assert.NoError(t, err)
	assert.False(t, service.IsActive)

	all, err := env.catalog.AllServices()
	assert.NoError(t, err)
	assert.Len(t, all, 2)
	assert.True(t, all[0].IsActive)
}

func TestUpdateService(t *testing.T) {
	env := setupBillingEnv()

	updated, err := env.catalog.UpdateService(env.electricity.ID,
		"Electricity", "Day tariff", "kWh", decimal.RequireFromString("5.10"), true)
	assert.NoError(t, err)
	assert.Equal(t, "5.10", updated.Rate.StringFixed(2))
	assert.Equal(t, "Day tariff", updated.Description)

	_, err = env.catalog.UpdateService(9999, "x", "", "u", decimal.NewFromInt(1), true)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestDeactivateUnknownService(t *testing.T) {
	env := setupBillingEnv()

	err := env.catalog.DeactivateService(9999)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wisemotors/compare-engine/internal/catalog"
	"github.com/wisemotors/compare-engine/internal/vehicle"
)

func mustField(t *testing.T, key string) catalog.Field {
	t.Helper()
	f, ok := catalog.Lookup(key)
	require.True(t, ok, "catalog field %s", key)
	return f
}

func TestCompareLowerIsBetterPicksCheapest(t *testing.T) {
	// Scenario: an expensive electric against a cheap gasoline sedan on
	// price; the sedan must win.
	vehicles := []vehicle.Vehicle{
		{ID: "ev", Price: 380_000_000, FuelType: vehicle.FuelElectric},
		{ID: "sedan", Price: 90_000_000, FuelType: vehicle.FuelGasoline, BodyType: vehicle.BodySedan},
	}

	results := Compare(vehicles, []catalog.Field{mustField(t, "price")})
	require.Len(t, results, 1)

	require.NotNil(t, results[0].WinnerIndex)
	assert.Equal(t, 1, *results[0].WinnerIndex)
}

func TestCompareDisplayOnlyFieldHasNoWinner(t *testing.T) {
	vehicles := []vehicle.Vehicle{
		{ID: "ev", Price: 380_000_000, FuelType: vehicle.FuelElectric},
		{ID: "sedan", Price: 90_000_000, FuelType: vehicle.FuelGasoline},
	}

	results := Compare(vehicles, []catalog.Field{mustField(t, "fuelType")})
	require.Len(t, results, 1)

	assert.Nil(t, results[0].WinnerIndex)
	assert.Equal(t, []string{"Electric", "Gasoline"}, results[0].DisplayValues)
}

func TestCompareTieMeansNoWinner(t *testing.T) {
	// Two vehicles share the single best power figure; a naive index-of-max
	// would hand the win to index 0.
	spec := func(power float64) vehicle.SpecDocument {
		return vehicle.SpecDocument{"performance": {"maxPower": power}}
	}
	vehicles := []vehicle.Vehicle{
		{ID: "a", Price: 1, FuelType: vehicle.FuelGasoline, Specs: spec(450)},
		{ID: "b", Price: 1, FuelType: vehicle.FuelGasoline, Specs: spec(450)},
		{ID: "c", Price: 1, FuelType: vehicle.FuelGasoline, Specs: spec(300)},
	}

	results := Compare(vehicles, []catalog.Field{mustField(t, "maxPower")})
	require.Len(t, results, 1)

	assert.Nil(t, results[0].WinnerIndex)
}

func TestCompareAllMissingMeansNoWinner(t *testing.T) {
	vehicles := []vehicle.Vehicle{
		{ID: "a", Price: 1, FuelType: vehicle.FuelGasoline},
		{ID: "b", Price: 1, FuelType: vehicle.FuelGasoline},
	}

	results := Compare(vehicles, []catalog.Field{mustField(t, "maxPower")})
	require.Len(t, results, 1)

	assert.Nil(t, results[0].WinnerIndex)
	assert.Equal(t, []string{"—", "—"}, results[0].DisplayValues)
}

func TestCompareMissingValueDoesNotBlockWinner(t *testing.T) {
	vehicles := []vehicle.Vehicle{
		{ID: "a", Price: 1, FuelType: vehicle.FuelGasoline,
			Specs: vehicle.SpecDocument{"performance": {"maxPower": float64(300)}}},
		{ID: "b", Price: 1, FuelType: vehicle.FuelGasoline},
	}

	results := Compare(vehicles, []catalog.Field{mustField(t, "maxPower")})
	require.NotNil(t, results[0].WinnerIndex)
	assert.Equal(t, 0, *results[0].WinnerIndex)
}

func TestCompareBooleanWinners(t *testing.T) {
	withBluetooth := vehicle.SpecDocument{"technology": {"bluetooth": true}}
	withoutBluetooth := vehicle.SpecDocument{"technology": {"bluetooth": false}}

	tests := []struct {
		name     string
		vehicles []vehicle.Vehicle
		winner   *int
	}{
		{
			name: "exactly one vehicle has the feature",
			vehicles: []vehicle.Vehicle{
				{ID: "a", Price: 1, FuelType: vehicle.FuelGasoline, Specs: withoutBluetooth},
				{ID: "b", Price: 1, FuelType: vehicle.FuelGasoline, Specs: withBluetooth},
			},
			winner: intPtr(1),
		},
		{
			name: "both have the feature",
			vehicles: []vehicle.Vehicle{
				{ID: "a", Price: 1, FuelType: vehicle.FuelGasoline, Specs: withBluetooth},
				{ID: "b", Price: 1, FuelType: vehicle.FuelGasoline, Specs: withBluetooth},
			},
			winner: nil,
		},
		{
			name: "neither has the feature",
			vehicles: []vehicle.Vehicle{
				{ID: "a", Price: 1, FuelType: vehicle.FuelGasoline, Specs: withoutBluetooth},
				{ID: "b", Price: 1, FuelType: vehicle.FuelGasoline, Specs: withoutBluetooth},
			},
			winner: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := Compare(tt.vehicles, []catalog.Field{mustField(t, "bluetooth")})
			require.Len(t, results, 1)
			assert.Equal(t, tt.winner, results[0].WinnerIndex)
		})
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    any
		expected string
	}{
		{"missing renders unavailable glyph", "maxPower", nil, "—"},
		{"boolean true renders check", "bluetooth", true, "✓"},
		{"boolean false renders cross", "bluetooth", false, "✗"},
		{"number gets unit suffix", "maxPower", float64(509), "509 CV"},
		{"decimal keeps precision", "cityConsumption", 4.5, "4.5 L/100km"},
		{"price gets currency prefix", "price", float64(90_000_000), "$90000000"},
		{"zero is a real value, not missing", "maxPower", float64(0), "0 CV"},
		{"plain string passes through", "transmission", "Automatic", "Automatic"},
		{"blank string renders unavailable", "transmission", "  ", "—"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatValue(mustField(t, tt.field), tt.value))
		})
	}
}

func TestCompareResultsAreFreshPerCall(t *testing.T) {
	vehicles := []vehicle.Vehicle{
		{ID: "a", Price: 100, FuelType: vehicle.FuelGasoline},
		{ID: "b", Price: 200, FuelType: vehicle.FuelGasoline},
	}
	fields := []catalog.Field{mustField(t, "price")}

	first := Compare(vehicles, fields)
	second := Compare(vehicles, fields)

	assert.Equal(t, first, second)
	first[0].DisplayValues[0] = "mutated"
	assert.NotEqual(t, first[0].DisplayValues[0], second[0].DisplayValues[0])
}

func intPtr(i int) *int { return &i }

package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wisemotors/compare-engine/internal/catalog"
	"github.com/wisemotors/compare-engine/internal/vehicle"
)

func TestAnalyzeRejectsTooFewVehicles(t *testing.T) {
	e := New()

	tests := []struct {
		name     string
		vehicles []vehicle.Vehicle
	}{
		{"no vehicles", nil},
		{"single vehicle", []vehicle.Vehicle{{ID: "a", Price: 1, FuelType: vehicle.FuelGasoline}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := e.Analyze(context.Background(), tt.vehicles, nil)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, ErrTooFewVehicles)
		})
	}
}

func TestAnalyzeRejectsIncompleteVehicles(t *testing.T) {
	e := New()
	valid := vehicle.Vehicle{ID: "ok", Price: 100, FuelType: vehicle.FuelGasoline}

	tests := []struct {
		name    string
		broken  vehicle.Vehicle
		missing string
	}{
		{"missing id", vehicle.Vehicle{Price: 100, FuelType: vehicle.FuelGasoline}, "id"},
		{"missing price", vehicle.Vehicle{ID: "x", FuelType: vehicle.FuelGasoline}, "price"},
		{"missing fuel type", vehicle.Vehicle{ID: "x", Price: 100}, "fuelType"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := e.Analyze(context.Background(), []vehicle.Vehicle{valid, tt.broken}, nil)
			assert.Nil(t, result)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.missing)
		})
	}
}

func TestAnalyzeProducesCompleteResult(t *testing.T) {
	e := New()
	vehicles := []vehicle.Vehicle{
		{
			ID: "ev", Brand: "Kia", Model: "EV6", Year: 2024,
			Price: 380_000_000, FuelType: vehicle.FuelElectric, BodyType: vehicle.BodySUV,
			Specs: vehicle.SpecDocument{"performance": {"maxPower": float64(325)}},
		},
		{
			ID: "sedan", Brand: "Toyota", Model: "Corolla", Year: 2023,
			Price: 90_000_000, FuelType: vehicle.FuelGasoline, BodyType: vehicle.BodySedan,
		},
	}

	result, err := e.Analyze(context.Background(), vehicles, nil)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "deterministic", result.Source)
	assert.Len(t, result.Comparisons, len(catalog.Fields()), "empty field list selects the whole catalog")
	assert.Len(t, result.Radar, 6)
	assert.Len(t, result.Analysis, 2)
	assert.Len(t, result.Profiles, 4)
	assert.Len(t, result.Ranking, 2)
}

func TestAnalyzeHonorsFieldSelection(t *testing.T) {
	e := New()
	vehicles := []vehicle.Vehicle{
		{ID: "a", Price: 100, FuelType: vehicle.FuelGasoline},
		{ID: "b", Price: 200, FuelType: vehicle.FuelGasoline},
	}

	result, err := e.Analyze(context.Background(), vehicles, catalog.Select([]string{"price", "maxPower"}))
	require.NoError(t, err)

	require.Len(t, result.Comparisons, 2)
	assert.Equal(t, "price", result.Comparisons[0].Field.Key)
	assert.Equal(t, "maxPower", result.Comparisons[1].Field.Key)
}

func TestRankingOrdersByScoreBestFirst(t *testing.T) {
	entries := ranking([]AnalysisResult{
		{VehicleID: "mid", Score: 75},
		{VehicleID: "top", Score: 90},
		{VehicleID: "low", Score: 60},
	})

	require.Len(t, entries, 3)
	assert.Equal(t, RankingEntry{Position: 1, VehicleID: "top", Score: 90}, entries[0])
	assert.Equal(t, RankingEntry{Position: 2, VehicleID: "mid", Score: 75}, entries[1])
	assert.Equal(t, RankingEntry{Position: 3, VehicleID: "low", Score: 60}, entries[2])
}

func TestRankingEqualScoresKeepInputOrder(t *testing.T) {
	entries := ranking([]AnalysisResult{
		{VehicleID: "first", Score: 80},
		{VehicleID: "second", Score: 80},
	})

	require.Len(t, entries, 2)
	assert.Equal(t, "first", entries[0].VehicleID)
	assert.Equal(t, 1, entries[0].Position)
	assert.Equal(t, "second", entries[1].VehicleID)
	assert.Equal(t, 2, entries[1].Position)
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	e := New()
	vehicles := []vehicle.Vehicle{
		{ID: "a", Price: 90_000_000, FuelType: vehicle.FuelGasoline, BodyType: vehicle.BodyHatchback},
		{ID: "b", Price: 380_000_000, FuelType: vehicle.FuelElectric, BodyType: vehicle.BodySUV},
	}

	first, err := e.Analyze(context.Background(), vehicles, nil)
	require.NoError(t, err)
	second, err := e.Analyze(context.Background(), vehicles, nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

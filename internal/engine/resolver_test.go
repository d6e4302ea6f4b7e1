package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wisemotors/compare-engine/internal/vehicle"
)

func TestResolveTopLevelAttributes(t *testing.T) {
	v := vehicle.Vehicle{
		ID:       "v1",
		Brand:    "Mazda",
		Model:    "CX-5",
		Year:     2024,
		Price:    150_000_000,
		FuelType: vehicle.FuelGasoline,
		BodyType: vehicle.BodySUV,
	}

	tests := []struct {
		name     string
		key      string
		expected any
	}{
		{"brand", "brand", "Mazda"},
		{"model", "model", "CX-5"},
		{"year", "year", 2024},
		{"price", "price", float64(150_000_000)},
		{"fuelType", "fuelType", "Gasoline"},
		{"bodyType", "bodyType", "SUV"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Resolve(&v, tt.key))
		})
	}
}

func TestResolveMissingTopLevelAttributesAreNil(t *testing.T) {
	v := vehicle.Vehicle{ID: "v1"}

	assert.Nil(t, Resolve(&v, "brand"))
	assert.Nil(t, Resolve(&v, "year"))
	assert.Nil(t, Resolve(&v, "price"))
	assert.Nil(t, Resolve(&v, "fuelType"))
	assert.Nil(t, Resolve(&v, "bodyType"))
}

func TestResolveFuelTypeRouting(t *testing.T) {
	tests := []struct {
		name     string
		vehicle  vehicle.Vehicle
		key      string
		expected any
	}{
		{
			name: "electric power lives under performance",
			vehicle: vehicle.Vehicle{
				ID: "ev", FuelType: vehicle.FuelElectric, Price: 1,
				Specs: vehicle.SpecDocument{"performance": {"maxPower": float64(509)}},
			},
			key:      "maxPower",
			expected: float64(509),
		},
		{
			name: "combustion power lives under combustion",
			vehicle: vehicle.Vehicle{
				ID: "gas", FuelType: vehicle.FuelGasoline, Price: 1,
				Specs: vehicle.SpecDocument{"combustion": {"maxPower": float64(300)}},
			},
			key:      "maxPower",
			expected: float64(300),
		},
		{
			name: "declared fuel type does not restrict the search",
			vehicle: vehicle.Vehicle{
				ID: "mislabeled", FuelType: vehicle.FuelGasoline, Price: 1,
				Specs: vehicle.SpecDocument{"electric": {"maxPower": float64(400)}},
			},
			key:      "maxPower",
			expected: float64(400),
		},
		{
			name: "first candidate location wins",
			vehicle: vehicle.Vehicle{
				ID: "both", FuelType: vehicle.FuelHybrid, Price: 1,
				Specs: vehicle.SpecDocument{
					"performance": {"maxPower": float64(200)},
					"hybrid":      {"maxPower": float64(180)},
				},
			},
			key:      "maxPower",
			expected: float64(200),
		},
		{
			name: "hybrid consumption found under hybrid section",
			vehicle: vehicle.Vehicle{
				ID: "hy", FuelType: vehicle.FuelHybrid, Price: 1,
				Specs: vehicle.SpecDocument{"hybrid": {"cityConsumption": 4.5}},
			},
			key:      "cityConsumption",
			expected: 4.5,
		},
		{
			name:     "no candidate location present",
			vehicle:  vehicle.Vehicle{ID: "empty", FuelType: vehicle.FuelDiesel, Price: 1},
			key:      "maxPower",
			expected: nil,
		},
		{
			name:     "unknown key",
			vehicle:  vehicle.Vehicle{ID: "v", Price: 1},
			key:      "antigravity",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Resolve(&tt.vehicle, tt.key))
		})
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	v := vehicle.Vehicle{
		ID: "ev", FuelType: vehicle.FuelElectric, Price: 380_000_000,
		Specs: vehicle.SpecDocument{"performance": {"maxPower": float64(509)}},
	}

	first := Resolve(&v, "maxPower")
	second := Resolve(&v, "maxPower")
	assert.Equal(t, first, second)
	assert.Equal(t, float64(509), second)
}

func TestResolveFloatCoercion(t *testing.T) {
	tests := []struct {
		name     string
		raw      any
		expected float64
		ok       bool
	}{
		{"float64", float64(42.5), 42.5, true},
		{"int", 42, 42, true},
		{"numeric string", "42.5", 42.5, true},
		{"padded numeric string", " 300 ", 300, true},
		{"non-numeric string", "fast", 0, false},
		{"bool", true, 0, false},
		{"nil", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := vehicle.Vehicle{
				ID: "v", Price: 1, FuelType: vehicle.FuelGasoline,
				Specs: vehicle.SpecDocument{"performance": {"topSpeed": tt.raw}},
			}
			got, ok := ResolveFloat(&v, "topSpeed")
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}

func TestResolveBoolCoercion(t *testing.T) {
	tests := []struct {
		name     string
		raw      any
		expected bool
	}{
		{"true bool", true, true},
		{"false bool", false, false},
		{"string true", "true", true},
		{"string yes", "Yes", true},
		{"string one", "1", true},
		{"string no", "no", false},
		{"number one", float64(1), true},
		{"number zero", float64(0), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := vehicle.Vehicle{
				ID: "v", Price: 1, FuelType: vehicle.FuelGasoline,
				Specs: vehicle.SpecDocument{"technology": {"bluetooth": tt.raw}},
			}
			assert.Equal(t, tt.expected, ResolveBool(&v, "bluetooth"))
		})
	}
}

package engine

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/wisemotors/compare-engine/internal/catalog"
	"github.com/wisemotors/compare-engine/internal/vehicle"
)

// Resolve returns the single canonical value for a metric on a vehicle, or
// nil when no candidate location holds one. Top-level attributes resolve
// directly; everything else walks the catalog's candidate locations in order
// and takes the first hit. Absence is always nil, never a zero value.
func Resolve(v *vehicle.Vehicle, key string) any {
	switch key {
	case "brand":
		if v.Brand == "" {
			return nil
		}
		return v.Brand
	case "model":
		if v.Model == "" {
			return nil
		}
		return v.Model
	case "year":
		if v.Year == 0 {
			return nil
		}
		return v.Year
	case "price":
		if v.Price <= 0 {
			return nil
		}
		return v.Price
	case "fuelType":
		if v.FuelType == "" {
			return nil
		}
		return string(v.FuelType)
	case "bodyType":
		if v.BodyType == "" {
			return nil
		}
		return string(v.BodyType)
	}

	field, ok := catalog.Lookup(key)
	if !ok {
		return nil
	}

	for _, location := range field.Locations {
		if value, found := v.Specs.Lookup(location); found {
			return value
		}
	}
	return nil
}

// ResolveFloat resolves a metric and coerces it to a float64. Spec documents
// arrive from JSON, so numbers may be float64, int, json.Number, or a
// numeric string.
func ResolveFloat(v *vehicle.Vehicle, key string) (float64, bool) {
	return toFloat(Resolve(v, key))
}

// ResolveBool resolves a metric and coerces it to a boolean presence flag.
func ResolveBool(v *vehicle.Vehicle, key string) bool {
	return toBool(Resolve(v, key))
}

func toFloat(value any) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func toBool(value any) bool {
	switch b := value.(type) {
	case bool:
		return b
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "yes", "1":
			return true
		}
		return false
	default:
		if f, ok := toFloat(value); ok {
			return f != 0
		}
		return false
	}
}

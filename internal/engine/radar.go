package engine

import (
	"github.com/wisemotors/compare-engine/internal/vehicle"
)

// RadarAxis is one of the six synthesized comparison axes, carrying one
// 0-100 score per compared vehicle.
type RadarAxis struct {
	Name   string    `json:"name"`
	Scores []float64 `json:"scores"`
}

// Axis formulas blend several raw fields with fixed weights and fall back to
// fixed constants when inputs are missing, so a sparse document still lands
// inside [0, 100] instead of poisoning the composite with nulls.
const (
	powerCeiling    = 500.0 // CV
	topSpeedCeiling = 250.0 // km/h

	defaultPower        = 100.0
	defaultAcceleration = 15.0  // s, 0-100 km/h
	defaultTopSpeed     = 150.0 // km/h

	fuelCeiling        = 15.0 // L/100km
	defaultFuelUse     = 10.0 // L/100km
	electricCeiling    = 30.0 // kWh/100km
	defaultElectricCty = 20.0 // kWh/100km
	defaultElectricHwy = 25.0 // kWh/100km

	priceDivisor    = 10_000_000.0
	valueBonusPerFeature = 4.0
)

var technologyChecklist = []string{"bluetooth", "appleCarplay", "navigationSystem", "wirelessCharging", "digitalCluster"}
var safetyChecklist = []string{"absBrakes", "stabilityControl", "laneAssist", "blindSpotMonitor", "rearCamera"}
var comfortChecklist = []string{"airConditioning", "leatherSeats", "sunroof", "heatedSeats"}
var valueChecklist = []string{"bluetooth", "airConditioning", "absBrakes", "rearCamera", "airbags"}

// BuildRadarProfile computes the six fixed radar axes for a set of vehicles.
// Every score is clamped to [0, 100].
func BuildRadarProfile(vehicles []vehicle.Vehicle) []RadarAxis {
	axes := []struct {
		name  string
		score func(*vehicle.Vehicle) float64
	}{
		{"performance", performanceScore},
		{"technology", func(v *vehicle.Vehicle) float64 { return checklistScore(v, "technologyScore", technologyChecklist) }},
		{"safety", func(v *vehicle.Vehicle) float64 { return checklistScore(v, "safetyScore", safetyChecklist) }},
		{"comfort", func(v *vehicle.Vehicle) float64 { return checklistScore(v, "comfortScore", comfortChecklist) }},
		{"efficiency", efficiencyScore},
		{"value", valueScore},
	}

	profile := make([]RadarAxis, 0, len(axes))
	for _, axis := range axes {
		scores := make([]float64, len(vehicles))
		for i := range vehicles {
			scores[i] = clamp(axis.score(&vehicles[i]), 0, 100)
		}
		profile = append(profile, RadarAxis{Name: axis.name, Scores: scores})
	}
	return profile
}

// performanceScore blends power (40%), 0-100 acceleration (35%, inverted so
// faster is higher) and top speed (25%).
func performanceScore(v *vehicle.Vehicle) float64 {
	power := resolveFloatOr(v, "maxPower", defaultPower)
	accel := resolveFloatOr(v, "acceleration0To100", defaultAcceleration)
	top := resolveFloatOr(v, "topSpeed", defaultTopSpeed)

	powerScore := clamp(power/powerCeiling*100, 0, 100)
	accelScore := clamp((20-accel)/15*100, 0, 100)
	topScore := clamp(top/topSpeedCeiling*100, 0, 100)

	return 0.40*powerScore + 0.35*accelScore + 0.25*topScore
}

// checklistScore prefers a pre-computed wisemetrics composite when the
// document carries one and otherwise counts truthy checklist features,
// scaled to 0-100.
func checklistScore(v *vehicle.Vehicle, scoreKey string, checklist []string) float64 {
	if precomputed, ok := ResolveFloat(v, scoreKey); ok {
		return precomputed
	}

	present := 0
	for _, key := range checklist {
		if ResolveBool(v, key) {
			present++
		}
	}
	return float64(present) / float64(len(checklist)) * 100
}

// efficiencyScore branches on the drivetrain because electric consumption
// (kWh/100km) and fuel consumption (L/100km) are not comparable on one
// scale. Lower consumption scores higher in both branches.
func efficiencyScore(v *vehicle.Vehicle) float64 {
	if v.FuelType.IsElectric() {
		city := resolveFloatOr(v, "electricConsumptionCity", defaultElectricCty)
		highway := resolveFloatOr(v, "electricConsumptionHighway", defaultElectricHwy)
		avg := (city + highway) / 2
		return (electricCeiling - avg) / electricCeiling * 100
	}

	city := resolveFloatOr(v, "cityConsumption", defaultFuelUse)
	highway := resolveFloatOr(v, "highwayConsumption", defaultFuelUse)
	avg := (city + highway) / 2
	return (fuelCeiling - avg) / fuelCeiling * 100
}

// valueScore starts from a price-based base and adds up to 20 bonus points
// for a small equipment checklist, 4 points per present feature.
func valueScore(v *vehicle.Vehicle) float64 {
	base := 100 - v.Price/priceDivisor
	if base < 0 {
		base = 0
	}

	bonus := 0.0
	for _, key := range valueChecklist {
		if key == "airbags" {
			if n, ok := ResolveFloat(v, "airbags"); ok && n > 0 {
				bonus += valueBonusPerFeature
			}
			continue
		}
		if ResolveBool(v, key) {
			bonus += valueBonusPerFeature
		}
	}

	return base + bonus
}

func resolveFloatOr(v *vehicle.Vehicle, key string, fallback float64) float64 {
	if value, ok := ResolveFloat(v, key); ok {
		return value
	}
	return fallback
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

package engine

import (
	"fmt"
	"math"

	"github.com/wisemotors/compare-engine/internal/vehicle"
)

const (
	maxPros = 4
	maxCons = 3

	prestigePriceThreshold = 300_000_000.0
	valuePriceThreshold    = 100_000_000.0
)

// AnalysisResult is the deterministic pros/cons narrative for one vehicle,
// produced when no externally-computed analysis is available.
type AnalysisResult struct {
	VehicleID      string   `json:"vehicleId"`
	Pros           []string `json:"pros"`
	Cons           []string `json:"cons"`
	Recommendation string   `json:"recommendation"`
	Score          int      `json:"score"`
}

// draft is the accumulator threaded through the scoring rules. Quantified,
// vehicle-specific reasons are appended before generic ones so the pros/cons
// caps keep the most informative items.
type draft struct {
	score float64
	pros  []string
	cons  []string
}

// scoringRule is one pure step of the narrative pipeline. Rules are applied
// in a fixed order and can be tested and reordered independently.
type scoringRule func(*vehicle.Vehicle, draft) draft

var analysisRules = []scoringRule{
	fuelTypeRule,
	bodyTypeRule,
	priceTierRule,
}

// GenerateFallbackAnalysis runs the rule pipeline for each vehicle. Any
// unexpected condition degrades to the fuel-type base narrative; a vehicle
// is never omitted from the result.
func GenerateFallbackAnalysis(vehicles []vehicle.Vehicle) []AnalysisResult {
	results := make([]AnalysisResult, 0, len(vehicles))
	for i := range vehicles {
		v := &vehicles[i]

		d := draft{}
		for _, rule := range analysisRules {
			d = rule(v, d)
		}

		if len(d.pros) > maxPros {
			d.pros = d.pros[:maxPros]
		}
		if len(d.cons) > maxCons {
			d.cons = d.cons[:maxCons]
		}

		score := int(math.Round(clamp(d.score, 0, 100)))
		results = append(results, AnalysisResult{
			VehicleID:      v.ID,
			Pros:           d.pros,
			Cons:           d.cons,
			Recommendation: recommendation(v, score),
			Score:          score,
		})
	}
	return results
}

// fuelTypeRule sets the base score and the base narrative. Numeric call-outs
// are interpolated only when the raw value resolves; a generic phrase stands
// in otherwise, never a placeholder.
func fuelTypeRule(v *vehicle.Vehicle, d draft) draft {
	switch {
	case v.FuelType.IsElectric():
		d.score = 85
		if r, ok := ResolveFloat(v, "electricRange"); ok {
			d.pros = append(d.pros, fmt.Sprintf("Electric range of %.0f km on a full charge", r))
		} else {
			d.pros = append(d.pros, "Generous electric range for daily driving")
		}
		d.pros = append(d.pros,
			"Zero tailpipe emissions",
			"Low charging and maintenance costs")
		d.cons = append(d.cons,
			"Depends on charging infrastructure",
			"Longer stops on road trips")

	case v.FuelType == vehicle.FuelHybrid || v.FuelType == vehicle.FuelPlugInHybrid:
		d.score = 78
		if c, ok := ResolveFloat(v, "cityConsumption"); ok {
			d.pros = append(d.pros, fmt.Sprintf("City consumption of just %.1f L/100km", c))
		} else {
			d.pros = append(d.pros, "Excellent combined fuel economy")
		}
		d.pros = append(d.pros, "Electric assistance in stop-and-go traffic")
		d.cons = append(d.cons, "More complex drivetrain to maintain")

	default:
		d.score = 72
		if v.Price > 0 {
			d.pros = append(d.pros, fmt.Sprintf("Accessible price point of %.0f million", v.Price/1_000_000))
		} else {
			d.pros = append(d.pros, "Competitive purchase price")
		}
		d.pros = append(d.pros, "Proven, widely serviceable drivetrain")
		if c, ok := ResolveFloat(v, "cityConsumption"); ok {
			d.cons = append(d.cons, fmt.Sprintf("City consumption of %.1f L/100km", c))
		} else {
			d.cons = append(d.cons, "Higher fuel costs than electrified rivals")
		}
		d.cons = append(d.cons, "Tailpipe emissions")
	}
	return d
}

// bodyTypeRule layers body-style traits on top of the fuel-type base.
func bodyTypeRule(v *vehicle.Vehicle, d draft) draft {
	switch v.BodyType {
	case vehicle.BodySport:
		d.score += 5
		if a, ok := ResolveFloat(v, "acceleration0To100"); ok {
			d.pros = append(d.pros, fmt.Sprintf("0-100 km/h in %.1f seconds", a))
		} else {
			d.pros = append(d.pros, "Performance-focused chassis and tuning")
		}
		d.cons = append(d.cons, "Limited everyday practicality")
	case vehicle.BodySUV:
		d.score += 3
		d.pros = append(d.pros, "Versatile cabin and cargo space")
		d.cons = append(d.cons, "Size and weight work against efficiency")
	case vehicle.BodySedan:
		d.score += 2
		d.pros = append(d.pros, "Comfortable, composed ride")
	}
	return d
}

// priceTierRule adjusts for market positioning.
func priceTierRule(v *vehicle.Vehicle, d draft) draft {
	switch {
	case v.Price > prestigePriceThreshold:
		d.score -= 5
		d.pros = append(d.pros, "Premium positioning and equipment")
		d.cons = append(d.cons, "High purchase price")
	case v.Price > 0 && v.Price < valuePriceThreshold:
		d.score += 8
		d.pros = append(d.pros, "Strong value for money")
	}
	return d
}

// recommendation assembles the closing sentence from the score tier and the
// vehicle's standout attribute, so different vehicles read differently
// without any randomness.
func recommendation(v *vehicle.Vehicle, score int) string {
	name := v.DisplayName()
	strength := standoutStrength(v)

	switch {
	case score >= 85:
		return fmt.Sprintf("The %s is an outstanding choice, led by %s.", name, strength)
	case score >= 75:
		return fmt.Sprintf("The %s is a well-rounded pick; %s stands out.", name, strength)
	case score >= 65:
		return fmt.Sprintf("The %s is a sensible option if %s matters most to you.", name, strength)
	default:
		return fmt.Sprintf("The %s trades polish for price; consider it when %s is the priority.", name, strength)
	}
}

func standoutStrength(v *vehicle.Vehicle) string {
	switch {
	case v.FuelType.IsElectric():
		return "its low running costs"
	case v.FuelType.IsElectrified():
		return "its fuel efficiency"
	case v.BodyType == vehicle.BodySport:
		return "its performance"
	case v.BodyType == vehicle.BodySUV || v.BodyType == vehicle.BodyPickup:
		return "its practicality"
	case v.Price > 0 && v.Price < valuePriceThreshold:
		return "its value"
	default:
		return "its balance of comfort and cost"
	}
}

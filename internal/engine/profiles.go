package engine

import (
	"fmt"

	"github.com/wisemotors/compare-engine/internal/vehicle"
)

// ProfileRecommendation is the single best-fit vehicle for one usage
// profile, with a short assembled reason.
type ProfileRecommendation struct {
	Profile   string `json:"profile"`
	VehicleID string `json:"vehicleId"`
	Reason    string `json:"reason"`
}

// profileSpec scores a vehicle for one usage persona and collects the
// justifications that contributed.
type profileSpec struct {
	name     string
	evaluate func(*vehicle.Vehicle) (float64, []string)
}

var profileSpecs = []profileSpec{
	{"Family", familyFit},
	{"Performance", performanceFit},
	{"Economy", economyFit},
	{"Technology", technologyFit},
}

// RecommendProfiles picks the best-fit vehicle per fixed profile.
//
// Ties break by first-encountered order: unlike field winners, a profile
// pick must always name exactly one vehicle, so stable order is the
// intended policy here, not a bug.
func RecommendProfiles(vehicles []vehicle.Vehicle) []ProfileRecommendation {
	if len(vehicles) == 0 {
		return nil
	}

	recs := make([]ProfileRecommendation, 0, len(profileSpecs))
	for _, spec := range profileSpecs {
		bestIdx := 0
		bestScore, bestWhy := spec.evaluate(&vehicles[0])
		for i := 1; i < len(vehicles); i++ {
			score, why := spec.evaluate(&vehicles[i])
			if score > bestScore {
				bestIdx, bestScore, bestWhy = i, score, why
			}
		}
		recs = append(recs, ProfileRecommendation{
			Profile:   spec.name,
			VehicleID: vehicles[bestIdx].ID,
			Reason:    profileReason(bestWhy),
		})
	}
	return recs
}

// profileReason joins up to three justifications with a fixed template per
// count. Fewer justifications get a shorter sentence, never filler.
func profileReason(justifications []string) string {
	switch len(justifications) {
	case 0:
		return "Best overall fit among the vehicles compared."
	case 1:
		return fmt.Sprintf("Chosen for its %s.", justifications[0])
	case 2:
		return fmt.Sprintf("Chosen for its %s and its %s.", justifications[0], justifications[1])
	default:
		return fmt.Sprintf("Chosen for its %s, its %s and its %s.",
			justifications[0], justifications[1], justifications[2])
	}
}

func familyFit(v *vehicle.Vehicle) (float64, []string) {
	score := 0.0
	var why []string

	switch v.BodyType {
	case vehicle.BodySUV:
		score += 30
		why = append(why, "spacious, family-friendly body")
	case vehicle.BodyWagon:
		score += 25
		why = append(why, "long-haul cargo space")
	case vehicle.BodySedan:
		score += 20
		why = append(why, "comfortable family cabin")
	case vehicle.BodyHatchback:
		score += 15
		why = append(why, "easy-to-park practical body")
	case vehicle.BodySport:
		score -= 30
	}

	if safetyFeatureCount(v) >= 3 {
		score += 10
		why = append(why, "complete active safety package")
	}

	if v.FuelType == vehicle.FuelHybrid || v.FuelType == vehicle.FuelPlugInHybrid {
		score += 10
	}

	if v.Price >= valuePriceThreshold && v.Price <= prestigePriceThreshold {
		score += 10
		why = append(why, "sensible mid-range price")
	}

	return score, why
}

func performanceFit(v *vehicle.Vehicle) (float64, []string) {
	score := 0.0
	var why []string

	switch v.BodyType {
	case vehicle.BodySport:
		score += 35
		why = append(why, "purpose-built sport body")
	case vehicle.BodyPickup:
		score -= 10
	}

	if power, ok := ResolveFloat(v, "maxPower"); ok && power >= 300 {
		score += 20
		why = append(why, fmt.Sprintf("%.0f CV on tap", power))
	}
	if accel, ok := ResolveFloat(v, "acceleration0To100"); ok && accel <= 6 {
		score += 15
		why = append(why, "sub-6-second sprint to 100 km/h")
	}
	if v.FuelType.IsElectric() {
		score += 10
		why = append(why, "instant electric torque")
	}

	return score, why
}

func economyFit(v *vehicle.Vehicle) (float64, []string) {
	score := 0.0
	var why []string

	switch v.BodyType {
	case vehicle.BodyHatchback:
		score += 30
		why = append(why, "frugal hatchback body")
	case vehicle.BodySedan:
		score += 15
		why = append(why, "efficient sedan shape")
	case vehicle.BodySUV, vehicle.BodyPickup:
		score -= 10
	case vehicle.BodySport:
		score -= 40
	}

	switch {
	case v.Price > 0 && v.Price < valuePriceThreshold:
		score += 25
		why = append(why, "sub-100-million price")
	case v.Price > prestigePriceThreshold:
		score -= 25
	}

	switch {
	case v.FuelType.IsElectric():
		score += 20
		why = append(why, "cheap energy per kilometer")
	case v.FuelType.IsElectrified():
		score += 15
		why = append(why, "hybrid fuel savings")
	default:
		if c, ok := ResolveFloat(v, "cityConsumption"); ok && c <= 7 {
			score += 10
			why = append(why, "low city consumption")
		}
	}

	return score, why
}

func technologyFit(v *vehicle.Vehicle) (float64, []string) {
	score := 0.0
	var why []string

	techCount := 0
	for _, key := range technologyChecklist {
		if ResolveBool(v, key) {
			techCount++
		}
	}
	score += float64(techCount) * 5
	if techCount >= 3 {
		why = append(why, "well-stocked technology suite")
	}

	if techScore, ok := ResolveFloat(v, "technologyScore"); ok && techScore >= 70 {
		score += 15
		why = append(why, "top-rated infotainment")
	}

	switch {
	case v.FuelType.IsElectric():
		score += 20
		why = append(why, "modern electric platform")
	case v.FuelType == vehicle.FuelPlugInHybrid:
		score += 10
	}

	if v.Year >= 2023 {
		score += 5
		why = append(why, "recent model year")
	}

	return score, why
}

func safetyFeatureCount(v *vehicle.Vehicle) int {
	count := 0
	for _, key := range safetyChecklist {
		if ResolveBool(v, key) {
			count++
		}
	}
	return count
}

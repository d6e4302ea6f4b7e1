package catalog

// Direction states which way a metric value is "better" when comparing
// vehicles. Display-only fields never produce a winner.
type Direction string

const (
	Higher  Direction = "higher"
	Lower   Direction = "lower"
	Boolean Direction = "boolean"
	Display Direction = "none"
)

// Section groups related metrics for presentation.
type Section string

const (
	SectionGeneral     Section = "general"
	SectionPerformance Section = "performance"
	SectionEngine      Section = "engine"
	SectionConsumption Section = "consumption"
	SectionDimensions  Section = "dimensions"
	SectionCapacities  Section = "capacities"
	SectionSafety      Section = "safety"
	SectionComfort     Section = "comfort"
	SectionTechnology  Section = "technology"
	SectionScores      Section = "scores"
)

// Field describes one comparable metric: how to find it inside a
// specification document, how to show it, and which direction wins.
//
// Locations is the ordered list of candidate "section.property" paths. The
// same semantic metric lives under different sections depending on the
// drivetrain (performance.maxPower for electric vehicles, combustion/
// hybrid/phev.maxPower for the rest), and some documents mix sections
// inconsistently, so the resolver tries every location and takes the first
// hit instead of trusting the declared fuel type.
type Field struct {
	Key       string    `json:"key"`
	Label     string    `json:"label"`
	Unit      string    `json:"unit,omitempty"`
	Better    Direction `json:"better"`
	Section   Section   `json:"section"`
	Locations []string  `json:"-"`
}

// engineLocations builds the standard drivetrain-dependent candidate list
// for a property that lives in whichever engine section the document has.
func engineLocations(property string) []string {
	return []string{
		"performance." + property,
		"combustion." + property,
		"hybrid." + property,
		"phev." + property,
		"electric." + property,
	}
}

var fields = []Field{
	// General (top-level vehicle attributes, resolved without traversal).
	{Key: "brand", Label: "Brand", Better: Display, Section: SectionGeneral},
	{Key: "model", Label: "Model", Better: Display, Section: SectionGeneral},
	{Key: "year", Label: "Model year", Better: Higher, Section: SectionGeneral},
	{Key: "price", Label: "Price", Unit: "$", Better: Lower, Section: SectionGeneral},
	{Key: "fuelType", Label: "Fuel type", Better: Display, Section: SectionGeneral},
	{Key: "bodyType", Label: "Body type", Better: Display, Section: SectionGeneral},

	// Performance.
	{Key: "maxPower", Label: "Maximum power", Unit: "CV", Better: Higher, Section: SectionPerformance,
		Locations: engineLocations("maxPower")},
	{Key: "maxTorque", Label: "Maximum torque", Unit: "Nm", Better: Higher, Section: SectionPerformance,
		Locations: engineLocations("maxTorque")},
	{Key: "acceleration0To100", Label: "0-100 km/h", Unit: "s", Better: Lower, Section: SectionPerformance,
		Locations: []string{"performance.acceleration0To100", "performance.acceleration"}},
	{Key: "topSpeed", Label: "Top speed", Unit: "km/h", Better: Higher, Section: SectionPerformance,
		Locations: []string{"performance.topSpeed"}},

	// Engine.
	{Key: "displacement", Label: "Displacement", Unit: "cc", Better: Display, Section: SectionEngine,
		Locations: []string{"combustion.displacement", "hybrid.displacement", "phev.displacement"}},
	{Key: "cylinders", Label: "Cylinders", Better: Display, Section: SectionEngine,
		Locations: []string{"combustion.cylinders", "hybrid.cylinders", "phev.cylinders"}},
	{Key: "transmission", Label: "Transmission", Better: Display, Section: SectionEngine,
		Locations: []string{"combustion.transmission", "hybrid.transmission", "phev.transmission", "electric.transmission", "chassis.transmission"}},
	{Key: "drivetrain", Label: "Drivetrain", Better: Display, Section: SectionEngine,
		Locations: []string{"chassis.drivetrain", "combustion.drivetrain", "electric.drivetrain"}},

	// Consumption and range.
	{Key: "cityConsumption", Label: "City consumption", Unit: "L/100km", Better: Lower, Section: SectionConsumption,
		Locations: []string{"consumption.city", "combustion.cityConsumption", "hybrid.cityConsumption", "phev.cityConsumption"}},
	{Key: "highwayConsumption", Label: "Highway consumption", Unit: "L/100km", Better: Lower, Section: SectionConsumption,
		Locations: []string{"consumption.highway", "combustion.highwayConsumption", "hybrid.highwayConsumption", "phev.highwayConsumption"}},
	{Key: "electricConsumptionCity", Label: "Electric city consumption", Unit: "kWh/100km", Better: Lower, Section: SectionConsumption,
		Locations: []string{"electric.cityConsumption", "phev.electricCityConsumption"}},
	{Key: "electricConsumptionHighway", Label: "Electric highway consumption", Unit: "kWh/100km", Better: Lower, Section: SectionConsumption,
		Locations: []string{"electric.highwayConsumption", "phev.electricHighwayConsumption"}},
	{Key: "electricRange", Label: "Electric range", Unit: "km", Better: Higher, Section: SectionConsumption,
		Locations: []string{"electric.range", "phev.electricRange", "hybrid.electricRange"}},
	{Key: "batteryCapacity", Label: "Battery capacity", Unit: "kWh", Better: Higher, Section: SectionConsumption,
		Locations: []string{"electric.batteryCapacity", "phev.batteryCapacity"}},
	{Key: "chargeTimeDC", Label: "DC fast charge 10-80%", Unit: "min", Better: Lower, Section: SectionConsumption,
		Locations: []string{"electric.chargeTimeDC", "phev.chargeTimeDC"}},

	// Dimensions.
	{Key: "length", Label: "Length", Unit: "mm", Better: Display, Section: SectionDimensions,
		Locations: []string{"dimensions.length"}},
	{Key: "width", Label: "Width", Unit: "mm", Better: Display, Section: SectionDimensions,
		Locations: []string{"dimensions.width"}},
	{Key: "height", Label: "Height", Unit: "mm", Better: Display, Section: SectionDimensions,
		Locations: []string{"dimensions.height"}},
	{Key: "wheelbase", Label: "Wheelbase", Unit: "mm", Better: Higher, Section: SectionDimensions,
		Locations: []string{"dimensions.wheelbase"}},
	{Key: "groundClearance", Label: "Ground clearance", Unit: "mm", Better: Higher, Section: SectionDimensions,
		Locations: []string{"dimensions.groundClearance", "chassis.groundClearance"}},

	// Capacities.
	{Key: "trunkCapacity", Label: "Trunk capacity", Unit: "L", Better: Higher, Section: SectionCapacities,
		Locations: []string{"dimensions.trunkCapacity", "capacities.trunk"}},
	{Key: "fuelTankCapacity", Label: "Fuel tank", Unit: "L", Better: Higher, Section: SectionCapacities,
		Locations: []string{"combustion.fuelTankCapacity", "hybrid.fuelTankCapacity", "phev.fuelTankCapacity", "capacities.fuelTank"}},
	{Key: "seatingCapacity", Label: "Seats", Better: Higher, Section: SectionCapacities,
		Locations: []string{"dimensions.seatingCapacity", "capacities.seats", "comfort.seatingCapacity"}},
	{Key: "towingCapacity", Label: "Towing capacity", Unit: "kg", Better: Higher, Section: SectionCapacities,
		Locations: []string{"capacities.towing", "chassis.towingCapacity"}},
	{Key: "curbWeight", Label: "Curb weight", Unit: "kg", Better: Lower, Section: SectionCapacities,
		Locations: []string{"weight.curbWeight", "dimensions.curbWeight"}},

	// Safety.
	{Key: "airbags", Label: "Airbags", Better: Higher, Section: SectionSafety,
		Locations: []string{"safety.airbags"}},
	{Key: "absBrakes", Label: "ABS brakes", Better: Boolean, Section: SectionSafety,
		Locations: []string{"safety.absBrakes", "safety.abs"}},
	{Key: "stabilityControl", Label: "Stability control", Better: Boolean, Section: SectionSafety,
		Locations: []string{"safety.stabilityControl", "safety.esp"}},
	{Key: "laneAssist", Label: "Lane keeping assist", Better: Boolean, Section: SectionSafety,
		Locations: []string{"safety.laneAssist"}},
	{Key: "blindSpotMonitor", Label: "Blind spot monitor", Better: Boolean, Section: SectionSafety,
		Locations: []string{"safety.blindSpotMonitor"}},
	{Key: "rearCamera", Label: "Rear camera", Better: Boolean, Section: SectionSafety,
		Locations: []string{"safety.rearCamera", "technology.rearCamera"}},

	// Comfort.
	{Key: "airConditioning", Label: "Air conditioning", Better: Boolean, Section: SectionComfort,
		Locations: []string{"comfort.airConditioning", "comfort.climateControl"}},
	{Key: "leatherSeats", Label: "Leather seats", Better: Boolean, Section: SectionComfort,
		Locations: []string{"comfort.leatherSeats"}},
	{Key: "sunroof", Label: "Sunroof", Better: Boolean, Section: SectionComfort,
		Locations: []string{"comfort.sunroof"}},
	{Key: "heatedSeats", Label: "Heated seats", Better: Boolean, Section: SectionComfort,
		Locations: []string{"comfort.heatedSeats"}},

	// Technology.
	{Key: "touchscreenSize", Label: "Touchscreen", Unit: "\"", Better: Higher, Section: SectionTechnology,
		Locations: []string{"technology.touchscreenSize", "technology.screenSize"}},
	{Key: "bluetooth", Label: "Bluetooth", Better: Boolean, Section: SectionTechnology,
		Locations: []string{"technology.bluetooth", "comfort.bluetooth"}},
	{Key: "appleCarplay", Label: "Apple CarPlay / Android Auto", Better: Boolean, Section: SectionTechnology,
		Locations: []string{"technology.appleCarplay", "technology.smartphoneIntegration"}},
	{Key: "navigationSystem", Label: "Navigation system", Better: Boolean, Section: SectionTechnology,
		Locations: []string{"technology.navigationSystem"}},
	{Key: "wirelessCharging", Label: "Wireless charging", Better: Boolean, Section: SectionTechnology,
		Locations: []string{"technology.wirelessCharging"}},
	{Key: "digitalCluster", Label: "Digital instrument cluster", Better: Boolean, Section: SectionTechnology,
		Locations: []string{"technology.digitalCluster"}},

	// Pre-computed composite scores supplied by the curation pipeline.
	{Key: "technologyScore", Label: "Technology score", Better: Higher, Section: SectionScores,
		Locations: []string{"wisemetrics.technology"}},
	{Key: "safetyScore", Label: "Safety score", Better: Higher, Section: SectionScores,
		Locations: []string{"wisemetrics.safety"}},
	{Key: "comfortScore", Label: "Comfort score", Better: Higher, Section: SectionScores,
		Locations: []string{"wisemetrics.comfort"}},
}

var fieldsByKey = func() map[string]Field {
	m := make(map[string]Field, len(fields))
	for _, f := range fields {
		m[f.Key] = f
	}
	return m
}()

// Fields returns every registered metric in catalog order.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// Lookup returns the field registered under key.
func Lookup(key string) (Field, bool) {
	f, ok := fieldsByKey[key]
	return f, ok
}

// Select maps a list of field keys to their catalog entries, silently
// skipping unknown keys. An empty key list selects the whole catalog.
func Select(keys []string) []Field {
	if len(keys) == 0 {
		return Fields()
	}
	out := make([]Field, 0, len(keys))
	for _, key := range keys {
		if f, ok := Lookup(key); ok {
			out = append(out, f)
		}
	}
	return out
}

// SectionGroup is one presentation group of the catalog.
type SectionGroup struct {
	Section Section `json:"section"`
	Fields  []Field `json:"fields"`
}

var sectionOrder = []Section{
	SectionGeneral, SectionPerformance, SectionEngine, SectionConsumption,
	SectionDimensions, SectionCapacities, SectionSafety, SectionComfort,
	SectionTechnology, SectionScores,
}

// BySection returns the catalog grouped by section in presentation order.
func BySection() []SectionGroup {
	groups := make([]SectionGroup, 0, len(sectionOrder))
	for _, s := range sectionOrder {
		group := SectionGroup{Section: s}
		for _, f := range fields {
			if f.Section == s {
				group.Fields = append(group.Fields, f)
			}
		}
		if len(group.Fields) > 0 {
			groups = append(groups, group)
		}
	}
	return groups
}

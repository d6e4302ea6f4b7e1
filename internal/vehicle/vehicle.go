package vehicle

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FuelType identifies the drivetrain family of a vehicle. It decides which
// specification sections are expected to carry engine and consumption data.
type FuelType string

const (
	FuelGasoline     FuelType = "Gasoline"
	FuelDiesel       FuelType = "Diesel"
	FuelElectric     FuelType = "Electric"
	FuelHybrid       FuelType = "Hybrid"
	FuelPlugInHybrid FuelType = "Plug-in-Hybrid"
)

// IsElectric reports whether the vehicle runs purely on battery power.
func (f FuelType) IsElectric() bool {
	return f == FuelElectric
}

// IsElectrified reports whether the drivetrain has any electric component.
func (f FuelType) IsElectrified() bool {
	return f == FuelElectric || f == FuelHybrid || f == FuelPlugInHybrid
}

// IsCombustion reports whether the drivetrain is purely combustion-based.
func (f FuelType) IsCombustion() bool {
	return f == FuelGasoline || f == FuelDiesel
}

// BodyType identifies the body style of a vehicle.
type BodyType string

const (
	BodySedan       BodyType = "Sedan"
	BodySUV         BodyType = "SUV"
	BodyPickup      BodyType = "Pickup"
	BodySport       BodyType = "Sport"
	BodyWagon       BodyType = "Wagon"
	BodyHatchback   BodyType = "Hatchback"
	BodyConvertible BodyType = "Convertible"
)

// SpecDocument is the free-form technical data blob attached to a vehicle,
// a mapping of section name to arbitrary key/value pairs. Which sections are
// present depends on the fuel type; absence of a section means "unknown",
// never "zero".
type SpecDocument map[string]map[string]any

// UnmarshalJSON accepts either an embedded JSON object or a JSON-encoded
// string holding one. Unparsable payloads decode to an empty document so a
// single malformed record never fails a whole comparison request.
func (d *SpecDocument) UnmarshalJSON(data []byte) error {
	*d = SpecDocument{}

	// Some upstream records store the document as a string column.
	var encoded string
	if err := json.Unmarshal(data, &encoded); err == nil {
		if encoded == "" {
			return nil
		}
		data = []byte(encoded)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}

	for name, payload := range raw {
		var section map[string]any
		if err := json.Unmarshal(payload, &section); err != nil {
			// Non-object sections carry nothing resolvable.
			continue
		}
		(*d)[name] = section
	}

	return nil
}

// Section returns the named section, or nil when absent.
func (d SpecDocument) Section(name string) map[string]any {
	if d == nil {
		return nil
	}
	return d[name]
}

// Lookup traverses a dot-separated "section.property" path and returns the
// value found there. The second return is false when any segment is absent.
func (d SpecDocument) Lookup(path string) (any, bool) {
	if d == nil {
		return nil, false
	}

	segments := strings.Split(path, ".")
	if len(segments) < 2 {
		return nil, false
	}

	section, ok := d[segments[0]]
	if !ok {
		return nil, false
	}

	var current any = section
	for _, segment := range segments[1:] {
		node, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = node[segment]
		if !ok {
			return nil, false
		}
	}

	if current == nil {
		return nil, false
	}
	return current, true
}

// Vehicle is one record entering a comparison: fixed top-level attributes
// plus the loosely-typed specification document. Immutable for the duration
// of a request.
type Vehicle struct {
	ID       string       `json:"id"`
	Brand    string       `json:"brand"`
	Model    string       `json:"model"`
	Year     int          `json:"year"`
	Price    float64      `json:"price"`
	FuelType FuelType     `json:"fuelType"`
	BodyType BodyType     `json:"bodyType"`
	Specs    SpecDocument `json:"specifications"`
}

// DisplayName returns the human-facing "Brand Model" label.
func (v *Vehicle) DisplayName() string {
	name := strings.TrimSpace(v.Brand + " " + v.Model)
	if name == "" {
		return v.ID
	}
	return name
}

// Validate checks the required top-level attributes. A vehicle without an
// id, a positive price, or a fuel type cannot participate in a comparison.
func (v *Vehicle) Validate() error {
	var missing []string
	if strings.TrimSpace(v.ID) == "" {
		missing = append(missing, "id")
	}
	if v.Price <= 0 {
		missing = append(missing, "price")
	}
	if v.FuelType == "" {
		missing = append(missing, "fuelType")
	}
	if len(missing) > 0 {
		return fmt.Errorf("vehicle %q missing required fields: %s", v.ID, strings.Join(missing, ", "))
	}
	return nil
}

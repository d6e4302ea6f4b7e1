package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wisemotors/compare-engine/internal/catalog"
	"github.com/wisemotors/compare-engine/internal/vehicle"
)

const unavailableGlyph = "—"

// ComparisonResult holds one field's values across the compared vehicles,
// their display strings, and the index of the winning vehicle. WinnerIndex
// is nil on ties, when every value is missing, and for display-only fields.
type ComparisonResult struct {
	Field         catalog.Field `json:"field"`
	Values        []any         `json:"values"`
	DisplayValues []string      `json:"displayValues"`
	WinnerIndex   *int          `json:"winnerIndex"`
}

// Compare resolves every requested field for every vehicle and determines
// per-field winners. Results are freshly allocated per call and never cached
// across vehicle sets.
func Compare(vehicles []vehicle.Vehicle, fields []catalog.Field) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(fields))
	for _, field := range fields {
		values := make([]any, len(vehicles))
		display := make([]string, len(vehicles))
		for i := range vehicles {
			values[i] = Resolve(&vehicles[i], field.Key)
			display[i] = formatValue(field, values[i])
		}
		results = append(results, ComparisonResult{
			Field:         field,
			Values:        values,
			DisplayValues: display,
			WinnerIndex:   winnerIndex(field, values),
		})
	}
	return results
}

// winnerIndex applies the no-winner-on-tie rule: a field only has a winner
// when exactly one vehicle holds the single best value. Boolean fields win
// only when exactly one vehicle has the feature. A naive index-of-max would
// silently hand ties to the lowest index; that is exactly what this must not
// do.
func winnerIndex(field catalog.Field, values []any) *int {
	switch field.Better {
	case catalog.Higher, catalog.Lower:
		return extremeWinner(field.Better, values)
	case catalog.Boolean:
		return booleanWinner(values)
	default:
		return nil
	}
}

func extremeWinner(better catalog.Direction, values []any) *int {
	best := 0.0
	bestIdx := -1
	count := 0
	for i, raw := range values {
		v, ok := toFloat(raw)
		if !ok {
			continue
		}
		if count == 0 || (better == catalog.Higher && v > best) || (better == catalog.Lower && v < best) {
			best = v
			bestIdx = i
			count = 1
			continue
		}
		if v == best {
			count++
		}
	}
	if count != 1 {
		return nil
	}
	return &bestIdx
}

func booleanWinner(values []any) *int {
	winner := -1
	trues := 0
	for i, raw := range values {
		if raw == nil {
			continue
		}
		if toBool(raw) {
			trues++
			winner = i
		}
	}
	if trues != 1 {
		return nil
	}
	return &winner
}

// formatValue renders a resolved value for table display. Missing data gets
// an explicit unavailable glyph so it can never be confused with a real
// zero; booleans render as presence glyphs.
func formatValue(field catalog.Field, value any) string {
	if value == nil {
		return unavailableGlyph
	}

	if field.Better == catalog.Boolean {
		if toBool(value) {
			return "✓"
		}
		return "✗"
	}

	if f, ok := toFloat(value); ok {
		text := strconv.FormatFloat(f, 'f', -1, 64)
		if field.Unit == "$" {
			return "$" + text
		}
		if field.Unit != "" {
			return text + " " + field.Unit
		}
		return text
	}

	if s, ok := value.(string); ok {
		if strings.TrimSpace(s) == "" {
			return unavailableGlyph
		}
		return s
	}

	return fmt.Sprintf("%v", value)
}

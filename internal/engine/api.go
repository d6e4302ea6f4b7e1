package engine

import (
	"context"
	"errors"
	"sort"

	"github.com/wisemotors/compare-engine/internal/catalog"
	"github.com/wisemotors/compare-engine/internal/vehicle"
)

// ErrTooFewVehicles is returned when fewer than two vehicles are supplied.
// A comparison of one item is meaningless and must fail loudly instead of
// degrading.
var ErrTooFewVehicles = errors.New("a comparison requires at least 2 vehicles")

// Analysis is the full result object consumers receive. The LLM-backed
// analyzer returns the same shape, so callers can substitute one for the
// other transparently.
type Analysis struct {
	Comparisons []ComparisonResult      `json:"comparisons"`
	Radar       []RadarAxis             `json:"radar"`
	Analysis    []AnalysisResult        `json:"analysis"`
	Profiles    []ProfileRecommendation `json:"profiles"`
	Ranking     []RankingEntry          `json:"ranking"`
	Source      string                  `json:"source"`
}

// RankingEntry is one podium position derived from the per-vehicle overall
// scores.
type RankingEntry struct {
	Position  int    `json:"position"`
	VehicleID string `json:"vehicleId"`
	Score     int    `json:"score"`
}

// Analyzer is the contract both the deterministic engine and the external
// LLM-backed service satisfy.
type Analyzer interface {
	Analyze(ctx context.Context, vehicles []vehicle.Vehicle, fields []catalog.Field) (*Analysis, error)
}

// Engine is the deterministic analyzer. It is pure and stateless: every call
// allocates a fresh result and arbitrarily many calls may run concurrently.
type Engine struct{}

// New returns the deterministic comparison engine.
func New() *Engine {
	return &Engine{}
}

// Analyze validates the input and assembles comparisons, the radar profile,
// the fallback narrative and the profile recommendations into one result.
// A nil or empty field list selects the whole catalog.
func (e *Engine) Analyze(_ context.Context, vehicles []vehicle.Vehicle, fields []catalog.Field) (*Analysis, error) {
	if err := ValidateVehicles(vehicles); err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		fields = catalog.Fields()
	}

	analysis := GenerateFallbackAnalysis(vehicles)

	return &Analysis{
		Comparisons: Compare(vehicles, fields),
		Radar:       BuildRadarProfile(vehicles),
		Analysis:    analysis,
		Profiles:    RecommendProfiles(vehicles),
		Ranking:     ranking(analysis),
		Source:      "deterministic",
	}, nil
}

// ValidateVehicles enforces the fatal-input rules: at least two vehicles,
// each with id, price and fuel type. Malformed specification documents are
// not checked here; they already degraded to empty documents at decode time.
func ValidateVehicles(vehicles []vehicle.Vehicle) error {
	if len(vehicles) < 2 {
		return ErrTooFewVehicles
	}
	for i := range vehicles {
		if err := vehicles[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ranking orders vehicles by overall score, best first. Equal scores keep
// their input order.
func ranking(analysis []AnalysisResult) []RankingEntry {
	entries := make([]RankingEntry, 0, len(analysis))
	for _, a := range analysis {
		entries = append(entries, RankingEntry{VehicleID: a.VehicleID, Score: a.Score})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	for i := range entries {
		entries[i].Position = i + 1
	}
	return entries
}

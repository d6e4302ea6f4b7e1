package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/wisemotors/compare-engine/internal/catalog"
	"github.com/wisemotors/compare-engine/internal/engine"
	apperrors "github.com/wisemotors/compare-engine/internal/errors"
	"github.com/wisemotors/compare-engine/internal/resilience"
	"github.com/wisemotors/compare-engine/internal/vehicle"
)

// Client is the LLM-backed analyzer. It satisfies the same engine.Analyzer
// contract as the deterministic engine, so the HTTP layer can swap between
// them freely; callers fall back to the engine when a call fails.
type Client struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewClient creates a Gemini-backed analyzer
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel("gemini-2.5-flash-lite")
	model.SetTemperature(0.4)
	model.SetTopP(0.95)
	model.SetMaxOutputTokens(4096)
	model.ResponseMIMEType = "application/json"

	return &Client{
		client: client,
		model:  model,
	}, nil
}

// Close releases the underlying API client
func (c *Client) Close() {
	c.client.Close()
}

// Analyze asks the model for a richer analysis in the exact shape the
// deterministic engine produces. Input validation stays engine-side so both
// analyzers reject the same requests.
func (c *Client) Analyze(ctx context.Context, vehicles []vehicle.Vehicle, fields []catalog.Field) (*engine.Analysis, error) {
	if err := engine.ValidateVehicles(vehicles); err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		fields = catalog.Fields()
	}

	prompt, err := buildPrompt(vehicles)
	if err != nil {
		return nil, err
	}

	var analysis *engine.Analysis
	err = resilience.Retry(ctx, func() error {
		resp, genErr := c.model.GenerateContent(ctx, genai.Text(prompt))
		if genErr != nil {
			return apperrors.NewExternalAPIError("Gemini", genErr)
		}

		parsed, parseErr := parseAnalysis(resp)
		if parseErr != nil {
			return apperrors.NewExternalAPIError("Gemini", parseErr)
		}

		analysis = parsed
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Comparisons and radar axes are exact arithmetic; the model only
	// contributes narrative. Keep the deterministic values for those.
	analysis.Comparisons = engine.Compare(vehicles, fields)
	analysis.Radar = engine.BuildRadarProfile(vehicles)
	analysis.Source = "llm"

	return analysis, nil
}

func buildPrompt(vehicles []vehicle.Vehicle) (string, error) {
	payload, err := json.Marshal(vehicles)
	if err != nil {
		return "", fmt.Errorf("failed to encode vehicles: %w", err)
	}

	var b strings.Builder
	b.WriteString("You are an automotive expert comparing vehicles for a buyer.\n")
	b.WriteString("Given the following vehicle records (including their technical specification documents), ")
	b.WriteString("return a JSON object with exactly these keys:\n")
	b.WriteString(`- "analysis": array with one entry per vehicle: {"vehicleId", "pros" (max 4 strings), "cons" (max 3 strings), "recommendation" (one sentence), "score" (integer 0-100)}` + "\n")
	b.WriteString(`- "profiles": array of {"profile" (one of "Family", "Performance", "Economy", "Technology"), "vehicleId", "reason" (one sentence)}` + "\n")
	b.WriteString(`- "ranking": array of {"position" (1-based), "vehicleId", "score"} ordered best first` + "\n")
	b.WriteString("Mention concrete figures only when present in the data; never invent numbers.\n\n")
	b.WriteString("Vehicles:\n")
	b.Write(payload)

	return b.String(), nil
}

func parseAnalysis(resp *genai.GenerateContentResponse) (*engine.Analysis, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("empty model response")
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}

	raw := strings.TrimSpace(text.String())
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	var analysis engine.Analysis
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		return nil, fmt.Errorf("model returned unparsable analysis: %w", err)
	}
	if len(analysis.Analysis) == 0 {
		return nil, fmt.Errorf("model returned no per-vehicle analysis")
	}

	return &analysis, nil
}

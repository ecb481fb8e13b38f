// Package chart generates reshaped kundli charts from the upstream astrology API
package chart

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/saralwebs/kundli/internal/common"
	"github.com/saralwebs/kundli/internal/interfaces"
	"github.com/saralwebs/kundli/internal/models"
)

// Compile-time interface check
var _ interfaces.ChartService = (*Service)(nil)

// Service implements ChartService
type Service struct {
	client interfaces.AstrologyClient
	logger *common.Logger
}

// NewService creates a new chart service
func NewService(client interfaces.AstrologyClient, logger *common.Logger) *Service {
	return &Service{
		client: client,
		logger: logger,
	}
}

// Generate validates the request, substitutes the sandbox-safe date, fetches
// chart data with a bearer token and reshapes the upstream response.
func (s *Service) Generate(ctx context.Context, req models.ChartRequest) (*models.ChartResult, error) {
	if strings.TrimSpace(req.Datetime) == "" {
		return nil, common.NewValidationError("datetime is required")
	}
	if strings.TrimSpace(req.Coordinates) == "" {
		return nil, common.NewValidationError("coordinates is required")
	}

	chartType := req.ChartType
	if chartType == "" {
		chartType = models.DefaultChartType
	}
	chartStyle := req.ChartStyle
	if chartStyle == "" {
		chartStyle = models.DefaultChartStyle
	}

	sandboxDT, err := SandboxDatetime(req.Datetime)
	if err != nil {
		return nil, common.NewValidationError("invalid datetime %q: %v", req.Datetime, err)
	}

	resp, err := s.client.Chart(ctx, interfaces.ChartParams{
		Coordinates: req.Coordinates,
		Datetime:    sandboxDT,
		ChartType:   chartType,
		ChartStyle:  chartStyle,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("datetime", sandboxDT).
		Str("content_type", resp.ContentType).
		Int("bytes", len(resp.Body)).
		Msg("Chart response received")

	if strings.Contains(resp.ContentType, "application/json") {
		return reshapeJSON(resp.Body), nil
	}
	return wrapRawSVG(resp.Body), nil
}

// SandboxDatetime rewrites a client datetime into the sandbox-safe form the
// upstream free tier accepts: the year and time of day are kept, month and
// day are forced to January 1st, and the fixed +05:30 offset is re-appended.
// Example: 1995-12-25T14:30:00+05:30 becomes 1995-01-01T14:30:00+05:30.
func SandboxDatetime(value string) (string, error) {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(value))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d-01-01T%02d:%02d:%02d+05:30",
		t.Year(), t.Hour(), t.Minute(), t.Second()), nil
}

// FlattenPlanets maps each planet name to the house_id of the house it
// appears in. A planet name appearing in more than one house is not a shape
// the upstream promises; if it happens, the later house wins.
func FlattenPlanets(houses []models.ChartHouse) map[string]int {
	planets := make(map[string]int)
	for _, house := range houses {
		for _, planet := range house.Planets {
			if planet.Name == "" {
				continue
			}
			planets[planet.Name] = house.HouseID
		}
	}
	return planets
}

// reshapeJSON extracts the chart fields from a JSON upstream body.
func reshapeJSON(body []byte) *models.ChartResult {
	result := &models.ChartResult{
		Success:      true,
		SandboxMode:  true,
		HouseData:    json.RawMessage("[]"),
		Planets:      map[string]int{},
		ResponseType: "json",
	}

	data := gjson.GetBytes(body, "data")

	if svg := data.Get("svg"); svg.Exists() {
		v := svg.String()
		result.SVG = &v
	}

	if houses := data.Get("house"); houses.Exists() {
		result.HouseData = json.RawMessage(houses.Raw)
		var parsed []models.ChartHouse
		if err := json.Unmarshal([]byte(houses.Raw), &parsed); err == nil {
			result.Planets = FlattenPlanets(parsed)
		}
	}

	if v := data.Get("mangal_dosha"); v.Exists() {
		result.MangalDosha = json.RawMessage(v.Raw)
	}
	if v := data.Get("kaal_sarp_dosha"); v.Exists() {
		result.KaalSarpDosha = json.RawMessage(v.Raw)
	}
	if v := data.Get("pitra_dosha"); v.Exists() {
		result.PitraDosha = json.RawMessage(v.Raw)
	}
	if v := data.Get("sade_sati"); v.Exists() {
		result.SadeSati = json.RawMessage(v.Raw)
	}

	return result
}

// wrapRawSVG wraps a non-JSON upstream body (raw SVG or plain text) with
// all structured fields left at their defaults.
func wrapRawSVG(body []byte) *models.ChartResult {
	svg := string(body)
	return &models.ChartResult{
		Success:      true,
		SandboxMode:  true,
		SVG:          &svg,
		HouseData:    json.RawMessage("[]"),
		Planets:      map[string]int{},
		ResponseType: "svg",
	}
}

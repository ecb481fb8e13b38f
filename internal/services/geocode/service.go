// Package geocode resolves place names via a geocoding client
package geocode

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/saralwebs/kundli/internal/common"
	"github.com/saralwebs/kundli/internal/interfaces"
	"github.com/saralwebs/kundli/internal/models"
)

// Compile-time interface check
var _ interfaces.GeocodeService = (*Service)(nil)

// Service implements GeocodeService
type Service struct {
	client interfaces.GeocodeClient
	logger *common.Logger
}

// NewService creates a new geocode service
func NewService(client interfaces.GeocodeClient, logger *common.Logger) *Service {
	return &Service{
		client: client,
		logger: logger,
	}
}

// Lookup resolves a free-text place name to its best match, with latitude
// and longitude rounded to 4 decimal places.
func (s *Service) Lookup(ctx context.Context, place string) (*models.GeocodeResult, error) {
	place = strings.TrimSpace(place)
	if place == "" {
		return nil, common.NewValidationError("place is required")
	}

	places, err := s.client.Search(ctx, place)
	if err != nil {
		return nil, err
	}

	if len(places) == 0 {
		return nil, common.NewNotFoundError("place not found")
	}

	match := places[0]

	lat, err := roundCoordinate(match.Lat)
	if err != nil {
		return nil, common.NewExternalServiceError("invalid latitude in geocoding response", err)
	}
	lon, err := roundCoordinate(match.Lon)
	if err != nil {
		return nil, common.NewExternalServiceError("invalid longitude in geocoding response", err)
	}

	s.logger.Debug().
		Str("place", place).
		Str("location", match.DisplayName).
		Msg("Geocoded place")

	return &models.GeocodeResult{
		Coordinates: lat + "," + lon,
		Location:    match.DisplayName,
		Latitude:    lat,
		Longitude:   lon,
	}, nil
}

// roundCoordinate rounds a decimal coordinate string to 4 places,
// half away from zero.
func roundCoordinate(value string) (string, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return "", err
	}
	rounded := math.Round(f*10000) / 10000
	return fmt.Sprintf("%.4f", rounded), nil
}

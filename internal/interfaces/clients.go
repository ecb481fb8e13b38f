// Package interfaces defines client and service contracts for the kundli gateway
package interfaces

import (
	"context"

	"github.com/saralwebs/kundli/internal/models"
)

// ChartParams are the query parameters for an upstream chart request.
// Datetime is expected to already carry the sandbox-safe value.
type ChartParams struct {
	Coordinates string
	Datetime    string
	ChartType   string
	ChartStyle  string
}

// AstrologyClient provides access to the Prokerala astrology API.
type AstrologyClient interface {
	// Token returns a bearer token, exchanging client credentials with the
	// upstream when no valid cached token exists. The second return reports
	// whether the token was served from the cache.
	Token(ctx context.Context) (string, bool, error)

	// Chart requests chart data for the given parameters. The response body
	// is either a JSON document or a raw SVG, distinguished by ContentType.
	Chart(ctx context.Context, params ChartParams) (*models.ChartResponse, error)
}

// GeocodeClient provides access to a place-name search service.
type GeocodeClient interface {
	// Search looks up a free-text place name and returns the best match,
	// or an empty slice when the place is unknown.
	Search(ctx context.Context, place string) ([]models.GeocodePlace, error)
}

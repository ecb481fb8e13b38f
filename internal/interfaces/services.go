package interfaces

import (
	"context"

	"github.com/saralwebs/kundli/internal/models"
)

// ChartService generates reshaped kundli charts for client requests.
type ChartService interface {
	// Generate validates the request, substitutes the sandbox-safe date,
	// fetches chart data from the upstream and reshapes the response.
	Generate(ctx context.Context, req models.ChartRequest) (*models.ChartResult, error)
}

// GeocodeService resolves free-text place names to rounded coordinates.
type GeocodeService interface {
	Lookup(ctx context.Context, place string) (*models.GeocodeResult, error)
}

package geocode

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saralwebs/kundli/internal/common"
	"github.com/saralwebs/kundli/internal/models"
)

// fakeGeocodeClient returns canned places or a canned error.
type fakeGeocodeClient struct {
	places []models.GeocodePlace
	err    error
	calls  int
}

func (f *fakeGeocodeClient) Search(ctx context.Context, place string) ([]models.GeocodePlace, error) {
	f.calls++
	return f.places, f.err
}

func TestLookup_RoundsToFourDecimals(t *testing.T) {
	client := &fakeGeocodeClient{
		places: []models.GeocodePlace{
			{Lat: "28.6139001", Lon: "77.2090212", DisplayName: "Delhi"},
		},
	}
	svc := NewService(client, common.NewSilentLogger())

	result, err := svc.Lookup(context.Background(), "Delhi")
	require.NoError(t, err)

	assert.Equal(t, "28.6139", result.Latitude)
	assert.Equal(t, "77.2090", result.Longitude)
	assert.Equal(t, "28.6139,77.2090", result.Coordinates)
	assert.Equal(t, "Delhi", result.Location)
}

func TestLookup_NegativeCoordinates(t *testing.T) {
	client := &fakeGeocodeClient{
		places: []models.GeocodePlace{
			{Lat: "-33.8688197", Lon: "151.2092955", DisplayName: "Sydney NSW, Australia"},
		},
	}
	svc := NewService(client, common.NewSilentLogger())

	result, err := svc.Lookup(context.Background(), "Sydney")
	require.NoError(t, err)

	assert.Equal(t, "-33.8688", result.Latitude)
	assert.Equal(t, "151.2093", result.Longitude)
}

func TestLookup_MissingPlace(t *testing.T) {
	client := &fakeGeocodeClient{}
	svc := NewService(client, common.NewSilentLogger())

	_, err := svc.Lookup(context.Background(), "   ")
	require.Error(t, err)

	var valErr *common.ValidationError
	assert.True(t, errors.As(err, &valErr), "want ValidationError, got %T", err)
	assert.Equal(t, 0, client.calls, "validation must fail before any upstream call")
}

func TestLookup_PlaceNotFound(t *testing.T) {
	client := &fakeGeocodeClient{places: []models.GeocodePlace{}}
	svc := NewService(client, common.NewSilentLogger())

	_, err := svc.Lookup(context.Background(), "atlantis")
	require.Error(t, err)

	var nfErr *common.NotFoundError
	require.True(t, errors.As(err, &nfErr), "want NotFoundError, got %T", err)
	assert.Equal(t, "place not found", nfErr.Message)
}

func TestLookup_UpstreamErrorPassedThrough(t *testing.T) {
	client := &fakeGeocodeClient{err: common.NewExternalServiceError("geocoding request failed", nil)}
	svc := NewService(client, common.NewSilentLogger())

	_, err := svc.Lookup(context.Background(), "Delhi")
	require.Error(t, err)

	var svcErr *common.ExternalServiceError
	assert.True(t, errors.As(err, &svcErr), "want ExternalServiceError, got %T", err)
}

func TestRoundCoordinate(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"28.6139001", "28.6139"},
		{"77.2090212", "77.2090"},
		{"151.2092955", "151.2093"},
		{"-33.8688197", "-33.8688"},
		{"77.209", "77.2090"},
		{"0", "0.0000"},
	}

	for _, tt := range tests {
		got, err := roundCoordinate(tt.input)
		if err != nil {
			t.Errorf("roundCoordinate(%q) returned error: %v", tt.input, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("roundCoordinate(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestRoundCoordinate_Invalid(t *testing.T) {
	if _, err := roundCoordinate("not-a-number"); err == nil {
		t.Error("roundCoordinate should reject non-numeric input")
	}
}

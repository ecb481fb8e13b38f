package chart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saralwebs/kundli/internal/common"
	"github.com/saralwebs/kundli/internal/interfaces"
	"github.com/saralwebs/kundli/internal/models"
)

// fakeAstrologyClient records the params it was called with and returns a
// canned response.
type fakeAstrologyClient struct {
	resp   *models.ChartResponse
	err    error
	params interfaces.ChartParams
	calls  int
}

func (f *fakeAstrologyClient) Token(ctx context.Context) (string, bool, error) {
	return "fake-token", true, nil
}

func (f *fakeAstrologyClient) Chart(ctx context.Context, params interfaces.ChartParams) (*models.ChartResponse, error) {
	f.calls++
	f.params = params
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func TestSandboxDatetime(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1995-12-25T14:30:00+05:30", "1995-01-01T14:30:00+05:30"},
		{"2000-06-10T09:05:07+05:30", "2000-01-01T09:05:07+05:30"},
		{"2024-02-29T23:59:59+05:30", "2024-01-01T23:59:59+05:30"},
		// A non-IST offset keeps its wall-clock time but gets the fixed offset appended
		{"1988-07-04T06:15:30-07:00", "1988-01-01T06:15:30+05:30"},
	}

	for _, tt := range tests {
		got, err := SandboxDatetime(tt.input)
		if err != nil {
			t.Errorf("SandboxDatetime(%q) returned error: %v", tt.input, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("SandboxDatetime(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestSandboxDatetime_Invalid(t *testing.T) {
	for _, input := range []string{"", "25/12/1995", "1995-12-25", "1995-12-25 14:30:00"} {
		if _, err := SandboxDatetime(input); err == nil {
			t.Errorf("SandboxDatetime(%q) should fail", input)
		}
	}
}

func TestFlattenPlanets(t *testing.T) {
	houses := []models.ChartHouse{
		{HouseID: 1, Planets: []models.ChartPlanet{{Name: "Mars"}}},
		{HouseID: 5, Planets: []models.ChartPlanet{{Name: "Sun"}}},
	}

	planets := FlattenPlanets(houses)

	assert.Equal(t, map[string]int{"Mars": 1, "Sun": 5}, planets)
}

func TestFlattenPlanets_DuplicateNameLastWins(t *testing.T) {
	houses := []models.ChartHouse{
		{HouseID: 2, Planets: []models.ChartPlanet{{Name: "Moon"}}},
		{HouseID: 9, Planets: []models.ChartPlanet{{Name: "Moon"}}},
	}

	planets := FlattenPlanets(houses)

	assert.Equal(t, 9, planets["Moon"])
}

func TestFlattenPlanets_EmptyAndNameless(t *testing.T) {
	houses := []models.ChartHouse{
		{HouseID: 1},
		{HouseID: 3, Planets: []models.ChartPlanet{{Name: ""}}},
	}

	planets := FlattenPlanets(houses)

	assert.Empty(t, planets)
}

func TestGenerate_JSONBranch(t *testing.T) {
	body := `{
		"data": {
			"svg": "<svg>chart</svg>",
			"house": [
				{"house_id": 1, "planets": [{"name": "Mars"}, {"name": "Venus"}]},
				{"house_id": 7, "planets": [{"name": "Saturn"}]}
			],
			"mangal_dosha": {"has_dosha": true},
			"kaal_sarp_dosha": {"has_dosha": false},
			"pitra_dosha": {"has_dosha": false},
			"sade_sati": {"is_in_sade_sati": false}
		}
	}`
	client := &fakeAstrologyClient{
		resp: &models.ChartResponse{Body: []byte(body), ContentType: "application/json; charset=utf-8"},
	}
	svc := NewService(client, common.NewSilentLogger())

	result, err := svc.Generate(context.Background(), models.ChartRequest{
		Datetime:    "1995-12-25T14:30:00+05:30",
		Coordinates: "28.6139,77.2090",
	})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.True(t, result.SandboxMode)
	assert.Equal(t, "json", result.ResponseType)
	require.NotNil(t, result.SVG)
	assert.Equal(t, "<svg>chart</svg>", *result.SVG)
	assert.Equal(t, map[string]int{"Mars": 1, "Venus": 1, "Saturn": 7}, result.Planets)
	assert.JSONEq(t, `{"has_dosha": true}`, string(result.MangalDosha))
	assert.JSONEq(t, `{"is_in_sade_sati": false}`, string(result.SadeSati))

	// Defaults applied and sandbox date substituted before the upstream call
	assert.Equal(t, "lagna", client.params.ChartType)
	assert.Equal(t, "north-indian", client.params.ChartStyle)
	assert.Equal(t, "1995-01-01T14:30:00+05:30", client.params.Datetime)
}

func TestGenerate_SVGBranch(t *testing.T) {
	client := &fakeAstrologyClient{
		resp: &models.ChartResponse{Body: []byte("<svg>raw</svg>"), ContentType: "text/plain"},
	}
	svc := NewService(client, common.NewSilentLogger())

	result, err := svc.Generate(context.Background(), models.ChartRequest{
		Datetime:    "2000-06-10T09:05:07+05:30",
		Coordinates: "12.9716,77.5946",
		ChartType:   "navamsa",
		ChartStyle:  "south-indian",
	})
	require.NoError(t, err)

	assert.Equal(t, "svg", result.ResponseType)
	require.NotNil(t, result.SVG)
	assert.Equal(t, "<svg>raw</svg>", *result.SVG)
	assert.Empty(t, result.Planets)
	assert.Equal(t, "[]", string(result.HouseData))
	assert.Nil(t, result.MangalDosha)

	// Explicit overrides pass through unchanged
	assert.Equal(t, "navamsa", client.params.ChartType)
	assert.Equal(t, "south-indian", client.params.ChartStyle)
}

func TestGenerate_MissingRequiredFields(t *testing.T) {
	client := &fakeAstrologyClient{}
	svc := NewService(client, common.NewSilentLogger())

	tests := []models.ChartRequest{
		{},
		{Datetime: "1995-12-25T14:30:00+05:30"},
		{Coordinates: "28.6139,77.2090"},
	}

	for _, req := range tests {
		_, err := svc.Generate(context.Background(), req)
		require.Error(t, err)

		var valErr *common.ValidationError
		assert.True(t, errors.As(err, &valErr), "want ValidationError, got %T", err)
	}
	assert.Equal(t, 0, client.calls, "validation must fail before any upstream call")
}

func TestGenerate_InvalidDatetime(t *testing.T) {
	client := &fakeAstrologyClient{}
	svc := NewService(client, common.NewSilentLogger())

	_, err := svc.Generate(context.Background(), models.ChartRequest{
		Datetime:    "not-a-datetime",
		Coordinates: "28.6139,77.2090",
	})
	require.Error(t, err)

	var valErr *common.ValidationError
	assert.True(t, errors.As(err, &valErr), "want ValidationError, got %T", err)
}

func TestGenerate_UpstreamErrorPassedThrough(t *testing.T) {
	client := &fakeAstrologyClient{
		err: common.NewExternalServiceError("chart request failed", nil),
	}
	svc := NewService(client, common.NewSilentLogger())

	_, err := svc.Generate(context.Background(), models.ChartRequest{
		Datetime:    "1995-12-25T14:30:00+05:30",
		Coordinates: "28.6139,77.2090",
	})
	require.Error(t, err)

	var svcErr *common.ExternalServiceError
	assert.True(t, errors.As(err, &svcErr), "want ExternalServiceError, got %T", err)
}

package models

import "encoding/json"

// Default chart parameters applied when the client omits them.
const (
	DefaultChartType  = "lagna"
	DefaultChartStyle = "north-indian"
)

// ChartRequest is the client payload for POST /generate-kundli.
type ChartRequest struct {
	Datetime    string `json:"datetime"`    // ISO-8601 with UTC offset, e.g. 1995-12-25T14:30:00+05:30
	Coordinates string `json:"coordinates"` // "lat,lon"
	ChartType   string `json:"chart_type"`
	ChartStyle  string `json:"chart_style"`
}

// ChartPlanet is a planet entry inside an upstream house record.
type ChartPlanet struct {
	Name string `json:"name"`
}

// ChartHouse is an upstream house record carrying its occupying planets.
type ChartHouse struct {
	HouseID int           `json:"house_id"`
	Planets []ChartPlanet `json:"planets"`
}

// ChartResponse is the raw upstream chart reply before reshaping.
// The upstream returns either a JSON document or a bare SVG body;
// ContentType tells the service which one it got.
type ChartResponse struct {
	Body        []byte
	ContentType string
}

// ChartResult is the reshaped chart payload returned to the client.
type ChartResult struct {
	Success       bool            `json:"success"`
	SandboxMode   bool            `json:"isSandboxMode"`
	SVG           *string         `json:"svg"`
	HouseData     json.RawMessage `json:"houseData"`
	MangalDosha   json.RawMessage `json:"mangalDosha"`
	KaalSarpDosha json.RawMessage `json:"kaalSarpDosha"`
	PitraDosha    json.RawMessage `json:"pitraDosha"`
	SadeSati      json.RawMessage `json:"sadeSati"`
	Planets       map[string]int  `json:"planets"`
	ResponseType  string          `json:"responseType"` // "json" or "svg"
}

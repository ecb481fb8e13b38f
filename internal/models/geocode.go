package models

// GeocodePlace is a single match from the Nominatim search API.
// Latitude and longitude arrive as strings, which is how Nominatim
// serialises them.
type GeocodePlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// GeocodeResult is the reshaped geocoding payload returned to the client.
type GeocodeResult struct {
	Coordinates string `json:"coordinates"` // "lat,lon", both rounded to 4 decimals
	Location    string `json:"location"`
	Latitude    string `json:"latitude"`
	Longitude   string `json:"longitude"`
}

package model

// Coordinate represents a geographical location with a latitude and
// longitude, following the WGS 84 convention.
type Coordinate struct {
	Lat, Lon float64 // latitude and longitude of the geo-location
}

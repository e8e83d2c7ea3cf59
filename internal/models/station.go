package models

// Station represents a railway station with a fixed geographic position
type Station struct {
	ID        int64   `json:"id" db:"id"`
	Name      string  `json:"name" db:"name"`
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
	ImagePath *string `json:"image,omitempty" db:"image_path"`
}

// CreateStationRequest represents the request to create or update a station
type CreateStationRequest struct {
	Name      string   `json:"name" binding:"required"`
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
}

// StationFilter holds the supported list filters for stations
type StationFilter struct {
	Name         string
	LatitudeMin  *float64
	LatitudeMax  *float64
	LongitudeMin *float64
	LongitudeMax *float64
	Limit        int
	Offset       int
}

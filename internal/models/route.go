package models

// Route connects a source station to a destination station
type Route struct {
	ID            int64  `json:"id" db:"id"`
	SourceID      int64  `json:"source" db:"source_id"`
	DestinationID int64  `json:"destination" db:"destination_id"`
	Distance      *int64 `json:"distance" db:"distance"`
}

// RouteListItem is the list representation with denormalized station names
type RouteListItem struct {
	ID                 int64  `json:"id" db:"id"`
	SourceStation      string `json:"source_station" db:"source_station"`
	DestinationStation string `json:"destination_station" db:"destination_station"`
	Distance           *int64 `json:"distance" db:"distance"`
}

// RouteDetail embeds the full source and destination stations
type RouteDetail struct {
	ID          int64   `json:"id"`
	Source      Station `json:"source"`
	Destination Station `json:"destination"`
	Distance    *int64  `json:"distance"`
}

// CreateRouteRequest represents the request to create or update a route
type CreateRouteRequest struct {
	SourceID      int64  `json:"source" binding:"required"`
	DestinationID int64  `json:"destination" binding:"required"`
	Distance      *int64 `json:"distance"`
}

// RouteFilter holds the supported list filters for routes
type RouteFilter struct {
	Source      string // substring match on source station name
	Destination string // substring match on destination station name
	DistanceGT  *int64
	DistanceLT  *int64
	Limit       int
	Offset      int
}

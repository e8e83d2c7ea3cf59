package models

import (
	"math"
	"time"
)

// Journey is a scheduled trip of a train over a route with fixed departure and arrival.
// Route and train references are nullable: deleting either leaves the journey in place
// with the reference cleared.
type Journey struct {
	ID            int64     `json:"id" db:"id"`
	RouteID       *int64    `json:"route" db:"route_id"`
	TrainID       *int64    `json:"train" db:"train_id"`
	DepartureTime time.Time `json:"departure_time" db:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time" db:"arrival_time"`
}

// TotalTimeHr returns the journey duration in hours, rounded to 2 decimals
func (j *Journey) TotalTimeHr() float64 {
	hours := j.ArrivalTime.Sub(j.DepartureTime).Seconds() / 3600
	return math.Round(hours*100) / 100
}

// JourneyListItem is the list representation with denormalized names and seat counts
type JourneyListItem struct {
	ID            int64     `json:"id" db:"id"`
	Route         *string   `json:"route" db:"route"`
	Train         *string   `json:"train" db:"train"`
	DepartureTime time.Time `json:"departure_time" db:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time" db:"arrival_time"`
	TotalTimeHr   float64   `json:"total_time_hr" db:"total_time_hr"`
	TakenSeats    int       `json:"taken_seats" db:"taken_seats"`
	// FreeSeats is null when the journey has no train assigned
	FreeSeats *int `json:"free_seats" db:"free_seats"`
}

// JourneyDetail embeds the full route and train records
type JourneyDetail struct {
	ID            int64        `json:"id"`
	Route         *RouteDetail `json:"route"`
	Train         *TrainDetail `json:"train"`
	DepartureTime time.Time    `json:"departure_time"`
	ArrivalTime   time.Time    `json:"arrival_time"`
	TotalTimeHr   float64      `json:"total_time_hr"`
	TakenSeats    int          `json:"taken_seats"`
	FreeSeats     *int         `json:"free_seats"`
}

// CreateJourneyRequest represents the request to create or update a journey
type CreateJourneyRequest struct {
	RouteID       int64     `json:"route" binding:"required"`
	TrainID       int64     `json:"train" binding:"required"`
	DepartureTime time.Time `json:"departure_time" binding:"required"`
	ArrivalTime   time.Time `json:"arrival_time" binding:"required"`
}

// JourneySeatContext carries the seat layout a journey's tickets are validated against
type JourneySeatContext struct {
	JourneyID     int64 `db:"journey_id"`
	CargoNum      int   `db:"cargo_num"`
	PlacesInCargo int   `db:"places_in_cargo"`
}

// JourneyFilter holds the supported list filters for journeys
type JourneyFilter struct {
	DepartureAfter  *time.Time
	DepartureBefore *time.Time
	ArrivalAfter    *time.Time
	ArrivalBefore   *time.Time
	Source          string // substring match on route source station name
	Destination     string // substring match on route destination station name
	TrainType       string // substring match on train type name
	Limit           int
	Offset          int
}

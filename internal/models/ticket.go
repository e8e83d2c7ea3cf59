package models

import (
	"time"

	"github.com/google/uuid"
)

// Ticket is a single seat reservation on a journey, uniquely keyed by
// (cargo, seat, journey)
type Ticket struct {
	ID        int64 `json:"id" db:"id"`
	Cargo     int   `json:"cargo" db:"cargo"`
	Seat      int   `json:"seat" db:"seat"`
	JourneyID int64 `json:"journey" db:"journey_id"`
	OrderID   int64 `json:"order" db:"order_id"`
}

// TicketListItem is the list representation with denormalized journey info
type TicketListItem struct {
	ID            int64      `json:"id" db:"id"`
	Cargo         int        `json:"cargo" db:"cargo"`
	Seat          int        `json:"seat" db:"seat"`
	JourneyID     int64      `json:"journey" db:"journey_id"`
	OrderID       int64      `json:"order" db:"order_id"`
	Route         *string    `json:"route" db:"route"`
	DepartureTime *time.Time `json:"departure_time" db:"departure_time"`
}

// TicketRequest is a single requested seat inside an order
type TicketRequest struct {
	JourneyID int64 `json:"journey" binding:"required"`
	Cargo     int   `json:"cargo"`
	Seat      int   `json:"seat"`
}

// TicketFilter holds the supported list filters for tickets
type TicketFilter struct {
	JourneyID *int64
	Cargo     *int
	// OwnerID scopes results to tickets belonging to the user's own orders;
	// nil means no ownership scoping (staff)
	OwnerID *uuid.UUID
	Limit   int
	Offset  int
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Order is a user's purchase transaction containing one or more tickets,
// created atomically and never mutated afterwards
type Order struct {
	ID        int64     `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user" db:"user_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	Tickets   []Ticket  `json:"tickets"`
}

// CreateOrderRequest represents the request to create an order with its tickets
type CreateOrderRequest struct {
	Tickets []TicketRequest `json:"tickets" binding:"required,min=1,dive"`
}

// OrderFilter holds the supported list filters for orders
type OrderFilter struct {
	// UserID restricts results to a single user; always set for non-staff callers
	UserID        *uuid.UUID
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
	Limit         int
	Offset        int
}

package services

import (
	"fmt"

	"github.com/railbook/railway-booking-backend/internal/models"
)

// OrderValidator validates the ticket lines of an order against the seat
// layouts of their journeys. It is pure; callers supply the seat contexts.
//
// Seats already sold by other orders are NOT checked here. The unique
// constraint on (cargo, seat, journey_id) is the authority for that, so two
// concurrent orders can never both win the same seat.
type OrderValidator struct{}

// NewOrderValidator creates a new validator
func NewOrderValidator() *OrderValidator {
	return &OrderValidator{}
}

type seatKey struct {
	journeyID int64
	cargo     int
	seat      int
}

// ValidateTickets checks every ticket line, accumulating all violations.
// contexts maps journey id to its seat layout; a journey missing from the
// map does not exist or has no train assigned.
func (v *OrderValidator) ValidateTickets(tickets []models.TicketRequest, contexts map[int64]*models.JourneySeatContext) error {
	validationErr := &ValidationError{}
	seen := map[seatKey]bool{}

	for i, ticket := range tickets {
		if ticket.Cargo <= 0 {
			validationErr.add(CodeCargoNonPositive, fmt.Sprintf(
				"ticket %d: cargo must be positive, got %d", i, ticket.Cargo,
			))
		}
		if ticket.Seat <= 0 {
			validationErr.add(CodeSeatNonPositive, fmt.Sprintf(
				"ticket %d: seat must be positive, got %d", i, ticket.Seat,
			))
		}

		ctx, ok := contexts[ticket.JourneyID]
		if !ok {
			validationErr.add(CodeUnknownJourney, fmt.Sprintf(
				"ticket %d: journey %d does not exist or has no train assigned", i, ticket.JourneyID,
			))
		} else {
			if ticket.Cargo > ctx.CargoNum {
				validationErr.add(CodeCargoOutOfRange, fmt.Sprintf(
					"ticket %d: cargo must be in range [1, %d], got %d", i, ctx.CargoNum, ticket.Cargo,
				))
			}
			if ticket.Seat > ctx.PlacesInCargo {
				validationErr.add(CodeSeatOutOfRange, fmt.Sprintf(
					"ticket %d: seat must be in range [1, %d], got %d", i, ctx.PlacesInCargo, ticket.Seat,
				))
			}
		}

		key := seatKey{journeyID: ticket.JourneyID, cargo: ticket.Cargo, seat: ticket.Seat}
		if seen[key] {
			validationErr.add(CodeDuplicateSeatInOrder, fmt.Sprintf(
				"ticket %d: seat %d in cargo %d on journey %d appears more than once in this order",
				i, ticket.Seat, ticket.Cargo, ticket.JourneyID,
			))
		}
		seen[key] = true
	}

	return validationErr.orNil()
}

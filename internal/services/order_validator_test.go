package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/railbook/railway-booking-backend/internal/models"
)

func seatContexts() map[int64]*models.JourneySeatContext {
	// journey 5 runs a train with 2 cargos of 10 places
	return map[int64]*models.JourneySeatContext{
		5: {JourneyID: 5, CargoNum: 2, PlacesInCargo: 10},
	}
}

func violationCodes(t *testing.T, err error) []string {
	t.Helper()
	validationErr, ok := AsValidationError(err)
	require.True(t, ok, "expected a ValidationError, got %v", err)

	codes := make([]string, len(validationErr.Violations))
	for i, v := range validationErr.Violations {
		codes[i] = v.Code
	}
	return codes
}

func TestValidateTickets(t *testing.T) {
	validator := NewOrderValidator()

	t.Run("Valid Order", func(t *testing.T) {
		tickets := []models.TicketRequest{
			{JourneyID: 5, Cargo: 1, Seat: 1},
			{JourneyID: 5, Cargo: 2, Seat: 10},
		}

		err := validator.ValidateTickets(tickets, seatContexts())
		assert.NoError(t, err)
	})

	t.Run("Seat Non Positive", func(t *testing.T) {
		tickets := []models.TicketRequest{{JourneyID: 5, Cargo: 1, Seat: 0}}

		err := validator.ValidateTickets(tickets, seatContexts())
		assert.Contains(t, violationCodes(t, err), CodeSeatNonPositive)
	})

	t.Run("Cargo Non Positive", func(t *testing.T) {
		tickets := []models.TicketRequest{{JourneyID: 5, Cargo: -1, Seat: 3}}

		err := validator.ValidateTickets(tickets, seatContexts())
		assert.Contains(t, violationCodes(t, err), CodeCargoNonPositive)
	})

	t.Run("Seat Out Of Range", func(t *testing.T) {
		tickets := []models.TicketRequest{{JourneyID: 5, Cargo: 1, Seat: 11}}

		err := validator.ValidateTickets(tickets, seatContexts())
		codes := violationCodes(t, err)
		assert.Equal(t, []string{CodeSeatOutOfRange}, codes)
	})

	t.Run("Cargo Out Of Range", func(t *testing.T) {
		tickets := []models.TicketRequest{{JourneyID: 5, Cargo: 3, Seat: 1}}

		err := validator.ValidateTickets(tickets, seatContexts())
		codes := violationCodes(t, err)
		assert.Equal(t, []string{CodeCargoOutOfRange}, codes)
	})

	t.Run("Duplicate Seat In Order", func(t *testing.T) {
		tickets := []models.TicketRequest{
			{JourneyID: 5, Cargo: 1, Seat: 1},
			{JourneyID: 5, Cargo: 1, Seat: 1},
		}

		err := validator.ValidateTickets(tickets, seatContexts())
		codes := violationCodes(t, err)
		assert.Equal(t, []string{CodeDuplicateSeatInOrder}, codes)
	})

	t.Run("Same Seat On Different Journeys Is Fine", func(t *testing.T) {
		contexts := seatContexts()
		contexts[6] = &models.JourneySeatContext{JourneyID: 6, CargoNum: 2, PlacesInCargo: 10}
		tickets := []models.TicketRequest{
			{JourneyID: 5, Cargo: 1, Seat: 1},
			{JourneyID: 6, Cargo: 1, Seat: 1},
		}

		err := validator.ValidateTickets(tickets, contexts)
		assert.NoError(t, err)
	})

	t.Run("Unknown Journey", func(t *testing.T) {
		tickets := []models.TicketRequest{{JourneyID: 99, Cargo: 1, Seat: 1}}

		err := validator.ValidateTickets(tickets, seatContexts())
		codes := violationCodes(t, err)
		assert.Equal(t, []string{CodeUnknownJourney}, codes)
	})

	t.Run("Accumulates All Violations", func(t *testing.T) {
		tickets := []models.TicketRequest{
			{JourneyID: 5, Cargo: 0, Seat: 0},
			{JourneyID: 5, Cargo: 3, Seat: 11},
			{JourneyID: 5, Cargo: 3, Seat: 11},
			{JourneyID: 99, Cargo: 1, Seat: 1},
		}

		err := validator.ValidateTickets(tickets, seatContexts())
		codes := violationCodes(t, err)
		assert.Contains(t, codes, CodeCargoNonPositive)
		assert.Contains(t, codes, CodeSeatNonPositive)
		assert.Contains(t, codes, CodeCargoOutOfRange)
		assert.Contains(t, codes, CodeSeatOutOfRange)
		assert.Contains(t, codes, CodeDuplicateSeatInOrder)
		assert.Contains(t, codes, CodeUnknownJourney)
	})
}

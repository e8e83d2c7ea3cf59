package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/railbook/railway-booking-backend/internal/models"
)

func TestValidateRoute(t *testing.T) {
	validator := NewRouteValidator()

	distance := func(d int64) *int64 { return &d }

	t.Run("Valid", func(t *testing.T) {
		route := &models.Route{SourceID: 1, DestinationID: 2, Distance: distance(120)}
		assert.NoError(t, validator.Validate(route))
	})

	t.Run("Valid Without Distance", func(t *testing.T) {
		route := &models.Route{SourceID: 1, DestinationID: 2}
		assert.NoError(t, validator.Validate(route))
	})

	t.Run("Same Station", func(t *testing.T) {
		route := &models.Route{SourceID: 1, DestinationID: 1, Distance: distance(120)}
		err := validator.Validate(route)
		assert.Equal(t, []string{CodeSameStation}, violationCodes(t, err))
	})

	t.Run("Zero Distance", func(t *testing.T) {
		route := &models.Route{SourceID: 1, DestinationID: 2, Distance: distance(0)}
		err := validator.Validate(route)
		assert.Equal(t, []string{CodeNonPositiveDistance}, violationCodes(t, err))
	})

	t.Run("Both Violations Accumulate", func(t *testing.T) {
		route := &models.Route{SourceID: 1, DestinationID: 1, Distance: distance(-5)}
		err := validator.Validate(route)
		codes := violationCodes(t, err)
		assert.Contains(t, codes, CodeSameStation)
		assert.Contains(t, codes, CodeNonPositiveDistance)
	})
}

package services

import (
	"testing"

	"github.com/railbook/railway-booking-backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestValidateTrain(t *testing.T) {
	validator := NewTrainValidator()

	t.Run("Valid", func(t *testing.T) {
		train := &models.Train{Name: "Night Express", CargoNum: 4, PlacesInCargo: 40}
		assert.NoError(t, validator.Validate(train))
	})

	t.Run("Empty Train", func(t *testing.T) {
		train := &models.Train{Name: "Shell", CargoNum: 0, PlacesInCargo: 0}
		assert.NoError(t, validator.Validate(train))
	})

	t.Run("Negative Cargo Count", func(t *testing.T) {
		train := &models.Train{Name: "Bad", CargoNum: -1, PlacesInCargo: 40}
		err := validator.Validate(train)
		assert.Equal(t, []string{CodeNegativeCargoNum}, violationCodes(t, err))
	})

	t.Run("Negative Places In Cargo", func(t *testing.T) {
		train := &models.Train{Name: "Bad", CargoNum: 4, PlacesInCargo: -1}
		err := validator.Validate(train)
		assert.Equal(t, []string{CodeNegativePlaces}, violationCodes(t, err))
	})

	t.Run("Seats Without Cargo", func(t *testing.T) {
		train := &models.Train{Name: "Bad", CargoNum: 0, PlacesInCargo: 40}
		err := validator.Validate(train)
		assert.Equal(t, []string{CodeSeatsWithoutCargo}, violationCodes(t, err))
	})

	t.Run("Violations Accumulate", func(t *testing.T) {
		train := &models.Train{Name: "Bad", CargoNum: -1, PlacesInCargo: -1}
		err := validator.Validate(train)
		codes := violationCodes(t, err)
		assert.Contains(t, codes, CodeNegativeCargoNum)
		assert.Contains(t, codes, CodeNegativePlaces)
	})
}

package services

import (
	"fmt"

	"github.com/railbook/railway-booking-backend/internal/models"
)

// TrainValidator validates train writes.
// Rules:
// 1. Cargo count and seats per cargo cannot be negative
// 2. A train with zero cargos cannot declare seats per cargo
type TrainValidator struct{}

// NewTrainValidator creates a new validator
func NewTrainValidator() *TrainValidator {
	return &TrainValidator{}
}

// Validate checks a train, accumulating every violation
func (v *TrainValidator) Validate(train *models.Train) error {
	validationErr := &ValidationError{}

	if train.CargoNum < 0 {
		validationErr.add(CodeNegativeCargoNum, fmt.Sprintf(
			"cargo_num cannot be negative, got %d", train.CargoNum,
		))
	}
	if train.PlacesInCargo < 0 {
		validationErr.add(CodeNegativePlaces, fmt.Sprintf(
			"places_in_cargo cannot be negative, got %d", train.PlacesInCargo,
		))
	}
	if train.CargoNum == 0 && train.PlacesInCargo > 0 {
		validationErr.add(CodeSeatsWithoutCargo, "a train without cargos cannot have places_in_cargo set")
	}

	return validationErr.orNil()
}

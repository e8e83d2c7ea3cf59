package services

import (
	"fmt"

	"github.com/railbook/railway-booking-backend/internal/database"
	"github.com/railbook/railway-booking-backend/internal/models"
)

// JourneyValidator validates journey writes.
// Rules:
// 1. Arrival must be strictly after departure
// 2. The assigned train cannot serve two journeys whose time windows touch
//    or overlap. Boundaries are inclusive: a journey arriving at 12:00
//    conflicts with one departing at 12:00.
type JourneyValidator struct {
	journeyRepo *database.JourneyRepository
}

// NewJourneyValidator creates a new validator
func NewJourneyValidator(journeyRepo *database.JourneyRepository) *JourneyValidator {
	return &JourneyValidator{journeyRepo: journeyRepo}
}

// Validate checks a journey, accumulating every violation. excludeID is the
// journey being updated, 0 on create.
func (v *JourneyValidator) Validate(journey *models.Journey, excludeID int64) error {
	validationErr := &ValidationError{}

	if !journey.ArrivalTime.After(journey.DepartureTime) {
		validationErr.add(CodeInvalidTimeRange, "arrival_time must be after departure_time")
	}

	if journey.TrainID != nil {
		existing, err := v.journeyRepo.ListByTrain(*journey.TrainID, excludeID)
		if err != nil {
			return fmt.Errorf("failed to check train schedule: %w", err)
		}

		for _, other := range existing {
			if overlaps(journey, &other) {
				validationErr.add(CodeTrainOverlap, fmt.Sprintf(
					"train %d is already scheduled on journey %d from %s to %s",
					*journey.TrainID, other.ID,
					other.DepartureTime.Format("2006-01-02 15:04"),
					other.ArrivalTime.Format("2006-01-02 15:04"),
				))
			}
		}
	}

	return validationErr.orNil()
}

// overlaps reports whether two journey windows touch or intersect
func overlaps(a, b *models.Journey) bool {
	return !b.ArrivalTime.Before(a.DepartureTime) && !b.DepartureTime.After(a.ArrivalTime)
}

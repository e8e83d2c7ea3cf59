package services

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/railbook/railway-booking-backend/internal/database"
	"github.com/railbook/railway-booking-backend/internal/models"
)

// StationValidator validates station writes
type StationValidator struct {
	stationRepo *database.StationRepository
}

// NewStationValidator creates a new validator
func NewStationValidator(stationRepo *database.StationRepository) *StationValidator {
	return &StationValidator{stationRepo: stationRepo}
}

// Validate rejects a station whose exact (latitude, longitude) pair is
// already taken by another station. excludeID is the station being updated,
// 0 on create.
func (v *StationValidator) Validate(station *models.Station, excludeID int64) error {
	existing, err := v.stationRepo.GetByCoordinates(station.Latitude, station.Longitude, excludeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("failed to check station coordinates: %w", err)
	}

	validationErr := &ValidationError{}
	validationErr.add(CodeDuplicateCoordinates, fmt.Sprintf(
		"coordinates (%g, %g) are already taken by station %q",
		station.Latitude, station.Longitude, existing.Name,
	))
	return validationErr
}

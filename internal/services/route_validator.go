package services

import (
	"fmt"

	"github.com/railbook/railway-booking-backend/internal/models"
)

// RouteValidator validates route writes.
// Rules:
// 1. Source and destination must be different stations
// 2. Distance, when set, must be positive
// Station existence is left to the foreign keys.
type RouteValidator struct{}

// NewRouteValidator creates a new validator
func NewRouteValidator() *RouteValidator {
	return &RouteValidator{}
}

// Validate checks a route, accumulating every violation
func (v *RouteValidator) Validate(route *models.Route) error {
	validationErr := &ValidationError{}

	if route.SourceID == route.DestinationID {
		validationErr.add(CodeSameStation, "source and destination must be different stations")
	}
	if route.Distance != nil && *route.Distance <= 0 {
		validationErr.add(CodeNonPositiveDistance, fmt.Sprintf(
			"distance must be positive, got %d", *route.Distance,
		))
	}

	return validationErr.orNil()
}

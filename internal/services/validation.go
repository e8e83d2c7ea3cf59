package services

import (
	"errors"
	"strings"
)

// Violation codes returned to API clients. Clients branch on Code; Message
// is for humans.
const (
	CodeSeatNonPositive      = "SeatNonPositive"
	CodeCargoNonPositive     = "CargoNonPositive"
	CodeSeatOutOfRange       = "SeatOutOfRange"
	CodeCargoOutOfRange      = "CargoOutOfRange"
	CodeDuplicateSeatInOrder = "DuplicateSeatInOrder"
	CodeUnknownJourney       = "UnknownJourney"
	CodeInvalidTimeRange     = "InvalidTimeRange"
	CodeTrainOverlap         = "TrainOverlap"
	CodeDuplicateCoordinates = "DuplicateCoordinates"
	CodeSameStation          = "SameStation"
	CodeNonPositiveDistance  = "NonPositiveDistance"
	CodeNegativeCargoNum     = "NegativeCargoNum"
	CodeNegativePlaces       = "NegativePlacesInCargo"
	CodeSeatsWithoutCargo    = "SeatsWithoutCargo"
)

// Violation is a single business rule failure
type Violation struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationError carries every rule violation found in a request, not just
// the first one.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	messages := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		messages[i] = v.Message
	}
	return "validation failed: " + strings.Join(messages, "; ")
}

func (e *ValidationError) add(code, message string) {
	e.Violations = append(e.Violations, Violation{Code: code, Message: message})
}

// orNil returns the error only when at least one violation was recorded
func (e *ValidationError) orNil() error {
	if len(e.Violations) == 0 {
		return nil
	}
	return e
}

// AsValidationError unwraps a ValidationError if err carries one
func AsValidationError(err error) (*ValidationError, bool) {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr, true
	}
	return nil, false
}

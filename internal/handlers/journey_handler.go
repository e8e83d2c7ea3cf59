package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/railbook/railway-booking-backend/internal/database"
	"github.com/railbook/railway-booking-backend/internal/models"
	"github.com/railbook/railway-booking-backend/internal/services"
)

type JourneyHandler struct {
	journeyRepo *database.JourneyRepository
	validator   *services.JourneyValidator
}

func NewJourneyHandler(journeyRepo *database.JourneyRepository, validator *services.JourneyValidator) *JourneyHandler {
	return &JourneyHandler{
		journeyRepo: journeyRepo,
		validator:   validator,
	}
}

// ListJourneys retrieves journeys with time window, station and type filters
// GET /api/v1/journeys
func (h *JourneyHandler) ListJourneys(c *gin.Context) {
	limit, offset := pagination(c)
	filter := models.JourneyFilter{
		DepartureAfter:  timeQuery(c, "departure_after"),
		DepartureBefore: timeQuery(c, "departure_before"),
		ArrivalAfter:    timeQuery(c, "arrival_after"),
		ArrivalBefore:   timeQuery(c, "arrival_before"),
		Source:          c.Query("source"),
		Destination:     c.Query("destination"),
		TrainType:       c.Query("train_type"),
		Limit:           limit,
		Offset:          offset,
	}

	journeys, err := h.journeyRepo.List(filter)
	if err != nil {
		respondStorageError(c, err, "journey")
		return
	}

	c.JSON(http.StatusOK, journeys)
}

// GetJourney retrieves a journey with route, train and seat counts embedded
// GET /api/v1/journeys/:id
func (h *JourneyHandler) GetJourney(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	journey, err := h.journeyRepo.GetByID(id)
	if err != nil {
		respondStorageError(c, err, "journey")
		return
	}

	c.JSON(http.StatusOK, journey)
}

// CreateJourney schedules a new journey
// POST /api/v1/journeys
func (h *JourneyHandler) CreateJourney(c *gin.Context) {
	var req models.CreateJourneyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	journey := &models.Journey{
		RouteID:       &req.RouteID,
		TrainID:       &req.TrainID,
		DepartureTime: req.DepartureTime,
		ArrivalTime:   req.ArrivalTime,
	}

	if err := h.validator.Validate(journey, 0); err != nil {
		if respondValidationError(c, err) {
			return
		}
		respondStorageError(c, err, "journey")
		return
	}

	if err := h.journeyRepo.Create(journey); err != nil {
		respondStorageError(c, err, "journey")
		return
	}

	c.JSON(http.StatusCreated, journey)
}

// UpdateJourney reschedules a journey
// PUT /api/v1/journeys/:id
func (h *JourneyHandler) UpdateJourney(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req models.CreateJourneyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	journey := &models.Journey{
		ID:            id,
		RouteID:       &req.RouteID,
		TrainID:       &req.TrainID,
		DepartureTime: req.DepartureTime,
		ArrivalTime:   req.ArrivalTime,
	}

	if err := h.validator.Validate(journey, id); err != nil {
		if respondValidationError(c, err) {
			return
		}
		respondStorageError(c, err, "journey")
		return
	}

	if err := h.journeyRepo.Update(journey); err != nil {
		respondStorageError(c, err, "journey")
		return
	}

	updated, err := h.journeyRepo.GetByID(id)
	if err != nil {
		respondStorageError(c, err, "journey")
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteJourney removes a journey and, by cascade, every ticket sold on it
// DELETE /api/v1/journeys/:id
func (h *JourneyHandler) DeleteJourney(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.journeyRepo.Delete(id); err != nil {
		respondStorageError(c, err, "journey")
		return
	}

	c.Status(http.StatusNoContent)
}

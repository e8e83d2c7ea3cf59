package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/railbook/railway-booking-backend/internal/database"
	"github.com/railbook/railway-booking-backend/internal/models"
)

type TrainTypeHandler struct {
	trainTypeRepo *database.TrainTypeRepository
}

func NewTrainTypeHandler(trainTypeRepo *database.TrainTypeRepository) *TrainTypeHandler {
	return &TrainTypeHandler{trainTypeRepo: trainTypeRepo}
}

// ListTrainTypes retrieves train types
// GET /api/v1/trains/types
func (h *TrainTypeHandler) ListTrainTypes(c *gin.Context) {
	limit, offset := pagination(c)

	types, err := h.trainTypeRepo.List(limit, offset)
	if err != nil {
		respondStorageError(c, err, "train type")
		return
	}

	c.JSON(http.StatusOK, types)
}

// GetTrainType retrieves a single train type
// GET /api/v1/trains/types/:id
func (h *TrainTypeHandler) GetTrainType(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	trainType, err := h.trainTypeRepo.GetByID(id)
	if err != nil {
		respondStorageError(c, err, "train type")
		return
	}

	c.JSON(http.StatusOK, trainType)
}

// CreateTrainType creates a new train type
// POST /api/v1/trains/types
func (h *TrainTypeHandler) CreateTrainType(c *gin.Context) {
	var req models.CreateTrainTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	trainType := &models.TrainType{Name: req.Name}
	if err := h.trainTypeRepo.Create(trainType); err != nil {
		respondStorageError(c, err, "train type")
		return
	}

	c.JSON(http.StatusCreated, trainType)
}

// UpdateTrainType updates a train type
// PUT /api/v1/trains/types/:id
func (h *TrainTypeHandler) UpdateTrainType(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req models.CreateTrainTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	trainType := &models.TrainType{ID: id, Name: req.Name}
	if err := h.trainTypeRepo.Update(trainType); err != nil {
		respondStorageError(c, err, "train type")
		return
	}

	c.JSON(http.StatusOK, trainType)
}

// DeleteTrainType removes a train type. Trains of this type keep running
// with the reference cleared.
// DELETE /api/v1/trains/types/:id
func (h *TrainTypeHandler) DeleteTrainType(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.trainTypeRepo.Delete(id); err != nil {
		respondStorageError(c, err, "train type")
		return
	}

	c.Status(http.StatusNoContent)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/railbook/railway-booking-backend/internal/database"
	"github.com/railbook/railway-booking-backend/internal/models"
	"github.com/railbook/railway-booking-backend/internal/services"
	"github.com/railbook/railway-booking-backend/internal/storage"
)

type TrainHandler struct {
	trainRepo *database.TrainRepository
	validator *services.TrainValidator
	media     *storage.MediaStore
}

func NewTrainHandler(trainRepo *database.TrainRepository, validator *services.TrainValidator, media *storage.MediaStore) *TrainHandler {
	return &TrainHandler{
		trainRepo: trainRepo,
		validator: validator,
		media:     media,
	}
}

// ListTrains retrieves trains with an optional type name filter
// GET /api/v1/trains
func (h *TrainHandler) ListTrains(c *gin.Context) {
	limit, offset := pagination(c)
	filter := models.TrainFilter{
		Type:   c.Query("type"),
		Limit:  limit,
		Offset: offset,
	}

	trains, err := h.trainRepo.List(filter)
	if err != nil {
		respondStorageError(c, err, "train")
		return
	}

	c.JSON(http.StatusOK, trains)
}

// GetTrain retrieves a train with its type embedded
// GET /api/v1/trains/:id
func (h *TrainHandler) GetTrain(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	train, err := h.trainRepo.GetByID(id)
	if err != nil {
		respondStorageError(c, err, "train")
		return
	}

	c.JSON(http.StatusOK, train)
}

// CreateTrain creates a new train
// POST /api/v1/trains
func (h *TrainHandler) CreateTrain(c *gin.Context) {
	var req models.CreateTrainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	train := &models.Train{
		Name:          req.Name,
		CargoNum:      *req.CargoNum,
		PlacesInCargo: *req.PlacesInCargo,
		TrainTypeID:   req.TrainTypeID,
	}

	if err := h.validator.Validate(train); err != nil {
		respondValidationError(c, err)
		return
	}

	if err := h.trainRepo.Create(train); err != nil {
		respondStorageError(c, err, "train")
		return
	}

	c.JSON(http.StatusCreated, train)
}

// UpdateTrain updates a train
// PUT /api/v1/trains/:id
func (h *TrainHandler) UpdateTrain(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req models.CreateTrainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	train := &models.Train{
		ID:            id,
		Name:          req.Name,
		CargoNum:      *req.CargoNum,
		PlacesInCargo: *req.PlacesInCargo,
		TrainTypeID:   req.TrainTypeID,
	}

	if err := h.validator.Validate(train); err != nil {
		respondValidationError(c, err)
		return
	}

	if err := h.trainRepo.Update(train); err != nil {
		respondStorageError(c, err, "train")
		return
	}

	updated, err := h.trainRepo.GetByID(id)
	if err != nil {
		respondStorageError(c, err, "train")
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteTrain removes a train. Journeys keep running without a train and
// stop selling seats.
// DELETE /api/v1/trains/:id
func (h *TrainHandler) DeleteTrain(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.trainRepo.Delete(id); err != nil {
		respondStorageError(c, err, "train")
		return
	}

	c.Status(http.StatusNoContent)
}

// UploadTrainImage stores an image for a train
// POST /api/v1/trains/:id/upload-image
func (h *TrainHandler) UploadTrainImage(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	train, err := h.trainRepo.GetRow(id)
	if err != nil {
		respondStorageError(c, err, "train")
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	path, err := saveUpload(c, h.media, "trains", train.Name, file)
	if err != nil {
		return
	}

	if err := h.trainRepo.UpdateImagePath(id, path); err != nil {
		h.media.Remove(path)
		respondStorageError(c, err, "train")
		return
	}

	if train.ImagePath != nil {
		h.media.Remove(*train.ImagePath)
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "image": path})
}

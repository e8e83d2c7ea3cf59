package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/railbook/railway-booking-backend/internal/database"
	"github.com/railbook/railway-booking-backend/internal/models"
	"github.com/railbook/railway-booking-backend/internal/services"
	"github.com/railbook/railway-booking-backend/internal/storage"
)

type StationHandler struct {
	stationRepo *database.StationRepository
	validator   *services.StationValidator
	media       *storage.MediaStore
}

func NewStationHandler(stationRepo *database.StationRepository, validator *services.StationValidator, media *storage.MediaStore) *StationHandler {
	return &StationHandler{
		stationRepo: stationRepo,
		validator:   validator,
		media:       media,
	}
}

// ListStations retrieves stations with optional name and coordinate filters
// GET /api/v1/stations
func (h *StationHandler) ListStations(c *gin.Context) {
	limit, offset := pagination(c)
	filter := models.StationFilter{
		Name:         c.Query("name"),
		LatitudeMin:  floatQuery(c, "latitude_range_min"),
		LatitudeMax:  floatQuery(c, "latitude_range_max"),
		LongitudeMin: floatQuery(c, "longitude_range_min"),
		LongitudeMax: floatQuery(c, "longitude_range_max"),
		Limit:        limit,
		Offset:       offset,
	}

	stations, err := h.stationRepo.List(filter)
	if err != nil {
		respondStorageError(c, err, "station")
		return
	}

	c.JSON(http.StatusOK, stations)
}

// GetStation retrieves a single station
// GET /api/v1/stations/:id
func (h *StationHandler) GetStation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	station, err := h.stationRepo.GetByID(id)
	if err != nil {
		respondStorageError(c, err, "station")
		return
	}

	c.JSON(http.StatusOK, station)
}

// CreateStation creates a new station
// POST /api/v1/stations
func (h *StationHandler) CreateStation(c *gin.Context) {
	var req models.CreateStationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	station := &models.Station{
		Name:      req.Name,
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
	}

	if err := h.validator.Validate(station, 0); err != nil {
		if respondValidationError(c, err) {
			return
		}
		respondStorageError(c, err, "station")
		return
	}

	if err := h.stationRepo.Create(station); err != nil {
		respondStorageError(c, err, "station")
		return
	}

	c.JSON(http.StatusCreated, station)
}

// UpdateStation updates a station
// PUT /api/v1/stations/:id
func (h *StationHandler) UpdateStation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req models.CreateStationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	station := &models.Station{
		ID:        id,
		Name:      req.Name,
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
	}

	if err := h.validator.Validate(station, id); err != nil {
		if respondValidationError(c, err) {
			return
		}
		respondStorageError(c, err, "station")
		return
	}

	if err := h.stationRepo.Update(station); err != nil {
		respondStorageError(c, err, "station")
		return
	}

	updated, err := h.stationRepo.GetByID(id)
	if err != nil {
		respondStorageError(c, err, "station")
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteStation removes a station and, by cascade, its routes
// DELETE /api/v1/stations/:id
func (h *StationHandler) DeleteStation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.stationRepo.Delete(id); err != nil {
		respondStorageError(c, err, "station")
		return
	}

	c.Status(http.StatusNoContent)
}

// UploadStationImage stores an image for a station
// POST /api/v1/stations/:id/upload-image
func (h *StationHandler) UploadStationImage(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	station, err := h.stationRepo.GetByID(id)
	if err != nil {
		respondStorageError(c, err, "station")
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	path, err := saveUpload(c, h.media, "stations", station.Name, file)
	if err != nil {
		return
	}

	if err := h.stationRepo.UpdateImagePath(id, path); err != nil {
		h.media.Remove(path)
		respondStorageError(c, err, "station")
		return
	}

	if station.ImagePath != nil {
		h.media.Remove(*station.ImagePath)
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "image": path})
}

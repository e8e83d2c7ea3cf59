package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/railbook/railway-booking-backend/internal/database"
	"github.com/railbook/railway-booking-backend/internal/models"
	"github.com/railbook/railway-booking-backend/internal/storage"
)

type CrewHandler struct {
	crewRepo    *database.CrewRepository
	journeyRepo *database.JourneyRepository
	media       *storage.MediaStore
}

func NewCrewHandler(crewRepo *database.CrewRepository, journeyRepo *database.JourneyRepository, media *storage.MediaStore) *CrewHandler {
	return &CrewHandler{
		crewRepo:    crewRepo,
		journeyRepo: journeyRepo,
		media:       media,
	}
}

// ListCrew retrieves crew members with optional name and journey filters
// GET /api/v1/crew
func (h *CrewHandler) ListCrew(c *gin.Context) {
	limit, offset := pagination(c)
	filter := models.CrewFilter{
		FirstName: c.Query("first_name"),
		LastName:  c.Query("last_name"),
		JourneyID: int64Query(c, "journey"),
		Limit:     limit,
		Offset:    offset,
	}

	members, err := h.crewRepo.List(filter)
	if err != nil {
		respondStorageError(c, err, "crew member")
		return
	}

	c.JSON(http.StatusOK, members)
}

// GetCrew retrieves a crew member with the assigned journey embedded
// GET /api/v1/crew/:id
func (h *CrewHandler) GetCrew(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	crew, err := h.crewRepo.GetByID(id)
	if err != nil {
		respondStorageError(c, err, "crew member")
		return
	}

	detail := models.CrewDetail{
		ID:        crew.ID,
		FirstName: crew.FirstName,
		LastName:  crew.LastName,
		FullName:  crew.FullName(),
		ImagePath: crew.ImagePath,
	}

	if crew.JourneyID != nil {
		journey, err := h.journeyRepo.GetByID(*crew.JourneyID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			respondStorageError(c, err, "journey")
			return
		}
		detail.Journey = journey
	}

	c.JSON(http.StatusOK, detail)
}

// CreateCrew creates a new crew member
// POST /api/v1/crew
func (h *CrewHandler) CreateCrew(c *gin.Context) {
	var req models.CreateCrewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	crew := &models.Crew{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		JourneyID: req.JourneyID,
	}

	if err := h.crewRepo.Create(crew); err != nil {
		respondStorageError(c, err, "crew member")
		return
	}

	c.JSON(http.StatusCreated, crew)
}

// UpdateCrew updates a crew member
// PUT /api/v1/crew/:id
func (h *CrewHandler) UpdateCrew(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req models.CreateCrewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	crew := &models.Crew{
		ID:        id,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		JourneyID: req.JourneyID,
	}

	if err := h.crewRepo.Update(crew); err != nil {
		respondStorageError(c, err, "crew member")
		return
	}

	updated, err := h.crewRepo.GetByID(id)
	if err != nil {
		respondStorageError(c, err, "crew member")
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteCrew removes a crew member
// DELETE /api/v1/crew/:id
func (h *CrewHandler) DeleteCrew(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.crewRepo.Delete(id); err != nil {
		respondStorageError(c, err, "crew member")
		return
	}

	c.Status(http.StatusNoContent)
}

// UploadCrewImage stores a portrait for a crew member
// POST /api/v1/crew/:id/upload-image
func (h *CrewHandler) UploadCrewImage(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	crew, err := h.crewRepo.GetByID(id)
	if err != nil {
		respondStorageError(c, err, "crew member")
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	path, err := saveUpload(c, h.media, "crew", crew.FullName(), file)
	if err != nil {
		return
	}

	if err := h.crewRepo.UpdateImagePath(id, path); err != nil {
		h.media.Remove(path)
		respondStorageError(c, err, "crew member")
		return
	}

	if crew.ImagePath != nil {
		h.media.Remove(*crew.ImagePath)
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "image": path})
}

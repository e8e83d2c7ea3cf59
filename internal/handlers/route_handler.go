package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/railbook/railway-booking-backend/internal/database"
	"github.com/railbook/railway-booking-backend/internal/models"
	"github.com/railbook/railway-booking-backend/internal/services"
)

type RouteHandler struct {
	routeRepo *database.RouteRepository
	validator *services.RouteValidator
}

func NewRouteHandler(routeRepo *database.RouteRepository, validator *services.RouteValidator) *RouteHandler {
	return &RouteHandler{
		routeRepo: routeRepo,
		validator: validator,
	}
}

// ListRoutes retrieves routes with optional station name and distance filters
// GET /api/v1/routes
func (h *RouteHandler) ListRoutes(c *gin.Context) {
	limit, offset := pagination(c)
	filter := models.RouteFilter{
		Source:      c.Query("source"),
		Destination: c.Query("destination"),
		DistanceGT:  int64Query(c, "distance_gt"),
		DistanceLT:  int64Query(c, "distance_lt"),
		Limit:       limit,
		Offset:      offset,
	}

	routes, err := h.routeRepo.List(filter)
	if err != nil {
		respondStorageError(c, err, "route")
		return
	}

	c.JSON(http.StatusOK, routes)
}

// GetRoute retrieves a route with both stations embedded
// GET /api/v1/routes/:id
func (h *RouteHandler) GetRoute(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	route, err := h.routeRepo.GetByID(id)
	if err != nil {
		respondStorageError(c, err, "route")
		return
	}

	c.JSON(http.StatusOK, route)
}

// CreateRoute creates a new route
// POST /api/v1/routes
func (h *RouteHandler) CreateRoute(c *gin.Context) {
	var req models.CreateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	route := &models.Route{
		SourceID:      req.SourceID,
		DestinationID: req.DestinationID,
		Distance:      req.Distance,
	}

	if err := h.validator.Validate(route); err != nil {
		respondValidationError(c, err)
		return
	}

	if err := h.routeRepo.Create(route); err != nil {
		respondStorageError(c, err, "route")
		return
	}

	c.JSON(http.StatusCreated, route)
}

// UpdateRoute updates a route
// PUT /api/v1/routes/:id
func (h *RouteHandler) UpdateRoute(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req models.CreateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	route := &models.Route{
		ID:            id,
		SourceID:      req.SourceID,
		DestinationID: req.DestinationID,
		Distance:      req.Distance,
	}

	if err := h.validator.Validate(route); err != nil {
		respondValidationError(c, err)
		return
	}

	if err := h.routeRepo.Update(route); err != nil {
		respondStorageError(c, err, "route")
		return
	}

	updated, err := h.routeRepo.GetByID(id)
	if err != nil {
		respondStorageError(c, err, "route")
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteRoute removes a route
// DELETE /api/v1/routes/:id
func (h *RouteHandler) DeleteRoute(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.routeRepo.Delete(id); err != nil {
		respondStorageError(c, err, "route")
		return
	}

	c.Status(http.StatusNoContent)
}

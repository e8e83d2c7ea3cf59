package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/railbook/railway-booking-backend/internal/database"
	"github.com/railbook/railway-booking-backend/internal/middleware"
	"github.com/railbook/railway-booking-backend/internal/models"
)

type TicketHandler struct {
	ticketRepo *database.TicketRepository
}

func NewTicketHandler(ticketRepo *database.TicketRepository) *TicketHandler {
	return &TicketHandler{ticketRepo: ticketRepo}
}

// ListTickets retrieves the caller's own tickets with journey and cargo
// filters. Staff see everyone's.
// GET /api/v1/tickets
func (h *TicketHandler) ListTickets(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	limit, offset := pagination(c)
	filter := models.TicketFilter{
		JourneyID: int64Query(c, "journey"),
		Cargo:     intQuery(c, "cargo"),
		Limit:     limit,
		Offset:    offset,
	}
	if !userCtx.IsStaff {
		filter.OwnerID = &userCtx.UserID
	}

	tickets, err := h.ticketRepo.List(filter)
	if err != nil {
		respondStorageError(c, err, "ticket")
		return
	}

	c.JSON(http.StatusOK, tickets)
}

// GetTicket retrieves a single ticket the caller owns
// GET /api/v1/tickets/:id
func (h *TicketHandler) GetTicket(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	filter := models.TicketFilter{}
	if !userCtx.IsStaff {
		filter.OwnerID = &userCtx.UserID
	}

	ticket, err := h.ticketRepo.GetByID(id, filter)
	if err != nil {
		respondStorageError(c, err, "ticket")
		return
	}

	c.JSON(http.StatusOK, ticket)
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/railbook/railway-booking-backend/internal/database"
	"github.com/railbook/railway-booking-backend/internal/middleware"
	"github.com/railbook/railway-booking-backend/internal/models"
	"github.com/railbook/railway-booking-backend/internal/services"
)

type OrderHandler struct {
	orderService *services.OrderService
	orderRepo    *database.OrderRepository
}

func NewOrderHandler(orderService *services.OrderService, orderRepo *database.OrderRepository) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		orderRepo:    orderRepo,
	}
}

// ListOrders retrieves the caller's own orders. Staff see everyone's.
// GET /api/v1/orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	limit, offset := pagination(c)
	filter := models.OrderFilter{
		CreatedAfter:  timeQuery(c, "created_after"),
		CreatedBefore: timeQuery(c, "created_before"),
		Limit:         limit,
		Offset:        offset,
	}
	if userCtx.IsStaff {
		// staff may narrow the listing to a single user
		if raw := c.Query("user"); raw != "" {
			userID, err := uuid.Parse(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
				return
			}
			filter.UserID = &userID
		}
	} else {
		filter.UserID = &userCtx.UserID
	}

	orders, err := h.orderRepo.List(filter)
	if err != nil {
		respondStorageError(c, err, "order")
		return
	}

	c.JSON(http.StatusOK, orders)
}

// GetOrder retrieves one of the caller's orders with its tickets
// GET /api/v1/orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	order, err := h.orderRepo.GetByID(id)
	if err != nil {
		respondStorageError(c, err, "order")
		return
	}

	// a missing order and someone else's order look the same to the caller
	if !userCtx.IsStaff && order.UserID != userCtx.UserID {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// CreateOrder places an order buying every requested seat atomically
// POST /api/v1/orders
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.orderService.PlaceOrder(userCtx.UserID, &req)
	if err != nil {
		if respondValidationError(c, err) {
			return
		}
		if errors.Is(err, services.ErrSeatTaken) {
			middleware.TrackSeatConflict()
			c.JSON(http.StatusConflict, gin.H{"error": "This seat is already taken on this journey"})
			return
		}
		respondStorageError(c, err, "order")
		return
	}

	middleware.TrackOrderPlaced(len(order.Tickets))

	c.JSON(http.StatusCreated, order)
}

// DeleteOrder cancels one of the caller's orders, releasing its seats
// DELETE /api/v1/orders/:id
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	order, err := h.orderRepo.GetByID(id)
	if err != nil {
		respondStorageError(c, err, "order")
		return
	}

	if !userCtx.IsStaff && order.UserID != userCtx.UserID {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}

	if err := h.orderRepo.Delete(id); err != nil {
		respondStorageError(c, err, "order")
		return
	}

	c.Status(http.StatusNoContent)
}

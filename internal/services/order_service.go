package services

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/railbook/railway-booking-backend/internal/database"
	"github.com/railbook/railway-booking-backend/internal/models"
)

// ErrSeatTaken is returned when a seat was sold to a concurrent order
// between validation and commit. Clients can retry with another seat.
var ErrSeatTaken = errors.New("seat already taken on this journey")

// OrderService handles order placement
type OrderService struct {
	orderRepo   *database.OrderRepository
	journeyRepo *database.JourneyRepository
	validator   *OrderValidator
}

// NewOrderService creates a new order service
func NewOrderService(orderRepo *database.OrderRepository, journeyRepo *database.JourneyRepository) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		journeyRepo: journeyRepo,
		validator:   NewOrderValidator(),
	}
}

// PlaceOrder validates the requested tickets and inserts the order with all
// of them atomically. Either every ticket is created or none are.
func (s *OrderService) PlaceOrder(userID uuid.UUID, req *models.CreateOrderRequest) (*models.Order, error) {
	contexts, err := s.seatContexts(req.Tickets)
	if err != nil {
		return nil, err
	}

	if err := s.validator.ValidateTickets(req.Tickets, contexts); err != nil {
		return nil, err
	}

	order := &models.Order{UserID: userID}
	tickets := make([]models.Ticket, len(req.Tickets))
	for i, t := range req.Tickets {
		tickets[i] = models.Ticket{Cargo: t.Cargo, Seat: t.Seat, JourneyID: t.JourneyID}
	}

	if err := s.orderRepo.CreateWithTickets(order, tickets); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrSeatTaken
		}
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	return order, nil
}

// seatContexts loads the seat layout for every distinct journey referenced
// by the tickets. Journeys that do not exist are simply absent from the map.
func (s *OrderService) seatContexts(tickets []models.TicketRequest) (map[int64]*models.JourneySeatContext, error) {
	contexts := map[int64]*models.JourneySeatContext{}

	for _, ticket := range tickets {
		if _, done := contexts[ticket.JourneyID]; done {
			continue
		}

		ctx, err := s.journeyRepo.GetSeatContext(ticket.JourneyID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				continue
			}
			return nil, fmt.Errorf("failed to load journey %d: %w", ticket.JourneyID, err)
		}
		contexts[ticket.JourneyID] = ctx
	}

	return contexts, nil
}

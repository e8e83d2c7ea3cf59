package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/railbook/railway-booking-backend/internal/models"
)

// OrderRepository handles database operations for orders and their tickets.
// It needs the underlying sqlx handle because order creation runs in a
// transaction.
type OrderRepository struct {
	db *sqlx.DB
}

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// CreateWithTickets inserts an order and all of its tickets in one
// transaction. Any failure, including a (cargo, seat, journey) unique
// violation raised by a concurrent order, rolls back the whole batch;
// partial orders are never persisted.
func (r *OrderRepository) CreateWithTickets(order *models.Order, tickets []models.Ticket) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	err = tx.QueryRow(
		`INSERT INTO orders (user_id) VALUES ($1) RETURNING id, created_at`,
		order.UserID,
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to create order: %w", err)
	}

	for i := range tickets {
		tickets[i].OrderID = order.ID
		err = tx.QueryRow(
			`INSERT INTO tickets (cargo, seat, journey_id, order_id) VALUES ($1, $2, $3, $4) RETURNING id`,
			tickets[i].Cargo, tickets[i].Seat, tickets[i].JourneyID, tickets[i].OrderID,
		).Scan(&tickets[i].ID)
		if err != nil {
			tx.Rollback()
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}

	order.Tickets = tickets
	return nil
}

// GetByID retrieves an order with its tickets
func (r *OrderRepository) GetByID(id int64) (*models.Order, error) {
	order := &models.Order{}

	err := r.db.QueryRow(
		`SELECT id, user_id, created_at FROM orders WHERE id = $1`,
		id,
	).Scan(&order.ID, &order.UserID, &order.CreatedAt)
	if err != nil {
		return nil, err
	}

	tickets, err := r.ticketsForOrders([]int64{order.ID})
	if err != nil {
		return nil, err
	}
	order.Tickets = tickets[order.ID]
	if order.Tickets == nil {
		order.Tickets = []models.Ticket{}
	}

	return order, nil
}

// List retrieves orders matching the filter, each with its tickets attached
func (r *OrderRepository) List(filter models.OrderFilter) ([]models.Order, error) {
	query := `
		SELECT id, user_id, created_at
		FROM orders
		WHERE 1=1
	`
	args := []interface{}{}

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		query += fmt.Sprintf(" AND user_id = $%d", len(args))
	}
	if filter.CreatedAfter != nil {
		args = append(args, *filter.CreatedAfter)
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if filter.CreatedBefore != nil {
		args = append(args, *filter.CreatedBefore)
		query += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}

	args = append(args, filter.Limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))
	args = append(args, filter.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	orderIDs := []int64{}
	for rows.Next() {
		var order models.Order
		if err := rows.Scan(&order.ID, &order.UserID, &order.CreatedAt); err != nil {
			return nil, err
		}
		order.Tickets = []models.Ticket{}
		orders = append(orders, order)
		orderIDs = append(orderIDs, order.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(orderIDs) == 0 {
		return orders, nil
	}

	ticketsByOrder, err := r.ticketsForOrders(orderIDs)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if tickets, ok := ticketsByOrder[orders[i].ID]; ok {
			orders[i].Tickets = tickets
		}
	}

	return orders, nil
}

// Delete removes an order and, by cascade, its tickets
func (r *OrderRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return requireRowsAffected(result, "order")
}

// ticketsForOrders loads the tickets for a set of orders in one query
func (r *OrderRepository) ticketsForOrders(orderIDs []int64) (map[int64][]models.Ticket, error) {
	query, args, err := sqlx.In(
		`SELECT id, cargo, seat, journey_id, order_id FROM tickets WHERE order_id IN (?) ORDER BY id`,
		orderIDs,
	)
	if err != nil {
		return nil, err
	}
	query = r.db.Rebind(query)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load order tickets: %w", err)
	}
	defer rows.Close()

	tickets := map[int64][]models.Ticket{}
	for rows.Next() {
		var ticket models.Ticket
		if err := rows.Scan(&ticket.ID, &ticket.Cargo, &ticket.Seat, &ticket.JourneyID, &ticket.OrderID); err != nil {
			return nil, err
		}
		tickets[ticket.OrderID] = append(tickets[ticket.OrderID], ticket)
	}

	return tickets, rows.Err()
}

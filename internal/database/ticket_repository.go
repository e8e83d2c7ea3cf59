package database

import (
	"database/sql"
	"fmt"

	"github.com/railbook/railway-booking-backend/internal/models"
)

// TicketRepository handles read-only access to the tickets table. Tickets are
// only ever written through OrderRepository.CreateWithTickets.
type TicketRepository struct {
	db DB
}

// NewTicketRepository creates a new TicketRepository
func NewTicketRepository(db DB) *TicketRepository {
	return &TicketRepository{db: db}
}

// GetByID retrieves a ticket with denormalized journey info. When ownerID is
// non-nil the ticket must belong to one of that user's orders.
func (r *TicketRepository) GetByID(id int64, filter models.TicketFilter) (*models.TicketListItem, error) {
	query := `
		SELECT tk.id, tk.cargo, tk.seat, tk.journey_id, tk.order_id,
			   src.name || ' -> ' || dst.name AS route,
			   j.departure_time
		FROM tickets tk
		JOIN orders o ON o.id = tk.order_id
		JOIN journeys j ON j.id = tk.journey_id
		LEFT JOIN routes rt ON rt.id = j.route_id
		LEFT JOIN stations src ON src.id = rt.source_id
		LEFT JOIN stations dst ON dst.id = rt.destination_id
		WHERE tk.id = $1
	`
	args := []interface{}{id}

	if filter.OwnerID != nil {
		args = append(args, *filter.OwnerID)
		query += fmt.Sprintf(" AND o.user_id = $%d", len(args))
	}

	return r.scanTicket(r.db.QueryRow(query, args...))
}

// List retrieves tickets matching the filter, ordered by journey departure
func (r *TicketRepository) List(filter models.TicketFilter) ([]models.TicketListItem, error) {
	query := `
		SELECT tk.id, tk.cargo, tk.seat, tk.journey_id, tk.order_id,
			   src.name || ' -> ' || dst.name AS route,
			   j.departure_time
		FROM tickets tk
		JOIN orders o ON o.id = tk.order_id
		JOIN journeys j ON j.id = tk.journey_id
		LEFT JOIN routes rt ON rt.id = j.route_id
		LEFT JOIN stations src ON src.id = rt.source_id
		LEFT JOIN stations dst ON dst.id = rt.destination_id
		WHERE 1=1
	`
	args := []interface{}{}

	if filter.OwnerID != nil {
		args = append(args, *filter.OwnerID)
		query += fmt.Sprintf(" AND o.user_id = $%d", len(args))
	}
	if filter.JourneyID != nil {
		args = append(args, *filter.JourneyID)
		query += fmt.Sprintf(" AND tk.journey_id = $%d", len(args))
	}
	if filter.Cargo != nil {
		args = append(args, *filter.Cargo)
		query += fmt.Sprintf(" AND tk.cargo = $%d", len(args))
	}

	args = append(args, filter.Limit)
	query += fmt.Sprintf(" ORDER BY j.departure_time, tk.id LIMIT $%d", len(args))
	args = append(args, filter.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	defer rows.Close()

	tickets := []models.TicketListItem{}
	for rows.Next() {
		ticket, err := r.scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, *ticket)
	}

	return tickets, rows.Err()
}

// CountForJourney returns the number of sold tickets on a journey
func (r *TicketRepository) CountForJourney(journeyID int64) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM tickets WHERE journey_id = $1`, journeyID).Scan(&count)
	return count, err
}

// scanTicket scans a single ticket row
func (r *TicketRepository) scanTicket(row scanner) (*models.TicketListItem, error) {
	ticket := &models.TicketListItem{}
	var route sql.NullString
	var departure sql.NullTime

	err := row.Scan(
		&ticket.ID, &ticket.Cargo, &ticket.Seat, &ticket.JourneyID, &ticket.OrderID,
		&route, &departure,
	)
	if err != nil {
		return nil, err
	}

	if route.Valid {
		ticket.Route = &route.String
	}
	if departure.Valid {
		ticket.DepartureTime = &departure.Time
	}

	return ticket, nil
}

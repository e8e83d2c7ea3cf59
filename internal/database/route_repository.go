package database

import (
	"database/sql"
	"fmt"

	"github.com/railbook/railway-booking-backend/internal/models"
)

// RouteRepository handles database operations for the routes table
type RouteRepository struct {
	db DB
}

// NewRouteRepository creates a new RouteRepository
func NewRouteRepository(db DB) *RouteRepository {
	return &RouteRepository{db: db}
}

// Create inserts a new route
func (r *RouteRepository) Create(route *models.Route) error {
	query := `
		INSERT INTO routes (source_id, destination_id, distance)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRow(query, route.SourceID, route.DestinationID, route.Distance).
		Scan(&route.ID)
	if err != nil {
		return fmt.Errorf("failed to create route: %w", err)
	}

	return nil
}

// GetByID retrieves a route with its stations embedded
func (r *RouteRepository) GetByID(id int64) (*models.RouteDetail, error) {
	query := `
		SELECT r.id, r.distance,
			   src.id, src.name, src.latitude, src.longitude, src.image_path,
			   dst.id, dst.name, dst.latitude, dst.longitude, dst.image_path
		FROM routes r
		JOIN stations src ON src.id = r.source_id
		JOIN stations dst ON dst.id = r.destination_id
		WHERE r.id = $1
	`

	detail := &models.RouteDetail{}
	var distance sql.NullInt64
	var srcImage, dstImage sql.NullString

	err := r.db.QueryRow(query, id).Scan(
		&detail.ID, &distance,
		&detail.Source.ID, &detail.Source.Name, &detail.Source.Latitude, &detail.Source.Longitude, &srcImage,
		&detail.Destination.ID, &detail.Destination.Name, &detail.Destination.Latitude, &detail.Destination.Longitude, &dstImage,
	)
	if err != nil {
		return nil, err
	}

	if distance.Valid {
		detail.Distance = &distance.Int64
	}
	if srcImage.Valid {
		detail.Source.ImagePath = &srcImage.String
	}
	if dstImage.Valid {
		detail.Destination.ImagePath = &dstImage.String
	}

	return detail, nil
}

// GetRow retrieves the raw route row without joins
func (r *RouteRepository) GetRow(id int64) (*models.Route, error) {
	query := `
		SELECT id, source_id, destination_id, distance
		FROM routes
		WHERE id = $1
	`

	route := &models.Route{}
	var distance sql.NullInt64

	err := r.db.QueryRow(query, id).Scan(&route.ID, &route.SourceID, &route.DestinationID, &distance)
	if err != nil {
		return nil, err
	}

	if distance.Valid {
		route.Distance = &distance.Int64
	}

	return route, nil
}

// List retrieves routes matching the filter, with denormalized station names
func (r *RouteRepository) List(filter models.RouteFilter) ([]models.RouteListItem, error) {
	query := `
		SELECT r.id, src.name AS source_station, dst.name AS destination_station, r.distance
		FROM routes r
		JOIN stations src ON src.id = r.source_id
		JOIN stations dst ON dst.id = r.destination_id
		WHERE 1=1
	`
	args := []interface{}{}

	if filter.Source != "" {
		args = append(args, "%"+filter.Source+"%")
		query += fmt.Sprintf(" AND src.name ILIKE $%d", len(args))
	}
	if filter.Destination != "" {
		args = append(args, "%"+filter.Destination+"%")
		query += fmt.Sprintf(" AND dst.name ILIKE $%d", len(args))
	}
	if filter.DistanceGT != nil {
		args = append(args, *filter.DistanceGT)
		query += fmt.Sprintf(" AND r.distance >= $%d", len(args))
	}
	if filter.DistanceLT != nil {
		args = append(args, *filter.DistanceLT)
		query += fmt.Sprintf(" AND r.distance <= $%d", len(args))
	}

	args = append(args, filter.Limit)
	query += fmt.Sprintf(" ORDER BY r.id LIMIT $%d", len(args))
	args = append(args, filter.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list routes: %w", err)
	}
	defer rows.Close()

	routes := []models.RouteListItem{}
	for rows.Next() {
		var item models.RouteListItem
		var distance sql.NullInt64

		if err := rows.Scan(&item.ID, &item.SourceStation, &item.DestinationStation, &distance); err != nil {
			return nil, err
		}
		if distance.Valid {
			item.Distance = &distance.Int64
		}
		routes = append(routes, item)
	}

	return routes, rows.Err()
}

// Update updates a route
func (r *RouteRepository) Update(route *models.Route) error {
	query := `
		UPDATE routes
		SET source_id = $2, destination_id = $3, distance = $4
		WHERE id = $1
	`

	result, err := r.db.Exec(query, route.ID, route.SourceID, route.DestinationID, route.Distance)
	if err != nil {
		return err
	}

	return requireRowsAffected(result, "route")
}

// Delete removes a route. Journeys referencing it keep running with the
// reference cleared (set-null cascade in the schema).
func (r *RouteRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM routes WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return requireRowsAffected(result, "route")
}

package database

import (
	"database/sql"
	"fmt"

	"github.com/railbook/railway-booking-backend/internal/models"
)

// StationRepository handles database operations for the stations table
type StationRepository struct {
	db DB
}

// NewStationRepository creates a new StationRepository
func NewStationRepository(db DB) *StationRepository {
	return &StationRepository{db: db}
}

// Create inserts a new station
func (r *StationRepository) Create(station *models.Station) error {
	query := `
		INSERT INTO stations (name, latitude, longitude)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRow(query, station.Name, station.Latitude, station.Longitude).
		Scan(&station.ID)
	if err != nil {
		return fmt.Errorf("failed to create station: %w", err)
	}

	return nil
}

// GetByID retrieves a station by id
func (r *StationRepository) GetByID(id int64) (*models.Station, error) {
	query := `
		SELECT id, name, latitude, longitude, image_path
		FROM stations
		WHERE id = $1
	`

	return r.scanStation(r.db.QueryRow(query, id))
}

// GetByCoordinates retrieves the station occupying the exact (latitude, longitude)
// pair, excluding excludeID (pass 0 on create). Returns sql.ErrNoRows when the
// position is free.
func (r *StationRepository) GetByCoordinates(latitude, longitude float64, excludeID int64) (*models.Station, error) {
	query := `
		SELECT id, name, latitude, longitude, image_path
		FROM stations
		WHERE latitude = $1 AND longitude = $2 AND id != $3
	`

	return r.scanStation(r.db.QueryRow(query, latitude, longitude, excludeID))
}

// List retrieves stations matching the filter
func (r *StationRepository) List(filter models.StationFilter) ([]models.Station, error) {
	query := `
		SELECT id, name, latitude, longitude, image_path
		FROM stations
		WHERE 1=1
	`
	args := []interface{}{}

	if filter.Name != "" {
		args = append(args, "%"+filter.Name+"%")
		query += fmt.Sprintf(" AND name ILIKE $%d", len(args))
	}
	if filter.LatitudeMin != nil {
		args = append(args, *filter.LatitudeMin)
		query += fmt.Sprintf(" AND latitude >= $%d", len(args))
	}
	if filter.LatitudeMax != nil {
		args = append(args, *filter.LatitudeMax)
		query += fmt.Sprintf(" AND latitude <= $%d", len(args))
	}
	if filter.LongitudeMin != nil {
		args = append(args, *filter.LongitudeMin)
		query += fmt.Sprintf(" AND longitude >= $%d", len(args))
	}
	if filter.LongitudeMax != nil {
		args = append(args, *filter.LongitudeMax)
		query += fmt.Sprintf(" AND longitude <= $%d", len(args))
	}

	args = append(args, filter.Limit)
	query += fmt.Sprintf(" ORDER BY name LIMIT $%d", len(args))
	args = append(args, filter.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list stations: %w", err)
	}
	defer rows.Close()

	stations := []models.Station{}
	for rows.Next() {
		var station models.Station
		var imagePath sql.NullString

		if err := rows.Scan(&station.ID, &station.Name, &station.Latitude, &station.Longitude, &imagePath); err != nil {
			return nil, err
		}
		if imagePath.Valid {
			station.ImagePath = &imagePath.String
		}
		stations = append(stations, station)
	}

	return stations, rows.Err()
}

// Update updates a station's mutable fields
func (r *StationRepository) Update(station *models.Station) error {
	query := `
		UPDATE stations
		SET name = $2, latitude = $3, longitude = $4
		WHERE id = $1
	`

	result, err := r.db.Exec(query, station.ID, station.Name, station.Latitude, station.Longitude)
	if err != nil {
		return err
	}

	return requireRowsAffected(result, "station")
}

// UpdateImagePath records the stored image path for a station
func (r *StationRepository) UpdateImagePath(id int64, path string) error {
	result, err := r.db.Exec(`UPDATE stations SET image_path = $2 WHERE id = $1`, id, path)
	if err != nil {
		return err
	}

	return requireRowsAffected(result, "station")
}

// Delete removes a station. Routes referencing it are removed by cascade.
func (r *StationRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM stations WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return requireRowsAffected(result, "station")
}

// scanStation scans a single station row
func (r *StationRepository) scanStation(row *sql.Row) (*models.Station, error) {
	station := &models.Station{}
	var imagePath sql.NullString

	err := row.Scan(&station.ID, &station.Name, &station.Latitude, &station.Longitude, &imagePath)
	if err != nil {
		return nil, err
	}

	if imagePath.Valid {
		station.ImagePath = &imagePath.String
	}

	return station, nil
}

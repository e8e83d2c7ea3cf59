package database

import (
	"database/sql"
	"fmt"

	"github.com/railbook/railway-booking-backend/internal/models"
)

// CrewRepository handles database operations for the crew table
type CrewRepository struct {
	db DB
}

// NewCrewRepository creates a new CrewRepository
func NewCrewRepository(db DB) *CrewRepository {
	return &CrewRepository{db: db}
}

// Create inserts a new crew member
func (r *CrewRepository) Create(crew *models.Crew) error {
	query := `
		INSERT INTO crew (first_name, last_name, journey_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRow(query, crew.FirstName, crew.LastName, crew.JourneyID).
		Scan(&crew.ID)
	if err != nil {
		return fmt.Errorf("failed to create crew member: %w", err)
	}

	return nil
}

// GetByID retrieves a crew member by id
func (r *CrewRepository) GetByID(id int64) (*models.Crew, error) {
	query := `
		SELECT id, first_name, last_name, journey_id, image_path
		FROM crew
		WHERE id = $1
	`

	return r.scanCrew(r.db.QueryRow(query, id))
}

// List retrieves crew members matching the filter
func (r *CrewRepository) List(filter models.CrewFilter) ([]models.CrewListItem, error) {
	query := `
		SELECT id, first_name, last_name, journey_id, image_path
		FROM crew
		WHERE 1=1
	`
	args := []interface{}{}

	if filter.FirstName != "" {
		args = append(args, "%"+filter.FirstName+"%")
		query += fmt.Sprintf(" AND first_name ILIKE $%d", len(args))
	}
	if filter.LastName != "" {
		args = append(args, "%"+filter.LastName+"%")
		query += fmt.Sprintf(" AND last_name ILIKE $%d", len(args))
	}
	if filter.JourneyID != nil {
		args = append(args, *filter.JourneyID)
		query += fmt.Sprintf(" AND journey_id = $%d", len(args))
	}

	args = append(args, filter.Limit)
	query += fmt.Sprintf(" ORDER BY last_name, first_name LIMIT $%d", len(args))
	args = append(args, filter.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list crew: %w", err)
	}
	defer rows.Close()

	members := []models.CrewListItem{}
	for rows.Next() {
		crew, err := r.scanCrew(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, models.CrewListItem{
			ID:        crew.ID,
			FirstName: crew.FirstName,
			LastName:  crew.LastName,
			FullName:  crew.FullName(),
			JourneyID: crew.JourneyID,
			ImagePath: crew.ImagePath,
		})
	}

	return members, rows.Err()
}

// Update updates a crew member
func (r *CrewRepository) Update(crew *models.Crew) error {
	query := `
		UPDATE crew
		SET first_name = $2, last_name = $3, journey_id = $4
		WHERE id = $1
	`

	result, err := r.db.Exec(query, crew.ID, crew.FirstName, crew.LastName, crew.JourneyID)
	if err != nil {
		return err
	}

	return requireRowsAffected(result, "crew member")
}

// UpdateImagePath records the stored image path for a crew member
func (r *CrewRepository) UpdateImagePath(id int64, path string) error {
	result, err := r.db.Exec(`UPDATE crew SET image_path = $2 WHERE id = $1`, id, path)
	if err != nil {
		return err
	}

	return requireRowsAffected(result, "crew member")
}

// Delete removes a crew member
func (r *CrewRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM crew WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return requireRowsAffected(result, "crew member")
}

// scanCrew scans a single crew row
func (r *CrewRepository) scanCrew(row scanner) (*models.Crew, error) {
	crew := &models.Crew{}
	var journeyID sql.NullInt64
	var imagePath sql.NullString

	err := row.Scan(&crew.ID, &crew.FirstName, &crew.LastName, &journeyID, &imagePath)
	if err != nil {
		return nil, err
	}

	if journeyID.Valid {
		crew.JourneyID = &journeyID.Int64
	}
	if imagePath.Valid {
		crew.ImagePath = &imagePath.String
	}

	return crew, nil
}

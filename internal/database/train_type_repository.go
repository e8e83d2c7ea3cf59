package database

import (
	"fmt"

	"github.com/railbook/railway-booking-backend/internal/models"
)

// TrainTypeRepository handles database operations for the train_types table
type TrainTypeRepository struct {
	db DB
}

// NewTrainTypeRepository creates a new TrainTypeRepository
func NewTrainTypeRepository(db DB) *TrainTypeRepository {
	return &TrainTypeRepository{db: db}
}

// Create inserts a new train type
func (r *TrainTypeRepository) Create(trainType *models.TrainType) error {
	query := `
		INSERT INTO train_types (name)
		VALUES ($1)
		RETURNING id
	`

	if err := r.db.QueryRow(query, trainType.Name).Scan(&trainType.ID); err != nil {
		return fmt.Errorf("failed to create train type: %w", err)
	}

	return nil
}

// GetByID retrieves a train type by id
func (r *TrainTypeRepository) GetByID(id int64) (*models.TrainType, error) {
	trainType := &models.TrainType{}

	err := r.db.QueryRow(`SELECT id, name FROM train_types WHERE id = $1`, id).
		Scan(&trainType.ID, &trainType.Name)
	if err != nil {
		return nil, err
	}

	return trainType, nil
}

// List retrieves all train types with pagination
func (r *TrainTypeRepository) List(limit, offset int) ([]models.TrainType, error) {
	rows, err := r.db.Query(`SELECT id, name FROM train_types ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list train types: %w", err)
	}
	defer rows.Close()

	types := []models.TrainType{}
	for rows.Next() {
		var trainType models.TrainType
		if err := rows.Scan(&trainType.ID, &trainType.Name); err != nil {
			return nil, err
		}
		types = append(types, trainType)
	}

	return types, rows.Err()
}

// Update renames a train type
func (r *TrainTypeRepository) Update(trainType *models.TrainType) error {
	result, err := r.db.Exec(`UPDATE train_types SET name = $2 WHERE id = $1`, trainType.ID, trainType.Name)
	if err != nil {
		return err
	}

	return requireRowsAffected(result, "train type")
}

// Delete removes a train type. Trains referencing it keep the reference cleared.
func (r *TrainTypeRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM train_types WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return requireRowsAffected(result, "train type")
}

package database

import (
	"database/sql"
	"fmt"

	"github.com/railbook/railway-booking-backend/internal/models"
)

// TrainRepository handles database operations for the trains table
type TrainRepository struct {
	db DB
}

// NewTrainRepository creates a new TrainRepository
func NewTrainRepository(db DB) *TrainRepository {
	return &TrainRepository{db: db}
}

// Create inserts a new train
func (r *TrainRepository) Create(train *models.Train) error {
	query := `
		INSERT INTO trains (name, cargo_num, places_in_cargo, train_type_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRow(query, train.Name, train.CargoNum, train.PlacesInCargo, train.TrainTypeID).
		Scan(&train.ID)
	if err != nil {
		return fmt.Errorf("failed to create train: %w", err)
	}

	return nil
}

// GetByID retrieves a train with its type embedded
func (r *TrainRepository) GetByID(id int64) (*models.TrainDetail, error) {
	query := `
		SELECT t.id, t.name, t.cargo_num, t.places_in_cargo, t.image_path,
			   tt.id, tt.name
		FROM trains t
		LEFT JOIN train_types tt ON tt.id = t.train_type_id
		WHERE t.id = $1
	`

	detail := &models.TrainDetail{}
	var imagePath sql.NullString
	var typeID sql.NullInt64
	var typeName sql.NullString

	err := r.db.QueryRow(query, id).Scan(
		&detail.ID, &detail.Name, &detail.CargoNum, &detail.PlacesInCargo, &imagePath,
		&typeID, &typeName,
	)
	if err != nil {
		return nil, err
	}

	if imagePath.Valid {
		detail.ImagePath = &imagePath.String
	}
	if typeID.Valid {
		detail.TrainTypeInfo = &models.TrainType{ID: typeID.Int64, Name: typeName.String}
	}
	detail.TotalSeats = detail.CargoNum * detail.PlacesInCargo

	return detail, nil
}

// GetRow retrieves the raw train row without joins
func (r *TrainRepository) GetRow(id int64) (*models.Train, error) {
	query := `
		SELECT id, name, cargo_num, places_in_cargo, train_type_id, image_path
		FROM trains
		WHERE id = $1
	`

	train := &models.Train{}
	var typeID sql.NullInt64
	var imagePath sql.NullString

	err := r.db.QueryRow(query, id).Scan(
		&train.ID, &train.Name, &train.CargoNum, &train.PlacesInCargo, &typeID, &imagePath,
	)
	if err != nil {
		return nil, err
	}

	if typeID.Valid {
		train.TrainTypeID = &typeID.Int64
	}
	if imagePath.Valid {
		train.ImagePath = &imagePath.String
	}

	return train, nil
}

// List retrieves trains matching the filter, with the denormalized type name
func (r *TrainRepository) List(filter models.TrainFilter) ([]models.TrainListItem, error) {
	query := `
		SELECT t.id, t.name, t.cargo_num, t.places_in_cargo,
			   tt.name AS train_type,
			   t.cargo_num * t.places_in_cargo AS total_seats,
			   t.image_path
		FROM trains t
		LEFT JOIN train_types tt ON tt.id = t.train_type_id
		WHERE 1=1
	`
	args := []interface{}{}

	if filter.Type != "" {
		args = append(args, "%"+filter.Type+"%")
		query += fmt.Sprintf(" AND tt.name ILIKE $%d", len(args))
	}

	args = append(args, filter.Limit)
	query += fmt.Sprintf(" ORDER BY t.id LIMIT $%d", len(args))
	args = append(args, filter.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list trains: %w", err)
	}
	defer rows.Close()

	trains := []models.TrainListItem{}
	for rows.Next() {
		var item models.TrainListItem
		var typeName sql.NullString
		var imagePath sql.NullString

		err := rows.Scan(
			&item.ID, &item.Name, &item.CargoNum, &item.PlacesInCargo,
			&typeName, &item.TotalSeats, &imagePath,
		)
		if err != nil {
			return nil, err
		}
		if typeName.Valid {
			item.TrainType = &typeName.String
		}
		if imagePath.Valid {
			item.ImagePath = &imagePath.String
		}
		trains = append(trains, item)
	}

	return trains, rows.Err()
}

// Update updates a train
func (r *TrainRepository) Update(train *models.Train) error {
	query := `
		UPDATE trains
		SET name = $2, cargo_num = $3, places_in_cargo = $4, train_type_id = $5
		WHERE id = $1
	`

	result, err := r.db.Exec(query, train.ID, train.Name, train.CargoNum, train.PlacesInCargo, train.TrainTypeID)
	if err != nil {
		return err
	}

	return requireRowsAffected(result, "train")
}

// UpdateImagePath records the stored image path for a train
func (r *TrainRepository) UpdateImagePath(id int64, path string) error {
	result, err := r.db.Exec(`UPDATE trains SET image_path = $2 WHERE id = $1`, id, path)
	if err != nil {
		return err
	}

	return requireRowsAffected(result, "train")
}

// Delete removes a train. Journeys referencing it keep the reference cleared.
func (r *TrainRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM trains WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return requireRowsAffected(result, "train")
}

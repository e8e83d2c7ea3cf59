package database

import (
	"database/sql"
	"fmt"

	"github.com/railbook/railway-booking-backend/internal/models"
)

// JourneyRepository handles database operations for the journeys table
type JourneyRepository struct {
	db DB
}

// NewJourneyRepository creates a new JourneyRepository
func NewJourneyRepository(db DB) *JourneyRepository {
	return &JourneyRepository{db: db}
}

// Create inserts a new journey
func (r *JourneyRepository) Create(journey *models.Journey) error {
	query := `
		INSERT INTO journeys (route_id, train_id, departure_time, arrival_time)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRow(query, journey.RouteID, journey.TrainID, journey.DepartureTime, journey.ArrivalTime).
		Scan(&journey.ID)
	if err != nil {
		return fmt.Errorf("failed to create journey: %w", err)
	}

	return nil
}

// GetRow retrieves the raw journey row without joins
func (r *JourneyRepository) GetRow(id int64) (*models.Journey, error) {
	query := `
		SELECT id, route_id, train_id, departure_time, arrival_time
		FROM journeys
		WHERE id = $1
	`

	return r.scanJourney(r.db.QueryRow(query, id))
}

// GetByID retrieves a journey with its route and train embedded
func (r *JourneyRepository) GetByID(id int64) (*models.JourneyDetail, error) {
	query := `
		SELECT j.id, j.departure_time, j.arrival_time,
			   r.id, r.distance,
			   src.id, src.name, src.latitude, src.longitude,
			   dst.id, dst.name, dst.latitude, dst.longitude,
			   t.id, t.name, t.cargo_num, t.places_in_cargo, t.image_path,
			   tt.id, tt.name,
			   (SELECT COUNT(*) FROM tickets tk WHERE tk.journey_id = j.id) AS taken_seats
		FROM journeys j
		LEFT JOIN routes r ON r.id = j.route_id
		LEFT JOIN stations src ON src.id = r.source_id
		LEFT JOIN stations dst ON dst.id = r.destination_id
		LEFT JOIN trains t ON t.id = j.train_id
		LEFT JOIN train_types tt ON tt.id = t.train_type_id
		WHERE j.id = $1
	`

	detail := &models.JourneyDetail{}
	var routeID, distance sql.NullInt64
	var srcID, dstID sql.NullInt64
	var srcName, dstName sql.NullString
	var srcLat, srcLon, dstLat, dstLon sql.NullFloat64
	var trainID sql.NullInt64
	var trainName, trainImage sql.NullString
	var cargoNum, placesInCargo sql.NullInt64
	var typeID sql.NullInt64
	var typeName sql.NullString
	var takenSeats int

	err := r.db.QueryRow(query, id).Scan(
		&detail.ID, &detail.DepartureTime, &detail.ArrivalTime,
		&routeID, &distance,
		&srcID, &srcName, &srcLat, &srcLon,
		&dstID, &dstName, &dstLat, &dstLon,
		&trainID, &trainName, &cargoNum, &placesInCargo, &trainImage,
		&typeID, &typeName,
		&takenSeats,
	)
	if err != nil {
		return nil, err
	}

	journey := models.Journey{DepartureTime: detail.DepartureTime, ArrivalTime: detail.ArrivalTime}
	detail.TotalTimeHr = journey.TotalTimeHr()
	detail.TakenSeats = takenSeats

	if routeID.Valid {
		route := &models.RouteDetail{
			ID: routeID.Int64,
			Source: models.Station{
				ID: srcID.Int64, Name: srcName.String,
				Latitude: srcLat.Float64, Longitude: srcLon.Float64,
			},
			Destination: models.Station{
				ID: dstID.Int64, Name: dstName.String,
				Latitude: dstLat.Float64, Longitude: dstLon.Float64,
			},
		}
		if distance.Valid {
			route.Distance = &distance.Int64
		}
		detail.Route = route
	}

	if trainID.Valid {
		train := &models.TrainDetail{
			ID:            trainID.Int64,
			Name:          trainName.String,
			CargoNum:      int(cargoNum.Int64),
			PlacesInCargo: int(placesInCargo.Int64),
			TotalSeats:    int(cargoNum.Int64 * placesInCargo.Int64),
		}
		if trainImage.Valid {
			train.ImagePath = &trainImage.String
		}
		if typeID.Valid {
			train.TrainTypeInfo = &models.TrainType{ID: typeID.Int64, Name: typeName.String}
		}
		detail.Train = train

		free := train.TotalSeats - takenSeats
		detail.FreeSeats = &free
	}

	return detail, nil
}

// List retrieves journeys matching the filter, with denormalized display names
// and seat counts
func (r *JourneyRepository) List(filter models.JourneyFilter) ([]models.JourneyListItem, error) {
	query := `
		SELECT j.id, j.departure_time, j.arrival_time,
			   src.name || ' -> ' || dst.name AS route,
			   t.name AS train,
			   t.cargo_num, t.places_in_cargo,
			   (SELECT COUNT(*) FROM tickets tk WHERE tk.journey_id = j.id) AS taken_seats
		FROM journeys j
		LEFT JOIN routes r ON r.id = j.route_id
		LEFT JOIN stations src ON src.id = r.source_id
		LEFT JOIN stations dst ON dst.id = r.destination_id
		LEFT JOIN trains t ON t.id = j.train_id
		LEFT JOIN train_types tt ON tt.id = t.train_type_id
		WHERE 1=1
	`
	args := []interface{}{}

	if filter.DepartureAfter != nil {
		args = append(args, *filter.DepartureAfter)
		query += fmt.Sprintf(" AND j.departure_time > $%d", len(args))
	}
	if filter.DepartureBefore != nil {
		args = append(args, *filter.DepartureBefore)
		query += fmt.Sprintf(" AND j.departure_time < $%d", len(args))
	}
	if filter.ArrivalAfter != nil {
		args = append(args, *filter.ArrivalAfter)
		query += fmt.Sprintf(" AND j.arrival_time > $%d", len(args))
	}
	if filter.ArrivalBefore != nil {
		args = append(args, *filter.ArrivalBefore)
		query += fmt.Sprintf(" AND j.arrival_time < $%d", len(args))
	}
	if filter.Source != "" {
		args = append(args, "%"+filter.Source+"%")
		query += fmt.Sprintf(" AND src.name ILIKE $%d", len(args))
	}
	if filter.Destination != "" {
		args = append(args, "%"+filter.Destination+"%")
		query += fmt.Sprintf(" AND dst.name ILIKE $%d", len(args))
	}
	if filter.TrainType != "" {
		args = append(args, "%"+filter.TrainType+"%")
		query += fmt.Sprintf(" AND tt.name ILIKE $%d", len(args))
	}

	args = append(args, filter.Limit)
	query += fmt.Sprintf(" ORDER BY j.departure_time LIMIT $%d", len(args))
	args = append(args, filter.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list journeys: %w", err)
	}
	defer rows.Close()

	journeys := []models.JourneyListItem{}
	for rows.Next() {
		var item models.JourneyListItem
		var route, train sql.NullString
		var cargoNum, placesInCargo sql.NullInt64

		err := rows.Scan(
			&item.ID, &item.DepartureTime, &item.ArrivalTime,
			&route, &train, &cargoNum, &placesInCargo, &item.TakenSeats,
		)
		if err != nil {
			return nil, err
		}

		if route.Valid {
			item.Route = &route.String
		}
		if train.Valid {
			item.Train = &train.String
			free := int(cargoNum.Int64*placesInCargo.Int64) - item.TakenSeats
			item.FreeSeats = &free
		}

		journey := models.Journey{DepartureTime: item.DepartureTime, ArrivalTime: item.ArrivalTime}
		item.TotalTimeHr = journey.TotalTimeHr()

		journeys = append(journeys, item)
	}

	return journeys, rows.Err()
}

// ListByTrain retrieves all journeys assigned to a train, excluding
// excludeID (pass 0 on create). Used by the schedule conflict check.
func (r *JourneyRepository) ListByTrain(trainID, excludeID int64) ([]models.Journey, error) {
	query := `
		SELECT id, route_id, train_id, departure_time, arrival_time
		FROM journeys
		WHERE train_id = $1 AND id != $2
		ORDER BY departure_time
	`

	rows, err := r.db.Query(query, trainID, excludeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list journeys for train: %w", err)
	}
	defer rows.Close()

	journeys := []models.Journey{}
	for rows.Next() {
		journey, err := r.scanJourney(rows)
		if err != nil {
			return nil, err
		}
		journeys = append(journeys, *journey)
	}

	return journeys, rows.Err()
}

// GetSeatContext retrieves the seat layout tickets on a journey are checked
// against. Returns sql.ErrNoRows when the journey does not exist or has no
// train assigned.
func (r *JourneyRepository) GetSeatContext(journeyID int64) (*models.JourneySeatContext, error) {
	query := `
		SELECT j.id AS journey_id, t.cargo_num, t.places_in_cargo
		FROM journeys j
		JOIN trains t ON t.id = j.train_id
		WHERE j.id = $1
	`

	ctx := &models.JourneySeatContext{}
	err := r.db.QueryRow(query, journeyID).Scan(&ctx.JourneyID, &ctx.CargoNum, &ctx.PlacesInCargo)
	if err != nil {
		return nil, err
	}

	return ctx, nil
}

// Update updates a journey
func (r *JourneyRepository) Update(journey *models.Journey) error {
	query := `
		UPDATE journeys
		SET route_id = $2, train_id = $3, departure_time = $4, arrival_time = $5
		WHERE id = $1
	`

	result, err := r.db.Exec(query, journey.ID, journey.RouteID, journey.TrainID, journey.DepartureTime, journey.ArrivalTime)
	if err != nil {
		return err
	}

	return requireRowsAffected(result, "journey")
}

// Delete removes a journey and, by cascade, its tickets
func (r *JourneyRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM journeys WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return requireRowsAffected(result, "journey")
}

// scanJourney scans a raw journey row
func (r *JourneyRepository) scanJourney(row scanner) (*models.Journey, error) {
	journey := &models.Journey{}
	var routeID, trainID sql.NullInt64

	err := row.Scan(&journey.ID, &routeID, &trainID, &journey.DepartureTime, &journey.ArrivalTime)
	if err != nil {
		return nil, err
	}

	if routeID.Valid {
		journey.RouteID = &routeID.Int64
	}
	if trainID.Valid {
		journey.TrainID = &trainID.Int64
	}

	return journey, nil
}

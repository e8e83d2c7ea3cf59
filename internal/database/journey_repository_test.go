package database

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/railbook/railway-booking-backend/internal/models"
)

func TestCreateJourney(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockDB := &mockDatabase{db: db}
	repo := NewJourneyRepository(mockDB)

	t.Run("Success", func(t *testing.T) {
		routeID := int64(1)
		trainID := int64(2)
		departure := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
		arrival := departure.Add(3 * time.Hour)
		journey := &models.Journey{
			RouteID:       &routeID,
			TrainID:       &trainID,
			DepartureTime: departure,
			ArrivalTime:   arrival,
		}

		mock.ExpectQuery(`INSERT INTO journeys`).
			WithArgs(routeID, trainID, departure, arrival).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))

		err := repo.Create(journey)
		require.NoError(t, err)
		assert.Equal(t, int64(5), journey.ID)

		err = mock.ExpectationsWereMet()
		assert.NoError(t, err)
	})

	t.Run("Database Error", func(t *testing.T) {
		routeID := int64(1)
		trainID := int64(2)
		journey := &models.Journey{RouteID: &routeID, TrainID: &trainID}

		mock.ExpectQuery(`INSERT INTO journeys`).
			WillReturnError(fmt.Errorf("database error"))

		err := repo.Create(journey)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create journey")

		err = mock.ExpectationsWereMet()
		assert.NoError(t, err)
	})
}

func TestListJourneysByTrain(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockDB := &mockDatabase{db: db}
	repo := NewJourneyRepository(mockDB)

	t.Run("Success", func(t *testing.T) {
		routeID := int64(1)
		trainID := int64(2)
		departure := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

		mock.ExpectQuery(`SELECT (.+) FROM journeys WHERE train_id`).
			WithArgs(trainID, int64(0)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "route_id", "train_id", "departure_time", "arrival_time"}).
				AddRow(int64(5), routeID, trainID, departure, departure.Add(3*time.Hour)).
				AddRow(int64(6), routeID, trainID, departure.Add(24*time.Hour), departure.Add(27*time.Hour)))

		journeys, err := repo.ListByTrain(trainID, 0)
		require.NoError(t, err)
		assert.Len(t, journeys, 2)
		require.NotNil(t, journeys[0].TrainID)
		assert.Equal(t, trainID, *journeys[0].TrainID)

		err = mock.ExpectationsWereMet()
		assert.NoError(t, err)
	})

	t.Run("Excludes Journey Being Updated", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM journeys WHERE train_id`).
			WithArgs(int64(2), int64(5)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "route_id", "train_id", "departure_time", "arrival_time"}))

		journeys, err := repo.ListByTrain(2, 5)
		require.NoError(t, err)
		assert.Len(t, journeys, 0)

		err = mock.ExpectationsWereMet()
		assert.NoError(t, err)
	})

	t.Run("Database Error", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM journeys WHERE train_id`).
			WithArgs(int64(2), int64(0)).
			WillReturnError(fmt.Errorf("database error"))

		journeys, err := repo.ListByTrain(2, 0)
		assert.Error(t, err)
		assert.Nil(t, journeys)
		assert.Contains(t, err.Error(), "failed to list journeys for train")

		err = mock.ExpectationsWereMet()
		assert.NoError(t, err)
	})
}

func TestGetSeatContext(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockDB := &mockDatabase{db: db}
	repo := NewJourneyRepository(mockDB)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM journeys j JOIN trains t`).
			WithArgs(int64(5)).
			WillReturnRows(sqlmock.NewRows([]string{"journey_id", "cargo_num", "places_in_cargo"}).
				AddRow(int64(5), 2, 10))

		ctx, err := repo.GetSeatContext(5)
		require.NoError(t, err)
		assert.Equal(t, int64(5), ctx.JourneyID)
		assert.Equal(t, 2, ctx.CargoNum)
		assert.Equal(t, 10, ctx.PlacesInCargo)

		err = mock.ExpectationsWereMet()
		assert.NoError(t, err)
	})

	t.Run("Journey Missing Or Trainless", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM journeys j JOIN trains t`).
			WithArgs(int64(99)).
			WillReturnError(sql.ErrNoRows)

		ctx, err := repo.GetSeatContext(99)
		assert.Nil(t, ctx)
		assert.True(t, errors.Is(err, sql.ErrNoRows))

		err = mock.ExpectationsWereMet()
		assert.NoError(t, err)
	})
}

func TestDeleteJourney(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockDB := &mockDatabase{db: db}
	repo := NewJourneyRepository(mockDB)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM journeys WHERE id`).
			WithArgs(int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(5)
		require.NoError(t, err)

		err = mock.ExpectationsWereMet()
		assert.NoError(t, err)
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM journeys WHERE id`).
			WithArgs(int64(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(99)
		assert.True(t, errors.Is(err, sql.ErrNoRows))
		assert.Contains(t, err.Error(), "journey not found")

		err = mock.ExpectationsWereMet()
		assert.NoError(t, err)
	})
}

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/railbook/railway-booking-backend/internal/database"
	"github.com/railbook/railway-booking-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTrainTypeHandlerTest(t *testing.T) (*TrainTypeHandler, sqlmock.Sqlmock, func()) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")
	db := &database.PostgresDB{DB: sqlxDB}

	gin.SetMode(gin.TestMode)

	return NewTrainTypeHandler(database.NewTrainTypeRepository(db)), mock, func() { mockDB.Close() }
}

func TestCreateTrainTypeEndpoint(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mock, cleanup := setupTrainTypeHandlerTest(t)
		defer cleanup()

		mock.ExpectQuery(`INSERT INTO train_types`).
			WithArgs("Express").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = jsonRequest(t, http.MethodPost, "/api/v1/trains/types", models.CreateTrainTypeRequest{
			Name: "Express",
		})

		handler.CreateTrainType(c)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response models.TrainType
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, int64(1), response.ID)
		assert.Equal(t, "Express", response.Name)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Duplicate Name", func(t *testing.T) {
		handler, mock, cleanup := setupTrainTypeHandlerTest(t)
		defer cleanup()

		mock.ExpectQuery(`INSERT INTO train_types`).
			WithArgs("Express").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "train_types_name_key"})

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = jsonRequest(t, http.MethodPost, "/api/v1/trains/types", models.CreateTrainTypeRequest{
			Name: "Express",
		})

		handler.CreateTrainType(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "train type with this name already exists")
	})

	t.Run("Missing Name", func(t *testing.T) {
		handler, _, cleanup := setupTrainTypeHandlerTest(t)
		defer cleanup()

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = jsonRequest(t, http.MethodPost, "/api/v1/trains/types", gin.H{})

		handler.CreateTrainType(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestListTrainTypesEndpoint(t *testing.T) {
	handler, mock, cleanup := setupTrainTypeHandlerTest(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM train_types ORDER BY name`).
		WithArgs(20, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(int64(1), "Express").
			AddRow(int64(2), "Regional"))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/trains/types", nil)

	handler.ListTrainTypes(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var types []models.TrainType
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &types))
	assert.Len(t, types, 2)
}

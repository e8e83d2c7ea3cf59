package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/railbook/railway-booking-backend/internal/database"
	"github.com/railbook/railway-booking-backend/internal/models"
	"github.com/railbook/railway-booking-backend/internal/services"
	"github.com/railbook/railway-booking-backend/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStationHandlerTest(t *testing.T) (*StationHandler, sqlmock.Sqlmock, *storage.MediaStore, func()) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")
	db := &database.PostgresDB{DB: sqlxDB}

	repo := database.NewStationRepository(db)
	media := storage.NewMediaStore(t.TempDir(), 5)
	handler := NewStationHandler(repo, services.NewStationValidator(repo), media)

	gin.SetMode(gin.TestMode)

	return handler, mock, media, func() { mockDB.Close() }
}

func stationRows(id int64, name string, lat, lon float64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "latitude", "longitude", "image_path"}).
		AddRow(id, name, lat, lon, nil)
}

func floatPtr(v float64) *float64 { return &v }

func TestCreateStationEndpoint(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mock, _, cleanup := setupStationHandlerTest(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT (.+) FROM stations WHERE latitude`).
			WithArgs(51.5074, -0.1278, int64(0)).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectQuery(`INSERT INTO stations`).
			WithArgs("Waterloo", 51.5074, -0.1278).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = jsonRequest(t, http.MethodPost, "/api/v1/stations", models.CreateStationRequest{
			Name:      "Waterloo",
			Latitude:  floatPtr(51.5074),
			Longitude: floatPtr(-0.1278),
		})

		handler.CreateStation(c)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response models.Station
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, int64(1), response.ID)
		assert.Equal(t, "Waterloo", response.Name)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Duplicate Coordinates", func(t *testing.T) {
		handler, mock, _, cleanup := setupStationHandlerTest(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT (.+) FROM stations WHERE latitude`).
			WithArgs(51.5074, -0.1278, int64(0)).
			WillReturnRows(stationRows(3, "Waterloo", 51.5074, -0.1278))

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = jsonRequest(t, http.MethodPost, "/api/v1/stations", models.CreateStationRequest{
			Name:      "Waterloo East",
			Latitude:  floatPtr(51.5074),
			Longitude: floatPtr(-0.1278),
		})

		handler.CreateStation(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "validation_failed")
		assert.Contains(t, w.Body.String(), services.CodeDuplicateCoordinates)
	})

	t.Run("Duplicate Name", func(t *testing.T) {
		handler, mock, _, cleanup := setupStationHandlerTest(t)
		defer cleanup()

		// different coordinates pass validation, the name constraint fires on insert
		mock.ExpectQuery(`SELECT (.+) FROM stations WHERE latitude`).
			WithArgs(48.8566, 2.3522, int64(0)).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectQuery(`INSERT INTO stations`).
			WithArgs("Waterloo", 48.8566, 2.3522).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "stations_name_key"})

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = jsonRequest(t, http.MethodPost, "/api/v1/stations", models.CreateStationRequest{
			Name:      "Waterloo",
			Latitude:  floatPtr(48.8566),
			Longitude: floatPtr(2.3522),
		})

		handler.CreateStation(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "name already exists")
	})

	t.Run("Missing Coordinates", func(t *testing.T) {
		handler, _, _, cleanup := setupStationHandlerTest(t)
		defer cleanup()

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = jsonRequest(t, http.MethodPost, "/api/v1/stations", gin.H{"name": "Waterloo"})

		handler.CreateStation(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestListStationsEndpoint(t *testing.T) {
	t.Run("Coordinate Range Filters", func(t *testing.T) {
		handler, mock, _, cleanup := setupStationHandlerTest(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT (.+) FROM stations WHERE 1=1 AND latitude >= (.+) AND latitude <=`).
			WithArgs(50.0, 52.0, 20, 0).
			WillReturnRows(stationRows(1, "Waterloo", 51.5074, -0.1278))

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet,
			"/api/v1/stations?latitude_range_min=50&latitude_range_max=52", nil)

		handler.ListStations(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var stations []models.Station
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stations))
		require.Len(t, stations, 1)
		assert.Equal(t, "Waterloo", stations[0].Name)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Longitude Range Filter", func(t *testing.T) {
		handler, mock, _, cleanup := setupStationHandlerTest(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT (.+) FROM stations WHERE 1=1 AND longitude >= (.+) AND longitude <=`).
			WithArgs(-1.0, 1.0, 20, 0).
			WillReturnRows(stationRows(1, "Waterloo", 51.5074, -0.1278))

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet,
			"/api/v1/stations?longitude_range_min=-1&longitude_range_max=1", nil)

		handler.ListStations(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetStationEndpoint(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mock, _, cleanup := setupStationHandlerTest(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT (.+) FROM stations WHERE id`).
			WithArgs(int64(5)).
			WillReturnRows(stationRows(5, "Paddington", 51.5154, -0.1755))

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/stations/5", nil)
		c.Params = gin.Params{{Key: "id", Value: "5"}}

		handler.GetStation(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response models.Station
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "Paddington", response.Name)
	})

	t.Run("Not Found", func(t *testing.T) {
		handler, mock, _, cleanup := setupStationHandlerTest(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT (.+) FROM stations WHERE id`).
			WithArgs(int64(99)).
			WillReturnError(sql.ErrNoRows)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/stations/99", nil)
		c.Params = gin.Params{{Key: "id", Value: "99"}}

		handler.GetStation(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "station not found")
	})

	t.Run("Invalid ID", func(t *testing.T) {
		handler, _, _, cleanup := setupStationHandlerTest(t)
		defer cleanup()

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/stations/abc", nil)
		c.Params = gin.Params{{Key: "id", Value: "abc"}}

		handler.GetStation(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUpdateStationEndpoint(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mock, _, cleanup := setupStationHandlerTest(t)
		defer cleanup()

		// the station's own position must not count as a duplicate
		mock.ExpectQuery(`SELECT (.+) FROM stations WHERE latitude`).
			WithArgs(51.5154, -0.1755, int64(5)).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectExec(`UPDATE stations SET name`).
			WithArgs(int64(5), "Paddington", 51.5154, -0.1755).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT (.+) FROM stations WHERE id`).
			WithArgs(int64(5)).
			WillReturnRows(stationRows(5, "Paddington", 51.5154, -0.1755))

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = jsonRequest(t, http.MethodPut, "/api/v1/stations/5", models.CreateStationRequest{
			Name:      "Paddington",
			Latitude:  floatPtr(51.5154),
			Longitude: floatPtr(-0.1755),
		})
		c.Params = gin.Params{{Key: "id", Value: "5"}}

		handler.UpdateStation(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		handler, mock, _, cleanup := setupStationHandlerTest(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT (.+) FROM stations WHERE latitude`).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectExec(`UPDATE stations SET name`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = jsonRequest(t, http.MethodPut, "/api/v1/stations/99", models.CreateStationRequest{
			Name:      "Ghost",
			Latitude:  floatPtr(1.0),
			Longitude: floatPtr(2.0),
		})
		c.Params = gin.Params{{Key: "id", Value: "99"}}

		handler.UpdateStation(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDeleteStationEndpoint(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mock, _, cleanup := setupStationHandlerTest(t)
		defer cleanup()

		mock.ExpectExec(`DELETE FROM stations WHERE id`).
			WithArgs(int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodDelete, "/api/v1/stations/5", nil)
		c.Params = gin.Params{{Key: "id", Value: "5"}}

		handler.DeleteStation(c)
		c.Writer.WriteHeaderNow()

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("Not Found", func(t *testing.T) {
		handler, mock, _, cleanup := setupStationHandlerTest(t)
		defer cleanup()

		mock.ExpectExec(`DELETE FROM stations WHERE id`).
			WithArgs(int64(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodDelete, "/api/v1/stations/99", nil)
		c.Params = gin.Params{{Key: "id", Value: "99"}}

		handler.DeleteStation(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUploadStationImageEndpoint(t *testing.T) {
	multipartRequest := func(t *testing.T, field, filename string, content []byte) *http.Request {
		t.Helper()

		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		part, err := writer.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
		require.NoError(t, writer.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/stations/5/upload-image", body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		return req
	}

	t.Run("Success", func(t *testing.T) {
		handler, mock, media, cleanup := setupStationHandlerTest(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT (.+) FROM stations WHERE id`).
			WithArgs(int64(5)).
			WillReturnRows(stationRows(5, "Paddington", 51.5154, -0.1755))
		mock.ExpectExec(`UPDATE stations SET image_path`).
			WithArgs(int64(5), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = multipartRequest(t, "image", "front.jpg", []byte("jpeg bytes"))
		c.Params = gin.Params{{Key: "id", Value: "5"}}

		handler.UploadStationImage(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		path, ok := response["image"].(string)
		require.True(t, ok)
		assert.Contains(t, path, "uploads/stations/paddington-")

		_, err := os.Stat(filepath.Join(media.Root(), filepath.FromSlash(path)))
		assert.NoError(t, err)
	})

	t.Run("Unsupported Type", func(t *testing.T) {
		handler, mock, _, cleanup := setupStationHandlerTest(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT (.+) FROM stations WHERE id`).
			WithArgs(int64(5)).
			WillReturnRows(stationRows(5, "Paddington", 51.5154, -0.1755))

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = multipartRequest(t, "image", "notes.txt", []byte("plain text"))
		c.Params = gin.Params{{Key: "id", Value: "5"}}

		handler.UploadStationImage(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Missing File", func(t *testing.T) {
		handler, mock, _, cleanup := setupStationHandlerTest(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT (.+) FROM stations WHERE id`).
			WithArgs(int64(5)).
			WillReturnRows(stationRows(5, "Paddington", 51.5154, -0.1755))

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = multipartRequest(t, "other", "front.jpg", []byte("jpeg bytes"))
		c.Params = gin.Params{{Key: "id", Value: "5"}}

		handler.UploadStationImage(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "image file is required")
	})
}

package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/railbook/railway-booking-backend/internal/database"
	"github.com/railbook/railway-booking-backend/internal/services"
)

// constraintMessages maps database constraint names to client-facing
// conflict messages. Integrity failures are client errors, never 5xx.
var constraintMessages = map[string]string{
	"tickets_cargo_seat_journey_id_key": "This seat is already taken on this journey",
	"stations_latitude_longitude_key":   "A station already exists at these coordinates",
	"stations_name_key":                 "A station with this name already exists",
	"train_types_name_key":              "A train type with this name already exists",
	"users_email_key":                   "This email is already registered",
}

// respondStorageError translates repository errors into HTTP responses.
// entity names the resource for not-found messages.
func respondStorageError(c *gin.Context, err error, entity string) {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		c.JSON(http.StatusNotFound, gin.H{"error": entity + " not found"})

	case database.IsUniqueViolation(err):
		message := constraintMessages[database.ConstraintName(err)]
		if message == "" {
			message = "A record with these values already exists"
		}
		c.JSON(http.StatusConflict, gin.H{"error": message})

	case database.IsForeignKeyViolation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": "A referenced record does not exist"})

	case database.IsCheckViolation(err):
		c.JSON(http.StatusConflict, gin.H{"error": "The request violates a data constraint"})

	default:
		logrus.WithError(err).Error("Unexpected storage error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// respondValidationError writes the accumulated violations when err carries
// them, and reports whether it did
func respondValidationError(c *gin.Context, err error) bool {
	validationErr, ok := services.AsValidationError(err)
	if !ok {
		return false
	}

	c.JSON(http.StatusBadRequest, gin.H{
		"error":      "validation_failed",
		"violations": validationErr.Violations,
	})
	return true
}

// parseIDParam reads the :id path parameter as int64
func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return id, true
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// pagination reads limit and offset query parameters with sane bounds
func pagination(c *gin.Context) (limit, offset int) {
	limit = defaultPageSize
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	if raw := c.Query("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			offset = v
		}
	}
	return limit, offset
}

// floatQuery reads an optional float query parameter
func floatQuery(c *gin.Context, name string) *float64 {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

// intQuery reads an optional int query parameter
func intQuery(c *gin.Context, name string) *int {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}

// int64Query reads an optional int64 query parameter
func int64Query(c *gin.Context, name string) *int64 {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

// timeQuery reads an optional RFC 3339 timestamp query parameter
func timeQuery(c *gin.Context, name string) *time.Time {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil
	}
	return &v
}

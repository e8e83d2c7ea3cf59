package database

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/railbook/railway-booking-backend/internal/models"
)

// UserRepository handles database operations for the users table
type UserRepository struct {
	db DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user account
func (r *UserRepository) Create(user *models.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, first_name, last_name, is_staff)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	user.ID = uuid.New()
	err := r.db.QueryRow(query, user.ID, user.Email, user.PasswordHash, user.FirstName, user.LastName, user.IsStaff).
		Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, first_name, last_name, is_staff, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	return r.scanUser(r.db.QueryRow(query, email))
}

// GetByID retrieves a user by id
func (r *UserRepository) GetByID(id uuid.UUID) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, first_name, last_name, is_staff, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	return r.scanUser(r.db.QueryRow(query, id))
}

// UpdateProfile updates the mutable profile fields of a user
func (r *UserRepository) UpdateProfile(user *models.User) error {
	query := `
		UPDATE users
		SET first_name = $2, last_name = $3, password_hash = $4, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(query, user.ID, user.FirstName, user.LastName, user.PasswordHash)
	if err != nil {
		return err
	}

	return requireRowsAffected(result, "user")
}

// scanUser scans a single user row
func (r *UserRepository) scanUser(row scanner) (*models.User, error) {
	user := &models.User{}

	err := row.Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.FirstName, &user.LastName,
		&user.IsStaff, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return user, nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"talentflow/core/models"
)

// ErrEmailTaken is returned when a signup reuses an existing email.
var ErrEmailTaken = errors.New("email already registered")

// UserRepository handles record store operations for login accounts
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser registers an account. Emails are unique, compared
// case-insensitively.
func (r *UserRepository) CreateUser(ctx context.Context, email, passwordHash string) error {
	email = strings.ToLower(email)
	var existing string
	err := r.db.QueryRowContext(ctx,
		`SELECT email FROM users WHERE email = ?`, email).Scan(&existing)
	if err == nil {
		return ErrEmailTaken
	}
	if err != sql.ErrNoRows {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO users (email, password_hash) VALUES (?, ?)`, email, passwordHash)
	return err
}

// GetUser retrieves an account by email
func (r *UserRepository) GetUser(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx,
		`SELECT email, password_hash FROM users WHERE email = ?`,
		strings.ToLower(email)).Scan(&u.Email, &u.PasswordHash)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

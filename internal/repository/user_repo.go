package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// User is a registered shopper account.
type User struct {
	ID           uuid.UUID
	Name         string
	Mobile       string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// UserRepository defines DB operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	Count(ctx context.Context) (int, error)
}

// PostgresUserRepository is an implementation of UserRepository using PostgreSQL.
type PostgresUserRepository struct {
	db *sql.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository.
func NewPostgresUserRepository(db *sql.DB) UserRepository {
	return &PostgresUserRepository{db: db}
}

// Create inserts a new user. A second account with the same email (case-insensitive) yields ErrDuplicate.
func (r *PostgresUserRepository) Create(ctx context.Context, user *User) error {
	query := `INSERT INTO users (id, name, mobile, email, password_hash)
              VALUES ($1, $2, $3, $4, $5)
              RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.Name, user.Mobile, user.Email, user.PasswordHash,
	).Scan(&user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", mapPgError(err))
	}
	return nil
}

// GetByEmail returns the user with the given email, or (nil, nil) if none exists.
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT id, name, mobile, email, password_hash, created_at
              FROM users
              WHERE LOWER(email) = LOWER($1)`

	return scanUser(r.db.QueryRowContext(ctx, query, email))
}

// GetByID returns the user with the given id, or (nil, nil) if none exists.
func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	query := `SELECT id, name, mobile, email, password_hash, created_at
              FROM users
              WHERE id = $1`

	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

// Count returns the number of registered users.
func (r *PostgresUserRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

func scanUser(row *sql.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.Mobile, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

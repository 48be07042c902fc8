package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/streamnest/auth-service/internal/core/domain"
)

// PgxUserRepository implements domain.UserRepository using pgxpool.
type PgxUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PgxUserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PgxUserRepository {
	return &PgxUserRepository{pool: pool}
}

// GetByEmail returns the user matching the given email.
// Returns (nil, nil) when no user is found.
func (r *PgxUserRepository) GetByEmail(ctx context.Context, email string) (*domain.UserRow, error) {
	query := `SELECT id::text, name, email, password_hash FROM users WHERE email = $1`

	var row domain.UserRow
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&row.ID, &row.Name, &row.Email, &row.PasswordHash,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &row, nil
}

// GetByID returns the user matching the given ID.
// Returns (nil, nil) when no user is found, including when the ID is not a
// well-formed UUID (a token subject we never issued).
func (r *PgxUserRepository) GetByID(ctx context.Context, id string) (*domain.UserRow, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}

	query := `SELECT id::text, name, email, password_hash FROM users WHERE id = $1::uuid`

	var row domain.UserRow
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&row.ID, &row.Name, &row.Email, &row.PasswordHash,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &row, nil
}

// Create inserts a new user and returns the generated user ID.
// A unique-index violation on email maps to domain.ErrDuplicateEmail.
func (r *PgxUserRepository) Create(ctx context.Context, name, email, passwordHash string) (string, error) {
	query := `INSERT INTO users (name, email, password_hash) VALUES ($1, $2, $3) RETURNING id::text`

	var userID string
	err := r.pool.QueryRow(ctx, query, name, email, passwordHash).Scan(&userID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return "", domain.ErrDuplicateEmail
		}
		return "", err
	}

	return userID, nil
}

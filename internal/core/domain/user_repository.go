package domain

import (
	"context"
	"errors"
)

// ErrDuplicateEmail is returned by Create when the email is already taken.
// Uniqueness is guaranteed by the storage layer's unique index, not by a
// check-then-insert in application code, so two concurrent registrations
// with the same email cannot both succeed.
var ErrDuplicateEmail = errors.New("email already exists")

// UserRow represents a user record returned from the database.
// It includes the password hash so the Logic layer can verify credentials.
type UserRow struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
}

// User is the client-facing projection of a user record.
// The password hash never leaves the Logic layer.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// RegisterRequest is the POST /api/auth/register body.
// The password cap matches bcrypt's 72-byte input limit; anything longer is
// a validation error, not a hashing failure.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,max=72"`
}

// LoginRequest is the POST /api/auth/login body.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required,max=72"`
}

// UserRepository defines the data-access contract for user operations.
// Implementations live in internal/core/repository (Core layer).
// The Logic layer depends on this interface only — never on SQL or pgx directly.
type UserRepository interface {
	// GetByEmail returns the user matching the given email.
	// Returns (nil, nil) when no user is found.
	GetByEmail(ctx context.Context, email string) (*UserRow, error)

	// GetByID returns the user matching the given ID.
	// Returns (nil, nil) when no user is found.
	GetByID(ctx context.Context, id string) (*UserRow, error)

	// Create inserts a new user and returns the generated user ID.
	// Returns ErrDuplicateEmail when the email is already registered.
	Create(ctx context.Context, name, email, passwordHash string) (string, error)
}

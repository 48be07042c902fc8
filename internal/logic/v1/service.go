package v1

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/crypto/bcrypt"

	"github.com/streamnest/auth-service/internal/core/domain"
	"github.com/streamnest/auth-service/internal/token"
	"github.com/streamnest/auth-service/middleware"
)

// AuthService implements authentication business rules.
// It depends on the repository interface and the token service (injected via
// constructor) and MUST NOT access the database or SQL directly.
type AuthService struct {
	users      domain.UserRepository
	tokens     *token.Service
	bcryptCost int
}

// NewAuthService creates a new AuthService with the given dependencies.
// bcryptCost tunes the password hash work factor; values below
// bcrypt.MinCost fall back to bcrypt.DefaultCost.
func NewAuthService(users domain.UserRepository, tokens *token.Service, bcryptCost int) *AuthService {
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		users:      users,
		tokens:     tokens,
		bcryptCost: bcryptCost,
	}
}

// Register creates a new user with a hashed password.
// Email uniqueness is enforced by the storage layer; a conflict surfaces as
// domain.ErrDuplicateEmail.
func (s *AuthService) Register(ctx context.Context, req domain.RegisterRequest) error {
	ctx, span := middleware.StartSpan(ctx, "auth.register", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("email", req.Email),
	))
	defer span.End()

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("hash password: %w", err)
	}

	if _, err := s.users.Create(ctx, req.Name, req.Email, string(passwordHash)); err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("registration.success", false))
		return fmt.Errorf("insert user: %w", err)
	}

	span.SetAttributes(attribute.Bool("registration.success", true))
	span.AddEvent("user.registered")

	return nil
}

// Login verifies the credentials and issues a session token for the user.
func (s *AuthService) Login(ctx context.Context, req domain.LoginRequest) (*domain.User, string, error) {
	ctx, span := middleware.StartSpan(ctx, "auth.login", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("email", req.Email),
	))
	defer span.End()

	row, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		span.RecordError(err)
		return nil, "", fmt.Errorf("query user by email: %w", err)
	}
	if row == nil {
		span.SetAttributes(attribute.Bool("auth.success", false))
		span.AddEvent("authentication.failed")
		return nil, "", fmt.Errorf("authenticate %q: %w", req.Email, ErrUserNotFound)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(row.PasswordHash), []byte(req.Password)); err != nil {
		span.SetAttributes(attribute.Bool("auth.success", false))
		span.AddEvent("authentication.failed")
		return nil, "", fmt.Errorf("authenticate %q: %w", req.Email, ErrInvalidCredentials)
	}

	sessionToken, err := s.tokens.Issue(row.ID)
	if err != nil {
		span.RecordError(err)
		return nil, "", fmt.Errorf("issue session token: %w", err)
	}

	user := &domain.User{
		ID:    row.ID,
		Name:  row.Name,
		Email: row.Email,
	}

	span.SetAttributes(
		attribute.String("user.id", user.ID),
		attribute.Bool("auth.success", true),
	)
	span.AddEvent("user.authenticated")

	return user, sessionToken, nil
}

// CurrentUser loads the user identified by a verified session subject.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	ctx, span := middleware.StartSpan(ctx, "auth.current_user", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("user.id", userID),
	))
	defer span.End()

	row, err := s.users.GetByID(ctx, userID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("query user by id: %w", err)
	}
	if row == nil {
		return nil, fmt.Errorf("lookup user %q: %w", userID, ErrUserNotFound)
	}

	return &domain.User{
		ID:    row.ID,
		Name:  row.Name,
		Email: row.Email,
	}, nil
}

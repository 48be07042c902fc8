package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/streamnest/auth-service/internal/core/domain"
	logicv1 "github.com/streamnest/auth-service/internal/logic/v1"
	"github.com/streamnest/auth-service/middleware"
)

// internalErrorMessage is the opaque body returned for unexpected failures.
// The underlying error is logged server-side, never sent to the client.
const internalErrorMessage = "Internal server error."

// Handler groups HTTP handlers for the auth API.
// Dependencies are injected via the constructor — no global state.
type Handler struct {
	auth *logicv1.AuthService
}

// NewHandler creates a new Handler with the given AuthService.
func NewHandler(auth *logicv1.AuthService) *Handler {
	return &Handler{auth: auth}
}

// RegisterRoutes registers the auth routes on the given router group.
// The /user route sits behind the given session middleware; everything else
// is public.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, sessionAuth gin.HandlerFunc) {
	rg.POST("/register", h.Register)
	rg.POST("/login", h.Login)
	rg.GET("/logout", h.Logout)
	rg.GET("/user", sessionAuth, h.CurrentUser)
}

// Register handles HTTP request for user registration.
func (h *Handler) Register(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	logger := zerolog.Ctx(ctx)

	var req domain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.SetAttributes(attribute.Bool("request.valid", false))
		logger.Warn().Err(err).Msg("Invalid register request")
		fail(c, http.StatusBadRequest, "All fields are required.")
		return
	}

	span.SetAttributes(attribute.Bool("request.valid", true))

	if err := h.auth.Register(ctx, req); err != nil {
		span.RecordError(err)

		switch {
		case errors.Is(err, domain.ErrDuplicateEmail):
			fail(c, http.StatusBadRequest, "Email already exists.")
		default:
			logger.Error().Err(err).Msg("Registration failed")
			fail(c, http.StatusInternalServerError, internalErrorMessage)
		}
		return
	}

	logger.Info().Str("email", req.Email).Msg("Registration successful")
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Registration successful.",
	})
}

// Login handles HTTP request for user login. On success the session token is
// set as an HttpOnly session cookie and the user is echoed back without the
// password hash.
func (h *Handler) Login(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	logger := zerolog.Ctx(ctx)

	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.SetAttributes(attribute.Bool("request.valid", false))
		logger.Warn().Err(err).Msg("Invalid login request")
		fail(c, http.StatusBadRequest, "All fields are required.")
		return
	}

	span.SetAttributes(attribute.Bool("request.valid", true))

	user, sessionToken, err := h.auth.Login(ctx, req)
	if err != nil {
		span.RecordError(err)

		switch {
		case errors.Is(err, logicv1.ErrUserNotFound):
			fail(c, http.StatusNotFound, "User not found.")
		case errors.Is(err, logicv1.ErrInvalidCredentials):
			fail(c, http.StatusUnauthorized, "Invalid email or password.")
		default:
			logger.Error().Err(err).Msg("Login failed")
			fail(c, http.StatusInternalServerError, internalErrorMessage)
		}
		return
	}

	setSessionCookie(c, sessionToken)

	logger.Info().Str("user_id", user.ID).Msg("Login successful")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful.",
		"user":    user,
	})
}

// Logout clears the session cookie unconditionally. Sessions are stateless,
// so there is no token to verify or revoke here; a previously saved token
// stays valid until its natural expiry.
func (h *Handler) Logout(c *gin.Context) {
	clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logout successful.",
	})
}

// CurrentUser returns the user resolved from the verified session cookie.
// It runs behind middleware.SessionAuth, which rejects unauthenticated
// requests before this handler is invoked.
func (h *Handler) CurrentUser(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	logger := zerolog.Ctx(ctx)

	userID := c.GetString(middleware.UserIDKey)

	user, err := h.auth.CurrentUser(ctx, userID)
	if err != nil {
		span.RecordError(err)

		switch {
		case errors.Is(err, logicv1.ErrUserNotFound):
			fail(c, http.StatusNotFound, "User not found.")
		default:
			logger.Error().Err(err).Msg("Current user lookup failed")
			fail(c, http.StatusInternalServerError, internalErrorMessage)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User found.",
		"user":    user,
	})
}

// setSessionCookie attaches the session token as an HttpOnly cookie with no
// Max-Age, so the browser drops it at end of session while the token's own
// expiry bounds its server-side validity.
func setSessionCookie(c *gin.Context, sessionToken string) {
	c.SetCookie(middleware.SessionCookie, sessionToken, 0, "/", "", false, true)
}

func clearSessionCookie(c *gin.Context) {
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}

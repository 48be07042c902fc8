// Package v1 provides authentication business logic for API version 1.
//
// Error Handling:
// This package defines sentinel errors that represent common authentication
// failures. These errors should be wrapped with context using
// fmt.Errorf("%w") when returned from business logic methods.
//
// Error Checking (in handlers):
//
//	switch {
//	case errors.Is(err, logicv1.ErrUserNotFound):
//	    c.JSON(http.StatusNotFound, ...)
//	case errors.Is(err, logicv1.ErrInvalidCredentials):
//	    c.JSON(http.StatusUnauthorized, ...)
//	default:
//	    c.JSON(http.StatusInternalServerError, ...)
//	}
package v1

import "errors"

// Sentinel errors for authentication operations.
// These errors should be wrapped with context using fmt.Errorf("%w") when returned.
var (
	// ErrUserNotFound indicates the user does not exist in the system.
	// HTTP Status: 404 Not Found
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials indicates the provided password is incorrect.
	// HTTP Status: 401 Unauthorized
	ErrInvalidCredentials = errors.New("invalid credentials")
)

package storage

import "errors"

// Common client storage errors
var (
	// ErrTokenNotFound indicates that the token is absent or expired
	ErrTokenNotFound = errors.New("token not found")

	// ErrUserNotFound indicates that no user profile is cached
	ErrUserNotFound = errors.New("user profile not found")

	// ErrSessionCleared indicates that the session was cleared while a write was in flight
	ErrSessionCleared = errors.New("session was cleared")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)

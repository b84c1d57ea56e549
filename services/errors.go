package services

import "errors"

// Common service-level errors
var (
	// Auth errors
	ErrBlankUsername   = errors.New("username should not be blank")
	ErrUserNotFound    = errors.New("not a valid username")
	ErrInvalidPassword = errors.New("invalid password")
	ErrNotLoggedIn     = errors.New("not logged in")
	ErrUnauthorized    = errors.New("unauthorized access")

	// User errors
	ErrUserExists = errors.New("username already taken")

	// Read errors
	ErrReadFailed = errors.New("could not read from the database")
)

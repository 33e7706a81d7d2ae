package repository

import "errors"

var (
	// ErrNotFound indicates no user with the requested id exists.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail indicates another user already owns the email.
	ErrDuplicateEmail = errors.New("email already in use")
)

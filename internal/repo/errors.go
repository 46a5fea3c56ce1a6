package repo

import "errors"

var (
	// ErrNotFound is returned when no record matches.
	ErrNotFound = errors.New("record not found")
	// ErrUsernameTaken is returned for a duplicate username on signup.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrEmailTaken is returned for a duplicate email on signup.
	ErrEmailTaken = errors.New("email already exists")
)

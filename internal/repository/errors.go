package repository

import "errors"

var (
	// ErrNotFound is returned when a lookup matches no row, or when a
	// conditional status update touches no row.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateSession is returned when an insert collides with the
	// uniqueness constraint on the session's reservation reference.
	ErrDuplicateSession = errors.New("session already exists for reservation")
)

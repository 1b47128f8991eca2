package repositories

import "errors"

// ErrNotFound is returned when the requested row does not exist, including
// writes whose target has already been deleted.
var ErrNotFound = errors.New("record not found")

// ErrConflict is returned when an insert collides with a uniqueness
// constraint, such as a duplicate username.
var ErrConflict = errors.New("record conflict")

package store

import "errors"

// Sentinel errors returned by store implementations. Services translate these
// into coded domain errors at the boundary.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)

// IsNotFound reports whether err is the not-found sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists reports whether err is the already-exists sentinel.
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

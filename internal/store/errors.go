package store

import "errors"

// Sentinel errors returned by store implementations. Services translate
// these into domain errors; the store layer stays transport-agnostic.
var (
	// ErrNotFound is returned when a record is absent or, for owner-scoped
	// lookups, owned by someone else. The two cases are deliberately
	// indistinguishable.
	ErrNotFound = errors.New("record not found")

	// ErrAlreadyExists is returned on unique constraint violations
	// (duplicate email, duplicate secret key).
	ErrAlreadyExists = errors.New("record already exists")
)

package domain

import "errors"

// Error taxonomy shared by every layer. Adapters translate driver errors into
// these sentinels; callers branch with errors.Is.
var (
	// ErrTransport covers network and service failures talking to the
	// remote store or object storage.
	ErrTransport = errors.New("transport failure")

	// ErrNotFound is returned when a listing id matches no row.
	ErrNotFound = errors.New("listing not found")

	// ErrUserNotFound is the user-collection counterpart of ErrNotFound.
	ErrUserNotFound = errors.New("user not found")

	// ErrValidation is returned when a record's shape is rejected before
	// or by the store.
	ErrValidation = errors.New("invalid listing data")

	// ErrUpload is returned when an object storage write fails.
	ErrUpload = errors.New("image upload failed")
)

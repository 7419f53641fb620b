package domain

import "context"

// ListingRepository is the contract against the remote listing collection.
// There is no caching layer behind it: every call round-trips to the store,
// and no call is retried.
type ListingRepository interface {
	// FetchAll returns every listing. Zero rows is a valid result and
	// comes back as an empty, non-nil slice with a nil error.
	FetchAll(ctx context.Context) ([]*Listing, error)

	// FetchByID returns ErrNotFound when no row matches id.
	FetchByID(ctx context.Context, id string) (*Listing, error)

	// Create inserts draft (its ID must be empty; the store assigns one)
	// and returns the stored record.
	Create(ctx context.Context, draft *Listing) (*Listing, error)

	// Update replaces the record wholesale and returns the stored result.
	// A (nil, nil) return means the target id no longer exists; that is a
	// handled no-op for callers, not an error.
	Update(ctx context.Context, listing *Listing) (*Listing, error)

	// DeleteByID is idempotent: deleting an absent id succeeds.
	DeleteByID(ctx context.Context, id string) error
}

// UserRepository reads and deletes accounts; creation belongs to the auth
// provider.
type UserRepository interface {
	FetchAll(ctx context.Context) ([]*User, error)
	DeleteByID(ctx context.Context, id string) error
}

// PhotoStorage writes one image to object storage and returns its public URL.
type PhotoStorage interface {
	Upload(ctx context.Context, fileName string, data []byte) (string, error)
}

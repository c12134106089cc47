package domain

import (
	"context"
	"time"
)

// ListingFilter narrows a listing snapshot. Empty fields match everything.
type ListingFilter struct {
	Status   ListingStatus
	PostedBy string
}

// ListingRepository owns the authoritative listing collection.
// Implementations: internal/infra/memory, internal/infra/postgres
type ListingRepository interface {
	// Create stores a new listing. The listing must carry an ID.
	Create(ctx context.Context, listing *Listing) error

	// GetByID returns a copy of the listing, or nil if it does not exist.
	GetByID(ctx context.Context, id string) (*Listing, error)

	// UpdateStatus sets the moderation status and admin note, returning the updated listing.
	// Returns nil, nil when the listing does not exist.
	UpdateStatus(ctx context.Context, id string, status ListingStatus, note string) (*Listing, error)

	// List returns a read snapshot in insertion order.
	List(ctx context.Context, filter ListingFilter) ([]*Listing, error)

	// UpsertFeed creates or updates feed listings keyed by source + external ID.
	UpsertFeed(ctx context.Context, listings []*Listing) error

	// CountByStatus returns the number of listings per status.
	CountByStatus(ctx context.Context) (map[ListingStatus]int, error)
}

// UserRepository stores registered accounts.
type UserRepository interface {
	Create(ctx context.Context, user *User) error

	// GetByID and GetByEmail return nil, nil when no user matches.
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)

	// SetCanPostAd updates the posting permission. Returns nil, nil for unknown users.
	SetCanPostAd(ctx context.Context, id string, canPostAd bool) (*User, error)

	List(ctx context.Context) ([]*User, error)
	Count(ctx context.Context) (int, error)
}

// PaymentRepository stores payment records.
type PaymentRepository interface {
	Create(ctx context.Context, payment *Payment) error

	// ListByUser returns the user's payments, newest first.
	ListByUser(ctx context.Context, userID string) ([]*Payment, error)

	// Totals returns the number of payments and the sum of their amounts.
	Totals(ctx context.Context) (count int, revenue float64, err error)
}

// SubmissionRepository stores contact submissions.
type SubmissionRepository interface {
	Create(ctx context.Context, submission *Submission) error
	ListByUser(ctx context.Context, userID string) ([]*Submission, error)
}

// FeedProvider defines the interface for upstream catalog feeds.
// Implementations: internal/infra/provider/catalogfeed, internal/infra/provider/partnerfeed
type FeedProvider interface {
	// Name returns the unique identifier for this feed. It becomes Listing.Source.
	Name() string

	// Fetch retrieves the full feed normalized into listings.
	Fetch(ctx context.Context) ([]*Listing, error)

	// HealthCheck verifies the feed is reachable.
	HealthCheck(ctx context.Context) error
}

// Cache defines the interface for key-value storage with expiry.
// Implementations: internal/infra/redis, internal/infra/memory
type Cache interface {
	// Get retrieves a value by key. Returns nil if not found.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key.
	Delete(ctx context.Context, key string) error

	// Clear removes all cached values.
	Clear(ctx context.Context) error
}

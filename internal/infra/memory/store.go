// Package memory provides the in-process storage driver.
// It is the default driver and keeps all state for the lifetime of the process.
package memory

import (
	"context"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"storefront-catalog-service/internal/domain"
)

// Store implements every domain repository over guarded slices.
// Reads return deep copies so callers never observe later writes.
type Store struct {
	mu sync.RWMutex

	listings    []*domain.Listing // insertion order
	users       []*domain.User
	payments    []*domain.Payment
	submissions []*domain.Submission
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Listings returns the store as a domain.ListingRepository.
func (s *Store) Listings() *ListingRepository { return &ListingRepository{s: s} }

// Users returns the store as a domain.UserRepository.
func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }

// Payments returns the store as a domain.PaymentRepository.
func (s *Store) Payments() *PaymentRepository { return &PaymentRepository{s: s} }

// Submissions returns the store as a domain.SubmissionRepository.
func (s *Store) Submissions() *SubmissionRepository { return &SubmissionRepository{s: s} }

// ListingRepository implements domain.ListingRepository.
type ListingRepository struct{ s *Store }

// Create appends a listing. Duplicate IDs are rejected.
func (r *ListingRepository) Create(_ context.Context, listing *domain.Listing) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if listing.ID == "" {
		listing.ID = uuid.NewString()
	}
	if r.s.findListing(listing.ID) >= 0 {
		return domain.Conflict("listing already exists").WithOp("memory.CreateListing")
	}

	r.s.listings = append(r.s.listings, listing.Clone())
	return nil
}

// GetByID returns a copy of the listing, or nil if it does not exist.
func (r *ListingRepository) GetByID(_ context.Context, id string) (*domain.Listing, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if i := r.s.findListing(id); i >= 0 {
		return r.s.listings[i].Clone(), nil
	}
	return nil, nil
}

// UpdateStatus sets the moderation status and note.
func (r *ListingRepository) UpdateStatus(_ context.Context, id string, status domain.ListingStatus, note string) (*domain.Listing, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.s.findListing(id)
	if i < 0 {
		return nil, nil
	}

	l := r.s.listings[i]
	l.Status = status
	l.AdminNote = note
	l.UpdatedAt = time.Now().UTC()

	return l.Clone(), nil
}

// List returns matching listings in insertion order.
func (r *ListingRepository) List(_ context.Context, filter domain.ListingFilter) ([]*domain.Listing, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.Listing, 0, len(r.s.listings))
	for _, l := range r.s.listings {
		if filter.Status != "" && l.Status != filter.Status {
			continue
		}
		if filter.PostedBy != "" && l.PostedBy != filter.PostedBy {
			continue
		}
		out = append(out, l.Clone())
	}
	return out, nil
}

// UpsertFeed replaces listings that share source and external ID, keeping their
// identity and position, and appends the rest.
func (r *ListingRepository) UpsertFeed(_ context.Context, listings []*domain.Listing) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := time.Now().UTC()
	for _, incoming := range listings {
		if i := r.s.findFeedListing(incoming.Source, incoming.ExternalID); i >= 0 {
			existing := r.s.listings[i]
			updated := incoming.Clone()
			updated.ID = existing.ID
			updated.CreatedAt = existing.CreatedAt
			updated.UpdatedAt = now
			r.s.listings[i] = updated

			incoming.ID = updated.ID
			continue
		}

		if incoming.ID == "" {
			incoming.ID = uuid.NewString()
		}
		incoming.UpdatedAt = now
		r.s.listings = append(r.s.listings, incoming.Clone())
	}
	return nil
}

// CountByStatus returns the number of listings per status.
func (r *ListingRepository) CountByStatus(_ context.Context) (map[domain.ListingStatus]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	counts := make(map[domain.ListingStatus]int, 3)
	for _, l := range r.s.listings {
		counts[l.Status]++
	}
	return counts, nil
}

func (s *Store) findListing(id string) int {
	return slices.IndexFunc(s.listings, func(l *domain.Listing) bool { return l.ID == id })
}

func (s *Store) findFeedListing(source, externalID string) int {
	return slices.IndexFunc(s.listings, func(l *domain.Listing) bool {
		return l.Source == source && l.ExternalID == externalID
	})
}

// UserRepository implements domain.UserRepository. Emails are matched case-insensitively.
type UserRepository struct{ s *Store }

// Create stores a user. Duplicate emails are rejected with a conflict error.
func (r *UserRepository) Create(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.findUserByEmail(user.Email) >= 0 {
		return domain.Conflict("email already registered").WithOp("memory.CreateUser")
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	r.s.users = append(r.s.users, user.Clone())
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if i := r.s.findUser(id); i >= 0 {
		return r.s.users[i].Clone(), nil
	}
	return nil, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if i := r.s.findUserByEmail(email); i >= 0 {
		return r.s.users[i].Clone(), nil
	}
	return nil, nil
}

// SetCanPostAd updates the posting permission of a user.
func (r *UserRepository) SetCanPostAd(_ context.Context, id string, canPostAd bool) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.s.findUser(id)
	if i < 0 {
		return nil, nil
	}

	u := r.s.users[i]
	u.CanPostAd = canPostAd
	u.UpdatedAt = time.Now().UTC()
	return u.Clone(), nil
}

// List returns users in registration order.
func (r *UserRepository) List(_ context.Context) ([]*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.User, len(r.s.users))
	for i, u := range r.s.users {
		out[i] = u.Clone()
	}
	return out, nil
}

func (r *UserRepository) Count(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return len(r.s.users), nil
}

func (s *Store) findUser(id string) int {
	return slices.IndexFunc(s.users, func(u *domain.User) bool { return u.ID == id })
}

func (s *Store) findUserByEmail(email string) int {
	return slices.IndexFunc(s.users, func(u *domain.User) bool { return strings.EqualFold(u.Email, email) })
}

// PaymentRepository implements domain.PaymentRepository.
type PaymentRepository struct{ s *Store }

func (r *PaymentRepository) Create(_ context.Context, payment *domain.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if payment.ID == "" {
		payment.ID = uuid.NewString()
	}
	r.s.payments = append(r.s.payments, clonePayment(payment))
	return nil
}

// ListByUser returns the user's payments, newest first.
func (r *PaymentRepository) ListByUser(_ context.Context, userID string) ([]*domain.Payment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []*domain.Payment{}
	for i := len(r.s.payments) - 1; i >= 0; i-- {
		if p := r.s.payments[i]; p.UserID == userID {
			out = append(out, clonePayment(p))
		}
	}
	// back-dated records
	slices.SortStableFunc(out, func(a, b *domain.Payment) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return out, nil
}

// Totals returns the number of payments and their summed amount.
func (r *PaymentRepository) Totals(_ context.Context) (int, float64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var revenue float64
	for _, p := range r.s.payments {
		revenue += p.Amount
	}
	return len(r.s.payments), revenue, nil
}

func clonePayment(p *domain.Payment) *domain.Payment {
	c := *p
	c.Details = maps.Clone(p.Details)
	return &c
}

// SubmissionRepository implements domain.SubmissionRepository.
type SubmissionRepository struct{ s *Store }

func (r *SubmissionRepository) Create(_ context.Context, submission *domain.Submission) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if submission.ID == "" {
		submission.ID = uuid.NewString()
	}
	c := *submission
	r.s.submissions = append(r.s.submissions, &c)
	return nil
}

// ListByUser returns the user's submissions in the order they were sent.
func (r *SubmissionRepository) ListByUser(_ context.Context, userID string) ([]*domain.Submission, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []*domain.Submission{}
	for _, sub := range r.s.submissions {
		if sub.UserID == userID {
			c := *sub
			out = append(out, &c)
		}
	}
	return out, nil
}

var (
	_ domain.ListingRepository    = (*ListingRepository)(nil)
	_ domain.UserRepository       = (*UserRepository)(nil)
	_ domain.PaymentRepository    = (*PaymentRepository)(nil)
	_ domain.SubmissionRepository = (*SubmissionRepository)(nil)
)

// Package domain contains the core business logic and entities.
// This package has no external dependencies (only stdlib).
package domain

import (
	"slices"
	"time"
)

// Default age bounds applied when a listing does not declare its own.
const (
	DefaultAgeMin = 18
	DefaultAgeMax = 65
)

// ListingStatus represents the moderation state of a listing.
type ListingStatus string

const (
	ListingStatusPending  ListingStatus = "pending"
	ListingStatusApproved ListingStatus = "approved"
	ListingStatusRejected ListingStatus = "rejected"
)

// IsValid reports whether s is one of the known statuses.
func (s ListingStatus) IsValid() bool {
	switch s {
	case ListingStatusPending, ListingStatusApproved, ListingStatusRejected:
		return true
	default:
		return false
	}
}

// SourceUser marks listings submitted through the storefront rather than imported from a feed.
const SourceUser = "user"

// Listing is a single service entry in the catalog.
// Every data source normalizes into this shape before the listing reaches the store.
type Listing struct {
	// Primary identifiers
	ID         string `json:"id"`
	Source     string `json:"source"`      // "user" or a feed name
	ExternalID string `json:"external_id"` // ID within the source (unique per source)

	// Catalog metadata
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	LongDescription string   `json:"long_description,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	Category        string   `json:"category"`
	Location        string   `json:"location"`
	Price           float64  `json:"price"`
	PriceType       string   `json:"price_type,omitempty"` // hourly, session, package

	// Audience
	AgeMin *int   `json:"age_min,omitempty"`
	AgeMax *int   `json:"age_max,omitempty"`
	Gender string `json:"gender,omitempty"` // male, female, both

	SafetyBadges []string `json:"safety_badges,omitempty"`
	Images       []string `json:"images,omitempty"`

	// Moderation
	Status    ListingStatus `json:"status"`
	AdminNote string        `json:"admin_note,omitempty"`
	Featured  bool          `json:"featured"`
	Verified  bool          `json:"verified"`

	// Ownership (empty for feed listings)
	PostedBy      string `json:"posted_by,omitempty"`
	PostedByName  string `json:"posted_by_name,omitempty"`
	PostedByEmail string `json:"posted_by_email,omitempty"`

	// Timestamps
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AgeRange returns the effective age bounds, substituting the defaults for absent values.
func (l *Listing) AgeRange() (minAge, maxAge int) {
	minAge, maxAge = DefaultAgeMin, DefaultAgeMax
	if l.AgeMin != nil {
		minAge = *l.AgeMin
	}
	if l.AgeMax != nil {
		maxAge = *l.AgeMax
	}
	return minAge, maxAge
}

// IsApproved returns true if the listing is visible to end users.
func (l *Listing) IsApproved() bool {
	return l.Status == ListingStatusApproved
}

// IsOwnedBy returns true if the listing was posted by the given user.
func (l *Listing) IsOwnedBy(userID string) bool {
	return l.PostedBy != "" && l.PostedBy == userID
}

// Clone returns a deep copy of the listing.
func (l *Listing) Clone() *Listing {
	if l == nil {
		return nil
	}
	c := *l
	c.Tags = slices.Clone(l.Tags)
	c.SafetyBadges = slices.Clone(l.SafetyBadges)
	c.Images = slices.Clone(l.Images)
	if l.AgeMin != nil {
		v := *l.AgeMin
		c.AgeMin = &v
	}
	if l.AgeMax != nil {
		v := *l.AgeMax
		c.AgeMax = &v
	}
	return &c
}

// CloneListings deep-copies a slice of listings.
func CloneListings(listings []*Listing) []*Listing {
	out := make([]*Listing, len(listings))
	for i, l := range listings {
		out[i] = l.Clone()
	}
	return out
}

// IntPtr is a small helper for optional integer fields.
func IntPtr(v int) *int {
	return &v
}

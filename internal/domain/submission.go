package domain

import "time"

// Submission is a contact request sent about a listing.
type Submission struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ListingID string    `json:"listing_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// SystemStats summarizes the storefront for the admin dashboard.
type SystemStats struct {
	TotalUsers    int     `json:"total_users"`
	TotalPosts    int     `json:"total_posts"`
	PendingPosts  int     `json:"pending_posts"`
	ApprovedPosts int     `json:"approved_posts"`
	RejectedPosts int     `json:"rejected_posts"`
	TotalRevenue  float64 `json:"total_revenue"`
	TotalPayments int     `json:"total_payments"`
}

package dto

import (
	"time"

	"storefront-catalog-service/internal/app/service"
	"storefront-catalog-service/internal/domain"
)

// ListingResponse represents a single listing in the response.
type ListingResponse struct {
	ID              string   `json:"id"`
	Source          string   `json:"source"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	LongDescription string   `json:"long_description,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	Category        string   `json:"category"`
	Location        string   `json:"location"`
	Price           float64  `json:"price"`
	PriceType       string   `json:"price_type,omitempty"`

	// Effective audience after defaults
	AgeMin int    `json:"age_min"`
	AgeMax int    `json:"age_max"`
	Gender string `json:"gender,omitempty"`

	SafetyBadges []string `json:"safety_badges,omitempty"`
	Images       []string `json:"images,omitempty"`
	Featured     bool     `json:"featured"`
	Verified     bool     `json:"verified"`

	// Moderation, only filled for owner and admin views
	Status    string `json:"status,omitempty"`
	AdminNote string `json:"admin_note,omitempty"`
	PostedBy  string `json:"posted_by,omitempty"`

	CreatedAt string `json:"created_at,omitempty"`
}

// FromDomainListing converts domain.Listing to ListingResponse. withModeration
// includes the moderation fields.
func FromDomainListing(l *domain.Listing, withModeration bool) ListingResponse {
	minAge, maxAge := l.AgeRange()

	resp := ListingResponse{
		ID:              l.ID,
		Source:          l.Source,
		Title:           l.Title,
		Description:     l.Description,
		LongDescription: l.LongDescription,
		Tags:            l.Tags,
		Category:        l.Category,
		Location:        l.Location,
		Price:           l.Price,
		PriceType:       l.PriceType,
		AgeMin:          minAge,
		AgeMax:          maxAge,
		Gender:          l.Gender,
		SafetyBadges:    l.SafetyBadges,
		Images:          l.Images,
		Featured:        l.Featured,
		Verified:        l.Verified,
		CreatedAt:       formatTime(l.CreatedAt),
	}
	if withModeration {
		resp.Status = string(l.Status)
		resp.AdminNote = l.AdminNote
		resp.PostedBy = l.PostedBy
	}
	return resp
}

// FromDomainListings converts a slice of listings.
func FromDomainListings(listings []*domain.Listing, withModeration bool) []ListingResponse {
	out := make([]ListingResponse, len(listings))
	for i, l := range listings {
		out[i] = FromDomainListing(l, withModeration)
	}
	return out
}

// BrowseResponse represents one page of catalog results.
type BrowseResponse struct {
	Listings   []ListingResponse `json:"listings"`
	Pagination PaginationMeta    `json:"pagination"`
}

// PaginationMeta holds pagination metadata.
type PaginationMeta struct {
	Total      int  `json:"total"`
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
}

// FromQueryResult converts domain.QueryResult to BrowseResponse.
func FromQueryResult(result *domain.QueryResult, withModeration bool) BrowseResponse {
	return BrowseResponse{
		Listings: FromDomainListings(result.Items, withModeration),
		Pagination: PaginationMeta{
			Total:      result.TotalCount,
			Page:       result.Page,
			PageSize:   result.PageSize,
			TotalPages: result.TotalPages,
			HasNext:    result.HasNext(),
		},
	}
}

// UserResponse represents an account. The password hash never leaves the service.
type UserResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone,omitempty"`
	Role        string   `json:"role"`
	AdminID     string   `json:"admin_id,omitempty"`
	Permissions []string `json:"permissions"`
	CanPostAd   bool     `json:"can_post_ad"`
	IsVerified  bool     `json:"is_verified"`
	CreatedAt   string   `json:"created_at,omitempty"`
}

// FromDomainUser converts domain.User to UserResponse.
func FromDomainUser(u *domain.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Phone:       u.Phone,
		Role:        string(u.Role),
		AdminID:     u.AdminID,
		Permissions: u.Permissions,
		CanPostAd:   u.CanPostAd,
		IsVerified:  u.IsVerified,
		CreatedAt:   formatTime(u.CreatedAt),
	}
}

// FromDomainUsers converts a slice of users.
func FromDomainUsers(users []*domain.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i, u := range users {
		out[i] = FromDomainUser(u)
	}
	return out
}

// SessionResponse is returned by signup and the login endpoints.
type SessionResponse struct {
	Token     string       `json:"token"`
	ExpiresAt string       `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// FromSession converts service.Session to SessionResponse.
func FromSession(s *service.Session) SessionResponse {
	return SessionResponse{
		Token:     s.Token,
		ExpiresAt: formatTime(s.ExpiresAt),
		User:      FromDomainUser(s.User),
	}
}

// SyncResultResponse represents the response for a sync operation.
type SyncResultResponse struct {
	Feed     string `json:"feed"`
	Count    int    `json:"count"`
	Duration string `json:"duration"`
	Error    string `json:"error,omitempty"`
}

// FromSyncResult converts a single service.SyncResult.
func FromSyncResult(r service.SyncResult) SyncResultResponse {
	resp := SyncResultResponse{
		Feed:     r.Feed,
		Count:    r.Count,
		Duration: r.Duration.String(),
	}
	if r.Error != nil {
		resp.Error = r.Error.Error()
	}
	return resp
}

// SyncResponse represents the response for sync all operation.
type SyncResponse struct {
	Results []SyncResultResponse `json:"results"`
	Summary SyncSummary          `json:"summary"`
}

// SyncSummary holds summary of sync operation.
type SyncSummary struct {
	TotalSynced int `json:"total_synced"`
	FeedsOK     int `json:"feeds_ok"`
	FeedsFailed int `json:"feeds_failed"`
}

// FromSyncResults converts service.SyncResult slice to SyncResponse.
func FromSyncResults(results []service.SyncResult) SyncResponse {
	synced, failed := service.Summarize(results)

	resp := SyncResponse{
		Results: make([]SyncResultResponse, len(results)),
		Summary: SyncSummary{
			TotalSynced: synced,
			FeedsOK:     len(results) - failed,
			FeedsFailed: failed,
		},
	}
	for i, r := range results {
		resp.Results[i] = FromSyncResult(r)
	}
	return resp
}

// FeedStatus reports a feed and whether it answered its health check.
type FeedStatus struct {
	Name    string `json:"name"`
	Healthy bool   `json:"healthy"`
	Error   string `json:"error,omitempty"`
}

// FeedsResponse lists the configured feeds.
type FeedsResponse struct {
	Feeds []FeedStatus `json:"feeds"`
}

// FromFeedHealth builds FeedsResponse in the given feed order.
func FromFeedHealth(names []string, health map[string]error) FeedsResponse {
	resp := FeedsResponse{Feeds: make([]FeedStatus, len(names))}
	for i, name := range names {
		status := FeedStatus{Name: name, Healthy: health[name] == nil}
		if err := health[name]; err != nil {
			status.Error = err.Error()
		}
		resp.Feeds[i] = status
	}
	return resp
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

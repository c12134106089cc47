package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront-catalog-service/internal/domain"
)

// Accepted audience bounds for submitted listings.
const (
	MinListingAge = 18
	MaxListingAge = 99
)

// ListingInput is a new listing as submitted by a user.
type ListingInput struct {
	Title           string
	Description     string
	LongDescription string
	Category        string
	Location        string
	Price           float64
	PriceType       string
	AgeMin          *int
	AgeMax          *int
	Gender          string
	Tags            []string
	SafetyBadges    []string
	Images          []string
}

// ListingService handles user-submitted listings and their moderation.
type ListingService struct {
	listings domain.ListingRepository
	logger   *zap.Logger
}

// NewListingService creates a new ListingService.
func NewListingService(listings domain.ListingRepository, logger *zap.Logger) *ListingService {
	return &ListingService{
		listings: listings,
		logger:   logger,
	}
}

// Submit creates a listing owned by actor. Admin submissions are approved
// immediately, everyone else's wait for moderation.
func (s *ListingService) Submit(ctx context.Context, actor *domain.User, in ListingInput) (*domain.Listing, error) {
	const op = "listing.Submit"
	if err := requireActor(actor, op); err != nil {
		return nil, err
	}
	if !actor.CanSubmitListing() {
		return nil, domain.Forbidden("posting is not enabled for this account").WithOp(op)
	}

	gender, err := normalizeInput(&in)
	if err != nil {
		return nil, err.WithOp(op)
	}

	status := domain.ListingStatusPending
	if actor.IsAdmin() {
		status = domain.ListingStatusApproved
	}

	now := time.Now().UTC()
	listing := &domain.Listing{
		ID:              uuid.NewString(),
		Source:          domain.SourceUser,
		Title:           in.Title,
		Description:     in.Description,
		LongDescription: in.LongDescription,
		Tags:            in.Tags,
		Category:        in.Category,
		Location:        in.Location,
		Price:           in.Price,
		PriceType:       in.PriceType,
		AgeMin:          in.AgeMin,
		AgeMax:          in.AgeMax,
		Gender:          gender,
		SafetyBadges:    in.SafetyBadges,
		Images:          in.Images,
		Status:          status,
		Verified:        actor.IsVerified,
		PostedBy:        actor.ID,
		PostedByName:    actor.Name,
		PostedByEmail:   actor.Email,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	listing.ExternalID = listing.ID

	if err := s.listings.Create(ctx, listing); err != nil {
		s.logger.Error("create listing failed", zap.String("user_id", actor.ID), zap.Error(err))
		return nil, fmt.Errorf("creating listing: %w", err)
	}

	s.logger.Info("listing submitted",
		zap.String("listing_id", listing.ID),
		zap.String("user_id", actor.ID),
		zap.String("status", string(status)),
	)

	return listing, nil
}

// normalizeInput trims text fields and checks the submission rules. It returns the normalized gender.
func normalizeInput(in *ListingInput) (string, *domain.Error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.LongDescription = strings.TrimSpace(in.LongDescription)
	in.Category = strings.TrimSpace(in.Category)
	in.Location = strings.TrimSpace(in.Location)

	switch {
	case in.Title == "":
		return "", domain.InvalidArgument("title is required")
	case in.Category == "":
		return "", domain.InvalidArgument("category is required")
	case in.Location == "":
		return "", domain.InvalidArgument("location is required")
	case in.Price < 0:
		return "", domain.InvalidArgument("price must not be negative")
	}

	for _, bound := range []*int{in.AgeMin, in.AgeMax} {
		if bound != nil && (*bound < MinListingAge || *bound > MaxListingAge) {
			return "", domain.InvalidArgument(fmt.Sprintf("age bounds must be between %d and %d", MinListingAge, MaxListingAge))
		}
	}
	probe := domain.Listing{AgeMin: in.AgeMin, AgeMax: in.AgeMax}
	if minAge, maxAge := probe.AgeRange(); minAge > maxAge {
		return "", domain.InvalidArgument("minimum age must not exceed maximum age")
	}

	gender := strings.ToLower(strings.TrimSpace(in.Gender))
	switch gender {
	case "", "male", "female", "both":
	case "any":
		gender = "both"
	default:
		return "", domain.InvalidArgument("gender must be one of: male female both")
	}

	return gender, nil
}

// Moderate approves or rejects a listing. Only admins may moderate.
func (s *ListingService) Moderate(ctx context.Context, actor *domain.User, id string, status domain.ListingStatus, reason string) (*domain.Listing, error) {
	const op = "listing.Moderate"
	if err := requireAdmin(actor, op); err != nil {
		return nil, err
	}
	if status != domain.ListingStatusApproved && status != domain.ListingStatusRejected {
		return nil, domain.InvalidArgument("status must be approved or rejected").WithOp(op)
	}

	listing, err := s.listings.UpdateStatus(ctx, id, status, strings.TrimSpace(reason))
	if err != nil {
		s.logger.Error("moderate listing failed", zap.String("listing_id", id), zap.Error(err))
		return nil, fmt.Errorf("updating listing status: %w", err)
	}
	if listing == nil {
		return nil, domain.NotFound("listing not found").WithOp(op)
	}

	s.logger.Info("listing moderated",
		zap.String("listing_id", id),
		zap.String("status", string(status)),
		zap.String("admin_id", actor.ID),
	)

	return listing, nil
}

// PostsBy returns the actor's own listings in every status.
func (s *ListingService) PostsBy(ctx context.Context, actor *domain.User) ([]*domain.Listing, error) {
	if err := requireActor(actor, "listing.PostsBy"); err != nil {
		return nil, err
	}

	listings, err := s.listings.List(ctx, domain.ListingFilter{PostedBy: actor.ID})
	if err != nil {
		return nil, fmt.Errorf("listing user posts: %w", err)
	}
	return listings, nil
}

// AdminQuery runs the catalog query over every listing, optionally narrowed to one status.
func (s *ListingService) AdminQuery(ctx context.Context, actor *domain.User, status domain.ListingStatus, spec domain.QuerySpec) (*domain.QueryResult, error) {
	const op = "listing.AdminQuery"
	if err := requireAdmin(actor, op); err != nil {
		return nil, err
	}
	if status != "" && !status.IsValid() {
		return nil, domain.InvalidArgument("unknown listing status").WithOp(op)
	}

	all, err := s.listings.List(ctx, domain.ListingFilter{Status: status})
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}

	return domain.Query(all, spec)
}

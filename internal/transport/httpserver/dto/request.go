// Package dto provides Data Transfer Objects for HTTP requests and responses.
package dto

import (
	"strings"

	"storefront-catalog-service/internal/app/service"
	"storefront-catalog-service/internal/domain"
	"storefront-catalog-service/internal/validator"
)

// BrowseRequest represents the query parameters of the public catalog browse.
// Unknown sort keys are accepted and fall back to relevance.
type BrowseRequest struct {
	Query    string   `query:"q" validate:"max=200"`
	Category string   `query:"category" validate:"max=100"`
	Location string   `query:"location" validate:"max=200"`
	Gender   string   `query:"gender" validate:"omitempty,oneof=male female both"`
	PriceMin *float64 `query:"price_min" validate:"omitempty,gte=0"`
	PriceMax *float64 `query:"price_max" validate:"omitempty,gte=0"`
	Age      string   `query:"age" validate:"omitempty,agerange"` // "18-65", wins over age_min/age_max
	AgeMin   *int     `query:"age_min" validate:"omitempty,gte=0"`
	AgeMax   *int     `query:"age_max" validate:"omitempty,gte=0"`
	Verified bool     `query:"verified"`
	Sort     string   `query:"sort"`
	Page     int      `query:"page"`
	PageSize int      `query:"page_size" validate:"omitempty,min=1"`
}

// ToQuerySpec converts BrowseRequest to domain.QuerySpec. The page size defaults to
// defaultSize and is capped at maxSize.
func (r *BrowseRequest) ToQuerySpec(defaultSize, maxSize int) domain.QuerySpec {
	spec := domain.QuerySpec{
		SearchTerm:   r.Query,
		Category:     r.Category,
		Location:     r.Location,
		Gender:       r.Gender,
		PriceMin:     r.PriceMin,
		PriceMax:     r.PriceMax,
		AgeMin:       r.AgeMin,
		AgeMax:       r.AgeMax,
		VerifiedOnly: r.Verified,
		SortKey:      domain.SortKey(strings.TrimSpace(r.Sort)),
		Page:         r.Page,
		PageSize:     pageSize(r.PageSize, defaultSize, maxSize),
	}

	if r.Age != "" {
		if minAge, maxAge, err := validator.ParseAgeRange(r.Age); err == nil {
			spec.AgeMin = &minAge
			spec.AgeMax = &maxAge
		}
	}

	return spec
}

// AdminListingsRequest represents the query parameters of the admin "all posts" view.
type AdminListingsRequest struct {
	Status   string `query:"status" validate:"omitempty,oneof=pending approved rejected"`
	Query    string `query:"q" validate:"max=200"`
	Category string `query:"category" validate:"max=100"`
	Sort     string `query:"sort" validate:"omitempty,sortkey"`
	Page     int    `query:"page"`
	PageSize int    `query:"page_size" validate:"omitempty,min=1"`
}

// ToQuerySpec converts AdminListingsRequest to domain.QuerySpec.
func (r *AdminListingsRequest) ToQuerySpec(defaultSize, maxSize int) domain.QuerySpec {
	return domain.QuerySpec{
		SearchTerm: r.Query,
		Category:   r.Category,
		SortKey:    domain.SortKey(r.Sort),
		Page:       r.Page,
		PageSize:   pageSize(r.PageSize, defaultSize, maxSize),
	}
}

func pageSize(requested, defaultSize, maxSize int) int {
	if requested <= 0 {
		return defaultSize
	}
	if maxSize > 0 && requested > maxSize {
		return maxSize
	}
	return requested
}

// SignupRequest represents the signup body.
type SignupRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Phone    string `json:"phone" validate:"max=30"`
}

// ToInput converts SignupRequest to service.SignupInput.
func (r *SignupRequest) ToInput() service.SignupInput {
	return service.SignupInput{Name: r.Name, Email: r.Email, Password: r.Password, Phone: r.Phone}
}

// LoginRequest represents the user login body.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AdminLoginRequest represents the administrator login body.
type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	AdminID  string `json:"admin_id" validate:"required"`
}

// CreateListingRequest represents a new post.
type CreateListingRequest struct {
	Title           string   `json:"title" validate:"required,max=200"`
	Description     string   `json:"description" validate:"required,max=500"`
	LongDescription string   `json:"long_description" validate:"max=5000"`
	Category        string   `json:"category" validate:"required,max=100"`
	Location        string   `json:"location" validate:"required,max=200"`
	Price           float64  `json:"price" validate:"gte=0"`
	PriceType       string   `json:"price_type" validate:"omitempty,oneof=hourly session package"`
	AgeMin          *int     `json:"age_min" validate:"omitempty,gte=18,lte=99"`
	AgeMax          *int     `json:"age_max" validate:"omitempty,gte=18,lte=99"`
	Gender          string   `json:"gender" validate:"omitempty,oneof=male female both any"`
	Tags            []string `json:"tags" validate:"max=20,dive,max=50"`
	SafetyBadges    []string `json:"safety_badges" validate:"max=10,dive,max=50"`
	Images          []string `json:"images" validate:"max=10,dive,url"`
}

// ToInput converts CreateListingRequest to service.ListingInput.
func (r *CreateListingRequest) ToInput() service.ListingInput {
	return service.ListingInput{
		Title:           r.Title,
		Description:     r.Description,
		LongDescription: r.LongDescription,
		Category:        r.Category,
		Location:        r.Location,
		Price:           r.Price,
		PriceType:       r.PriceType,
		AgeMin:          r.AgeMin,
		AgeMax:          r.AgeMax,
		Gender:          r.Gender,
		Tags:            r.Tags,
		SafetyBadges:    r.SafetyBadges,
		Images:          r.Images,
	}
}

// ModerationRequest represents an approve/reject decision.
type ModerationRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
	Reason string `json:"reason" validate:"max=500"`
}

// PermissionsRequest toggles a user's posting permission.
type PermissionsRequest struct {
	CanPostAd *bool `json:"can_post_ad" validate:"required"`
}

// PaymentRequest represents a payment to record.
type PaymentRequest struct {
	Amount      float64           `json:"amount" validate:"gt=0"`
	Currency    string            `json:"currency" validate:"omitempty,len=3"`
	Method      string            `json:"method" validate:"required,oneof=card upi wallet"`
	ListingID   string            `json:"listing_id" validate:"max=64"`
	Description string            `json:"description" validate:"max=500"`
	Details     map[string]string `json:"details"`
}

// ToInput converts PaymentRequest to service.PaymentInput.
func (r *PaymentRequest) ToInput() service.PaymentInput {
	return service.PaymentInput{
		Amount:      r.Amount,
		Currency:    r.Currency,
		Method:      domain.PaymentMethod(r.Method),
		ListingID:   r.ListingID,
		Description: r.Description,
		Details:     r.Details,
	}
}

// PaymentHistoryRequest represents the payment history filters.
type PaymentHistoryRequest struct {
	Status string `query:"status" validate:"omitempty,oneof=pending completed failed"`
	Method string `query:"method" validate:"omitempty,oneof=card upi wallet"`
}

// ToFilter converts PaymentHistoryRequest to domain.PaymentFilter.
func (r *PaymentHistoryRequest) ToFilter() domain.PaymentFilter {
	return domain.PaymentFilter{
		Status: domain.PaymentStatus(r.Status),
		Method: domain.PaymentMethod(r.Method),
	}
}

// SubmissionRequest represents a contact form.
type SubmissionRequest struct {
	ListingID string `json:"listing_id" validate:"max=64"`
	Name      string `json:"name" validate:"max=100"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone" validate:"max=30"`
	Message   string `json:"message" validate:"required,max=2000"`
}

// ToInput converts SubmissionRequest to service.SubmissionInput.
func (r *SubmissionRequest) ToInput() service.SubmissionInput {
	return service.SubmissionInput{
		ListingID: r.ListingID,
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		Message:   r.Message,
	}
}

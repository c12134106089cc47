package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storefront-catalog-service/internal/domain"
)

var _ domain.ListingRepository = (*ListingRepository)(nil)

// feedUpdateColumns are overwritten when a feed listing is imported again.
// ID, seq and created_at keep the identity and position of the first import.
var feedUpdateColumns = []string{
	"title", "description", "long_description", "tags", "category", "location",
	"price", "price_type", "age_min", "age_max", "gender", "safety_badges", "images",
	"status", "featured", "verified", "updated_at",
}

// ListingRepository implements domain.ListingRepository using PostgreSQL.
type ListingRepository struct {
	db *gorm.DB
}

// NewListingRepository creates a new PostgreSQL listing repository.
func NewListingRepository(db *gorm.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

// Create inserts a listing. A duplicate ID or source/external ID pair is a conflict.
func (r *ListingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	if listing.ID == "" {
		listing.ID = uuid.NewString()
	}

	if err := r.db.WithContext(ctx).Create(listingFromDomain(listing)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.WrapError(domain.KindConflict, "listing already exists", err).WithOp("postgres.CreateListing")
		}
		return fmt.Errorf("creating listing: %w", err)
	}
	return nil
}

// GetByID retrieves a single listing, or nil when it does not exist.
func (r *ListingRepository) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	var model ListingModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting listing by id: %w", err)
	}
	return model.ToDomain(), nil
}

// UpdateStatus sets the moderation status and admin note.
func (r *ListingRepository) UpdateStatus(ctx context.Context, id string, status domain.ListingStatus, note string) (*domain.Listing, error) {
	res := r.db.WithContext(ctx).
		Model(&ListingModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     string(status),
			"admin_note": note,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return nil, fmt.Errorf("updating listing status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

// List returns matching listings in insertion order.
func (r *ListingRepository) List(ctx context.Context, filter domain.ListingFilter) ([]*domain.Listing, error) {
	query := r.db.WithContext(ctx).Model(&ListingModel{})
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.PostedBy != "" {
		query = query.Where("posted_by = ?", filter.PostedBy)
	}

	var models []ListingModel
	if err := query.Order("seq ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("listing listings: %w", err)
	}

	listings := make([]*domain.Listing, len(models))
	for i := range models {
		listings[i] = models[i].ToDomain()
	}
	return listings, nil
}

// UpsertFeed creates or updates feed listings keyed by source and external ID.
func (r *ListingRepository) UpsertFeed(ctx context.Context, listings []*domain.Listing) error {
	if len(listings) == 0 {
		return nil
	}

	now := time.Now().UTC()
	models := make([]*ListingModel, 0, len(listings))
	// a single INSERT ... ON CONFLICT cannot touch the same row twice; last one wins
	index := make(map[[2]string]int, len(listings))
	for _, l := range listings {
		m := listingFromDomain(l)
		if m.ID == "" {
			m.ID = uuid.NewString()
		}
		m.UpdatedAt = now

		key := [2]string{m.Source, m.ExternalID}
		if i, ok := index[key]; ok {
			models[i] = m
			continue
		}
		index[key] = len(models)
		models = append(models, m)
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "source"}, {Name: "external_id"}},
		DoUpdates: clause.AssignmentColumns(feedUpdateColumns),
	}).CreateInBatches(models, 100).Error
	if err != nil {
		return fmt.Errorf("upserting feed listings: %w", err)
	}

	return nil
}

// CountByStatus returns the number of listings per status.
func (r *ListingRepository) CountByStatus(ctx context.Context) (map[domain.ListingStatus]int, error) {
	var rows []struct {
		Status string
		Count  int
	}
	err := r.db.WithContext(ctx).
		Model(&ListingModel{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("counting listings: %w", err)
	}

	counts := make(map[domain.ListingStatus]int, len(rows))
	for _, row := range rows {
		counts[domain.ListingStatus(row.Status)] = row.Count
	}
	return counts, nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storefront-catalog-service/internal/domain"
)

var (
	_ domain.UserRepository       = (*UserRepository)(nil)
	_ domain.PaymentRepository    = (*PaymentRepository)(nil)
	_ domain.SubmissionRepository = (*SubmissionRepository)(nil)
)

// UserRepository implements domain.UserRepository. Emails are stored lowercased.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new PostgreSQL user repository.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a user. A duplicate email is a conflict.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	model := userFromDomain(user)
	model.Email = strings.ToLower(model.Email)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.WrapError(domain.KindConflict, "email already registered", err).WithOp("postgres.CreateUser")
		}
		return fmt.Errorf("creating user: %w", err)
	}
	return nil
}

// GetByID returns the user or nil.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.first(ctx, "id = ?", id)
}

// GetByEmail returns the user or nil. Matching ignores case.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.first(ctx, "email = ?", strings.ToLower(strings.TrimSpace(email)))
}

func (r *UserRepository) first(ctx context.Context, query string, arg any) (*domain.User, error) {
	var model UserModel
	err := r.db.WithContext(ctx).Where(query, arg).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return model.ToDomain(), nil
}

// SetCanPostAd updates the posting permission.
func (r *UserRepository) SetCanPostAd(ctx context.Context, id string, canPostAd bool) (*domain.User, error) {
	res := r.db.WithContext(ctx).
		Model(&UserModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"can_post_ad": canPostAd,
			"updated_at":  time.Now().UTC(),
		})
	if res.Error != nil {
		return nil, fmt.Errorf("updating user permissions: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

// List returns every user, oldest first.
func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	var models []UserModel
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	users := make([]*domain.User, len(models))
	for i := range models {
		users[i] = models[i].ToDomain()
	}
	return users, nil
}

// Count returns the number of registered users.
func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&UserModel{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}
	return int(n), nil
}

// PaymentRepository implements domain.PaymentRepository.
type PaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new PostgreSQL payment repository.
func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create inserts a payment record.
func (r *PaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(paymentFromDomain(payment)).Error; err != nil {
		return fmt.Errorf("creating payment: %w", err)
	}
	return nil
}

// ListByUser returns the user's payments, newest first.
func (r *PaymentRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Payment, error) {
	var models []PaymentModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}

	payments := make([]*domain.Payment, len(models))
	for i := range models {
		payments[i] = models[i].ToDomain()
	}
	return payments, nil
}

// Totals returns the number of payments and the sum of their amounts.
func (r *PaymentRepository) Totals(ctx context.Context) (int, float64, error) {
	var row struct {
		Count   int
		Revenue float64
	}
	err := r.db.WithContext(ctx).
		Model(&PaymentModel{}).
		Select("COUNT(*) AS count, COALESCE(SUM(amount), 0) AS revenue").
		Scan(&row).Error
	if err != nil {
		return 0, 0, fmt.Errorf("summing payments: %w", err)
	}
	return row.Count, row.Revenue, nil
}

// SubmissionRepository implements domain.SubmissionRepository.
type SubmissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository creates a new PostgreSQL submission repository.
func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// Create inserts a submission.
func (r *SubmissionRepository) Create(ctx context.Context, submission *domain.Submission) error {
	if submission.ID == "" {
		submission.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(submissionFromDomain(submission)).Error; err != nil {
		return fmt.Errorf("creating submission: %w", err)
	}
	return nil
}

// ListByUser returns the user's submissions in the order they were sent.
func (r *SubmissionRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Submission, error) {
	var models []SubmissionModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("seq ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("listing submissions: %w", err)
	}

	subs := make([]*domain.Submission, len(models))
	for i := range models {
		subs[i] = models[i].ToDomain()
	}
	return subs, nil
}

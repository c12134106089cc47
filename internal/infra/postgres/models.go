package postgres

import (
	"time"

	"github.com/lib/pq"

	"storefront-catalog-service/internal/domain"
)

// ListingModel is the GORM model for the listings table.
// Seq is assigned by the database and gives the stable insertion order.
type ListingModel struct {
	ID         string `gorm:"type:varchar(64);primaryKey"`
	Seq        int64  `gorm:"->;column:seq"`
	Source     string `gorm:"type:varchar(50);not null;uniqueIndex:uq_listings_source_external"`
	ExternalID string `gorm:"type:varchar(100);not null;uniqueIndex:uq_listings_source_external"`

	Title           string         `gorm:"type:varchar(500);not null"`
	Description     string         `gorm:"type:text"`
	LongDescription string         `gorm:"type:text"`
	Tags            pq.StringArray `gorm:"type:text[]"`
	Category        string         `gorm:"type:varchar(100)"`
	Location        string         `gorm:"type:varchar(200)"`
	Price           float64        `gorm:"type:numeric(12,2);not null;default:0"`
	PriceType       string         `gorm:"type:varchar(20)"`

	AgeMin *int   `gorm:"column:age_min"`
	AgeMax *int   `gorm:"column:age_max"`
	Gender string `gorm:"type:varchar(10)"`

	SafetyBadges pq.StringArray `gorm:"type:text[]"`
	Images       pq.StringArray `gorm:"type:text[]"`

	Status    string `gorm:"type:varchar(20);not null;index"`
	AdminNote string `gorm:"type:text"`
	Featured  bool
	Verified  bool

	PostedBy      string `gorm:"type:varchar(64);index"`
	PostedByName  string `gorm:"type:varchar(200)"`
	PostedByEmail string `gorm:"type:varchar(320)"`

	// undated feed listings keep the zero time so they sort as oldest
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time
}

// TableName returns the table name for ListingModel.
func (ListingModel) TableName() string {
	return "listings"
}

// ToDomain converts ListingModel to domain.Listing.
func (m *ListingModel) ToDomain() *domain.Listing {
	return &domain.Listing{
		ID:              m.ID,
		Source:          m.Source,
		ExternalID:      m.ExternalID,
		Title:           m.Title,
		Description:     m.Description,
		LongDescription: m.LongDescription,
		Tags:            []string(m.Tags),
		Category:        m.Category,
		Location:        m.Location,
		Price:           m.Price,
		PriceType:       m.PriceType,
		AgeMin:          m.AgeMin,
		AgeMax:          m.AgeMax,
		Gender:          m.Gender,
		SafetyBadges:    []string(m.SafetyBadges),
		Images:          []string(m.Images),
		Status:          domain.ListingStatus(m.Status),
		AdminNote:       m.AdminNote,
		Featured:        m.Featured,
		Verified:        m.Verified,
		PostedBy:        m.PostedBy,
		PostedByName:    m.PostedByName,
		PostedByEmail:   m.PostedByEmail,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// listingFromDomain creates a ListingModel from domain.Listing.
func listingFromDomain(l *domain.Listing) *ListingModel {
	return &ListingModel{
		ID:              l.ID,
		Source:          l.Source,
		ExternalID:      l.ExternalID,
		Title:           l.Title,
		Description:     l.Description,
		LongDescription: l.LongDescription,
		Tags:            pq.StringArray(l.Tags),
		Category:        l.Category,
		Location:        l.Location,
		Price:           l.Price,
		PriceType:       l.PriceType,
		AgeMin:          l.AgeMin,
		AgeMax:          l.AgeMax,
		Gender:          l.Gender,
		SafetyBadges:    pq.StringArray(l.SafetyBadges),
		Images:          pq.StringArray(l.Images),
		Status:          string(l.Status),
		AdminNote:       l.AdminNote,
		Featured:        l.Featured,
		Verified:        l.Verified,
		PostedBy:        l.PostedBy,
		PostedByName:    l.PostedByName,
		PostedByEmail:   l.PostedByEmail,
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}
}

// UserModel is the GORM model for the users table.
type UserModel struct {
	ID           string         `gorm:"type:varchar(64);primaryKey"`
	Name         string         `gorm:"type:varchar(200);not null"`
	Email        string         `gorm:"type:varchar(320);not null;uniqueIndex"` // stored lowercased
	Phone        string         `gorm:"type:varchar(30)"`
	PasswordHash string         `gorm:"type:varchar(100);not null"`
	Role         string         `gorm:"type:varchar(10);not null"`
	Permissions  pq.StringArray `gorm:"type:text[]"`
	CanPostAd    bool
	IsVerified   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for UserModel.
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts UserModel to domain.User.
func (m *UserModel) ToDomain() *domain.User {
	return &domain.User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		Phone:        m.Phone,
		PasswordHash: m.PasswordHash,
		Role:         domain.Role(m.Role),
		Permissions:  []string(m.Permissions),
		CanPostAd:    m.CanPostAd,
		IsVerified:   m.IsVerified,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func userFromDomain(u *domain.User) *UserModel {
	return &UserModel{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Phone:        u.Phone,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		Permissions:  pq.StringArray(u.Permissions),
		CanPostAd:    u.CanPostAd,
		IsVerified:   u.IsVerified,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// PaymentModel is the GORM model for the payments table.
type PaymentModel struct {
	ID            string            `gorm:"type:varchar(64);primaryKey"`
	UserID        string            `gorm:"type:varchar(64);not null;index"`
	ListingID     string            `gorm:"type:varchar(64)"`
	Amount        float64           `gorm:"type:numeric(12,2);not null"`
	Currency      string            `gorm:"type:varchar(3);not null"`
	Method        string            `gorm:"type:varchar(10);not null"`
	Status        string            `gorm:"type:varchar(10);not null"`
	TransactionID string            `gorm:"type:varchar(40);not null;uniqueIndex"`
	Description   string            `gorm:"type:text"`
	Details       map[string]string `gorm:"type:jsonb;serializer:json"`
	CreatedAt     time.Time         `gorm:"index"`
}

// TableName returns the table name for PaymentModel.
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts PaymentModel to domain.Payment.
func (m *PaymentModel) ToDomain() *domain.Payment {
	return &domain.Payment{
		ID:            m.ID,
		UserID:        m.UserID,
		ListingID:     m.ListingID,
		Amount:        m.Amount,
		Currency:      m.Currency,
		Method:        domain.PaymentMethod(m.Method),
		Status:        domain.PaymentStatus(m.Status),
		TransactionID: m.TransactionID,
		Description:   m.Description,
		Details:       m.Details,
		CreatedAt:     m.CreatedAt,
	}
}

func paymentFromDomain(p *domain.Payment) *PaymentModel {
	return &PaymentModel{
		ID:            p.ID,
		UserID:        p.UserID,
		ListingID:     p.ListingID,
		Amount:        p.Amount,
		Currency:      p.Currency,
		Method:        string(p.Method),
		Status:        string(p.Status),
		TransactionID: p.TransactionID,
		Description:   p.Description,
		Details:       p.Details,
		CreatedAt:     p.CreatedAt,
	}
}

// SubmissionModel is the GORM model for the submissions table.
type SubmissionModel struct {
	ID        string `gorm:"type:varchar(64);primaryKey"`
	Seq       int64  `gorm:"->;column:seq"`
	UserID    string `gorm:"type:varchar(64);not null;index"`
	ListingID string `gorm:"type:varchar(64)"`
	Name      string `gorm:"type:varchar(200)"`
	Email     string `gorm:"type:varchar(320)"`
	Phone     string `gorm:"type:varchar(30)"`
	Message   string `gorm:"type:text;not null"`
	CreatedAt time.Time
}

// TableName returns the table name for SubmissionModel.
func (SubmissionModel) TableName() string {
	return "submissions"
}

// ToDomain converts SubmissionModel to domain.Submission.
func (m *SubmissionModel) ToDomain() *domain.Submission {
	return &domain.Submission{
		ID:        m.ID,
		UserID:    m.UserID,
		ListingID: m.ListingID,
		Name:      m.Name,
		Email:     m.Email,
		Phone:     m.Phone,
		Message:   m.Message,
		CreatedAt: m.CreatedAt,
	}
}

func submissionFromDomain(s *domain.Submission) *SubmissionModel {
	return &SubmissionModel{
		ID:        s.ID,
		UserID:    s.UserID,
		ListingID: s.ListingID,
		Name:      s.Name,
		Email:     s.Email,
		Phone:     s.Phone,
		Message:   s.Message,
		CreatedAt: s.CreatedAt,
	}
}

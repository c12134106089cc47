package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"storefront-catalog-service/internal/auth"
	"storefront-catalog-service/internal/domain"
	"storefront-catalog-service/pkg/phone"
)

const revokedKeyPrefix = "revoked:"

// AdminCredentials identify the single configured administrator.
type AdminCredentials struct {
	Email    string
	AdminID  string
	Password string
}

// SignupInput holds a new account's details.
type SignupInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

// Session is an authenticated user with an access token.
type Session struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

// AccountService handles registration, login and account administration.
type AccountService struct {
	users   domain.UserRepository
	tokens  *auth.Issuer
	revoked domain.Cache
	admin   AdminCredentials
	logger  *zap.Logger
}

// NewAccountService creates a new AccountService. revoked stores logged-out token IDs.
func NewAccountService(
	users domain.UserRepository,
	tokens *auth.Issuer,
	revoked domain.Cache,
	admin AdminCredentials,
	logger *zap.Logger,
) *AccountService {
	return &AccountService{
		users:   users,
		tokens:  tokens,
		revoked: revoked,
		admin:   admin,
		logger:  logger,
	}
}

// Signup registers a regular user and logs them in.
// New accounts cannot post listings until an admin grants it.
func (s *AccountService) Signup(ctx context.Context, in SignupInput) (*Session, error) {
	const op = "account.Signup"

	email := normalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	if name == "" || email == "" || in.Password == "" {
		return nil, domain.InvalidArgument("name, email and password are required").WithOp(op)
	}
	if strings.EqualFold(email, s.admin.Email) {
		return nil, domain.Conflict("email already registered").WithOp(op)
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("looking up email: %w", err)
	}
	if existing != nil {
		return nil, domain.Conflict("email already registered").WithOp(op)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		Phone:        phone.NormalizeE164(in.Phone),
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		Permissions:  domain.DefaultUserPermissions(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if domain.IsKind(err, domain.KindConflict) {
			return nil, err
		}
		s.logger.Error("create user failed", zap.Error(err))
		return nil, fmt.Errorf("creating user: %w", err)
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID))

	return s.newSession(user)
}

// Login authenticates a regular user by email and password.
func (s *AccountService) Login(ctx context.Context, email, password string) (*Session, error) {
	const op = "account.Login"
	invalid := domain.Unauthorized("invalid email or password").WithOp(op)

	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("looking up email: %w", err)
	}
	if user == nil {
		return nil, invalid
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("login failed", zap.String("user_id", user.ID))
		return nil, invalid
	}

	return s.newSession(user)
}

// AdminLogin authenticates the configured administrator.
func (s *AccountService) AdminLogin(_ context.Context, email, password, adminID string) (*Session, error) {
	ok := constantTimeEqual(normalizeEmail(email), normalizeEmail(s.admin.Email))
	ok = constantTimeEqual(password, s.admin.Password) && ok
	ok = constantTimeEqual(strings.TrimSpace(adminID), s.admin.AdminID) && ok
	if !ok || s.admin.Password == "" {
		s.logger.Warn("admin login failed")
		return nil, domain.Unauthorized("invalid admin credentials").WithOp("account.AdminLogin")
	}

	s.logger.Info("admin logged in")

	return s.newSession(s.adminUser())
}

// Logout revokes the token until it would have expired anyway.
func (s *AccountService) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return domain.Unauthorized("invalid token").WithOp("account.Logout")
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	if err := s.revoked.Set(ctx, revokedKeyPrefix+claims.ID, []byte(claims.Subject), ttl); err != nil {
		s.logger.Error("revoking token failed", zap.Error(err))
		return fmt.Errorf("revoking token: %w", err)
	}

	s.logger.Info("user logged out", zap.String("user_id", claims.Subject))
	return nil
}

// Authenticate resolves the user behind a token. Revoked tokens and deleted users are rejected.
func (s *AccountService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	const op = "account.Authenticate"

	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, domain.Unauthorized("invalid or expired token").WithOp(op)
	}

	revoked, err := s.revoked.Get(ctx, revokedKeyPrefix+claims.ID)
	if err != nil {
		return nil, fmt.Errorf("checking token revocation: %w", err)
	}
	if revoked != nil {
		return nil, domain.Unauthorized("token has been revoked").WithOp(op)
	}

	if claims.Role == domain.RoleAdmin && claims.Subject == domain.AdminUserID {
		return s.adminUser(), nil
	}

	user, err := s.users.GetByID(ctx, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("loading user: %w", err)
	}
	if user == nil {
		return nil, domain.Unauthorized("account no longer exists").WithOp(op)
	}
	return user, nil
}

// UpdatePermissions grants or removes a user's ability to post listings.
func (s *AccountService) UpdatePermissions(ctx context.Context, actor *domain.User, userID string, canPostAd bool) (*domain.User, error) {
	const op = "account.UpdatePermissions"
	if err := requireAdmin(actor, op); err != nil {
		return nil, err
	}

	user, err := s.users.SetCanPostAd(ctx, userID, canPostAd)
	if err != nil {
		return nil, fmt.Errorf("updating permissions: %w", err)
	}
	if user == nil {
		return nil, domain.NotFound("user not found").WithOp(op)
	}

	s.logger.Info("user permissions updated",
		zap.String("user_id", userID),
		zap.Bool("can_post_ad", canPostAd),
	)
	return user, nil
}

// ListUsers returns every registered user.
func (s *AccountService) ListUsers(ctx context.Context, actor *domain.User) ([]*domain.User, error) {
	if err := requireAdmin(actor, "account.ListUsers"); err != nil {
		return nil, err
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

func (s *AccountService) newSession(user *domain.User) (*Session, error) {
	token, claims, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &Session{User: user, Token: token, ExpiresAt: claims.ExpiresAt.Time}, nil
}

func (s *AccountService) adminUser() *domain.User {
	return &domain.User{
		ID:          domain.AdminUserID,
		Name:        "Administrator",
		Email:       s.admin.Email,
		Role:        domain.RoleAdmin,
		AdminID:     s.admin.AdminID,
		Permissions: domain.AdminPermissions(),
		CanPostAd:   true,
		IsVerified:  true,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func constantTimeEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storefront-catalog-service/internal/auth"
	"storefront-catalog-service/internal/domain"
	"storefront-catalog-service/internal/infra/memory"
)

var testAdmin = AdminCredentials{Email: "admin@storefront.test", AdminID: "ADMIN001", Password: "admin-pass"}

type fixture struct {
	store    *memory.Store
	cache    *memory.Cache
	accounts *AccountService
	listings *ListingService
	catalog  *CatalogService
	payments *PaymentService
	subs     *SubmissionService
	admin    *AdminService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	cache := memory.NewCache()
	t.Cleanup(cache.Close)
	logger := zap.NewNop()
	issuer := auth.NewIssuer("test-secret", "storefront-test", time.Hour)

	return &fixture{
		store:    store,
		cache:    cache,
		accounts: NewAccountService(store.Users(), issuer, cache, testAdmin, logger),
		listings: NewListingService(store.Listings(), logger),
		catalog:  NewCatalogService(store.Listings(), logger),
		payments: NewPaymentService(store.Payments(), logger),
		subs:     NewSubmissionService(store.Submissions(), logger),
		admin:    NewAdminService(store.Users(), store.Listings(), store.Payments()),
	}
}

func (f *fixture) signup(t *testing.T, email string) *domain.User {
	t.Helper()
	session, err := f.accounts.Signup(context.Background(), SignupInput{Name: "Test User", Email: email, Password: "secret123"})
	require.NoError(t, err)
	return session.User
}

// poster returns a user allowed to post listings.
func (f *fixture) poster(t *testing.T, email string) *domain.User {
	t.Helper()
	user := f.signup(t, email)
	updated, err := f.accounts.UpdatePermissions(context.Background(), f.adminUser(t), user.ID, true)
	require.NoError(t, err)
	return updated
}

func (f *fixture) adminUser(t *testing.T) *domain.User {
	t.Helper()
	session, err := f.accounts.AdminLogin(context.Background(), testAdmin.Email, testAdmin.Password, testAdmin.AdminID)
	require.NoError(t, err)
	return session.User
}

func validListingInput() ListingInput {
	return ListingInput{
		Title:       "Deep Tissue Massage",
		Description: "Targeted pressure for knots",
		Category:    "Massage",
		Location:    "Mumbai",
		Price:       60,
		Gender:      "Both",
	}
}

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-catalog-service/internal/domain"
)

func TestListingService_Submit_RequiresPermission(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.listings.Submit(ctx, nil, validListingInput())
	assert.True(t, domain.IsKind(err, domain.KindUnauthorized))

	user := f.signup(t, "new@example.com")
	_, err = f.listings.Submit(ctx, user, validListingInput())
	assert.True(t, domain.IsKind(err, domain.KindForbidden))
}

func TestListingService_Submit_PendingForUsers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	user := f.poster(t, "poster@example.com")

	listing, err := f.listings.Submit(ctx, user, validListingInput())
	require.NoError(t, err)

	assert.Equal(t, domain.ListingStatusPending, listing.Status)
	assert.Equal(t, domain.SourceUser, listing.Source)
	assert.Equal(t, user.ID, listing.PostedBy)
	assert.Equal(t, "both", listing.Gender)
	assert.False(t, listing.Verified)

	// pending listings stay out of the public catalog
	result, err := f.catalog.Browse(ctx, domain.QuerySpec{PageSize: 20})
	require.NoError(t, err)
	assert.Zero(t, result.TotalCount)

	mine, err := f.listings.PostsBy(ctx, user)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, listing.ID, mine[0].ID)
}

func TestListingService_Submit_ApprovedForAdmin(t *testing.T) {
	f := newFixture(t)

	listing, err := f.listings.Submit(context.Background(), f.adminUser(t), validListingInput())
	require.NoError(t, err)
	assert.Equal(t, domain.ListingStatusApproved, listing.Status)
	assert.True(t, listing.Verified)
}

func TestListingService_Submit_Validation(t *testing.T) {
	f := newFixture(t)
	user := f.poster(t, "poster@example.com")

	tests := []struct {
		name   string
		mutate func(*ListingInput)
	}{
		{name: "blank title", mutate: func(in *ListingInput) { in.Title = "  " }},
		{name: "missing category", mutate: func(in *ListingInput) { in.Category = "" }},
		{name: "missing location", mutate: func(in *ListingInput) { in.Location = "" }},
		{name: "negative price", mutate: func(in *ListingInput) { in.Price = -1 }},
		{name: "age below 18", mutate: func(in *ListingInput) { in.AgeMin = domain.IntPtr(17) }},
		{name: "age above 99", mutate: func(in *ListingInput) { in.AgeMax = domain.IntPtr(100) }},
		{name: "min above max", mutate: func(in *ListingInput) { in.AgeMin, in.AgeMax = domain.IntPtr(50), domain.IntPtr(30) }},
		{name: "min above default max", mutate: func(in *ListingInput) { in.AgeMin = domain.IntPtr(70) }},
		{name: "unknown gender", mutate: func(in *ListingInput) { in.Gender = "other" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validListingInput()
			tt.mutate(&in)

			_, err := f.listings.Submit(context.Background(), user, in)
			assert.True(t, domain.IsKind(err, domain.KindInvalidArgument), "got %v", err)
		})
	}
}

func TestListingService_Moderate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	user := f.poster(t, "poster@example.com")
	admin := f.adminUser(t)

	listing, err := f.listings.Submit(ctx, user, validListingInput())
	require.NoError(t, err)

	_, err = f.listings.Moderate(ctx, user, listing.ID, domain.ListingStatusApproved, "")
	assert.True(t, domain.IsKind(err, domain.KindForbidden))

	_, err = f.listings.Moderate(ctx, admin, listing.ID, domain.ListingStatusPending, "")
	assert.True(t, domain.IsKind(err, domain.KindInvalidArgument))

	_, err = f.listings.Moderate(ctx, admin, "missing", domain.ListingStatusApproved, "")
	assert.True(t, domain.IsKind(err, domain.KindNotFound))

	approved, err := f.listings.Moderate(ctx, admin, listing.ID, domain.ListingStatusApproved, " looks good ")
	require.NoError(t, err)
	assert.Equal(t, domain.ListingStatusApproved, approved.Status)
	assert.Equal(t, "looks good", approved.AdminNote)

	got, err := f.catalog.Get(ctx, listing.ID)
	require.NoError(t, err)
	assert.Equal(t, listing.ID, got.ID)
}

func TestListingService_AdminQuery(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	user := f.poster(t, "poster@example.com")
	admin := f.adminUser(t)

	first, err := f.listings.Submit(ctx, user, validListingInput())
	require.NoError(t, err)
	second := validListingInput()
	second.Title = "Hot Stone"
	_, err = f.listings.Submit(ctx, admin, second)
	require.NoError(t, err)

	all, err := f.listings.AdminQuery(ctx, admin, "", domain.QuerySpec{PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, 2, all.TotalCount)

	pending, err := f.listings.AdminQuery(ctx, admin, domain.ListingStatusPending, domain.QuerySpec{PageSize: 20})
	require.NoError(t, err)
	require.Equal(t, 1, pending.TotalCount)
	assert.Equal(t, first.ID, pending.Items[0].ID)

	_, err = f.listings.AdminQuery(ctx, admin, "archived", domain.QuerySpec{PageSize: 20})
	assert.True(t, domain.IsKind(err, domain.KindInvalidArgument))

	_, err = f.listings.AdminQuery(ctx, user, "", domain.QuerySpec{PageSize: 20})
	assert.True(t, domain.IsKind(err, domain.KindForbidden))
}

package reviews

import (
	"context"
	"testing"

	"roomstay-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupReviews(t *testing.T) (*Service, *gorm.DB, *domain.Listing, uuid.UUID) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Listing{}, &domain.Review{}))

	ownerID := uuid.New()
	listing := &domain.Listing{
		OwnerID:  &ownerID,
		Title:    "Studio with balcony",
		Location: "Makati",
		Price:    7000,
		Status:   domain.ListingStatusApproved,
	}
	require.NoError(t, db.Create(listing).Error)
	return &Service{DB: db}, db, listing, ownerID
}

func reloadListing(t *testing.T, db *gorm.DB, id uuid.UUID) *domain.Listing {
	var l domain.Listing
	require.NoError(t, db.Where("listing_id = ?", id).First(&l).Error)
	return &l
}

func TestUpsert_AggregateMath(t *testing.T) {
	svc, db, listing, _ := setupReviews(t)
	ctx := context.Background()

	users := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	for i, rating := range []int{5, 3, 4} {
		_, err := svc.Upsert(ctx, UpsertInput{ListingID: listing.ListingID, UserID: users[i], Rating: rating})
		require.NoError(t, err)
	}

	l := reloadListing(t, db, listing.ListingID)
	assert.Equal(t, 3, l.ReviewCount)
	assert.InDelta(t, 4.00, l.Rating, 0.001)
}

func TestUpsert_SecondReviewReplacesFirst(t *testing.T) {
	svc, db, listing, _ := setupReviews(t)
	ctx := context.Background()
	userID := uuid.New()

	first, err := svc.Upsert(ctx, UpsertInput{ListingID: listing.ListingID, UserID: userID, Rating: 2, Comment: "noisy"})
	require.NoError(t, err)
	second, err := svc.Upsert(ctx, UpsertInput{ListingID: listing.ListingID, UserID: userID, Rating: 5, Comment: "much better now"})
	require.NoError(t, err)
	assert.Equal(t, first.ReviewID, second.ReviewID)

	var count int64
	require.NoError(t, db.Model(&domain.Review{}).Where("listing_id = ?", listing.ListingID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	l := reloadListing(t, db, listing.ListingID)
	assert.Equal(t, 1, l.ReviewCount)
	assert.InDelta(t, 5.00, l.Rating, 0.001)
}

func TestUpsert_OwnerCannotReviewOwnListing(t *testing.T) {
	svc, _, listing, ownerID := setupReviews(t)
	_, err := svc.Upsert(context.Background(), UpsertInput{ListingID: listing.ListingID, UserID: ownerID, Rating: 5})
	assert.Equal(t, ErrOwnListingReview, err)
}

func TestUpsert_RatingBounds(t *testing.T) {
	svc, _, listing, _ := setupReviews(t)
	ctx := context.Background()
	for _, rating := range []int{0, 6, -1} {
		_, err := svc.Upsert(ctx, UpsertInput{ListingID: listing.ListingID, UserID: uuid.New(), Rating: rating})
		assert.Equal(t, ErrInvalidRating, err)
	}
}

func TestUpsert_ListingNotFound(t *testing.T) {
	svc, _, _, _ := setupReviews(t)
	_, err := svc.Upsert(context.Background(), UpsertInput{ListingID: uuid.New(), UserID: uuid.New(), Rating: 4})
	assert.Equal(t, ErrListingNotFound, err)
}

func TestDelete_RecomputesAggregate(t *testing.T) {
	svc, db, listing, _ := setupReviews(t)
	ctx := context.Background()

	author := uuid.New()
	mid, err := svc.Upsert(ctx, UpsertInput{ListingID: listing.ListingID, UserID: author, Rating: 3})
	require.NoError(t, err)
	_, err = svc.Upsert(ctx, UpsertInput{ListingID: listing.ListingID, UserID: uuid.New(), Rating: 5})
	require.NoError(t, err)
	_, err = svc.Upsert(ctx, UpsertInput{ListingID: listing.ListingID, UserID: uuid.New(), Rating: 4})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, listing.ListingID, mid.ReviewID, author, false))

	l := reloadListing(t, db, listing.ListingID)
	assert.Equal(t, 2, l.ReviewCount)
	assert.InDelta(t, 4.50, l.Rating, 0.001)
}

func TestDelete_ZeroReviewsResetsAggregate(t *testing.T) {
	svc, db, listing, _ := setupReviews(t)
	ctx := context.Background()

	author := uuid.New()
	rev, err := svc.Upsert(ctx, UpsertInput{ListingID: listing.ListingID, UserID: author, Rating: 4})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, listing.ListingID, rev.ReviewID, author, false))

	l := reloadListing(t, db, listing.ListingID)
	assert.Equal(t, 0, l.ReviewCount)
	assert.InDelta(t, 0.0, l.Rating, 0.001)
}

func TestDelete_OnlyAuthorOrAdmin(t *testing.T) {
	svc, _, listing, _ := setupReviews(t)
	ctx := context.Background()

	author := uuid.New()
	rev, err := svc.Upsert(ctx, UpsertInput{ListingID: listing.ListingID, UserID: author, Rating: 4})
	require.NoError(t, err)

	err = svc.Delete(ctx, listing.ListingID, rev.ReviewID, uuid.New(), false)
	assert.Equal(t, ErrNotReviewAuthor, err)

	// Admin override
	require.NoError(t, svc.Delete(ctx, listing.ListingID, rev.ReviewID, uuid.New(), true))
}

func TestDelete_ReviewNotFound(t *testing.T) {
	svc, _, listing, _ := setupReviews(t)
	err := svc.Delete(context.Background(), listing.ListingID, uuid.New(), uuid.New(), true)
	assert.Equal(t, ErrReviewNotFound, err)
}

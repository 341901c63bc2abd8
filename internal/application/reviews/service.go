package reviews

import (
	"context"
	"math"

	"roomstay-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service maintains reviews and the denormalized rating/review_count aggregate
// on the listing. It is the sole writer of those two fields. The aggregate is
// recomputed by a full re-scan after every mutation; review volume per
// listing is small, so correctness wins over an incremental running average.
type Service struct {
	DB *gorm.DB
}

type UpsertInput struct {
	ListingID uuid.UUID
	UserID    uuid.UUID
	Rating    int
	Comment   string
}

// Upsert creates the caller's review for a listing or, if one already exists,
// updates it in place. At most one review per (listing, user): the composite
// unique index backs this, a concurrent duplicate insert is rejected by the
// store rather than producing a second row.
func (s *Service) Upsert(ctx context.Context, in UpsertInput) (*domain.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, ErrInvalidRating
	}

	var listing domain.Listing
	if err := s.DB.WithContext(ctx).Where("listing_id = ?", in.ListingID).First(&listing).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	if listing.OwnerID != nil && *listing.OwnerID == in.UserID {
		return nil, ErrOwnListingReview
	}

	var review domain.Review
	err := s.DB.WithContext(ctx).
		Where("listing_id = ? AND user_id = ?", in.ListingID, in.UserID).
		First(&review).Error
	switch {
	case err == gorm.ErrRecordNotFound:
		review = domain.Review{
			ListingID: in.ListingID,
			UserID:    in.UserID,
			Rating:    in.Rating,
			Comment:   in.Comment,
		}
		if err := s.DB.WithContext(ctx).Create(&review).Error; err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		if err := s.DB.WithContext(ctx).Model(&review).Updates(map[string]interface{}{
			"rating":  in.Rating,
			"comment": in.Comment,
		}).Error; err != nil {
			return nil, err
		}
		review.Rating = in.Rating
		review.Comment = in.Comment
	}

	if err := s.recomputeAggregate(ctx, in.ListingID); err != nil {
		return nil, err
	}
	return &review, nil
}

// Delete removes a review. The author may delete their own; admins may delete
// any.
func (s *Service) Delete(ctx context.Context, listingID, reviewID, actingUserID uuid.UUID, isAdmin bool) error {
	var review domain.Review
	if err := s.DB.WithContext(ctx).
		Where("review_id = ? AND listing_id = ?", reviewID, listingID).
		First(&review).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrReviewNotFound
		}
		return err
	}
	if !isAdmin && review.UserID != actingUserID {
		return ErrNotReviewAuthor
	}
	if err := s.DB.WithContext(ctx).Delete(&review).Error; err != nil {
		return err
	}
	return s.recomputeAggregate(ctx, listingID)
}

// ListForListing returns a listing's reviews, newest first.
func (s *Service) ListForListing(ctx context.Context, listingID uuid.UUID) ([]domain.Review, error) {
	var out []domain.Review
	if err := s.DB.WithContext(ctx).
		Where("listing_id = ?", listingID).
		Order(`"createdAt" DESC`).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// recomputeAggregate re-scans the listing's reviews and persists count and
// rounded average onto the listing. Runs as its own transaction immediately
// after the review write; a concurrent read may briefly see the old aggregate,
// which is acceptable for a display value.
func (s *Service) recomputeAggregate(ctx context.Context, listingID uuid.UUID) error {
	var agg struct {
		Cnt int64
		Avg float64
	}
	if err := s.DB.WithContext(ctx).Model(&domain.Review{}).
		Select("COUNT(*) AS cnt, COALESCE(AVG(rating), 0) AS avg").
		Where("listing_id = ?", listingID).
		Scan(&agg).Error; err != nil {
		return err
	}

	rating := 0.0
	if agg.Cnt > 0 {
		rating = math.Round(agg.Avg*100) / 100
	}
	return s.DB.WithContext(ctx).Model(&domain.Listing{}).
		Where("listing_id = ?", listingID).
		Updates(map[string]interface{}{
			"rating":       rating,
			"review_count": agg.Cnt,
		}).Error
}

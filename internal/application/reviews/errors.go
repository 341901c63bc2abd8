package reviews

import "errors"

var (
	ErrListingNotFound  = errors.New("Listing not found")
	ErrReviewNotFound   = errors.New("Review not found")
	ErrOwnListingReview = errors.New("Owners cannot review their own listing")
	ErrNotReviewAuthor  = errors.New("Only the review author can delete this review")
	ErrInvalidRating    = errors.New("Rating must be between 1 and 5")
)

package listings

import "errors"

var (
	ErrListingNotFound = errors.New("Listing not found")
	ErrNotListingOwner = errors.New("Unauthorized listing access")
	ErrInvalidPrice    = errors.New("Price must be greater than zero")
	ErrMissingTitle    = errors.New("Title is required")
	ErrMissingLocation = errors.New("Location is required")
)

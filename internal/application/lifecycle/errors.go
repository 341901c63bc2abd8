package lifecycle

import "errors"

var (
	ErrListingNotFound = errors.New("Listing not found")
	ErrNotListingOwner = errors.New("Only the listing owner can renew this listing")
)

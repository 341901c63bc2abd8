package inquiries

import "errors"

var (
	ErrListingNotFound = errors.New("Listing not found")
	ErrMissingMessage  = errors.New("Message is required")
)

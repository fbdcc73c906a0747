package reviewcache

import "github.com/HafizAhmed223/backend/internal/extractor"

// Store defines the port interface for extracted review caching.
// This interface follows the port-adapter pattern, allowing different
// cache implementations to be swapped without changing retrieval logic.
//
// Keys are product identifiers. Values are the complete review lists
// extracted from a product page, empty lists included: a product whose
// page yielded no reviews is still a valid, cacheable answer.
type Store interface {
	// Get retrieves the cached review list for a product identifier.
	// Returns the cached reviews and true if a live entry exists,
	// or nil and false if the entry is missing or has expired.
	// This method is read-only and should not modify cache state.
	Get(productID string) ([]extractor.Review, bool)

	// Set stores a review list under a product identifier.
	// If an entry already exists it is replaced atomically and its
	// lifetime starts over from the moment of the write.
	Set(productID string, reviews []extractor.Review)
}

package domain

import "errors"

var (
	// ErrProductNotFound is returned when a product id does not exist in the catalog
	ErrProductNotFound = errors.New("product not found")

	// ErrUpstreamFetch is returned when a candidate fetch from the catalog store fails
	ErrUpstreamFetch = errors.New("candidate fetch failed")

	// ErrInvalidProduct is returned when an ingested product fails schema validation
	ErrInvalidProduct = errors.New("invalid product")

	// ErrRateLimited is returned when the per-IP rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)

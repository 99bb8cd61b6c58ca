package domain

import (
	"context"
	"time"
)

// ProductRepository defines the catalog store contract the search core
// depends on. The store owns ordering: results come back in its natural
// order.
type ProductRepository interface {
	// FindByTextMatch returns all products where the query appears as a
	// case-insensitive substring in the name, description, or any keyword.
	FindByTextMatch(ctx context.Context, query string) ([]Product, error)

	// FindCandidates returns a bounded window of products for CPU-bound
	// scoring. A limit <= 0 means no bound.
	FindCandidates(ctx context.Context, filter CandidateFilter, limit int) ([]Product, error)

	// FindByID returns the product with the given id, or ErrProductNotFound.
	FindByID(ctx context.Context, id string) (*Product, error)

	// FindByCategory returns all products in a category, excluding excludeID.
	FindByCategory(ctx context.Context, categoryID, excludeID string) ([]Product, error)
}

// CatalogWriter ingests products into the catalog store.
type CatalogWriter interface {
	// Add validates and stores a product, minting an id when absent.
	Add(ctx context.Context, product Product) (Product, error)
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

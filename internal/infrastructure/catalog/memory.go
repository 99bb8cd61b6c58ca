package catalog

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/shopgrid/backend/internal/domain"
)

// MemoryCatalog is a thread-safe in-memory product store. Products keep
// insertion order, which is the order search results preserve for the
// exact tier.
type MemoryCatalog struct {
	mutex    sync.RWMutex
	products []domain.Product
	byID     map[string]int
}

// NewMemoryCatalog creates an empty in-memory catalog
func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{
		byID: make(map[string]int),
	}
}

// Add validates and stores a product. A product without an id gets one
// minted; an existing id is overwritten in place.
func (c *MemoryCatalog) Add(ctx context.Context, product domain.Product) (domain.Product, error) {
	if err := product.Validate(); err != nil {
		return domain.Product{}, err
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if product.ID == "" {
		product.ID = uuid.NewString()
	}

	if idx, exists := c.byID[product.ID]; exists {
		c.products[idx] = product
		return product, nil
	}

	c.byID[product.ID] = len(c.products)
	c.products = append(c.products, product)
	return product, nil
}

// FindByTextMatch returns all products where the query appears as a
// case-insensitive substring in the name, description, or any keyword.
func (c *MemoryCatalog) FindByTextMatch(ctx context.Context, query string) ([]domain.Product, error) {
	needle := strings.ToLower(query)

	c.mutex.RLock()
	defer c.mutex.RUnlock()

	matches := make([]domain.Product, 0)
	for _, p := range c.products {
		if matchesText(&p, needle) {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

// FindCandidates returns up to limit products in natural order. A limit
// <= 0 means no bound.
func (c *MemoryCatalog) FindCandidates(ctx context.Context, filter domain.CandidateFilter, limit int) ([]domain.Product, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	candidates := make([]domain.Product, 0)
	for _, p := range c.products {
		if filter.CategoryID != "" && p.CategoryID != filter.CategoryID {
			continue
		}
		candidates = append(candidates, p)
		if limit > 0 && len(candidates) >= limit {
			break
		}
	}
	return candidates, nil
}

// FindByID returns the product with the given id, or ErrProductNotFound.
func (c *MemoryCatalog) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	idx, exists := c.byID[id]
	if !exists {
		return nil, domain.ErrProductNotFound
	}

	product := c.products[idx]
	return &product, nil
}

// FindByCategory returns all products in a category, excluding excludeID.
func (c *MemoryCatalog) FindByCategory(ctx context.Context, categoryID, excludeID string) ([]domain.Product, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	matches := make([]domain.Product, 0)
	for _, p := range c.products {
		if p.CategoryID != categoryID || p.ID == excludeID {
			continue
		}
		matches = append(matches, p)
	}
	return matches, nil
}

// Len returns the number of products in the catalog
func (c *MemoryCatalog) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.products)
}

// matchesText checks the lowercased needle against a product's searchable
// text fields
func matchesText(p *domain.Product, needle string) bool {
	if strings.Contains(strings.ToLower(p.Name), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), needle) {
		return true
	}
	for _, kw := range p.Keywords {
		if strings.Contains(strings.ToLower(kw), needle) {
			return true
		}
	}
	return false
}

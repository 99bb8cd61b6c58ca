package domain

import (
	"fmt"
	"strings"
)

// Validation limits for catalog ingest, matching the storefront product schema
const (
	NameMinLen        = 3
	NameMaxLen        = 100
	DescriptionMinLen = 10
	DescriptionMaxLen = 2000
	PriceMax          = 1_000_000
)

// Product represents a catalog product as seen by the search core.
// The catalog store owns these records; the search core only reads them.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords,omitempty"`
	Price       float64  `json:"price"`
	CategoryID  string   `json:"categoryId"`
	Quantity    int      `json:"quantity"`
}

// ScoredProduct is a single search result. Fuzzy-tier hits carry
// IsFuzzyMatch and FuzzyScore; exact-tier hits carry neither.
type ScoredProduct struct {
	Product      Product `json:"product"`
	IsFuzzyMatch bool    `json:"isFuzzyMatch,omitempty"`
	FuzzyScore   float64 `json:"fuzzyScore,omitempty"`
}

// RelatedProduct is a related-product result with its similarity score and
// the tokens shared with the source product.
type RelatedProduct struct {
	Product         Product  `json:"product"`
	SimilarityScore float64  `json:"similarityScore"`
	CommonKeywords  []string `json:"commonKeywords"`
}

// CandidateFilter narrows a bounded candidate fetch. The zero value means
// the whole catalog.
type CandidateFilter struct {
	CategoryID string
}

// Validate checks the product against the catalog schema limits.
func (p *Product) Validate() error {
	name := strings.TrimSpace(p.Name)
	switch {
	case name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidProduct)
	case len(name) < NameMinLen:
		return fmt.Errorf("%w: name must be at least %d characters", ErrInvalidProduct, NameMinLen)
	case len(name) > NameMaxLen:
		return fmt.Errorf("%w: name must not exceed %d characters", ErrInvalidProduct, NameMaxLen)
	}

	desc := strings.TrimSpace(p.Description)
	switch {
	case desc == "":
		return fmt.Errorf("%w: description is required", ErrInvalidProduct)
	case len(desc) < DescriptionMinLen:
		return fmt.Errorf("%w: description must be at least %d characters", ErrInvalidProduct, DescriptionMinLen)
	case len(desc) > DescriptionMaxLen:
		return fmt.Errorf("%w: description must not exceed %d characters", ErrInvalidProduct, DescriptionMaxLen)
	}

	if p.Price <= 0 {
		return fmt.Errorf("%w: price must be greater than 0", ErrInvalidProduct)
	}
	if p.Price > PriceMax {
		return fmt.Errorf("%w: price must not exceed %d", ErrInvalidProduct, PriceMax)
	}
	if p.Quantity < 0 {
		return fmt.Errorf("%w: quantity cannot be negative", ErrInvalidProduct)
	}
	if p.CategoryID == "" {
		return fmt.Errorf("%w: category is required", ErrInvalidProduct)
	}

	return nil
}

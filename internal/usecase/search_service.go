package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/shopgrid/backend/internal/domain"
)

// Default search pipeline settings
const (
	defaultFuzzyThreshold  = 70 // Minimum 0-100 score for a fuzzy hit
	defaultCandidateCap    = 50 // Bounded window for the fuzzy tier
	defaultExactMatchFloor = 10 // Exact matches at which fuzzy escalation is skipped
)

// SearchConfig holds configuration for the search service
type SearchConfig struct {
	FuzzyEnabled       bool
	FuzzyThreshold     int
	CandidateCap       int
	ExactMatchFloor    int
	EnableDebugLogging bool
}

// SearchService runs the tiered search pipeline: an exact substring tier
// against the catalog store, then a bounded fuzzy tier when the exact tier
// comes up short.
type SearchService struct {
	repo               domain.ProductRepository
	fuzzyEnabled       bool
	fuzzyThreshold     int
	candidateCap       int
	exactMatchFloor    int
	enableDebugLogging bool
}

// NewSearchService creates a new search service with the given configuration
func NewSearchService(repo domain.ProductRepository, config SearchConfig) *SearchService {
	threshold := config.FuzzyThreshold
	if threshold <= 0 {
		threshold = defaultFuzzyThreshold
	}

	candidateCap := config.CandidateCap
	if candidateCap <= 0 {
		candidateCap = defaultCandidateCap
	}

	floor := config.ExactMatchFloor
	if floor <= 0 {
		floor = defaultExactMatchFloor
	}

	return &SearchService{
		repo:               repo,
		fuzzyEnabled:       config.FuzzyEnabled,
		fuzzyThreshold:     threshold,
		candidateCap:       candidateCap,
		exactMatchFloor:    floor,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// Search runs the tiered pipeline for a keyword.
//
// Tier 1 asks the store for case-insensitive substring matches on name,
// description, or any keyword. If fuzzy matching is disabled, or the exact
// tier already returned enough results, those are returned as-is. Otherwise
// a bounded candidate window is fetched and scored by the fuzzy engine;
// fuzzy hits already present in the exact tier are dropped, the survivors
// are flagged and appended after the exact matches.
//
// The exact tier keeps the store's natural order; fuzzy hits are ordered by
// score descending. No product appears twice.
func (s *SearchService) Search(ctx context.Context, keyword string) ([]domain.ScoredProduct, error) {
	if strings.TrimSpace(keyword) == "" {
		return []domain.ScoredProduct{}, nil
	}

	exact, err := s.repo.FindByTextMatch(ctx, keyword)
	if err != nil {
		return nil, fmt.Errorf("%w: exact tier: %v", domain.ErrUpstreamFetch, err)
	}

	results := make([]domain.ScoredProduct, 0, len(exact))
	for _, p := range exact {
		results = append(results, domain.ScoredProduct{Product: p})
	}

	if !s.fuzzyEnabled || len(exact) >= s.exactMatchFloor {
		if s.enableDebugLogging {
			log.Printf("[SEARCH] %q: %d exact matches, fuzzy tier skipped (enabled=%v)",
				keyword, len(exact), s.fuzzyEnabled)
		}
		return results, nil
	}

	candidates, err := s.repo.FindCandidates(ctx, domain.CandidateFilter{}, s.candidateCap)
	if err != nil {
		return nil, fmt.Errorf("%w: fuzzy tier: %v", domain.ErrUpstreamFetch, err)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	fuzzyMatches := FuzzyMatchProducts(keyword, candidates, s.fuzzyThreshold)

	// Dedup by id so a product surfaced by the exact tier never reappears
	exactIDs := make(map[string]struct{}, len(exact))
	for _, p := range exact {
		exactIDs[p.ID] = struct{}{}
	}

	appended := 0
	for _, m := range fuzzyMatches {
		if _, dup := exactIDs[m.Product.ID]; dup {
			continue
		}
		results = append(results, domain.ScoredProduct{
			Product:      m.Product,
			IsFuzzyMatch: true,
			FuzzyScore:   m.Score,
		})
		appended++
	}

	if s.enableDebugLogging {
		log.Printf("[SEARCH] %q: %d exact + %d fuzzy (scored %d candidates, threshold %d)",
			keyword, len(exact), appended, len(candidates), s.fuzzyThreshold)
	}

	return results, nil
}

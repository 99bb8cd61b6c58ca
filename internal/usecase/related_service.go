package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/shopgrid/backend/internal/domain"
)

// DefaultRelatedLimit is the number of related products returned when the
// caller does not ask for a specific count.
const DefaultRelatedLimit = 6

// RelatedService ranks products from the same category by token-set overlap
// with a source product.
type RelatedService struct {
	repo               domain.ProductRepository
	enableDebugLogging bool
}

// NewRelatedService creates a new related-product service
func NewRelatedService(repo domain.ProductRepository, enableDebugLogging bool) *RelatedService {
	return &RelatedService{
		repo:               repo,
		enableDebugLogging: enableDebugLogging,
	}
}

// Related returns up to limit products from the same category as the source
// product, ranked by Jaccard similarity of their comparison bases. The basis
// is the product's keyword set when non-empty, otherwise the tokens of its
// name and description. Candidates sharing no tokens with the source are
// excluded. A negative limit is clamped to 0.
//
// A missing source product returns domain.ErrProductNotFound; a found source
// with no similar candidates returns an empty, non-error result.
func (s *RelatedService) Related(ctx context.Context, productID, categoryID string, limit int) ([]domain.RelatedProduct, error) {
	current, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: source product: %v", domain.ErrUpstreamFetch, err)
	}

	candidates, err := s.repo.FindByCategory(ctx, categoryID, productID)
	if err != nil {
		return nil, fmt.Errorf("%w: candidates: %v", domain.ErrUpstreamFetch, err)
	}

	if len(candidates) == 0 {
		return []domain.RelatedProduct{}, nil
	}

	base := comparisonBasis(current)

	scored := make([]domain.RelatedProduct, 0, len(candidates))
	for i := range candidates {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		result := JaccardDetailed(base, comparisonBasis(&candidates[i]))
		if result.Score == 0 {
			continue // no shared tokens at all, not a related product
		}

		scored = append(scored, domain.RelatedProduct{
			Product:         candidates[i],
			SimilarityScore: result.Score,
			CommonKeywords:  result.Intersection,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].SimilarityScore > scored[j].SimilarityScore
	})

	if limit < 0 {
		limit = 0
	}
	if len(scored) > limit {
		scored = scored[:limit]
	}

	if s.enableDebugLogging {
		log.Printf("[RELATED] product=%s category=%s: %d candidates, %d related (limit %d)",
			productID, categoryID, len(candidates), len(scored), limit)
	}

	return scored, nil
}

// comparisonBasis picks the token source for similarity: curated keywords
// when present, otherwise the product's name and description text.
func comparisonBasis(p *domain.Product) []string {
	if len(p.Keywords) > 0 {
		return p.Keywords
	}
	return Tokenize(p.Name + " " + p.Description)
}

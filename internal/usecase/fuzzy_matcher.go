package usecase

import (
	"regexp"
	"sort"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/shopgrid/backend/internal/domain"
)

// Package-level compiled regex pattern for performance
var searchTermCleanupRegex = regexp.MustCompile(`[^a-z0-9\s-]`)

// Field weights for fuzzy scoring. Name matches dominate, curated keywords
// are secondary, description substring hits are noisy and not weighted up.
const (
	nameWeight        = 1.5
	keywordWeight     = 1.2
	descriptionWeight = 1.0
)

// minFuzzyQueryLen is the smallest trimmed query length eligible for fuzzy
// matching. Shorter queries are too noisy for approximate matching.
const minFuzzyQueryLen = 3

// FuzzyMatch pairs a product with its fuzzy score for one query.
type FuzzyMatch struct {
	Product domain.Product
	Score   float64
}

// NormalizeTerm lowercases and trims a search term, keeping only letters,
// digits, whitespace, and hyphens.
func NormalizeTerm(term string) string {
	lowered := strings.TrimSpace(strings.ToLower(term))
	return searchTermCleanupRegex.ReplaceAllString(lowered, "")
}

// CalculateFuzzyScore computes a weighted similarity score (0-100) between a
// search term and a product:
//   - full-string ratio against the name, weighted 1.5x
//   - best full-string ratio across keywords, weighted 1.2x
//   - partial (best-aligned substring) ratio against the description, unweighted
//
// The result is the highest weighted score, capped at 100. Taking the max
// instead of a sum avoids double-counting when a term hits multiple fields.
func CalculateFuzzyScore(term string, product *domain.Product) float64 {
	if term == "" || product == nil {
		return 0
	}

	normalized := NormalizeTerm(term)

	nameScore := fullRatio(normalized, NormalizeTerm(product.Name))
	descScore := partialRatio(normalized, NormalizeTerm(product.Description))

	maxKeywordScore := 0.0
	for _, kw := range product.Keywords {
		if score := fullRatio(normalized, NormalizeTerm(kw)); score > maxKeywordScore {
			maxKeywordScore = score
		}
	}

	weighted := nameScore * nameWeight
	if kwScore := maxKeywordScore * keywordWeight; kwScore > weighted {
		weighted = kwScore
	}
	if descScore*descriptionWeight > weighted {
		weighted = descScore * descriptionWeight
	}

	if weighted > 100 {
		weighted = 100
	}
	return weighted
}

// FuzzyMatchProducts scores every candidate against the search term and
// returns those at or above the threshold, sorted by score descending.
// Trimmed terms of 2 characters or fewer produce no matches regardless of
// threshold.
func FuzzyMatchProducts(term string, products []domain.Product, threshold int) []FuzzyMatch {
	if len(strings.TrimSpace(term)) < minFuzzyQueryLen {
		return nil
	}

	var matches []FuzzyMatch
	for i := range products {
		score := CalculateFuzzyScore(term, &products[i])
		if score >= float64(threshold) {
			matches = append(matches, FuzzyMatch{Product: products[i], Score: score})
		}
	}

	// Stable sort keeps candidate-window order for equal scores
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	return matches
}

// fullRatio is a symmetric edit-distance-based similarity on a 0-100 scale.
func fullRatio(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	return float64(fuzzy.Ratio(a, b))
}

// partialRatio scores the best-aligned substring match on a 0-100 scale.
func partialRatio(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	return float64(fuzzy.PartialRatio(a, b))
}

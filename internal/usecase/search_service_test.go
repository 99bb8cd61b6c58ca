package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/shopgrid/backend/internal/domain"
)

// stubRepo implements domain.ProductRepository with canned responses
type stubRepo struct {
	textMatches    []domain.Product
	textErr        error
	candidates     []domain.Product
	candidatesErr  error
	candidateCalls int
	lastLimit      int
}

func (s *stubRepo) FindByTextMatch(ctx context.Context, query string) ([]domain.Product, error) {
	return s.textMatches, s.textErr
}

func (s *stubRepo) FindCandidates(ctx context.Context, filter domain.CandidateFilter, limit int) ([]domain.Product, error) {
	s.candidateCalls++
	s.lastLimit = limit
	return s.candidates, s.candidatesErr
}

func (s *stubRepo) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	return nil, domain.ErrProductNotFound
}

func (s *stubRepo) FindByCategory(ctx context.Context, categoryID, excludeID string) ([]domain.Product, error) {
	return nil, nil
}

func exactProducts(n int) []domain.Product {
	products := make([]domain.Product, 0, n)
	for i := 0; i < n; i++ {
		products = append(products, domain.Product{
			ID:          string(rune('a' + i)),
			Name:        "Wireless Mouse",
			Description: "A high-quality wireless mouse",
		})
	}
	return products
}

func TestNewSearchService(t *testing.T) {
	t.Run("applies defaults for zero config", func(t *testing.T) {
		svc := NewSearchService(&stubRepo{}, SearchConfig{FuzzyEnabled: true})
		if svc.fuzzyThreshold != 70 {
			t.Errorf("fuzzyThreshold = %d, want 70", svc.fuzzyThreshold)
		}
		if svc.candidateCap != 50 {
			t.Errorf("candidateCap = %d, want 50", svc.candidateCap)
		}
		if svc.exactMatchFloor != 10 {
			t.Errorf("exactMatchFloor = %d, want 10", svc.exactMatchFloor)
		}
	})

	t.Run("keeps provided values", func(t *testing.T) {
		svc := NewSearchService(&stubRepo{}, SearchConfig{
			FuzzyEnabled:    true,
			FuzzyThreshold:  55,
			CandidateCap:    25,
			ExactMatchFloor: 5,
		})
		if svc.fuzzyThreshold != 55 || svc.candidateCap != 25 || svc.exactMatchFloor != 5 {
			t.Errorf("config not applied: threshold=%d cap=%d floor=%d",
				svc.fuzzyThreshold, svc.candidateCap, svc.exactMatchFloor)
		}
	})
}

func TestSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("blank keyword returns empty result without error", func(t *testing.T) {
		repo := &stubRepo{}
		svc := NewSearchService(repo, SearchConfig{FuzzyEnabled: true})

		results, err := svc.Search(ctx, "   ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != 0 {
			t.Errorf("results = %d, want 0", len(results))
		}
	})

	t.Run("returns exact matches unflagged when fuzzy disabled", func(t *testing.T) {
		repo := &stubRepo{
			textMatches: exactProducts(2),
			candidates:  fixtureCatalog(),
		}
		svc := NewSearchService(repo, SearchConfig{FuzzyEnabled: false})

		results, err := svc.Search(ctx, "wireless mouse")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != 2 {
			t.Fatalf("results = %d, want 2", len(results))
		}
		for _, r := range results {
			if r.IsFuzzyMatch {
				t.Errorf("exact match %q flagged as fuzzy", r.Product.ID)
			}
		}
		if repo.candidateCalls != 0 {
			t.Errorf("candidate fetches = %d, want 0 when fuzzy disabled", repo.candidateCalls)
		}
	})

	t.Run("skips fuzzy tier at the exact-match floor", func(t *testing.T) {
		// 10 exact matches plus a fuzzy-matchable 11th candidate that
		// must not appear in the results
		repo := &stubRepo{
			textMatches: exactProducts(10),
			candidates: append(exactProducts(10), domain.Product{
				ID:   "fuzzy-only",
				Name: "Wireless Mouze",
			}),
		}
		svc := NewSearchService(repo, SearchConfig{FuzzyEnabled: true})

		results, err := svc.Search(ctx, "wireless mouse")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != 10 {
			t.Errorf("results = %d, want 10", len(results))
		}
		if repo.candidateCalls != 0 {
			t.Errorf("candidate fetches = %d, want 0 at the floor", repo.candidateCalls)
		}
		for _, r := range results {
			if r.Product.ID == "fuzzy-only" {
				t.Error("fuzzy-only candidate leaked past the escalation gate")
			}
		}
	})

	t.Run("escalates to fuzzy tier and flags fuzzy hits", func(t *testing.T) {
		repo := &stubRepo{
			textMatches: nil,
			candidates:  fixtureCatalog(),
		}
		svc := NewSearchService(repo, SearchConfig{FuzzyEnabled: true, FuzzyThreshold: 60})

		results, err := svc.Search(ctx, "wireles mose")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) == 0 {
			t.Fatal("expected fuzzy results for typo query")
		}
		first := results[0]
		if first.Product.ID != "1" {
			t.Errorf("first result = %q, want Wireless Mouse", first.Product.Name)
		}
		if !first.IsFuzzyMatch {
			t.Error("fuzzy hit not flagged")
		}
		if first.FuzzyScore < 60 {
			t.Errorf("FuzzyScore = %v, want >= 60", first.FuzzyScore)
		}
	})

	t.Run("exact matches come first, fuzzy after", func(t *testing.T) {
		repo := &stubRepo{
			textMatches: []domain.Product{{ID: "exact-1", Name: "Wireless Mouse Pad"}},
			candidates:  fixtureCatalog(),
		}
		svc := NewSearchService(repo, SearchConfig{FuzzyEnabled: true, FuzzyThreshold: 60})

		results, err := svc.Search(ctx, "wireles mose")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) < 2 {
			t.Fatalf("results = %d, want exact + fuzzy", len(results))
		}
		if results[0].Product.ID != "exact-1" || results[0].IsFuzzyMatch {
			t.Errorf("first result = %+v, want unflagged exact match", results[0])
		}
		for _, r := range results[1:] {
			if !r.IsFuzzyMatch {
				t.Errorf("result %q after exact tier not flagged fuzzy", r.Product.ID)
			}
		}
	})

	t.Run("never returns duplicate product ids", func(t *testing.T) {
		shared := domain.Product{ID: "1", Name: "Wireless Mouse", Description: "A high-quality wireless mouse"}
		repo := &stubRepo{
			textMatches: []domain.Product{shared},
			candidates:  fixtureCatalog(), // also contains id "1"
		}
		svc := NewSearchService(repo, SearchConfig{FuzzyEnabled: true, FuzzyThreshold: 50})

		results, err := svc.Search(ctx, "wireless mouse")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		seen := make(map[string]bool)
		for _, r := range results {
			if seen[r.Product.ID] {
				t.Errorf("duplicate product id %q in results", r.Product.ID)
			}
			seen[r.Product.ID] = true
		}
	})

	t.Run("short query produces no fuzzy results", func(t *testing.T) {
		repo := &stubRepo{
			textMatches: exactProducts(1),
			candidates:  fixtureCatalog(),
		}
		svc := NewSearchService(repo, SearchConfig{FuzzyEnabled: true, FuzzyThreshold: 1})

		results, err := svc.Search(ctx, "m")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, r := range results {
			if r.IsFuzzyMatch {
				t.Errorf("short query produced fuzzy result %q", r.Product.ID)
			}
		}
	})

	t.Run("passes the candidate cap to the store", func(t *testing.T) {
		repo := &stubRepo{candidates: fixtureCatalog()}
		svc := NewSearchService(repo, SearchConfig{FuzzyEnabled: true})

		if _, err := svc.Search(ctx, "wireless"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.lastLimit != 50 {
			t.Errorf("candidate limit = %d, want 50", repo.lastLimit)
		}
	})

	t.Run("exact tier failure surfaces as upstream fetch error", func(t *testing.T) {
		repo := &stubRepo{textErr: errors.New("connection reset")}
		svc := NewSearchService(repo, SearchConfig{FuzzyEnabled: true})

		_, err := svc.Search(ctx, "wireless")
		if !errors.Is(err, domain.ErrUpstreamFetch) {
			t.Errorf("error = %v, want ErrUpstreamFetch", err)
		}
	})

	t.Run("fuzzy tier failure surfaces as upstream fetch error", func(t *testing.T) {
		repo := &stubRepo{candidatesErr: errors.New("connection reset")}
		svc := NewSearchService(repo, SearchConfig{FuzzyEnabled: true})

		_, err := svc.Search(ctx, "wireless")
		if !errors.Is(err, domain.ErrUpstreamFetch) {
			t.Errorf("error = %v, want ErrUpstreamFetch", err)
		}
	})

	t.Run("raising the threshold never increases the result count", func(t *testing.T) {
		repo := &stubRepo{candidates: fixtureCatalog()}
		low := NewSearchService(repo, SearchConfig{FuzzyEnabled: true, FuzzyThreshold: 50})
		high := NewSearchService(repo, SearchConfig{FuzzyEnabled: true, FuzzyThreshold: 90})

		lowResults, err := low.Search(ctx, "wireless mouse")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		highResults, err := high.Search(ctx, "wireless mouse")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(highResults) > len(lowResults) {
			t.Errorf("threshold 90 returned %d results, threshold 50 returned %d",
				len(highResults), len(lowResults))
		}
	})
}

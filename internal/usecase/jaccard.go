package usecase

import "strings"

// JaccardResult holds a Jaccard similarity score together with the literal
// intersection and union token lists, for explainability in API responses.
type JaccardResult struct {
	Score        float64
	Intersection []string
	Union        []string
}

// Tokenize splits text into lowercase words on whitespace, discarding empty
// tokens.
func Tokenize(text string) []string {
	return strings.Fields(strings.ToLower(text))
}

// JaccardDetailed computes |A ∩ B| / |A ∪ B| over the two token lists.
// Tokens are lowercased and de-duplicated before comparison; the first-seen
// order of each input is preserved in the returned lists.
//
// Two empty sets score 0, not 1: an empty-keyword product shares nothing
// with another empty-keyword product and must not rank as identical.
func JaccardDetailed(setA, setB []string) JaccardResult {
	uniqueA := dedupeLower(setA)
	uniqueB := dedupeLower(setB)

	inB := make(map[string]bool, len(uniqueB))
	for _, t := range uniqueB {
		inB[t] = true
	}

	intersection := []string{}
	for _, t := range uniqueA {
		if inB[t] {
			intersection = append(intersection, t)
		}
	}

	inA := make(map[string]bool, len(uniqueA))
	union := make([]string, 0, len(uniqueA)+len(uniqueB))
	union = append(union, uniqueA...)
	for _, t := range uniqueA {
		inA[t] = true
	}
	for _, t := range uniqueB {
		if !inA[t] {
			union = append(union, t)
		}
	}

	score := 0.0
	if len(union) > 0 {
		score = float64(len(intersection)) / float64(len(union))
	}

	return JaccardResult{
		Score:        score,
		Intersection: intersection,
		Union:        union,
	}
}

// Jaccard returns only the similarity score.
func Jaccard(setA, setB []string) float64 {
	return JaccardDetailed(setA, setB).Score
}

// dedupeLower lowercases tokens and removes duplicates, keeping first-seen
// order.
func dedupeLower(tokens []string) []string {
	seen := make(map[string]bool, len(tokens))
	var out []string
	for _, t := range tokens {
		lowered := strings.ToLower(t)
		if lowered == "" || seen[lowered] {
			continue
		}
		seen[lowered] = true
		out = append(out, lowered)
	}
	return out
}

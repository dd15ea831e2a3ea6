// Package selector picks the alternatives shown next to a detected product.
//
// It is a pure function over an in-memory list: no I/O, no shared state,
// safe to call from any goroutine.
package selector

import (
	"scoutIO/domain"
	"slices"
)

// MaxResults caps the balanced mode.
const MaxResults = 5

// SelectAlternatives returns the candidates to display for mode.
//
// Named modes filter by their category and fall back to the whole
// (deduplicated) list when nothing matches; they are not capped. Balanced
// builds a diverse list of at most MaxResults: first fast shipping pick,
// first high review pick, first lowest price pick, then backfills in input
// order. Unknown modes return the list in input order, still deduplicated.
func SelectAlternatives(candidates []domain.Candidate, mode domain.Mode) []domain.Candidate {
	pool := dedupe(candidates)
	if len(pool) == 0 {
		return []domain.Candidate{}
	}

	switch mode {
	case domain.ModeLowestPrice:
		picked, matched := filter(pool, isLowestPrice)
		if matched {
			slices.SortStableFunc(picked, func(a, b domain.Candidate) int {
				return compareFloat(a.Price, b.Price)
			})
		}
		return picked

	case domain.ModeBestReviews:
		picked, matched := filter(pool, isHighReview)
		if matched {
			slices.SortStableFunc(picked, func(a, b domain.Candidate) int {
				return compareFloat(b.RatingOrZero(), a.RatingOrZero())
			})
		}
		return picked

	case domain.ModeFastShipping:
		picked, _ := filter(pool, isFastShipping)
		return picked

	case domain.ModeBalanced:
		return balanced(pool)
	}

	return pool
}

func balanced(pool []domain.Candidate) []domain.Candidate {
	out := make([]domain.Candidate, 0, MaxResults)

	for _, pred := range []func(domain.Candidate) bool{isFastShipping, isHighReview, isLowestPrice} {
		for _, c := range pool {
			if pred(c) && !contains(out, c) {
				out = append(out, c)
				break
			}
		}
	}

	for _, c := range pool {
		if len(out) >= MaxResults {
			break
		}
		if !contains(out, c) {
			out = append(out, c)
		}
	}

	return out
}

// filter returns the matching candidates, or a copy of the whole pool when
// none match. The bool reports whether anything matched.
func filter(pool []domain.Candidate, pred func(domain.Candidate) bool) ([]domain.Candidate, bool) {
	out := make([]domain.Candidate, 0, len(pool))
	for _, c := range pool {
		if pred(c) {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return slices.Clone(pool), false
	}
	return out, true
}

// dedupe keeps the first occurrence of every candidate, preserving order.
// The comparison is not a strict key (id vs name), so it is done pairwise.
func dedupe(candidates []domain.Candidate) []domain.Candidate {
	out := make([]domain.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if !contains(out, c) {
			out = append(out, c)
		}
	}
	return out
}

func contains(list []domain.Candidate, c domain.Candidate) bool {
	return slices.ContainsFunc(list, c.SameAs)
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

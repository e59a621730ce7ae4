package service

import (
	"math"
	"sort"
	"time"

	"estatecore/internal/model"
)

// Ranker orders catalog rows for the inline chat previews. The full page
// goes to the listing site unranked; only the handful shown in the chat
// bubble gets scored.
type Ranker struct {
	weightPrice   float64
	weightRecency float64
}

// NewRanker creates a ranker with the given weights.
func NewRanker(weightPrice, weightRecency float64) *Ranker {
	return &Ranker{
		weightPrice:   weightPrice,
		weightRecency: weightRecency,
	}
}

// RankPreviews scores the rows against the extracted filters and returns
// up to limit previews, best first.
func (r *Ranker) RankPreviews(properties []model.Property, filters *model.SearchFilters, limit int) []model.PropertyPreview {
	type scored struct {
		property model.Property
		score    float64
	}

	results := make([]scored, 0, len(properties))
	for _, property := range properties {
		score := r.weightPrice*r.priceScore(property.Price, filters) +
			r.weightRecency*r.recencyScore(property.ListedDate)
		results = append(results, scored{property: property, score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	if limit > len(results) {
		limit = len(results)
	}
	previews := make([]model.PropertyPreview, 0, limit)
	for _, result := range results[:limit] {
		previews = append(previews, result.property.ToCurrentFormat())
	}
	return previews
}

// priceScore rewards prices near the middle of the requested range, or
// close under the budget cap when only a maximum is set.
func (r *Ranker) priceScore(price *float64, filters *model.SearchFilters) float64 {
	if price == nil {
		return 0.5
	}
	if filters == nil || (filters.MinPrice == nil && filters.MaxPrice == nil) {
		return 1.0
	}

	actual := *price

	if filters.MinPrice != nil && filters.MaxPrice != nil {
		lo, hi := *filters.MinPrice, *filters.MaxPrice
		if actual < lo || actual > hi {
			return 0.0
		}
		if hi == lo {
			return 1.0
		}
		midpoint := (lo + hi) / 2
		score := 1.0 - math.Abs(actual-midpoint)/((hi-lo)/2)
		if score < 0 {
			return 0
		}
		return score
	}

	if filters.MinPrice != nil {
		if actual < *filters.MinPrice {
			return 0.0
		}
		return 1.0
	}

	if actual > *filters.MaxPrice {
		return 0.0
	}
	return actual / *filters.MaxPrice
}

// recencyScore decays exponentially with listing age. After 30 days the
// score is about 0.74, after 90 days about 0.41.
func (r *Ranker) recencyScore(listedDate *time.Time) float64 {
	if listedDate == nil {
		return 0.5
	}
	days := time.Since(*listedDate).Hours() / 24
	score := math.Exp(-0.01 * days)
	if score > 1.0 {
		return 1.0
	}
	if score < 0 {
		return 0
	}
	return score
}

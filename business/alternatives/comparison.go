package alternatives

import (
	"scoutIO/business/selector"
	"scoutIO/domain"

	"github.com/shopspring/decimal"
)

// ComparePrices sets the viewed product against the cheapest candidate.
// Savings are only reported when a candidate is strictly cheaper.
func ComparePrices(product *domain.DetectedProduct, candidates []domain.Candidate, lowestSeen *float64) domain.PriceComparison {
	var cmp domain.PriceComparison
	cmp.LowestSeenPrice = lowestSeen

	if product != nil {
		cmp.CurrentPrice = product.Price
		cmp.Currency = product.Currency
	}

	cheapest := -1
	for i, c := range candidates {
		if cheapest < 0 || c.Price < candidates[cheapest].Price {
			cheapest = i
		}
	}
	if cheapest < 0 {
		return cmp
	}

	cmp.CheapestName = candidates[cheapest].Name
	cmp.CheapestPrice = domain.Float(candidates[cheapest].Price)

	if cmp.CurrentPrice == nil {
		return cmp
	}

	current := decimal.NewFromFloat(*cmp.CurrentPrice)
	best := decimal.NewFromFloat(candidates[cheapest].Price)
	if !best.LessThan(current) {
		return cmp
	}

	savings := current.Sub(best)
	cmp.CheaperAvailable = true
	cmp.Savings = savings.Round(2).InexactFloat64()
	if current.IsPositive() {
		cmp.SavingsPercent = savings.Div(current).Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64()
	}

	return cmp
}

func SummarizeReviews(candidates []domain.Candidate) domain.ReviewSummary {
	var summary domain.ReviewSummary
	total := decimal.Zero

	for _, c := range candidates {
		if c.Rating == nil {
			continue
		}
		summary.RatedCount++
		total = total.Add(decimal.NewFromFloat(*c.Rating))
		if selector.Classify(c).HighReview {
			summary.HighlyRated++
		}
	}

	if summary.RatedCount > 0 {
		summary.AverageRating = total.Div(decimal.NewFromInt(int64(summary.RatedCount))).Round(1).InexactFloat64()
	}

	return summary
}

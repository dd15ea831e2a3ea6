package selector

import (
	"scoutIO/domain"
	"strings"
)

const (
	highReviewThreshold = 4.5
	discountThreshold   = 10.0
)

// shipping labels are matched case-sensitively, advantage labels are not
var fastShippingMarkers = []string{"Fast", "1-2", "1 day"}

func isHighReview(c domain.Candidate) bool {
	return c.Rating != nil && *c.Rating >= highReviewThreshold
}

func isFastShipping(c domain.Candidate) bool {
	for _, marker := range fastShippingMarkers {
		if strings.Contains(c.ShippingLabel, marker) {
			return true
		}
	}
	return containsFold(c.AdvantageLabel, "fast")
}

func isLowestPrice(c domain.Candidate) bool {
	if c.OldPrice != nil && *c.OldPrice-c.Price > discountThreshold {
		return true
	}
	for _, tag := range c.Tags {
		if tag == "lowest" || containsFold(tag, "deal") {
			return true
		}
	}
	return containsFold(c.AdvantageLabel, "price") || containsFold(c.AdvantageLabel, "value")
}

func isHighQuality(c domain.Candidate) bool {
	return c.Quality == "High" || containsFold(c.AdvantageLabel, "quality")
}

func containsFold(s, substr string) bool {
	if s == "" {
		return false
	}
	return strings.Contains(strings.ToLower(s), substr)
}

// Classify evaluates every category predicate for c.
func Classify(c domain.Candidate) domain.Categories {
	return domain.Categories{
		HighReview:   isHighReview(c),
		FastShipping: isFastShipping(c),
		LowestPrice:  isLowestPrice(c),
		HighQuality:  isHighQuality(c),
	}
}

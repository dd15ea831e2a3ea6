package domain

import (
	"errors"
	"strings"
)

var ErrInvalidMode = errors.New("mode must be one of lowest_price, best_reviews, fast_shipping, balanced")

// Mode is the prioritization strategy used when picking alternatives.
type Mode string

const (
	ModeLowestPrice  Mode = "lowest_price"
	ModeBestReviews  Mode = "best_reviews"
	ModeFastShipping Mode = "fast_shipping"
	ModeBalanced     Mode = "balanced"
)

var knownModes = map[string]Mode{
	"lowestprice":  ModeLowestPrice,
	"bestreviews":  ModeBestReviews,
	"fastshipping": ModeFastShipping,
	"balanced":     ModeBalanced,
}

// ParseMode accepts the wire values as well as UI labels such as
// "Lowest Price" or "best-reviews". Unrecognised input is returned verbatim
// so the selector can apply its unknown-mode behaviour.
func ParseMode(raw string) Mode {
	norm := strings.ToLower(strings.TrimSpace(raw))
	norm = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(norm)
	if m, ok := knownModes[norm]; ok {
		return m
	}
	return Mode(raw)
}

func (m Mode) IsKnown() bool {
	switch m {
	case ModeLowestPrice, ModeBestReviews, ModeFastShipping, ModeBalanced:
		return true
	}
	return false
}

// Label is the human readable name shown on cards.
func (m Mode) Label() string {
	switch m {
	case ModeLowestPrice:
		return "Lowest Price"
	case ModeBestReviews:
		return "Best Reviews"
	case ModeFastShipping:
		return "Fast Shipping"
	case ModeBalanced:
		return "Balanced"
	}
	return string(m)
}

package scrape

import (
	"encoding/json"
	"regexp"
	"scoutIO/business/selector"
	"scoutIO/domain"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

const (
	LabelBestPrice    = "Best price"
	LabelFastShipping = "Fast shipping"
	LabelTopRated     = "Top rated"

	maxRating = 5
)

// Thousands groups must be exactly three digits, so "1,29" and "1.299,99"
// do not read as a plausible price.
var numberPattern = regexp.MustCompile(`\d{1,3}(?:,\d{3})+(?:\.\d+)?|\d+(?:\.\d+)?`)

// Normalize converts provider rows into candidates. Rows without a name or
// with a missing or negative price are dropped. Ratings are clamped to
// [0, 5] but not rounded, so the 4.5 review threshold sees the provider's
// value. Rows that carry no advantage label get one derived from their
// data: the cheapest row is "Best price", then fast shipping, then a high
// rating.
func Normalize(items []RawItem) []domain.Candidate {
	out := make([]domain.Candidate, 0, len(items))
	for _, item := range items {
		c, ok := normalizeItem(item)
		if !ok {
			continue
		}
		out = append(out, c)
	}

	cheapest := -1
	for i, c := range out {
		if cheapest < 0 || c.Price < out[cheapest].Price {
			cheapest = i
		}
	}

	for i := range out {
		if out[i].AdvantageLabel != "" {
			continue
		}
		cats := selector.Classify(out[i])
		switch {
		case i == cheapest && len(out) > 1:
			out[i].AdvantageLabel = LabelBestPrice
		case cats.FastShipping:
			out[i].AdvantageLabel = LabelFastShipping
		case cats.HighReview:
			out[i].AdvantageLabel = LabelTopRated
		}
	}

	return out
}

func normalizeItem(item RawItem) (domain.Candidate, bool) {
	name := strings.TrimSpace(item.Name)
	if name == "" {
		name = strings.TrimSpace(item.Title)
	}
	if name == "" {
		return domain.Candidate{}, false
	}

	price, ok := ParseAmount(item.Price)
	if !ok || price.IsNegative() {
		return domain.Candidate{}, false
	}

	c := domain.Candidate{
		ID:             item.ID,
		Name:           name,
		Price:          price.Round(2).InexactFloat64(),
		ShippingLabel:  strings.TrimSpace(item.Shipping),
		Quality:        strings.TrimSpace(item.Quality),
		Tags:           item.Tags,
		AdvantageLabel: strings.TrimSpace(item.AdvantageLabel),
		URL:            item.URL,
		ImageURL:       item.Image,
		Retailer:       item.Retailer,
	}

	if old, ok := ParseAmount(item.OldPrice); ok && old.GreaterThan(price) {
		c.OldPrice = domain.Float(old.Round(2).InexactFloat64())
	}

	if rating, ok := ParseAmount(item.Rating); ok {
		rating = decimal.Max(decimal.Zero, decimal.Min(rating, decimal.NewFromInt(maxRating)))
		c.Rating = domain.Float(rating.InexactFloat64())
	}

	return c, true
}

// ParseAmount reads a JSON number or a display string such as "$1,299.99"
// or "4.5 out of 5" and returns the first number it contains.
func ParseAmount(raw json.RawMessage) (decimal.Decimal, bool) {
	text := strings.TrimSpace(string(raw))
	if text == "" || text == "null" {
		return decimal.Zero, false
	}

	if strings.HasPrefix(text, `"`) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return decimal.Zero, false
		}
		text = s
	}

	loc := numberPattern.FindStringIndex(text)
	if loc == nil {
		return decimal.Zero, false
	}

	// a separator followed by more digits means a format we do not read
	if rest := text[loc[1]:]; len(rest) > 1 && (rest[0] == ',' || rest[0] == '.') && unicode.IsDigit(rune(rest[1])) {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(strings.ReplaceAll(text[loc[0]:loc[1]], ",", ""))
	if err != nil {
		return decimal.Zero, false
	}

	// the sign may sit in front of a currency symbol, as in "-$5.00"
	prefix := strings.TrimRightFunc(text[:loc[0]], func(r rune) bool {
		return unicode.IsSpace(r) || unicode.Is(unicode.Sc, r)
	})
	if strings.HasSuffix(prefix, "-") {
		d = d.Neg()
	}
	return d, true
}

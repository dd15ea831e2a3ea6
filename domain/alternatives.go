package domain

// Categories are the interest buckets a candidate falls into.
type Categories struct {
	HighReview   bool `json:"high_review"`
	FastShipping bool `json:"fast_shipping"`
	LowestPrice  bool `json:"lowest_price"`
	HighQuality  bool `json:"high_quality"`
}

type RankedCandidate struct {
	Candidate
	Categories Categories `json:"categories"`
}

type PriceComparison struct {
	CurrentPrice     *float64 `json:"current_price,omitempty"`
	Currency         string   `json:"currency,omitempty"`
	CheapestName     string   `json:"cheapest_name,omitempty"`
	CheapestPrice    *float64 `json:"cheapest_price,omitempty"`
	Savings          float64  `json:"savings"`
	SavingsPercent   float64  `json:"savings_percent"`
	LowestSeenPrice  *float64 `json:"lowest_seen_price,omitempty"`
	CheaperAvailable bool     `json:"cheaper_available"`
}

type ReviewSummary struct {
	RatedCount    int     `json:"rated_count"`
	AverageRating float64 `json:"average_rating"`
	HighlyRated   int     `json:"highly_rated"`
}

type AlternativesView struct {
	Mode         Mode              `json:"mode"`
	ModeLabel    string            `json:"mode_label"`
	Product      *DetectedProduct  `json:"product,omitempty"`
	Alternatives []RankedCandidate `json:"alternatives"`
	Comparison   PriceComparison   `json:"comparison"`
	Reviews      ReviewSummary     `json:"reviews"`
}

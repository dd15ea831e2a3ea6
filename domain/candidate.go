package domain

import (
	"encoding/json"
	"strings"
)

// CandidateID accepts both string and numeric identifiers on the wire.
// The empty value means the candidate has no id.
type CandidateID string

func (id *CandidateID) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" || raw == "" {
		*id = ""
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = CandidateID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = CandidateID(n.String())
	return nil
}

// Candidate is a product alternative under consideration.
type Candidate struct {
	ID             CandidateID `json:"id,omitempty"`
	Name           string      `json:"name"`
	Price          float64     `json:"price"`
	OldPrice       *float64    `json:"oldPrice,omitempty"`
	Rating         *float64    `json:"rating,omitempty"`
	ShippingLabel  string      `json:"shippingLabel,omitempty"`
	Quality        string      `json:"quality,omitempty"`
	Tags           []string    `json:"tags,omitempty"`
	AdvantageLabel string      `json:"advantageLabel,omitempty"`

	URL      string `json:"url,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
	Retailer string `json:"retailer,omitempty"`
}

// UnmarshalJSON also understands the legacy shape that used "title" for the
// name and "reviews" for the rating.
func (c *Candidate) UnmarshalJSON(b []byte) error {
	type plain Candidate
	var aux struct {
		plain
		Title   string   `json:"title"`
		Reviews *float64 `json:"reviews"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	*c = Candidate(aux.plain)
	if c.Name == "" {
		c.Name = aux.Title
	}
	if c.Rating == nil && aux.Reviews != nil {
		c.Rating = aux.Reviews
	}
	return nil
}

// RatingOrZero treats a missing rating as 0.
func (c Candidate) RatingOrZero() float64 {
	if c.Rating == nil {
		return 0
	}
	return *c.Rating
}

// SameAs compares by id when both sides carry one and by name otherwise.
func (c Candidate) SameAs(other Candidate) bool {
	if c.ID != "" && other.ID != "" {
		return c.ID == other.ID
	}
	return c.Name == other.Name
}

// Key is the display key used by renderers and logs.
func (c Candidate) Key() string {
	if c.ID != "" {
		return string(c.ID)
	}
	return c.Name
}

// Float is a small helper for optional numeric fields.
func Float(v float64) *float64 {
	return &v
}

package alternatives

import (
	"scoutIO/domain"
	"testing"
)

func TestComparePrices_NoCheaperCandidate(t *testing.T) {
	product := &domain.DetectedProduct{Price: domain.Float(20)}
	got := ComparePrices(product, []domain.Candidate{{Name: "a", Price: 25}, {Name: "b", Price: 20}}, nil)

	if got.CheaperAvailable {
		t.Fatal("equal price is not cheaper")
	}
	if got.CheapestName != "b" || *got.CheapestPrice != 20 {
		t.Fatalf("unexpected cheapest: %+v", got)
	}
	if got.Savings != 0 || got.SavingsPercent != 0 {
		t.Fatalf("savings should be zero: %+v", got)
	}
}

func TestComparePrices_RoundsToCents(t *testing.T) {
	product := &domain.DetectedProduct{Price: domain.Float(29.99)}
	got := ComparePrices(product, []domain.Candidate{{Name: "a", Price: 19.99}}, nil)

	if got.Savings != 10 {
		t.Fatalf("expected savings 10, got %v", got.Savings)
	}
	if got.SavingsPercent != 33.34 {
		t.Fatalf("expected 33.34%%, got %v", got.SavingsPercent)
	}
}

func TestComparePrices_UnknownCurrentPrice(t *testing.T) {
	got := ComparePrices(&domain.DetectedProduct{Title: "x"}, []domain.Candidate{{Name: "a", Price: 5}}, nil)
	if got.CheaperAvailable || got.CheapestName != "a" {
		t.Fatalf("unexpected comparison: %+v", got)
	}
}

func TestSummarizeReviews(t *testing.T) {
	got := SummarizeReviews([]domain.Candidate{
		{Name: "a", Rating: domain.Float(4.5)},
		{Name: "b", Rating: domain.Float(3.0)},
		{Name: "c", Rating: domain.Float(4.9)},
		{Name: "d"},
	})

	want := domain.ReviewSummary{RatedCount: 3, AverageRating: 4.1, HighlyRated: 2}
	if got != want {
		t.Fatalf("SummarizeReviews() = %+v, want %+v", got, want)
	}
}

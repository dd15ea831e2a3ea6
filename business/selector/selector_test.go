package selector

import (
	"scoutIO/domain"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func names(cs []domain.Candidate) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Name)
	}
	return out
}

func prices(cs []domain.Candidate) []float64 {
	out := make([]float64, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Price)
	}
	return out
}

var allModes = []domain.Mode{
	domain.ModeLowestPrice,
	domain.ModeBestReviews,
	domain.ModeFastShipping,
	domain.ModeBalanced,
	domain.Mode("unknown"),
}

func mixedFixture() []domain.Candidate {
	return []domain.Candidate{
		{ID: "1", Name: "Budget Blender", Price: 29.99, OldPrice: domain.Float(49.99), Rating: domain.Float(4.1), ShippingLabel: "3-5 days"},
		{ID: "2", Name: "Pro Blender", Price: 89.00, Rating: domain.Float(4.8), ShippingLabel: "2-3 days", Quality: "High"},
		{ID: "3", Name: "Express Blender", Price: 59.00, Rating: domain.Float(4.2), ShippingLabel: "1 day"},
		{ID: "4", Name: "Value Blender", Price: 35.00, AdvantageLabel: "Great value"},
		{ID: "5", Name: "Compact Blender", Price: 45.00, Rating: domain.Float(4.6), ShippingLabel: "Fast"},
		{ID: "6", Name: "Glass Blender", Price: 65.00, Rating: domain.Float(3.9)},
		{ID: "7", Name: "Travel Blender", Price: 25.00, Tags: []string{"lowest"}},
	}
}

func TestSelectAlternatives_EmptyInput(t *testing.T) {
	for _, mode := range allModes {
		got := SelectAlternatives(nil, mode)
		if got == nil || len(got) != 0 {
			t.Fatalf("mode %q: expected empty non-nil slice, got %#v", mode, got)
		}

		got = SelectAlternatives([]domain.Candidate{}, mode)
		if len(got) != 0 {
			t.Fatalf("mode %q: expected empty result, got %d items", mode, len(got))
		}
	}
}

func TestSelectAlternatives_Idempotent(t *testing.T) {
	in := mixedFixture()
	for _, mode := range allModes {
		first := SelectAlternatives(in, mode)
		second := SelectAlternatives(in, mode)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Fatalf("mode %q: repeated call differs (-first +second):\n%s", mode, diff)
		}
	}
}

func TestSelectAlternatives_DoesNotMutateInput(t *testing.T) {
	in := mixedFixture()
	before := mixedFixture()
	for _, mode := range allModes {
		_ = SelectAlternatives(in, mode)
	}
	if diff := cmp.Diff(before, in); diff != "" {
		t.Fatalf("input was mutated (-before +after):\n%s", diff)
	}
}

func TestSelectAlternatives_BalancedBound(t *testing.T) {
	in := mixedFixture()
	in = append(in, mixedFixture()...)
	for i := 0; i < 10; i++ {
		in = append(in, domain.Candidate{Name: "Filler " + string(rune('A'+i)), Price: float64(i)})
	}

	got := SelectAlternatives(in, domain.ModeBalanced)
	if len(got) > MaxResults {
		t.Fatalf("expected at most %d results, got %d", MaxResults, len(got))
	}
}

func TestSelectAlternatives_NoInventionNoDuplication(t *testing.T) {
	in := mixedFixture()
	in = append(in, in[1], domain.Candidate{Name: "Pro Blender", Price: 1})

	for _, mode := range allModes {
		got := SelectAlternatives(in, mode)
		for i, c := range got {
			found := false
			for _, orig := range in {
				if c.SameAs(orig) {
					found = true
					break
				}
			}
			if !found {
				t.Fatalf("mode %q: result %q not present in input", mode, c.Name)
			}
			for j := i + 1; j < len(got); j++ {
				if c.SameAs(got[j]) {
					t.Fatalf("mode %q: duplicate entry %q at %d and %d", mode, c.Name, i, j)
				}
			}
		}
	}
}

func TestSelectAlternatives_LowestPriceOrdering(t *testing.T) {
	in := []domain.Candidate{
		{Name: "a", Price: 30, Tags: []string{"lowest"}},
		{Name: "b", Price: 10, Tags: []string{"lowest"}},
		{Name: "c", Price: 20, Tags: []string{"lowest"}},
	}

	got := SelectAlternatives(in, domain.ModeLowestPrice)
	if diff := cmp.Diff([]float64{10, 20, 30}, prices(got)); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
}

func TestSelectAlternatives_LowestPriceFiltersToDeals(t *testing.T) {
	got := SelectAlternatives(mixedFixture(), domain.ModeLowestPrice)
	want := []string{"Travel Blender", "Budget Blender", "Value Blender"}
	if diff := cmp.Diff(want, names(got)); diff != "" {
		t.Fatalf("unexpected selection (-want +got):\n%s", diff)
	}
}

func TestSelectAlternatives_BestReviewsSortsDescending(t *testing.T) {
	got := SelectAlternatives(mixedFixture(), domain.ModeBestReviews)
	want := []string{"Pro Blender", "Compact Blender"}
	if diff := cmp.Diff(want, names(got)); diff != "" {
		t.Fatalf("unexpected selection (-want +got):\n%s", diff)
	}
}

func TestSelectAlternatives_BestReviewsFallback(t *testing.T) {
	in := []domain.Candidate{
		{ID: "x", Name: "x", Price: 10, Rating: domain.Float(3.0)},
		{ID: "y", Name: "y", Price: 20, Rating: domain.Float(4.4)},
		{ID: "z", Name: "z", Price: 30},
	}

	got := SelectAlternatives(in, domain.ModeBestReviews)
	if diff := cmp.Diff(in, got); diff != "" {
		t.Fatalf("expected full input in order (-want +got):\n%s", diff)
	}
}

func TestSelectAlternatives_FastShippingKeepsFilteredOrder(t *testing.T) {
	got := SelectAlternatives(mixedFixture(), domain.ModeFastShipping)
	want := []string{"Express Blender", "Compact Blender"}
	if diff := cmp.Diff(want, names(got)); diff != "" {
		t.Fatalf("unexpected selection (-want +got):\n%s", diff)
	}
}

func TestSelectAlternatives_FastShippingFallback(t *testing.T) {
	in := []domain.Candidate{
		{Name: "slow", Price: 10, ShippingLabel: "5-7 days"},
		{Name: "slower", Price: 5, ShippingLabel: "2 weeks"},
	}
	got := SelectAlternatives(in, domain.ModeFastShipping)
	if diff := cmp.Diff(in, got); diff != "" {
		t.Fatalf("expected fallback to input (-want +got):\n%s", diff)
	}
}

func TestSelectAlternatives_BalancedDiversity(t *testing.T) {
	a := domain.Candidate{ID: "a", Name: "A", Price: 50, ShippingLabel: "1 day"}
	b := domain.Candidate{ID: "b", Name: "B", Price: 60, Rating: domain.Float(4.9)}
	c := domain.Candidate{ID: "c", Name: "C", Price: 20, OldPrice: domain.Float(45)}
	d := domain.Candidate{ID: "d", Name: "D", Price: 70}
	e := domain.Candidate{ID: "e", Name: "E", Price: 80}

	got := SelectAlternatives([]domain.Candidate{a, b, c, d, e}, domain.ModeBalanced)
	if diff := cmp.Diff([]string{"A", "B", "C", "D", "E"}, names(got)); diff != "" {
		t.Fatalf("unexpected balanced order (-want +got):\n%s", diff)
	}
}

func TestSelectAlternatives_BalancedRulePriority(t *testing.T) {
	plain1 := domain.Candidate{Name: "plain1", Price: 10}
	plain2 := domain.Candidate{Name: "plain2", Price: 10}
	deal := domain.Candidate{Name: "deal", Price: 10, Tags: []string{"Hot Deal"}}
	review := domain.Candidate{Name: "review", Price: 10, Rating: domain.Float(4.7)}
	fast := domain.Candidate{Name: "fast", Price: 10, AdvantageLabel: "FAST shipping"}
	plain3 := domain.Candidate{Name: "plain3", Price: 10}

	got := SelectAlternatives([]domain.Candidate{plain1, plain2, deal, review, fast, plain3}, domain.ModeBalanced)
	want := []string{"fast", "review", "deal", "plain1", "plain2"}
	if diff := cmp.Diff(want, names(got)); diff != "" {
		t.Fatalf("unexpected balanced order (-want +got):\n%s", diff)
	}
}

func TestSelectAlternatives_BalancedSkipsAlreadySelected(t *testing.T) {
	// fast and high review at once: counted for the first rule only
	both := domain.Candidate{Name: "both", Price: 10, ShippingLabel: "Fast", Rating: domain.Float(4.8)}
	review := domain.Candidate{Name: "review", Price: 10, Rating: domain.Float(4.5)}

	got := SelectAlternatives([]domain.Candidate{both, review}, domain.ModeBalanced)
	if diff := cmp.Diff([]string{"both", "review"}, names(got)); diff != "" {
		t.Fatalf("unexpected balanced order (-want +got):\n%s", diff)
	}
}

func TestSelectAlternatives_UnknownModeIsIdentity(t *testing.T) {
	in := mixedFixture()
	in = append(in, domain.Candidate{ID: "8", Name: "Extra 1"}, domain.Candidate{ID: "9", Name: "Extra 2"})

	got := SelectAlternatives(in, domain.Mode("unknown"))
	if diff := cmp.Diff(in, got); diff != "" {
		t.Fatalf("unknown mode should return input unchanged (-want +got):\n%s", diff)
	}
}

func TestSelectAlternatives_BestReviewsFallbackKeepsEveryCandidate(t *testing.T) {
	in := make([]domain.Candidate, 0, 7)
	for i := 0; i < 7; i++ {
		in = append(in, domain.Candidate{ID: domain.CandidateID(string(rune('a' + i))), Name: string(rune('a' + i)), Price: 10, Rating: domain.Float(3.0)})
	}

	got := SelectAlternatives(in, domain.ModeBestReviews)
	if diff := cmp.Diff(in, got); diff != "" {
		t.Fatalf("expected all %d candidates in input order (-want +got):\n%s", len(in), diff)
	}
}

func TestSelectAlternatives_NamedModesAreNotCapped(t *testing.T) {
	in := make([]domain.Candidate, 0, 8)
	for i := 0; i < 8; i++ {
		in = append(in, domain.Candidate{Name: string(rune('a' + i)), Price: float64(100 - i), Tags: []string{"lowest"}, ShippingLabel: "1 day"})
	}

	got := SelectAlternatives(in, domain.ModeLowestPrice)
	if len(got) != len(in) {
		t.Fatalf("expected %d results, got %d", len(in), len(got))
	}
	if got[0].Price != 93 {
		t.Fatalf("expected cheapest first, got %v", got[0].Price)
	}

	if got := SelectAlternatives(in, domain.ModeFastShipping); len(got) != len(in) {
		t.Fatalf("fast shipping: expected %d results, got %d", len(in), len(got))
	}
}

func TestSelectAlternatives_UnknownModeStillDedupes(t *testing.T) {
	in := []domain.Candidate{
		{ID: "1", Name: "Kettle"},
		{ID: "1", Name: "Kettle again"},
		{ID: "2", Name: "Toaster"},
	}

	got := SelectAlternatives(in, domain.Mode("unknown"))
	if diff := cmp.Diff([]string{"Kettle", "Toaster"}, names(got)); diff != "" {
		t.Fatalf("unexpected result (-want +got):\n%s", diff)
	}
}

func TestSelectAlternatives_DedupeByNameWhenIDMissing(t *testing.T) {
	in := []domain.Candidate{
		{ID: "1", Name: "Kettle", Price: 20},
		{Name: "Kettle", Price: 18},
		{ID: "2", Name: "Toaster", Price: 30},
		{ID: "2", Name: "Toaster v2", Price: 31},
	}

	got := SelectAlternatives(in, domain.ModeBalanced)
	if diff := cmp.Diff([]string{"Kettle", "Toaster"}, names(got)); diff != "" {
		t.Fatalf("unexpected dedupe result (-want +got):\n%s", diff)
	}
	if got[0].Price != 20 {
		t.Fatalf("expected the first occurrence to win, got price %v", got[0].Price)
	}
}

package alternatives

import (
	"context"
	"fmt"
	"scoutIO/business/selector"
	"scoutIO/domain"
	"scoutIO/pkg/logger"
	"scoutIO/pkg/metrics"
)

type SessionReader interface {
	Get(ctx context.Context, id string) (domain.ShoppingSession, error)
}

type ModeResolver interface {
	GetMode(ctx context.Context, sessionID string) (domain.Mode, error)
}

type PriceHistory interface {
	FindByURL(ctx context.Context, url string) (domain.TrackedProduct, bool, error)
}

type alternativesService struct {
	sessions SessionReader
	modes    ModeResolver
	history  PriceHistory
}

func NewAlternativesService(sessions SessionReader, modes ModeResolver, history PriceHistory) *alternativesService {
	return &alternativesService{
		sessions: sessions,
		modes:    modes,
		history:  history,
	}
}

// ForSession selects alternatives from the candidates gathered for the
// session. An empty modeOverride falls back to the stored preference.
func (s *alternativesService) ForSession(ctx context.Context, sessionID, modeOverride string) (domain.AlternativesView, error) {
	if err := ctx.Err(); err != nil {
		return domain.AlternativesView{}, fmt.Errorf("context error: %w", err)
	}

	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return domain.AlternativesView{}, err
	}

	mode := domain.ParseMode(modeOverride)
	if modeOverride == "" {
		mode, err = s.modes.GetMode(ctx, sessionID)
		if err != nil {
			return domain.AlternativesView{}, err
		}
	}

	view := build(sess.Candidates, mode)
	view.Product = sess.ActiveProduct

	var lowestSeen *float64
	if sess.ActiveProduct != nil && s.history != nil {
		tracked, found, err := s.history.FindByURL(ctx, sess.ActiveProduct.URL)
		if err != nil {
			logger.Warn("Failed to load price history", "url", sess.ActiveProduct.URL, "error", err)
		} else if found {
			lowestSeen = tracked.LowestPrice
		}
	}
	view.Comparison = ComparePrices(sess.ActiveProduct, sess.Candidates, lowestSeen)

	logger.Debug("Alternatives selected", "session_id", sessionID, "mode", mode, "candidates", len(sess.Candidates), "selected", len(view.Alternatives))
	return view, nil
}

// Preview runs the same selection over caller-supplied candidates without
// touching any session state.
func (s *alternativesService) Preview(candidates []domain.Candidate, mode domain.Mode) domain.AlternativesView {
	view := build(candidates, mode)
	view.Comparison = ComparePrices(nil, candidates, nil)
	return view
}

func build(candidates []domain.Candidate, mode domain.Mode) domain.AlternativesView {
	selected := selector.SelectAlternatives(candidates, mode)

	ranked := make([]domain.RankedCandidate, 0, len(selected))
	for _, c := range selected {
		ranked = append(ranked, domain.RankedCandidate{Candidate: c, Categories: selector.Classify(c)})
	}

	label := string(mode)
	if !mode.IsKnown() {
		label = "unknown"
	}
	metrics.SelectionsTotal.WithLabelValues(label).Inc()
	metrics.SelectionSize.Observe(float64(len(selected)))

	return domain.AlternativesView{
		Mode:         mode,
		ModeLabel:    mode.Label(),
		Alternatives: ranked,
		Reviews:      SummarizeReviews(selected),
	}
}

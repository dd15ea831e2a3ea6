package detect

import (
	"context"
	"fmt"
	"scoutIO/domain"
	"scoutIO/pkg/logger"
)

type SessionUpdater interface {
	SetActiveProduct(ctx context.Context, id string, product domain.DetectedProduct) (domain.ShoppingSession, error)
}

type ProductTracker interface {
	Observe(ctx context.Context, product domain.DetectedProduct) (domain.TrackedProduct, error)
}

type detectService struct {
	sessions SessionUpdater
	tracker  ProductTracker
}

func NewDetectService(sessions SessionUpdater, tracker ProductTracker) *detectService {
	return &detectService{sessions: sessions, tracker: tracker}
}

// Detect parses the page and, when it is a product page, makes it the
// session's active product and records the price sighting.
func (s *detectService) Detect(ctx context.Context, sessionID, pageURL, html string) (domain.DetectedProduct, error) {
	if err := ctx.Err(); err != nil {
		return domain.DetectedProduct{}, fmt.Errorf("context error: %w", err)
	}

	product, err := Parse(pageURL, html)
	if err != nil {
		return domain.DetectedProduct{}, err
	}

	if _, err := s.sessions.SetActiveProduct(ctx, sessionID, product); err != nil {
		return domain.DetectedProduct{}, fmt.Errorf("failed to set active product: %w", err)
	}

	if s.tracker != nil {
		if _, err := s.tracker.Observe(ctx, product); err != nil {
			logger.Warn("Failed to record price sighting", "url", product.URL, "error", err)
		}
	}

	logger.Info("Product detected", "session_id", sessionID, "retailer", product.Retailer, "title", product.Title)
	return product, nil
}

package preference

import (
	"context"
	"fmt"
	"scoutIO/domain"
	"scoutIO/pkg/logger"
)

const DefaultMode = domain.ModeBalanced

type PreferenceRepository interface {
	Get(ctx context.Context, sessionID string) (domain.Preference, bool, error)
	Upsert(ctx context.Context, pref domain.Preference) error
}

type preferenceService struct {
	repo PreferenceRepository
}

func NewPreferenceService(repo PreferenceRepository) *preferenceService {
	return &preferenceService{repo: repo}
}

// GetMode returns the stored mode for a session, or balanced when the
// session never picked one.
func (s *preferenceService) GetMode(ctx context.Context, sessionID string) (domain.Mode, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("context error: %w", err)
	}

	pref, found, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("failed to load preference: %w", err)
	}
	if !found || !pref.Mode.IsKnown() {
		return DefaultMode, nil
	}

	return pref.Mode, nil
}

func (s *preferenceService) SetMode(ctx context.Context, sessionID, raw string) (domain.Mode, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("context error: %w", err)
	}

	mode := domain.ParseMode(raw)
	if !mode.IsKnown() {
		return "", domain.ErrInvalidMode
	}

	if err := s.repo.Upsert(ctx, domain.Preference{SessionID: sessionID, Mode: mode}); err != nil {
		return "", fmt.Errorf("failed to save preference: %w", err)
	}

	logger.Info("Preference updated", "session_id", sessionID, "mode", mode)
	return mode, nil
}

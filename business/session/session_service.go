package session

import (
	"context"
	"fmt"
	"scoutIO/domain"
	"scoutIO/pkg/logger"
	"scoutIO/pkg/utils"
	"time"

	"github.com/google/uuid"
)

// SessionRepository stores shopping sessions. Update applies fn atomically
// to the stored session and returns domain.ErrSessionNotFound when it does
// not exist.
type SessionRepository interface {
	Save(ctx context.Context, session domain.ShoppingSession, ttl time.Duration) error
	Get(ctx context.Context, id string) (domain.ShoppingSession, error)
	Update(ctx context.Context, id string, ttl time.Duration, fn func(*domain.ShoppingSession) error) (domain.ShoppingSession, error)
}

type Config struct {
	Secret     string
	TokenTTL   time.Duration
	SessionTTL time.Duration
}

// Issued is a freshly created session together with its bearer token.
type Issued struct {
	Session   domain.ShoppingSession `json:"session"`
	Token     string                 `json:"token"`
	ExpiresAt time.Time              `json:"expires_at"`
}

type sessionService struct {
	repo SessionRepository
	cfg  Config
	now  func() time.Time
}

func NewSessionService(repo SessionRepository, cfg Config) *sessionService {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 24 * time.Hour
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = cfg.SessionTTL
	}
	return &sessionService{repo: repo, cfg: cfg, now: time.Now}
}

func (s *sessionService) Create(ctx context.Context) (Issued, error) {
	if err := ctx.Err(); err != nil {
		return Issued{}, fmt.Errorf("context error: %w", err)
	}

	now := s.now().UTC()
	sess := domain.ShoppingSession{
		ID:         uuid.NewString(),
		Candidates: []domain.Candidate{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	token, expiresAt, err := utils.GenerateJWT(sess.ID, utils.RoleShopper, s.cfg.Secret, s.cfg.TokenTTL)
	if err != nil {
		return Issued{}, fmt.Errorf("failed to issue session token: %w", err)
	}

	if err := s.repo.Save(ctx, sess, s.cfg.SessionTTL); err != nil {
		return Issued{}, fmt.Errorf("failed to save session: %w", err)
	}

	logger.Info("Session created", "session_id", sess.ID)

	return Issued{Session: sess, Token: token, ExpiresAt: expiresAt}, nil
}

func (s *sessionService) Get(ctx context.Context, id string) (domain.ShoppingSession, error) {
	if err := ctx.Err(); err != nil {
		return domain.ShoppingSession{}, fmt.Errorf("context error: %w", err)
	}

	return s.repo.Get(ctx, id)
}

// Validate reports whether the session behind a token is still alive.
func (s *sessionService) Validate(ctx context.Context, id string) error {
	_, err := s.Get(ctx, id)
	return err
}

// SetActiveProduct records the product being viewed. Switching to a
// different URL drops the candidates gathered for the previous product.
func (s *sessionService) SetActiveProduct(ctx context.Context, id string, product domain.DetectedProduct) (domain.ShoppingSession, error) {
	if err := ctx.Err(); err != nil {
		return domain.ShoppingSession{}, fmt.Errorf("context error: %w", err)
	}

	return s.repo.Update(ctx, id, s.cfg.SessionTTL, func(sess *domain.ShoppingSession) error {
		if sess.ActiveProduct == nil || sess.ActiveProduct.URL != product.URL {
			sess.Candidates = []domain.Candidate{}
		}
		p := product
		sess.ActiveProduct = &p
		sess.UpdatedAt = s.now().UTC()
		return nil
	})
}

func (s *sessionService) SetCandidates(ctx context.Context, id string, candidates []domain.Candidate) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if candidates == nil {
		candidates = []domain.Candidate{}
	}

	_, err := s.repo.Update(ctx, id, s.cfg.SessionTTL, func(sess *domain.ShoppingSession) error {
		sess.Candidates = candidates
		sess.UpdatedAt = s.now().UTC()
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store candidates: %w", err)
	}

	logger.Debug("Session candidates updated", "session_id", id, "count", len(candidates))
	return nil
}

package rest

import (
	"context"
	"net/http"
	"scoutIO/business/session"
	"scoutIO/domain"
	"scoutIO/pkg/logger"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type SessionService interface {
	Create(ctx context.Context) (session.Issued, error)
	Get(ctx context.Context, id string) (domain.ShoppingSession, error)
}

type SessionHandler struct {
	sessionService SessionService
	timeout        time.Duration
}

func NewSessionHandler(sessionService SessionService) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		timeout:        10 * time.Second,
	}
}

type CreateSessionResponse struct {
	SessionID string    `json:"session_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (h *SessionHandler) CreateSession(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	issued, err := h.sessionService.Create(ctx)
	if err != nil {
		logger.Error("Failed to create session", "error", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(CreateSessionResponse{
		SessionID: issued.Session.ID,
		Token:     issued.Token,
		ExpiresAt: issued.ExpiresAt,
	}))
}

func (h *SessionHandler) GetSession(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	sess, err := h.sessionService.Get(ctx, id)
	if err != nil {
		logger.Error("Failed to load session", "session_id", id, "error", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(sess))
}

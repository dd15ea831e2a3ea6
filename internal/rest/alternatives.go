package rest

import (
	"context"
	"fmt"
	"net/http"
	"scoutIO/domain"
	"scoutIO/pkg/logger"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type AlternativesService interface {
	ForSession(ctx context.Context, sessionID, modeOverride string) (domain.AlternativesView, error)
	Preview(candidates []domain.Candidate, mode domain.Mode) domain.AlternativesView
}

type AlternativesHandler struct {
	alternativesService AlternativesService
	validator           *validator.Validate
	timeout             time.Duration
}

func NewAlternativesHandler(alternativesService AlternativesService) *AlternativesHandler {
	return &AlternativesHandler{
		alternativesService: alternativesService,
		validator:           validator.New(),
		timeout:             10 * time.Second,
	}
}

type PreviewRequest struct {
	Mode       string             `json:"mode"`
	Candidates []domain.Candidate `json:"candidates" validate:"max=500"`
}

func (h *AlternativesHandler) GetAlternatives(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	view, err := h.alternativesService.ForSession(ctx, id, c.QueryParam("mode"))
	if err != nil {
		logger.Error("Failed to select alternatives", "session_id", id, "error", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(view))
}

// Preview is public so the web preview can render cards without a session.
func (h *AlternativesHandler) Preview(c echo.Context) error {
	var req PreviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid request body"})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	for i, cand := range req.Candidates {
		if cand.Price < 0 {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: fmt.Sprintf("candidates[%d]: price must not be negative", i)})
		}
	}

	mode := domain.ParseMode(req.Mode)
	if req.Mode == "" {
		mode = domain.ModeBalanced
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(h.alternativesService.Preview(req.Candidates, mode)))
}

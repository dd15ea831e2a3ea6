package rest

import (
	"context"
	"net/http"
	"scoutIO/domain"
	"scoutIO/pkg/logger"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type PreferenceService interface {
	GetMode(ctx context.Context, sessionID string) (domain.Mode, error)
	SetMode(ctx context.Context, sessionID, raw string) (domain.Mode, error)
}

type PreferenceHandler struct {
	preferenceService PreferenceService
	validator         *validator.Validate
	timeout           time.Duration
}

func NewPreferenceHandler(preferenceService PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{
		preferenceService: preferenceService,
		validator:         validator.New(),
		timeout:           10 * time.Second,
	}
}

type UpdatePreferenceRequest struct {
	Mode string `json:"mode" validate:"required"`
}

type PreferenceResponse struct {
	Mode  domain.Mode `json:"mode"`
	Label string      `json:"label"`
}

func (h *PreferenceHandler) GetPreference(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	mode, err := h.preferenceService.GetMode(ctx, id)
	if err != nil {
		logger.Error("Failed to load preference", "session_id", id, "error", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(PreferenceResponse{Mode: mode, Label: mode.Label()}))
}

func (h *PreferenceHandler) UpdatePreference(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return err
	}

	var req UpdatePreferenceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid request body"})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	mode, err := h.preferenceService.SetMode(ctx, id, req.Mode)
	if err != nil {
		logger.Error("Failed to update preference", "session_id", id, "error", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(PreferenceResponse{Mode: mode, Label: mode.Label()}))
}

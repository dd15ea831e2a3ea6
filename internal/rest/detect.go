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

type DetectService interface {
	Detect(ctx context.Context, sessionID, pageURL, html string) (domain.DetectedProduct, error)
}

type DetectHandler struct {
	detectService DetectService
	validator     *validator.Validate
	timeout       time.Duration
}

func NewDetectHandler(detectService DetectService) *DetectHandler {
	return &DetectHandler{
		detectService: detectService,
		validator:     validator.New(),
		timeout:       10 * time.Second,
	}
}

type DetectRequest struct {
	URL  string `json:"url" validate:"required,url"`
	HTML string `json:"html" validate:"required,max=5000000"`
}

func (h *DetectHandler) Detect(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return err
	}

	var req DetectRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid request body"})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	product, err := h.detectService.Detect(ctx, id, req.URL, req.HTML)
	if err != nil {
		if statusFor(err) == http.StatusInternalServerError {
			logger.Error("Failed to detect product", "session_id", id, "error", err)
		}
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(product))
}

package rest

import (
	"context"
	"errors"
	"net/http"
	"scoutIO/business/scrape"
	"scoutIO/domain"
	"scoutIO/pkg/logger"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type ScrapeService interface {
	Start(ctx context.Context, sessionID, url string) (*domain.ScrapeJob, error)
	Get(ctx context.Context, id string) (domain.ScrapeJob, error)
}

type ScrapeHandler struct {
	scrapeService ScrapeService
	validator     *validator.Validate
	timeout       time.Duration
}

func NewScrapeHandler(scrapeService ScrapeService) *ScrapeHandler {
	return &ScrapeHandler{
		scrapeService: scrapeService,
		validator:     validator.New(),
		timeout:       20 * time.Second,
	}
}

type StartScrapeRequest struct {
	URL string `json:"url" validate:"required"`
}

func (h *ScrapeHandler) StartJob(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return err
	}

	var req StartScrapeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid request body"})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	job, err := h.scrapeService.Start(ctx, id, req.URL)
	if err != nil {
		if errors.Is(err, scrape.ErrInvalidURL) {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to start scrape job", "session_id", id, "error", err)
		if job != nil {
			return c.JSON(http.StatusBadGateway, ResponseError{Message: "scraping provider rejected the job"})
		}
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusAccepted, fres.Response.StatusOK(job))
}

func (h *ScrapeHandler) GetJob(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	job, err := h.scrapeService.Get(ctx, c.Param("id"))
	if err != nil {
		return errorJSON(c, err)
	}

	// jobs of other sessions are reported as missing
	if job.SessionID != id {
		return errorJSON(c, domain.ErrJobNotFound)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(job))
}

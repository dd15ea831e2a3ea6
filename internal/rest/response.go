package rest

import (
	"errors"
	"net/http"
	"scoutIO/business/detect"
	"scoutIO/business/scrape"
	"scoutIO/domain"
	"scoutIO/internal/middleware"

	"github.com/labstack/echo/v4"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrJobNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidMode),
		errors.Is(err, scrape.ErrInvalidURL),
		errors.Is(err, detect.ErrInvalidPageURL):
		return http.StatusBadRequest
	case errors.Is(err, detect.ErrNotProductPage):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func errorJSON(c echo.Context, err error) error {
	code := statusFor(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		msg = "internal server error"
	}
	return c.JSON(code, ResponseError{Message: msg})
}

func sessionID(c echo.Context) (string, error) {
	id, ok := middleware.SessionID(c)
	if !ok {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "session required")
	}
	return id, nil
}

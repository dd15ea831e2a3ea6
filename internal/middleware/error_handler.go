package middleware

import (
	"errors"
	"net/http"
	"scoutIO/pkg/logger"
	jsonres "scoutIO/pkg/response"
	"strings"

	"github.com/labstack/echo/v4"
)

// ErrorHandler renders errors that escaped handlers, including echo's own
// 404 and 405, with the common error envelope.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := http.StatusText(code)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(code)
		}
	}

	traceID := TraceIDFromContext(c.Request().Context())
	if code >= http.StatusInternalServerError {
		logger.Error("Request failed", "path", c.Path(), "trace_id", traceID, "error", err)
	}

	errCode := strings.ToUpper(strings.ReplaceAll(http.StatusText(code), " ", "_"))
	if errCode == "" {
		errCode = "ERROR"
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(code)
	} else {
		writeErr = c.JSON(code, jsonres.Error(errCode, message, nil))
	}
	if writeErr != nil {
		logger.Error("Failed to write error response", "error", writeErr)
	}
}

package middleware

import (
	"context"
	"errors"
	"net/http"
	"scoutIO/domain"
	"scoutIO/pkg/logger"
	jsonres "scoutIO/pkg/response"
	"scoutIO/pkg/utils"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	ContextSessionID = "session_id"
	ContextRole      = "role"
	ContextToken     = "token"
)

// SessionValidator checks that the session behind a token still exists.
type SessionValidator interface {
	Validate(ctx context.Context, sessionID string) error
}

// AuthMiddleware validates the bearer session token. When validator is not
// nil the session must also still be present in the store.
func AuthMiddleware(secret string, validator SessionValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "Missing authorization header", nil,
				))
			}

			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "Invalid authorization format", nil,
				))
			}

			tokenString := tokenParts[1]

			claims, err := utils.ParseJWT(tokenString, secret)
			if err != nil {
				logger.Debug("Rejected session token", "error", err)
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "Invalid token", nil,
				))
			}

			if validator != nil {
				ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
				defer cancel()

				if err := validator.Validate(ctx, claims.SessionID); err != nil {
					if errors.Is(err, domain.ErrSessionNotFound) {
						return c.JSON(http.StatusUnauthorized, jsonres.Error(
							"UNAUTHORIZED", "Session expired", nil,
						))
					}
					logger.Error("Failed to validate session", "session_id", claims.SessionID, "error", err)
					return c.JSON(http.StatusServiceUnavailable, jsonres.Error(
						"UNAVAILABLE", "Session store unavailable", nil,
					))
				}
			}

			c.Set(ContextSessionID, claims.SessionID)
			c.Set(ContextRole, claims.Role)
			c.Set(ContextToken, tokenString)

			return next(c)
		}
	}
}

func SessionID(c echo.Context) (string, bool) {
	id, ok := c.Get(ContextSessionID).(string)
	return id, ok && id != ""
}

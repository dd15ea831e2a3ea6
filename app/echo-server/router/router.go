package router

import (
	"scoutIO/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupSessionRoutes(api *echo.Group, handler *rest.SessionHandler, authRequired echo.MiddlewareFunc) {
	sessions := api.Group("/sessions")

	sessions.POST("", handler.CreateSession)
	sessions.GET("/current", handler.GetSession, authRequired)
}

func SetupPreferenceRoutes(api *echo.Group, handler *rest.PreferenceHandler, authRequired echo.MiddlewareFunc) {
	prefs := api.Group("/preferences", authRequired)

	prefs.GET("", handler.GetPreference)
	prefs.PUT("", handler.UpdatePreference)
}

func SetupDetectRoutes(api *echo.Group, handler *rest.DetectHandler, authRequired echo.MiddlewareFunc) {
	api.POST("/detect", handler.Detect, authRequired)
}

func SetupScrapeRoutes(api *echo.Group, handler *rest.ScrapeHandler, authRequired echo.MiddlewareFunc) {
	jobs := api.Group("/scrape-jobs", authRequired)

	jobs.POST("", handler.StartJob)
	jobs.GET("/:id", handler.GetJob)
}

func SetupAlternativesRoutes(api *echo.Group, handler *rest.AlternativesHandler, authRequired echo.MiddlewareFunc) {
	alts := api.Group("/alternatives")

	alts.GET("", handler.GetAlternatives, authRequired)
	alts.POST("/preview", handler.Preview)
}

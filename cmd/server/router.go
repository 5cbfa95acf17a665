package main

import (
	"net/http"

	"github.com/Cipollinka/MinSpiritCountdown/internal/api"
	"github.com/Cipollinka/MinSpiritCountdown/internal/api/middleware"
)

// setupRouter builds the HTTP handlers and mounts them on the API router.
func (app *application) setupRouter() http.Handler {
	stream := api.DefaultStreamConfig()
	stream.AllowedOrigins = app.config.CORS.AllowedOrigins

	handlers := api.Handlers{
		Sessions:    api.NewSessionHandler(app.profiles, app.jwtService, app.tokenLifetime(), app.clock),
		Timers:      api.NewTimerHandler(app.timers, app.sessions),
		Meditations: api.NewMeditationHandler(app.meditations, app.sessions),
		Predictions: api.NewPredictionHandler(app.predictions),
		Settings:    api.NewSettingsHandler(app.settings),
		Countdowns:  api.NewCountdownHandler(app.sessions, app.hub, stream),
	}

	return api.NewRouter(handlers, middleware.NewAuthMiddleware(app.jwtService), api.RouterConfig{
		AllowedOrigins: app.config.CORS.AllowedOrigins,
		Logger:         app.logger,
	})
}

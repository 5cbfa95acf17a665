package api

import (
	"log/slog"
	"net/http"

	"github.com/Cipollinka/MinSpiritCountdown/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// Handlers groups the HTTP handlers mounted by NewRouter.
type Handlers struct {
	Sessions    *SessionHandler
	Timers      *TimerHandler
	Meditations *MeditationHandler
	Predictions *PredictionHandler
	Settings    *SettingsHandler
	Countdowns  *CountdownHandler
}

// RouterConfig holds the cross-cutting settings of the router.
type RouterConfig struct {
	// AllowedOrigins lists the CORS origins. Empty allows every origin.
	AllowedOrigins []string
	Logger         *slog.Logger
}

// NewRouter builds the application router: public session and health
// endpoints, and every other /api route behind device authentication.
func NewRouter(h Handlers, auth *middleware.AuthMiddleware, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.TraceMiddleware(cfg.Logger))

	r.Route("/api", func(r chi.Router) {
		r.Post("/devices/{deviceID}/session", h.Sessions.OpenSession)
		r.Get("/share", h.Sessions.ShareApp)
		r.Get("/predictions", h.Predictions.Catalog)
		r.Get("/predictions/{id}/share", h.Predictions.Share)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)

			r.Get("/profile", h.Sessions.Profile)
			r.Post("/profile", h.Sessions.Register)

			r.Get("/timers", h.Timers.List)
			r.Post("/timers", h.Timers.Create)
			r.Get("/timers/tabs", h.Timers.Tabs)
			r.Put("/timers/tabs/{index}", h.Timers.SetTab)
			r.Patch("/timers/{id}", h.Timers.Rename)
			r.Delete("/timers/{id}", h.Timers.Delete)

			r.Get("/meditations", h.Meditations.List)
			r.Post("/meditations", h.Meditations.Create)
			r.Delete("/meditations/{id}", h.Meditations.Delete)

			r.Post("/predictions/draw", h.Predictions.Draw)
			r.Get("/predictions/saved", h.Predictions.Saved)
			r.Post("/predictions/{id}/toggle", h.Predictions.Toggle)

			r.Get("/settings", h.Settings.Get)
			r.Patch("/settings", h.Settings.Patch)

			r.Route("/countdowns/{kind}", func(r chi.Router) {
				r.Get("/", h.Countdowns.Get)
				r.Post("/start", h.Countdowns.Start)
				r.Post("/pause", h.Countdowns.Pause)
				r.Post("/reset", h.Countdowns.Reset)
				r.Post("/select", h.Countdowns.Select)
				r.Get("/stream", h.Countdowns.Stream)
			})
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			slog.Error("failed to write health check response", "error", err)
		}
	})

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
		},
		AllowedOrigins: origins,
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		ExposedHeaders: []string{middleware.TraceHeader},
	})
	return c.Handler(r)
}

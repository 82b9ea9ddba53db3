package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/acadassist/widget/internal/handler/webhook"
	"github.com/acadassist/widget/internal/handler/widget"
	"github.com/acadassist/widget/internal/logging"
	"github.com/acadassist/widget/internal/service/transport"
	"github.com/acadassist/widget/pkg/utils"
)

// RouterOptions configures NewRouter.
type RouterOptions struct {
	// Endpoint is reported by the health check.
	Endpoint          string
	RecognitionLocale string
}

// NewRouter wires the widget page, its socket, and the operational endpoints.
func NewRouter(tr transport.Transport, opts RouterOptions, logger zerolog.Logger) http.Handler {
	r := newBaseRouter(logger)

	widgetHandler := widget.New(tr, widget.Options{RecognitionLocale: opts.RecognitionLocale}, logger)
	widgetHandler.RegisterRoutes(r)

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			utils.RespondJSON(w, http.StatusOK, map[string]string{
				"status":  "ok",
				"backend": opts.Endpoint,
			})
		})
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

// NewMockBackendRouter serves only the development webhook.
func NewMockBackendRouter(reply webhook.Replier, logger zerolog.Logger) http.Handler {
	r := newBaseRouter(logger)
	webhook.New(reply, logger).RegisterRoutes(r)
	return r
}

func newBaseRouter(logger zerolog.Logger) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.Middleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:       []string{"*"},
		AllowedMethods:       []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:       []string{"Accept", "Content-Type", "X-Requested-With"},
		MaxAge:               300,
		OptionsSuccessStatus: http.StatusNoContent,
	}))

	return r
}

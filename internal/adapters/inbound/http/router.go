package http

import (
	"net/http"

	"github.com/architeacher/device-registry/internal/adapters/inbound/http/handlers"
	"github.com/architeacher/device-registry/internal/adapters/inbound/http/middleware"
	"github.com/architeacher/device-registry/internal/config"
	"github.com/architeacher/device-registry/internal/usecases"
	"github.com/architeacher/device-registry/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

const baseURL = "/api/v1"

type RouterConfig struct {
	App    *usecases.Application
	Logger logger.Logger
	Config *config.ServiceConfig
}

func NewRouter(cfg RouterConfig) http.Handler {
	router := chi.NewRouter()

	// Core middlewares - always applied
	router.Use(middleware.RequestID())
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.Recovery(cfg.Logger))
	router.Use(chimiddleware.Timeout(cfg.Config.HTTPServer.WriteTimeout))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORS([]string{"*"}))

	if cfg.Config.Telemetry.Traces.Enabled {
		router.Use(middleware.Tracer(cfg.Config.App.ServiceName))
		cfg.Logger.Info().Msg("distributed tracing enabled")
	}

	if cfg.Config.Logging.AccessLog.Enabled {
		router.Use(middleware.AccessLogger(cfg.Logger, cfg.Config.Logging.AccessLog.IncludeQueryParams))
		cfg.Logger.Info().Msg("structured access logging enabled")
	}

	handler := handlers.NewDevicesHandler(cfg.App)

	router.Get("/livez", handler.LivenessCheck)
	router.Get("/readyz", handler.ReadinessCheck)

	router.Route(baseURL, func(r chi.Router) {
		r.Route("/devices", func(r chi.Router) {
			r.Post("/", handler.CreateDevice)
			r.Get("/", handler.ListDevices)

			r.Route("/{deviceID}", func(r chi.Router) {
				r.Get("/", handler.GetDevice)
				r.Put("/", handler.UpdateDevice)
				r.Patch("/", handler.PatchDevice)
				r.Delete("/", handler.DeleteDevice)
			})
		})
	})

	return router
}

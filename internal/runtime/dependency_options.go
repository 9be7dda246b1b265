package runtime

import (
	"context"
	"fmt"
	"net/http"

	inboundHTTP "github.com/architeacher/device-registry/internal/adapters/inbound/http"
	"github.com/architeacher/device-registry/internal/adapters/repos"
	"github.com/architeacher/device-registry/internal/config"
	infraPostgres "github.com/architeacher/device-registry/internal/infrastructure/postgres"
	"github.com/architeacher/device-registry/internal/infrastructure/telemetry"
	"github.com/architeacher/device-registry/internal/services"
	"github.com/architeacher/device-registry/internal/usecases"
	"github.com/architeacher/device-registry/pkg/logger"
	"github.com/architeacher/device-registry/pkg/metrics"
	"github.com/architeacher/device-registry/pkg/metrics/noop"
)

func defaultOptions(ctx context.Context) []DependencyOption {
	return []DependencyOption{
		WithConfig(),
		WithLogger(),
		WithTracing(ctx),
		WithMetrics(ctx),
		WithDatabase(ctx),
		WithDevicesRepository(),
		WithDevicesService(),
		WithApplication(),
		WithHTTPServer(),
	}
}

func WithConfig() DependencyOption {
	return func(d *dependencies) error {
		cfg, err := config.Init()
		if err != nil {
			return fmt.Errorf("initializing configuration: %w", err)
		}

		d.config = cfg

		return nil
	}
}

func WithLogger() DependencyOption {
	return func(d *dependencies) error {
		d.infra.logger = logger.New(d.config.Logging.Level, d.config.Logging.Format)

		return nil
	}
}

func WithTracing(_ context.Context) DependencyOption {
	return func(d *dependencies) error {
		if !d.config.Telemetry.Traces.Enabled || d.config.Telemetry.OTLPEndpoint == "" {
			d.infra.tracerProvider = telemetry.NewNoopTracerProvider()

			return nil
		}

		tp, shutdown, err := telemetry.NewTracerProvider(
			d.config.Telemetry.ServiceName,
			d.config.Telemetry.ServiceVersion,
			d.config.Telemetry.OTLPEndpoint,
		)
		if err != nil {
			return fmt.Errorf("initializing tracer: %w", err)
		}

		d.infra.tracerProvider = tp
		d.infra.tracerShutdown = shutdown

		return nil
	}
}

func WithMetrics(_ context.Context) DependencyOption {
	return func(d *dependencies) error {
		if !d.config.Telemetry.Metrics.Enabled {
			d.infra.metricsClient = noop.NewMetricsClient()

			return nil
		}

		d.infra.metricsClient = metrics.NewOTelClient(d.config.App.ServiceName)

		return nil
	}
}

func WithDatabase(ctx context.Context) DependencyOption {
	return func(d *dependencies) error {
		pool, err := infraPostgres.NewPool(ctx, d.config.Database)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}

		d.infra.dbPool = pool

		return nil
	}
}

func WithDevicesRepository() DependencyOption {
	return func(d *dependencies) error {
		d.repos.deviceRepo = repos.NewDevicesRepository(d.infra.dbPool, repos.NewPgxScanner(), d.infra.logger)

		return nil
	}
}

func WithDevicesService() DependencyOption {
	return func(d *dependencies) error {
		d.devicesService = services.NewDevicesService(d.repos.deviceRepo)

		return nil
	}
}

func WithApplication() DependencyOption {
	return func(d *dependencies) error {
		d.app = usecases.NewApplication(
			d.devicesService,
			d.getDBHealthChecker(),
			d.infra.logger,
			d.infra.metricsClient,
			d.infra.tracerProvider,
		)

		return nil
	}
}

func WithHTTPServer() DependencyOption {
	return func(d *dependencies) error {
		router := inboundHTTP.NewRouter(inboundHTTP.RouterConfig{
			App:    d.app,
			Logger: d.infra.logger,
			Config: d.config,
		})

		d.infra.httpServer = &http.Server{
			Addr:         fmt.Sprintf("%s:%d", d.config.HTTPServer.Host, d.config.HTTPServer.Port),
			Handler:      router,
			ReadTimeout:  d.config.HTTPServer.ReadTimeout,
			WriteTimeout: d.config.HTTPServer.WriteTimeout,
			IdleTimeout:  d.config.HTTPServer.IdleTimeout,
		}

		return nil
	}
}

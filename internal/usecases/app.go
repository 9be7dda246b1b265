package usecases

import (
	"github.com/architeacher/device-registry/internal/ports"
	"github.com/architeacher/device-registry/internal/usecases/commands"
	"github.com/architeacher/device-registry/internal/usecases/queries"
	"github.com/architeacher/device-registry/pkg/logger"
	"github.com/architeacher/device-registry/pkg/metrics"
	otelTrace "go.opentelemetry.io/otel/trace"
)

type (
	Commands struct {
		CreateDevice commands.CreateDeviceCommandHandler
		UpdateDevice commands.UpdateDeviceCommandHandler
		PatchDevice  commands.PatchDeviceCommandHandler
		DeleteDevice commands.DeleteDeviceCommandHandler
	}

	Queries struct {
		GetDevice         queries.GetDeviceQueryHandler
		GetDevicesByBrand queries.GetDevicesByBrandQueryHandler
		ListDevices       queries.ListDevicesQueryHandler
		FetchLiveness     queries.FetchLivenessQueryHandler
		FetchReadiness    queries.FetchReadinessQueryHandler
	}

	Application struct {
		Commands Commands
		Queries  Queries
	}
)

func NewApplication(
	devicesSvc ports.DevicesService,
	dbHealthChecker ports.DatabaseHealthChecker,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) *Application {
	return &Application{
		Commands: Commands{
			CreateDevice: commands.NewCreateDeviceCommandHandler(devicesSvc, log, metricsClient, tracerProvider),
			UpdateDevice: commands.NewUpdateDeviceCommandHandler(devicesSvc, log, metricsClient, tracerProvider),
			PatchDevice:  commands.NewPatchDeviceCommandHandler(devicesSvc, log, metricsClient, tracerProvider),
			DeleteDevice: commands.NewDeleteDeviceCommandHandler(devicesSvc, log, metricsClient, tracerProvider),
		},
		Queries: Queries{
			GetDevice:         queries.NewGetDeviceQueryHandler(devicesSvc, log, metricsClient, tracerProvider),
			GetDevicesByBrand: queries.NewGetDevicesByBrandQueryHandler(devicesSvc, log, metricsClient, tracerProvider),
			ListDevices:       queries.NewListDevicesQueryHandler(devicesSvc, log, metricsClient, tracerProvider),
			FetchLiveness:     queries.NewFetchLivenessQueryHandler(log, metricsClient, tracerProvider),
			FetchReadiness:    queries.NewFetchReadinessQueryHandler(dbHealthChecker, log, metricsClient, tracerProvider),
		},
	}
}

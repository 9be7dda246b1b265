package commands

import (
	"context"

	"github.com/architeacher/device-registry/internal/domain/model"
	"github.com/architeacher/device-registry/internal/ports"
	"github.com/architeacher/device-registry/pkg/decorator"
	"github.com/architeacher/device-registry/pkg/logger"
	"github.com/architeacher/device-registry/pkg/metrics"
	otelTrace "go.opentelemetry.io/otel/trace"
)

type (
	CreateDeviceCommand struct {
		Name  string
		Brand string
		State model.State
	}

	CreateDeviceCommandHandler = decorator.CommandHandler[CreateDeviceCommand, *model.Device]

	createDeviceCommandHandler struct {
		devicesService ports.DevicesService
	}
)

func NewCreateDeviceCommandHandler(
	svc ports.DevicesService,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) CreateDeviceCommandHandler {
	return decorator.ApplyCommandDecorators[CreateDeviceCommand, *model.Device](
		createDeviceCommandHandler{devicesService: svc},
		log,
		metricsClient,
		tracerProvider,
	)
}

func (h createDeviceCommandHandler) Handle(ctx context.Context, cmd CreateDeviceCommand) (*model.Device, error) {
	return h.devicesService.CreateDevice(ctx, cmd.Name, cmd.Brand, cmd.State)
}

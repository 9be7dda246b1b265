package queries

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
	ListDevicesQuery struct {
		Filter model.DeviceFilter
	}

	ListDevicesQueryHandler = decorator.QueryHandler[ListDevicesQuery, []*model.Device]

	listDevicesQueryHandler struct {
		devicesService ports.DevicesService
	}
)

func NewListDevicesQueryHandler(
	svc ports.DevicesService,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) ListDevicesQueryHandler {
	return decorator.ApplyQueryDecorators[ListDevicesQuery, []*model.Device](
		listDevicesQueryHandler{devicesService: svc},
		log,
		metricsClient,
		tracerProvider,
	)
}

func (h listDevicesQueryHandler) Execute(ctx context.Context, query ListDevicesQuery) ([]*model.Device, error) {
	return h.devicesService.ListDevices(ctx, query.Filter)
}

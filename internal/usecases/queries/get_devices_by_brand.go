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
	GetDevicesByBrandQuery struct {
		Brand string
	}

	GetDevicesByBrandQueryHandler = decorator.QueryHandler[GetDevicesByBrandQuery, []*model.Device]

	getDevicesByBrandQueryHandler struct {
		devicesService ports.DevicesService
	}
)

func NewGetDevicesByBrandQueryHandler(
	svc ports.DevicesService,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) GetDevicesByBrandQueryHandler {
	return decorator.ApplyQueryDecorators[GetDevicesByBrandQuery, []*model.Device](
		getDevicesByBrandQueryHandler{devicesService: svc},
		log,
		metricsClient,
		tracerProvider,
	)
}

func (h getDevicesByBrandQueryHandler) Execute(ctx context.Context, query GetDevicesByBrandQuery) ([]*model.Device, error) {
	return h.devicesService.GetDevicesByBrand(ctx, query.Brand)
}

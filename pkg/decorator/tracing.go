package decorator

import (
	"context"

	"go.opentelemetry.io/otel/codes"
	otelTrace "go.opentelemetry.io/otel/trace"
)

const tracerName = "usecases"

type commandTracingDecorator[C Command, R any] struct {
	base           CommandHandler[C, R]
	tracerProvider otelTrace.TracerProvider
}

func (d commandTracingDecorator[C, R]) Handle(ctx context.Context, cmd C) (result R, err error) {
	ctx, span := d.tracerProvider.Tracer(tracerName).Start(ctx, generateActionName(cmd))
	defer span.End()

	result, err = d.base.Handle(ctx, cmd)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	return result, err
}

type queryTracingDecorator[Q Query, R Result] struct {
	base           QueryHandler[Q, R]
	tracerProvider otelTrace.TracerProvider
}

func (d queryTracingDecorator[Q, R]) Execute(ctx context.Context, query Q) (result R, err error) {
	ctx, span := d.tracerProvider.Tracer(tracerName).Start(ctx, generateActionName(query))
	defer span.End()

	result, err = d.base.Execute(ctx, query)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	return result, err
}

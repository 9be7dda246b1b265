package decorator

import (
	"context"
	"strings"
	"time"

	"github.com/architeacher/device-registry/pkg/metrics"
	"go.opentelemetry.io/otel/attribute"
)

type commandMetricsDecorator[C Command, R any] struct {
	base   CommandHandler[C, R]
	client metrics.Client
}

func (d commandMetricsDecorator[C, R]) Handle(ctx context.Context, cmd C) (result R, err error) {
	start := time.Now()
	action := strings.ToLower(generateActionName(cmd))

	defer func() {
		outcome := "success"
		if err != nil {
			outcome = "failure"
		}

		d.client.Inc(ctx, "commands_total", 1,
			attribute.String("command", action),
			attribute.String("outcome", outcome),
		)
		d.client.Inc(ctx, "commands_duration_ms", time.Since(start).Milliseconds(),
			attribute.String("command", action),
		)
	}()

	return d.base.Handle(ctx, cmd)
}

type queryMetricsDecorator[Q Query, R Result] struct {
	base   QueryHandler[Q, R]
	client metrics.Client
}

func (d queryMetricsDecorator[Q, R]) Execute(ctx context.Context, query Q) (result R, err error) {
	start := time.Now()
	action := strings.ToLower(generateActionName(query))

	defer func() {
		outcome := "success"
		if err != nil {
			outcome = "failure"
		}

		d.client.Inc(ctx, "queries_total", 1,
			attribute.String("query", action),
			attribute.String("outcome", outcome),
		)
		d.client.Inc(ctx, "queries_duration_ms", time.Since(start).Milliseconds(),
			attribute.String("query", action),
		)
	}()

	return d.base.Execute(ctx, query)
}

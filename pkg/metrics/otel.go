package metrics

import (
	"context"
	"net/http"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// OTelClient records counters through the globally registered meter
// provider. Instruments are created lazily on first use and reused.
type OTelClient struct {
	meter metric.Meter

	mu       sync.Mutex
	counters map[string]metric.Int64Counter
}

func NewOTelClient(scope string) *OTelClient {
	return &OTelClient{
		meter:    otel.Meter(scope),
		counters: make(map[string]metric.Int64Counter),
	}
}

func (c *OTelClient) Inc(ctx context.Context, key string, value any, attributes ...attribute.KeyValue) {
	counter, err := c.counter(key)
	if err != nil {
		return
	}

	counter.Add(ctx, toInt64(value), metric.WithAttributes(attributes...))
}

// Handler is a no-op for push-based OTEL exporters.
func (c *OTelClient) Handler() http.Handler {
	return http.NotFoundHandler()
}

func (c *OTelClient) Shutdown(_ context.Context) error {
	return nil
}

func (c *OTelClient) counter(key string) (metric.Int64Counter, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if counter, ok := c.counters[key]; ok {
		return counter, nil
	}

	counter, err := RegisterInt64Counter(c.meter, Descriptor{Description: key, Unit: "1"}, key)
	if err != nil {
		return nil, err
	}

	c.counters[key] = counter

	return counter, nil
}

func toInt64(value any) int64 {
	switch v := value.(type) {
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case int64:
		return v
	case uint:
		return int64(v)
	case float64:
		return int64(v)
	default:
		return 1
	}
}

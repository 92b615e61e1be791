package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config configures the metrics provider.
type Config struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	ServiceName      string
	Environment      string
}

// Metrics exposes application-level instruments.
type Metrics struct {
	translations        metric.Int64Counter
	translationFailures metric.Int64Counter
	currencyLookups     metric.Int64Counter
	clientCalls         metric.Int64Counter
}

// NewProvider configures and registers the meter provider.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (metric.MeterProvider, error) {
	if !cfg.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	exporter, err := newExporter(cfg.ExporterProtocol, cfg.ExporterEndpoint)
	if err != nil {
		return nil, err
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(10*time.Second))
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)

	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				if log != nil {
					log.Info("shutting down meter provider")
				}
				return provider.Shutdown(ctx)
			},
		})
	}

	if log != nil {
		log.Info("metrics initialized",
			zap.String("endpoint", cfg.ExporterEndpoint),
			zap.String("protocol", cfg.ExporterProtocol),
		)
	}

	return provider, nil
}

// New configures the domain metrics instruments.
func New(cfg Config, provider metric.MeterProvider) (*Metrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "playbridge"
	}
	meter := provider.Meter(name)

	translations, err := meter.Int64Counter("playbridge_translations_total")
	if err != nil {
		return nil, err
	}
	translationFailures, err := meter.Int64Counter("playbridge_translation_failures_total")
	if err != nil {
		return nil, err
	}
	currencyLookups, err := meter.Int64Counter("playbridge_currency_lookups_total")
	if err != nil {
		return nil, err
	}
	clientCalls, err := meter.Int64Counter("playbridge_billing_client_calls_total")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		translations:        translations,
		translationFailures: translationFailures,
		currencyLookups:     currencyLookups,
		clientCalls:         clientCalls,
	}, nil
}

// RecordTranslation counts a completed outbound translation.
func (m *Metrics) RecordTranslation(ctx context.Context, objectType string, count int64) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("object_type", strings.TrimSpace(objectType)))
	m.translations.Add(ctx, count, metric.WithAttributes(attrs...))
}

// RecordTranslationFailure counts a rejected translation.
func (m *Metrics) RecordTranslationFailure(ctx context.Context, objectType, reason string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(
		attribute.String("object_type", strings.TrimSpace(objectType)),
		attribute.String("reason", strings.TrimSpace(reason)),
	)
	m.translationFailures.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordCurrencyLookup counts a currency symbol lookup.
func (m *Metrics) RecordCurrencyLookup(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("outcome", strings.TrimSpace(outcome)))
	m.currencyLookups.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordClientCall counts a native billing client call by response code.
func (m *Metrics) RecordClientCall(ctx context.Context, operation string, responseCode int32) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(
		attribute.String("operation", strings.TrimSpace(operation)),
		attribute.Int("response_code", int(responseCode)),
	)
	m.clientCalls.Add(ctx, 1, metric.WithAttributes(attrs...))
}

func newExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	protocol = strings.ToLower(strings.TrimSpace(protocol))
	switch protocol {
	case "http", "http/protobuf":
		opts := []otlpmetrichttp.Option{}
		if endpoint != "" {
			opts = append(opts, otlpmetrichttp.WithEndpoint(endpoint))
		}
		return otlpmetrichttp.New(context.Background(), opts...)
	case "grpc", "grpc/protobuf", "":
		opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithInsecure()}
		if endpoint != "" {
			opts = append(opts, otlpmetricgrpc.WithEndpoint(endpoint))
		}
		return otlpmetricgrpc.New(context.Background(), opts...)
	default:
		return nil, fmt.Errorf("unsupported OTLP protocol %q", protocol)
	}
}

var allowedLabelKeys = map[attribute.Key]struct{}{
	"object_type":   {},
	"product_type":  {},
	"operation":     {},
	"response_code": {},
	"outcome":       {},
	"reason":        {},
	"endpoint":      {},
	"status_code":   {},
}

// FilterAttributes strips disallowed labels to keep metrics low-cardinality;
// product ids and tokens never become metric labels.
func FilterAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	filtered := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		if _, ok := allowedLabelKeys[attr.Key]; !ok {
			continue
		}
		filtered = append(filtered, attr)
	}
	return filtered
}

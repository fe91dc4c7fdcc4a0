package observability

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fairyhunter13/resume-fit-scorer/internal/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

// Resource attribute keys describing the embedding backend behind the
// scorer, so traces from different providers can be told apart.
const (
	AttrEmbeddingsProvider = attribute.Key("embeddings.provider")
	AttrEmbeddingsModel    = attribute.Key("embeddings.model")
	AttrEmbedCacheEnabled  = attribute.Key("embeddings.cache.enabled")
)

// SetupTracing exports spans over OTLP/gRPC when an endpoint is configured.
// Returns the provider's shutdown func, or nil when tracing is disabled.
func SetupTracing(cfg config.Config) (func(context.Context) error, error) {
	if cfg.OTLPEndpoint == "" {
		slog.Info("OTLP endpoint not set; tracing disabled")
		return nil, nil
	}

	exporter, err := otlptracegrpc.New(context.Background(), otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint), otlptracegrpc.WithInsecure())
	if err != nil {
		return nil, fmt.Errorf("op=tracing.exporter: %w", err)
	}

	res, err := tracingResource(cfg)
	if err != nil {
		return nil, fmt.Errorf("op=tracing.resource: %w", err)
	}

	ratio := samplingRatio(cfg)
	slog.Info("tracing configured",
		slog.String("endpoint", cfg.OTLPEndpoint),
		slog.String("embeddings_provider", cfg.Provider()),
		slog.Float64("sampling_ratio", ratio))

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(res),
		trace.WithSampler(trace.ParentBased(trace.TraceIDRatioBased(ratio))),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	return tp.Shutdown, nil
}

// tracingResource names the service, its environment and the embedding
// backend it scores with.
func tracingResource(cfg config.Config) (*resource.Resource, error) {
	return resource.New(context.Background(), resource.WithAttributes(
		semconv.ServiceNameKey.String(cfg.OTELServiceName),
		semconv.DeploymentEnvironmentKey.String(cfg.AppEnv),
		AttrEmbeddingsProvider.String(cfg.Provider()),
		AttrEmbeddingsModel.String(cfg.EmbeddingsModel),
		AttrEmbedCacheEnabled.Bool(cfg.EmbedCacheSize > 0),
	))
}

// samplingRatio keeps every trace outside prod and a tenth in prod.
func samplingRatio(cfg config.Config) float64 {
	if cfg.IsProd() {
		return 0.1
	}
	return 1.0
}

package tracing

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/cloud-ru/loan-engine-go/internal/config"
)

var Tracer trace.Tracer = otel.Tracer("loan-engine")

// InitTracing инициализирует OpenTelemetry трейсинг и возвращает функцию остановки
func InitTracing(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (func(context.Context) error, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(cfg.OTELServiceName),
			semconv.ServiceVersionKey.String("1.0.0"),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	var exporter sdktrace.SpanExporter

	if cfg.OTELEndpoint != "" {
		exporter, err = otlptracehttp.New(ctx,
			otlptracehttp.WithEndpoint(cfg.OTELEndpoint),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
		}
		log.WithField("endpoint", cfg.OTELEndpoint).Info("OpenTelemetry настроен для OTLP экспорта")
	} else {
		// без OTEL_ENDPOINT спаны никуда не отправляются
		log.Info("OpenTelemetry настроен без экспорта (задайте OTEL_ENDPOINT)")
		exporter = &noopExporter{}
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	Tracer = otel.Tracer(cfg.OTELServiceName)

	log.Info("OpenTelemetry инициализирован")
	return tp.Shutdown, nil
}

// noopExporter - пустой экспортер для локальной разработки
type noopExporter struct{}

func (e *noopExporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	return nil
}

func (e *noopExporter) Shutdown(ctx context.Context) error {
	return nil
}

// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package navigator

import (
	"context"
	"fmt"
	"io"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// scopeName identifies this instrumentation library to OpenTelemetry.
const scopeName = "rivaas.dev/navigator"

// OTelRecorder is a NavigationRecorder backed by OpenTelemetry. Each
// navigation gets one span covering the whole render, plus counters and a
// duration histogram labeled by route pattern and outcome.
//
// The zero configuration uses the global OpenTelemetry providers, so an
// application that already wires OTel gets navigation telemetry for free:
//
//	rec, err := navigator.NewOTelRecorder()
//	r := navigator.MustNew(navigator.WithObservability(rec))
type OTelRecorder struct {
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
	registry       *promclient.Registry
	stdoutWriter   io.Writer

	tracer trace.Tracer

	navigations metric.Int64Counter
	failures    metric.Int64Counter
	duration    metric.Float64Histogram
	active      metric.Int64UpDownCounter
}

// OTelOption configures an OTelRecorder.
type OTelOption func(*OTelRecorder)

// WithTracerProvider sets a custom tracer provider. Default: the global
// provider.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(rec *OTelRecorder) {
		rec.tracerProvider = tp
	}
}

// WithMeterProvider sets a custom meter provider. Default: the global
// provider.
func WithMeterProvider(mp metric.MeterProvider) OTelOption {
	return func(rec *OTelRecorder) {
		rec.meterProvider = mp
	}
}

// WithPrometheusRegistry builds a meter provider that exports into the
// given Prometheus registry. It overrides WithMeterProvider.
func WithPrometheusRegistry(reg *promclient.Registry) OTelOption {
	return func(rec *OTelRecorder) {
		rec.registry = reg
	}
}

// WithStdoutExporters builds stdout trace and metric providers writing to
// w, useful for examples and local debugging. It overrides the provider
// options.
func WithStdoutExporters(w io.Writer) OTelOption {
	return func(rec *OTelRecorder) {
		rec.stdoutWriter = w
	}
}

// NewOTelRecorder creates an OpenTelemetry-backed navigation recorder.
func NewOTelRecorder(opts ...OTelOption) (*OTelRecorder, error) {
	rec := &OTelRecorder{}
	for _, opt := range opts {
		opt(rec)
	}

	if err := rec.initializeProviders(); err != nil {
		return nil, err
	}

	rec.tracer = rec.tracerProvider.Tracer(scopeName)

	return rec, rec.initializeInstruments()
}

func (rec *OTelRecorder) initializeProviders() error {
	if rec.stdoutWriter != nil {
		traceExp, err := stdouttrace.New(stdouttrace.WithWriter(rec.stdoutWriter))
		if err != nil {
			return fmt.Errorf("failed to create stdout trace exporter: %w", err)
		}
		metricExp, err := stdoutmetric.New(stdoutmetric.WithWriter(rec.stdoutWriter))
		if err != nil {
			return fmt.Errorf("failed to create stdout metric exporter: %w", err)
		}
		rec.tracerProvider = sdktrace.NewTracerProvider(sdktrace.WithBatcher(traceExp))
		rec.meterProvider = sdkmetric.NewMeterProvider(
			sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExp)),
		)
	}

	if rec.registry != nil {
		exporter, err := prometheus.New(prometheus.WithRegisterer(rec.registry))
		if err != nil {
			return fmt.Errorf("failed to create Prometheus exporter: %w", err)
		}
		rec.meterProvider = sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	}

	if rec.tracerProvider == nil {
		rec.tracerProvider = otel.GetTracerProvider()
	}
	if rec.meterProvider == nil {
		rec.meterProvider = otel.GetMeterProvider()
	}

	return nil
}

func (rec *OTelRecorder) initializeInstruments() error {
	meter := rec.meterProvider.Meter(scopeName)

	var err error
	if rec.navigations, err = meter.Int64Counter(
		"navigator.navigations.total",
		metric.WithDescription("Total settled navigations by outcome"),
	); err != nil {
		return fmt.Errorf("failed to create navigations counter: %w", err)
	}
	if rec.failures, err = meter.Int64Counter(
		"navigator.navigation.errors.total",
		metric.WithDescription("Total terminally failed navigations"),
	); err != nil {
		return fmt.Errorf("failed to create errors counter: %w", err)
	}
	if rec.duration, err = meter.Float64Histogram(
		"navigator.navigation.duration.seconds",
		metric.WithDescription("Navigation duration from request to settle"),
		metric.WithUnit("s"),
	); err != nil {
		return fmt.Errorf("failed to create duration histogram: %w", err)
	}
	if rec.active, err = meter.Int64UpDownCounter(
		"navigator.navigations.active",
		metric.WithDescription("Navigations currently in flight"),
	); err != nil {
		return fmt.Errorf("failed to create active counter: %w", err)
	}

	return nil
}

// navState carries per-navigation recorder state between start and end.
type navState struct {
	span  trace.Span
	start time.Time
}

// OnNavigationStart implements NavigationRecorder. The returned context
// carries the navigation span, so actions and lifecycle callbacks can
// attach child spans.
func (rec *OTelRecorder) OnNavigationStart(ctx context.Context, loc *Location) (context.Context, any) {
	ctx, span := rec.tracer.Start(ctx, "navigator.render",
		trace.WithAttributes(attribute.String("navigation.pathname", loc.Pathname)),
	)
	rec.active.Add(ctx, 1)

	return ctx, &navState{span: span, start: time.Now()}
}

// OnNavigationEnd implements NavigationRecorder.
func (rec *OTelRecorder) OnNavigationEnd(ctx context.Context, state any, outcome Outcome) {
	st, ok := state.(*navState)
	if !ok {
		return
	}

	pattern := outcome.RoutePattern
	if pattern == "" {
		pattern = "unmatched"
	}

	attrs := metric.WithAttributes(
		attribute.String("navigation.route", pattern),
		attribute.String("navigation.outcome", outcomeLabel(outcome)),
	)

	rec.active.Add(ctx, -1)
	rec.navigations.Add(ctx, 1, attrs)
	rec.duration.Record(ctx, outcome.Duration.Seconds(), attrs)

	st.span.SetAttributes(attribute.String("navigation.route", pattern))
	switch {
	case outcome.Err != nil:
		rec.failures.Add(ctx, 1, attrs)
		st.span.RecordError(outcome.Err)
		st.span.SetStatus(codes.Error, outcome.Err.Error())
	case outcome.Superseded:
		st.span.AddEvent("superseded")
	case outcome.Prevented:
		st.span.AddEvent("prevented")
	default:
		st.span.SetStatus(codes.Ok, "")
	}
	st.span.End()
}

// outcomeLabel maps an outcome to its bounded-cardinality metric label.
func outcomeLabel(outcome Outcome) string {
	switch {
	case outcome.Err != nil:
		return "failed"
	case outcome.Superseded:
		return "superseded"
	case outcome.Prevented:
		return "prevented"
	default:
		return "committed"
	}
}

package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/loginauth/logger"
)

// InitMeter installs the global meter provider when metrics are enabled.
func InitMeter(ctx context.Context, cfg MetricsConfig, res Resource, log *logger.Logger) (ShutdownFunc, error) {
	if !cfg.Enabled {
		return noopShutdown, nil
	}

	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	r, err := newResource(res)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if cfg.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.Interval))
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(r),
	)
	otel.SetMeterProvider(mp)

	if log != nil {
		log.Info("Meter initialized", logger.Fields(
			"endpoint", cfg.Endpoint,
			"interval", cfg.Interval.String(),
		))
	}
	return mp.Shutdown, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the authentication instruments. A nil *Metrics records nothing.
type Metrics struct {
	authentications metric.Int64Counter
	logins          metric.Int64Counter
	registrations   metric.Int64Counter
}

// NewMetrics creates the instruments on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	authentications, err := meter.Int64Counter("auth.authentications",
		metric.WithDescription("Requests seen by the authentication filter, by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating auth.authentications counter: %w", err)
	}
	logins, err := meter.Int64Counter("auth.logins",
		metric.WithDescription("Login attempts, by result"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating auth.logins counter: %w", err)
	}
	registrations, err := meter.Int64Counter("auth.registrations",
		metric.WithDescription("Registration attempts, by result"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating auth.registrations counter: %w", err)
	}
	return &Metrics{
		authentications: authentications,
		logins:          logins,
		registrations:   registrations,
	}, nil
}

// RecordAuthentication counts one filter pass with its outcome, e.g.
// "authenticated", "anonymous" or "rejected".
func (m *Metrics) RecordAuthentication(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.authentications.Add(ctx, 1, metric.WithAttributes(AttrOutcome.String(outcome)))
}

// RecordLogin counts one login attempt.
func (m *Metrics) RecordLogin(ctx context.Context, result string) {
	if m == nil {
		return
	}
	m.logins.Add(ctx, 1, metric.WithAttributes(AttrOutcome.String(result)))
}

// RecordRegistration counts one registration attempt.
func (m *Metrics) RecordRegistration(ctx context.Context, result string) {
	if m == nil {
		return
	}
	m.registrations.Add(ctx, 1, metric.WithAttributes(AttrOutcome.String(result)))
}

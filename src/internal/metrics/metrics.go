package metrics

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/api-sage/ledger"

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Recorder holds the ledger instruments. A nil *Recorder records nothing.
type Recorder struct {
	transfers    metric.Int64Counter
	accountOps   metric.Int64Counter
	httpDuration metric.Float64Histogram
}

func New(provider metric.MeterProvider) (*Recorder, error) {
	meter := provider.Meter(meterName)

	transfers, err := meter.Int64Counter(
		"ledger.transfers",
		metric.WithDescription("Transfers attempted, by outcome and rejection reason"),
	)
	if err != nil {
		return nil, fmt.Errorf("create transfers counter: %w", err)
	}

	accountOps, err := meter.Int64Counter(
		"ledger.account.operations",
		metric.WithDescription("Account operations, by operation and outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("create account operations counter: %w", err)
	}

	httpDuration, err := meter.Float64Histogram(
		"ledger.http.server.duration",
		metric.WithDescription("HTTP request duration"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("create http duration histogram: %w", err)
	}

	return &Recorder{
		transfers:    transfers,
		accountOps:   accountOps,
		httpDuration: httpDuration,
	}, nil
}

// Transfer counts a transfer attempt. reason is empty on success.
func (r *Recorder) Transfer(ctx context.Context, outcome string, reason string) {
	if r == nil {
		return
	}

	attrs := []attribute.KeyValue{attribute.String("outcome", outcome)}
	if reason != "" {
		attrs = append(attrs, attribute.String("reason", reason))
	}

	r.transfers.Add(ctx, 1, metric.WithAttributes(attrs...))
}

func (r *Recorder) AccountOperation(ctx context.Context, operation string, outcome string) {
	if r == nil {
		return
	}

	r.accountOps.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	))
}

func (r *Recorder) HTTPRequest(ctx context.Context, method string, route string, status int, elapsed time.Duration) {
	if r == nil {
		return
	}

	r.httpDuration.Record(ctx, float64(elapsed.Microseconds())/1000, metric.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("http.route", route),
		attribute.String("http.status_code", strconv.Itoa(status)),
	))
}

// Package telemetry exposes the service's OpenTelemetry instruments.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/psspowers/underwriting/internal/domain/valueobject"
)

const meterName = "github.com/psspowers/underwriting"

// Score histogram buckets line up with the verdict tier boundaries.
var scoreBuckets = []float64{15, 30, 45, 55, 65, 75, 85, 100}

// AssessmentMetrics implements port.AssessmentRecorder.
type AssessmentMetrics struct {
	assessments metric.Int64Counter
	scores      metric.Int64Histogram
}

// NewAssessmentMetrics registers the instruments on the provider's meter.
func NewAssessmentMetrics(provider metric.MeterProvider) (*AssessmentMetrics, error) {
	meter := provider.Meter(meterName)

	assessments, err := meter.Int64Counter("underwriting_assessments",
		metric.WithDescription("Recorded scrutiny assessments by verdict tier."),
	)
	if err != nil {
		return nil, fmt.Errorf("telemetry: assessments counter: %w", err)
	}

	scores, err := meter.Int64Histogram("underwriting_bankability_score",
		metric.WithDescription("Bankability score of recorded assessments."),
		metric.WithExplicitBucketBoundaries(scoreBuckets...),
	)
	if err != nil {
		return nil, fmt.Errorf("telemetry: score histogram: %w", err)
	}

	return &AssessmentMetrics{assessments: assessments, scores: scores}, nil
}

// RecordAssessment counts one assessment and observes its score.
func (m *AssessmentMetrics) RecordAssessment(ctx context.Context, tier valueobject.VerdictTier, score int) {
	attrs := metric.WithAttributes(attribute.String("tier", tier.String()))
	m.assessments.Add(ctx, 1, attrs)
	m.scores.Record(ctx, int64(score), attrs)
}

package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/psspowers/underwriting/internal/domain/valueobject"
	"github.com/psspowers/underwriting/internal/infrastructure/telemetry"
)

func TestAssessmentMetrics_RecordAssessment(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	m, err := telemetry.NewAssessmentMetrics(provider)
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordAssessment(ctx, valueobject.VerdictPrime, 100)
	m.RecordAssessment(ctx, valueobject.VerdictPrime, 90)
	m.RecordAssessment(ctx, valueobject.VerdictHighRisk, 15)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.Len(t, rm.ScopeMetrics, 1)

	byName := map[string]metricdata.Metrics{}
	for _, mt := range rm.ScopeMetrics[0].Metrics {
		byName[mt.Name] = mt
	}

	counter, ok := byName["underwriting_assessments"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	counts := map[string]int64{}
	for _, dp := range counter.DataPoints {
		tier, _ := dp.Attributes.Value(attribute.Key("tier"))
		counts[tier.AsString()] = dp.Value
	}
	assert.Equal(t, map[string]int64{"PRIME": 2, "HIGH_RISK": 1}, counts)

	hist, ok := byName["underwriting_bankability_score"].Data.(metricdata.Histogram[int64])
	require.True(t, ok)
	var total uint64
	var sum int64
	for _, dp := range hist.DataPoints {
		total += dp.Count
		sum += dp.Sum
	}
	assert.EqualValues(t, 3, total)
	assert.EqualValues(t, 205, sum)
}

package kafka_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psspowers/underwriting/internal/application/dto"
	"github.com/psspowers/underwriting/internal/application/usecase"
	"github.com/psspowers/underwriting/internal/domain/event"
	"github.com/psspowers/underwriting/internal/domain/valueobject"
	"github.com/psspowers/underwriting/internal/infrastructure/kafka"
	pkgkafka "github.com/psspowers/underwriting/pkg/kafka"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockProducer struct {
	topic    string
	messages []pkgkafka.Message
	err      error
	calls    int
}

func (m *mockProducer) Publish(_ context.Context, topic string, messages ...pkgkafka.Message) error {
	m.calls++
	if m.err != nil {
		return m.err
	}
	m.topic = topic
	m.messages = append(m.messages, messages...)
	return nil
}

func TestEventPublisher_Publish(t *testing.T) {
	producer := &mockProducer{}
	pub := kafka.NewEventPublisher(producer, "underwriting.events", testLogger())

	at := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	completed := event.NewAssessmentCompleted("a-1", "ACCOUNT", "acc-1",
		"Technology & Telecom", "Data centers & cloud", "Hyperscale", 100, "PRIME", "user-1", at)
	changed := event.NewClassificationChanged("ACCOUNT", "acc-1", "sector", "Energy & Utilities", "", "", "user-1", at)

	require.NoError(t, pub.Publish(context.Background(), completed, changed))

	assert.Equal(t, "underwriting.events", producer.topic)
	require.Len(t, producer.messages, 2)

	first := producer.messages[0]
	assert.Equal(t, "ACCOUNT/acc-1", string(first.Key))
	assert.Equal(t, event.TypeAssessmentCompleted, first.Headers["event_type"])
	assert.Equal(t, completed.EventID(), first.Headers["event_id"])
	assert.Equal(t, event.AggregateRecord, first.Headers["aggregate_type"])
	assert.Equal(t, "2026-04-01T09:00:00Z", first.Headers["occurred_at"])

	var payload map[string]any
	require.NoError(t, json.Unmarshal(first.Value, &payload))
	assert.Equal(t, "a-1", payload["assessment_id"])
	assert.Equal(t, "acc-1", payload["record_id"])
	assert.Equal(t, "PRIME", payload["tier"])
	assert.EqualValues(t, 100, payload["score"])

	// Both events about acc-1 land on the same partition.
	assert.Equal(t, string(first.Key), string(producer.messages[1].Key))
	assert.Equal(t, event.TypeClassificationChanged, producer.messages[1].Headers["event_type"])
}

func TestEventPublisher_NoEvents(t *testing.T) {
	producer := &mockProducer{}
	pub := kafka.NewEventPublisher(producer, "underwriting.events", testLogger())

	require.NoError(t, pub.Publish(context.Background()))
	assert.Zero(t, producer.calls)
}

func TestEventPublisher_ProducerError(t *testing.T) {
	producer := &mockProducer{err: errors.New("broker down")}
	pub := kafka.NewEventPublisher(producer, "underwriting.events", testLogger())

	err := pub.Publish(context.Background(),
		event.NewAssessmentCompleted("a-1", "ACCOUNT", "acc-1", "", "", "", 55, "SPECULATIVE", "", time.Time{}))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "underwriting.events")
	assert.Contains(t, err.Error(), "broker down")
}

type mockRescorer struct {
	got      []dto.RecordClassified
	rescored bool
	err      error
}

func (m *mockRescorer) Execute(_ context.Context, msg dto.RecordClassified) (dto.AssessmentResponse, bool, error) {
	m.got = append(m.got, msg)
	if m.err != nil {
		return dto.AssessmentResponse{}, false, m.err
	}
	return dto.AssessmentResponse{ID: "a-2", Result: dto.ScrutinyResult{Tier: "BANKABLE"}}, m.rescored, nil
}

func TestRecordsHandler_Handle(t *testing.T) {
	value := []byte(`{"record_type":"OPPORTUNITY","record_id":"opp-1","sector":"Agriculture & Agribusiness","industry":"Agri processing","sub_industry":"Sugar mills"}`)

	tests := []struct {
		name      string
		value     []byte
		rescorer  *mockRescorer
		wantErr   bool
		wantCalls int
	}{
		{"rescored", value, &mockRescorer{rescored: true}, false, 1},
		{"never assessed", value, &mockRescorer{}, false, 1},
		{"malformed json is dropped", []byte(`{not json`), &mockRescorer{}, false, 0},
		{"invalid request is dropped", value, &mockRescorer{err: fmt.Errorf("%w: record_id is required", usecase.ErrInvalidRequest)}, false, 1},
		{"unknown record type is dropped", value, &mockRescorer{err: fmt.Errorf("record type %q: %w", "LEAD", valueobject.ErrUnknownValue)}, false, 1},
		{"transient failure is retried", value, &mockRescorer{err: errors.New("connection reset")}, true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := kafka.NewRecordsHandler(tt.rescorer, testLogger())

			err := h.Handle(context.Background(), pkgkafka.Message{Key: []byte("opp-1"), Value: tt.value})

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			require.Len(t, tt.rescorer.got, tt.wantCalls)
			if tt.wantCalls > 0 {
				assert.Equal(t, dto.RecordClassified{
					RecordType:  "OPPORTUNITY",
					RecordID:    "opp-1",
					Sector:      "Agriculture & Agribusiness",
					Industry:    "Agri processing",
					SubIndustry: "Sugar mills",
				}, tt.rescorer.got[0])
			}
		})
	}
}

package usecase_test

import (
	"context"
	"log/slog"
	"os"
	"sort"

	"github.com/psspowers/underwriting/internal/application/usecase"
	"github.com/psspowers/underwriting/internal/domain/event"
	"github.com/psspowers/underwriting/internal/domain/model"
	"github.com/psspowers/underwriting/internal/domain/port"
	"github.com/psspowers/underwriting/internal/domain/service"
	"github.com/psspowers/underwriting/internal/domain/taxonomy"
	"github.com/psspowers/underwriting/internal/domain/valueobject"
)

// --- Mock implementations ---

type recordKey struct {
	recordType string
	recordID   string
}

type mockAssessmentRepository struct {
	saved   []model.Assessment
	saveErr error
	findErr error
}

func (m *mockAssessmentRepository) Save(_ context.Context, a model.Assessment) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, a)
	return nil
}

func (m *mockAssessmentRepository) FindByID(_ context.Context, id string) (model.Assessment, error) {
	if m.findErr != nil {
		return model.Assessment{}, m.findErr
	}
	for _, a := range m.saved {
		if a.ID() == id {
			return a, nil
		}
	}
	return model.Assessment{}, port.ErrAssessmentNotFound
}

func (m *mockAssessmentRepository) ListByRecord(_ context.Context, rt valueobject.RecordType, recordID string, limit int) ([]model.Assessment, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	var out []model.Assessment
	for _, a := range m.saved {
		if a.RecordType().Equal(rt) && a.RecordID() == recordID {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt().After(out[j].CreatedAt()) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockAssessmentRepository) LatestByRecord(ctx context.Context, rt valueobject.RecordType, recordID string) (model.Assessment, error) {
	list, err := m.ListByRecord(ctx, rt, recordID, 1)
	if err != nil {
		return model.Assessment{}, err
	}
	if len(list) == 0 {
		return model.Assessment{}, port.ErrAssessmentNotFound
	}
	return list[0], nil
}

type mockClassificationStore struct {
	records map[recordKey]valueobject.Classification
	getErr  error
	putErr  error
	puts    int
}

func newMockClassificationStore() *mockClassificationStore {
	return &mockClassificationStore{records: make(map[recordKey]valueobject.Classification)}
}

func (m *mockClassificationStore) Get(_ context.Context, rt valueobject.RecordType, recordID string) (valueobject.Classification, error) {
	if m.getErr != nil {
		return valueobject.Classification{}, m.getErr
	}
	c, ok := m.records[recordKey{rt.String(), recordID}]
	if !ok {
		return valueobject.Classification{}, port.ErrClassificationNotFound
	}
	return c, nil
}

func (m *mockClassificationStore) Put(_ context.Context, rt valueobject.RecordType, recordID string, c valueobject.Classification) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.puts++
	m.records[recordKey{rt.String(), recordID}] = c
	return nil
}

type mockEventPublisher struct {
	publishedEvents []event.DomainEvent
	publishErr      error
}

func (m *mockEventPublisher) Publish(_ context.Context, events ...event.DomainEvent) error {
	if m.publishErr != nil {
		return m.publishErr
	}
	m.publishedEvents = append(m.publishedEvents, events...)
	return nil
}

type recordedAssessment struct {
	tier  string
	score int
}

type mockAssessmentRecorder struct {
	recorded []recordedAssessment
}

func (m *mockAssessmentRecorder) RecordAssessment(_ context.Context, tier valueobject.VerdictTier, score int) {
	m.recorded = append(m.recorded, recordedAssessment{tier: tier.String(), score: score})
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testScorer() *usecase.ScoreScrutinyUseCase {
	return usecase.NewScoreScrutinyUseCase(
		service.NewScrutinyEngine(taxonomy.Default(), service.NewVerdictClassifier()),
		service.NewVerdictClassifier(),
	)
}

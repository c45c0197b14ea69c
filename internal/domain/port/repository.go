package port

import (
	"context"
	"errors"

	"github.com/psspowers/underwriting/internal/domain/event"
	"github.com/psspowers/underwriting/internal/domain/model"
	"github.com/psspowers/underwriting/internal/domain/valueobject"
)

var (
	// ErrAssessmentNotFound is returned when no assessment has the requested ID.
	ErrAssessmentNotFound = errors.New("assessment not found")
	// ErrClassificationNotFound is returned when a record has never been classified.
	ErrClassificationNotFound = errors.New("classification not found")
)

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// AssessmentRepository stores assessments append-only.
type AssessmentRepository interface {
	Save(ctx context.Context, a model.Assessment) error
	FindByID(ctx context.Context, id string) (model.Assessment, error)
	// ListByRecord returns a record's assessments, newest first.
	ListByRecord(ctx context.Context, recordType valueobject.RecordType, recordID string, limit int) ([]model.Assessment, error)
	// LatestByRecord returns ErrAssessmentNotFound when the record was never assessed.
	LatestByRecord(ctx context.Context, recordType valueobject.RecordType, recordID string) (model.Assessment, error)
}

// ClassificationStore holds the current classification of each CRM record.
type ClassificationStore interface {
	Get(ctx context.Context, recordType valueobject.RecordType, recordID string) (valueobject.Classification, error)
	Put(ctx context.Context, recordType valueobject.RecordType, recordID string, c valueobject.Classification) error
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}

// ---------------------------------------------------------------------------
// Metrics port
// ---------------------------------------------------------------------------

// AssessmentRecorder observes completed assessments for metrics.
type AssessmentRecorder interface {
	RecordAssessment(ctx context.Context, tier valueobject.VerdictTier, score int)
}

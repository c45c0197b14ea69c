package event

import (
	"time"

	"github.com/psspowers/underwriting/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

const (
	TypeAssessmentCompleted   = "underwriting.assessment.completed"
	TypeClassificationChanged = "underwriting.classification.changed"

	AggregateRecord = "Record"
)

// RecordAggregateID is the aggregate ID, and so the partition key, of every
// event about one CRM record.
func RecordAggregateID(recordType, recordID string) string {
	return recordType + "/" + recordID
}

// AssessmentCompleted is raised when a scrutiny assessment is recorded
// against a CRM record. It shares the record's aggregate ID with
// ClassificationChanged.
type AssessmentCompleted struct {
	events.BaseEvent
	AssessmentID string `json:"assessment_id"`
	RecordType   string `json:"record_type"`
	RecordID     string `json:"record_id"`
	Sector       string `json:"sector,omitempty"`
	Industry     string `json:"industry,omitempty"`
	SubIndustry  string `json:"sub_industry,omitempty"`
	Score        int    `json:"score"`
	Tier         string `json:"tier"`
	AssessedBy   string `json:"assessed_by,omitempty"`
}

func NewAssessmentCompleted(
	assessmentID, recordType, recordID string,
	sector, industry, subIndustry string,
	score int, tier, assessedBy string,
	at time.Time,
) AssessmentCompleted {
	return AssessmentCompleted{
		BaseEvent:    events.NewBaseEvent(TypeAssessmentCompleted, RecordAggregateID(recordType, recordID), AggregateRecord, at),
		AssessmentID: assessmentID,
		RecordType:   recordType,
		RecordID:     recordID,
		Sector:       sector,
		Industry:     industry,
		SubIndustry:  subIndustry,
		Score:        score,
		Tier:         tier,
		AssessedBy:   assessedBy,
	}
}

// ClassificationChanged is raised when a record's taxonomy classification is
// written back.
type ClassificationChanged struct {
	events.BaseEvent
	RecordType  string `json:"record_type"`
	RecordID    string `json:"record_id"`
	Level       string `json:"level"`
	Sector      string `json:"sector"`
	Industry    string `json:"industry"`
	SubIndustry string `json:"sub_industry"`
	ChangedBy   string `json:"changed_by,omitempty"`
}

func NewClassificationChanged(
	recordType, recordID, level string,
	sector, industry, subIndustry string,
	changedBy string,
	at time.Time,
) ClassificationChanged {
	return ClassificationChanged{
		BaseEvent:   events.NewBaseEvent(TypeClassificationChanged, RecordAggregateID(recordType, recordID), AggregateRecord, at),
		RecordType:  recordType,
		RecordID:    recordID,
		Level:       level,
		Sector:      sector,
		Industry:    industry,
		SubIndustry: subIndustry,
		ChangedBy:   changedBy,
	}
}

package model

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/psspowers/underwriting/internal/domain/event"
	"github.com/psspowers/underwriting/internal/domain/service"
	"github.com/psspowers/underwriting/internal/domain/valueobject"
	"github.com/psspowers/underwriting/pkg/events"
	"github.com/psspowers/underwriting/pkg/money"
)

// ---------------------------------------------------------------------------
// Assessment aggregate root
// ---------------------------------------------------------------------------

// Assessment is the immutable record of one scrutiny run against a CRM record.
// Assessments are append-only: a rescoring produces a new Assessment rather
// than changing an old one.
type Assessment struct {
	id             string
	recordType     valueobject.RecordType
	recordID       string
	classification valueobject.Classification
	inputs         service.ScrutinyInputs
	result         service.ScrutinyResult
	monthlyBilling money.Money
	deposit        money.Money
	hasBilling     bool
	assessedBy     string
	createdAt      time.Time
	events         events.EventCollector
}

// Billing is the optional monthly billing figure the deposit was sized from.
type Billing struct {
	Monthly money.Money
	Deposit money.Money
}

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

// NewAssessment records a completed scoring run and raises AssessmentCompleted.
// billing may be nil when no monthly billing figure was supplied.
func NewAssessment(
	recordType valueobject.RecordType,
	recordID string,
	classification valueobject.Classification,
	inputs service.ScrutinyInputs,
	result service.ScrutinyResult,
	billing *Billing,
	assessedBy string,
	now time.Time,
) (Assessment, error) {
	if recordType.IsZero() {
		return Assessment{}, errors.New("record type is required")
	}
	if recordID == "" {
		return Assessment{}, errors.New("record ID is required")
	}
	if result.Verdict.Tier.IsZero() {
		return Assessment{}, errors.New("scrutiny result has no verdict")
	}

	a := Assessment{
		id:             uuid.New().String(),
		recordType:     recordType,
		recordID:       recordID,
		classification: classification,
		inputs:         inputs,
		result:         result,
		assessedBy:     assessedBy,
		createdAt:      now.UTC(),
	}
	if billing != nil {
		a.monthlyBilling = billing.Monthly
		a.deposit = billing.Deposit
		a.hasBilling = true
	}

	a.events.Record(event.NewAssessmentCompleted(
		a.id, recordType.String(), recordID,
		classification.Sector, classification.Industry, classification.SubIndustry,
		result.Score, result.Tier().String(), assessedBy,
		a.createdAt,
	))
	return a, nil
}

// ReconstructAssessment rebuilds an aggregate from persistence without side-effects.
func ReconstructAssessment(
	id string,
	recordType valueobject.RecordType,
	recordID string,
	classification valueobject.Classification,
	inputs service.ScrutinyInputs,
	result service.ScrutinyResult,
	billing *Billing,
	assessedBy string,
	createdAt time.Time,
) Assessment {
	a := Assessment{
		id:             id,
		recordType:     recordType,
		recordID:       recordID,
		classification: classification,
		inputs:         inputs,
		result:         result,
		assessedBy:     assessedBy,
		createdAt:      createdAt,
	}
	if billing != nil {
		a.monthlyBilling = billing.Monthly
		a.deposit = billing.Deposit
		a.hasBilling = true
	}
	return a
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (a Assessment) ID() string                                 { return a.id }
func (a Assessment) RecordType() valueobject.RecordType         { return a.recordType }
func (a Assessment) RecordID() string                           { return a.recordID }
func (a Assessment) Classification() valueobject.Classification { return a.classification }
func (a Assessment) Inputs() service.ScrutinyInputs             { return a.inputs }
func (a Assessment) Result() service.ScrutinyResult             { return a.result }
func (a Assessment) Score() int                                 { return a.result.Score }
func (a Assessment) Tier() valueobject.VerdictTier              { return a.result.Tier() }
func (a Assessment) AssessedBy() string                         { return a.assessedBy }
func (a Assessment) CreatedAt() time.Time                       { return a.createdAt }

// Billing returns the monthly billing and sized deposit, if billing was supplied.
func (a Assessment) Billing() (Billing, bool) {
	if !a.hasBilling {
		return Billing{}, false
	}
	return Billing{Monthly: a.monthlyBilling, Deposit: a.deposit}, true
}

// DomainEvents returns the events raised while building the assessment.
func (a Assessment) DomainEvents() []event.DomainEvent { return a.events.Events() }

// ClearEvents returns a copy with an empty event list (call after publishing).
func (a Assessment) ClearEvents() Assessment {
	next := a
	next.events = events.EventCollector{}
	return next
}

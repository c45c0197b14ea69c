package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/psspowers/underwriting/internal/application/dto"
	"github.com/psspowers/underwriting/internal/domain/model"
	"github.com/psspowers/underwriting/internal/domain/port"
	"github.com/psspowers/underwriting/internal/domain/valueobject"
	"github.com/psspowers/underwriting/pkg/money"
)

// RescoreActor is recorded as the assessor of automatic rescoring runs.
const RescoreActor = "system:rescore"

// RescoreRecordUseCase reacts to a CRM record being reclassified: it stores
// the new classification and, if the record was assessed before, scores it
// again with the prior inputs.
type RescoreRecordUseCase struct {
	scorer          *ScoreScrutinyUseCase
	classifications port.ClassificationStore
	assessments     port.AssessmentRepository
	publisher       port.EventPublisher
	recorder        port.AssessmentRecorder
	logger          *slog.Logger
}

// NewRescoreRecordUseCase wires dependencies.
func NewRescoreRecordUseCase(
	scorer *ScoreScrutinyUseCase,
	classifications port.ClassificationStore,
	assessments port.AssessmentRepository,
	publisher port.EventPublisher,
	recorder port.AssessmentRecorder,
	logger *slog.Logger,
) *RescoreRecordUseCase {
	return &RescoreRecordUseCase{
		scorer:          scorer,
		classifications: classifications,
		assessments:     assessments,
		publisher:       publisher,
		recorder:        recorder,
		logger:          logger,
	}
}

// Execute returns the new assessment and true, or false when the record had
// no prior assessment to rescore or its latest assessment already used the
// announced classification.
func (uc *RescoreRecordUseCase) Execute(
	ctx context.Context,
	msg dto.RecordClassified,
) (dto.AssessmentResponse, bool, error) {
	ctx, span := tracer.Start(ctx, "RescoreRecord")
	defer span.End()
	span.SetAttributes(
		attribute.String("record.type", msg.RecordType),
		attribute.String("record.id", msg.RecordID),
	)

	resp, rescored, err := uc.execute(ctx, msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.SetAttributes(attribute.Bool("rescored", rescored))
	return resp, rescored, err
}

func (uc *RescoreRecordUseCase) execute(
	ctx context.Context,
	msg dto.RecordClassified,
) (dto.AssessmentResponse, bool, error) {
	recordType, err := parseRecordRef(msg.RecordType, msg.RecordID)
	if err != nil {
		return dto.AssessmentResponse{}, false, err
	}
	classification := valueobject.Classification{
		Sector:      msg.Sector,
		Industry:    msg.Industry,
		SubIndustry: msg.SubIndustry,
	}

	// 1. Mirror the CRM's classification.
	if err := uc.classifications.Put(ctx, recordType, msg.RecordID, classification); err != nil {
		return dto.AssessmentResponse{}, false, fmt.Errorf("save classification: %w", err)
	}

	// 2. Find the inputs of the latest assessment.
	prior, err := uc.assessments.LatestByRecord(ctx, recordType, msg.RecordID)
	if errors.Is(err, port.ErrAssessmentNotFound) {
		uc.logger.DebugContext(ctx, "record never assessed, skipping rescore",
			"record_type", recordType.String(),
			"record_id", msg.RecordID,
		)
		return dto.AssessmentResponse{}, false, nil
	}
	if err != nil {
		return dto.AssessmentResponse{}, false, fmt.Errorf("load prior assessment: %w", err)
	}

	// A redelivered message finds its own assessment as the latest one.
	if prior.Classification() == classification {
		uc.logger.DebugContext(ctx, "latest assessment already uses this classification, skipping rescore",
			"assessment_id", prior.ID(),
			"record_type", recordType.String(),
			"record_id", msg.RecordID,
		)
		return dto.AssessmentResponse{}, false, nil
	}

	// 3. Score with the new classification.
	var monthly *money.Money
	if b, ok := prior.Billing(); ok {
		monthly = &b.Monthly
	}
	result, billing := uc.scorer.score(ctx, classification, prior.Inputs(), monthly)

	// 4. Record.
	assessment, err := model.NewAssessment(
		recordType, msg.RecordID, classification, prior.Inputs(), result, billing, RescoreActor, time.Now().UTC(),
	)
	if err != nil {
		return dto.AssessmentResponse{}, false, fmt.Errorf("create assessment: %w", err)
	}
	if err := recordAssessment(ctx, uc.assessments, uc.publisher, uc.recorder, uc.logger, assessment); err != nil {
		return dto.AssessmentResponse{}, false, err
	}

	uc.logger.InfoContext(ctx, "record rescored after reclassification",
		"assessment_id", assessment.ID(),
		"previous_assessment_id", prior.ID(),
		"record_type", recordType.String(),
		"record_id", msg.RecordID,
		"previous_tier", prior.Tier().String(),
		"tier", result.Tier().String(),
		"score", result.Score,
	)
	return toAssessmentResponse(assessment), true, nil
}

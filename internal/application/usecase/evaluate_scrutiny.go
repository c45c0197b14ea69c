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
)

// EvaluateScrutinyUseCase scores a CRM record and, unless dry-running,
// records the outcome as a new assessment.
type EvaluateScrutinyUseCase struct {
	scorer          *ScoreScrutinyUseCase
	classifications port.ClassificationStore
	assessments     port.AssessmentRepository
	publisher       port.EventPublisher
	recorder        port.AssessmentRecorder
	logger          *slog.Logger
}

// NewEvaluateScrutinyUseCase wires dependencies.
func NewEvaluateScrutinyUseCase(
	scorer *ScoreScrutinyUseCase,
	classifications port.ClassificationStore,
	assessments port.AssessmentRepository,
	publisher port.EventPublisher,
	recorder port.AssessmentRecorder,
	logger *slog.Logger,
) *EvaluateScrutinyUseCase {
	return &EvaluateScrutinyUseCase{
		scorer:          scorer,
		classifications: classifications,
		assessments:     assessments,
		publisher:       publisher,
		recorder:        recorder,
		logger:          logger,
	}
}

// Execute resolves the classification, scores, and persists unless DryRun.
func (uc *EvaluateScrutinyUseCase) Execute(
	ctx context.Context,
	req dto.EvaluateScrutinyRequest,
) (dto.AssessmentResponse, error) {
	ctx, span := tracer.Start(ctx, "EvaluateScrutiny")
	defer span.End()
	span.SetAttributes(
		attribute.String("record.type", req.RecordType),
		attribute.String("record.id", req.RecordID),
		attribute.Bool("dry_run", req.DryRun),
	)

	resp, err := uc.execute(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return dto.AssessmentResponse{}, err
	}
	span.SetAttributes(attribute.Int("score", resp.Result.Score), attribute.String("tier", resp.Result.Tier))
	return resp, nil
}

func (uc *EvaluateScrutinyUseCase) execute(
	ctx context.Context,
	req dto.EvaluateScrutinyRequest,
) (dto.AssessmentResponse, error) {
	now := time.Now().UTC()

	// 1. Validate the request.
	recordType, err := parseRecordRef(req.RecordType, req.RecordID)
	if err != nil {
		return dto.AssessmentResponse{}, err
	}
	inputs, err := ParseInputs(req.Inputs)
	if err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("parse inputs: %w", err)
	}
	billing, err := parseBilling(req.MonthlyBilling)
	if err != nil {
		return dto.AssessmentResponse{}, err
	}

	// 2. Resolve the classification: explicit, else stored, else unclassified.
	classification, err := uc.resolveClassification(ctx, recordType, req)
	if err != nil {
		return dto.AssessmentResponse{}, err
	}

	// 3. Score.
	result, sized := uc.scorer.score(ctx, classification, inputs, billing)

	if req.DryRun {
		return dto.AssessmentResponse{
			RecordType:     recordType.String(),
			RecordID:       req.RecordID,
			Classification: toClassificationDTO(classification),
			Inputs:         toInputsDTO(inputs),
			Result:         toResultDTO(result, sized),
			AssessedBy:     req.AssessedBy,
			CreatedAt:      now,
			DryRun:         true,
		}, nil
	}

	// 4. Record the assessment.
	assessment, err := model.NewAssessment(
		recordType, req.RecordID, classification, inputs, result, sized, req.AssessedBy, now,
	)
	if err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("create assessment: %w", err)
	}
	if err := recordAssessment(ctx, uc.assessments, uc.publisher, uc.recorder, uc.logger, assessment); err != nil {
		return dto.AssessmentResponse{}, err
	}

	uc.logger.InfoContext(ctx, "scrutiny assessment recorded",
		"assessment_id", assessment.ID(),
		"record_type", recordType.String(),
		"record_id", req.RecordID,
		"score", result.Score,
		"tier", result.Tier().String(),
	)
	return toAssessmentResponse(assessment), nil
}

func (uc *EvaluateScrutinyUseCase) resolveClassification(
	ctx context.Context,
	recordType valueobject.RecordType,
	req dto.EvaluateScrutinyRequest,
) (valueobject.Classification, error) {
	explicit := toClassification(req.Classification)
	if !explicit.IsEmpty() {
		return explicit, nil
	}

	stored, err := uc.classifications.Get(ctx, recordType, req.RecordID)
	switch {
	case errors.Is(err, port.ErrClassificationNotFound):
		return valueobject.Classification{}, nil
	case err != nil:
		return valueobject.Classification{}, fmt.Errorf("load classification: %w", err)
	}
	return stored, nil
}

// recordAssessment saves and meters a new assessment, then publishes its
// events. Once the row is saved the assessment exists, so a publish failure
// is logged and not returned.
func recordAssessment(
	ctx context.Context,
	repo port.AssessmentRepository,
	publisher port.EventPublisher,
	recorder port.AssessmentRecorder,
	logger *slog.Logger,
	a model.Assessment,
) error {
	if err := repo.Save(ctx, a); err != nil {
		return fmt.Errorf("save assessment: %w", err)
	}
	recorder.RecordAssessment(ctx, a.Tier(), a.Score())
	if err := publisher.Publish(ctx, a.DomainEvents()...); err != nil {
		logger.WarnContext(ctx, "assessment saved but events not published",
			"assessment_id", a.ID(),
			"error", err,
		)
	}
	return nil
}

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
	"github.com/psspowers/underwriting/internal/domain/event"
	"github.com/psspowers/underwriting/internal/domain/port"
	"github.com/psspowers/underwriting/internal/domain/service"
	"github.com/psspowers/underwriting/internal/domain/valueobject"
)

// ClassifyRecordUseCase applies one cascading selection to a record's stored
// classification and writes the result back.
type ClassifyRecordUseCase struct {
	resolver        *service.ClassificationResolver
	classifications port.ClassificationStore
	publisher       port.EventPublisher
	logger          *slog.Logger
}

// NewClassifyRecordUseCase wires dependencies.
func NewClassifyRecordUseCase(
	resolver *service.ClassificationResolver,
	classifications port.ClassificationStore,
	publisher port.EventPublisher,
	logger *slog.Logger,
) *ClassifyRecordUseCase {
	return &ClassifyRecordUseCase{
		resolver:        resolver,
		classifications: classifications,
		publisher:       publisher,
		logger:          logger,
	}
}

// Execute loads, transitions, saves and announces the classification.
func (uc *ClassifyRecordUseCase) Execute(
	ctx context.Context,
	req dto.ClassifyRecordRequest,
) (dto.ClassificationResponse, error) {
	ctx, span := tracer.Start(ctx, "ClassifyRecord")
	defer span.End()
	span.SetAttributes(
		attribute.String("record.type", req.RecordType),
		attribute.String("record.id", req.RecordID),
		attribute.String("level", req.Level),
	)

	resp, err := uc.execute(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return resp, err
}

func (uc *ClassifyRecordUseCase) execute(
	ctx context.Context,
	req dto.ClassifyRecordRequest,
) (dto.ClassificationResponse, error) {
	recordType, err := parseRecordRef(req.RecordType, req.RecordID)
	if err != nil {
		return dto.ClassificationResponse{}, err
	}

	// 1. Load the current selection; a never-classified record starts empty.
	current, err := uc.classifications.Get(ctx, recordType, req.RecordID)
	if err != nil && !errors.Is(err, port.ErrClassificationNotFound) {
		return dto.ClassificationResponse{}, fmt.Errorf("load classification: %w", err)
	}

	// 2. Apply the transition.
	next, err := uc.resolver.Select(current, req.Level, req.Value)
	if err != nil {
		return dto.ClassificationResponse{}, fmt.Errorf("select %s: %w", req.Level, err)
	}

	// 3. Persist.
	if err := uc.classifications.Put(ctx, recordType, req.RecordID, next); err != nil {
		return dto.ClassificationResponse{}, fmt.Errorf("save classification: %w", err)
	}

	// 4. Publish.
	changed := event.NewClassificationChanged(
		recordType.String(), req.RecordID, req.Level,
		next.Sector, next.Industry, next.SubIndustry,
		req.ChangedBy, time.Now(),
	)
	if err := uc.publisher.Publish(ctx, changed); err != nil {
		uc.logger.WarnContext(ctx, "classification saved but event not published",
			"record_type", recordType.String(),
			"record_id", req.RecordID,
			"error", err,
		)
	}

	uc.logger.InfoContext(ctx, "record classification changed",
		"record_type", recordType.String(),
		"record_id", req.RecordID,
		"level", req.Level,
		"sector", next.Sector,
		"industry", next.Industry,
		"sub_industry", next.SubIndustry,
	)
	return toClassificationResponse(recordType, req.RecordID, next), nil
}

func toClassificationResponse(rt valueobject.RecordType, recordID string, c valueobject.Classification) dto.ClassificationResponse {
	return dto.ClassificationResponse{
		RecordType:     rt.String(),
		RecordID:       recordID,
		Classification: toClassificationDTO(c),
		Complete:       c.IsComplete(),
	}
}

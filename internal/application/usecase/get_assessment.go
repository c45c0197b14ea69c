package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/psspowers/underwriting/internal/application/dto"
	"github.com/psspowers/underwriting/internal/domain/port"
)

// GetAssessmentUseCase retrieves an assessment by ID.
type GetAssessmentUseCase struct {
	assessments port.AssessmentRepository
}

// NewGetAssessmentUseCase wires dependencies.
func NewGetAssessmentUseCase(assessments port.AssessmentRepository) *GetAssessmentUseCase {
	return &GetAssessmentUseCase{assessments: assessments}
}

// Execute returns the assessment with the given ID.
func (uc *GetAssessmentUseCase) Execute(
	ctx context.Context,
	req dto.GetAssessmentRequest,
) (dto.AssessmentResponse, error) {
	if req.ID == "" {
		return dto.AssessmentResponse{}, invalid("id is required")
	}
	if _, err := uuid.Parse(req.ID); err != nil {
		return dto.AssessmentResponse{}, invalid("id %q is not a UUID", req.ID)
	}
	a, err := uc.assessments.FindByID(ctx, req.ID)
	if err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("find assessment: %w", err)
	}
	return toAssessmentResponse(a), nil
}

// ListAssessmentsUseCase retrieves a record's assessment history.
type ListAssessmentsUseCase struct {
	assessments port.AssessmentRepository
}

// NewListAssessmentsUseCase wires dependencies.
func NewListAssessmentsUseCase(assessments port.AssessmentRepository) *ListAssessmentsUseCase {
	return &ListAssessmentsUseCase{assessments: assessments}
}

// Execute returns up to req.Limit assessments, newest first.
func (uc *ListAssessmentsUseCase) Execute(
	ctx context.Context,
	req dto.ListAssessmentsRequest,
) (dto.AssessmentListResponse, error) {
	recordType, err := parseRecordRef(req.RecordType, req.RecordID)
	if err != nil {
		return dto.AssessmentListResponse{}, err
	}

	limit := req.Limit
	switch {
	case limit <= 0:
		limit = defaultListLimit
	case limit > maxListLimit:
		limit = maxListLimit
	}

	list, err := uc.assessments.ListByRecord(ctx, recordType, req.RecordID, limit)
	if err != nil {
		return dto.AssessmentListResponse{}, fmt.Errorf("list assessments: %w", err)
	}

	out := dto.AssessmentListResponse{
		RecordType:  recordType.String(),
		RecordID:    req.RecordID,
		Assessments: make([]dto.AssessmentResponse, 0, len(list)),
	}
	for _, a := range list {
		out.Assessments = append(out.Assessments, toAssessmentResponse(a))
	}
	return out, nil
}

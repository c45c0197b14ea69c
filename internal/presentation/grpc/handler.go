package grpc

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/psspowers/underwriting/internal/application/dto"
	"github.com/psspowers/underwriting/internal/application/usecase"
	"github.com/psspowers/underwriting/internal/domain/port"
	"github.com/psspowers/underwriting/internal/domain/service"
	"github.com/psspowers/underwriting/internal/domain/valueobject"
	"github.com/psspowers/underwriting/pkg/auth"
)

// UnderwritingHandler implements UnderwritingServiceServer over the use cases.
type UnderwritingHandler struct {
	browse          *usecase.BrowseTaxonomyUseCase
	classify        *usecase.ClassifyRecordUseCase
	evaluate        *usecase.EvaluateScrutinyUseCase
	getAssessment   *usecase.GetAssessmentUseCase
	listAssessments *usecase.ListAssessmentsUseCase
	logger          *slog.Logger
}

// NewUnderwritingHandler creates a new handler with all use-case dependencies.
func NewUnderwritingHandler(
	browse *usecase.BrowseTaxonomyUseCase,
	classify *usecase.ClassifyRecordUseCase,
	evaluate *usecase.EvaluateScrutinyUseCase,
	getAssessment *usecase.GetAssessmentUseCase,
	listAssessments *usecase.ListAssessmentsUseCase,
	logger *slog.Logger,
) *UnderwritingHandler {
	return &UnderwritingHandler{
		browse:          browse,
		classify:        classify,
		evaluate:        evaluate,
		getAssessment:   getAssessment,
		listAssessments: listAssessments,
		logger:          logger,
	}
}

var _ UnderwritingServiceServer = (*UnderwritingHandler)(nil)

// ListSectors handles the gRPC ListSectors request.
func (h *UnderwritingHandler) ListSectors(ctx context.Context, _ *ListSectorsRequest) (*dto.SectorsResponse, error) {
	resp := h.browse.ListSectors(ctx)
	return &resp, nil
}

// ListIndustries handles the gRPC ListIndustries request.
func (h *UnderwritingHandler) ListIndustries(ctx context.Context, req *dto.ListIndustriesRequest) (*dto.IndustriesResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	resp := h.browse.ListIndustries(ctx, *req)
	return &resp, nil
}

// ListSubIndustries handles the gRPC ListSubIndustries request.
func (h *UnderwritingHandler) ListSubIndustries(ctx context.Context, req *dto.ListSubIndustriesRequest) (*dto.SubIndustriesResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	resp := h.browse.ListSubIndustries(ctx, *req)
	return &resp, nil
}

// LookupSubIndustry handles the gRPC LookupSubIndustry request.
func (h *UnderwritingHandler) LookupSubIndustry(ctx context.Context, req *LookupSubIndustryRequest) (*dto.TaxonomyEntry, error) {
	if req == nil || req.SubIndustry == "" {
		return nil, status.Error(codes.InvalidArgument, "sub_industry is required")
	}
	resp, err := h.browse.LookupSubIndustry(ctx, req.SubIndustry)
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return &resp, nil
}

// ClassifyRecord handles the gRPC ClassifyRecord request.
func (h *UnderwritingHandler) ClassifyRecord(ctx context.Context, req *dto.ClassifyRecordRequest) (*dto.ClassificationResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	in := *req
	in.ChangedBy = actor(ctx)

	resp, err := h.classify.Execute(ctx, in)
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return &resp, nil
}

// EvaluateScrutiny handles the gRPC EvaluateScrutiny request.
func (h *UnderwritingHandler) EvaluateScrutiny(ctx context.Context, req *dto.EvaluateScrutinyRequest) (*dto.AssessmentResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	in := *req
	in.AssessedBy = actor(ctx)

	resp, err := h.evaluate.Execute(ctx, in)
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return &resp, nil
}

// GetAssessment handles the gRPC GetAssessment request.
func (h *UnderwritingHandler) GetAssessment(ctx context.Context, req *dto.GetAssessmentRequest) (*dto.AssessmentResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	resp, err := h.getAssessment.Execute(ctx, *req)
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return &resp, nil
}

// ListAssessments handles the gRPC ListAssessments request.
func (h *UnderwritingHandler) ListAssessments(ctx context.Context, req *dto.ListAssessmentsRequest) (*dto.AssessmentListResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	resp, err := h.listAssessments.Execute(ctx, *req)
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return &resp, nil
}

func actor(ctx context.Context) string {
	if claims, ok := auth.ClaimsFromContext(ctx); ok {
		return claims.Actor()
	}
	return ""
}

// toStatus maps application errors onto gRPC codes. Internal errors are
// logged and hidden from the caller.
func (h *UnderwritingHandler) toStatus(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidRequest),
		errors.Is(err, valueobject.ErrUnknownValue),
		errors.Is(err, service.ErrInvalidSelection):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, port.ErrAssessmentNotFound),
		errors.Is(err, usecase.ErrSubIndustryNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		h.logger.ErrorContext(ctx, "request failed", "error", err)
		return status.Error(codes.Internal, "internal error")
	}
}

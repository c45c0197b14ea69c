package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/psspowers/underwriting/internal/application/dto"
	"github.com/psspowers/underwriting/internal/application/usecase"
	"github.com/psspowers/underwriting/internal/domain/port"
	"github.com/psspowers/underwriting/internal/domain/service"
	"github.com/psspowers/underwriting/internal/domain/valueobject"
	"github.com/psspowers/underwriting/pkg/auth"
)

const maxBodyBytes = 1 << 20

// UnderwritingHandler exposes the use cases as JSON over HTTP.
type UnderwritingHandler struct {
	browse          *usecase.BrowseTaxonomyUseCase
	classify        *usecase.ClassifyRecordUseCase
	evaluate        *usecase.EvaluateScrutinyUseCase
	getAssessment   *usecase.GetAssessmentUseCase
	listAssessments *usecase.ListAssessmentsUseCase
	logger          *slog.Logger
}

// NewUnderwritingHandler creates a new HTTP handler with all use-case dependencies.
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

type classifyBody struct {
	Level string `json:"level"`
	Value string `json:"value"`
}

type scrutinyBody struct {
	Classification dto.Classification `json:"classification"`
	Inputs         dto.ScrutinyInputs `json:"inputs"`
	MonthlyBilling *dto.Money         `json:"monthly_billing,omitempty"`
}

func (h *UnderwritingHandler) listSectors(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.browse.ListSectors(r.Context()))
}

func (h *UnderwritingHandler) listIndustries(w http.ResponseWriter, r *http.Request) {
	sector, ok := pathParam(w, r, "sector")
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.browse.ListIndustries(r.Context(), dto.ListIndustriesRequest{Sector: sector}))
}

func (h *UnderwritingHandler) listSubIndustries(w http.ResponseWriter, r *http.Request) {
	industry, ok := pathParam(w, r, "industry")
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.browse.ListSubIndustries(r.Context(), dto.ListSubIndustriesRequest{Industry: industry}))
}

func (h *UnderwritingHandler) lookupSubIndustry(w http.ResponseWriter, r *http.Request) {
	name, ok := pathParam(w, r, "subIndustry")
	if !ok {
		return
	}
	resp, err := h.browse.LookupSubIndustry(r.Context(), name)
	if err != nil {
		h.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *UnderwritingHandler) classifyRecord(w http.ResponseWriter, r *http.Request) {
	recordType, recordID, ok := recordRef(w, r)
	if !ok {
		return
	}
	var body classifyBody
	if !decodeBody(w, r, &body) {
		return
	}
	resp, err := h.classify.Execute(r.Context(), dto.ClassifyRecordRequest{
		RecordType: recordType,
		RecordID:   recordID,
		Level:      body.Level,
		Value:      body.Value,
		ChangedBy:  actor(r.Context()),
	})
	if err != nil {
		h.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *UnderwritingHandler) evaluateScrutiny(w http.ResponseWriter, r *http.Request) {
	recordType, recordID, ok := recordRef(w, r)
	if !ok {
		return
	}
	dryRun := false
	if v := r.URL.Query().Get("dry_run"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "dry_run must be a boolean")
			return
		}
		dryRun = parsed
	}
	var body scrutinyBody
	if !decodeBody(w, r, &body) {
		return
	}
	resp, err := h.evaluate.Execute(r.Context(), dto.EvaluateScrutinyRequest{
		RecordType:     recordType,
		RecordID:       recordID,
		Classification: body.Classification,
		Inputs:         body.Inputs,
		MonthlyBilling: body.MonthlyBilling,
		DryRun:         dryRun,
		AssessedBy:     actor(r.Context()),
	})
	if err != nil {
		h.writeErr(w, r, err)
		return
	}
	code := http.StatusCreated
	if dryRun {
		code = http.StatusOK
	}
	writeJSON(w, code, resp)
}

func (h *UnderwritingHandler) listRecordAssessments(w http.ResponseWriter, r *http.Request) {
	recordType, recordID, ok := recordRef(w, r)
	if !ok {
		return
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}
	resp, err := h.listAssessments.Execute(r.Context(), dto.ListAssessmentsRequest{
		RecordType: recordType,
		RecordID:   recordID,
		Limit:      limit,
	})
	if err != nil {
		h.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *UnderwritingHandler) getAssessmentByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathParam(w, r, "id")
	if !ok {
		return
	}
	resp, err := h.getAssessment.Execute(r.Context(), dto.GetAssessmentRequest{ID: id})
	if err != nil {
		h.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// writeErr maps application errors onto HTTP status codes. Internal errors
// are logged and hidden from the caller.
func (h *UnderwritingHandler) writeErr(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, usecase.ErrInvalidRequest),
		errors.Is(err, valueobject.ErrUnknownValue),
		errors.Is(err, service.ErrInvalidSelection):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, port.ErrAssessmentNotFound),
		errors.Is(err, usecase.ErrSubIndustryNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "request timed out")
	default:
		h.logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// pathParam returns a decoded chi URL parameter. Taxonomy labels may carry
// "/" or "&", so clients percent-encode them.
func pathParam(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	v, err := url.PathUnescape(chi.URLParam(r, name))
	if err != nil || v == "" {
		writeError(w, http.StatusBadRequest, "invalid "+name)
		return "", false
	}
	return v, true
}

func recordRef(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	recordType, ok := pathParam(w, r, "recordType")
	if !ok {
		return "", "", false
	}
	recordID, ok := pathParam(w, r, "recordID")
	if !ok {
		return "", "", false
	}
	return recordType, recordID, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

func actor(ctx context.Context) string {
	if claims, ok := auth.ClaimsFromContext(ctx); ok {
		return claims.Actor()
	}
	return ""
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

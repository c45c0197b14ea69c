package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/psspowers/underwriting/internal/application/dto"
	"github.com/psspowers/underwriting/internal/application/usecase"
	"github.com/psspowers/underwriting/internal/domain/valueobject"
	pkgkafka "github.com/psspowers/underwriting/pkg/kafka"
)

// Rescorer is satisfied by *usecase.RescoreRecordUseCase.
type Rescorer interface {
	Execute(ctx context.Context, msg dto.RecordClassified) (dto.AssessmentResponse, bool, error)
}

// RecordsHandler turns crm.records.classified messages into rescoring runs.
type RecordsHandler struct {
	rescorer Rescorer
	logger   *slog.Logger
}

// NewRecordsHandler creates a handler for the CRM classification feed.
func NewRecordsHandler(rescorer Rescorer, logger *slog.Logger) *RecordsHandler {
	return &RecordsHandler{rescorer: rescorer, logger: logger}
}

// Handle is a pkgkafka.Handler. Messages that can never succeed (bad JSON or
// an invalid record reference) are logged and acknowledged at once; any other
// failure is returned so the consumer retries it.
func (h *RecordsHandler) Handle(ctx context.Context, msg pkgkafka.Message) error {
	var rc dto.RecordClassified
	if err := json.Unmarshal(msg.Value, &rc); err != nil {
		h.logger.WarnContext(ctx, "dropping malformed record classification message",
			"key", string(msg.Key),
			"error", err,
		)
		return nil
	}

	resp, rescored, err := h.rescorer.Execute(ctx, rc)
	if errors.Is(err, usecase.ErrInvalidRequest) || errors.Is(err, valueobject.ErrUnknownValue) {
		h.logger.WarnContext(ctx, "dropping invalid record classification message",
			"record_type", rc.RecordType,
			"record_id", rc.RecordID,
			"error", err,
		)
		return nil
	}
	if err != nil {
		return err
	}

	if rescored {
		h.logger.DebugContext(ctx, "classification feed rescored record",
			"record_id", rc.RecordID,
			"assessment_id", resp.ID,
			"tier", resp.Result.Tier,
		)
	}
	return nil
}

package usecase

import (
	"context"
	"fmt"

	"github.com/psspowers/underwriting/internal/application/dto"
	"github.com/psspowers/underwriting/internal/domain/model"
	"github.com/psspowers/underwriting/internal/domain/service"
	"github.com/psspowers/underwriting/internal/domain/valueobject"
	"github.com/psspowers/underwriting/pkg/money"
)

// ScoreScrutinyUseCase scores a classification and inputs without any
// persistence. It backs the offline CLI and the scoring step of the
// record-level use cases.
type ScoreScrutinyUseCase struct {
	engine     *service.ScrutinyEngine
	classifier *service.VerdictClassifier
}

// NewScoreScrutinyUseCase wires dependencies.
func NewScoreScrutinyUseCase(engine *service.ScrutinyEngine, classifier *service.VerdictClassifier) *ScoreScrutinyUseCase {
	return &ScoreScrutinyUseCase{engine: engine, classifier: classifier}
}

// Execute parses the request and returns the scored result.
func (uc *ScoreScrutinyUseCase) Execute(ctx context.Context, req dto.ScoreRequest) (dto.ScrutinyResult, error) {
	inputs, err := ParseInputs(req.Inputs)
	if err != nil {
		return dto.ScrutinyResult{}, fmt.Errorf("parse inputs: %w", err)
	}
	billing, err := parseBilling(req.MonthlyBilling)
	if err != nil {
		return dto.ScrutinyResult{}, err
	}

	result, sized := uc.score(ctx, toClassification(req.Classification), inputs, billing)
	return toResultDTO(result, sized), nil
}

// score runs the engine and sizes the deposit when billing is known.
func (uc *ScoreScrutinyUseCase) score(
	_ context.Context,
	c valueobject.Classification,
	inputs service.ScrutinyInputs,
	billing *money.Money,
) (service.ScrutinyResult, *model.Billing) {
	result := uc.engine.Score(c, inputs)
	if billing == nil {
		return result, nil
	}
	return result, &model.Billing{
		Monthly: *billing,
		Deposit: uc.classifier.DepositFor(result.Verdict, *billing),
	}
}

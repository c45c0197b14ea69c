package usecase

import (
	"errors"
	"fmt"

	"github.com/psspowers/underwriting/internal/application/dto"
	"github.com/psspowers/underwriting/internal/domain/model"
	"github.com/psspowers/underwriting/internal/domain/service"
	"github.com/psspowers/underwriting/internal/domain/valueobject"
	"github.com/psspowers/underwriting/pkg/money"
)

var (
	// ErrInvalidRequest wraps every request validation failure.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrSubIndustryNotFound is returned when a sub-industry label is not in the taxonomy.
	ErrSubIndustryNotFound = errors.New("sub-industry not found")
)

const (
	defaultListLimit = 50
	maxListLimit     = 200

	// billingScale matches the NUMERIC(20, 2) money columns.
	billingScale = 2
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

func parseRecordRef(recordType, recordID string) (valueobject.RecordType, error) {
	rt, err := valueobject.NewRecordType(recordType)
	if err != nil {
		return valueobject.RecordType{}, err
	}
	if recordID == "" {
		return valueobject.RecordType{}, invalid("record_id is required")
	}
	return rt, nil
}

// ParseInputs converts wire labels into scrutiny inputs. Every label is
// required: a missing one fails with ErrInvalidRequest, an unknown one with
// valueobject.ErrUnknownValue. Negative years fail with ErrInvalidRequest.
func ParseInputs(in dto.ScrutinyInputs) (service.ScrutinyInputs, error) {
	if in.YearsInBusiness < 0 {
		return service.ScrutinyInputs{}, invalid("years_in_business must not be negative, got %d", in.YearsInBusiness)
	}
	out := service.ScrutinyInputs{
		YearsInBusiness:     in.YearsInBusiness,
		FinancialsAvailable: in.FinancialsAvailable,
	}

	var err error
	if out.Ownership, err = parseLabel("ownership", in.Ownership, valueobject.NewOwnershipType); err != nil {
		return service.ScrutinyInputs{}, err
	}
	if out.Estate, err = parseLabel("estate", in.Estate, valueobject.NewEstateType); err != nil {
		return service.ScrutinyInputs{}, err
	}
	if out.DebtLevel, err = parseLabel("debt_level", in.DebtLevel, valueobject.NewDebtLevel); err != nil {
		return service.ScrutinyInputs{}, err
	}
	if out.PaymentHistory, err = parseLabel("payment_history", in.PaymentHistory, valueobject.NewPaymentHistory); err != nil {
		return service.ScrutinyInputs{}, err
	}
	return out, nil
}

func parseLabel[T any](field, label string, parse func(string) (T, error)) (T, error) {
	if label == "" {
		var zero T
		return zero, invalid("%s is required", field)
	}
	return parse(label)
}

func parseBilling(m *dto.Money) (*money.Money, error) {
	if m == nil {
		return nil, nil
	}
	billing, err := money.NewFromString(m.Amount, m.Currency)
	if err != nil {
		return nil, fmt.Errorf("%w: monthly_billing: %w", ErrInvalidRequest, err)
	}
	if billing.IsNegative() {
		return nil, invalid("monthly_billing must not be negative")
	}
	if amount := billing.Amount(); !amount.Equal(amount.Round(billingScale)) {
		return nil, invalid("monthly_billing allows at most %d decimal places, got %s", billingScale, amount)
	}
	return &billing, nil
}

func toClassification(c dto.Classification) valueobject.Classification {
	return valueobject.Classification{Sector: c.Sector, Industry: c.Industry, SubIndustry: c.SubIndustry}
}

func toClassificationDTO(c valueobject.Classification) dto.Classification {
	return dto.Classification{Sector: c.Sector, Industry: c.Industry, SubIndustry: c.SubIndustry}
}

func toInputsDTO(in service.ScrutinyInputs) dto.ScrutinyInputs {
	return dto.ScrutinyInputs{
		YearsInBusiness:     in.YearsInBusiness,
		Ownership:           in.Ownership.String(),
		Estate:              in.Estate.String(),
		DebtLevel:           in.DebtLevel.String(),
		PaymentHistory:      in.PaymentHistory.String(),
		FinancialsAvailable: in.FinancialsAvailable,
	}
}

func toMoneyDTO(m money.Money) *dto.Money {
	return &dto.Money{Amount: m.Amount().StringFixed(2), Currency: m.Currency().Code()}
}

func toResultDTO(r service.ScrutinyResult, billing *model.Billing) dto.ScrutinyResult {
	out := dto.ScrutinyResult{
		Score:    r.Score,
		Tier:     r.Tier().String(),
		Guidance: r.Verdict.Guidance,
		Terms: dto.CommercialTerms{
			DepositMonths:      r.Verdict.Terms.DepositMonths,
			ParentGuarantee:    r.Verdict.Terms.ParentGuarantee,
			BankGuarantee:      r.Verdict.Terms.BankGuarantee,
			AdvancePayment:     r.Verdict.Terms.AdvancePayment,
			EnhancedMonitoring: r.Verdict.Terms.EnhancedMonitoring,
			RecommendDecline:   r.Verdict.Terms.RecommendDecline,
		},
		Breakdown: dto.ScoreBreakdown{
			BaseScore:        r.Breakdown.BaseScore,
			LongevityBonus:   r.Breakdown.LongevityBonus,
			OwnershipBonus:   r.Breakdown.OwnershipBonus,
			EstateBonus:      r.Breakdown.EstateBonus,
			FinancialOverlay: r.Breakdown.FinancialOverlay,
			PaymentBonus:     r.Breakdown.PaymentBonus,
			Total:            r.Breakdown.Total(),
		},
		Classified:           r.Classified,
		ReferenceCreditScore: r.ReferenceCreditScore(),
	}
	if r.Classified {
		out.MatchedEntry = &dto.TaxonomyEntry{
			Sector:      r.Entry.Sector,
			Industry:    r.Entry.Industry,
			SubIndustry: r.Entry.SubIndustry,
			Score:       r.Entry.Score,
			Points:      r.Entry.Points,
		}
	}
	if billing != nil {
		out.MonthlyBilling = toMoneyDTO(billing.Monthly)
		out.Deposit = toMoneyDTO(billing.Deposit)
	}
	return out
}

func toAssessmentResponse(a model.Assessment) dto.AssessmentResponse {
	var billing *model.Billing
	if b, ok := a.Billing(); ok {
		billing = &b
	}
	return dto.AssessmentResponse{
		ID:             a.ID(),
		RecordType:     a.RecordType().String(),
		RecordID:       a.RecordID(),
		Classification: toClassificationDTO(a.Classification()),
		Inputs:         toInputsDTO(a.Inputs()),
		Result:         toResultDTO(a.Result(), billing),
		AssessedBy:     a.AssessedBy(),
		CreatedAt:      a.CreatedAt(),
	}
}

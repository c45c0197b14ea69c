package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/psspowers/underwriting/internal/domain/model"
	"github.com/psspowers/underwriting/internal/domain/port"
	"github.com/psspowers/underwriting/internal/domain/service"
	"github.com/psspowers/underwriting/internal/domain/taxonomy"
	"github.com/psspowers/underwriting/internal/domain/valueobject"
	"github.com/psspowers/underwriting/pkg/money"
	pkgpostgres "github.com/psspowers/underwriting/pkg/postgres"
)

// AssessmentRepo implements port.AssessmentRepository. Rows are insert-only.
type AssessmentRepo struct {
	db         pkgpostgres.Querier
	classifier *service.VerdictClassifier
}

// NewAssessmentRepo creates a repository over a pool or transaction. The
// classifier restores guidance and terms for stored tiers.
func NewAssessmentRepo(db pkgpostgres.Querier, classifier *service.VerdictClassifier) *AssessmentRepo {
	return &AssessmentRepo{db: db, classifier: classifier}
}

const assessmentColumns = `
	id, record_type, record_id, sector, industry, sub_industry,
	years_in_business, ownership, estate, debt_level, payment_history, financials_available,
	score, tier, breakdown, matched_entry,
	monthly_billing, deposit, currency,
	assessed_by, created_at`

// Save inserts a new assessment.
func (r *AssessmentRepo) Save(ctx context.Context, a model.Assessment) error {
	result := a.Result()
	in := a.Inputs()
	c := a.Classification()

	breakdown, err := json.Marshal(result.Breakdown)
	if err != nil {
		return fmt.Errorf("marshal breakdown: %w", err)
	}
	var matched []byte
	if result.Classified {
		if matched, err = json.Marshal(result.Entry); err != nil {
			return fmt.Errorf("marshal matched entry: %w", err)
		}
	}

	var (
		monthly, deposit decimal.NullDecimal
		currency         *string
	)
	if b, ok := a.Billing(); ok {
		monthly = decimal.NewNullDecimal(b.Monthly.Amount())
		deposit = decimal.NewNullDecimal(b.Deposit.Amount())
		code := b.Monthly.Currency().Code()
		currency = &code
	}

	query := `INSERT INTO underwriting_assessments (` + assessmentColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)`
	_, err = r.db.Exec(ctx, query,
		a.ID(), a.RecordType().String(), a.RecordID(),
		c.Sector, c.Industry, c.SubIndustry,
		in.YearsInBusiness, in.Ownership.String(), in.Estate.String(),
		in.DebtLevel.String(), in.PaymentHistory.String(), in.FinancialsAvailable,
		result.Score, result.Tier().String(), breakdown, matched,
		monthly, deposit, currency,
		a.AssessedBy(), a.CreatedAt(),
	)
	if err != nil {
		return fmt.Errorf("insert assessment: %w", err)
	}
	return nil
}

// FindByID retrieves a single assessment.
func (r *AssessmentRepo) FindByID(ctx context.Context, id string) (model.Assessment, error) {
	query := `SELECT ` + assessmentColumns + ` FROM underwriting_assessments WHERE id = $1`
	a, err := r.scanAssessment(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Assessment{}, fmt.Errorf("assessment %s: %w", id, port.ErrAssessmentNotFound)
	}
	return a, err
}

// ListByRecord returns up to limit assessments for a record, newest first.
func (r *AssessmentRepo) ListByRecord(
	ctx context.Context,
	recordType valueobject.RecordType,
	recordID string,
	limit int,
) ([]model.Assessment, error) {
	query := `SELECT ` + assessmentColumns + `
		FROM underwriting_assessments
		WHERE record_type = $1 AND record_id = $2
		ORDER BY created_at DESC, id DESC
		LIMIT $3`
	rows, err := r.db.Query(ctx, query, recordType.String(), recordID, limit)
	if err != nil {
		return nil, fmt.Errorf("query assessments: %w", err)
	}
	defer rows.Close()

	var result []model.Assessment
	for rows.Next() {
		a, err := r.scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

// LatestByRecord returns the record's newest assessment.
func (r *AssessmentRepo) LatestByRecord(
	ctx context.Context,
	recordType valueobject.RecordType,
	recordID string,
) (model.Assessment, error) {
	list, err := r.ListByRecord(ctx, recordType, recordID, 1)
	if err != nil {
		return model.Assessment{}, err
	}
	if len(list) == 0 {
		return model.Assessment{}, fmt.Errorf("%s %s: %w", recordType, recordID, port.ErrAssessmentNotFound)
	}
	return list[0], nil
}

// ---------------------------------------------------------------------------
// scan helpers
// ---------------------------------------------------------------------------

type scannable interface {
	Scan(dest ...any) error
}

func (r *AssessmentRepo) scanAssessment(s scannable) (model.Assessment, error) {
	var (
		id, recordTypeStr, recordID      string
		sector, industry, subIndustry    string
		years                            int
		ownership, estate, debt, payment string
		financials                       bool
		score                            int
		tierStr                          string
		breakdownJSON, matchedJSON       []byte
		monthly, deposit                 decimal.NullDecimal
		currency                         *string
		assessedBy                       string
		createdAt                        time.Time
	)

	err := s.Scan(
		&id, &recordTypeStr, &recordID, &sector, &industry, &subIndustry,
		&years, &ownership, &estate, &debt, &payment, &financials,
		&score, &tierStr, &breakdownJSON, &matchedJSON,
		&monthly, &deposit, &currency,
		&assessedBy, &createdAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Assessment{}, err
		}
		return model.Assessment{}, fmt.Errorf("scan assessment: %w", err)
	}

	recordType, err := valueobject.NewRecordType(recordTypeStr)
	if err != nil {
		return model.Assessment{}, fmt.Errorf("parse record type: %w", err)
	}
	inputs, err := parseStoredInputs(years, ownership, estate, debt, payment, financials)
	if err != nil {
		return model.Assessment{}, err
	}

	verdict, err := storedVerdict(r.classifier, tierStr)
	if err != nil {
		return model.Assessment{}, err
	}

	result := service.ScrutinyResult{Score: score, Verdict: verdict}
	if err := json.Unmarshal(breakdownJSON, &result.Breakdown); err != nil {
		return model.Assessment{}, fmt.Errorf("unmarshal breakdown: %w", err)
	}
	if len(matchedJSON) > 0 {
		var entry taxonomy.Entry
		if err := json.Unmarshal(matchedJSON, &entry); err != nil {
			return model.Assessment{}, fmt.Errorf("unmarshal matched entry: %w", err)
		}
		result.Entry = entry
		result.Classified = true
	}

	var billing *model.Billing
	if monthly.Valid && deposit.Valid && currency != nil {
		cur, err := money.NewCurrency(*currency)
		if err != nil {
			return model.Assessment{}, fmt.Errorf("parse currency: %w", err)
		}
		billing = &model.Billing{
			Monthly: money.New(monthly.Decimal, cur),
			Deposit: money.New(deposit.Decimal, cur),
		}
	}

	return model.ReconstructAssessment(
		id, recordType, recordID,
		valueobject.Classification{Sector: sector, Industry: industry, SubIndustry: subIndustry},
		inputs, result, billing, assessedBy, createdAt,
	), nil
}

// tierVerdicts restores the guidance and terms of a stored tier.
type tierVerdicts interface {
	ForTier(valueobject.VerdictTier) (service.Verdict, bool)
}

func storedVerdict(verdicts tierVerdicts, tierStr string) (service.Verdict, error) {
	tier, err := valueobject.VerdictTierFromString(tierStr)
	if err != nil {
		return service.Verdict{}, fmt.Errorf("parse tier: %w", err)
	}
	verdict, ok := verdicts.ForTier(tier)
	if !ok {
		return service.Verdict{}, fmt.Errorf("no verdict band for stored tier %s", tier)
	}
	return verdict, nil
}

func parseStoredInputs(years int, ownership, estate, debt, payment string, financials bool) (service.ScrutinyInputs, error) {
	in := service.ScrutinyInputs{YearsInBusiness: years, FinancialsAvailable: financials}
	var err error
	if ownership != "" {
		if in.Ownership, err = valueobject.NewOwnershipType(ownership); err != nil {
			return in, fmt.Errorf("parse ownership: %w", err)
		}
	}
	if estate != "" {
		if in.Estate, err = valueobject.NewEstateType(estate); err != nil {
			return in, fmt.Errorf("parse estate: %w", err)
		}
	}
	if debt != "" {
		if in.DebtLevel, err = valueobject.NewDebtLevel(debt); err != nil {
			return in, fmt.Errorf("parse debt level: %w", err)
		}
	}
	if payment != "" {
		if in.PaymentHistory, err = valueobject.NewPaymentHistory(payment); err != nil {
			return in, fmt.Errorf("parse payment history: %w", err)
		}
	}
	return in, nil
}

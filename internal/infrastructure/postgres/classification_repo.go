package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/psspowers/underwriting/internal/domain/port"
	"github.com/psspowers/underwriting/internal/domain/valueobject"
	pkgpostgres "github.com/psspowers/underwriting/pkg/postgres"
)

// ClassificationRepo implements port.ClassificationStore over record_classifications.
type ClassificationRepo struct {
	db pkgpostgres.Querier
}

// NewClassificationRepo creates a repository over a pool or transaction.
func NewClassificationRepo(db pkgpostgres.Querier) *ClassificationRepo {
	return &ClassificationRepo{db: db}
}

// Get returns the record's classification or port.ErrClassificationNotFound.
func (r *ClassificationRepo) Get(
	ctx context.Context,
	recordType valueobject.RecordType,
	recordID string,
) (valueobject.Classification, error) {
	query := `
		SELECT sector, industry, sub_industry
		FROM record_classifications
		WHERE record_type = $1 AND record_id = $2
	`
	var c valueobject.Classification
	err := r.db.QueryRow(ctx, query, recordType.String(), recordID).Scan(&c.Sector, &c.Industry, &c.SubIndustry)
	if errors.Is(err, pgx.ErrNoRows) {
		return valueobject.Classification{}, fmt.Errorf("%s %s: %w", recordType, recordID, port.ErrClassificationNotFound)
	}
	if err != nil {
		return valueobject.Classification{}, fmt.Errorf("get classification: %w", err)
	}
	return c, nil
}

// Put upserts the record's classification.
func (r *ClassificationRepo) Put(
	ctx context.Context,
	recordType valueobject.RecordType,
	recordID string,
	c valueobject.Classification,
) error {
	query := `
		INSERT INTO record_classifications (record_type, record_id, sector, industry, sub_industry, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (record_type, record_id) DO UPDATE SET
			sector       = EXCLUDED.sector,
			industry     = EXCLUDED.industry,
			sub_industry = EXCLUDED.sub_industry,
			updated_at   = EXCLUDED.updated_at
	`
	if _, err := r.db.Exec(ctx, query, recordType.String(), recordID, c.Sector, c.Industry, c.SubIndustry); err != nil {
		return fmt.Errorf("put classification: %w", err)
	}
	return nil
}

package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psspowers/underwriting/internal/application/dto"
	"github.com/psspowers/underwriting/internal/application/usecase"
	"github.com/psspowers/underwriting/internal/domain/model"
	"github.com/psspowers/underwriting/internal/domain/service"
	"github.com/psspowers/underwriting/internal/domain/taxonomy"
	"github.com/psspowers/underwriting/internal/domain/valueobject"
	"github.com/psspowers/underwriting/pkg/money"
)

type rescoreFixture struct {
	store     *mockClassificationStore
	repo      *mockAssessmentRepository
	publisher *mockEventPublisher
	recorder  *mockAssessmentRecorder
	uc        *usecase.RescoreRecordUseCase
}

func newRescoreFixture() *rescoreFixture {
	f := &rescoreFixture{
		store:     newMockClassificationStore(),
		repo:      &mockAssessmentRepository{},
		publisher: &mockEventPublisher{},
		recorder:  &mockAssessmentRecorder{},
	}
	f.uc = usecase.NewRescoreRecordUseCase(testScorer(), f.store, f.repo, f.publisher, f.recorder, testLogger())
	return f
}

// seedPrior stores an earlier assessment of the account under a garment
// manufacturing classification.
func (f *rescoreFixture) seedPrior(t *testing.T, recordID string) {
	t.Helper()
	engine := service.NewScrutinyEngine(taxonomy.Default(), service.NewVerdictClassifier())
	in := service.ScrutinyInputs{
		YearsInBusiness: 12,
		Ownership:       valueobject.OwnershipJVWithMNC,
		Estate:          valueobject.EstateTier2,
		DebtLevel:       valueobject.DebtMedium,
		PaymentHistory:  valueobject.PaymentGood,
	}
	oldClass := valueobject.Classification{SubIndustry: "Garment manufacturing"}
	monthly, err := money.NewFromString("50000", "THB")
	require.NoError(t, err)
	prior := model.ReconstructAssessment("prior", valueobject.RecordTypeAccount, recordID, oldClass, in,
		engine.Score(oldClass, in), &model.Billing{Monthly: monthly, Deposit: monthly.Times(6)}, "user-1",
		time.Now().Add(-time.Hour))
	f.repo.saved = append(f.repo.saved, prior)
}

func colocationMessage(recordID string) dto.RecordClassified {
	return dto.RecordClassified{
		RecordType:  "ACCOUNT",
		RecordID:    recordID,
		Sector:      "Technology & Telecom",
		Industry:    "Data centers & cloud",
		SubIndustry: "Colocation",
	}
}

func TestRescoreRecordUseCase_Execute(t *testing.T) {
	t.Run("rescores with prior inputs and billing", func(t *testing.T) {
		f := newRescoreFixture()
		f.seedPrior(t, "acc-1")

		resp, rescored, err := f.uc.Execute(context.Background(), colocationMessage("acc-1"))
		require.NoError(t, err)
		require.True(t, rescored)

		// 50 + 7 + 10 + 10 + 0 + 5
		assert.Equal(t, 82, resp.Result.Score)
		assert.Equal(t, "BANKABLE", resp.Result.Tier)
		assert.Equal(t, usecase.RescoreActor, resp.AssessedBy)
		require.NotNil(t, resp.Result.Deposit)
		assert.Equal(t, "150000.00", resp.Result.Deposit.Amount)

		assert.Len(t, f.repo.saved, 2)
		assert.Len(t, f.publisher.publishedEvents, 1)
		assert.Len(t, f.recorder.recorded, 1)
		assert.Equal(t, "Colocation", f.store.records[recordKey{"ACCOUNT", "acc-1"}].SubIndustry)
	})

	t.Run("skips records never assessed but keeps the classification", func(t *testing.T) {
		f := newRescoreFixture()

		_, rescored, err := f.uc.Execute(context.Background(), dto.RecordClassified{
			RecordType: "OPPORTUNITY",
			RecordID:   "opp-1",
			Sector:     "Energy & Utilities",
		})
		require.NoError(t, err)

		assert.False(t, rescored)
		assert.Empty(t, f.repo.saved)
		assert.Empty(t, f.publisher.publishedEvents)
		assert.Equal(t, "Energy & Utilities", f.store.records[recordKey{"OPPORTUNITY", "opp-1"}].Sector)
	})

	t.Run("rejects a malformed message", func(t *testing.T) {
		f := newRescoreFixture()

		_, rescored, err := f.uc.Execute(context.Background(), dto.RecordClassified{RecordType: "ACCOUNT"})

		assert.False(t, rescored)
		assert.ErrorIs(t, err, usecase.ErrInvalidRequest)
	})

	t.Run("propagates repository failures", func(t *testing.T) {
		f := newRescoreFixture()
		f.repo.findErr = errors.New("pool exhausted")

		_, rescored, err := f.uc.Execute(context.Background(), dto.RecordClassified{RecordType: "ACCOUNT", RecordID: "acc-1"})

		assert.False(t, rescored)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "load prior assessment")
	})

	t.Run("redelivered message stores one assessment", func(t *testing.T) {
		f := newRescoreFixture()
		f.seedPrior(t, "acc-1")
		f.publisher.publishErr = errors.New("broker down")

		for i := 0; i < 3; i++ {
			_, _, err := f.uc.Execute(context.Background(), colocationMessage("acc-1"))
			require.NoError(t, err)
		}

		assert.Len(t, f.repo.saved, 2)
		assert.Len(t, f.recorder.recorded, 1)
	})

	t.Run("skips when the latest assessment already uses the classification", func(t *testing.T) {
		f := newRescoreFixture()
		f.seedPrior(t, "acc-1")

		_, rescored, err := f.uc.Execute(context.Background(), dto.RecordClassified{
			RecordType: "ACCOUNT", RecordID: "acc-1", SubIndustry: "Garment manufacturing",
		})
		require.NoError(t, err)

		assert.False(t, rescored)
		assert.Len(t, f.repo.saved, 1)
	})
}

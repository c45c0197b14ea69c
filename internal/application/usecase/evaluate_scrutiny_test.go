package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psspowers/underwriting/internal/application/dto"
	"github.com/psspowers/underwriting/internal/application/usecase"
	"github.com/psspowers/underwriting/internal/domain/event"
	"github.com/psspowers/underwriting/internal/domain/valueobject"
	"github.com/psspowers/underwriting/pkg/testutil"
)

type evaluateFixture struct {
	store     *mockClassificationStore
	repo      *mockAssessmentRepository
	publisher *mockEventPublisher
	recorder  *mockAssessmentRecorder
	uc        *usecase.EvaluateScrutinyUseCase
}

func newEvaluateFixture() *evaluateFixture {
	f := &evaluateFixture{
		store:     newMockClassificationStore(),
		repo:      &mockAssessmentRepository{},
		publisher: &mockEventPublisher{},
		recorder:  &mockAssessmentRecorder{},
	}
	f.uc = usecase.NewEvaluateScrutinyUseCase(testScorer(), f.store, f.repo, f.publisher, f.recorder, testLogger())
	return f
}

func bestInputs() dto.ScrutinyInputs {
	return dto.ScrutinyInputs{
		YearsInBusiness:     25,
		Ownership:           "MNC/Listed",
		Estate:              "Tier-1 Estate",
		DebtLevel:           "Low",
		PaymentHistory:      "Excellent",
		FinancialsAvailable: true,
	}
}

// neutralInputs contribute nothing except +5 for the local owner.
func neutralInputs() dto.ScrutinyInputs {
	return dto.ScrutinyInputs{
		YearsInBusiness: 3,
		Ownership:       "Private Local Co",
		Estate:          "Standalone Site",
		DebtLevel:       "Medium",
		PaymentHistory:  "Fair",
	}
}

func TestEvaluateScrutinyUseCase_Execute(t *testing.T) {
	t.Run("records an assessment with the explicit classification", func(t *testing.T) {
		f := newEvaluateFixture()

		resp, err := f.uc.Execute(context.Background(), dto.EvaluateScrutinyRequest{
			RecordType: "ACCOUNT",
			RecordID:   "acc-1",
			Classification: dto.Classification{
				Sector:      "Technology & Telecom",
				Industry:    "Data centers & cloud",
				SubIndustry: "Hyperscale",
			},
			Inputs:     bestInputs(),
			AssessedBy: "user-1",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, resp.ID)
		assert.False(t, resp.DryRun)
		assert.Equal(t, 100, resp.Result.Score)
		assert.Equal(t, "PRIME", resp.Result.Tier)
		assert.Equal(t, 110, resp.Result.Breakdown.Total)
		assert.Equal(t, 1, resp.Result.ReferenceCreditScore)
		require.NotNil(t, resp.Result.MatchedEntry)
		assert.Equal(t, "Hyperscale", resp.Result.MatchedEntry.SubIndustry)
		assert.Equal(t, "user-1", resp.AssessedBy)

		require.Len(t, f.repo.saved, 1)
		assert.Equal(t, resp.ID, f.repo.saved[0].ID())

		require.Len(t, f.publisher.publishedEvents, 1)
		assert.Equal(t, event.TypeAssessmentCompleted, f.publisher.publishedEvents[0].EventType())

		assert.Equal(t, []recordedAssessment{{tier: "PRIME", score: 100}}, f.recorder.recorded)
	})

	t.Run("falls back to the stored classification", func(t *testing.T) {
		f := newEvaluateFixture()
		f.store.records[recordKey{"OPPORTUNITY", "opp-9"}] = valueobject.Classification{
			Sector:      "Agriculture & Agribusiness",
			Industry:    "Agri processing",
			SubIndustry: "Sugar mills",
		}

		resp, err := f.uc.Execute(context.Background(), dto.EvaluateScrutinyRequest{
			RecordType: "OPPORTUNITY",
			RecordID:   "opp-9",
			Inputs:     neutralInputs(),
		})
		require.NoError(t, err)

		assert.Equal(t, "Sugar mills", resp.Classification.SubIndustry)
		assert.Equal(t, 40, resp.Result.Breakdown.BaseScore)
		assert.True(t, resp.Result.Classified)
	})

	t.Run("scores an unclassified record from the neutral base", func(t *testing.T) {
		f := newEvaluateFixture()

		resp, err := f.uc.Execute(context.Background(), dto.EvaluateScrutinyRequest{
			RecordType: "ACCOUNT",
			RecordID:   "acc-2",
			Inputs: dto.ScrutinyInputs{
				YearsInBusiness:     8,
				Ownership:           "Private Local Co",
				Estate:              "Industrial Zone",
				DebtLevel:           "Medium",
				PaymentHistory:      "Good",
				FinancialsAvailable: true,
			},
		})
		require.NoError(t, err)

		assert.False(t, resp.Result.Classified)
		assert.Nil(t, resp.Result.MatchedEntry)
		assert.Equal(t, 55, resp.Result.Score)
		assert.Equal(t, "SPECULATIVE", resp.Result.Tier)
		assert.Equal(t, 6, resp.Result.Terms.DepositMonths)
		assert.True(t, resp.Result.Terms.ParentGuarantee)
	})

	t.Run("dry run persists nothing", func(t *testing.T) {
		f := newEvaluateFixture()

		resp, err := f.uc.Execute(context.Background(), dto.EvaluateScrutinyRequest{
			RecordType: "ACCOUNT",
			RecordID:   "acc-3",
			Inputs:     bestInputs(),
			DryRun:     true,
		})
		require.NoError(t, err)

		assert.True(t, resp.DryRun)
		assert.Empty(t, resp.ID)
		assert.Empty(t, f.repo.saved)
		assert.Empty(t, f.publisher.publishedEvents)
		assert.Empty(t, f.recorder.recorded)
	})

	t.Run("sizes the deposit from monthly billing", func(t *testing.T) {
		f := newEvaluateFixture()

		resp, err := f.uc.Execute(context.Background(), dto.EvaluateScrutinyRequest{
			RecordType: "ACCOUNT",
			RecordID:   "acc-4",
			Inputs: dto.ScrutinyInputs{
				YearsInBusiness: 1,
				Ownership:       "Startup/SME",
				Estate:          "Standalone Site",
				DebtLevel:       "High",
				PaymentHistory:  "Poor",
			},
			MonthlyBilling: &dto.Money{Amount: "80000", Currency: "THB"},
		})
		require.NoError(t, err)

		assert.Equal(t, "HIGH_RISK", resp.Result.Tier)
		require.NotNil(t, resp.Result.Deposit)
		assert.Equal(t, "960000.00", resp.Result.Deposit.Amount)
		assert.Equal(t, "THB", resp.Result.Deposit.Currency)

		billing, ok := f.repo.saved[0].Billing()
		require.True(t, ok)
		assert.Equal(t, "80000.00 THB", billing.Monthly.String())
	})

	t.Run("rejects invalid requests", func(t *testing.T) {
		tests := []struct {
			name string
			req  dto.EvaluateScrutinyRequest
			want error
		}{
			{
				name: "unknown record type",
				req:  dto.EvaluateScrutinyRequest{RecordType: "LEAD", RecordID: "x"},
				want: valueobject.ErrUnknownValue,
			},
			{
				name: "missing record ID",
				req:  dto.EvaluateScrutinyRequest{RecordType: "ACCOUNT"},
				want: usecase.ErrInvalidRequest,
			},
			{
				name: "unknown ownership label",
				req: dto.EvaluateScrutinyRequest{
					RecordType: "ACCOUNT", RecordID: "x",
					Inputs: dto.ScrutinyInputs{Ownership: "Family office"},
				},
				want: valueobject.ErrUnknownValue,
			},
			{
				name: "missing debt level",
				req: dto.EvaluateScrutinyRequest{
					RecordType: "ACCOUNT", RecordID: "x",
					Inputs: dto.ScrutinyInputs{Ownership: "MNC/Listed", Estate: "Tier-1 Estate", PaymentHistory: "Excellent"},
				},
				want: usecase.ErrInvalidRequest,
			},
			{
				name: "billing below one satang",
				req: dto.EvaluateScrutinyRequest{
					RecordType: "ACCOUNT", RecordID: "x", Inputs: neutralInputs(),
					MonthlyBilling: &dto.Money{Amount: "100.005"},
				},
				want: usecase.ErrInvalidRequest,
			},
			{
				name: "negative billing",
				req: dto.EvaluateScrutinyRequest{
					RecordType: "ACCOUNT", RecordID: "x", Inputs: neutralInputs(),
					MonthlyBilling: &dto.Money{Amount: "-1"},
				},
				want: usecase.ErrInvalidRequest,
			},
			{
				name: "malformed billing",
				req: dto.EvaluateScrutinyRequest{
					RecordType: "ACCOUNT", RecordID: "x", Inputs: neutralInputs(),
					MonthlyBilling: &dto.Money{Amount: "lots"},
				},
				want: usecase.ErrInvalidRequest,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				f := newEvaluateFixture()
				_, err := f.uc.Execute(context.Background(), tt.req)
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.want)
				assert.Empty(t, f.repo.saved)
			})
		}
	})

	t.Run("fails when the classification store fails", func(t *testing.T) {
		f := newEvaluateFixture()
		f.store.getErr = errors.New("connection reset")

		_, err := f.uc.Execute(context.Background(), dto.EvaluateScrutinyRequest{RecordType: "ACCOUNT", RecordID: "x", Inputs: neutralInputs()})

		testutil.AssertErrorContains(t, err, "load classification")
	})

	t.Run("fails when save fails and publishes nothing", func(t *testing.T) {
		f := newEvaluateFixture()
		f.repo.saveErr = errors.New("disk full")

		_, err := f.uc.Execute(context.Background(), dto.EvaluateScrutinyRequest{RecordType: "ACCOUNT", RecordID: "x", Inputs: neutralInputs()})

		testutil.AssertErrorContains(t, err, "save assessment")
		assert.Empty(t, f.publisher.publishedEvents)
		assert.Empty(t, f.recorder.recorded)
	})

	t.Run("keeps the saved assessment when publish fails", func(t *testing.T) {
		f := newEvaluateFixture()
		f.publisher.publishErr = errors.New("broker down")

		resp, err := f.uc.Execute(context.Background(), dto.EvaluateScrutinyRequest{RecordType: "ACCOUNT", RecordID: "x", Inputs: neutralInputs()})

		require.NoError(t, err)
		require.Len(t, f.repo.saved, 1)
		assert.Equal(t, f.repo.saved[0].ID(), resp.ID)
		assert.Len(t, f.recorder.recorded, 1)
		assert.Empty(t, f.publisher.publishedEvents)
	})
}

func TestScoreScrutinyUseCase_Execute(t *testing.T) {
	resp, err := testScorer().Execute(context.Background(), dto.ScoreRequest{
		Classification: dto.Classification{SubIndustry: "Colocation"},
		Inputs:         dto.ScrutinyInputs{YearsInBusiness: 12, Ownership: "JV with MNC", Estate: "Tier-2 Estate", DebtLevel: "Medium", PaymentHistory: "Good"},
		MonthlyBilling: &dto.Money{Amount: "100000.50", Currency: "USD"},
	})
	require.NoError(t, err)

	assert.Equal(t, 82, resp.Score)
	assert.Equal(t, "BANKABLE", resp.Tier)
	assert.Equal(t, "Require 3-month security deposit.", resp.Guidance)
	require.NotNil(t, resp.Deposit)
	assert.Equal(t, "300001.50", resp.Deposit.Amount)
	assert.Equal(t, "USD", resp.Deposit.Currency)
}

func TestParseInputs(t *testing.T) {
	in, err := usecase.ParseInputs(dto.ScrutinyInputs{
		YearsInBusiness: 4,
		Ownership:       "JV with MNC",
		Estate:          "Tier-2 Estate",
		DebtLevel:       "Medium",
		PaymentHistory:  "Fair",
	})
	require.NoError(t, err)
	assert.Equal(t, valueobject.OwnershipJVWithMNC, in.Ownership)
	assert.Equal(t, valueobject.EstateTier2, in.Estate)
	assert.Equal(t, valueobject.DebtMedium, in.DebtLevel)
	assert.Equal(t, valueobject.PaymentFair, in.PaymentHistory)

	trailing, err := usecase.ParseInputs(dto.ScrutinyInputs{
		Ownership:      "JV with MNC",
		Estate:         "Tier-2 Estate",
		DebtLevel:      "Medium",
		PaymentHistory: "Fair",
	})
	require.NoError(t, err)
	assert.Zero(t, trailing.YearsInBusiness)

	with := func(mutate func(*dto.ScrutinyInputs)) dto.ScrutinyInputs {
		in := neutralInputs()
		mutate(&in)
		return in
	}

	for _, bad := range []dto.ScrutinyInputs{
		with(func(in *dto.ScrutinyInputs) { in.Estate = "Tier-3 Estate" }),
		with(func(in *dto.ScrutinyInputs) { in.DebtLevel = "low" }),
		with(func(in *dto.ScrutinyInputs) { in.PaymentHistory = "Great" }),
	} {
		_, err := usecase.ParseInputs(bad)
		assert.ErrorIs(t, err, valueobject.ErrUnknownValue)
	}

	missing := map[string]dto.ScrutinyInputs{
		"ownership":       with(func(in *dto.ScrutinyInputs) { in.Ownership = "" }),
		"estate":          with(func(in *dto.ScrutinyInputs) { in.Estate = "" }),
		"debt_level":      with(func(in *dto.ScrutinyInputs) { in.DebtLevel = "" }),
		"payment_history": with(func(in *dto.ScrutinyInputs) { in.PaymentHistory = "" }),
	}
	for field, in := range missing {
		_, err := usecase.ParseInputs(in)
		require.Error(t, err, field)
		assert.ErrorIs(t, err, usecase.ErrInvalidRequest, field)
		assert.Contains(t, err.Error(), field+" is required")
	}

	_, err = usecase.ParseInputs(dto.ScrutinyInputs{YearsInBusiness: -1})
	assert.ErrorIs(t, err, usecase.ErrInvalidRequest)
}

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
	"github.com/psspowers/underwriting/internal/domain/service"
	"github.com/psspowers/underwriting/internal/domain/taxonomy"
	"github.com/psspowers/underwriting/internal/domain/valueobject"
)

func newClassifyUseCase(store *mockClassificationStore, publisher *mockEventPublisher) *usecase.ClassifyRecordUseCase {
	return usecase.NewClassifyRecordUseCase(
		service.NewClassificationResolver(taxonomy.Default()), store, publisher, testLogger(),
	)
}

func TestClassifyRecordUseCase_Execute(t *testing.T) {
	t.Run("narrows a new record step by step", func(t *testing.T) {
		store := newMockClassificationStore()
		publisher := &mockEventPublisher{}
		uc := newClassifyUseCase(store, publisher)
		ctx := context.Background()

		steps := []dto.ClassifyRecordRequest{
			{RecordType: "ACCOUNT", RecordID: "acc-1", Level: "sector", Value: "Energy & Utilities"},
			{RecordType: "ACCOUNT", RecordID: "acc-1", Level: "industry", Value: "Power generation"},
			{RecordType: "ACCOUNT", RecordID: "acc-1", Level: "sub_industry", Value: "IPP - renewable", ChangedBy: "user-3"},
		}
		var resp dto.ClassificationResponse
		for _, step := range steps {
			var err error
			resp, err = uc.Execute(ctx, step)
			require.NoError(t, err)
		}

		assert.True(t, resp.Complete)
		assert.Equal(t, dto.Classification{
			Sector:      "Energy & Utilities",
			Industry:    "Power generation",
			SubIndustry: "IPP - renewable",
		}, resp.Classification)
		assert.Equal(t, 3, store.puts)

		require.Len(t, publisher.publishedEvents, 3)
		last, ok := publisher.publishedEvents[2].(event.ClassificationChanged)
		require.True(t, ok)
		assert.Equal(t, "sub_industry", last.Level)
		assert.Equal(t, "ACCOUNT/acc-1", last.AggregateID())
		assert.Equal(t, "user-3", last.ChangedBy)
	})

	t.Run("changing the sector clears lower levels", func(t *testing.T) {
		store := newMockClassificationStore()
		store.records[recordKey{"ACCOUNT", "acc-1"}] = valueobject.Classification{
			Sector:      "Energy & Utilities",
			Industry:    "Power generation",
			SubIndustry: "IPP - renewable",
		}
		uc := newClassifyUseCase(store, &mockEventPublisher{})

		resp, err := uc.Execute(context.Background(), dto.ClassifyRecordRequest{
			RecordType: "ACCOUNT", RecordID: "acc-1", Level: "sector", Value: "Agriculture & Agribusiness",
		})
		require.NoError(t, err)

		assert.Equal(t, dto.Classification{Sector: "Agriculture & Agribusiness"}, resp.Classification)
		assert.False(t, resp.Complete)
		assert.Equal(t, valueobject.Classification{Sector: "Agriculture & Agribusiness"},
			store.records[recordKey{"ACCOUNT", "acc-1"}])
	})

	t.Run("rejects an industry outside the stored sector", func(t *testing.T) {
		store := newMockClassificationStore()
		store.records[recordKey{"OPPORTUNITY", "opp-1"}] = valueobject.Classification{Sector: "Energy & Utilities"}
		publisher := &mockEventPublisher{}
		uc := newClassifyUseCase(store, publisher)

		_, err := uc.Execute(context.Background(), dto.ClassifyRecordRequest{
			RecordType: "OPPORTUNITY", RecordID: "opp-1", Level: "industry", Value: "Data centers & cloud",
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, service.ErrInvalidSelection)
		assert.Zero(t, store.puts)
		assert.Empty(t, publisher.publishedEvents)
	})

	t.Run("rejects an unknown level", func(t *testing.T) {
		uc := newClassifyUseCase(newMockClassificationStore(), &mockEventPublisher{})

		_, err := uc.Execute(context.Background(), dto.ClassifyRecordRequest{
			RecordType: "ACCOUNT", RecordID: "acc-1", Level: "region", Value: "APAC",
		})

		assert.ErrorIs(t, err, valueobject.ErrUnknownValue)
	})

	t.Run("fails when the store cannot be read", func(t *testing.T) {
		store := newMockClassificationStore()
		store.getErr = errors.New("timeout")
		uc := newClassifyUseCase(store, &mockEventPublisher{})

		_, err := uc.Execute(context.Background(), dto.ClassifyRecordRequest{
			RecordType: "ACCOUNT", RecordID: "acc-1", Level: "sector", Value: "Energy & Utilities",
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "load classification")
	})

	t.Run("fails when the store cannot be written", func(t *testing.T) {
		store := newMockClassificationStore()
		store.putErr = errors.New("read-only replica")
		publisher := &mockEventPublisher{}
		uc := newClassifyUseCase(store, publisher)

		_, err := uc.Execute(context.Background(), dto.ClassifyRecordRequest{
			RecordType: "ACCOUNT", RecordID: "acc-1", Level: "sector", Value: "Energy & Utilities",
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "save classification")
		assert.Empty(t, publisher.publishedEvents)
	})

	t.Run("keeps the saved classification when publish fails", func(t *testing.T) {
		store := newMockClassificationStore()
		publisher := &mockEventPublisher{publishErr: errors.New("broker down")}
		uc := newClassifyUseCase(store, publisher)

		resp, err := uc.Execute(context.Background(), dto.ClassifyRecordRequest{
			RecordType: "ACCOUNT", RecordID: "acc-1", Level: "sector", Value: "Energy & Utilities",
		})

		require.NoError(t, err)
		assert.Equal(t, "Energy & Utilities", resp.Classification.Sector)
		assert.Equal(t, 1, store.puts)
	})
}

package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"nbrates/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const window = 30 * time.Minute

// --- buildSnapshots ---

func TestBuildSnapshots_SharedTimestampAndWindow(t *testing.T) {
	records := []Record{
		{Code: 36, Rate: decimal.RequireFromString("26.2832"), TextCode: "AUD", CurrencyID: 1},
		{Code: 978, Rate: decimal.RequireFromString("43.1101"), TextCode: "EUR", CurrencyID: 2},
	}
	effectiveAt := time.Date(2024, 5, 16, 12, 0, 0, 0, time.UTC)

	batch := buildSnapshots(records, effectiveAt, window)

	require.Len(t, batch, 2)
	for i, s := range batch {
		require.Equal(t, records[i].CurrencyID, s.CurrencyID)
		require.True(t, records[i].Rate.Equal(s.Rate))
		require.Equal(t, effectiveAt, s.EffectiveAt)
		require.Equal(t, window, s.ValidUntil.Sub(s.EffectiveAt))
	}
}

// --- RunIngestion ---

func TestRunIngestion_HappyPath(t *testing.T) {
	mockSource := new(MockRateSource)
	mockRepo := new(MockCurrencyRepository)
	mockSnapshots := new(MockSnapshotRepository)
	resolver := NewResolver(mockRepo, newStubCache())

	payload := []byte(`[{"r030": 36, "rate": 26.2832, "cc": "AUD", "txt": "Australian Dollar", "exchangedate": "16.05.2024"}]`)
	aud := domain.Currency{ID: 7, Code: 36, TextCode: "AUD", Name: "Australian Dollar"}

	mockSource.On("Fetch", mock.Anything).Return(payload, nil).Once()
	mockRepo.On("GetOrCreate", mock.Anything, 36, "AUD", "Australian Dollar").Return(aud, true, nil).Once()
	mockSnapshots.
		On("InsertBatch", mock.Anything, mock.Anything).
		Return([]domain.RateSnapshot{{ID: 1, CurrencyID: 7}}, nil).
		Run(func(args mock.Arguments) {
			batch, ok := args.Get(1).([]domain.RateSnapshot)
			require.True(t, ok)
			require.Len(t, batch, 1)
			require.Equal(t, int64(7), batch[0].CurrencyID)
			require.True(t, decimal.RequireFromString("26.2832").Equal(batch[0].Rate))
			require.Equal(t, window, batch[0].ValidUntil.Sub(batch[0].EffectiveAt))
			require.WithinDuration(t, time.Now().UTC(), batch[0].EffectiveAt, 5*time.Second)
		}).Once()

	err := RunIngestion(context.Background(), "exec-1", mockSource, resolver, mockSnapshots, window)

	require.NoError(t, err)
	mockSource.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
	mockSnapshots.AssertExpectations(t)
}

func TestRunIngestion_EmptyFetchResult_ShortCircuits(t *testing.T) {
	mockSource := new(MockRateSource)
	mockRepo := new(MockCurrencyRepository)
	mockSnapshots := new(MockSnapshotRepository)
	resolver := NewResolver(mockRepo, newStubCache())

	mockSource.On("Fetch", mock.Anything).Return([]byte{}, nil).Once()

	err := RunIngestion(context.Background(), "exec-2", mockSource, resolver, mockSnapshots, window)

	require.NoError(t, err)
	mockRepo.AssertNotCalled(t, "GetOrCreate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockSnapshots.AssertNotCalled(t, "InsertBatch", mock.Anything, mock.Anything)
	mockSource.AssertExpectations(t)
}

func TestRunIngestion_TransportFailure_RecoveredLocally(t *testing.T) {
	mockSource := new(MockRateSource)
	mockRepo := new(MockCurrencyRepository)
	mockSnapshots := new(MockSnapshotRepository)
	resolver := NewResolver(mockRepo, newStubCache())

	mockSource.On("Fetch", mock.Anything).Return(nil, errors.New("context deadline exceeded")).Once()

	err := RunIngestion(context.Background(), "exec-3", mockSource, resolver, mockSnapshots, window)

	// fail-soft: the cycle is skipped, no error escapes
	require.NoError(t, err)
	mockSnapshots.AssertNotCalled(t, "InsertBatch", mock.Anything, mock.Anything)
	mockSource.AssertExpectations(t)
}

func TestRunIngestion_MalformedPayload_FailsCycle(t *testing.T) {
	mockSource := new(MockRateSource)
	mockRepo := new(MockCurrencyRepository)
	mockSnapshots := new(MockSnapshotRepository)
	resolver := NewResolver(mockRepo, newStubCache())

	mockSource.On("Fetch", mock.Anything).Return([]byte(`{broken`), nil).Once()

	err := RunIngestion(context.Background(), "exec-4", mockSource, resolver, mockSnapshots, window)

	require.Error(t, err)
	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	mockRepo.AssertNotCalled(t, "GetOrCreate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockSnapshots.AssertNotCalled(t, "InsertBatch", mock.Anything, mock.Anything)
}

func TestRunIngestion_ResolverError_Propagates(t *testing.T) {
	mockSource := new(MockRateSource)
	mockRepo := new(MockCurrencyRepository)
	mockSnapshots := new(MockSnapshotRepository)
	resolver := NewResolver(mockRepo, newStubCache())
	wantErr := errors.New("db fail")

	mockSource.On("Fetch", mock.Anything).Return([]byte(`[{"r030": 36, "rate": 1.0, "cc": "AUD"}]`), nil).Once()
	mockRepo.On("GetOrCreate", mock.Anything, 36, "AUD", "").Return(domain.Currency{}, false, wantErr).Once()

	err := RunIngestion(context.Background(), "exec-5", mockSource, resolver, mockSnapshots, window)

	require.Error(t, err)
	require.ErrorIs(t, err, wantErr)
	mockSnapshots.AssertNotCalled(t, "InsertBatch", mock.Anything, mock.Anything)
}

func TestRunIngestion_WriteFailure_Propagates(t *testing.T) {
	mockSource := new(MockRateSource)
	mockRepo := new(MockCurrencyRepository)
	mockSnapshots := new(MockSnapshotRepository)
	resolver := NewResolver(mockRepo, newStubCache())
	wantErr := errors.New("store unavailable")

	mockSource.On("Fetch", mock.Anything).Return([]byte(`[{"r030": 36, "rate": 1.0, "cc": "AUD"}]`), nil).Once()
	mockRepo.On("GetOrCreate", mock.Anything, 36, "AUD", "").Return(domain.Currency{ID: 7, Code: 36}, true, nil).Once()
	mockSnapshots.On("InsertBatch", mock.Anything, mock.Anything).Return(nil, wantErr).Once()

	err := RunIngestion(context.Background(), "exec-6", mockSource, resolver, mockSnapshots, window)

	require.Error(t, err)
	require.ErrorContains(t, err, "failed to write rate snapshots")
	mockSnapshots.AssertExpectations(t)
}

func TestRunIngestion_SecondCycle_ReusesIdentity(t *testing.T) {
	mockSource := new(MockRateSource)
	mockRepo := new(MockCurrencyRepository)
	mockSnapshots := new(MockSnapshotRepository)
	resolver := NewResolver(mockRepo, newStubCache())
	aud := domain.Currency{ID: 7, Code: 36, TextCode: "AUD"}

	mockSource.On("Fetch", mock.Anything).Return([]byte(`[{"r030": 36, "rate": 26.28, "cc": "AUD"}]`), nil).Once()
	mockSource.On("Fetch", mock.Anything).Return([]byte(`[{"r030": 36, "rate": 27.01, "cc": "AUD"}]`), nil).Once()
	// identity is created once; the second cycle is a cache hit
	mockRepo.On("GetOrCreate", mock.Anything, 36, "AUD", "").Return(aud, true, nil).Once()
	mockSnapshots.On("InsertBatch", mock.Anything, mock.Anything).Return([]domain.RateSnapshot{{ID: 1}}, nil).Twice()

	require.NoError(t, RunIngestion(context.Background(), "exec-7a", mockSource, resolver, mockSnapshots, window))
	require.NoError(t, RunIngestion(context.Background(), "exec-7b", mockSource, resolver, mockSnapshots, window))

	mockSource.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
	mockSnapshots.AssertExpectations(t)
}

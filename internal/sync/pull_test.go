package sync

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iupui-soic/dhis2-android-sdk/internal/api"
	"github.com/iupui-soic/dhis2-android-sdk/internal/logger"
	"github.com/iupui-soic/dhis2-android-sdk/internal/mock"
	"github.com/iupui-soic/dhis2-android-sdk/internal/store"
	"github.com/iupui-soic/dhis2-android-sdk/models"
)

func newTestPull(storages *store.Storages, fetcher MetadataFetcher, uids []string) *Pull {
	return NewPull(
		stagesSchema(),
		uids,
		fetcher,
		storages.DB,
		storages.Watermarks,
		NewApplier(storages.Records),
		logger.Nop(),
	)
}

// TestPull_FirstRun verifies the initial pull: no lastUpdated clause yet,
// records applied, watermark set to the server response time.
func TestPull_FirstRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	storages := newTestStorages(t)
	fetcher := mock.NewMockMetadataFetcher(ctrl)
	ctx := context.Background()

	serverTime := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	records := []models.Record{
		mustRecord(t, `{"id":"p1","name":"Immunization","lastUpdated":"2026-02-28T09:00:00.000"}`),
	}

	var gotFilters []api.Filter
	fetcher.EXPECT().
		Metadata(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ api.Schema, filters ...api.Filter) ([]models.Record, time.Time, error) {
			gotFilters = filters
			return records, serverTime, nil
		})

	result, err := newTestPull(storages, fetcher, []string{"p1", "p2"}).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Fetched)
	assert.True(t, serverTime.Equal(result.ServerTime))

	require.Len(t, gotFilters, 1)
	assert.Equal(t, "id:in:[p1,p2]", gotFilters[0].String())

	stored, err := storages.Records.Get(ctx, "programs", "p1")
	require.NoError(t, err)
	assert.True(t, stored.Synced)

	wm, err := storages.Watermarks.Get(ctx, "programs")
	require.NoError(t, err)
	require.True(t, wm.LastSynced.Valid)
	assert.True(t, serverTime.Equal(wm.LastSynced.Time))
}

// TestPull_SecondRun verifies the incremental window: once a watermark
// exists, the fetch carries a strictly-greater-than lastUpdated clause.
func TestPull_SecondRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	storages := newTestStorages(t)
	fetcher := mock.NewMockMetadataFetcher(ctrl)
	ctx := context.Background()

	firstTime := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	fetcher.EXPECT().
		Metadata(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, firstTime, nil)
	_, err := newTestPull(storages, fetcher, []string{"p1"}).Execute(ctx)
	require.NoError(t, err)

	var gotFilters []api.Filter
	secondTime := firstTime.Add(time.Hour)
	fetcher.EXPECT().
		Metadata(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ api.Schema, filters ...api.Filter) ([]models.Record, time.Time, error) {
			gotFilters = filters
			return nil, secondTime, nil
		})
	_, err = newTestPull(storages, fetcher, []string{"p1"}).Execute(ctx)
	require.NoError(t, err)

	require.Len(t, gotFilters, 2)
	assert.Equal(t, "id:in:[p1]", gotFilters[0].String())
	assert.True(t, strings.HasPrefix(gotFilters[1].String(), "lastUpdated:gt:"))

	wm, err := storages.Watermarks.Get(ctx, "programs")
	require.NoError(t, err)
	assert.True(t, secondTime.Equal(wm.LastSynced.Time))
}

// TestPull_EmptyResultAdvancesWatermark verifies that a committed pull with
// nothing to apply still leaves a watermark behind.
func TestPull_EmptyResultAdvancesWatermark(t *testing.T) {
	ctrl := gomock.NewController(t)
	storages := newTestStorages(t)
	fetcher := mock.NewMockMetadataFetcher(ctrl)

	serverTime := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	fetcher.EXPECT().
		Metadata(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, serverTime, nil)

	result, err := newTestPull(storages, fetcher, []string{"p1"}).Execute(context.Background())
	require.NoError(t, err)
	assert.Zero(t, result.Fetched)

	wm, err := storages.Watermarks.Get(context.Background(), "programs")
	require.NoError(t, err)
	assert.True(t, wm.LastSynced.Valid)
}

// TestPull_FetchFailureLeavesStateUntouched verifies that a failed fetch
// mutates nothing, so the same window is retried later.
func TestPull_FetchFailureLeavesStateUntouched(t *testing.T) {
	ctrl := gomock.NewController(t)
	storages := newTestStorages(t)
	fetcher := mock.NewMockMetadataFetcher(ctrl)

	fetcher.EXPECT().
		Metadata(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, time.Time{}, api.ErrTransport)

	_, err := newTestPull(storages, fetcher, []string{"p1"}).Execute(context.Background())
	require.ErrorIs(t, err, api.ErrTransport)

	wm, err := storages.Watermarks.Get(context.Background(), "programs")
	require.NoError(t, err)
	assert.False(t, wm.LastSynced.Valid)
}

// TestPull_ApplyFailureRollsBack verifies the all-or-nothing contract: one
// malformed record aborts the transaction, leaving no partial rows and no
// watermark.
func TestPull_ApplyFailureRollsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	storages := newTestStorages(t)
	fetcher := mock.NewMockMetadataFetcher(ctrl)
	ctx := context.Background()

	good := mustRecord(t, `{"id":"p1","name":"ok"}`)
	// A child without an id fails envelope decoding during apply.
	bad := mustRecord(t, `{"id":"p2","programStages":[{"name":"no id"}]}`)

	fetcher.EXPECT().
		Metadata(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]models.Record{good, bad}, time.Now(), nil)

	_, err := newTestPull(storages, fetcher, []string{"p1", "p2"}).Execute(ctx)
	require.Error(t, err)

	_, err = storages.Records.Get(ctx, "programs", "p1")
	assert.ErrorIs(t, err, store.ErrRecordNotFound)

	wm, err := storages.Watermarks.Get(ctx, "programs")
	require.NoError(t, err)
	assert.False(t, wm.LastSynced.Valid)
}

// TestPull_SingleUse verifies the one-shot lifecycle of a pull instance.
func TestPull_SingleUse(t *testing.T) {
	ctrl := gomock.NewController(t)
	storages := newTestStorages(t)
	fetcher := mock.NewMockMetadataFetcher(ctrl)

	fetcher.EXPECT().
		Metadata(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, time.Now(), nil)

	pull := newTestPull(storages, fetcher, []string{"p1"})
	assert.False(t, pull.Executed())

	_, err := pull.Execute(context.Background())
	require.NoError(t, err)
	assert.True(t, pull.Executed())

	_, err = pull.Execute(context.Background())
	assert.ErrorIs(t, err, ErrAlreadyExecuted)
}

// TestPull_Idempotent verifies that re-pulling an unchanged window adds no
// rows and leaves the watermark where it was.
func TestPull_Idempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	storages := newTestStorages(t)
	fetcher := mock.NewMockMetadataFetcher(ctrl)
	ctx := context.Background()

	serverTime := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	records := []models.Record{mustRecord(t, `{"id":"p1","name":"Immunization"}`)}

	fetcher.EXPECT().
		Metadata(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(records, serverTime, nil)
	_, err := newTestPull(storages, fetcher, []string{"p1"}).Execute(ctx)
	require.NoError(t, err)

	fetcher.EXPECT().
		Metadata(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(records, serverTime, nil)
	_, err = newTestPull(storages, fetcher, []string{"p1"}).Execute(ctx)
	require.NoError(t, err)

	all, err := storages.Records.ByUIDs(ctx, "programs", nil)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	wm, err := storages.Watermarks.Get(ctx, "programs")
	require.NoError(t, err)
	assert.True(t, serverTime.Equal(wm.LastSynced.Time))
}

package sync

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iupui-soic/dhis2-android-sdk/internal/api"
	"github.com/iupui-soic/dhis2-android-sdk/internal/logger"
	"github.com/iupui-soic/dhis2-android-sdk/internal/mock"
	"github.com/iupui-soic/dhis2-android-sdk/internal/store"
	"github.com/iupui-soic/dhis2-android-sdk/models"
)

func newTestPusher(storages *store.Storages, remote Submitter) *Pusher {
	return NewPusher("events", remote, storages.DB, storages.Records, storages.FailedItems, logger.Nop())
}

func TestPush_NoRecords(t *testing.T) {
	ctrl := gomock.NewController(t)
	storages := newTestStorages(t)
	remote := mock.NewMockSubmitter(ctrl)

	report := newTestPusher(storages, remote).Push(context.Background())
	assert.Empty(t, report.Items)
	assert.Equal(t, models.OutcomeSucceeded, report.Outcome())
}

// TestPush_SingleAccepted verifies the happy path: the record is marked
// synced and any ledger entry for it is cleared.
func TestPush_SingleAccepted(t *testing.T) {
	ctrl := gomock.NewController(t)
	storages := newTestStorages(t)
	remote := mock.NewMockSubmitter(ctrl)
	ctx := context.Background()

	record := seedDirty(t, storages, "events", "e1")
	require.NoError(t, storages.FailedItems.Upsert(ctx, models.FailedItem{
		ItemType: "events", ItemID: "e1", Kind: models.FailureTransport,
	}))

	remote.EXPECT().
		SubmitOne(gomock.Any(), "events", gomock.Any()).
		Return(models.ImportSummary{Status: models.ImportStatusSuccess, Reference: "e1"}, nil)

	report := newTestPusher(storages, remote).Push(ctx, record)
	require.Len(t, report.Items, 1)
	assert.Equal(t, models.ItemSynced, report.Items[0].State)
	assert.Equal(t, models.OutcomeSucceeded, report.Outcome())

	stored, err := storages.Records.Get(ctx, "events", "e1")
	require.NoError(t, err)
	assert.True(t, stored.Synced)

	failures, err := storages.FailedItems.List(ctx, "events")
	require.NoError(t, err)
	assert.Empty(t, failures)
}

// TestPush_SingleRejected verifies that a server rejection lands in the
// ledger as such and the record stays dirty for inspection.
func TestPush_SingleRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	storages := newTestStorages(t)
	remote := mock.NewMockSubmitter(ctrl)
	ctx := context.Background()

	record := seedDirty(t, storages, "events", "e1")

	remote.EXPECT().
		SubmitOne(gomock.Any(), "events", gomock.Any()).
		Return(models.ImportSummary{
			Status:      models.ImportStatusError,
			Reference:   "e1",
			Description: "value type mismatch",
			HTTPCode:    409,
		}, nil)

	report := newTestPusher(storages, remote).Push(ctx, record)
	require.Len(t, report.Items, 1)
	assert.Equal(t, models.ItemFailed, report.Items[0].State)
	assert.Equal(t, models.OutcomeFailed, report.Outcome())

	failures, err := storages.FailedItems.List(ctx, "events")
	require.NoError(t, err)
	require.Len(t, failures, 1)
	assert.Equal(t, models.FailureRejected, failures[0].Kind)
	require.NotNil(t, failures[0].ErrorCode)
	assert.Equal(t, 409, *failures[0].ErrorCode)
	assert.Equal(t, "value type mismatch", failures[0].ErrorBody)

	stored, err := storages.Records.Get(ctx, "events", "e1")
	require.NoError(t, err)
	assert.False(t, stored.Synced)
}

// TestPush_SingleWarning verifies that a warning changes nothing: the record
// stays dirty and no ledger entry appears.
func TestPush_SingleWarning(t *testing.T) {
	ctrl := gomock.NewController(t)
	storages := newTestStorages(t)
	remote := mock.NewMockSubmitter(ctrl)
	ctx := context.Background()

	record := seedDirty(t, storages, "events", "e1")

	remote.EXPECT().
		SubmitOne(gomock.Any(), "events", gomock.Any()).
		Return(models.ImportSummary{Status: models.ImportStatusWarning, Reference: "e1"}, nil)

	report := newTestPusher(storages, remote).Push(ctx, record)
	require.Len(t, report.Items, 1)
	assert.Equal(t, models.ItemSkipped, report.Items[0].State)

	failures, err := storages.FailedItems.List(ctx, "events")
	require.NoError(t, err)
	assert.Empty(t, failures)

	stored, err := storages.Records.Get(ctx, "events", "e1")
	require.NoError(t, err)
	assert.False(t, stored.Synced)
}

// TestPush_TransportFailure verifies the channel failure classification,
// including the HTTP code recovered from the error chain when present.
func TestPush_TransportFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	storages := newTestStorages(t)
	remote := mock.NewMockSubmitter(ctrl)
	ctx := context.Background()

	record := seedDirty(t, storages, "events", "e1")

	submitErr := fmt.Errorf("submit: %w", &api.StatusError{Code: 502, Body: "bad gateway"})
	remote.EXPECT().
		SubmitOne(gomock.Any(), "events", gomock.Any()).
		Return(models.ImportSummary{}, submitErr)

	report := newTestPusher(storages, remote).Push(ctx, record)
	require.Len(t, report.Items, 1)
	assert.Equal(t, models.ItemFailed, report.Items[0].State)

	failures, err := storages.FailedItems.List(ctx, "events")
	require.NoError(t, err)
	require.Len(t, failures, 1)
	assert.Equal(t, models.FailureTransport, failures[0].Kind)
	require.NotNil(t, failures[0].ErrorCode)
	assert.Equal(t, 502, *failures[0].ErrorCode)
}

// TestPush_BatchMixedOutcomes verifies per-item classification within one
// batch, including an item the server returned no verdict for.
func TestPush_BatchMixedOutcomes(t *testing.T) {
	ctrl := gomock.NewController(t)
	storages := newTestStorages(t)
	remote := mock.NewMockSubmitter(ctrl)
	ctx := context.Background()

	r1 := seedDirty(t, storages, "events", "e1")
	r2 := seedDirty(t, storages, "events", "e2")
	r3 := seedDirty(t, storages, "events", "e3")

	remote.EXPECT().
		SubmitBatch(gomock.Any(), "events", gomock.Any()).
		Return([]models.ImportSummary{
			{Status: models.ImportStatusSuccess, Reference: "e1"},
			{Status: models.ImportStatusError, Reference: "e2", Description: "rejected"},
		}, nil)

	report := newTestPusher(storages, remote).Push(ctx, r1, r2, r3)
	require.Len(t, report.Items, 3)
	assert.Equal(t, models.OutcomePartiallyFailed, report.Outcome())
	assert.Equal(t, 1, report.Synced())
	assert.Equal(t, 1, report.Failed())

	states := map[string]models.ItemState{}
	for _, item := range report.Items {
		states[item.UID] = item.State
	}
	assert.Equal(t, models.ItemSynced, states["e1"])
	assert.Equal(t, models.ItemFailed, states["e2"])
	assert.Equal(t, models.ItemSkipped, states["e3"])

	// The unanswered item stays dirty and retryable.
	dirty, err := storages.Records.Dirty(ctx, "events")
	require.NoError(t, err)
	require.Len(t, dirty, 2)
}

// TestPush_BatchFallsBackToSerial verifies that a failed batch call degrades
// to per-record submission instead of failing the whole cycle.
func TestPush_BatchFallsBackToSerial(t *testing.T) {
	ctrl := gomock.NewController(t)
	storages := newTestStorages(t)
	remote := mock.NewMockSubmitter(ctrl)
	ctx := context.Background()

	r1 := seedDirty(t, storages, "events", "e1")
	r2 := seedDirty(t, storages, "events", "e2")

	remote.EXPECT().
		SubmitBatch(gomock.Any(), "events", gomock.Any()).
		Return(nil, api.ErrTransport)
	remote.EXPECT().
		SubmitOne(gomock.Any(), "events", gomock.Any()).
		Return(models.ImportSummary{Status: models.ImportStatusSuccess, Reference: "e1"}, nil)
	remote.EXPECT().
		SubmitOne(gomock.Any(), "events", gomock.Any()).
		Return(models.ImportSummary{Status: models.ImportStatusSuccess, Reference: "e2"}, nil)

	report := newTestPusher(storages, remote).Push(ctx, r1, r2)
	require.Len(t, report.Items, 2)
	assert.Equal(t, models.OutcomeSucceeded, report.Outcome())
	assert.Equal(t, 2, report.Synced())
}

// TestPush_AllFailed verifies the aggregate classification when every item
// fails.
func TestPush_AllFailed(t *testing.T) {
	ctrl := gomock.NewController(t)
	storages := newTestStorages(t)
	remote := mock.NewMockSubmitter(ctrl)
	ctx := context.Background()

	r1 := seedDirty(t, storages, "events", "e1")
	r2 := seedDirty(t, storages, "events", "e2")

	remote.EXPECT().
		SubmitBatch(gomock.Any(), "events", gomock.Any()).
		Return([]models.ImportSummary{
			{Status: models.ImportStatusError, Reference: "e1"},
			{Status: models.ImportStatusError, Reference: "e2"},
		}, nil)

	report := newTestPusher(storages, remote).Push(ctx, r1, r2)
	assert.Equal(t, models.OutcomeFailed, report.Outcome())

	failures, err := storages.FailedItems.List(ctx, "events")
	require.NoError(t, err)
	assert.Len(t, failures, 2)
}

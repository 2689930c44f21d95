package sync

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iupui-soic/dhis2-android-sdk/internal/api"
	"github.com/iupui-soic/dhis2-android-sdk/internal/logger"
	"github.com/iupui-soic/dhis2-android-sdk/internal/mock"
	"github.com/iupui-soic/dhis2-android-sdk/models"
)

func TestServicePull_UnknownResource(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := NewService(DefaultRegistry(), mock.NewMockRemoteAPI(ctrl), newTestStorages(t), logger.Nop())

	_, err := service.Pull(context.Background(), "nosuch", nil)
	assert.ErrorIs(t, err, ErrUnknownResource)
}

func TestServicePush_UnknownResource(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := NewService(DefaultRegistry(), mock.NewMockRemoteAPI(ctrl), newTestStorages(t), logger.Nop())

	_, err := service.Push(context.Background(), "nosuch")
	assert.ErrorIs(t, err, ErrUnknownResource)
}

// TestServicePush_ScansDirtyRecords verifies that push picks up exactly the
// unsynced records of the requested resource type.
func TestServicePush_ScansDirtyRecords(t *testing.T) {
	ctrl := gomock.NewController(t)
	storages := newTestStorages(t)
	remote := mock.NewMockRemoteAPI(ctrl)
	service := NewService(DefaultRegistry(), remote, storages, logger.Nop())
	ctx := context.Background()

	seedDirty(t, storages, "events", "e1")
	seedDirty(t, storages, "events", "e2")

	remote.EXPECT().
		SubmitBatch(gomock.Any(), "events", gomock.Len(2)).
		Return([]models.ImportSummary{
			{Status: models.ImportStatusSuccess, Reference: "e1"},
			{Status: models.ImportStatusSuccess, Reference: "e2"},
		}, nil)

	report, err := service.Push(ctx, "events")
	require.NoError(t, err)
	assert.Equal(t, 2, report.Synced())

	// Nothing dirty remains, so the next cycle submits nothing.
	report, err = service.Push(ctx, "events")
	require.NoError(t, err)
	assert.Empty(t, report.Items)
}

// TestServicePull_EndToEnd verifies the facade wiring: registry lookup,
// pull execution, and the committed result.
func TestServicePull_EndToEnd(t *testing.T) {
	ctrl := gomock.NewController(t)
	storages := newTestStorages(t)
	remote := mock.NewMockRemoteAPI(ctrl)
	service := NewService(DefaultRegistry(), remote, storages, logger.Nop())
	ctx := context.Background()

	serverTime := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	remote.EXPECT().
		Metadata(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]models.Record{mustRecord(t, `{"id":"p1","name":"Immunization"}`)}, serverTime, nil)

	result, err := service.Pull(ctx, "programs", []string{"p1"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Fetched)

	stored, err := storages.Records.Get(ctx, "programs", "p1")
	require.NoError(t, err)
	assert.True(t, stored.Synced)
}

// TestServicePull_SerializesPerResource verifies the single-flight guarantee:
// two concurrent pulls of one resource type never overlap inside the engine.
func TestServicePull_SerializesPerResource(t *testing.T) {
	ctrl := gomock.NewController(t)
	storages := newTestStorages(t)
	remote := mock.NewMockRemoteAPI(ctrl)
	service := NewService(DefaultRegistry(), remote, storages, logger.Nop())

	inFlight := make(chan struct{}, 2)
	remote.EXPECT().
		Metadata(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ api.Schema, _ ...api.Filter) ([]models.Record, time.Time, error) {
			inFlight <- struct{}{}
			defer func() { <-inFlight }()
			// With both pulls running unserialized the channel would hold
			// two tokens at once.
			assert.Len(t, inFlight, 1)
			time.Sleep(10 * time.Millisecond)
			return nil, time.Now(), nil
		}).
		Times(2)

	done := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := service.Pull(context.Background(), "programs", []string{"p1"})
			done <- err
		}()
	}
	for i := 0; i < 2; i++ {
		require.NoError(t, <-done)
	}
}

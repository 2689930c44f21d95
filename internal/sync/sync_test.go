package sync

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iupui-soic/dhis2-android-sdk/internal/api"
	"github.com/iupui-soic/dhis2-android-sdk/internal/config"
	"github.com/iupui-soic/dhis2-android-sdk/internal/logger"
	"github.com/iupui-soic/dhis2-android-sdk/internal/store"
	"github.com/iupui-soic/dhis2-android-sdk/models"
)

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func newTestStorages(t *testing.T) *store.Storages {
	t.Helper()

	cfg := config.ClientStorage{DB: config.ClientDB{DSN: ":memory:"}}
	storages, err := store.NewStorages(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { storages.DB.Close() })

	return storages
}

// mustRecord decodes a raw JSON object into a record the way the remote
// client would.
func mustRecord(t *testing.T, body string) models.Record {
	t.Helper()

	var record models.Record
	require.NoError(t, json.Unmarshal([]byte(body), &record))
	return record
}

// seedDirty stores one unsynced local record of the given resource type.
func seedDirty(t *testing.T, storages *store.Storages, resource, uid string) models.Record {
	t.Helper()

	record := models.Record{
		Resource: resource,
		UID:      uid,
		Body:     json.RawMessage(`{"id":"` + uid + `","status":"ACTIVE"}`),
	}
	err := storages.DB.WithinTx(context.Background(), func(tx *sql.Tx) error {
		return storages.Records.UpsertTx(context.Background(), tx, record, "", "")
	})
	require.NoError(t, err)
	return record
}

// stagesSchema is a two-level projection used across the pull tests.
func stagesSchema() api.Schema {
	return api.Schema{
		Resource: "programs",
		Fields: []api.Field{
			api.F("id"), api.F("name"), api.F("lastUpdated"),
			api.Nest("programStages", api.Schema{
				Resource: "programStages",
				Fields:   []api.Field{api.F("id"), api.F("name")},
			}),
		},
	}
}

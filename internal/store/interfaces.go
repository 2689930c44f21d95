package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/iupui-soic/dhis2-android-sdk/models"
)

// WatermarkRepository persists, per resource type, the timestamp of the last
// successfully applied pull.
type WatermarkRepository interface {
	Get(ctx context.Context, resource string) (models.Watermark, error)
	AdvanceTx(ctx context.Context, tx *sql.Tx, resource string, serverTime time.Time) error
	List(ctx context.Context) ([]models.Watermark, error)
}

// RecordRepository is the generic local store for syncable records of every
// resource type.
type RecordRepository interface {
	UpsertTx(ctx context.Context, tx *sql.Tx, record models.Record, parentType, parentUID string) error
	MarkSyncedTx(ctx context.Context, tx *sql.Tx, resource, uid string) error
	Get(ctx context.Context, resource, uid string) (models.Record, error)
	ByUIDs(ctx context.Context, resource string, uids []string) ([]models.Record, error)
	Dirty(ctx context.Context, resource string) ([]models.Record, error)
	CreateLocal(ctx context.Context, resource string, body []byte) (models.Record, error)
}

// FailedItemRepository is the keyed ledger of unresolved push failures.
type FailedItemRepository interface {
	Upsert(ctx context.Context, item models.FailedItem) error
	UpsertTx(ctx context.Context, tx *sql.Tx, item models.FailedItem) error
	Clear(ctx context.Context, itemType, itemID string) error
	ClearTx(ctx context.Context, tx *sql.Tx, itemType, itemID string) error
	List(ctx context.Context, itemType string) ([]models.FailedItem, error)
}

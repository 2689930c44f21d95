package sync

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/iupui-soic/dhis2-android-sdk/internal/api"
	"github.com/iupui-soic/dhis2-android-sdk/internal/store"
	"github.com/iupui-soic/dhis2-android-sdk/models"
)

// Applier writes fetched records and their nested children into local
// storage, driven by the projection schema instead of per-type handler
// classes. All writes happen inside the caller's transaction; any failure
// aborts the whole pull.
type Applier struct {
	records store.RecordRepository
}

func NewApplier(records store.RecordRepository) *Applier {
	return &Applier{records: records}
}

// ApplyTx upserts one record and, recursively, every owned child collection
// the schema names. Records flagged deleted become tombstones: the local row
// is kept with its deleted flag set, never removed. Applied records are the
// only place the sync-state flag is set from the pull path.
func (a *Applier) ApplyTx(ctx context.Context, tx *sql.Tx, schema api.Schema, record models.Record, parentType, parentUID string) error {
	record.Resource = schema.Resource
	record.Synced = true

	if err := a.records.UpsertTx(ctx, tx, record, parentType, parentUID); err != nil {
		return err
	}

	for _, child := range schema.ChildCollections() {
		children, err := extractChildren(record.Body, child.Name)
		if err != nil {
			return fmt.Errorf("extract %s of %s/%s: %w", child.Name, schema.Resource, record.UID, err)
		}

		for _, nested := range children {
			if err = a.ApplyTx(ctx, tx, *child.Nested, nested, schema.Resource, record.UID); err != nil {
				return err
			}
		}
	}

	return nil
}

// extractChildren pulls the named child collection out of the raw record
// body. A missing or null field is an empty collection.
func extractChildren(body json.RawMessage, field string) ([]models.Record, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode record body: %w", err)
	}

	raw, ok := envelope[field]
	if !ok || string(raw) == "null" {
		return nil, nil
	}

	var children []models.Record
	if err := json.Unmarshal(raw, &children); err != nil {
		return nil, fmt.Errorf("decode child collection: %w", err)
	}

	return children, nil
}

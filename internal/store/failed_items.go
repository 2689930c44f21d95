package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/iupui-soic/dhis2-android-sdk/internal/logger"
	"github.com/iupui-soic/dhis2-android-sdk/models"
)

type failedItemRepository struct {
	*DB
	logger *logger.Logger
}

// NewFailedItemRepository constructs the push failure ledger backed by the
// "failed_items" table. The ledger keeps at most one live row per
// (item type, item id) key.
func NewFailedItemRepository(db *DB, logger *logger.Logger) FailedItemRepository {
	return &failedItemRepository{
		DB:     db,
		logger: logger,
	}
}

// Upsert records item as the most recent failure for its key, overwriting
// any previous failure record.
func (f *failedItemRepository) Upsert(ctx context.Context, item models.FailedItem) error {
	return f.upsert(ctx, f.DB, item)
}

// UpsertTx is Upsert inside an open transaction.
func (f *failedItemRepository) UpsertTx(ctx context.Context, tx *sql.Tx, item models.FailedItem) error {
	return f.upsert(ctx, tx, item)
}

func (f *failedItemRepository) upsert(ctx context.Context, exec executor, item models.FailedItem) error {
	log := logger.FromContext(ctx)

	createdAt := item.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	var errorCode sql.NullInt64
	if item.ErrorCode != nil {
		errorCode = sql.NullInt64{Int64: int64(*item.ErrorCode), Valid: true}
	}

	_, err := exec.ExecContext(ctx, upsertFailedItem,
		item.ItemType,
		item.ItemID,
		string(item.Kind),
		errorCode,
		item.ErrorBody,
		createdAt,
	)
	if err != nil {
		log.Err(err).
			Str("func", "failedItemRepository.Upsert").
			Str("item_type", item.ItemType).
			Str("item_id", item.ItemID).
			Msg("failed to upsert failed item")
		return fmt.Errorf("failed to upsert failed item (%s/%s): %w", item.ItemType, item.ItemID, err)
	}

	return nil
}

// Clear removes the failure record for the key, if any. Clearing an absent
// key is a no-op: a successful push must be able to clear unconditionally.
func (f *failedItemRepository) Clear(ctx context.Context, itemType, itemID string) error {
	return f.clear(ctx, f.DB, itemType, itemID)
}

// ClearTx is Clear inside an open transaction.
func (f *failedItemRepository) ClearTx(ctx context.Context, tx *sql.Tx, itemType, itemID string) error {
	return f.clear(ctx, tx, itemType, itemID)
}

func (f *failedItemRepository) clear(ctx context.Context, exec executor, itemType, itemID string) error {
	log := logger.FromContext(ctx)

	if _, err := exec.ExecContext(ctx, clearFailedItem, itemType, itemID); err != nil {
		log.Err(err).
			Str("func", "failedItemRepository.Clear").
			Str("item_type", itemType).
			Str("item_id", itemID).
			Msg("failed to clear failed item")
		return fmt.Errorf("failed to clear failed item (%s/%s): %w", itemType, itemID, err)
	}

	return nil
}

// List returns the live failure records, optionally narrowed to one item
// type, ordered oldest first.
func (f *failedItemRepository) List(ctx context.Context, itemType string) ([]models.FailedItem, error) {
	log := logger.FromContext(ctx)

	builder := sq.Select("item_type", "item_id", "kind", "error_code", "error_body", "created_at").
		From("failed_items").
		OrderBy("created_at")
	if itemType != "" {
		builder = builder.Where(sq.Eq{"item_type": itemType})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := f.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "failedItemRepository.List").
			Str("item_type", itemType).
			Msg("failed to execute query for listing failed items")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var items []models.FailedItem

	for rows.Next() {
		var (
			item      models.FailedItem
			kind      string
			errorCode sql.NullInt64
		)
		if scanErr := rows.Scan(&item.ItemType, &item.ItemID, &kind, &errorCode, &item.ErrorBody, &item.CreatedAt); scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		item.Kind = models.FailureKind(kind)
		if errorCode.Valid {
			code := int(errorCode.Int64)
			item.ErrorCode = &code
		}
		items = append(items, item)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("error iterating failed item rows: %w", rowsErr)
	}

	return items, nil
}

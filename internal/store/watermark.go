package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iupui-soic/dhis2-android-sdk/internal/logger"
	"github.com/iupui-soic/dhis2-android-sdk/models"
)

type watermarkRepository struct {
	*DB
	logger *logger.Logger
}

// NewWatermarkRepository constructs the per-resource-type watermark store
// backed by the "resources" table.
func NewWatermarkRepository(db *DB, logger *logger.Logger) WatermarkRepository {
	return &watermarkRepository{
		DB:     db,
		logger: logger,
	}
}

// Get returns the watermark for resource. LastSynced is invalid when no pull
// has ever committed for the resource type.
func (w *watermarkRepository) Get(ctx context.Context, resource string) (models.Watermark, error) {
	log := logger.FromContext(ctx)

	wm := models.Watermark{Resource: resource}
	row := w.DB.QueryRowContext(ctx, getWatermark, resource)
	if err := row.Scan(&wm.LastSynced); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return wm, nil
		}
		log.Err(err).
			Str("func", "watermarkRepository.Get").
			Str("resource", resource).
			Msg("failed to scan watermark row")
		return wm, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return wm, nil
}

// AdvanceTx sets the watermark for resource to serverTime inside tx: it
// updates the existing row and inserts one when no row exists yet. Running
// inside the pull transaction guarantees the watermark only ever advances as
// a side effect of a committed pull.
func (w *watermarkRepository) AdvanceTx(ctx context.Context, tx *sql.Tx, resource string, serverTime time.Time) error {
	log := logger.FromContext(ctx)

	result, err := tx.ExecContext(ctx, updateWatermark, serverTime, resource)
	if err != nil {
		log.Err(err).
			Str("func", "watermarkRepository.AdvanceTx").
			Str("resource", resource).
			Msg("failed to update watermark")
		return fmt.Errorf("failed to update watermark (resource=%s): %w", resource, err)
	}

	updated, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected (resource=%s): %w", resource, err)
	}
	if updated > 0 {
		return nil
	}

	if _, err = tx.ExecContext(ctx, insertWatermark, resource, serverTime); err != nil {
		log.Err(err).
			Str("func", "watermarkRepository.AdvanceTx").
			Str("resource", resource).
			Msg("failed to insert watermark")
		return fmt.Errorf("failed to insert watermark (resource=%s): %w", resource, err)
	}

	return nil
}

// List returns every known watermark, ordered by resource type.
func (w *watermarkRepository) List(ctx context.Context) ([]models.Watermark, error) {
	log := logger.FromContext(ctx)

	rows, err := w.DB.QueryContext(ctx, listWatermarks)
	if err != nil {
		log.Err(err).
			Str("func", "watermarkRepository.List").
			Msg("failed to execute query for listing watermarks")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var items []models.Watermark

	for rows.Next() {
		var item models.Watermark
		if scanErr := rows.Scan(&item.Resource, &item.LastSynced); scanErr != nil {
			log.Err(scanErr).
				Str("func", "watermarkRepository.List").
				Msg("failed to scan watermark row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		items = append(items, item)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("error iterating watermark rows: %w", rowsErr)
	}

	return items, nil
}

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/iupui-soic/dhis2-android-sdk/internal/logger"
	"github.com/iupui-soic/dhis2-android-sdk/models"
)

var recordColumns = []string{"resource_type", "uid", "last_updated", "deleted", "synced", "body"}

type recordRepository struct {
	*DB
	logger *logger.Logger
}

// NewRecordRepository constructs the generic record store backed by the
// "records" table. All entity types share it; the type-specific payload stays
// opaque in the body column.
func NewRecordRepository(db *DB, logger *logger.Logger) RecordRepository {
	return &recordRepository{
		DB:     db,
		logger: logger,
	}
}

// UpsertTx writes one fetched record (keyed by resource type and uid) inside
// tx. Tombstones only flip the deleted flag; rows are never removed. parent
// identifies the owning record for nested children and is empty for
// top-level records.
func (r *recordRepository) UpsertTx(ctx context.Context, tx *sql.Tx, record models.Record, parentType, parentUID string) error {
	log := logger.FromContext(ctx)

	_, err := tx.ExecContext(ctx, upsertRecord,
		record.Resource,
		record.UID,
		nullString(parentType),
		nullString(parentUID),
		record.LastUpdated,
		record.Deleted,
		record.Synced,
		string(record.Body),
	)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.UpsertTx").
			Str("resource", record.Resource).
			Str("uid", record.UID).
			Msg("failed to execute upsert for record")
		return fmt.Errorf("failed to upsert record (uid=%s): %w", record.UID, err)
	}

	return nil
}

// MarkSyncedTx flips the record's sync-state flag after a confirmed push.
func (r *recordRepository) MarkSyncedTx(ctx context.Context, tx *sql.Tx, resource, uid string) error {
	log := logger.FromContext(ctx)

	result, err := tx.ExecContext(ctx, markRecordSynced, resource, uid)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.MarkSyncedTx").
			Str("resource", resource).
			Str("uid", uid).
			Msg("failed to mark record synced")
		return fmt.Errorf("failed to mark record synced (uid=%s): %w", uid, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected (uid=%s): %w", uid, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s/%s", ErrRecordNotFound, resource, uid)
	}

	return nil
}

// Get returns one record by resource type and uid.
func (r *recordRepository) Get(ctx context.Context, resource, uid string) (models.Record, error) {
	query, args, err := sq.Select(recordColumns...).
		From("records").
		Where(sq.Eq{"resource_type": resource, "uid": uid}).
		ToSql()
	if err != nil {
		return models.Record{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	record, err := r.scanRecord(r.DB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Record{}, fmt.Errorf("%w: %s/%s", ErrRecordNotFound, resource, uid)
	}
	return record, err
}

// ByUIDs returns the records of one resource type matching the uid set.
func (r *recordRepository) ByUIDs(ctx context.Context, resource string, uids []string) ([]models.Record, error) {
	builder := sq.Select(recordColumns...).
		From("records").
		Where(sq.Eq{"resource_type": resource})
	if len(uids) > 0 {
		builder = builder.Where(sq.Eq{"uid": uids})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryRecords(ctx, query, args...)
}

// Dirty lists the locally created or mutated records of one resource type
// still awaiting a successful push, in insertion order.
func (r *recordRepository) Dirty(ctx context.Context, resource string) ([]models.Record, error) {
	query, args, err := sq.Select(recordColumns...).
		From("records").
		Where(sq.Eq{"resource_type": resource, "synced": false}).
		OrderBy("rowid").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryRecords(ctx, query, args...)
}

// CreateLocal stores a brand-new dirty record built from body, assigning it
// a fresh uid when body carries none. The record becomes eligible for the
// next push cycle.
func (r *recordRepository) CreateLocal(ctx context.Context, resource string, body []byte) (models.Record, error) {
	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		return models.Record{}, fmt.Errorf("decode local record body: %w", err)
	}

	uid, _ := fields["id"].(string)
	if uid == "" {
		uid = uuid.NewString()
		fields["id"] = uid
	}

	now := time.Now().UTC()
	fields["lastUpdated"] = models.FormatAPITime(now)

	raw, err := json.Marshal(fields)
	if err != nil {
		return models.Record{}, fmt.Errorf("encode local record body: %w", err)
	}

	record := models.Record{
		Resource:    resource,
		UID:         uid,
		LastUpdated: now,
		Body:        raw,
	}

	err = r.DB.WithinTx(ctx, func(tx *sql.Tx) error {
		return r.UpsertTx(ctx, tx, record, "", "")
	})
	if err != nil {
		return models.Record{}, err
	}

	return record, nil
}

func (r *recordRepository) queryRecords(ctx context.Context, query string, args ...any) ([]models.Record, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.queryRecords").
			Msg("failed to execute record query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var items []models.Record

	for rows.Next() {
		item, scanErr := r.scanRecord(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		items = append(items, item)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("error iterating record rows: %w", rowsErr)
	}

	return items, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *recordRepository) scanRecord(row rowScanner) (models.Record, error) {
	var (
		item        models.Record
		lastUpdated sql.NullTime
		body        string
	)

	err := row.Scan(
		&item.Resource,
		&item.UID,
		&lastUpdated,
		&item.Deleted,
		&item.Synced,
		&body,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Record{}, err
		}
		return models.Record{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if lastUpdated.Valid {
		item.LastUpdated = lastUpdated.Time
	}
	item.Body = json.RawMessage(body)

	return item, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

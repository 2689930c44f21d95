package store

import (
	"context"
	"fmt"

	"github.com/iupui-soic/dhis2-android-sdk/internal/config"
	"github.com/iupui-soic/dhis2-android-sdk/internal/logger"
)

// Storages aggregates every local repository over one shared database
// connection.
type Storages struct {
	DB          *DB
	Watermarks  WatermarkRepository
	Records     RecordRepository
	FailedItems FailedItemRepository
}

// NewStorages opens the local database, applies pending migrations, and
// wires all repositories.
func NewStorages(ctx context.Context, cfg config.ClientStorage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectSQLite(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("connect local database: %w", err)
	}

	if err = db.Migrate(); err != nil {
		return nil, fmt.Errorf("migrate local database: %w", err)
	}

	return &Storages{
		DB:          db,
		Watermarks:  NewWatermarkRepository(db, log),
		Records:     NewRecordRepository(db, log),
		FailedItems: NewFailedItemRepository(db, log),
	}, nil
}

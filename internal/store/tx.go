package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iupui-soic/dhis2-android-sdk/internal/logger"
)

// executor is the subset of database/sql shared by *sql.DB and *sql.Tx, so
// repository operations can run standalone or inside a scoped transaction.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithinTx runs fn inside one transaction. Any error (or panic) from fn rolls
// the whole transaction back; the commit happens only when fn returns nil, so
// every exit path that is not a clean commit leaves the database untouched.
func (db *DB) WithinTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	log := logger.FromContext(ctx)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "DB.WithinTx").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				log.Err(rbErr).Str("func", "DB.WithinTx").Msg("rollback failed")
			}
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommittingTransaction, err)
	}
	committed = true

	return nil
}

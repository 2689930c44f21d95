package sync

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"

	"github.com/iupui-soic/dhis2-android-sdk/internal/api"
	"github.com/iupui-soic/dhis2-android-sdk/internal/logger"
	"github.com/iupui-soic/dhis2-android-sdk/internal/store"
	"github.com/iupui-soic/dhis2-android-sdk/models"
)

// Pull lifecycle states. A pull instance is single-use: it models one sync
// attempt, not a repeatable action.
const (
	pullNotStarted int32 = iota
	pullRunning
	pullDone
)

// Pull runs one incremental pull cycle for a single resource type:
// watermark read, filtered projected fetch, transactional apply, watermark
// advance. Construct a fresh instance per attempt via [NewPull].
type Pull struct {
	schema api.Schema
	// uids is the assigned uid set this client is constrained to; set
	// semantics, duplicates and ordering are meaningless.
	uids []string

	fetcher    MetadataFetcher
	db         *store.DB
	watermarks store.WatermarkRepository
	applier    *Applier
	logger     *logger.Logger

	state atomic.Int32
}

func NewPull(schema api.Schema, uids []string, fetcher MetadataFetcher, db *store.DB, watermarks store.WatermarkRepository, applier *Applier, log *logger.Logger) *Pull {
	return &Pull{
		schema:     schema,
		uids:       uids,
		fetcher:    fetcher,
		db:         db,
		watermarks: watermarks,
		applier:    applier,
		logger:     log,
	}
}

// Executed reports whether Execute has been invoked on this instance.
func (p *Pull) Executed() bool {
	return p.state.Load() != pullNotStarted
}

// Execute runs the pull exactly once. A second call on the same instance
// fails with [ErrAlreadyExecuted], safe under concurrent callers.
//
// Transport or server failure leaves the watermark and data stores untouched,
// so the same window is safely retried with a fresh instance later. On
// success every fetched record is applied and the watermark is advanced to
// the server's response time inside one transaction; any local failure rolls
// the whole pull back.
func (p *Pull) Execute(ctx context.Context) (models.PullResult, error) {
	if !p.state.CompareAndSwap(pullNotStarted, pullRunning) {
		return models.PullResult{}, fmt.Errorf("%w: %s", ErrAlreadyExecuted, p.schema.Resource)
	}
	defer p.state.Store(pullDone)

	log := p.logger.GetChildLogger()
	ctx = log.WithContext(ctx)

	watermark, err := p.watermarks.Get(ctx, p.schema.Resource)
	if err != nil {
		return models.PullResult{}, fmt.Errorf("read watermark: %w", err)
	}

	filters := []api.Filter{api.In("id", p.uids)}
	if watermark.LastSynced.Valid {
		filters = append(filters, api.GreaterThan("lastUpdated", watermark.LastSynced.Time))
	}

	records, serverTime, err := p.fetcher.Metadata(ctx, p.schema, filters...)
	if err != nil {
		log.Warn().
			Err(err).
			Str("resource", p.schema.Resource).
			Msg("pull fetch failed, local state untouched")
		return models.PullResult{}, err
	}

	err = p.db.WithinTx(ctx, func(tx *sql.Tx) error {
		for _, record := range records {
			if applyErr := p.applier.ApplyTx(ctx, tx, p.schema, record, "", ""); applyErr != nil {
				return fmt.Errorf("apply record %s: %w", record.UID, applyErr)
			}
		}

		// The watermark row is written even for an empty result, so the
		// first successful pull always leaves one behind.
		return p.watermarks.AdvanceTx(ctx, tx, p.schema.Resource, serverTime)
	})
	if err != nil {
		return models.PullResult{}, err
	}

	result := models.PullResult{
		Resource:   p.schema.Resource,
		Fetched:    len(records),
		ServerTime: serverTime,
	}

	log.Info().
		Str("resource", result.Resource).
		Int("fetched", result.Fetched).
		Time("server_time", result.ServerTime).
		Msg("pull committed")

	return result, nil
}

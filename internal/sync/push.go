package sync

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iupui-soic/dhis2-android-sdk/internal/api"
	"github.com/iupui-soic/dhis2-android-sdk/internal/logger"
	"github.com/iupui-soic/dhis2-android-sdk/internal/store"
	"github.com/iupui-soic/dhis2-android-sdk/models"
)

// Pusher uploads locally dirty records of one resource type, classifies the
// per-record server outcomes, and maintains the failure ledger. Items are
// independent units of work: there is no cross-item transaction, partial
// progress across a batch is expected.
type Pusher struct {
	resource string
	remote   Submitter
	db       *store.DB
	records  store.RecordRepository
	ledger   store.FailedItemRepository
	logger   *logger.Logger
}

func NewPusher(resource string, remote Submitter, db *store.DB, records store.RecordRepository, ledger store.FailedItemRepository, log *logger.Logger) *Pusher {
	return &Pusher{
		resource: resource,
		remote:   remote,
		db:       db,
		records:  records,
		ledger:   ledger,
		logger:   log,
	}
}

// Push submits the given records and returns the per-item outcomes. A single
// record goes through the serial path directly; larger sets are submitted as
// one batch, falling back to sequential single-record submission when the
// batch channel itself fails, so one bad item or a transient outage never
// blocks the rest. Transport and server rejections are recovered into the
// ledger, never escalated.
func (p *Pusher) Push(ctx context.Context, records ...models.Record) models.PushReport {
	log := p.logger.GetChildLogger()
	ctx = log.WithContext(ctx)

	report := models.PushReport{Resource: p.resource}
	if len(records) == 0 {
		return report
	}

	serial := &serialStrategy{pusher: p}
	var strategy submitStrategy = serial
	if len(records) > 1 {
		strategy = &batchStrategy{pusher: p, fallback: serial}
	}

	report.Items = strategy.submit(ctx, records)

	log.Info().
		Str("resource", p.resource).
		Int("pushed", len(records)).
		Int("synced", report.Synced()).
		Int("failed", report.Failed()).
		Str("outcome", string(report.Outcome())).
		Msg("push cycle finished")

	return report
}

// submitStrategy is one tier of the push path. The batch tier delegates to
// the serial tier on channel failure, keeping the fallback independently
// testable instead of hiding it in exception-driven control flow.
type submitStrategy interface {
	submit(ctx context.Context, records []models.Record) []models.ItemResult
}

type serialStrategy struct {
	pusher *Pusher
}

func (s *serialStrategy) submit(ctx context.Context, records []models.Record) []models.ItemResult {
	results := make([]models.ItemResult, 0, len(records))
	for _, record := range records {
		summary, err := s.pusher.remote.SubmitOne(ctx, s.pusher.resource, record)
		if err != nil {
			results = append(results, s.pusher.recordFailure(ctx, record, err))
			continue
		}
		results = append(results, s.pusher.applySummary(ctx, record, summary))
	}
	return results
}

type batchStrategy struct {
	pusher   *Pusher
	fallback *serialStrategy
}

func (b *batchStrategy) submit(ctx context.Context, records []models.Record) []models.ItemResult {
	log := logger.FromContext(ctx)

	summaries, err := b.pusher.remote.SubmitBatch(ctx, b.pusher.resource, records)
	if err != nil {
		// Channel failure, not a per-item verdict: resubmit every item
		// individually so each gets the classification it would have
		// received on its own.
		log.Warn().
			Err(err).
			Str("resource", b.pusher.resource).
			Int("items", len(records)).
			Msg("batch submit failed, falling back to serial submission")
		return b.fallback.submit(ctx, records)
	}

	byUID := make(map[string]models.Record, len(records))
	for _, record := range records {
		byUID[record.UID] = record
	}

	results := make([]models.ItemResult, 0, len(records))
	seen := make(map[string]struct{}, len(summaries))
	for _, summary := range summaries {
		record, ok := byUID[summary.Reference]
		if !ok {
			log.Warn().
				Str("resource", b.pusher.resource).
				Str("reference", summary.Reference).
				Msg("import summary references no submitted record")
			continue
		}
		seen[record.UID] = struct{}{}
		results = append(results, b.pusher.applySummary(ctx, record, summary))
	}

	// Items the server returned no verdict for stay dirty and retryable.
	for _, record := range records {
		if _, ok := seen[record.UID]; !ok {
			results = append(results, models.ItemResult{
				UID:         record.UID,
				State:       models.ItemSkipped,
				Description: "no import summary returned",
			})
		}
	}

	return results
}

// applySummary routes one server verdict: accepted records are marked synced
// and their ledger entry cleared atomically; rejections are recorded in the
// ledger; warnings change nothing and the record stays dirty.
func (p *Pusher) applySummary(ctx context.Context, record models.Record, summary models.ImportSummary) models.ItemResult {
	log := logger.FromContext(ctx)

	switch {
	case summary.Accepted():
		err := p.db.WithinTx(ctx, func(tx *sql.Tx) error {
			if err := p.records.MarkSyncedTx(ctx, tx, p.resource, record.UID); err != nil {
				return err
			}
			return p.ledger.ClearTx(ctx, tx, p.resource, record.UID)
		})
		if err != nil {
			// The server has the record; the local flag stays dirty and the
			// next cycle resubmits, which the server must treat as
			// idempotent.
			log.Err(err).
				Str("resource", p.resource).
				Str("uid", record.UID).
				Msg("record accepted by server but local state update failed")
			return models.ItemResult{UID: record.UID, State: models.ItemSkipped, Description: err.Error()}
		}
		return models.ItemResult{UID: record.UID, State: models.ItemSynced}

	case summary.Rejected():
		code := summary.HTTPCode
		if code == 0 {
			code = 200
		}
		p.upsertFailure(ctx, models.FailedItem{
			ItemType:  p.resource,
			ItemID:    record.UID,
			Kind:      models.FailureRejected,
			ErrorCode: &code,
			ErrorBody: summary.Description,
		})
		return models.ItemResult{UID: record.UID, State: models.ItemFailed, Description: summary.Description}

	default:
		// WARNING and friends: no verdict strong enough to touch state.
		return models.ItemResult{UID: record.UID, State: models.ItemSkipped, Description: summary.Description}
	}
}

// recordFailure handles a failed submit call (network/IO or an HTTP-level
// error without an import summary), keeping it distinct in the ledger from a
// server rejection.
func (p *Pusher) recordFailure(ctx context.Context, record models.Record, err error) models.ItemResult {
	item := models.FailedItem{
		ItemType:  p.resource,
		ItemID:    record.UID,
		Kind:      models.FailureTransport,
		ErrorBody: err.Error(),
	}

	var statusErr *api.StatusError
	if errors.As(err, &statusErr) {
		code := statusErr.Code
		item.ErrorCode = &code
	}

	p.upsertFailure(ctx, item)

	return models.ItemResult{UID: record.UID, State: models.ItemFailed, Description: err.Error()}
}

func (p *Pusher) upsertFailure(ctx context.Context, item models.FailedItem) {
	log := logger.FromContext(ctx)

	if err := p.ledger.Upsert(ctx, item); err != nil {
		log.Err(err).
			Str("item_type", item.ItemType).
			Str("item_id", item.ItemID).
			Msg("failed to record push failure in ledger")
	}
}

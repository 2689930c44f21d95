package sync

import (
	"context"
	"time"

	"github.com/iupui-soic/dhis2-android-sdk/internal/api"
	"github.com/iupui-soic/dhis2-android-sdk/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_mock.go -package=mock

// MetadataFetcher executes one filtered, projected query against the remote
// API, returning the matched records and the server's authoritative response
// time.
type MetadataFetcher interface {
	Metadata(ctx context.Context, schema api.Schema, filters ...api.Filter) ([]models.Record, time.Time, error)
}

// Submitter uploads locally created or mutated records, one at a time or as
// a batch.
type Submitter interface {
	SubmitOne(ctx context.Context, resource string, record models.Record) (models.ImportSummary, error)
	SubmitBatch(ctx context.Context, resource string, records []models.Record) ([]models.ImportSummary, error)
}

// RemoteAPI is the full remote surface the sync engine depends on.
// [api.Client] implements it.
type RemoteAPI interface {
	MetadataFetcher
	Submitter
}

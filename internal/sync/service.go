// Package sync implements the two synchronization call paths of the client:
// incremental watermark-based pull of hierarchical metadata, and batch push
// of locally created records with per-item outcome classification.
package sync

import (
	"context"
	"sync"

	"github.com/iupui-soic/dhis2-android-sdk/internal/logger"
	"github.com/iupui-soic/dhis2-android-sdk/internal/store"
	"github.com/iupui-soic/dhis2-android-sdk/models"
)

// Service is the engine facade. It owns per-resource-type single-flight
// locking: at most one pull is in flight per resource type, so the watermark
// read-then-advance sequence can never interleave across concurrent callers.
type Service struct {
	registry Registry
	remote   RemoteAPI
	storages *store.Storages
	logger   *logger.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewService(registry Registry, remote RemoteAPI, storages *store.Storages, log *logger.Logger) *Service {
	return &Service{
		registry: registry,
		remote:   remote,
		storages: storages,
		logger:   log,
		locks:    make(map[string]*sync.Mutex),
	}
}

func (s *Service) resourceLock(resource string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[resource]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[resource] = lock
	}
	return lock
}

// Pull runs one incremental pull for resource, constrained to the assigned
// uid set. Each call builds a fresh one-shot [Pull] instance under the
// resource's single-flight lock.
func (s *Service) Pull(ctx context.Context, resource string, uids []string) (models.PullResult, error) {
	schema, err := s.registry.Get(resource)
	if err != nil {
		return models.PullResult{}, err
	}

	lock := s.resourceLock(resource)
	lock.Lock()
	defer lock.Unlock()

	pull := NewPull(
		schema,
		uids,
		s.remote,
		s.storages.DB,
		s.storages.Watermarks,
		NewApplier(s.storages.Records),
		s.logger,
	)

	return pull.Execute(ctx)
}

// Push uploads every dirty record of resource and returns the per-item
// outcomes. Transport errors and rejections end up in the failure ledger,
// not in the returned error, which covers local store failures only.
func (s *Service) Push(ctx context.Context, resource string) (models.PushReport, error) {
	if _, err := s.registry.Get(resource); err != nil {
		return models.PushReport{}, err
	}

	dirty, err := s.storages.Records.Dirty(ctx, resource)
	if err != nil {
		return models.PushReport{}, err
	}

	pusher := NewPusher(resource, s.remote, s.storages.DB, s.storages.Records, s.storages.FailedItems, s.logger)

	return pusher.Push(ctx, dirty...), nil
}

// PushRecords uploads an explicit record collection of one resource type,
// bypassing the dirty-record scan. Used when the caller already holds the
// records to submit.
func (s *Service) PushRecords(ctx context.Context, resource string, records ...models.Record) (models.PushReport, error) {
	if _, err := s.registry.Get(resource); err != nil {
		return models.PushReport{}, err
	}

	pusher := NewPusher(resource, s.remote, s.storages.DB, s.storages.Records, s.storages.FailedItems, s.logger)

	return pusher.Push(ctx, records...), nil
}

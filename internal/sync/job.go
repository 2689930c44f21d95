package sync

import (
	"context"
	"sync"
	"time"
)

// PullSpec names one resource type to pull periodically together with the
// assigned uid set constraining it.
type PullSpec struct {
	Resource string
	UIDs     []string
}

// Job re-runs pull and push cycles on a ticker. Retry of failed cycles is
// exactly this: the next tick runs the same window again. The job is idle
// until Start is called.
type Job struct {
	service  *Service
	pulls    []PullSpec
	pushes   []string
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewJob(service *Service, pulls []PullSpec, pushes []string, interval time.Duration) *Job {
	return &Job{service: service, pulls: pulls, pushes: pushes, interval: interval}
}

// Start stops any previously running job, then launches a background
// goroutine running one full cycle per interval. An unset interval defaults
// to 5 minutes. The goroutine exits when ctx is cancelled or Stop is called.
func (j *Job) Start(ctx context.Context) {
	interval := j.interval
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.runCycle(jobCtx)
			}
		}
	}()
}

// Stop cancels the background goroutine's context and blocks until it has
// fully exited. Safe to call when the job is not running.
func (j *Job) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

// Run starts the job and blocks until ctx is cancelled, satisfying the
// workers.Worker contract for daemon mode.
func (j *Job) Run(ctx context.Context) {
	j.Start(ctx)
	<-ctx.Done()
	j.Stop()
}

// runCycle pulls then pushes. Failures are already logged and recovered by
// the engine; a failed cycle simply leaves the same window for the next tick.
func (j *Job) runCycle(ctx context.Context) {
	for _, pull := range j.pulls {
		_, _ = j.service.Pull(ctx, pull.Resource, pull.UIDs)
	}
	for _, resource := range j.pushes {
		_, _ = j.service.Push(ctx, resource)
	}
}

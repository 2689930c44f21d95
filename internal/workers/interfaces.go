// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface and a Workers aggregate that allows
// running multiple workers in a unified way.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
// Run is expected to block for the duration of the worker's life and return
// once ctx is cancelled.
type Worker interface {
	Run(ctx context.Context)
}

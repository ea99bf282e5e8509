// Package workers runs the background jobs of the server.
// It defines the Worker interface and a Workers aggregate that starts and
// stops multiple workers in a unified way.
package workers

import (
	"context"
	"time"
)

// Worker is the interface that must be implemented by any background worker.
//
// Run starts the worker and returns immediately; the work happens on
// goroutines owned by the worker. Stop asks the worker to finish and waits
// for in-flight work until ctx is done.
//
// Example implementation:
//
//	type MyWorker struct{ done chan struct{} }
//
//	func (w *MyWorker) Run()                          { go w.loop() }
//	func (w *MyWorker) Stop(ctx context.Context) error { close(w.done); return nil }
type Worker interface {
	Run()
	Stop(ctx context.Context) error
}

// ExpiredGroupReverter restores the previous group of users whose timed
// upgrade has ended.
type ExpiredGroupReverter interface {
	RevertExpiredGroups(ctx context.Context, now time.Time) (int, error)
}

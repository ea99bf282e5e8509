package workers

import (
	"context"
	"errors"
)

type Workers struct {
	workers []Worker
}

// NewWorkers bundles ws. They are started in order and stopped in reverse.
func NewWorkers(ws ...Worker) *Workers {
	return &Workers{workers: ws}
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}

// Stop stops every worker, even when some of them fail, and joins their
// errors.
func (w *Workers) Stop(ctx context.Context) error {
	var errs []error
	for i := len(w.workers) - 1; i >= 0; i-- {
		if err := w.workers[i].Stop(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

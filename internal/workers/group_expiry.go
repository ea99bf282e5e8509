// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-disk-next/internal/logger"
	"github.com/robfig/cron/v3"
)

// GroupExpiryWorker periodically moves users whose timed group upgrade has
// ended back to their previous group.
type GroupExpiryWorker struct {
	cron     *cron.Cron
	reverter ExpiredGroupReverter
	timeout  time.Duration
	now      func() time.Time
	logger   *logger.Logger
}

// NewGroupExpiryWorker schedules the expiry job with a standard five-field
// cron spec or a descriptor such as "@hourly". A run that is still going
// when the next one is due makes the next one skip.
func NewGroupExpiryWorker(schedule string, reverter ExpiredGroupReverter, log *logger.Logger) (*GroupExpiryWorker, error) {
	log = log.Component("group_expiry")
	cronLog := cronLogger{log}

	w := &GroupExpiryWorker{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithLogger(cronLog),
			cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
		),
		reverter: reverter,
		timeout:  time.Minute,
		now:      time.Now,
		logger:   log,
	}

	if _, err := w.cron.AddFunc(schedule, w.tick); err != nil {
		return nil, fmt.Errorf("invalid group expiry schedule %q: %w", schedule, err)
	}
	return w, nil
}

// Run starts the scheduler.
func (w *GroupExpiryWorker) Run() {
	w.cron.Start()
	w.logger.Info().Msg("group expiry worker started")
}

// Stop stops scheduling and waits for a running job or ctx, whichever ends
// first.
func (w *GroupExpiryWorker) Stop(ctx context.Context) error {
	select {
	case <-w.cron.Stop().Done():
		w.logger.Info().Msg("group expiry worker stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunOnce reverts every upgrade that has ended by now.
func (w *GroupExpiryWorker) RunOnce(ctx context.Context) (int, error) {
	reverted, err := w.reverter.RevertExpiredGroups(ctx, w.now())
	if err != nil {
		return 0, fmt.Errorf("error reverting expired groups: %w", err)
	}
	return reverted, nil
}

func (w *GroupExpiryWorker) tick() {
	ctx, cancel := context.WithTimeout(w.logger.WithContext(context.Background()), w.timeout)
	defer cancel()

	reverted, err := w.RunOnce(ctx)
	if err != nil {
		w.logger.Err(err).Msg("group expiry run failed")
		return
	}
	if reverted > 0 {
		w.logger.Info().Int("reverted", reverted).Msg("expired group upgrades reverted")
	}
}

// cronLogger adapts the zerolog logger to cron.Logger.
type cronLogger struct {
	log *logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Err(err).Fields(keysAndValues).Msg(msg)
}

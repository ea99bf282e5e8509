// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-disk-next/internal/logger"
	"github.com/MKhiriev/go-disk-next/internal/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestNewGroupExpiryWorker_InvalidSchedule(t *testing.T) {
	users := mock.NewMockUserService(gomock.NewController(t))

	w, err := NewGroupExpiryWorker("every tuesday", users, logger.Nop())

	assert.Nil(t, w)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "every tuesday")
}

func TestGroupExpiryWorker_RunOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mock.NewMockUserService(ctrl)

	w, err := NewGroupExpiryWorker("@hourly", users, logger.Nop())
	require.NoError(t, err)
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	w.now = func() time.Time { return now }

	users.EXPECT().RevertExpiredGroups(gomock.Any(), now).Return(2, nil)

	n, err := w.RunOnce(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestGroupExpiryWorker_RunOnce_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mock.NewMockUserService(ctrl)

	w, err := NewGroupExpiryWorker("@hourly", users, logger.Nop())
	require.NoError(t, err)

	dbErr := errors.New("database is locked")
	users.EXPECT().RevertExpiredGroups(gomock.Any(), gomock.Any()).Return(0, dbErr)

	n, err := w.RunOnce(context.Background())

	assert.Zero(t, n)
	assert.ErrorIs(t, err, dbErr)
}

func TestGroupExpiryWorker_ScheduledRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mock.NewMockUserService(ctrl)

	called := make(chan struct{}, 1)
	users.EXPECT().RevertExpiredGroups(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, now time.Time) (int, error) {
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			select {
			case called <- struct{}{}:
			default:
			}
			return 1, nil
		}).MinTimes(1)

	w, err := NewGroupExpiryWorker("@every 1s", users, logger.Nop())
	require.NoError(t, err)

	w.Run()
	select {
	case <-called:
	case <-time.After(3 * time.Second):
		t.Fatal("scheduled run did not happen")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, w.Stop(ctx))
}

func TestGroupExpiryWorker_StopWithoutRun(t *testing.T) {
	users := mock.NewMockUserService(gomock.NewController(t))
	w, err := NewGroupExpiryWorker("@daily", users, logger.Nop())
	require.NoError(t, err)

	assert.NoError(t, w.Stop(context.Background()))
}

package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddJobRejectsInvalidSpec(t *testing.T) {
	s := New(Config{}, zerolog.Nop())
	err := s.AddJob("expiry", "not a cron", func(context.Context) error { return nil })
	assert.Error(t, err)
}

func TestRunJobAppliesTimeout(t *testing.T) {
	s := New(Config{RunTimeout: 20 * time.Millisecond}, zerolog.Nop())

	var sawDeadline atomic.Bool
	s.runJob("expiry", func(ctx context.Context) error {
		_, ok := ctx.Deadline()
		sawDeadline.Store(ok)
		<-ctx.Done()
		return ctx.Err()
	})

	assert.True(t, sawDeadline.Load())
}

func TestStopCancelsRunningJob(t *testing.T) {
	s := New(Config{}, zerolog.Nop())

	started := make(chan struct{})
	var cancelled atomic.Bool
	go s.runJob("expiry", func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		cancelled.Store(true)
		return ctx.Err()
	})
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))

	assert.Eventually(t, cancelled.Load, time.Second, 5*time.Millisecond)
}

func TestRunJobLogsFailure(t *testing.T) {
	s := New(Config{}, zerolog.Nop())
	assert.NotPanics(t, func() {
		s.runJob("expiry", func(context.Context) error { return errors.New("db down") })
	})
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package keepalive

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

type countingRefresh struct {
	calls int32
	err   atomic.Value
}

func (c *countingRefresh) Refresh(ctx context.Context) error {
	atomic.AddInt32(&c.calls, 1)
	if v := c.err.Load(); v != nil {
		if e, ok := v.(error); ok {
			return e
		}
	}
	return nil
}

func (c *countingRefresh) count() int { return int(atomic.LoadInt32(&c.calls)) }

func TestScheduler_RefreshesOnStartAndTick(t *testing.T) {
	r := &countingRefresh{}
	s := NewScheduler(r.Refresh, 20*time.Millisecond, true, zerolog.Nop())
	s.Start(context.Background())
	defer s.Stop()

	require.Eventually(t, func() bool { return r.count() >= 3 }, 2*time.Second, 5*time.Millisecond)

	st := s.Status()
	assert.True(t, st.Enabled)
	assert.GreaterOrEqual(t, st.Refreshes, 3)
	assert.Zero(t, st.Failures)
	assert.False(t, st.LastRefresh.IsZero())
}

func TestScheduler_DisabledDoesNothing(t *testing.T) {
	r := &countingRefresh{}
	s := NewScheduler(r.Refresh, 10*time.Millisecond, false, zerolog.Nop())
	s.Start(context.Background())
	defer s.Stop()

	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, r.count())
	assert.Equal(t, "keepalive off", s.Status().Summary(time.Now()))
}

func TestScheduler_SetEnabled(t *testing.T) {
	r := &countingRefresh{}
	s := NewScheduler(r.Refresh, time.Hour, false, zerolog.Nop())
	s.Start(context.Background())
	defer s.Stop()

	s.SetEnabled(true)
	require.Eventually(t, func() bool { return r.count() == 1 }, time.Second, 5*time.Millisecond,
		"enabling refreshes immediately")

	s.SetEnabled(false)
	assert.False(t, s.Enabled())
	n := r.count()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, n, r.count())

	s.SetEnabled(true)
	require.Eventually(t, func() bool { return r.count() == n+1 }, time.Second, 5*time.Millisecond)
}

func TestScheduler_RecordsFailures(t *testing.T) {
	r := &countingRefresh{}
	r.err.Store(error(&StatusError{Code: 401, Status: "401 Unauthorized"}))

	var results int32
	s := NewScheduler(r.Refresh, time.Hour, true, zerolog.Nop())
	s.OnResult(func(Status) { atomic.AddInt32(&results, 1) })

	err := s.RefreshNow(context.Background())
	require.Error(t, err)

	st := s.Status()
	assert.Equal(t, 1, st.Failures)
	assert.Zero(t, st.Refreshes)
	assert.True(t, st.LastRefresh.IsZero())
	assert.False(t, st.LastAttempt.IsZero())
	assert.Equal(t, "keepalive failed (401)", st.Summary(time.Now()))
	assert.Equal(t, int32(1), atomic.LoadInt32(&results))
}

func TestScheduler_SetInterval(t *testing.T) {
	r := &countingRefresh{}
	s := NewScheduler(r.Refresh, time.Hour, true, zerolog.Nop())
	s.Start(context.Background())
	defer s.Stop()

	require.Eventually(t, func() bool { return r.count() == 1 }, time.Second, 5*time.Millisecond)

	s.SetInterval(15 * time.Millisecond)
	assert.Equal(t, 15*time.Millisecond, s.Status().Interval)
	require.Eventually(t, func() bool { return r.count() >= 3 }, 2*time.Second, 5*time.Millisecond)
}

func TestScheduler_StopCancelsContext(t *testing.T) {
	started := make(chan struct{})
	var cancelled int32
	refresh := func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		atomic.StoreInt32(&cancelled, 1)
		return ctx.Err()
	}

	s := NewScheduler(refresh, time.Hour, true, zerolog.Nop())
	s.Start(context.Background())
	<-started
	s.Stop()

	assert.Equal(t, int32(1), atomic.LoadInt32(&cancelled))
	assert.Zero(t, s.Status().Failures, "cancelled refresh is not a failure")
}

func TestStatusSummary(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "keepalive pending", Status{Enabled: true}.Summary(now))
	assert.Equal(t, "keepalive: not logged in",
		Status{Enabled: true, LastAttempt: now, LastErr: ErrNoCookies}.Summary(now))
	assert.Equal(t, "keepalive failed",
		Status{Enabled: true, LastAttempt: now, LastErr: errors.New("x")}.Summary(now))
	assert.Equal(t, "keepalive ok 5m ago",
		Status{Enabled: true, LastAttempt: now, LastRefresh: now.Add(-5 * time.Minute)}.Summary(now))

	st := Status{Enabled: true, LastAttempt: now, Interval: time.Hour}
	assert.Equal(t, now.Add(time.Hour), st.NextRefresh())
	assert.True(t, Status{}.NextRefresh().IsZero())
}

func TestAgo(t *testing.T) {
	assert.Equal(t, "just now", Ago(10*time.Second))
	assert.Equal(t, "3h ago", Ago(3*time.Hour+10*time.Minute))
	assert.Equal(t, "2d ago", Ago(50*time.Hour))
}

func TestTickCmd(t *testing.T) {
	s := NewScheduler(func(context.Context) error { return nil }, time.Hour, true, zerolog.Nop())
	assert.NotNil(t, s.TickCmd())
}

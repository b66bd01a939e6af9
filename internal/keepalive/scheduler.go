// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package keepalive

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

// DefaultInterval is the time between scheduled refreshes.
const DefaultInterval = 60 * time.Minute

// StatusPollInterval is how often the TUI samples scheduler status.
const StatusPollInterval = 5 * time.Second

// RefreshFunc performs one refresh. (*Refresher).Refresh satisfies it.
type RefreshFunc func(ctx context.Context) error

// =============================================================================
// SCHEDULER
// =============================================================================

// Scheduler runs a RefreshFunc immediately when enabled and then on a fixed
// interval until disabled or stopped.
type Scheduler struct {
	mu sync.Mutex

	refresh  RefreshFunc
	interval time.Duration
	enabled  bool
	status   Status

	parent  context.Context
	started bool
	cancel  context.CancelFunc
	done    chan struct{}

	onResult func(Status)
	log      zerolog.Logger
	now      func() time.Time
}

// NewScheduler creates a scheduler. A non-positive interval means
// DefaultInterval.
func NewScheduler(refresh RefreshFunc, interval time.Duration, enabled bool, log zerolog.Logger) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{
		refresh:  refresh,
		interval: interval,
		enabled:  enabled,
		status:   Status{Enabled: enabled, Interval: interval},
		log:      log.With().Str("component", "keepalive-scheduler").Logger(),
		now:      time.Now,
	}
}

// OnResult registers a callback run after every refresh attempt.
func (s *Scheduler) OnResult(fn func(Status)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onResult = fn
}

// Start begins scheduling under ctx. When enabled the first refresh runs
// right away.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.parent = ctx
	s.started = true
	if s.enabled {
		s.startLocked(true)
	}
	s.log.Info().Bool("enabled", s.enabled).Dur("interval", s.interval).Msg("keepalive started")
}

// Stop halts the loop and waits for an in-flight refresh to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.started = false
	done := s.stopLocked()
	s.mu.Unlock()
	if done != nil {
		<-done
	}
}

// SetEnabled turns scheduling on or off. Enabling refreshes immediately.
func (s *Scheduler) SetEnabled(enabled bool) {
	s.mu.Lock()
	if s.enabled == enabled {
		s.mu.Unlock()
		return
	}
	s.enabled = enabled
	s.status.Enabled = enabled

	var done chan struct{}
	if enabled {
		if s.started {
			s.startLocked(true)
		}
	} else {
		done = s.stopLocked()
	}
	s.mu.Unlock()

	if done != nil {
		<-done
	}
	if enabled {
		s.log.Info().Msg("Auto-renew enabled, starting session refresh")
	} else {
		s.log.Info().Msg("Auto-renew disabled, stopping session refresh")
	}
}

// SetInterval changes the refresh period. A running loop is restarted on
// the new period without an extra refresh.
func (s *Scheduler) SetInterval(d time.Duration) {
	if d <= 0 {
		d = DefaultInterval
	}
	s.mu.Lock()
	if s.interval == d {
		s.mu.Unlock()
		return
	}
	s.interval = d
	s.status.Interval = d
	done := s.stopLocked()
	s.mu.Unlock()

	if done != nil {
		<-done
	}

	s.mu.Lock()
	if s.started && s.enabled && s.cancel == nil {
		s.startLocked(false)
	}
	s.mu.Unlock()
}

// Enabled reports whether scheduling is on.
func (s *Scheduler) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// RefreshNow runs one refresh synchronously and records the outcome. It
// works whether or not scheduling is enabled.
func (s *Scheduler) RefreshNow(ctx context.Context) error {
	err := s.refresh(ctx)
	s.record(err)
	return err
}

func (s *Scheduler) startLocked(immediate bool) {
	if s.cancel != nil {
		return
	}
	parent := s.parent
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done
	go s.loop(ctx, s.interval, immediate, done)
}

func (s *Scheduler) stopLocked() chan struct{} {
	if s.cancel == nil {
		return nil
	}
	s.cancel()
	done := s.done
	s.cancel = nil
	s.done = nil
	return done
}

func (s *Scheduler) loop(ctx context.Context, interval time.Duration, immediate bool, done chan struct{}) {
	defer close(done)

	if immediate {
		s.runOnce(ctx)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	err := s.refresh(ctx)
	// A refresh cut short by Stop or SetEnabled(false) is not a failure.
	if err != nil && ctx.Err() != nil {
		return
	}
	s.record(err)
}

func (s *Scheduler) record(err error) {
	s.mu.Lock()
	now := s.now()
	s.status.LastAttempt = now
	s.status.LastErr = err
	if err == nil {
		s.status.LastRefresh = now
		s.status.Refreshes++
	} else {
		s.status.Failures++
	}
	st := s.status
	cb := s.onResult
	s.mu.Unlock()

	if err != nil {
		ev := s.log.Warn().Err(err)
		var se *StatusError
		if errors.As(err, &se) {
			ev = ev.Int("status", se.Code)
		}
		ev.Int("failures", st.Failures).Msg("keepalive refresh failed")
	} else {
		s.log.Debug().Int("refreshes", st.Refreshes).Msg("keepalive refresh ok")
	}

	if cb != nil {
		cb(st)
	}
}

// =============================================================================
// STATUS
// =============================================================================

// Status is a snapshot of the scheduler.
type Status struct {
	LastRefresh time.Time // last success
	LastAttempt time.Time
	LastErr     error
	Refreshes   int
	Failures    int
	Enabled     bool
	Interval    time.Duration
}

// Status returns a snapshot of the scheduler state.
func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// NextRefresh estimates when the next scheduled refresh runs. Zero when
// disabled or nothing has run yet.
func (st Status) NextRefresh() time.Time {
	if !st.Enabled || st.LastAttempt.IsZero() {
		return time.Time{}
	}
	return st.LastAttempt.Add(st.Interval)
}

// Summary renders the status for a one-line status bar.
func (st Status) Summary(now time.Time) string {
	switch {
	case !st.Enabled:
		return "keepalive off"
	case st.LastAttempt.IsZero():
		return "keepalive pending"
	case st.LastErr != nil:
		if errors.Is(st.LastErr, ErrNoCookies) {
			return "keepalive: not logged in"
		}
		var se *StatusError
		if errors.As(st.LastErr, &se) {
			return fmt.Sprintf("keepalive failed (%d)", se.Code)
		}
		return "keepalive failed"
	default:
		return "keepalive ok " + Ago(now.Sub(st.LastRefresh))
	}
}

// Ago formats an elapsed duration coarsely.
func Ago(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// =============================================================================
// BUBBLE TEA INTEGRATION
// =============================================================================

// StatusMsg carries a status snapshot into the TUI update loop.
type StatusMsg Status

// TickCmd samples the scheduler status after StatusPollInterval. The
// receiver of StatusMsg re-issues it to keep polling.
func (s *Scheduler) TickCmd() tea.Cmd {
	return tea.Tick(StatusPollInterval, func(time.Time) tea.Msg {
		return StatusMsg(s.Status())
	})
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// keepalive_cmd.go - Session keep-alive commands.
//
// Command: keepalive [--interval MINUTES]
// Short:   Refresh the platform session on a timer until interrupted
//
// Command: refresh
// Short:   Refresh the platform session once
//
// Examples:
//   crowdassist keepalive
//   crowdassist keepalive --interval 30
//   crowdassist refresh

package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jeranaias/crowdassist/internal/config"
	"github.com/jeranaias/crowdassist/internal/keepalive"
)

// HandleKeepalive runs the refresh scheduler until ctx is cancelled.
// watcher, when non-nil, applies settings edits while running.
func HandleKeepalive(ctx context.Context, app *App, args Args, watcher *config.Watcher) error {
	refresher, err := app.Refresher()
	if err != nil {
		return err
	}

	interval := app.Config.Session.RefreshInterval()
	if v := args.Parser.Flag("interval"); v != "" {
		minutes, err := ParseIntWithValidation(v, "--interval")
		if err != nil {
			return &UsageError{Field: "--interval", Value: v, Reason: err.Error(), Example: "--interval 30"}
		}
		interval = time.Duration(minutes) * time.Minute
	}
	if !app.Config.Session.AutoRenew {
		app.Log.Info().Msg("session.auto_renew is off in settings; running because keepalive was requested")
	}

	sched := keepalive.NewScheduler(refresher.Refresh, interval, true, app.Log)
	sched.OnResult(func(st keepalive.Status) {
		if args.Quiet {
			return
		}
		fmt.Fprintf(app.Stdout, "%s  %s\n", time.Now().Format(time.Kitchen), st.Summary(time.Now()))
	})
	if watcher != nil {
		BindScheduler(watcher, sched)
	}

	if !args.Quiet {
		fmt.Fprintf(app.Stdout, "%s Refreshing every %s. Press Ctrl+C to stop.\n",
			InfoStyle.Render("[keepalive]"), interval)
	}
	sched.Start(ctx)
	<-ctx.Done()
	sched.Stop()

	st := sched.Status()
	if !args.Quiet {
		fmt.Fprintf(app.Stdout, "Stopped after %d refreshes (%d failed).\n", st.Refreshes, st.Failures)
	}
	return nil
}

// HandleRefresh performs one session refresh.
func HandleRefresh(ctx context.Context, app *App, args Args) error {
	refresher, err := app.Refresher()
	if err != nil {
		return err
	}

	err = refresher.Refresh(ctx)
	if args.JSON {
		out := map[string]interface{}{"success": err == nil}
		if err != nil {
			out["error"] = err.Error()
			var se *keepalive.StatusError
			if errors.As(err, &se) {
				out["status"] = se.Code
			}
		}
		if jerr := outputJSON(app.Stdout, out); jerr != nil {
			return jerr
		}
		return err
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(app.Stdout, "%s Session refreshed\n", RenderStatus("ok"))
	return nil
}

// BindScheduler applies session setting edits picked up by watcher to s:
// auto_renew turns it on or off and refresh_interval_minutes reschedules it.
func BindScheduler(watcher *config.Watcher, s *keepalive.Scheduler) {
	watcher.OnChange(func(_, updated *config.Config, changed []string) {
		if config.Changed(changed, "session.auto_renew") {
			s.SetEnabled(updated.Session.AutoRenew)
		}
		if config.Changed(changed, "session.refresh_interval_minutes") {
			s.SetInterval(updated.Session.RefreshInterval())
		}
	})
}

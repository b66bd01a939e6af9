// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package keepalive keeps a platform login session alive by periodically
// posting to its lifecycle refresh endpoint with the browser's cookies.
//
// # Key Types
//
//   - Refresher: sends one refresh request with cookies from a CookieSource
//   - CookieSource: FileSource (cookies.txt), ChromeSource (DevTools), StaticSource
//   - Scheduler: runs refreshes on an interval and tracks Status
//
// # Usage
//
//	r, err := keepalive.NewRefresherFromConfig(cfg.Session, log)
//	if err != nil {
//	    return err
//	}
//	s := keepalive.NewScheduler(r.Refresh, cfg.Session.RefreshInterval(), cfg.Session.AutoRenew, log)
//	s.Start(ctx)
//	defer s.Stop()
package keepalive

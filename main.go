// crowdassist - A terminal companion for bug bounty reporting.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/jeranaias/crowdassist/internal/cli"
	"github.com/jeranaias/crowdassist/internal/config"
	"github.com/jeranaias/crowdassist/internal/keepalive"
	"github.com/jeranaias/crowdassist/internal/logging"
	"github.com/jeranaias/crowdassist/internal/ui/editor"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Global program reference for config change notifications
var (
	programRef *tea.Program
	programMu  sync.Mutex
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	cmd, args := cli.Parse(argv)

	switch cmd {
	case cli.CmdHelp:
		cli.PrintUsage(os.Stdout)
		return cli.ExitSuccess
	case cli.CmdVersion:
		cli.PrintVersion(os.Stdout)
		return cli.ExitSuccess
	case cli.CmdUnknown:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", args.Name)
		cli.PrintUsage(os.Stderr)
		return cli.ExitUsageError
	}

	cfg, cfgErr := config.Load()
	if cfg == nil {
		cfg = config.Default()
	}
	config.SetGlobal(cfg)

	// The composer owns the terminal, so it logs to a file.
	mode := logging.Console
	if cmd == cli.CmdTUI {
		mode = logging.File
	}
	if args.Verbose {
		cfg.Logging.Level = "debug"
	}
	log, closer, err := logging.New(cfg.Logging, mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		log = zerolog.Nop()
	} else {
		defer closer.Close()
	}
	if cfgErr != nil {
		log.Warn().Err(cfgErr).Msg("settings file unreadable, using defaults")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := cli.NewApp(config.Global(), log)
	defer app.Close()

	err = dispatch(ctx, cmd, app, args)
	if err != nil {
		cli.DisplayError(os.Stderr, err, args.JSON)
		return cli.GetExitCode(err)
	}
	return cli.ExitSuccess
}

func dispatch(ctx context.Context, cmd cli.Command, app *cli.App, args cli.Args) error {
	switch cmd {
	case cli.CmdTUI:
		return runTUI(ctx, app, args)
	case cli.CmdKeepalive:
		watcher := startWatcher(app)
		if watcher != nil {
			defer watcher.Close()
		}
		return cli.HandleKeepalive(ctx, app, args, watcher)
	case cli.CmdRefresh:
		return cli.HandleRefresh(ctx, app, args)
	case cli.CmdIP:
		return cli.HandleIP(ctx, app, args)
	case cli.CmdReview:
		return cli.HandleReview(ctx, app, args)
	case cli.CmdReply:
		return cli.HandleReply(ctx, app, args)
	case cli.CmdReport:
		return cli.HandleReport(ctx, app, args)
	case cli.CmdExport:
		return cli.HandleExport(app, args)
	case cli.CmdTriage:
		return cli.HandleTriage(app, args)
	case cli.CmdRedact:
		return cli.HandleRedact(app, args)
	case cli.CmdClassify:
		return cli.HandleClassify(app, args)
	case cli.CmdMention:
		return cli.HandleMention(app, args)
	case cli.CmdDrafts:
		return cli.HandleDrafts(ctx, app, args)
	case cli.CmdConfig:
		return cli.HandleConfig(ctx, app, args)
	default:
		return fmt.Errorf("unhandled command: %s", cmd)
	}
}

// startWatcher follows settings edits. A watcher that cannot start only
// costs live reloads.
func startWatcher(app *cli.App) *config.Watcher {
	watcher, err := config.NewWatcher(app.Config, app.Log)
	if err != nil {
		app.Log.Warn().Err(err).Msg("settings watcher unavailable")
		return nil
	}
	if err := watcher.Start(); err != nil {
		app.Log.Warn().Err(err).Msg("settings watcher unavailable")
		watcher.Close()
		return nil
	}
	return watcher
}

// =============================================================================
// COMPOSER
// =============================================================================

func runTUI(ctx context.Context, app *cli.App, args cli.Args) error {
	if err := cli.RequiresTTY("tui"); err != nil {
		return err
	}
	cfg := app.Config
	p := args.Parser

	var opts editor.Options
	if path := p.Flag("page"); path != "" {
		doc, err := cli.LoadPage(path, p.Flag("url"))
		if err != nil {
			return err
		}
		opts.Page = doc
	}
	opts.Names = cli.SplitList(p.Flag("names"))
	opts.Initial = p.Flag("text")
	opts.OutPath = p.Flag("out")
	opts.ThemeMode = p.FlagOrDefault("theme", cfg.UI.ThemeMode)
	opts.Privacy = cfg.UI.PrivacyMode || p.BoolFlag("privacy")

	deps := editor.Deps{
		IP:  app.IPClient(),
		Log: app.Log,
	}

	// Missing token or history only disables the matching actions.
	if a, err := app.Assistant(); err == nil {
		deps.Assistant = a
	} else {
		app.Log.Info().Err(err).Msg("AI features disabled")
	}
	if store, err := app.Drafts(); err == nil {
		deps.Drafts = store
	}

	var sched *keepalive.Scheduler
	if refresher, err := app.Refresher(); err == nil {
		sched = keepalive.NewScheduler(refresher.Refresh, cfg.Session.RefreshInterval(), cfg.Session.AutoRenew, app.Log)
		deps.Keepalive = sched
	} else {
		app.Log.Warn().Err(err).Msg("session keep-alive disabled")
	}

	watcher := startWatcher(app)
	if watcher != nil {
		defer watcher.Close()
		if sched != nil {
			cli.BindScheduler(watcher, sched)
		}
		watcher.OnChange(func(_, updated *config.Config, changed []string) {
			if config.Changed(changed, "ui.theme_mode") {
				send(editor.ThemeMsg{Mode: updated.UI.ThemeMode})
			}
			if config.Changed(changed, "ui.privacy_mode") {
				send(editor.PrivacyMsg{Enabled: updated.UI.PrivacyMode})
			}
		})
	}

	if sched != nil {
		sched.Start(ctx)
		defer sched.Stop()
	}

	prog := tea.NewProgram(
		editor.New(opts, deps),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	programMu.Lock()
	programRef = prog
	programMu.Unlock()
	defer func() {
		programMu.Lock()
		programRef = nil
		programMu.Unlock()
	}()

	if _, err := prog.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("composer failed: %w", err)
	}
	return nil
}

// send delivers msg to the running composer, if any.
func send(msg tea.Msg) {
	programMu.Lock()
	p := programRef
	programMu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

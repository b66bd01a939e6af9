// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and usage text for crowdassist.
package cli

import (
	"fmt"
	"io"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdKeepalive
	CmdRefresh
	CmdIP
	CmdReview
	CmdReply
	CmdReport
	CmdExport
	CmdTriage
	CmdRedact
	CmdClassify
	CmdMention
	CmdDrafts
	CmdConfig
	CmdVersion
	CmdHelp
	CmdUnknown
)

var commandNames = map[Command]string{
	CmdTUI:       "tui",
	CmdKeepalive: "keepalive",
	CmdRefresh:   "refresh",
	CmdIP:        "ip",
	CmdReview:    "review",
	CmdReply:     "reply",
	CmdReport:    "report",
	CmdExport:    "export",
	CmdTriage:    "triage",
	CmdRedact:    "redact",
	CmdClassify:  "classify",
	CmdMention:   "mention",
	CmdDrafts:    "drafts",
	CmdConfig:    "config",
	CmdVersion:   "version",
	CmdHelp:      "help",
}

// String returns the command name as typed on the command line.
func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "unknown"
}

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool
	JSON    bool // Output in JSON format

	// Subcommand is the first positional argument after the command.
	Subcommand string

	// Name is what the user typed for an unknown command.
	Name string

	// Raw args after the command, global flags removed.
	Raw []string

	// Parser gives handlers their command-specific flags.
	Parser *ArgParser
}

const usageText = `crowdassist - comment and report assistant for bug bounty researchers

Usage:
  crowdassist                        Start the comment composer (default)
  crowdassist tui [--page FILE] [--url URL] [--names a,b] [--text TEXT]
                  [--out FILE] [--theme light|dark|system] [--privacy]
                                     Compose a comment with @mention completion
  crowdassist keepalive              Keep the platform session alive until Ctrl+C
  crowdassist refresh                Refresh the platform session once
  crowdassist ip [--insert TEXT]     Show your public IP, or append it to TEXT
  crowdassist review --text TEXT [--page FILE]
                                     Improve a reply to the program team
  crowdassist reply --page FILE      Draft a reply to the last comment on a page
  crowdassist report review --file FILE
                                     Review a vulnerability report
  crowdassist report generate [--url URL --type TYPE]
                                     Draft a report (prompts for missing input)
  crowdassist export --page FILE [--format md|json] [--copy] [--open] [--out DIR]
                                     Export a submission as Markdown or JSON
  crowdassist triage --page FILE     Show how long a report waited for triage
  crowdassist redact --page FILE [--restore] [--output FILE]
                                     Hide titles and amounts on a saved page
  crowdassist classify URL           Tell report pages from report forms
  crowdassist mention --names a,b --text TEXT [--caret N] [--accept | --commit NAME]
                                     Show the mention matcher state for TEXT
  crowdassist drafts [list|show ID|prune]
                                     Browse saved AI suggestions
  crowdassist config [show|set KEY VALUE|path|token set|token test|token clear]
                                     Manage settings
  crowdassist version                Show version
  crowdassist help                   Show this help

Composer keys:
  @name      start a mention; Up/Down pick, Tab or Enter inserts
  Ctrl+P     insert your public IP
  Ctrl+R     review the comment with AI
  Ctrl+G     generate a reply to the last comment
  Ctrl+S     save the comment to the output file
  Esc        close the mention list, or quit

Global Flags:
  -q, --quiet     Minimal output
  --verbose       Debug logging
  --json          Output in JSON format

Configuration:
  ~/.crowdassist/config.toml, overridden by .env and CROWDASSIST_* variables.

Examples:
  crowdassist tui --page submission.html
  crowdassist config token set
  crowdassist config set session.cookies_file ~/cookies.txt
  crowdassist export --page submission.html --copy
  crowdassist mention --names hunter42,helen --text "thanks @he"

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage(w io.Writer) {
	fmt.Fprintf(w, usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "crowdassist version %s\n", Version)
	fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
	fmt.Fprintf(w, "  Build date: %s\n", BuildDate)
}

// Parse parses command-line arguments (without the program name) and
// returns the command and args.
func Parse(argv []string) (Command, Args) {
	remaining, parsedArgs := parseGlobalFlags(argv)

	// If no remaining args, default to TUI
	if len(remaining) == 0 {
		parsedArgs.Parser = NewArgParser(nil)
		return CmdTUI, parsedArgs
	}

	name := strings.ToLower(remaining[0])
	rest := remaining[1:]
	if strings.HasPrefix(name, "-") && name != "-h" && name != "--help" && name != "--version" {
		// Flags with no command belong to the composer.
		name, rest = "tui", remaining
	}

	parsedArgs.Raw = rest
	parsedArgs.Parser = NewArgParser(rest)
	parsedArgs.Subcommand = parsedArgs.Parser.Subcommand()

	switch name {
	case "tui", "compose":
		return CmdTUI, parsedArgs
	case "keepalive", "keep-alive":
		return CmdKeepalive, parsedArgs
	case "refresh":
		return CmdRefresh, parsedArgs
	case "ip":
		return CmdIP, parsedArgs
	case "review":
		return CmdReview, parsedArgs
	case "reply", "auto-reply":
		return CmdReply, parsedArgs
	case "report":
		return CmdReport, parsedArgs
	case "export":
		return CmdExport, parsedArgs
	case "triage":
		return CmdTriage, parsedArgs
	case "redact", "privacy":
		return CmdRedact, parsedArgs
	case "classify":
		return CmdClassify, parsedArgs
	case "mention":
		return CmdMention, parsedArgs
	case "drafts", "draft", "history":
		return CmdDrafts, parsedArgs
	case "config":
		return CmdConfig, parsedArgs
	case "version", "--version":
		return CmdVersion, parsedArgs
	case "help", "-h", "--help":
		return CmdHelp, parsedArgs
	default:
		parsedArgs.Name = name
		return CmdUnknown, parsedArgs
	}
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	var parsedArgs Args

	for _, arg := range args {
		switch arg {
		case "-q", "--quiet":
			parsedArgs.Quiet = true
		case "--verbose":
			parsedArgs.Verbose = true
		case "--json":
			parsedArgs.JSON = true
		default:
			remaining = append(remaining, arg)
		}
	}

	return remaining, parsedArgs
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ip_cmd.go - Public IP lookup for crowdassist.
//
// Command: ip [options]
// Short:   Show this machine's public IP address
//
// Options:
//   --insert TEXT    Append the "My IP is:" line to TEXT and print the result
//   --json           Output in JSON format
//
// Examples:
//   crowdassist ip
//   crowdassist ip --insert "Reproduced from my test box."

package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/jeranaias/crowdassist/internal/ipinfo"
)

// ipOutput is the JSON shape of the ip command.
type ipOutput struct {
	IP   string `json:"ip"`
	Text string `json:"text,omitempty"`
}

// HandleIP handles the "ip" command.
func HandleIP(ctx context.Context, app *App, args Args) error {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	ip, err := app.IPClient().Lookup(ctx)
	if err != nil {
		return NewCommandError("ip", "lookup", "could not determine the public IP", err)
	}

	out := ipOutput{IP: ip}
	if args.Parser.HasFlag("insert") {
		out.Text = ipinfo.Insert(args.Parser.Flag("insert"), ip)
	}

	if args.JSON {
		return outputJSON(app.Stdout, out)
	}
	if out.Text != "" {
		fmt.Fprintln(app.Stdout, out.Text)
		return nil
	}
	fmt.Fprintln(app.Stdout, ip)
	return nil
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// prompt.go - Line editing prompts for missing command input.

package cli

import (
	"errors"
	"io"
	"strings"

	"github.com/peterh/liner"
)

// Prompter reads a line of input. *liner.State satisfies it.
type Prompter interface {
	Prompt(prompt string) (string, error)
	PasswordPrompt(prompt string) (string, error)
	Close() error
}

// ErrPromptAborted is returned when the user presses Ctrl+C at a prompt.
var ErrPromptAborted = errors.New("input aborted")

// newLinePrompter opens a liner prompt on the terminal.
func newLinePrompter() Prompter {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	return line
}

// ask prompts until a non-empty answer is given. EOF or Ctrl+C abort.
func ask(p Prompter, prompt string, secret bool) (string, error) {
	for {
		var (
			input string
			err   error
		)
		if secret {
			input, err = p.PasswordPrompt(prompt)
		} else {
			input, err = p.Prompt(prompt)
		}
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return "", ErrPromptAborted
		}
		if err != nil {
			return "", err
		}
		if input = strings.TrimSpace(input); input != "" {
			return input, nil
		}
	}
}

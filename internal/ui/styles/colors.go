// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// PALETTES
// =============================================================================

// Brand is the accent used for every action button in both modes.
const Brand = "#FF6900"

// BrandHover is the pressed/focused variant of Brand.
const BrandHover = "#e55a00"

// Palette is one mode's color set. Values are hex strings so they can be
// shown in settings output as well as fed to lipgloss.
type Palette struct {
	Background          string
	Text                string
	InputBackground     string
	InputBorder         string
	InputText           string
	Button              string
	ButtonHover         string
	ButtonDisabled      string
	ButtonSecondary     string
	ButtonSecondaryText string
	Header              string
	Label               string
	HelpText            string
	CodeBackground      string
	SuccessBackground   string
	SuccessText         string
	SuccessBorder       string
	ErrorBackground     string
	ErrorText           string
	ErrorBorder         string
	Muted               string
}

// LightPalette is used on light terminals.
var LightPalette = Palette{
	Background:          "#ffffff",
	Text:                "#333333",
	InputBackground:     "#ffffff",
	InputBorder:         "#dddddd",
	InputText:           "#333333",
	Button:              Brand,
	ButtonHover:         BrandHover,
	ButtonDisabled:      "#cccccc",
	ButtonSecondary:     "#ffffff",
	ButtonSecondaryText: "#333333",
	Header:              "#1a1a1a",
	Label:               "#333333",
	HelpText:            "#666666",
	CodeBackground:      "#f8f9fa",
	SuccessBackground:   "#d4edda",
	SuccessText:         "#155724",
	SuccessBorder:       "#c3e6cb",
	ErrorBackground:     "#f8d7da",
	ErrorText:           "#721c24",
	ErrorBorder:         "#f5c6cb",
	Muted:               "#6b7280",
}

// DarkPalette is used on dark terminals.
var DarkPalette = Palette{
	Background:          "#1b1f24",
	Text:                "#e2e8f0",
	InputBackground:     "#2d3748",
	InputBorder:         "#4a5568",
	InputText:           "#e2e8f0",
	Button:              Brand,
	ButtonHover:         BrandHover,
	ButtonDisabled:      "#4a5568",
	ButtonSecondary:     "#2d3748",
	ButtonSecondaryText: "#e2e8f0",
	Header:              "#e2e8f0",
	Label:               "#e2e8f0",
	HelpText:            "#a0aec0",
	CodeBackground:      "#0f1419",
	SuccessBackground:   "#2d5a3d",
	SuccessText:         "#9ae6b4",
	SuccessBorder:       "#38a169",
	ErrorBackground:     "#5a2d2d",
	ErrorText:           "#feb2b2",
	ErrorBorder:         "#e53e3e",
	Muted:               "#6b7280",
}

// PaletteFor returns the palette of a resolved mode.
func PaletteFor(mode string) Palette {
	if mode == ModeDark {
		return DarkPalette
	}
	return LightPalette
}

// Color converts a palette entry for lipgloss.
func Color(hex string) lipgloss.Color {
	return lipgloss.Color(hex)
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles holds the light and dark palettes and the lipgloss styles
// built from them.
//
// # Key Types
//
//   - Palette: one mode's hex colors (LightPalette, DarkPalette)
//   - Theme: lipgloss styles for the composer, popup, modal and status bar
//
// # Usage
//
//	theme := styles.NewTheme(cfg.UI.ThemeMode) // "light", "dark" or "system"
//	fmt.Println(theme.HeaderBrand.Render("CrowdAssist"))
package styles

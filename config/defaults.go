// Copyright © 2026 Replpad contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Default values for the replpad configuration file.

package config

func applyDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	cfg.RegisterDefaults("", Section{
		"command": "python3 -i -u",
	})
	cfg.RegisterDefaults("session", Section{
		"use_pty":          false,
		"poll_interval_ms": 30,
		"read_buffer":      4096,
	})
	cfg.RegisterDefaults("panel", Section{
		"cell_margin":  1,
		"cell_padding": 1,
		"banner":       "replpad session",
	})
	cfg.RegisterDefaults("colors", Section{
		"surface_bg":   "#11111b",
		"surface_fg":   "#cdd6f4",
		"output_bg":    "#181825",
		"input_bg":     "#1e1e2e",
		"border":       "#45475a",
		"border_focus": "#89b4fa",
		"status_fg":    "#a6adc8",
		"status_err":   "#f38ba8",
	})
	cfg.RegisterDefaults("highlight", Section{
		"enabled": true,
		"style":   "catppuccin-mocha",
	})
}

// Copyright © 2026 Replpad contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: theme/theme.go
// Summary: Config-backed color and style lookup for the panel.

package theme

import (
	"strconv"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"

	"replpad/config"
)

// Theme resolves named colors from the config store, falling back to the
// caller-supplied default when a key is missing or unparsable.
type Theme struct {
	cfg config.Config
}

var (
	mu     sync.Mutex
	shared *Theme
)

// Get returns the shared theme instance.
func Get() *Theme {
	mu.Lock()
	defer mu.Unlock()
	if shared == nil {
		shared = &Theme{cfg: config.Get()}
	}
	return shared
}

// Reset drops the shared instance so the next Get re-reads config. Tests use
// this after config.Set.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	shared = nil
}

// GetColor looks up a color by section and key.
func (t *Theme) GetColor(section, key string, def tcell.Color) tcell.Color {
	raw := t.cfg.GetString(section, key, "")
	if raw == "" {
		return def
	}
	if c, ok := ParseColor(raw); ok {
		return c
	}
	return def
}

// GetBool forwards to the config store.
func (t *Theme) GetBool(section, key string, def bool) bool {
	return t.cfg.GetBool(section, key, def)
}

// GetString forwards to the config store.
func (t *Theme) GetString(section, key, def string) string {
	return t.cfg.GetString(section, key, def)
}

// ParseColor accepts "#rrggbb" hex values and tcell color names.
func ParseColor(s string) (tcell.Color, bool) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") && len(s) == 7 {
		v, err := strconv.ParseInt(s[1:], 16, 32)
		if err != nil {
			return tcell.ColorDefault, false
		}
		return tcell.NewHexColor(int32(v)), true
	}
	if c, ok := tcell.ColorNames[strings.ToLower(s)]; ok {
		return c, true
	}
	return tcell.ColorDefault, false
}

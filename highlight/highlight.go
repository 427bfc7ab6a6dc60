// Copyright © 2026 Replpad contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: highlight/highlight.go
// Summary: Chroma-based syntax coloring for input cells. The lexer is
// picked from the session command, with content-based detection as a
// fallback for commands we don't recognize.

package highlight

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"
	"github.com/go-enry/go-enry/v2"
)

const defaultStyleName = "catppuccin-mocha"

// interpreters maps interpreter basenames (version suffix stripped) to
// chroma lexer names where the two differ.
var interpreters = map[string]string{
	"node":   "javascript",
	"deno":   "typescript",
	"irb":    "ruby",
	"ghci":   "haskell",
	"sh":     "bash",
	"zsh":    "bash",
	"dash":   "bash",
	"fish":   "fish",
	"sqlite": "sql",
	"psql":   "sql",
}

// Highlighter colors one line at a time. It satisfies widgets.Highlighter.
// When built without a known lexer it detects the language from the first
// non-trivial line it sees and sticks with it.
type Highlighter struct {
	lexer chroma.Lexer
	style *chroma.Style
}

// New builds a highlighter for a chroma lexer name. An empty or unknown
// name defers lexer choice to content detection.
func New(lexerName, styleName string) *Highlighter {
	h := &Highlighter{style: chromaStyle(styleName)}
	if lexerName != "" {
		if lx := lexers.Get(lexerName); lx != nil {
			h.lexer = chroma.Coalesce(lx)
		}
	}
	return h
}

// ForCommand builds a highlighter for an interpreter command line, e.g.
// "python3 -i -u" or "/usr/bin/node".
func ForCommand(command, styleName string) *Highlighter {
	return New(LexerNameForCommand(command), styleName)
}

// LexerNameForCommand maps an interpreter command to a chroma lexer name.
// Returns "" when the command does not identify one.
func LexerNameForCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}
	base := filepath.Base(fields[0])
	base = strings.TrimRight(base, "0123456789.")
	base = strings.TrimSuffix(base, "-")
	if base == "" {
		return ""
	}
	if mapped, ok := interpreters[base]; ok {
		return mapped
	}
	if lexers.Get(base) != nil {
		return base
	}
	return ""
}

func chromaStyle(name string) *chroma.Style {
	if name == "" {
		name = defaultStyleName
	}
	return styles.Get(name)
}

// Styles returns one style per rune of line, derived from base. Runes not
// covered by a token keep the base style.
func (h *Highlighter) Styles(line string, base tcell.Style) []tcell.Style {
	runes := []rune(line)
	out := make([]tcell.Style, len(runes))
	for i := range out {
		out[i] = base
	}
	if len(runes) == 0 {
		return out
	}
	if h.lexer == nil {
		h.detect(line)
		if h.lexer == nil {
			return out
		}
	}

	it, err := h.lexer.Tokenise(nil, line)
	if err != nil {
		return out
	}
	pos := 0
	for _, tok := range it.Tokens() {
		n := len([]rune(tok.Value))
		st := h.tokenStyle(tok.Type, base)
		for i := 0; i < n && pos+i < len(out); i++ {
			out[pos+i] = st
		}
		pos += n
	}
	return out
}

// detect picks a lexer from content via enry. Blank and single-rune lines
// carry too little signal to commit to a language.
func (h *Highlighter) detect(line string) {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < 2 {
		return
	}
	lang := enry.GetLanguage("snippet", []byte(line))
	if lang == "" {
		return
	}
	if lx := lexers.Get(strings.ToLower(lang)); lx != nil {
		h.lexer = chroma.Coalesce(lx)
	}
}

func (h *Highlighter) tokenStyle(tt chroma.TokenType, base tcell.Style) tcell.Style {
	entry := h.style.Get(tt)
	st := base
	if entry.Colour.IsSet() {
		st = st.Foreground(tcell.NewRGBColor(
			int32(entry.Colour.Red()),
			int32(entry.Colour.Green()),
			int32(entry.Colour.Blue()),
		))
	}
	if entry.Bold == chroma.Yes {
		st = st.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		st = st.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		st = st.Underline(true)
	}
	return st
}

// Copyright © 2026 Replpad contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: notebook/cell.go
// Summary: Text cells: one output or input block in the panel stack.

package notebook

import (
	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"

	"replpad/widgets"
)

// Role tags a cell as process output or user input.
type Role int

const (
	Output Role = iota
	Input
)

func (r Role) String() string {
	if r == Input {
		return "input"
	}
	return "output"
}

// TextCell is one block in the vertically stacked panel: a line buffer plus
// a role tag. Output cells are append-only (the stream readers' sink) and
// never user-edited. Input cells accept edits until frozen at submit, after
// which they are immutable history.
type TextCell struct {
	ID     string
	Role   Role
	Buffer *widgets.TextBuffer

	// ScrollHint requests a scroll-to-reveal on the next layout pass.
	ScrollHint bool

	frozen bool
}

// NewOutputCell creates an append-only output cell.
func NewOutputCell(style tcell.Style) *TextCell {
	buf := widgets.NewTextBuffer(style)
	buf.SetReadOnly(true)
	return &TextCell{ID: uuid.NewString(), Role: Output, Buffer: buf}
}

// NewInputCell creates an editable input cell.
func NewInputCell(style tcell.Style, hl widgets.Highlighter) *TextCell {
	buf := widgets.NewTextBuffer(style)
	if hl != nil {
		buf.SetHighlighter(hl)
	}
	return &TextCell{ID: uuid.NewString(), Role: Input, Buffer: buf}
}

// Freeze makes the cell immutable history. Idempotent.
func (c *TextCell) Freeze() {
	c.frozen = true
	c.Buffer.SetReadOnly(true)
}

// Frozen reports whether the cell still accepts edits.
func (c *TextCell) Frozen() bool { return c.frozen }

// Editable reports whether keystrokes should be routed into the cell.
func (c *TextCell) Editable() bool { return c.Role == Input && !c.frozen }

// AppendOutput appends stream text to an output cell.
func (c *TextCell) AppendOutput(text string) {
	if c.Role != Output {
		return
	}
	c.Buffer.AppendText(text)
}

// LineCount returns the cell's current line count for layout.
func (c *TextCell) LineCount() int { return c.Buffer.LineCount() }

// Text returns the full cell content.
func (c *TextCell) Text() string { return c.Buffer.Text() }

// Copyright © 2026 Replpad contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: widgets/textbuffer.go
// Summary: Multiline text buffer widget: ordered line storage, caret,
// viewport, append and insert operations. The editing collaborator behind
// both input and output cells.

package widgets

import (
	"strings"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"replpad/core"
)

// Highlighter colors a single line. Implementations return one style per
// rune, derived from base.
type Highlighter interface {
	Styles(line string, base tcell.Style) []tcell.Style
}

// TextBuffer is a minimal multiline text editor with a viewport. Output
// cells use it append-only; input cells use the full editing surface until
// they are frozen.
type TextBuffer struct {
	Rect       core.Rect
	Lines      []string
	CaretX     int
	CaretY     int
	OffX       int
	OffY       int
	Style      tcell.Style
	CaretStyle tcell.Style

	readOnly bool
	focused  bool
	hl       Highlighter

	// local clipboard fallback when the system clipboard is unavailable
	clip string
}

// NewTextBuffer creates an empty, editable buffer.
func NewTextBuffer(style tcell.Style) *TextBuffer {
	return &TextBuffer{
		Lines: []string{""},
		Style: style,
	}
}

// SetHighlighter installs per-line syntax coloring. A nil highlighter
// restores plain drawing.
func (t *TextBuffer) SetHighlighter(h Highlighter) { t.hl = h }

// SetReadOnly freezes or unfreezes editing. Read-only buffers still accept
// AppendText (the stream readers' path).
func (t *TextBuffer) SetReadOnly(ro bool) { t.readOnly = ro }

// ReadOnly reports whether user edits are accepted.
func (t *TextBuffer) ReadOnly() bool { return t.readOnly }

// Focus and Blur track keyboard focus for caret display.
func (t *TextBuffer) Focus()          { t.focused = true }
func (t *TextBuffer) Blur()           { t.focused = false }
func (t *TextBuffer) IsFocused() bool { return t.focused }

// LineCount returns the number of stored lines. Never zero.
func (t *TextBuffer) LineCount() int {
	if len(t.Lines) == 0 {
		return 1
	}
	return len(t.Lines)
}

// Text returns the buffer joined with newlines.
func (t *TextBuffer) Text() string { return strings.Join(t.Lines, "\n") }

// LinesCopy returns a snapshot of the stored lines.
func (t *TextBuffer) LinesCopy() []string {
	out := make([]string, len(t.Lines))
	copy(out, t.Lines)
	return out
}

// AppendText appends text at the end of the buffer, splitting on newlines.
// The caret is not moved unless it already sat at the end.
func (t *TextBuffer) AppendText(s string) {
	if s == "" {
		return
	}
	atEnd := t.caretAtEnd()
	if len(t.Lines) == 0 {
		t.Lines = []string{""}
	}
	last := len(t.Lines) - 1
	parts := strings.Split(s, "\n")
	t.Lines[last] += parts[0]
	for _, p := range parts[1:] {
		t.Lines = append(t.Lines, p)
	}
	if atEnd {
		t.MoveToEnd()
	}
}

// MoveToEnd places the caret after the last rune of the last line.
func (t *TextBuffer) MoveToEnd() {
	t.CaretY = len(t.Lines) - 1
	if t.CaretY < 0 {
		t.CaretY = 0
	}
	t.CaretX = len([]rune(t.Lines[t.CaretY]))
	t.ensureVisible()
}

// SetText replaces the whole buffer content.
func (t *TextBuffer) SetText(s string) {
	t.Lines = strings.Split(s, "\n")
	if len(t.Lines) == 0 {
		t.Lines = []string{""}
	}
	t.MoveToEnd()
}

func (t *TextBuffer) caretAtEnd() bool {
	if len(t.Lines) == 0 {
		return true
	}
	last := len(t.Lines) - 1
	return t.CaretY == last && t.CaretX >= len([]rune(t.Lines[last]))
}

func (t *TextBuffer) clampCaret() {
	if t.CaretY < 0 {
		t.CaretY = 0
	}
	if t.CaretY >= len(t.Lines) {
		t.CaretY = len(t.Lines) - 1
	}
	if t.CaretY < 0 {
		t.CaretY = 0
	}
	maxX := len([]rune(t.Lines[t.CaretY]))
	if t.CaretX < 0 {
		t.CaretX = 0
	}
	if t.CaretX > maxX {
		t.CaretX = maxX
	}
}

func (t *TextBuffer) ensureVisible() {
	if t.CaretX < t.OffX {
		t.OffX = t.CaretX
	}
	if t.Rect.W > 0 && t.CaretX >= t.OffX+t.Rect.W {
		t.OffX = t.CaretX - t.Rect.W + 1
	}
	if t.OffX < 0 {
		t.OffX = 0
	}
	if t.CaretY < t.OffY {
		t.OffY = t.CaretY
	}
	if t.Rect.H > 0 && t.CaretY >= t.OffY+t.Rect.H {
		t.OffY = t.CaretY - t.Rect.H + 1
	}
	if t.OffY < 0 {
		t.OffY = 0
	}
}

// Draw renders the visible window of the buffer into the painter.
func (t *TextBuffer) Draw(p *core.Painter) {
	p.Fill(t.Rect, ' ', t.Style)
	for row := 0; row < t.Rect.H; row++ {
		ly := t.OffY + row
		if ly >= len(t.Lines) {
			break
		}
		t.drawLine(p, t.Lines[ly], row)
	}
	if t.focused && !t.readOnly {
		cx := t.caretColumn()
		cy := t.CaretY - t.OffY
		if cx >= 0 && cy >= 0 && cx < t.Rect.W && cy < t.Rect.H {
			ch := ' '
			if t.CaretY < len(t.Lines) {
				line := []rune(t.Lines[t.CaretY])
				if t.CaretX < len(line) {
					ch = line[t.CaretX]
				}
			}
			fg, bg, _ := t.Style.Decompose()
			p.SetCell(t.Rect.X+cx, t.Rect.Y+cy, ch, tcell.StyleDefault.Background(fg).Foreground(bg))
		}
	}
}

// caretColumn returns the caret's display column relative to the viewport.
// Columns advance by rune width, matching drawLine, so the caret lands on
// the right cell even after wide runes.
func (t *TextBuffer) caretColumn() int {
	if t.CaretX < t.OffX {
		return t.CaretX - t.OffX
	}
	line := []rune(t.Lines[t.CaretY])
	col := 0
	for i := t.OffX; i < t.CaretX && i < len(line); i++ {
		w := runewidth.RuneWidth(line[i])
		if w < 1 {
			w = 1
		}
		col += w
	}
	return col
}

func (t *TextBuffer) drawLine(p *core.Painter, line string, row int) {
	runes := []rune(line)
	var styles []tcell.Style
	if t.hl != nil {
		styles = t.hl.Styles(line, t.Style)
	}
	col := 0
	for cx := t.OffX; cx < len(runes) && col < t.Rect.W; cx++ {
		style := t.Style
		if styles != nil && cx < len(styles) {
			style = styles[cx]
		}
		r := runes[cx]
		p.SetCell(t.Rect.X+col, t.Rect.Y+row, r, style)
		w := runewidth.RuneWidth(r)
		if w < 1 {
			w = 1
		}
		col += w
	}
}

// InsertText inserts at the caret, honoring embedded newlines.
func (t *TextBuffer) InsertText(s string) {
	if t.readOnly {
		return
	}
	for _, r := range s {
		if r == '\n' {
			t.splitLineAtCaret()
		} else {
			t.insertRune(r)
		}
	}
	t.clampCaret()
	t.ensureVisible()
}

func (t *TextBuffer) splitLineAtCaret() {
	line := []rune(t.Lines[t.CaretY])
	head := string(line[:t.CaretX])
	tail := string(line[t.CaretX:])
	t.Lines[t.CaretY] = head
	t.Lines = append(t.Lines[:t.CaretY+1], append([]string{""}, t.Lines[t.CaretY+1:]...)...)
	t.Lines[t.CaretY+1] = tail
	t.CaretY++
	t.CaretX = 0
}

func (t *TextBuffer) insertRune(r rune) {
	line := []rune(t.Lines[t.CaretY])
	if t.CaretX < 0 {
		t.CaretX = 0
	}
	if t.CaretX > len(line) {
		t.CaretX = len(line)
	}
	line = append(line[:t.CaretX], append([]rune{r}, line[t.CaretX:]...)...)
	t.Lines[t.CaretY] = string(line)
	t.CaretX++
}

// HandleMouse implements click-to-caret and wheel scrolling within the
// buffer's rectangle. Returns false when the event falls outside.
func (t *TextBuffer) HandleMouse(ev *tcell.EventMouse) bool {
	x, y := ev.Position()
	if !t.Rect.Contains(x, y) {
		return false
	}
	btn := ev.Buttons()
	if btn&(tcell.WheelUp|tcell.WheelDown) != 0 {
		if btn&tcell.WheelUp != 0 && t.OffY > 0 {
			t.OffY--
		}
		if btn&tcell.WheelDown != 0 && t.OffY < len(t.Lines)-1 {
			t.OffY++
		}
		return true
	}
	if btn&tcell.Button1 != 0 {
		t.CaretY = t.OffY + (y - t.Rect.Y)
		t.CaretX = t.OffX + (x - t.Rect.X)
		t.clampCaret()
		t.ensureVisible()
		return true
	}
	return false
}

// readClipboard prefers the system clipboard, falling back to the last
// locally copied text when unavailable (headless test runs, remote shells).
func (t *TextBuffer) readClipboard() string {
	if s, err := clipboard.ReadAll(); err == nil && s != "" {
		return s
	}
	return t.clip
}

func (t *TextBuffer) writeClipboard(s string) {
	t.clip = s
	_ = clipboard.WriteAll(s)
}

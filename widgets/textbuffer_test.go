// Copyright © 2026 Replpad contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: widgets/textbuffer_test.go
// Summary: Tests for TextBuffer editing and append semantics.

package widgets

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"replpad/core"
)

func keyRune(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func TestAppendTextSplitsOnNewlines(t *testing.T) {
	b := NewTextBuffer(tcell.StyleDefault)
	b.AppendText("hello")
	b.AppendText(" world\nsecond")
	b.AppendText("\n")

	want := []string{"hello world", "second", ""}
	if len(b.Lines) != len(want) {
		t.Fatalf("lines = %q, want %q", b.Lines, want)
	}
	for i := range want {
		if b.Lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, b.Lines[i], want[i])
		}
	}
}

func TestAppendTextPreservesEmbeddedNewlineText(t *testing.T) {
	b := NewTextBuffer(tcell.StyleDefault)
	b.AppendText("a\n\nb")
	if got := b.Text(); got != "a\n\nb" {
		t.Errorf("Text() = %q, want %q", got, "a\n\nb")
	}
}

func TestTypingAndEnterEditLines(t *testing.T) {
	b := NewTextBuffer(tcell.StyleDefault)
	for _, r := range "ab" {
		b.HandleKey(keyRune(r))
	}
	b.HandleKey(key(tcell.KeyEnter))
	b.HandleKey(keyRune('c'))

	if got := b.Text(); got != "ab\nc" {
		t.Errorf("Text() = %q, want %q", got, "ab\nc")
	}
	if b.CaretY != 1 || b.CaretX != 1 {
		t.Errorf("caret = (%d,%d), want (1,1)", b.CaretX, b.CaretY)
	}
}

func TestBackspaceJoinsLines(t *testing.T) {
	b := NewTextBuffer(tcell.StyleDefault)
	b.SetText("ab\ncd")
	b.CaretY, b.CaretX = 1, 0
	b.HandleKey(key(tcell.KeyBackspace2))

	if got := b.Text(); got != "abcd" {
		t.Errorf("Text() = %q, want %q", got, "abcd")
	}
	if b.CaretX != 2 {
		t.Errorf("caret x = %d, want 2", b.CaretX)
	}
}

func TestReadOnlyRejectsEdits(t *testing.T) {
	b := NewTextBuffer(tcell.StyleDefault)
	b.SetText("frozen")
	b.SetReadOnly(true)

	if b.HandleKey(keyRune('x')) {
		t.Errorf("rune accepted on read-only buffer")
	}
	if b.HandleKey(key(tcell.KeyBackspace2)) {
		t.Errorf("backspace accepted on read-only buffer")
	}
	if got := b.Text(); got != "frozen" {
		t.Errorf("Text() = %q, want %q", got, "frozen")
	}
	// Caret motion stays available for inspection.
	if !b.HandleKey(key(tcell.KeyHome)) {
		t.Errorf("caret motion rejected on read-only buffer")
	}

	// AppendText is the stream path and bypasses the edit gate.
	b.AppendText("!")
	if got := b.Text(); got != "frozen!" {
		t.Errorf("AppendText on read-only buffer: Text() = %q", got)
	}
}

func TestDrawClipsToViewport(t *testing.T) {
	b := NewTextBuffer(tcell.StyleDefault)
	b.SetText("one\ntwo\nthree")
	b.Rect = core.Rect{X: 0, Y: 0, W: 3, H: 2}
	b.OffY = 1

	frame := core.NewFrame(3, 2, tcell.StyleDefault)
	b.Draw(core.NewPainter(frame))

	row0 := string([]rune{frame[0][0].Ch, frame[0][1].Ch, frame[0][2].Ch})
	row1 := string([]rune{frame[1][0].Ch, frame[1][1].Ch, frame[1][2].Ch})
	if row0 != "two" {
		t.Errorf("row 0 = %q, want %q", row0, "two")
	}
	if row1 != "thr" {
		t.Errorf("row 1 = %q, want %q", row1, "thr")
	}
}

func TestCaretDrawsAfterWideRunes(t *testing.T) {
	style := tcell.StyleDefault.Foreground(tcell.ColorRed).Background(tcell.ColorBlack)
	b := NewTextBuffer(style)
	b.SetText("日本x")
	b.Focus()
	b.CaretY, b.CaretX = 0, 1 // between the two wide runes
	b.Rect = core.Rect{X: 0, Y: 0, W: 10, H: 1}

	frame := core.NewFrame(10, 1, style)
	b.Draw(core.NewPainter(frame))

	caretStyle := tcell.StyleDefault.Background(tcell.ColorRed).Foreground(tcell.ColorBlack)
	// 日 occupies columns 0-1, so the caret sits on column 2 over 本.
	if frame[0][2].Style != caretStyle || frame[0][2].Ch != '本' {
		t.Errorf("caret cell = %q with style %v, want '本' reversed", frame[0][2].Ch, frame[0][2].Style)
	}
	if frame[0][1].Style == caretStyle {
		t.Errorf("caret drawn on the rune-index column instead of the display column")
	}

	// Caret at end of line: after 日(2) 本(2) x(1) comes column 5.
	b.MoveToEnd()
	frame = core.NewFrame(10, 1, style)
	b.Draw(core.NewPainter(frame))
	if frame[0][5].Style != caretStyle {
		t.Errorf("end-of-line caret not at column 5")
	}
}

func TestMouseClickMovesCaret(t *testing.T) {
	b := NewTextBuffer(tcell.StyleDefault)
	b.SetText("abc\ndefgh")
	b.Rect = core.Rect{X: 2, Y: 1, W: 10, H: 4}

	ev := tcell.NewEventMouse(4, 2, tcell.Button1, tcell.ModNone)
	if !b.HandleMouse(ev) {
		t.Fatalf("click inside rect not handled")
	}
	if b.CaretY != 1 || b.CaretX != 2 {
		t.Errorf("caret = (%d,%d), want (2,1)", b.CaretX, b.CaretY)
	}

	outside := tcell.NewEventMouse(0, 0, tcell.Button1, tcell.ModNone)
	if b.HandleMouse(outside) {
		t.Errorf("click outside rect handled")
	}
}

// Copyright © 2026 Replpad contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: widgets/textbuffer_keys.go
// Summary: Keyboard editing for TextBuffer.

package widgets

import (
	"github.com/gdamore/tcell/v2"
)

// HandleKey implements caret motion, editing and clipboard operations.
// Read-only buffers still allow caret motion so output can be inspected.
func (t *TextBuffer) HandleKey(ev *tcell.EventKey) bool {
	if ev.Modifiers()&tcell.ModCtrl != 0 {
		switch ev.Rune() {
		case 'c':
			t.writeClipboard(t.Lines[t.CaretY])
			return true
		case 'v':
			if t.readOnly {
				return false
			}
			if s := t.readClipboard(); s != "" {
				t.InsertText(s)
				return true
			}
			return false
		}
	}

	switch ev.Key() {
	case tcell.KeyLeft:
		t.CaretX--
	case tcell.KeyRight:
		t.CaretX++
	case tcell.KeyUp:
		if t.CaretY == 0 {
			return false
		}
		t.CaretY--
	case tcell.KeyDown:
		if t.CaretY >= len(t.Lines)-1 {
			return false
		}
		t.CaretY++
	case tcell.KeyHome:
		t.CaretX = 0
	case tcell.KeyEnd:
		t.CaretX = 1 << 30
	case tcell.KeyEnter:
		if t.readOnly {
			return false
		}
		t.splitLineAtCaret()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if t.readOnly {
			return false
		}
		if t.CaretX > 0 {
			line := []rune(t.Lines[t.CaretY])
			t.Lines[t.CaretY] = string(append(line[:t.CaretX-1], line[t.CaretX:]...))
			t.CaretX--
		} else if t.CaretY > 0 {
			prev := t.Lines[t.CaretY-1]
			cur := t.Lines[t.CaretY]
			t.CaretX = len([]rune(prev))
			t.Lines[t.CaretY-1] = prev + cur
			t.Lines = append(t.Lines[:t.CaretY], t.Lines[t.CaretY+1:]...)
			t.CaretY--
		} else {
			return false
		}
	case tcell.KeyDelete:
		if t.readOnly {
			return false
		}
		line := []rune(t.Lines[t.CaretY])
		if t.CaretX < len(line) {
			t.Lines[t.CaretY] = string(append(line[:t.CaretX], line[t.CaretX+1:]...))
		} else if t.CaretY < len(t.Lines)-1 {
			t.Lines[t.CaretY] = t.Lines[t.CaretY] + t.Lines[t.CaretY+1]
			t.Lines = append(t.Lines[:t.CaretY+1], t.Lines[t.CaretY+2:]...)
		} else {
			return false
		}
	case tcell.KeyRune:
		if t.readOnly {
			return false
		}
		t.insertRune(ev.Rune())
	default:
		return false
	}

	t.clampCaret()
	t.ensureVisible()
	return true
}

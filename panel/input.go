// Copyright © 2026 Replpad contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: panel/input.go
// Summary: Event routing: keyboard into the active cell, submit and history
// chords, pointer hit-testing and wheel scrolling.

package panel

import (
	"github.com/gdamore/tcell/v2"

	"replpad/core"
	"replpad/layout"
	"replpad/session"
)

const wheelStep = 2

// HandleKey routes a key event. Alt+Enter submits; Alt+Up/Alt+Down recall
// history into the trailing input; everything else goes to the active cell.
func (p *Panel) HandleKey(ev *tcell.EventKey) {
	if ev == nil {
		return
	}
	if ev.Modifiers()&tcell.ModAlt != 0 {
		switch ev.Key() {
		case tcell.KeyEnter:
			// Submit handles its own notification.
			_ = p.Submit()
			return
		case tcell.KeyUp:
			p.recallHistory(false)
			return
		case tcell.KeyDown:
			p.recallHistory(true)
			return
		}
	}

	p.mu.Lock()
	handled := p.cells.ActiveCell().Buffer.HandleKey(ev)
	p.clampScrollLocked()
	p.mu.Unlock()
	if handled {
		p.notify()
	}
}

// recallHistory replaces the trailing input's content with the previous or
// next submission sharing the current draft as a prefix. Only acts when the
// trailing input is active.
func (p *Panel) recallHistory(forward bool) {
	p.mu.Lock()
	if p.history == nil || p.cells.ActiveCell() != p.cells.TailInput() {
		p.mu.Unlock()
		return
	}
	if !p.history.Recalling() {
		// Entering recall: whatever is typed so far narrows the walk.
		p.recallPrefix = session.Collapse(p.cells.TailInput().Text())
	}
	var (
		text string
		ok   bool
	)
	if forward {
		text, ok = p.history.Next(p.recallPrefix)
	} else {
		text, ok = p.history.Prev(p.recallPrefix)
	}
	if ok {
		p.cells.TailInput().Buffer.SetText(text)
	} else if forward {
		// Stepping past the newest match restores the original draft.
		p.cells.TailInput().Buffer.SetText(p.recallPrefix)
	}
	p.mu.Unlock()
	p.notify()
}

// HandlePaste inserts pasted text into the active cell as one unit.
func (p *Panel) HandlePaste(text string) {
	if text == "" {
		return
	}
	p.mu.Lock()
	cell := p.cells.ActiveCell()
	if cell.Editable() {
		cell.Buffer.InsertText(text)
	}
	p.mu.Unlock()
	p.notify()
}

// HandleMouse implements wheel scrolling of the whole stack and
// click-to-focus of individual cells.
func (p *Panel) HandleMouse(ev *tcell.EventMouse) {
	if ev == nil {
		return
	}
	x, y := ev.Position()
	btn := ev.Buttons()

	p.mu.Lock()
	if y >= p.viewportHeightLocked() {
		p.mu.Unlock()
		return
	}

	if btn&(tcell.WheelUp|tcell.WheelDown) != 0 {
		if btn&tcell.WheelUp != 0 {
			p.scroll -= wheelStep
		}
		if btn&tcell.WheelDown != 0 {
			p.scroll += wheelStep
		}
		p.clampScrollLocked()
		p.mu.Unlock()
		p.notify()
		return
	}

	if btn&tcell.Button1 != 0 {
		rects := layout.Compute(p.cells.LineCounts(), p.metrics, p.scroll, p.cols)
		if i := layout.HitTest(rects, x, y); i >= 0 {
			p.cells.SetActive(i)
			// Refresh the buffer rectangle before forwarding so
			// click-to-caret maps against current geometry.
			pad := p.metrics.Padding
			r := rects[i]
			p.cells.At(i).Buffer.Rect = core.Rect{
				X: r.X + pad, Y: r.Y + pad, W: r.W - 2*pad, H: r.H - 2*pad,
			}
			p.cells.At(i).Buffer.HandleMouse(ev)
		}
		p.mu.Unlock()
		p.notify()
		return
	}
	p.mu.Unlock()
}

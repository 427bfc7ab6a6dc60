// Copyright © 2026 Replpad contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: panel/draw.go
// Summary: Frame composition: lays the cells out, applies any pending
// scroll-to-reveal, draws borders, buffers and the status line.

package panel

import (
	"fmt"

	"replpad/core"
	"replpad/layout"
	"replpad/notebook"
)

// Render composes the panel's frame. Safe to call from the host's draw
// goroutine; it takes the same lock as the chunk consumer.
func (p *Panel) Render() [][]core.Cell {
	p.mu.Lock()
	defer p.mu.Unlock()

	frame := core.NewFrame(p.cols, p.rows, p.surfaceStyle)
	if p.cols < 1 || p.rows < 1 {
		return frame
	}
	painter := core.NewPainter(frame)
	viewportH := p.viewportHeightLocked()

	rects := layout.Compute(p.cells.LineCounts(), p.metrics, p.scroll, p.cols)
	if p.pendingOutput {
		p.pendingOutput = false
		if i := p.outputIndexLocked(); i >= 0 {
			p.scroll = layout.RevealBottom(rects, i, p.scroll, viewportH)
			rects = layout.Compute(p.cells.LineCounts(), p.metrics, p.scroll, p.cols)
		}
	}

	for i, cell := range p.cells.Cells() {
		p.drawCell(painter, cell, rects[i], i == p.cells.ActiveIndex(), viewportH)
	}
	p.drawStatus(painter)
	return frame
}

func (p *Panel) drawCell(painter *core.Painter, cell *notebook.TextCell, r core.Rect, active bool, viewportH int) {
	if r.Bottom() <= 0 || r.Y >= viewportH || r.Empty() {
		return
	}
	bg := p.outputStyle
	if cell.Role == notebook.Input {
		bg = p.inputStyle
	}
	painter.Fill(r, ' ', bg)

	border := p.borderStyle
	if active {
		border = p.focusStyle
	}
	painter.Box(r, border)

	pad := p.metrics.Padding
	inner := core.Rect{
		X: r.X + pad,
		Y: r.Y + pad,
		W: r.W - 2*pad,
		H: r.H - 2*pad,
	}
	if inner.Empty() {
		return
	}
	buf := cell.Buffer
	buf.Rect = inner
	buf.Style = bg
	// Cell rectangles grow with content, so vertical scrolling happens at
	// the panel level, never inside a cell.
	buf.OffY = 0
	if cell.Role == notebook.Output {
		buf.OffX = 0
	}
	buf.Draw(painter)
}

func (p *Panel) drawStatus(painter *core.Painter) {
	y := p.rows - 1
	style := p.statusStyle
	msg := p.status
	if p.statusErr {
		style = p.errStyle
	}
	if msg == "" {
		state := "alive"
		if p.sess == nil || !p.sess.Alive() {
			state = "exited"
		}
		msg = fmt.Sprintf("%s · cells %d", state, p.cells.Len())
	}
	painter.Fill(core.Rect{X: 0, Y: y, W: p.cols, H: 1}, ' ', style)
	painter.Text(1, y, msg, style, p.cols-2)
}

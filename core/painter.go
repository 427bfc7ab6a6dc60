// Copyright © 2026 Replpad contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: core/painter.go
// Summary: Painter composes widget output into a frame buffer of cells.

package core

import "github.com/gdamore/tcell/v2"

// Painter draws into a [][]Cell frame, clipped to the frame bounds.
// Widgets receive a Painter during draw and never touch the frame directly.
type Painter struct {
	buf  [][]Cell
	w, h int
}

// NewPainter wraps an existing frame buffer. Rows may be shorter than w;
// the painter clips against the actual row length.
func NewPainter(buf [][]Cell) *Painter {
	h := len(buf)
	w := 0
	if h > 0 {
		w = len(buf[0])
	}
	return &Painter{buf: buf, w: w, h: h}
}

// NewFrame allocates a w×h frame filled with spaces in the given style.
func NewFrame(w, h int, style tcell.Style) [][]Cell {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	buf := make([][]Cell, h)
	for y := range buf {
		row := make([]Cell, w)
		for x := range row {
			row[x] = Cell{Ch: ' ', Style: style}
		}
		buf[y] = row
	}
	return buf
}

// Size returns the frame dimensions.
func (p *Painter) Size() (int, int) { return p.w, p.h }

// SetCell writes one cell, ignoring out-of-bounds coordinates.
func (p *Painter) SetCell(x, y int, ch rune, style tcell.Style) {
	if y < 0 || y >= p.h || x < 0 || x >= len(p.buf[y]) {
		return
	}
	p.buf[y][x] = Cell{Ch: ch, Style: style}
}

// Fill paints every cell of the rectangle with ch in the given style.
func (p *Painter) Fill(r Rect, ch rune, style tcell.Style) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			p.SetCell(x, y, ch, style)
		}
	}
}

// Box draws a single-line border on the rectangle's perimeter.
func (p *Painter) Box(r Rect, style tcell.Style) {
	if r.W < 2 || r.H < 2 {
		return
	}
	x1, y1 := r.X+r.W-1, r.Y+r.H-1
	for x := r.X + 1; x < x1; x++ {
		p.SetCell(x, r.Y, tcell.RuneHLine, style)
		p.SetCell(x, y1, tcell.RuneHLine, style)
	}
	for y := r.Y + 1; y < y1; y++ {
		p.SetCell(r.X, y, tcell.RuneVLine, style)
		p.SetCell(x1, y, tcell.RuneVLine, style)
	}
	p.SetCell(r.X, r.Y, tcell.RuneULCorner, style)
	p.SetCell(x1, r.Y, tcell.RuneURCorner, style)
	p.SetCell(r.X, y1, tcell.RuneLLCorner, style)
	p.SetCell(x1, y1, tcell.RuneLRCorner, style)
}

// Text writes a string left-to-right starting at (x, y), clipped to maxW
// runes when maxW is positive.
func (p *Painter) Text(x, y int, s string, style tcell.Style, maxW int) {
	col := 0
	for _, r := range s {
		if maxW > 0 && col >= maxW {
			break
		}
		p.SetCell(x+col, y, r, style)
		col++
	}
}

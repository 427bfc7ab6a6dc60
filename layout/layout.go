// Copyright © 2026 Replpad contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: layout/layout.go
// Summary: Pure layout engine for the panel's vertical cell stack. Turns
// line counts into stacked rectangles, answers point queries, and computes
// scroll offsets that reveal a cell. No widget or session knowledge.

package layout

import "replpad/core"

// Metrics are the fixed spacing parameters of a layout pass.
type Metrics struct {
	// Margin is the gap above, below and beside every cell.
	Margin int
	// Padding is the inset between a cell's border box and its text.
	Padding int
	// LineHeight is rows per text line; terminals use 1.
	LineHeight int
}

func (m Metrics) normalized() Metrics {
	if m.Margin < 0 {
		m.Margin = 0
	}
	if m.Padding < 0 {
		m.Padding = 0
	}
	if m.LineHeight < 1 {
		m.LineHeight = 1
	}
	return m
}

// cellHeight is the border-box height of a cell with the given line count.
// Empty cells still occupy one line so they remain visible and clickable.
func cellHeight(lines int, m Metrics) int {
	if lines < 1 {
		lines = 1
	}
	return lines*m.LineHeight + 2*m.Padding
}

// Compute lays the cells out top to bottom in viewport coordinates: cell i
// gets a rectangle whose height follows its line count and whose vertical
// position follows the cells above it, shifted up by scroll. Rectangles
// never overlap; consecutive cells are separated by Margin rows.
func Compute(lineCounts []int, m Metrics, scroll, viewportW int) []core.Rect {
	m = m.normalized()
	rects := make([]core.Rect, len(lineCounts))

	w := viewportW - 2*m.Margin
	if w < 1 {
		w = 1
	}
	y := m.Margin
	for i, lines := range lineCounts {
		h := cellHeight(lines, m)
		rects[i] = core.Rect{X: m.Margin, Y: y - scroll, W: w, H: h}
		y += h + m.Margin
	}
	return rects
}

// ContentHeight is the total height of the laid-out stack, margins included.
func ContentHeight(lineCounts []int, m Metrics) int {
	m = m.normalized()
	h := m.Margin
	for _, lines := range lineCounts {
		h += cellHeight(lines, m) + m.Margin
	}
	return h
}

// MaxScroll is the largest useful scroll offset for the given content and
// viewport heights.
func MaxScroll(contentH, viewportH int) int {
	if s := contentH - viewportH; s > 0 {
		return s
	}
	return 0
}

// HitTest returns the index of the rectangle containing (x, y), or -1.
// Computed stacks never overlap, so at most one rectangle matches.
func HitTest(rects []core.Rect, x, y int) int {
	for i, r := range rects {
		if r.Contains(x, y) {
			return i
		}
	}
	return -1
}

// RevealBottom returns the scroll offset that places rects[i]'s bottom edge
// at the bottom of a viewport of height viewportH. rects are in viewport
// coordinates for the current scroll offset. The result is clamped at zero:
// content shorter than the viewport stays pinned to the top.
func RevealBottom(rects []core.Rect, i, scroll, viewportH int) int {
	if i < 0 || i >= len(rects) {
		return scroll
	}
	bottom := rects[i].Bottom() + scroll
	if s := bottom - viewportH; s > 0 {
		return s
	}
	return 0
}

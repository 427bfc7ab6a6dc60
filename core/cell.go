// Copyright © 2026 Replpad contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: core/cell.go
// Summary: Screen cell and rectangle primitives shared by the panel and widgets.

package core

import "github.com/gdamore/tcell/v2"

// Cell is one drawable character cell.
type Cell struct {
	Ch    rune
	Style tcell.Style
}

// Rect is a screen-space rectangle. W and H are in character cells.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the point (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Bottom returns the first y coordinate below the rectangle.
func (r Rect) Bottom() int { return r.Y + r.H }

// Intersects reports whether two rectangles share at least one cell.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W && r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

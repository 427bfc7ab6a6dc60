// Copyright © 2026 Replpad contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: notebook/sequence.go
// Summary: Ordered cell sequence: insertion order is chronological order is
// display order. Holds the active-cell pointer and the submit bookkeeping.

package notebook

// CellSequence owns the panel's cells. Invariants it maintains:
//   - the sequence always ends with exactly one unfrozen Input cell;
//   - every earlier Input cell is frozen;
//   - there are as many Output cells as completed submissions plus one
//     (the initial banner cell);
//   - the active cell is a member: the trailing input by default, or one
//     explicitly focused by pointer interaction.
type CellSequence struct {
	cells  []*TextCell
	active int
}

// NewCellSequence starts the sequence with the banner output cell and the
// first input cell. The input cell is active.
func NewCellSequence(banner, input *TextCell) *CellSequence {
	return &CellSequence{cells: []*TextCell{banner, input}, active: 1}
}

// Len returns the number of cells.
func (s *CellSequence) Len() int { return len(s.cells) }

// At returns the cell at display index i, or nil when out of range.
func (s *CellSequence) At(i int) *TextCell {
	if i < 0 || i >= len(s.cells) {
		return nil
	}
	return s.cells[i]
}

// Cells returns the cells in display order. Callers must not reorder.
func (s *CellSequence) Cells() []*TextCell { return s.cells }

// ActiveIndex returns the index of the active cell.
func (s *CellSequence) ActiveIndex() int { return s.active }

// ActiveCell returns the cell currently receiving focus.
func (s *CellSequence) ActiveCell() *TextCell { return s.cells[s.active] }

// SetActive refocuses the cell at index i (pointer interaction). Order and
// frozen-ness are untouched; only input routing changes.
func (s *CellSequence) SetActive(i int) {
	if i < 0 || i >= len(s.cells) {
		return
	}
	s.cells[s.active].Buffer.Blur()
	s.active = i
	s.cells[s.active].Buffer.Focus()
}

// TailInput returns the trailing input cell (the only unfrozen one).
func (s *CellSequence) TailInput() *TextCell {
	return s.cells[len(s.cells)-1]
}

// OutputTarget returns the trailing output cell the stream readers append to.
func (s *CellSequence) OutputTarget() *TextCell {
	for i := len(s.cells) - 1; i >= 0; i-- {
		if s.cells[i].Role == Output {
			return s.cells[i]
		}
	}
	return nil
}

// FreezeTailInput freezes the trailing input cell and returns it.
func (s *CellSequence) FreezeTailInput() *TextCell {
	in := s.TailInput()
	in.Freeze()
	return in
}

// AppendPair appends a fresh output/input pair (in that order) and makes the
// new input cell active. This is the growth step of the submit protocol.
func (s *CellSequence) AppendPair(out, in *TextCell) {
	s.cells[s.active].Buffer.Blur()
	s.cells = append(s.cells, out, in)
	s.active = len(s.cells) - 1
	in.Buffer.Focus()
}

// LineCounts returns each cell's line count in display order, the layout
// engine's input.
func (s *CellSequence) LineCounts() []int {
	counts := make([]int, len(s.cells))
	for i, c := range s.cells {
		counts[i] = c.LineCount()
	}
	return counts
}

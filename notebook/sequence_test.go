// Copyright © 2026 Replpad contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: notebook/sequence_test.go
// Summary: Tests for cell sequence invariants and the growth step.

package notebook

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func newSequence() *CellSequence {
	banner := NewOutputCell(tcell.StyleDefault)
	banner.AppendOutput("session started")
	return NewCellSequence(banner, NewInputCell(tcell.StyleDefault, nil))
}

func TestConstructionInvariants(t *testing.T) {
	s := newSequence()
	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}
	if s.At(0).Role != Output || s.At(1).Role != Input {
		t.Errorf("roles = %v, %v; want output, input", s.At(0).Role, s.At(1).Role)
	}
	if s.ActiveCell() != s.TailInput() {
		t.Errorf("active cell is not the trailing input")
	}
	if s.TailInput().Frozen() {
		t.Errorf("trailing input frozen at construction")
	}
}

func TestAppendPairGrowsByTwoAndFreezesHistory(t *testing.T) {
	s := newSequence()
	s.TailInput().Buffer.SetText("1+1")

	frozen := s.FreezeTailInput()
	s.AppendPair(NewOutputCell(tcell.StyleDefault), NewInputCell(tcell.StyleDefault, nil))

	if s.Len() != 4 {
		t.Fatalf("Len = %d, want 4", s.Len())
	}
	if !frozen.Frozen() {
		t.Errorf("submitted input not frozen")
	}
	if frozen.Text() != "1+1" {
		t.Errorf("frozen input content changed: %q", frozen.Text())
	}
	if s.ActiveCell() != s.At(3) || s.At(3).Role != Input {
		t.Errorf("active cell is not the new trailing input")
	}
	if s.OutputTarget() != s.At(2) {
		t.Errorf("output target is not the new output cell")
	}

	// Exactly one unfrozen input, and it is the tail.
	for i, c := range s.Cells() {
		if c.Role == Input && !c.Frozen() && i != s.Len()-1 {
			t.Errorf("unfrozen input at index %d", i)
		}
	}
}

func TestOutputCountTracksSubmissions(t *testing.T) {
	s := newSequence()
	for n := 1; n <= 3; n++ {
		s.FreezeTailInput()
		s.AppendPair(NewOutputCell(tcell.StyleDefault), NewInputCell(tcell.StyleDefault, nil))

		outputs := 0
		for _, c := range s.Cells() {
			if c.Role == Output {
				outputs++
			}
		}
		if outputs != n+1 {
			t.Errorf("after %d submissions: %d output cells, want %d", n, outputs, n+1)
		}
	}
}

func TestSetActiveRoutesFocusOnly(t *testing.T) {
	s := newSequence()
	s.FreezeTailInput()
	s.AppendPair(NewOutputCell(tcell.StyleDefault), NewInputCell(tcell.StyleDefault, nil))

	before := make([]string, s.Len())
	for i, c := range s.Cells() {
		before[i] = c.Text()
	}

	s.SetActive(1) // pointer click on frozen input
	if s.ActiveIndex() != 1 {
		t.Fatalf("active index = %d, want 1", s.ActiveIndex())
	}
	if s.At(1).Editable() {
		t.Errorf("focused frozen input became editable")
	}
	for i, c := range s.Cells() {
		if c.Text() != before[i] {
			t.Errorf("cell %d content changed by focus: %q", i, c.Text())
		}
	}

	s.SetActive(99) // out of range: ignored
	if s.ActiveIndex() != 1 {
		t.Errorf("out-of-range SetActive moved focus")
	}
}

func TestOutputCellsRejectEdits(t *testing.T) {
	s := newSequence()
	out := s.OutputTarget()
	got := out.Text()
	out.Buffer.InsertText("tamper")
	if out.Text() != got {
		t.Errorf("output cell accepted an edit")
	}
	// The stream path still works.
	out.AppendOutput("\nmore")
	if out.Text() != got+"\nmore" {
		t.Errorf("AppendOutput failed on output cell: %q", out.Text())
	}
	// Appending to input cells is refused.
	s.TailInput().AppendOutput("x")
	if s.TailInput().Text() != "" {
		t.Errorf("AppendOutput wrote into an input cell")
	}
}

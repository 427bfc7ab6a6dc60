// Copyright © 2026 Replpad contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: notebook/history_test.go
// Summary: Tests for the in-memory submission history store.

package notebook

import "testing"

func newHistory(t *testing.T, entries ...string) *HistoryStore {
	t.Helper()
	h, err := OpenHistory()
	if err != nil {
		t.Fatalf("OpenHistory: %v", err)
	}
	t.Cleanup(func() { h.Close() })
	for _, e := range entries {
		if err := h.Add(e); err != nil {
			t.Fatalf("Add(%q): %v", e, err)
		}
	}
	return h
}

func TestHistoryPrevWalksNewestFirst(t *testing.T) {
	h := newHistory(t, "a", "b", "c")

	want := []string{"c", "b", "a"}
	for _, w := range want {
		got, ok := h.Prev("")
		if !ok || got != w {
			t.Fatalf("Prev = %q, %v; want %q, true", got, ok, w)
		}
	}
	if got, ok := h.Prev(""); ok {
		t.Errorf("Prev past the oldest entry = %q, true; want false", got)
	}
}

func TestHistoryNextReturnsToLive(t *testing.T) {
	h := newHistory(t, "a", "b")

	if _, ok := h.Next(""); ok {
		t.Fatalf("Next without prior Prev should report false")
	}
	if h.Recalling() {
		t.Fatalf("Recalling before any Prev")
	}

	h.Prev("") // "b"
	h.Prev("") // "a"
	if !h.Recalling() {
		t.Errorf("Recalling false while stepping")
	}
	if got, ok := h.Next(""); !ok || got != "b" {
		t.Fatalf("Next = %q, %v; want \"b\", true", got, ok)
	}
	// Past the newest entry: back to live editing.
	if got, ok := h.Next(""); ok {
		t.Fatalf("Next past the newest = %q, true; want false", got)
	}
	if h.Recalling() {
		t.Errorf("Recalling after leaving recall")
	}
	// Prev from live starts at the newest again.
	if got, ok := h.Prev(""); !ok || got != "b" {
		t.Errorf("Prev after leaving recall = %q, %v; want \"b\", true", got, ok)
	}
}

func TestHistoryPrefixFiltersStepping(t *testing.T) {
	h := newHistory(t, "print(1)", "import os", "print(2)")

	if got, ok := h.Prev("print"); !ok || got != "print(2)" {
		t.Fatalf("Prev(print) = %q, %v; want \"print(2)\", true", got, ok)
	}
	// "import os" is skipped on the way down.
	if got, ok := h.Prev("print"); !ok || got != "print(1)" {
		t.Fatalf("Prev(print) again = %q, %v; want \"print(1)\", true", got, ok)
	}
	if got, ok := h.Prev("print"); ok {
		t.Errorf("Prev(print) past the oldest match = %q, true; want false", got)
	}
	// And on the way back up.
	if got, ok := h.Next("print"); !ok || got != "print(2)" {
		t.Errorf("Next(print) = %q, %v; want \"print(2)\", true", got, ok)
	}
}

func TestHistoryPrefixWildcardsAreLiteral(t *testing.T) {
	h := newHistory(t, "100%", "a_b", "abc")

	if got, ok := h.Prev("a_"); !ok || got != "a_b" {
		t.Errorf("Prev(a_) = %q, %v; want \"a_b\" (underscore must not match abc)", got, ok)
	}
	h.Add("") // reset cursor
	if got, ok := h.Prev("100%"); !ok || got != "100%" {
		t.Errorf("Prev(100%%) = %q, %v; want \"100%%\"", got, ok)
	}
}

func TestHistorySkipsBlanksAndRepeats(t *testing.T) {
	h := newHistory(t, "x", "", "x", "y", "y")
	if h.Len() != 2 {
		t.Fatalf("Len = %d, want 2", h.Len())
	}
	if got, _ := h.Prev(""); got != "y" {
		t.Errorf("newest = %q, want \"y\"", got)
	}
	if got, _ := h.Prev(""); got != "x" {
		t.Errorf("next = %q, want \"x\"", got)
	}
}

func TestHistoryAddResetsCursor(t *testing.T) {
	h := newHistory(t, "a", "b")
	h.Prev("") // "b"
	h.Prev("") // "a"
	if err := h.Add("c"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if h.Recalling() {
		t.Errorf("Add left the store in recall mode")
	}
	if got, ok := h.Prev(""); !ok || got != "c" {
		t.Errorf("Prev after Add = %q, %v; want \"c\", true", got, ok)
	}
}
